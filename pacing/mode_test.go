package pacing

import (
	"errors"
	"testing"
	"time"
)

func TestModeZeroValueIsAuto(t *testing.T) {
	var m Mode
	if m != Auto() {
		t.Errorf("Expected zero Mode to equal Auto, got %v", m)
	}
	if !m.Enabled() {
		t.Error("Expected Auto to be enabled")
	}
}

func TestModeEnabled(t *testing.T) {
	if Off().Enabled() {
		t.Error("Expected Off to be disabled")
	}
	if !Fixed(time.Millisecond).Enabled() {
		t.Error("Expected Fixed to be enabled")
	}
}

func TestModeValidate(t *testing.T) {
	if err := Fixed(0).Validate(); !errors.Is(err, ErrNonPositiveFrametime) {
		t.Errorf("Expected ErrNonPositiveFrametime for zero frametime, got %v", err)
	}
	if err := Fixed(-time.Millisecond).Validate(); !errors.Is(err, ErrNonPositiveFrametime) {
		t.Errorf("Expected ErrNonPositiveFrametime for negative frametime, got %v", err)
	}
	// Shorter than any display interval is still legal
	if err := Fixed(time.Microsecond).Validate(); err != nil {
		t.Errorf("Expected tiny positive frametime to validate, got %v", err)
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{Auto(), "Auto"},
		{Off(), "Off"},
		{FromFramerate(60), "60.00 fps"},
		{Fixed(8 * time.Millisecond), "125.00 fps"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}

func TestFromFramerate(t *testing.T) {
	d, ok := FromFramerate(50).Frametime()
	if !ok || d != 20*time.Millisecond {
		t.Errorf("Expected 20ms fixed frametime, got %v (ok=%v)", d, ok)
	}
	if err := FromFramerate(0).Validate(); err == nil {
		t.Error("Expected zero framerate to be invalid")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"auto", Auto(), false},
		{" Auto ", Auto(), false},
		{"", Auto(), false},
		{"off", Off(), false},
		{"disabled", Off(), false},
		{"none", Off(), false},
		{"16ms", Fixed(16 * time.Millisecond), false},
		{"100fps", Fixed(10 * time.Millisecond), false},
		{"100 FPS", Fixed(10 * time.Millisecond), false},
		{"0fps", Mode{}, true},
		{"-5ms", Mode{}, true},
		{"0s", Mode{}, true},
		{"fast", Mode{}, true},
		{"xfps", Mode{}, true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMode(%q): expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMode(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestModeTextRoundTrip(t *testing.T) {
	for _, m := range []Mode{Auto(), Off(), Fixed(6944 * time.Microsecond)} {
		text, err := m.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", m, err)
		}
		var back Mode
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if back != m {
			t.Errorf("Expected %v after round trip, got %v", m, back)
		}
	}

	if _, err := Fixed(0).MarshalText(); err == nil {
		t.Error("Expected invalid fixed mode to fail marshaling")
	}
}
