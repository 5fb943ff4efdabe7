package pacing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrNonPositiveFrametime is returned for a fixed mode without a positive frametime
var ErrNonPositiveFrametime = errors.New("pacing: fixed frametime must be positive")

// Kind enumerates pacing strategies
type Kind uint8

const (
	// KindAuto derives the target from the display refresh rate
	KindAuto Kind = iota
	// KindFixed uses an explicit frametime
	KindFixed
	// KindOff disables sleeping
	KindOff
)

// Mode is the pacing strategy; the zero value is Auto
// Modes are comparable with ==
type Mode struct {
	kind      Kind
	frametime time.Duration
}

// Auto paces to the refresh interval of the slowest monitor hosting a window, updating as windows move
func Auto() Mode {
	return Mode{kind: KindAuto}
}

// Fixed paces to an explicit frametime
// A frametime shorter than the display interval is legal but causes avoidable oversleep
func Fixed(frametime time.Duration) Mode {
	return Mode{kind: KindFixed, frametime: frametime}
}

// Off disables frame limiting; Stats keep updating
func Off() Mode {
	return Mode{kind: KindOff}
}

// FromFramerate builds a fixed mode from frames per second
func FromFramerate(fps float64) Mode {
	if fps <= 0 {
		return Fixed(0)
	}
	return Fixed(time.Duration(float64(time.Second) / fps))
}

// Kind returns the strategy
func (m Mode) Kind() Kind {
	return m.kind
}

// Enabled reports whether the mode ever sleeps
func (m Mode) Enabled() bool {
	return m.kind != KindOff
}

// Frametime returns the explicit frametime of a fixed mode
func (m Mode) Frametime() (time.Duration, bool) {
	if m.kind != KindFixed {
		return 0, false
	}
	return m.frametime, true
}

// Validate rejects fixed modes without a positive frametime and unknown kinds
func (m Mode) Validate() error {
	switch m.kind {
	case KindAuto, KindOff:
		return nil
	case KindFixed:
		if m.frametime <= 0 {
			return ErrNonPositiveFrametime
		}
		return nil
	default:
		return fmt.Errorf("pacing: unknown mode kind %d", m.kind)
	}
}

// String renders Auto, the fixed rate as "60.00 fps", or Off
func (m Mode) String() string {
	switch m.kind {
	case KindAuto:
		return "Auto"
	case KindFixed:
		if m.frametime <= 0 {
			return "Fixed(invalid)"
		}
		return fmt.Sprintf("%.2f fps", float64(time.Second)/float64(m.frametime))
	case KindOff:
		return "Off"
	default:
		return "Unknown"
	}
}

// ParseMode accepts "auto", "off" (or "disabled", "none"), a rate such as "144fps",
// or a Go duration such as "16.6ms"
func ParseMode(s string) (Mode, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "auto", "":
		return Auto(), nil
	case "off", "disabled", "none":
		return Off(), nil
	}

	if rate, ok := strings.CutSuffix(v, "fps"); ok {
		fps, err := strconv.ParseFloat(strings.TrimSpace(rate), 64)
		if err != nil {
			return Mode{}, fmt.Errorf("pacing: parse framerate %q: %w", s, err)
		}
		m := FromFramerate(fps)
		if err := m.Validate(); err != nil {
			return Mode{}, fmt.Errorf("pacing: framerate %q: %w", s, err)
		}
		return m, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return Mode{}, fmt.Errorf("pacing: parse mode %q: want auto, off, <n>fps or a duration", s)
	}
	m := Fixed(d)
	if err := m.Validate(); err != nil {
		return Mode{}, fmt.Errorf("pacing: frametime %q: %w", s, err)
	}
	return m, nil
}

// MarshalText encodes the mode in a form ParseMode reads back
func (m Mode) MarshalText() ([]byte, error) {
	switch m.kind {
	case KindAuto:
		return []byte("auto"), nil
	case KindOff:
		return []byte("off"), nil
	case KindFixed:
		if err := m.Validate(); err != nil {
			return nil, err
		}
		return []byte(m.frametime.String()), nil
	default:
		return nil, m.Validate()
	}
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseMode
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
