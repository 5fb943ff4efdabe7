//go:build sdl2

package display

import (
	"sync"

	"github.com/veandco/go-sdl2/sdl"
)

// SDLWindow adapts an SDL window to Window
type SDLWindow struct {
	Window *sdl.Window
}

// CurrentMonitor resolves the display the window is centered on
func (w SDLWindow) CurrentMonitor() (Monitor, bool) {
	if w.Window == nil {
		return nil, false
	}
	idx, err := w.Window.GetDisplayIndex()
	if err != nil {
		return nil, false
	}
	return SDLDisplay(idx), true
}

// SDLDisplay is an SDL video display index
type SDLDisplay int

// RefreshRateMillihertz queries the display's current mode; SDL reports whole Hz and 0 for unspecified
func (d SDLDisplay) RefreshRateMillihertz() (uint32, bool) {
	mode, err := sdl.GetCurrentDisplayMode(int(d))
	if err != nil || mode.RefreshRate <= 0 {
		return 0, false
	}
	return uint32(mode.RefreshRate) * 1000, true
}

// SDLSource tracks the host's open SDL windows
type SDLSource struct {
	mu      sync.Mutex
	windows []*sdl.Window
}

// NewSDLSource creates an empty SDL window source
func NewSDLSource() *SDLSource {
	return &SDLSource{}
}

// Add registers an open window
func (s *SDLSource) Add(w *sdl.Window) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows = append(s.windows, w)
}

// Remove forgets a closed window
func (s *SDLSource) Remove(w *sdl.Window) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.windows {
		if existing == w {
			s.windows = append(s.windows[:i], s.windows[i+1:]...)
			return
		}
	}
}

// Windows implements Source
func (s *SDLSource) Windows() []Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Window, 0, len(s.windows))
	for _, w := range s.windows {
		out = append(out, SDLWindow{Window: w})
	}
	return out
}
