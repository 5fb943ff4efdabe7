package display

// StaticMonitor is a monitor with a fixed refresh rate; zero means unknown
type StaticMonitor struct {
	Millihertz uint32
}

// RefreshRateMillihertz implements Monitor
func (m StaticMonitor) RefreshRateMillihertz() (uint32, bool) {
	return m.Millihertz, m.Millihertz != 0
}

// StaticWindow is a window pinned to a monitor; nil Monitor means the window is offscreen
type StaticWindow struct {
	Monitor Monitor
}

// CurrentMonitor implements Window
func (w StaticWindow) CurrentMonitor() (Monitor, bool) {
	return w.Monitor, w.Monitor != nil
}

// Static is a fixed window list
type Static []Window

// Windows implements Source
func (s Static) Windows() []Window {
	return s
}

// NewStatic builds one window per listed refresh rate (millihertz)
func NewStatic(millihertz ...uint32) Static {
	s := make(Static, 0, len(millihertz))
	for _, mhz := range millihertz {
		s = append(s, StaticWindow{Monitor: StaticMonitor{Millihertz: mhz}})
	}
	return s
}
