package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/framepace/audio"
	"github.com/lixenwraith/framepace/config"
	"github.com/lixenwraith/framepace/engine"
	"github.com/lixenwraith/framepace/pacing"
)

// fixedRates are cycled by the 'f' key
var fixedRates = []float64{30, 60, 120, 144}

// world is the simulation state: a block bouncing inside the screen
type world struct {
	mu            sync.Mutex
	x, y          int
	dx, dy        int
	width, height int
}

func (w *world) resize(width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.width, w.height = width, height-1
	w.x = clamp(w.x, 0, w.width-1)
	w.y = clamp(w.y, 0, w.height-1)
}

// step advances one simulation tick
func (w *world) step() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.width <= 1 || w.height <= 1 {
		return
	}
	if w.x+w.dx < 0 || w.x+w.dx >= w.width {
		w.dx = -w.dx
	}
	if w.y+w.dy < 0 || w.y+w.dy >= w.height {
		w.dy = -w.dy
	}
	w.x += w.dx
	w.y += w.dy
}

func (w *world) position() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.x, w.y
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}

// scene is the render pipeline state
type scene struct {
	screen    tcell.Screen
	eng       *pacing.Engine
	metronome *audio.Metronome
	logger    *slog.Logger
	world     *world

	fixedIdx int
	lastCyc  pacing.Cycle
}

// runScene drives the terminal render loop until the user quits
func runScene(eng *pacing.Engine, cfg config.Config, metronome *audio.Metronome, logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	engine.SetCrashHandler(func(r any) {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "\r\nFRAMEPACE CRASHED: %v\r\n", r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
		os.Exit(1)
	})
	defer engine.SetCrashHandler(nil)

	w := &world{dx: 1, dy: 1}
	w.resize(screen.Size())

	s := &scene{
		screen:    screen,
		eng:       eng,
		metronome: metronome,
		logger:    logger,
		world:     w,
		fixedIdx:  -1,
	}

	frameReady := make(chan struct{}, 1)
	cs, updateDone := startSimulation(eng, cfg, w.step, frameReady)
	defer cs.Stop()
	frameReady <- struct{}{}

	eventChan := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	engine.Go(func() { pollEvents(screen, eventChan, done) })

	for {
		// Drain input without blocking the frame
	events:
		for {
			select {
			case ev := <-eventChan:
				if !s.handleEvent(ev) {
					return nil
				}
			default:
				break events
			}
		}

		updated := false
		select {
		case <-updateDone:
			updated = true
		default:
		}

		s.draw()

		// Frame submitted; the pacer consumes the rest of the budget
		s.lastCyc = eng.Pacer().Pace()
		if s.metronome != nil {
			s.metronome.Frame(s.lastCyc.Total)
		}

		if updated {
			select {
			case frameReady <- struct{}{}:
			default:
			}
		}
	}
}

// pollEvents forwards screen events until the screen closes or done is closed
func pollEvents(screen tcell.Screen, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent applies input; false means quit
func (s *scene) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 'a':
			s.setMode(pacing.Auto())
		case 'o':
			s.setMode(pacing.Off())
		case 'f':
			s.fixedIdx = (s.fixedIdx + 1) % len(fixedRates)
			s.setMode(pacing.FromFramerate(fixedRates[s.fixedIdx]))
		}

	case *tcell.EventResize:
		s.world.resize(s.screen.Size())
		s.screen.Sync()
	}
	return true
}

func (s *scene) setMode(m pacing.Mode) {
	if err := s.eng.Settings().Set(m); err != nil {
		s.logger.Warn("mode rejected", "mode", m.String(), "error", err)
		return
	}
	s.logger.Debug("mode requested", "mode", m.String())
}

func (s *scene) draw() {
	s.screen.Clear()

	x, y := s.world.position()
	block := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	s.screen.SetContent(x, y, '█', nil, block)

	_, height := s.screen.Size()
	s.drawText(0, height-1, s.statusLine(), tcell.StyleDefault.Reverse(true))

	s.screen.Show()
}

func (s *scene) statusLine() string {
	reg := s.eng.Registry()
	mode := reg.Strings.Get("pacing.mode").Load()
	fps := reg.Floats.Get("pacing.fps_avg").Get()
	frame := reg.Durations.Get("pacing.frame_time").Load()
	over := reg.Durations.Get("pacing.oversleep").Load()
	target := reg.Durations.Get("pacing.target").Load()

	return fmt.Sprintf(" %s | %6.1f fps | target %v | work %v | oversleep %v | [a]uto [f]ixed [o]ff [q]uit ",
		mode, fps, target.Round(time.Microsecond), frame.Round(time.Microsecond), over.Round(time.Microsecond))
}

func (s *scene) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
