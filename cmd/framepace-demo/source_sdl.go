//go:build sdl2

package main

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/lixenwraith/framepace/config"
	"github.com/lixenwraith/framepace/display"
)

// newDisplaySource opens a hidden SDL window so Auto mode follows the real display
func newDisplaySource(cfg config.Config) (display.Source, func(), error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, nil, fmt.Errorf("sdl init: %w", err)
	}

	window, err := sdl.CreateWindow("framepace", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, 1, 1, sdl.WINDOW_HIDDEN)
	if err != nil {
		sdl.Quit()
		return nil, nil, fmt.Errorf("sdl window: %w", err)
	}

	src := display.NewSDLSource()
	src.Add(window)

	return src, func() {
		src.Remove(window)
		window.Destroy()
		sdl.Quit()
	}, nil
}
