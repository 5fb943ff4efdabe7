//go:build !sdl2

package main

import (
	"github.com/lixenwraith/framepace/config"
	"github.com/lixenwraith/framepace/display"
)

// newDisplaySource reports the configured monitor list; terminals expose no refresh rate
func newDisplaySource(cfg config.Config) (display.Source, func(), error) {
	return display.NewStatic(cfg.Display.Monitors...), func() {}, nil
}
