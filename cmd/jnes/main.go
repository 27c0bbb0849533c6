// Command jnes runs a ROM through the emulator core with an OpenGL
// window for video and a portaudio stream for sound.
package main

import (
	"io/ioutil"

	"github.com/golang/glog"
	"github.com/spf13/pflag"

	"github.com/webnfc-oss/gones8/internal/ui"
	"github.com/webnfc-oss/gones8/nes"
)

var (
	romPath = pflag.StringP("rom", "r", "", "path to an iNES ROM file (required)")
	scale   = pflag.IntP("scale", "s", 4, "window scale factor, multiplies the 256x240 picture")
	uiKind  = pflag.StringP("ui", "u", "gtk", `presentation backend: "gtk" for the windowed player, "none" to run headless`)
	debug   = pflag.BoolP("debug", "d", false, "run a DebugConsole driven from stdin instead of the GUI")
)

func parseUIKind(s string) nes.UIKind {
	switch s {
	case "gtk":
		return nes.UIKindGTK
	case "none":
		return nes.UIKindNone
	default:
		glog.Fatalf("-ui: unknown backend %q, want \"gtk\" or \"none\"", s)
		return nes.UIKindNone
	}
}

func main() {
	pflag.Parse()
	defer glog.Flush()
	if *romPath == "" {
		glog.Fatalln("-rom is required")
	}
	b, err := ioutil.ReadFile(*romPath)
	if err != nil {
		glog.Fatalln(err)
	}
	cartridge, err := nes.NewCartridge(b)
	if err != nil {
		glog.Fatalln(err)
	}
	console, err := nes.NewConsole(cartridge, *debug)
	if err != nil {
		glog.Fatalln(err)
	}
	if err := console.Reset(); err != nil {
		glog.Fatalln(err)
	}
	cfg := nes.DefaultConfig()
	cfg.PixelScaleFactor = *scale
	cfg.UIKind = parseUIKind(*uiKind)
	if *debug {
		cfg.UIKind = nes.UIKindNone
	}
	if cfg.UIKind == nes.UIKindNone {
		for {
			if _, err := console.Step(); err != nil {
				glog.Fatalln(err)
			}
		}
	}
	ui.Start(console, cfg)
}
