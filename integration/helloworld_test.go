package integration

import (
	"image/png"
	"io/ioutil"
	"os"
	"testing"

	"github.com/webnfc-oss/gones8/nes"
)

// TestHelloWorld drives a full console until its first completed frame
// and compares it pixel-for-pixel against a golden render.
func TestHelloWorld(t *testing.T) {
	f, err := os.Open("sample1.nes")
	if err != nil {
		t.Skipf("sample1.nes fixture not available: %v", err)
	}
	defer f.Close()
	b, err := ioutil.ReadAll(f)
	if err != nil {
		t.Fatalf("reading sample1.nes: %v", err)
	}
	cartridge, err := nes.NewCartridge(b)
	if err != nil {
		t.Fatalf("parsing sample1.nes: %v", err)
	}
	console, err := nes.NewConsole(cartridge, false)
	if err != nil {
		t.Fatalf("building console: %v", err)
	}
	for {
		if _, err := console.Step(); err != nil {
			t.Fatalf("stepping console: %v", err)
		}
		got, ok := console.Frame()
		if !ok {
			continue
		}
		r, err := os.Open("helloworld.png")
		if err != nil {
			t.Skipf("helloworld.png fixture not available: %v", err)
		}
		defer r.Close()
		want, err := png.Decode(r)
		if err != nil {
			t.Fatalf("decoding helloworld.png: %v", err)
		}
		for y := 0; y < got.Rect.Max.Y; y++ {
			for x := 0; x < got.Rect.Max.X; x++ {
				if got.At(x, y) != want.At(x, y) {
					t.Errorf("rendered color at (%d, %d) = %v, want %v", x, y, got.At(x, y), want.At(x, y))
				}
			}
		}
		return
	}
}
