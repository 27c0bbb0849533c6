package nes

// UIKind selects which presentation backend, if any, engages with a
// running Console. The core never inspects this value itself; Config
// exists so a caller's CLI flags can travel down to the presentation
// layer as one value instead of loose, uncoordinated arguments.
type UIKind int

const (
	UIKindNone UIKind = iota
	UIKindGTK
)

// Config holds the options a presentation layer consumes when it wraps
// a Console: how large to draw the 256x240 picture, and whether to draw
// it at all. Nothing under nes/ reads these fields; they exist purely
// for the benefit of internal/ui and cmd/jnes.
type Config struct {
	// PixelScaleFactor multiplies the 256x240 picture for display.
	PixelScaleFactor int
	// UIKind selects which presenter, if any, is engaged.
	UIKind UIKind
}

// DefaultConfig returns the documented defaults: 4x pixel scale, no
// presenter engaged.
func DefaultConfig() Config {
	return Config{PixelScaleFactor: 4, UIKind: UIKindNone}
}
