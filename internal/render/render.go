// Package render composites natively rasterized subtitle fragments into
// cropped ARGB bitmaps synchronized to a playback clock.
package render

import "errors"

// ErrUnavailable is returned when no native rasterizer can be allocated.
// Callers should treat it as "no subtitle overlay", not as fatal.
var ErrUnavailable = errors.New("render: native rasterizer unavailable")

// Fragment is one rasterized, positioned image tile for a single frame:
// an 8-bit per-pixel coverage mask plus one base color for the whole
// tile. Color is packed 0xRRGGBBAA with the alpha byte inverted
// (0 = opaque, 255 = fully transparent), as the native library stores it.
type Fragment struct {
	Bitmap []byte // coverage mask, Stride*Height bytes, 255 = full
	Width  int
	Height int
	Stride int
	DstX   int
	DstY   int
	Color  uint32
}

// Rasterizer is the narrow boundary to the native rendering library.
// Implementations are not safe for concurrent use; one owner drives all
// calls sequentially.
type Rasterizer interface {
	// Init allocates the native context. An error means rendering is
	// unavailable for this session.
	Init() error
	// SetFrameSize configures the canvas; idempotent.
	SetFrameSize(width, height int)
	// LoadTrack replaces any previously loaded script text.
	LoadTrack(script string) error
	// AddFont registers raw font bytes under an optional name before
	// rendering. Used for embedded or custom fonts.
	AddFont(name string, data []byte)
	// RenderFrame rasterizes the fragments for one timestamp. changed
	// reports whether the frame differs from the previous call.
	RenderFrame(timeMs int64) (frags []Fragment, changed bool)
	// Destroy releases the native context. Safe to call repeatedly.
	Destroy()
}

// Result is the composited output for one frame: a cropped bitmap of
// packed 0xAARRGGBB pixels and its origin within the canvas.
type Result struct {
	Pix     []uint32 // Width*Height pixels, row-major
	OriginX int
	OriginY int
	Width   int
	Height  int
}
