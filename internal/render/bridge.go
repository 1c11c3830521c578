package render

import (
	"fmt"
	"log/slog"
)

type state int

const (
	stateUninitialized state = iota
	stateReady
	stateTrackLoaded
	stateDestroyed
)

// Bridge owns a native rendering context for one playback session. It is
// not safe for concurrent use; the creating goroutine drives all calls.
//
// Every operation on a destroyed or degraded bridge is a defined no-op:
// renders return no content, Destroy may be called repeatedly.
type Bridge struct {
	ras     Rasterizer
	st      state
	canvasW int
	canvasH int
}

// NewBridge allocates the native context behind ras. On failure the
// session simply has no subtitle overlay; the caller should not treat
// the error as fatal to playback.
func NewBridge(ras Rasterizer) (*Bridge, error) {
	if ras == nil {
		return nil, ErrUnavailable
	}
	if err := ras.Init(); err != nil {
		return nil, fmt.Errorf("init rasterizer: %w", err)
	}
	return &Bridge{ras: ras, st: stateReady}, nil
}

// SetCanvas configures the render canvas. Idempotent; may be called again
// on size changes. Must be called with positive dimensions before the
// first render, otherwise renders return no content.
func (b *Bridge) SetCanvas(width, height int) {
	if b == nil || b.st == stateUninitialized || b.st == stateDestroyed {
		return
	}
	if width <= 0 || height <= 0 {
		return
	}
	if width == b.canvasW && height == b.canvasH {
		return
	}
	b.canvasW = width
	b.canvasH = height
	b.ras.SetFrameSize(width, height)
}

// LoadScript replaces any previously loaded script text. A failure leaves
// the bridge usable; subsequent renders return no content.
func (b *Bridge) LoadScript(text string) error {
	if b == nil || b.st == stateUninitialized || b.st == stateDestroyed {
		return ErrUnavailable
	}
	if err := b.ras.LoadTrack(text); err != nil {
		b.st = stateReady
		slog.Warn("subtitle script load failed", "err", err)
		return fmt.Errorf("load script: %w", err)
	}
	b.st = stateTrackLoaded
	return nil
}

// AddFont forwards raw font bytes to the native library so embedded or
// custom fonts resolve during rendering.
func (b *Bridge) AddFont(name string, data []byte) {
	if b == nil || b.st == stateUninitialized || b.st == stateDestroyed || len(data) == 0 {
		return
	}
	b.ras.AddFont(name, data)
}

// RenderAt rasterizes and composites the frame for one playback
// timestamp. Returns nil when nothing is visible at that time, when no
// script is loaded, or when the canvas was never configured.
func (b *Bridge) RenderAt(timeMs int64) *Result {
	if b == nil || b.st != stateTrackLoaded {
		return nil
	}
	if b.canvasW <= 0 || b.canvasH <= 0 {
		return nil
	}
	frags, _ := b.ras.RenderFrame(timeMs)
	return composite(frags, b.canvasW, b.canvasH)
}

// HasChange reports whether the frame at timeMs differs from the last
// rendered one, letting callers reuse the previous bitmap.
func (b *Bridge) HasChange(timeMs int64) bool {
	if b == nil || b.st != stateTrackLoaded || b.canvasW <= 0 || b.canvasH <= 0 {
		return false
	}
	_, changed := b.ras.RenderFrame(timeMs)
	return changed
}

// Destroy releases the native context. Safe to call more than once.
func (b *Bridge) Destroy() {
	if b == nil || b.st == stateUninitialized || b.st == stateDestroyed {
		return
	}
	b.st = stateDestroyed
	b.ras.Destroy()
}
