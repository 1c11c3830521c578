//go:build !cgo || !libass

package render

// Native reports that no native rasterizer was compiled in. Builds
// without the libass tag degrade to cue-text display only.
func Native() (Rasterizer, error) {
	return nil, ErrUnavailable
}
