//go:build cgo && libass

package render

/*
#cgo pkg-config: libass
#include <ass/ass.h>
#include <stdlib.h>
*/
import "C"

import "unsafe"

// libassRasterizer drives a real libass context. It is compiled in only
// with the libass build tag so the rest of the engine stays testable
// without the native library present.
type libassRasterizer struct {
	library  *C.ASS_Library
	renderer *C.ASS_Renderer
	track    *C.ASS_Track
}

// Native returns a libass-backed rasterizer.
func Native() (Rasterizer, error) {
	return &libassRasterizer{}, nil
}

func (l *libassRasterizer) Init() error {
	l.library = C.ass_library_init()
	if l.library == nil {
		return ErrUnavailable
	}
	l.renderer = C.ass_renderer_init(l.library)
	if l.renderer == nil {
		C.ass_library_done(l.library)
		l.library = nil
		return ErrUnavailable
	}
	fallback := C.CString("sans-serif")
	defer C.free(unsafe.Pointer(fallback))
	C.ass_set_fonts(l.renderer, nil, fallback, C.ASS_FONTPROVIDER_AUTODETECT, nil, 0)
	return nil
}

func (l *libassRasterizer) SetFrameSize(width, height int) {
	if l.renderer == nil {
		return
	}
	C.ass_set_frame_size(l.renderer, C.int(width), C.int(height))
}

func (l *libassRasterizer) LoadTrack(script string) error {
	if l.library == nil {
		return ErrUnavailable
	}
	if l.track != nil {
		C.ass_free_track(l.track)
		l.track = nil
	}
	buf := C.CString(script)
	defer C.free(unsafe.Pointer(buf))
	l.track = C.ass_read_memory(l.library, buf, C.size_t(len(script)), nil)
	if l.track == nil {
		return ErrUnavailable
	}
	return nil
}

func (l *libassRasterizer) AddFont(name string, data []byte) {
	if l.library == nil || l.renderer == nil || len(data) == 0 {
		return
	}
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	cdata := C.CBytes(data)
	defer C.free(cdata)
	C.ass_add_font(l.library, cname, (*C.char)(cdata), C.int(len(data)))

	fallback := C.CString("sans-serif")
	defer C.free(unsafe.Pointer(fallback))
	C.ass_set_fonts(l.renderer, nil, fallback, C.ASS_FONTPROVIDER_AUTODETECT, nil, 1)
}

func (l *libassRasterizer) RenderFrame(timeMs int64) ([]Fragment, bool) {
	if l.renderer == nil || l.track == nil {
		return nil, false
	}
	var change C.int
	img := C.ass_render_frame(l.renderer, l.track, C.longlong(timeMs), &change)

	var frags []Fragment
	for ; img != nil; img = img.next {
		w := int(img.w)
		h := int(img.h)
		stride := int(img.stride)
		if w <= 0 || h <= 0 {
			continue
		}
		frags = append(frags, Fragment{
			Bitmap: C.GoBytes(unsafe.Pointer(img.bitmap), C.int(stride*h)),
			Width:  w,
			Height: h,
			Stride: stride,
			DstX:   int(img.dst_x),
			DstY:   int(img.dst_y),
			Color:  uint32(img.color),
		})
	}
	return frags, change != 0
}

func (l *libassRasterizer) Destroy() {
	if l.track != nil {
		C.ass_free_track(l.track)
		l.track = nil
	}
	if l.renderer != nil {
		C.ass_renderer_done(l.renderer)
		l.renderer = nil
	}
	if l.library != nil {
		C.ass_library_done(l.library)
		l.library = nil
	}
}
