package render

// boundingBox returns the union rectangle of all fragments, clipped to
// the canvas. ok is false when nothing falls inside the canvas.
func boundingBox(frags []Fragment, canvasW, canvasH int) (left, top, right, bottom int, ok bool) {
	left, top = canvasW, canvasH
	for _, f := range frags {
		if f.Width <= 0 || f.Height <= 0 {
			continue
		}
		if f.DstX < left {
			left = f.DstX
		}
		if f.DstY < top {
			top = f.DstY
		}
		if x2 := f.DstX + f.Width; x2 > right {
			right = x2
		}
		if y2 := f.DstY + f.Height; y2 > bottom {
			bottom = y2
		}
	}
	if left < 0 {
		left = 0
	}
	if top < 0 {
		top = 0
	}
	if right > canvasW {
		right = canvasW
	}
	if bottom > canvasH {
		bottom = canvasH
	}
	if right-left <= 0 || bottom-top <= 0 {
		return 0, 0, 0, 0, false
	}
	return left, top, right, bottom, true
}

// composite blends every fragment into a full-canvas buffer in list order
// using source-over alpha blending, then copies out the region enclosed
// by the fragments' bounding box. Returns nil when nothing is visible.
func composite(frags []Fragment, canvasW, canvasH int) *Result {
	if canvasW <= 0 || canvasH <= 0 || len(frags) == 0 {
		return nil
	}
	left, top, right, bottom, ok := boundingBox(frags, canvasW, canvasH)
	if !ok {
		return nil
	}

	full := make([]uint32, canvasW*canvasH)
	for _, f := range frags {
		blendFragment(full, canvasW, canvasH, f)
	}

	cropW := right - left
	cropH := bottom - top
	pix := make([]uint32, cropW*cropH)
	for y := 0; y < cropH; y++ {
		srcRow := full[(top+y)*canvasW+left:]
		copy(pix[y*cropW:(y+1)*cropW], srcRow[:cropW])
	}
	return &Result{Pix: pix, OriginX: left, OriginY: top, Width: cropW, Height: cropH}
}

// blendFragment draws one coverage-mask fragment over dst (0xAARRGGBB).
// The fragment color's alpha byte is inverted (0 = opaque) and is
// un-inverted before blending.
func blendFragment(dst []uint32, canvasW, canvasH int, f Fragment) {
	r := f.Color >> 24 & 0xFF
	g := f.Color >> 16 & 0xFF
	b := f.Color >> 8 & 0xFF
	invA := f.Color & 0xFF

	for y := 0; y < f.Height; y++ {
		dy := f.DstY + y
		if dy < 0 || dy >= canvasH {
			continue
		}
		srcRow := f.Bitmap[y*f.Stride:]
		dstRow := dst[dy*canvasW:]
		for x := 0; x < f.Width; x++ {
			dx := f.DstX + x
			if dx < 0 || dx >= canvasW {
				continue
			}
			coverage := uint32(srcRow[x])
			if coverage == 0 {
				continue
			}
			alpha := coverage * (255 - invA) / 255
			if alpha == 0 {
				continue
			}

			p := dstRow[dx]
			dstA := p >> 24 & 0xFF
			dstR := p >> 16 & 0xFF
			dstG := p >> 8 & 0xFF
			dstB := p & 0xFF

			inv := 255 - alpha
			outA := alpha + dstA*inv/255
			var outR, outG, outB uint32
			if outA != 0 {
				outR = (r*alpha + dstR*dstA*inv/255) / outA
				outG = (g*alpha + dstG*dstA*inv/255) / outA
				outB = (b*alpha + dstB*dstA*inv/255) / outA
			}
			dstRow[dx] = outA<<24 | outR<<16 | outG<<8 | outB
		}
	}
}
