package subtitle

// Effect is one inline style override instruction extracted from a cue's
// text. Effects form a closed set of value types; later effects in the
// same block override earlier ones when applied.
type Effect interface {
	isEffect()
}

// SetColor overrides one of the four color slots (1=primary, 2=secondary,
// 3=outline, 4=shadow). Value is standard ARGB, alpha 0xFF = opaque.
type SetColor struct {
	Slot  int
	Value uint32
}

// SetAlpha overrides the alpha of one color slot. Slot 0 means all slots.
// Value is standard alpha: 255 = opaque.
type SetAlpha struct {
	Slot  int
	Value uint8
}

type SetBold struct{ On bool }

type SetItalic struct{ On bool }

type SetFontSize struct{ Points float64 }

// SetAlignment carries a 1-9 numpad-style screen position.
type SetAlignment struct{ Numpad int }

// Fade fades the cue in over InMs and out over OutMs.
type Fade struct {
	InMs  int64
	OutMs int64
}

// Position pins the cue at an absolute point on the playback canvas.
type Position struct {
	X float64
	Y float64
}

// Move animates the cue between two points, optionally within the
// [T1Ms, T2Ms] window relative to the cue start (zero means the whole
// cue duration).
type Move struct {
	X1, Y1 float64
	X2, Y2 float64
	T1Ms   int64
	T2Ms   int64
}

type SetBorder struct{ Width float64 }

type SetShadow struct{ Depth float64 }

type RotateZ struct{ Degrees float64 }

// Scale overrides the X and/or Y scale percentage. HasX/HasY mark which
// axes the source tag actually carried.
type Scale struct {
	X, Y       float64
	HasX, HasY bool
}

// Karaoke is a syllable timing marker. Centis is the syllable duration in
// centiseconds as written in the tag.
type Karaoke struct {
	Centis int64
	Kind   KaraokeKind
}

func (SetColor) isEffect()     {}
func (SetAlpha) isEffect()     {}
func (SetBold) isEffect()      {}
func (SetItalic) isEffect()    {}
func (SetFontSize) isEffect()  {}
func (SetAlignment) isEffect() {}
func (Fade) isEffect()         {}
func (Position) isEffect()     {}
func (Move) isEffect()         {}
func (SetBorder) isEffect()    {}
func (SetShadow) isEffect()    {}
func (RotateZ) isEffect()      {}
func (Scale) isEffect()        {}
func (Karaoke) isEffect()      {}
