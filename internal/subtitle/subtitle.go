package subtitle

import "sort"

// Cue is one timed subtitle entry on a timeline. StartMs/EndMs are an
// inclusive range in milliseconds.
type Cue struct {
	StartMs int64
	EndMs   int64
	Text    string // plain text, override blocks removed
	Raw     string // source text, may retain inline tags
	Style   string
	Effects []Effect
	Karaoke []KaraokeSyllable
}

// Contains reports whether t falls inside the cue's range, inclusive at
// both ends.
func (c Cue) Contains(t int64) bool {
	return t >= c.StartMs && t <= c.EndMs
}

// KaraokeKind selects the highlight behavior of a karaoke syllable.
type KaraokeKind int

const (
	KaraokeFill    KaraokeKind = iota // \k: instant fill
	KaraokeSweep                      // \K, \kf: sweep left to right
	KaraokeOutline                    // \ko: outline highlight
)

// KaraokeSyllable is a sub-span of a cue's text with its own timing.
// OffsetMs is relative to the cue start; syllables are contiguous, so each
// offset equals the sum of the previous durations.
type KaraokeSyllable struct {
	Text       string
	OffsetMs   int64
	DurationMs int64
	Kind       KaraokeKind
	Effects    []Effect
}

// BorderStyle enumerates the ASS border models.
type BorderStyle int

const (
	BorderOutline BorderStyle = 1 // outline + drop shadow
	BorderBox     BorderStyle = 3 // opaque box
)

// Style is one entry of a script-tag document's style table.
type Style struct {
	Name           string
	FontFamily     string
	FontSizePt     float64
	PrimaryColor   uint32 // ARGB, 0xFF alpha = opaque
	SecondaryColor uint32
	OutlineColor   uint32
	ShadowColor    uint32
	Bold           bool
	Italic         bool
	Underline      bool
	Strikeout      bool
	ScaleX         float64 // percent
	ScaleY         float64
	Spacing        float64
	RotationDeg    float64
	BorderStyle    BorderStyle
	OutlineWidth   float64
	ShadowDepth    float64
	Alignment      int // 1-9 numpad grid
	MarginL        int
	MarginR        int
	MarginV        int
	MarginB        int
	Encoding       int
}

// DefaultStyle returns the style applied when a document defines none.
func DefaultStyle(name string) Style {
	return Style{
		Name:           name,
		FontFamily:     "Arial",
		FontSizePt:     20,
		PrimaryColor:   0xFFFFFFFF,
		SecondaryColor: 0xFFFF0000,
		OutlineColor:   0xFF000000,
		ShadowColor:    0xFF000000,
		ScaleX:         100,
		ScaleY:         100,
		BorderStyle:    BorderOutline,
		OutlineWidth:   2,
		ShadowDepth:    2,
		Alignment:      2, // bottom center
		MarginL:        10,
		MarginR:        10,
		MarginV:        10,
	}
}

// Document is a fully parsed subtitle file: metadata, style table and a
// cue timeline sorted by start time. All fields are immutable after
// construction and safe for concurrent reads.
type Document struct {
	Meta   map[string]string
	Styles map[string]Style
	Cues   []Cue
}

const (
	defaultPlayResX = 384
	defaultPlayResY = 288
)

// PlayRes returns the script's declared playback resolution, defaulting to
// 384x288 when the metadata does not carry one.
func (d *Document) PlayRes() (x, y int) {
	x, y = defaultPlayResX, defaultPlayResY
	if d == nil || d.Meta == nil {
		return x, y
	}
	if v, ok := parseMetaInt(d.Meta["PlayResX"]); ok && v > 0 {
		x = v
	}
	if v, ok := parseMetaInt(d.Meta["PlayResY"]); ok && v > 0 {
		y = v
	}
	return x, y
}

func parseMetaInt(s string) (int, bool) {
	n := 0
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// SortCues orders cues in-place by start time ascending. The sort is
// stable: cues with equal start keep their source order.
func SortCues(cues []Cue) {
	sort.SliceStable(cues, func(i, j int) bool {
		return cues[i].StartMs < cues[j].StartMs
	})
}
