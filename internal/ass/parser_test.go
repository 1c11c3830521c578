package ass

import (
	"strings"
	"testing"

	"github.com/adrianmusante/subtitle-engine/internal/subtitle"
)

const sampleScript = `[Script Info]
; generated for tests
Title: Sample
PlayResX: 640
PlayResY: 480

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,Arial,28,&H00FFFFFF,&H000000FF,&H00000000,&H80000000,-1,0,0,0,100,100,0,0,1,2,1,2,10,10,15,1

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,0:00:05.00,0:00:08.00,Default,,0,0,0,,Second line, with a comma
Dialogue: 0,0:00:01.00,0:00:04.00,Default,,0,0,0,,{\b1}Bold{\b0} normal
Dialogue: 0,0:00:10.00,0:00:12.00
Dialogue: 0,0:00:20.00,0:00:22.00,Default,,0,0,0,,{\fad(300,300)}
`

func parseSample(t *testing.T) *subtitle.Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(sampleScript))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func TestParse_MetadataAndPlayRes(t *testing.T) {
	doc := parseSample(t)
	if doc.Meta["Title"] != "Sample" {
		t.Fatalf("unexpected title: %q", doc.Meta["Title"])
	}
	x, y := doc.PlayRes()
	if x != 640 || y != 480 {
		t.Fatalf("PlayRes = %dx%d, want 640x480", x, y)
	}
}

func TestParse_PlayResDefaults(t *testing.T) {
	doc := &subtitle.Document{}
	x, y := doc.PlayRes()
	if x != 384 || y != 288 {
		t.Fatalf("PlayRes = %dx%d, want 384x288", x, y)
	}
}

func TestParse_StyleTable(t *testing.T) {
	doc := parseSample(t)
	st, ok := doc.Styles["Default"]
	if !ok {
		t.Fatalf("style Default missing")
	}
	if st.FontFamily != "Arial" || st.FontSizePt != 28 {
		t.Fatalf("unexpected font: %q %v", st.FontFamily, st.FontSizePt)
	}
	if !st.Bold || st.Italic {
		t.Fatalf("unexpected flags: bold=%v italic=%v", st.Bold, st.Italic)
	}
	if st.PrimaryColor != 0xFFFFFFFF {
		t.Fatalf("primary = %#x, want opaque white", st.PrimaryColor)
	}
	if st.ShadowColor != 0x7F000000 {
		t.Fatalf("shadow = %#x, want half-alpha black", st.ShadowColor)
	}
	if st.Alignment != 2 || st.MarginV != 15 {
		t.Fatalf("alignment=%d marginV=%d", st.Alignment, st.MarginV)
	}
}

func TestParse_CuesSortedAndFiltered(t *testing.T) {
	doc := parseSample(t)
	// The short Dialogue and the override-only Dialogue are dropped;
	// the remaining cues come back sorted by start time.
	if len(doc.Cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(doc.Cues))
	}
	if doc.Cues[0].StartMs != 1000 || doc.Cues[1].StartMs != 5000 {
		t.Fatalf("cues out of order: %d, %d", doc.Cues[0].StartMs, doc.Cues[1].StartMs)
	}
}

func TestParse_TextKeepsTrailingCommas(t *testing.T) {
	doc := parseSample(t)
	if doc.Cues[1].Text != "Second line, with a comma" {
		t.Fatalf("trailing field split on comma: %q", doc.Cues[1].Text)
	}
}

func TestParse_InlineEffectsAndPlainText(t *testing.T) {
	doc := parseSample(t)
	cue := doc.Cues[0]
	if cue.Text != "Bold normal" {
		t.Fatalf("plain text = %q", cue.Text)
	}
	if len(cue.Effects) != 2 {
		t.Fatalf("expected 2 effects, got %#v", cue.Effects)
	}
	if cue.Effects[0] != (subtitle.SetBold{On: true}) || cue.Effects[1] != (subtitle.SetBold{On: false}) {
		t.Fatalf("unexpected effect order: %#v", cue.Effects)
	}
}

func TestParse_LineBreakEscapes(t *testing.T) {
	script := "[Events]\nDialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,one\\Ntwo\\hthree\n"
	doc, err := Parse(strings.NewReader(script))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(doc.Cues))
	}
	if doc.Cues[0].Text != "one\ntwo three" {
		t.Fatalf("text = %q", doc.Cues[0].Text)
	}
}

func TestParse_UnknownSectionIgnored(t *testing.T) {
	script := "[Fonts]\nDialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,hidden\n" +
		"[Events]\nDialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,visible\n"
	doc, err := Parse(strings.NewReader(script))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Cues) != 1 || doc.Cues[0].Text != "visible" {
		t.Fatalf("unexpected cues: %#v", doc.Cues)
	}
}

func TestParse_DefaultEventFormat(t *testing.T) {
	// No Format: line before Dialogue: the canonical field order applies.
	script := "[Events]\nDialogue: 0,0:00:01.00,0:00:03.50,Default,,0,0,0,,hello\n"
	doc, err := Parse(strings.NewReader(script))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(doc.Cues))
	}
	c := doc.Cues[0]
	if c.StartMs != 1000 || c.EndMs != 3500 || c.Text != "hello" || c.Style != "Default" {
		t.Fatalf("unexpected cue: %+v", c)
	}
}

func TestParse_Karaoke(t *testing.T) {
	script := "[Events]\nDialogue: 0,0:00:00.00,0:00:02.00,Default,,0,0,0,,{\\k50}A{\\k30}B\n"
	doc, err := Parse(strings.NewReader(script))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	syls := doc.Cues[0].Karaoke
	if len(syls) != 2 {
		t.Fatalf("expected 2 syllables, got %#v", syls)
	}
	a, b := syls[0], syls[1]
	if a.Text != "A" || a.OffsetMs != 0 || a.DurationMs != 500 {
		t.Fatalf("syllable A: %+v", a)
	}
	if b.Text != "B" || b.OffsetMs != 500 || b.DurationMs != 300 {
		t.Fatalf("syllable B: %+v", b)
	}
}

func TestParse_KaraokeColorPersistsOtherEffectsReset(t *testing.T) {
	script := "[Events]\nDialogue: 0,0:00:00.00,0:00:02.00,Default,,0,0,0,," +
		"{\\c&HFF0000&\\b1\\k10}A{\\k20}B\n"
	doc, err := Parse(strings.NewReader(script))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	syls := doc.Cues[0].Karaoke
	if len(syls) != 2 {
		t.Fatalf("expected 2 syllables, got %#v", syls)
	}
	hasBold := func(effects []subtitle.Effect) bool {
		for _, e := range effects {
			if _, ok := e.(subtitle.SetBold); ok {
				return true
			}
		}
		return false
	}
	hasColor := func(effects []subtitle.Effect) bool {
		for _, e := range effects {
			if _, ok := e.(subtitle.SetColor); ok {
				return true
			}
		}
		return false
	}
	if !hasBold(syls[0].Effects) || !hasColor(syls[0].Effects) {
		t.Fatalf("first syllable should carry bold and color: %#v", syls[0].Effects)
	}
	if hasBold(syls[1].Effects) {
		t.Fatalf("bold must not persist to the second syllable: %#v", syls[1].Effects)
	}
	if !hasColor(syls[1].Effects) {
		t.Fatalf("color must persist to the second syllable: %#v", syls[1].Effects)
	}
}

func TestParse_EqualStartKeepsSourceOrder(t *testing.T) {
	script := "[Events]\n" +
		"Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,first\n" +
		"Dialogue: 0,0:00:01.00,0:00:03.00,Default,,0,0,0,,second\n"
	doc, err := Parse(strings.NewReader(script))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Cues[0].Text != "first" || doc.Cues[1].Text != "second" {
		t.Fatalf("equal-start cues reordered: %#v", doc.Cues)
	}
}
