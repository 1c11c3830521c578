package ass

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/adrianmusante/subtitle-engine/internal/subtitle"
)

type section int

const (
	sectionNone section = iota
	sectionInfo
	sectionStyles
	sectionEvents
	sectionUnknown
)

// Canonical field orders used when a section carries no Format: line.
var (
	defaultStyleFormat = []string{
		"name", "fontname", "fontsize",
		"primarycolour", "secondarycolour", "outlinecolour", "backcolour",
		"bold", "italic", "underline", "strikeout",
		"scalex", "scaley", "spacing", "angle",
		"borderstyle", "outline", "shadow", "alignment",
		"marginl", "marginr", "marginv", "encoding",
	}
	defaultEventFormat = []string{
		"layer", "start", "end", "style", "name",
		"marginl", "marginr", "marginv", "effect", "text",
	}
)

type parser struct {
	doc         *subtitle.Document
	section     section
	styleFormat []string
	eventFormat []string
}

// Parse reads a script-tag subtitle document. Malformed lines are skipped;
// the only returned error is a read failure.
func Parse(r io.Reader) (*subtitle.Document, error) {
	p := &parser{
		doc: &subtitle.Document{
			Meta:   make(map[string]string),
			Styles: make(map[string]subtitle.Style),
		},
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		p.parseLine(strings.TrimSpace(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	subtitle.SortCues(p.doc.Cues)
	return p.doc, nil
}

func (p *parser) parseLine(line string) {
	if line == "" || strings.HasPrefix(line, ";") {
		return
	}
	if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
		switch strings.ToLower(line) {
		case "[script info]":
			p.section = sectionInfo
		case "[v4 styles]", "[v4+ styles]":
			p.section = sectionStyles
		case "[events]":
			p.section = sectionEvents
		default:
			p.section = sectionUnknown
		}
		return
	}

	switch p.section {
	case sectionInfo:
		if k, v, ok := splitKeyValue(line); ok {
			p.doc.Meta[k] = v
		}
	case sectionStyles:
		if v, ok := cutPrefixFold(line, "Format:"); ok {
			p.styleFormat = parseFormat(v)
			return
		}
		if v, ok := cutPrefixFold(line, "Style:"); ok {
			p.parseStyle(v)
		}
	case sectionEvents:
		if v, ok := cutPrefixFold(line, "Format:"); ok {
			p.eventFormat = parseFormat(v)
			return
		}
		if v, ok := cutPrefixFold(line, "Dialogue:"); ok {
			p.parseDialogue(v)
		}
	}
}

func splitKeyValue(line string) (key, value string, ok bool) {
	k, v, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	return strings.TrimSpace(k), strings.TrimSpace(v), true
}

func parseFormat(v string) []string {
	fields := strings.Split(v, ",")
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, strings.ToLower(strings.TrimSpace(f)))
	}
	return out
}

func cutPrefixFold(line, prefix string) (string, bool) {
	if len(line) < len(prefix) || !strings.EqualFold(line[:len(prefix)], prefix) {
		return "", false
	}
	return line[len(prefix):], true
}

// splitFields maps a positional value list against a format field order.
// Only the first len(format)-1 commas split; the last field keeps any
// commas it contains verbatim. Returns nil when the line is short.
func splitFields(v string, format []string) map[string]string {
	parts := strings.SplitN(v, ",", len(format))
	if len(parts) < len(format) {
		return nil
	}
	out := make(map[string]string, len(format))
	for i, name := range format {
		val := parts[i]
		if i < len(format)-1 {
			val = strings.TrimSpace(val)
		}
		out[name] = val
	}
	return out
}

func (p *parser) parseStyle(v string) {
	format := p.styleFormat
	if format == nil {
		format = defaultStyleFormat
	}
	fields := splitFields(v, format)
	if fields == nil {
		return
	}
	name := strings.TrimSpace(fields["name"])
	if name == "" {
		return
	}

	st := subtitle.DefaultStyle(name)
	if f := fields["fontname"]; f != "" {
		st.FontFamily = strings.TrimPrefix(f, "@")
	}
	setFloat(&st.FontSizePt, fields["fontsize"])
	setColor(&st.PrimaryColor, fields["primarycolour"])
	setColor(&st.SecondaryColor, fields["secondarycolour"])
	setColor(&st.OutlineColor, fields["outlinecolour"])
	setColor(&st.ShadowColor, fields["backcolour"])
	setFlag(&st.Bold, fields["bold"])
	setFlag(&st.Italic, fields["italic"])
	setFlag(&st.Underline, fields["underline"])
	setFlag(&st.Strikeout, fields["strikeout"])
	setFloat(&st.ScaleX, fields["scalex"])
	setFloat(&st.ScaleY, fields["scaley"])
	setFloat(&st.Spacing, fields["spacing"])
	setFloat(&st.RotationDeg, fields["angle"])
	if n, err := strconv.Atoi(fields["borderstyle"]); err == nil && n == int(subtitle.BorderBox) {
		st.BorderStyle = subtitle.BorderBox
	}
	setFloat(&st.OutlineWidth, fields["outline"])
	setFloat(&st.ShadowDepth, fields["shadow"])
	if n, err := strconv.Atoi(fields["alignment"]); err == nil && n >= 1 && n <= 9 {
		st.Alignment = n
	}
	setInt(&st.MarginL, fields["marginl"])
	setInt(&st.MarginR, fields["marginr"])
	setInt(&st.MarginV, fields["marginv"])
	setInt(&st.MarginB, fields["marginb"])
	setInt(&st.Encoding, fields["encoding"])

	p.doc.Styles[name] = st
}

func setFloat(dst *float64, s string) {
	if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		*dst = v
	}
}

func setInt(dst *int, s string) {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		*dst = v
	}
}

func setColor(dst *uint32, s string) {
	if strings.TrimSpace(s) != "" {
		*dst = ParseColor(s)
	}
}

// setFlag parses the style-table boolean convention: -1 and 1 enable,
// everything else leaves the default.
func setFlag(dst *bool, s string) {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		*dst = v == -1 || v == 1
	}
}

func (p *parser) parseDialogue(v string) {
	format := p.eventFormat
	if format == nil {
		format = defaultEventFormat
	}
	fields := splitFields(v, format)
	if fields == nil {
		return
	}

	raw := fields["text"]
	plain := PlainText(raw)
	if plain == "" {
		return
	}

	cue := subtitle.Cue{
		StartMs: ParseTime(fields["start"]),
		EndMs:   ParseTime(fields["end"]),
		Text:    plain,
		Raw:     raw,
		Style:   strings.TrimSpace(fields["style"]),
		Effects: collectEffects(raw),
		Karaoke: parseKaraoke(raw),
	}
	p.doc.Cues = append(p.doc.Cues, cue)
}

// PlainText strips every {...} override block from a dialogue text and
// translates the \N, \n and \h escapes.
func PlainText(raw string) string {
	var b strings.Builder
	depth := 0
	for i := 0; i < len(raw); i++ {
		switch c := raw[i]; c {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case '\\':
			if depth > 0 || i+1 >= len(raw) {
				continue
			}
			switch raw[i+1] {
			case 'N', 'n':
				b.WriteByte('\n')
				i++
			case 'h':
				b.WriteByte(' ')
				i++
			default:
				b.WriteByte(c)
			}
		default:
			if depth == 0 {
				b.WriteByte(c)
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func collectEffects(raw string) []subtitle.Effect {
	var effects []subtitle.Effect
	forEachBlock(raw, func(block, _ string) {
		effects = append(effects, ParseOverrides(block)...)
	})
	return effects
}

// forEachBlock walks the alternating {override}text pairs of a dialogue
// text, invoking fn with each block's content and the text that follows
// it up to the next block.
func forEachBlock(raw string, fn func(block, following string)) {
	for i := 0; i < len(raw); {
		open := strings.IndexByte(raw[i:], '{')
		if open < 0 {
			return
		}
		open += i
		close := strings.IndexByte(raw[open:], '}')
		if close < 0 {
			return
		}
		close += open
		next := strings.IndexByte(raw[close+1:], '{')
		end := len(raw)
		if next >= 0 {
			end = close + 1 + next
		}
		fn(raw[open+1:close], raw[close+1:end])
		i = end
	}
}

// parseKaraoke extracts the syllable schedule from a dialogue text.
// Non-karaoke overrides accumulate into a running effect set applied to
// the next syllable: color and alpha overrides persist across syllable
// boundaries, every other override is cleared once applied.
func parseKaraoke(raw string) []subtitle.KaraokeSyllable {
	var (
		syllables []subtitle.KaraokeSyllable
		pending   []subtitle.Effect
		offsetMs  int64
	)
	forEachBlock(raw, func(block, following string) {
		var k *subtitle.Karaoke
		for _, e := range ParseOverrides(block) {
			if kar, ok := e.(subtitle.Karaoke); ok {
				kar := kar
				k = &kar
				continue
			}
			pending = append(pending, e)
		}
		if k == nil {
			return
		}
		durMs := k.Centis * 10
		syl := subtitle.KaraokeSyllable{
			Text:       PlainText(following),
			OffsetMs:   offsetMs,
			DurationMs: durMs,
			Kind:       k.Kind,
		}
		syl.Effects = append(syl.Effects, pending...)
		syllables = append(syllables, syl)
		offsetMs += durMs
		pending = persistentOnly(pending)
	})
	return syllables
}

// persistentOnly keeps the overrides that linger across syllables.
func persistentOnly(effects []subtitle.Effect) []subtitle.Effect {
	var kept []subtitle.Effect
	for _, e := range effects {
		switch e.(type) {
		case subtitle.SetColor, subtitle.SetAlpha:
			kept = append(kept, e)
		}
	}
	return kept
}
