package ass

import (
	"strconv"
	"strings"

	"github.com/adrianmusante/subtitle-engine/internal/subtitle"
)

// ParseOverrides tokenizes the content of one {...} override block
// (braces already stripped) into an ordered effect list. Tags are matched
// longest-prefix-first; a tag with a malformed payload is dropped and
// parsing continues with the rest of the block.
func ParseOverrides(block string) []subtitle.Effect {
	var effects []subtitle.Effect
	for _, tag := range strings.Split(block, "\\") {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if e, ok := parseTag(tag); ok {
			effects = append(effects, e)
		}
	}
	return effects
}

func parseTag(tag string) (subtitle.Effect, bool) {
	switch {
	case strings.HasPrefix(tag, "fscx"):
		if v, ok := parseNum(tag[4:]); ok {
			return subtitle.Scale{X: v, HasX: true}, true
		}
	case strings.HasPrefix(tag, "fscy"):
		if v, ok := parseNum(tag[4:]); ok {
			return subtitle.Scale{Y: v, HasY: true}, true
		}
	case strings.HasPrefix(tag, "fsp"):
		// Spacing overrides are not modeled.
	case strings.HasPrefix(tag, "fs"):
		if v, ok := parseNum(tag[2:]); ok && v > 0 {
			return subtitle.SetFontSize{Points: v}, true
		}
	case strings.HasPrefix(tag, "frz"):
		if v, ok := parseNum(tag[3:]); ok {
			return subtitle.RotateZ{Degrees: v}, true
		}
	case strings.HasPrefix(tag, "frx"), strings.HasPrefix(tag, "fry"):
		// Only Z rotation is supported.
	case strings.HasPrefix(tag, "fr"):
		if v, ok := parseNum(tag[2:]); ok {
			return subtitle.RotateZ{Degrees: v}, true
		}
	case strings.HasPrefix(tag, "fade("), strings.HasPrefix(tag, "fad("):
		if args, ok := parseArgs(tag, 2, 2); ok {
			return subtitle.Fade{InMs: int64(args[0]), OutMs: int64(args[1])}, true
		}
	case strings.HasPrefix(tag, "pos("):
		if args, ok := parseArgs(tag, 2, 2); ok {
			return subtitle.Position{X: args[0], Y: args[1]}, true
		}
	case strings.HasPrefix(tag, "move("):
		if args, ok := parseArgs(tag, 4, 6); ok && len(args) != 5 {
			m := subtitle.Move{X1: args[0], Y1: args[1], X2: args[2], Y2: args[3]}
			if len(args) == 6 {
				m.T1Ms = int64(args[4])
				m.T2Ms = int64(args[5])
			}
			return m, true
		}
	case strings.HasPrefix(tag, "bord"):
		if v, ok := parseNum(tag[4:]); ok && v >= 0 {
			return subtitle.SetBorder{Width: v}, true
		}
	case strings.HasPrefix(tag, "shad"):
		if v, ok := parseNum(tag[4:]); ok && v >= 0 {
			return subtitle.SetShadow{Depth: v}, true
		}
	case strings.HasPrefix(tag, "an"):
		if v, ok := parseNum(tag[2:]); ok && v >= 1 && v <= 9 {
			return subtitle.SetAlignment{Numpad: int(v)}, true
		}
	case strings.HasPrefix(tag, "alpha"):
		if v, ok := ParseAlpha(tag[5:]); ok {
			return subtitle.SetAlpha{Slot: 0, Value: v}, true
		}
	case len(tag) > 2 && tag[1] == 'a' && tag[0] >= '1' && tag[0] <= '4':
		if v, ok := ParseAlpha(tag[2:]); ok {
			return subtitle.SetAlpha{Slot: int(tag[0] - '0'), Value: v}, true
		}
	case len(tag) > 2 && tag[1] == 'c' && tag[0] >= '1' && tag[0] <= '4':
		if strings.HasPrefix(tag[2:], "&") {
			return subtitle.SetColor{Slot: int(tag[0] - '0'), Value: ParseColor(tag[2:])}, true
		}
	case strings.HasPrefix(tag, "c&"):
		return subtitle.SetColor{Slot: 1, Value: ParseColor(tag[1:])}, true
	case strings.HasPrefix(tag, "b") && !strings.HasPrefix(tag, "bl"):
		if v, ok := parseNum(tag[1:]); ok {
			return subtitle.SetBold{On: v == 1 || v >= 700}, true
		}
	case strings.HasPrefix(tag, "i"):
		if v, ok := parseNum(tag[1:]); ok {
			return subtitle.SetItalic{On: v != 0}, true
		}
	case strings.HasPrefix(tag, "kf"):
		if v, ok := parseNum(tag[2:]); ok && v >= 0 {
			return subtitle.Karaoke{Centis: int64(v), Kind: subtitle.KaraokeSweep}, true
		}
	case strings.HasPrefix(tag, "ko"):
		if v, ok := parseNum(tag[2:]); ok && v >= 0 {
			return subtitle.Karaoke{Centis: int64(v), Kind: subtitle.KaraokeOutline}, true
		}
	case strings.HasPrefix(tag, "K"):
		if v, ok := parseNum(tag[1:]); ok && v >= 0 {
			return subtitle.Karaoke{Centis: int64(v), Kind: subtitle.KaraokeSweep}, true
		}
	case strings.HasPrefix(tag, "k"):
		if v, ok := parseNum(tag[1:]); ok && v >= 0 {
			return subtitle.Karaoke{Centis: int64(v), Kind: subtitle.KaraokeFill}, true
		}
	}
	return nil, false
}

func parseNum(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseArgs extracts the comma-separated numeric arguments of a
// parenthesized tag like move(x1,y1,x2,y2). The argument count must fall
// within [min, max].
func parseArgs(tag string, min, max int) ([]float64, bool) {
	open := strings.IndexByte(tag, '(')
	close := strings.IndexByte(tag, ')')
	if open < 0 || close < open {
		return nil, false
	}
	raw := strings.Split(tag[open+1:close], ",")
	if len(raw) < min || len(raw) > max {
		return nil, false
	}
	args := make([]float64, 0, len(raw))
	for _, r := range raw {
		v, ok := parseNum(r)
		if !ok {
			return nil, false
		}
		args = append(args, v)
	}
	return args, true
}
