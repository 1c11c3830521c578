package srt

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/adrianmusante/subtitle-engine/internal/subtitle"
)

// Both ',' and '.' are accepted as the millisecond separator; encoders in
// the wild produce either.
var (
	timeFramePattern = regexp.MustCompile(`(\d+):(\d+):(\d+)[,.](\d+)\s*-->\s*(\d+):(\d+):(\d+)[,.](\d+)`)
	timestampPattern = regexp.MustCompile(`^(\d+):(\d+):(\d+)[,.](\d+)$`)
	markupPattern    = regexp.MustCompile(`</?[A-Za-z][^>]*>`)
)

// ParseTime converts a simple-dialect timestamp HH:MM:SS,mmm (or with a
// '.' separator) to milliseconds. Malformed input yields 0.
func ParseTime(s string) int64 {
	m := timestampPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0
	}
	return toMillis(m[1:5])
}

func toMillis(parts []string) int64 {
	hour, _ := strconv.Atoi(parts[0])
	minute, _ := strconv.Atoi(parts[1])
	second, _ := strconv.Atoi(parts[2])
	millisecond, _ := strconv.Atoi(parts[3])
	return int64(hour)*3600000 + int64(minute)*60000 + int64(second)*1000 + int64(millisecond)
}

// Parse reads a simple timed-text document into a sorted cue timeline.
//
// Blocks are separated by blank lines. Within a block the first line
// matching the timestamp-range pattern wins; a leading sequence-index
// line is tolerated and ignored. Blocks with no timestamp line are
// dropped silently. Angle-bracket markup is stripped textually.
func Parse(r io.Reader) ([]subtitle.Cue, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(data)), nil
}

// ParseString is Parse over an in-memory document.
func ParseString(content string) []subtitle.Cue {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	var cues []subtitle.Cue
	for _, block := range strings.Split(content, "\n\n") {
		if cue, ok := parseBlock(block); ok {
			cues = append(cues, cue)
		}
	}
	subtitle.SortCues(cues)
	return cues
}

func parseBlock(block string) (subtitle.Cue, bool) {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		m := timeFramePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		raw := strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
		text := strings.TrimSpace(markupPattern.ReplaceAllString(raw, ""))
		if text == "" {
			return subtitle.Cue{}, false
		}
		return subtitle.Cue{
			StartMs: toMillis(m[1:5]),
			EndMs:   toMillis(m[5:9]),
			Text:    text,
			Raw:     raw,
		}, true
	}
	return subtitle.Cue{}, false
}
