package ass

import (
	"strconv"
	"strings"
)

// ParseTime converts a script timestamp of the form H:MM:SS.cc
// (centiseconds) to milliseconds. Malformed input yields 0.
func ParseTime(s string) int64 {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 {
		return 0
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 {
		return 0
	}
	secParts := strings.SplitN(parts[2], ".", 2)
	sec, err := strconv.Atoi(secParts[0])
	if err != nil || sec < 0 {
		return 0
	}
	var cs int
	if len(secParts) == 2 {
		cs, err = strconv.Atoi(secParts[1])
		if err != nil || cs < 0 {
			return 0
		}
	}
	return int64(h)*3600000 + int64(m)*60000 + int64(sec)*1000 + int64(cs)*10
}

const opaqueWhite = 0xFFFFFFFF

// ParseColor decodes a script color of the form &H[AA]RRGGBB& into
// standard ARGB where alpha 255 is fully opaque. A present leading alpha
// byte is stored inverted in the script (0 = opaque, 255 = transparent)
// and is un-inverted here; an absent alpha byte means fully opaque.
// Unparsable input yields opaque white.
func ParseColor(s string) uint32 {
	hex := strings.TrimSpace(s)
	hex = strings.TrimPrefix(hex, "&")
	if len(hex) > 0 && (hex[0] == 'H' || hex[0] == 'h') {
		hex = hex[1:]
	}
	hex = strings.TrimSuffix(hex, "&")
	if hex == "" || len(hex) > 8 {
		return opaqueWhite
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return opaqueWhite
	}
	alpha := uint32(0xFF)
	if len(hex) > 6 {
		alpha = 0xFF - (uint32(v) >> 24 & 0xFF)
	}
	return alpha<<24 | uint32(v)&0xFFFFFF
}

// ParseAlpha decodes a bare alpha payload such as &H80& (stored inverted,
// 0 = opaque) to a standard alpha where 255 is opaque.
func ParseAlpha(s string) (uint8, bool) {
	hex := strings.TrimSpace(s)
	hex = strings.TrimPrefix(hex, "&")
	if len(hex) > 0 && (hex[0] == 'H' || hex[0] == 'h') {
		hex = hex[1:]
	}
	hex = strings.TrimSuffix(hex, "&")
	if hex == "" || len(hex) > 2 {
		return 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 8)
	if err != nil {
		return 0, false
	}
	return 0xFF - uint8(v), true
}
