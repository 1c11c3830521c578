package subtitle

import (
	"path/filepath"
	"strings"
)

// Dialect identifies which subtitle text format a file carries.
type Dialect int

const (
	DialectNone   Dialect = iota
	DialectSimple         // timed-text blocks (.srt)
	DialectScript         // tag-based script (.ass, .ssa)
)

func (d Dialect) String() string {
	switch d {
	case DialectSimple:
		return "simple"
	case DialectScript:
		return "script"
	default:
		return "none"
	}
}

// DialectForPath maps a file extension to its dialect.
func DialectForPath(path string) Dialect {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		return DialectSimple
	case ".ass", ".ssa":
		return DialectScript
	default:
		return DialectNone
	}
}
