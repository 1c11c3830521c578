package fs

import (
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Subtitle extensions in preference order: the script-tag dialect wins
// over the simple dialect when both siblings exist.
var subtitleExts = []string{".ass", ".ssa", ".srt"}

// extRank returns the preference rank of path's extension, -1 when the
// extension is not a subtitle extension.
func extRank(path string) int {
	ext := strings.ToLower(filepath.Ext(path))
	for i, e := range subtitleExts {
		if ext == e {
			return i
		}
	}
	return -1
}

// IsSubtitlePath reports whether path has a recognized subtitle extension.
func IsSubtitlePath(path string) bool {
	return extRank(path) >= 0
}

// Discover locates the subtitle for a media file: a same-named sibling
// first, then a bounded recursive search below the media file's
// directory when depth > 0.
func Discover(mediaPath string, depth int) (string, bool) {
	if p, ok := FindSibling(mediaPath); ok {
		return p, true
	}
	if depth <= 0 {
		return "", false
	}
	base := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	if base == "" {
		return "", false
	}
	dir := filepath.Dir(mediaPath)
	rel, ok := FindInTree(os.DirFS(dir), base, depth)
	if !ok {
		return "", false
	}
	return filepath.Join(dir, rel), true
}

// FindSibling locates a subtitle file next to a media file: same
// directory, same base name, one of the known extensions. A missing
// subtitle is an ordinary outcome, not an error.
func FindSibling(mediaPath string) (string, bool) {
	dir := filepath.Dir(mediaPath)
	base := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	if base == "" {
		return "", false
	}
	for _, ext := range subtitleExts {
		p := filepath.Join(dir, base+ext)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

// FindInTree searches fsys for a subtitle matching baseName, recursing
// into subdirectories up to maxDepth levels below the root. Used when
// the media source is not a plain sibling-addressable filesystem.
func FindInTree(fsys iofs.FS, baseName string, maxDepth int) (string, bool) {
	best := -1
	found := ""
	_ = iofs.WalkDir(fsys, ".", func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return iofs.SkipDir
		}
		if d.IsDir() {
			if depth(path) >= maxDepth {
				return iofs.SkipDir
			}
			return nil
		}
		name := d.Name()
		if !IsSubtitlePath(name) {
			return nil
		}
		if strings.TrimSuffix(name, filepath.Ext(name)) != baseName {
			return nil
		}
		if r := extRank(name); best == -1 || r < best {
			best = r
			found = path
		}
		return nil
	})
	return found, found != ""
}

func depth(path string) int {
	if path == "." {
		return 0
	}
	return strings.Count(path, "/") + 1
}
