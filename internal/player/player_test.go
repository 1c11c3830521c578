package player

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrianmusante/subtitle-engine/internal/subtitle"
)

const sampleSRT = "1\n00:00:01,000 --> 00:00:03,000\nfirst line\n\n2\n00:00:05,000 --> 00:00:07,000\nsecond line\n"

func writeSubtitle(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestOpen_ExplicitSubtitlePath(t *testing.T) {
	dir := t.TempDir()
	path := writeSubtitle(t, dir, "movie.srt", sampleSRT)

	s, err := Open(Options{SubtitlePath: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if s.Dialect != subtitle.DialectSimple {
		t.Fatalf("dialect = %v, want simple", s.Dialect)
	}
	if len(s.Cues()) != 2 {
		t.Fatalf("cues = %d, want 2", len(s.Cues()))
	}
}

func TestOpen_DiscoversSibling(t *testing.T) {
	dir := t.TempDir()
	writeSubtitle(t, dir, "movie.srt", sampleSRT)

	s, err := Open(Options{MediaPath: filepath.Join(dir, "movie.mp3")})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if s.Path != filepath.Join(dir, "movie.srt") {
		t.Fatalf("path = %q", s.Path)
	}
}

func TestOpen_TreeDiscovery(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "subs"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeSubtitle(t, filepath.Join(dir, "subs"), "movie.srt", sampleSRT)

	s, err := Open(Options{
		MediaPath:      filepath.Join(dir, "movie.mp3"),
		DiscoveryDepth: 2,
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if s.Path != filepath.Join(dir, "subs", "movie.srt") {
		t.Fatalf("path = %q", s.Path)
	}
	if len(s.Cues()) != 2 {
		t.Fatalf("cues = %d, want 2", len(s.Cues()))
	}

	// Without a depth the search stays sibling-only.
	s2, err := Open(Options{MediaPath: filepath.Join(dir, "movie.mp3")})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s2.Close()
	if s2.Dialect != subtitle.DialectNone {
		t.Fatalf("dialect = %v, want none", s2.Dialect)
	}
}

func TestOpen_ExplicitNonSubtitlePath(t *testing.T) {
	dir := t.TempDir()
	path := writeSubtitle(t, dir, "notes.txt", "not a subtitle")

	s, err := Open(Options{SubtitlePath: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if s.Dialect != subtitle.DialectNone {
		t.Fatalf("dialect = %v, want none", s.Dialect)
	}
}

func TestOpen_MissingSubtitleYieldsEmptySession(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(Options{MediaPath: filepath.Join(dir, "movie.mp3")})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if s.Dialect != subtitle.DialectNone {
		t.Fatalf("dialect = %v, want none", s.Dialect)
	}
	f := s.At(1000)
	if f.Text != "" || f.Highlight != -1 || f.Image != nil {
		t.Fatalf("empty session frame = %+v", f)
	}
}

func TestSession_At(t *testing.T) {
	dir := t.TempDir()
	path := writeSubtitle(t, dir, "movie.srt", sampleSRT)

	s, err := Open(Options{SubtitlePath: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	f := s.At(2000)
	if f.Text != "first line" || f.Highlight != 0 {
		t.Fatalf("At(2000) = %+v", f)
	}

	// Inside the gap: nearest cue is still the first one, no text.
	f = s.At(4000)
	if f.Text != "" || f.Highlight != 0 {
		t.Fatalf("At(4000) = %+v", f)
	}

	f = s.At(6000)
	if f.Text != "second line" || f.Highlight != 1 {
		t.Fatalf("At(6000) = %+v", f)
	}

	f = s.At(500)
	if f.Text != "" || f.Highlight != -1 {
		t.Fatalf("At(500) = %+v", f)
	}
}

func TestOpen_ScriptDialectWithoutRasterizer(t *testing.T) {
	dir := t.TempDir()
	script := "[Events]\nFormat: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n" +
		"Dialogue: 0,0:00:01.00,0:00:03.00,Default,,0,0,0,,hello\n"
	path := writeSubtitle(t, dir, "movie.ass", script)

	s, err := Open(Options{SubtitlePath: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if s.Dialect != subtitle.DialectScript {
		t.Fatalf("dialect = %v, want script", s.Dialect)
	}
	if s.Document() == nil {
		t.Fatalf("expected parsed document")
	}
	f := s.At(2000)
	if f.Text != "hello" {
		t.Fatalf("At(2000).Text = %q", f.Text)
	}
	if f.Image != nil {
		t.Fatalf("no rasterizer means no image")
	}
}
