package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPlay_EmptyTimelineReportsNoCues(t *testing.T) {
	// Keep the user config directory out of the picture.
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	subPath := filepath.Join(dir, "movie.srt")
	if err := os.WriteFile(subPath, []byte("not a timed block\n"), 0o644); err != nil {
		t.Fatalf("write subtitle: %v", err)
	}
	mediaPath := filepath.Join(dir, "movie.mp3")
	if err := os.WriteFile(mediaPath, []byte("not audio"), 0o644); err != nil {
		t.Fatalf("write media: %v", err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"play", mediaPath, "--subtitle", subPath})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "no cues") {
		t.Fatalf("expected a 'no cues' report, got:\n%s", out.String())
	}
}
