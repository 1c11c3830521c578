package media

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// JSON shape of the ffprobe output we care about.
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration probes a media file's playback length via ffprobe. The engine
// never decodes audio itself; the duration only bounds simulated clocks.
func Duration(path string) (time.Duration, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", path, err)
	}
	var p probeOutput
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		return 0, fmt.Errorf("parse probe output: %w", err)
	}
	seconds, err := strconv.ParseFloat(p.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", p.Format.Duration, err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}
