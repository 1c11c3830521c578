// Package player drives the per-tick subtitle lookup for one playback
// session: it loads the subtitle file discovered next to a media file,
// picks the dialect path, and answers "what should be on screen at this
// position" queries from a polling loop.
package player

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/adrianmusante/subtitle-engine/internal/ass"
	"github.com/adrianmusante/subtitle-engine/internal/fs"
	"github.com/adrianmusante/subtitle-engine/internal/render"
	"github.com/adrianmusante/subtitle-engine/internal/srt"
	"github.com/adrianmusante/subtitle-engine/internal/subtitle"
)

const DefaultPollInterval = 250 * time.Millisecond

// DefaultMaxRendersPerSec caps how often the native rasterizer is asked
// for a new frame; between renders the previous bitmap is reused.
const DefaultMaxRendersPerSec = 10.0

type Options struct {
	// MediaPath is the audio file whose sibling subtitle should be used.
	MediaPath string
	// SubtitlePath overrides discovery when set.
	SubtitlePath string
	// DiscoveryDepth extends discovery into subdirectories below the
	// media file when no sibling exists; 0 keeps it sibling-only.
	DiscoveryDepth int

	CanvasWidth  int
	CanvasHeight int

	// Rasterizer renders the script dialect; nil degrades to plain text.
	Rasterizer render.Rasterizer

	PollInterval     time.Duration
	MaxRendersPerSec float64
}

// Frame is what a display surface shows for one playback position.
type Frame struct {
	// Text is the active cue text (lines joined with newlines); empty
	// when no cue is active.
	Text string
	// Highlight is the index of the currently most relevant cue, -1
	// when the position precedes every cue.
	Highlight int
	// Image is the composited overlay for the script dialect, nil when
	// rendering is unavailable or nothing is visible.
	Image *render.Result
}

// Session holds the immutable parsed subtitle data and the rendering
// bridge for one media file. Not safe for concurrent use.
type Session struct {
	Path    string
	Dialect subtitle.Dialect

	doc    *subtitle.Document
	cues   []subtitle.Cue
	bridge *render.Bridge

	limiter   *rate.Limiter
	lastImage *render.Result
}

// Open discovers and parses the subtitle for opts.MediaPath. A missing
// or unparsable subtitle file yields a usable empty session: every
// query returns an empty frame, mirroring "no subtitle present".
func Open(opts Options) (*Session, error) {
	path := opts.SubtitlePath
	if path == "" {
		found, ok := fs.Discover(opts.MediaPath, opts.DiscoveryDepth)
		if !ok {
			slog.Debug("no subtitle found", "media", opts.MediaPath)
			return &Session{}, nil
		}
		path = found
	} else if !fs.IsSubtitlePath(path) {
		slog.Debug("not a subtitle file", "path", path)
		return &Session{}, nil
	}

	s := &Session{
		Path:    path,
		Dialect: subtitle.DialectForPath(path),
	}
	if opts.MaxRendersPerSec <= 0 {
		opts.MaxRendersPerSec = DefaultMaxRendersPerSec
	}
	s.limiter = rate.NewLimiter(rate.Limit(opts.MaxRendersPerSec), 1)

	text, err := fs.ReadText(path)
	if err != nil {
		slog.Warn("subtitle file unreadable", "path", path, "err", err)
		return &Session{}, nil
	}

	switch s.Dialect {
	case subtitle.DialectSimple:
		s.cues = srt.ParseString(text)
	case subtitle.DialectScript:
		doc, err := ass.Parse(strings.NewReader(text))
		if err != nil {
			slog.Warn("subtitle script unparsable", "path", path, "err", err)
			return &Session{}, nil
		}
		s.doc = doc
		s.cues = doc.Cues
		s.attachBridge(opts, text)
	default:
		return &Session{}, nil
	}
	return s, nil
}

// attachBridge wires the native renderer for the script dialect. Any
// failure logs and degrades to the plain-text path.
func (s *Session) attachBridge(opts Options, script string) {
	if opts.Rasterizer == nil {
		return
	}
	bridge, err := render.NewBridge(opts.Rasterizer)
	if err != nil {
		slog.Warn("subtitle rendering unavailable", "err", err)
		return
	}
	w, h := opts.CanvasWidth, opts.CanvasHeight
	if w <= 0 || h <= 0 {
		w, h = s.doc.PlayRes()
	}
	bridge.SetCanvas(w, h)
	if err := bridge.LoadScript(script); err != nil {
		bridge.Destroy()
		return
	}
	s.bridge = bridge
}

// Cues exposes the parsed timeline.
func (s *Session) Cues() []subtitle.Cue { return s.cues }

// Document exposes the parsed script document; nil for the simple
// dialect.
func (s *Session) Document() *subtitle.Document { return s.doc }

// At answers what to display at one playback position in milliseconds.
func (s *Session) At(posMs int64) Frame {
	f := Frame{Highlight: subtitle.NearestIndex(s.cues, posMs)}

	active := subtitle.ActiveCues(s.cues, posMs)
	lines := make([]string, 0, len(active))
	for _, c := range active {
		lines = append(lines, c.Text)
	}
	f.Text = strings.Join(lines, "\n")

	if s.bridge != nil {
		if s.limiter.Allow() {
			s.lastImage = s.bridge.RenderAt(posMs)
		}
		f.Image = s.lastImage
	}
	return f
}

// Clock reports the current playback position of an external transport.
type Clock interface {
	PositionMs() int64
}

// Run polls clock at the configured interval and hands each frame to
// emit until ctx is done.
func (s *Session) Run(ctx context.Context, clock Clock, interval time.Duration, emit func(Frame)) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			emit(s.At(clock.PositionMs()))
		}
	}
}

// Close releases the native rendering context, if any. Safe to call
// repeatedly.
func (s *Session) Close() {
	if s.bridge != nil {
		s.bridge.Destroy()
	}
}
