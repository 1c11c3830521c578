package cli

import (
	"context"
	"errors"
	"time"

	"github.com/adrianmusante/subtitle-engine/internal/logging"
	"github.com/adrianmusante/subtitle-engine/internal/media"
	"github.com/adrianmusante/subtitle-engine/internal/player"
	"github.com/adrianmusante/subtitle-engine/internal/render"
	"github.com/adrianmusante/subtitle-engine/internal/subtitle"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [flags] <media-file>",
	Short: "Simulate playback and print the active subtitle at each tick",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := resolveDurationFlagFromEnv(cmd, flagInterval, envPollInterval); err != nil {
			return err
		}

		log := logging.FromContext(cmd.Context())
		mediaPath := args[0]

		ras, err := render.Native()
		if err != nil {
			log.Debug("native rasterizer unavailable; text-only playback", "err", err)
			ras = nil
		}

		subtitlePath, _ := cmd.Flags().GetString(flagSubtitle)
		session, err := player.Open(player.Options{
			MediaPath:        mediaPath,
			SubtitlePath:     subtitlePath,
			DiscoveryDepth:   cfg.Playback.DiscoveryDepth,
			CanvasWidth:      cfg.Canvas.Width,
			CanvasHeight:     cfg.Canvas.Height,
			Rasterizer:       ras,
			MaxRendersPerSec: cfg.Playback.MaxRendersPerSec,
		})
		if err != nil {
			return err
		}
		defer session.Close()

		if session.Dialect == subtitle.DialectNone {
			cmd.Println("no subtitle")
			return nil
		}
		cmd.Printf("playing with %s (%s dialect, %d cues)\n",
			session.Path, session.Dialect, len(session.Cues()))

		end := timelineEnd(session)
		if dur, err := media.Duration(mediaPath); err == nil {
			end = dur
		} else {
			log.Debug("media duration unknown; stopping after the last cue", "err", err)
		}
		if end <= 0 {
			cmd.Println("no cues")
			return nil
		}

		interval, _ := cmd.Flags().GetDuration(flagInterval)
		if interval <= 0 {
			interval = cfg.PollInterval()
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), end)
		defer cancel()

		clock := &wallClock{start: time.Now()}
		var lastText string
		err = session.Run(ctx, clock, interval, func(f player.Frame) {
			if f.Image != nil {
				cmd.Printf("[%6dms] image %dx%d at (%d,%d)\n",
					clock.PositionMs(), f.Image.Width, f.Image.Height, f.Image.OriginX, f.Image.OriginY)
				return
			}
			if f.Text != lastText {
				lastText = f.Text
				cmd.Printf("[%6dms] %s\n", clock.PositionMs(), oneLine(f.Text))
			}
		})
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

// wallClock simulates a transport position feed from the wall clock.
type wallClock struct {
	start time.Time
}

func (c *wallClock) PositionMs() int64 {
	return time.Since(c.start).Milliseconds()
}

func timelineEnd(session *player.Session) time.Duration {
	var endMs int64
	for _, c := range session.Cues() {
		if c.EndMs > endMs {
			endMs = c.EndMs
		}
	}
	return time.Duration(endMs) * time.Millisecond
}

func init() {
	playCmd.Flags().Duration(flagInterval, 0, "Polling interval (default 250ms)")
	playCmd.Flags().String(flagSubtitle, "", "Explicit subtitle file (skips sibling discovery)")
}
