package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/adrianmusante/subtitle-engine/internal/ass"
	"github.com/adrianmusante/subtitle-engine/internal/fs"
	"github.com/adrianmusante/subtitle-engine/internal/srt"
	"github.com/adrianmusante/subtitle-engine/internal/subtitle"
	"github.com/spf13/cobra"
)

var cuesCmd = &cobra.Command{
	Use:   "cues [flags] <subtitle-file>",
	Short: "Parse a subtitle file and print its cue timeline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		cues, err := parseCues(path)
		if err != nil {
			return err
		}

		at, _ := cmd.Flags().GetDuration(flagAt)
		if cmd.Flags().Changed(flagAt) {
			return printActive(cmd, cues, at.Milliseconds())
		}

		showKaraoke, _ := cmd.Flags().GetBool(flagKaraoke)
		for i, c := range cues {
			cmd.Printf("%3d  %s --> %s  %s\n", i, formatMs(c.StartMs), formatMs(c.EndMs), oneLine(c.Text))
			if showKaraoke {
				for _, s := range c.Karaoke {
					cmd.Printf("      +%dms %dms\t%q\n", s.OffsetMs, s.DurationMs, s.Text)
				}
			}
		}
		return nil
	},
}

func parseCues(path string) ([]subtitle.Cue, error) {
	text, err := fs.ReadText(path)
	if err != nil {
		return nil, err
	}
	switch subtitle.DialectForPath(path) {
	case subtitle.DialectSimple:
		return srt.ParseString(text), nil
	case subtitle.DialectScript:
		doc, err := ass.Parse(strings.NewReader(text))
		if err != nil {
			return nil, err
		}
		return doc.Cues, nil
	default:
		return nil, fmt.Errorf("unsupported subtitle extension: %s", path)
	}
}

func printActive(cmd *cobra.Command, cues []subtitle.Cue, atMs int64) error {
	idx := subtitle.NearestIndex(cues, atMs)
	cmd.Printf("nearest index: %d\n", idx)
	for _, c := range subtitle.ActiveCues(cues, atMs) {
		cmd.Printf("%s --> %s  %s\n", formatMs(c.StartMs), formatMs(c.EndMs), oneLine(c.Text))
	}
	return nil
}

func formatMs(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, d/time.Millisecond)
}

func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " / ")
}

func init() {
	cuesCmd.Flags().Duration(flagAt, 0, "Print the cues active at this playback position (e.g. 1m5s250ms)")
	cuesCmd.Flags().Bool(flagKaraoke, false, "Also print karaoke syllable schedules")
}
