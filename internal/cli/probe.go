package cli

import (
	"github.com/adrianmusante/subtitle-engine/internal/fs"
	"github.com/adrianmusante/subtitle-engine/internal/logging"
	"github.com/adrianmusante/subtitle-engine/internal/media"
	"github.com/adrianmusante/subtitle-engine/internal/subtitle"
	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe [flags] <media-file>",
	Short: "Locate the subtitle file for a media file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.FromContext(cmd.Context())
		mediaPath := args[0]

		if withDuration, _ := cmd.Flags().GetBool(flagDuration); withDuration {
			dur, err := media.Duration(mediaPath)
			if err != nil {
				log.Warn("could not probe media duration", "err", err)
			} else {
				cmd.Printf("duration: %s\n", dur)
			}
		}

		path, ok := fs.Discover(mediaPath, cfg.Playback.DiscoveryDepth)
		if !ok {
			// A missing subtitle is an ordinary outcome, not an error.
			cmd.Println("no subtitle")
			return nil
		}
		cues, err := parseCues(path)
		if err != nil {
			return err
		}
		cmd.Printf("subtitle: %s\n", path)
		cmd.Printf("dialect:  %s\n", subtitle.DialectForPath(path))
		cmd.Printf("cues:     %d\n", len(cues))
		return nil
	},
}

func init() {
	probeCmd.Flags().Bool(flagDuration, false, "Also probe the media file's duration via ffprobe")
}
