package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const (
	envVerbose      = "SUBTITLE_ENGINE_VERBOSE"
	envConfig       = "SUBTITLE_ENGINE_CONFIG"
	envCanvasWidth  = "SUBTITLE_ENGINE_CANVAS_WIDTH"
	envCanvasHeight = "SUBTITLE_ENGINE_CANVAS_HEIGHT"
	envPollInterval = "SUBTITLE_ENGINE_POLL_INTERVAL"
	envFontDir      = "SUBTITLE_ENGINE_FONT_DIR"
)

const (
	flagAt               = "at"
	flagConfig           = "config"
	flagDuration         = "duration"
	flagFontDir          = "font-dir"
	flagHeight           = "height"
	flagInterval         = "interval"
	flagKaraoke          = "karaoke"
	flagOutput           = "output"
	flagOutputShorthand  = "o"
	flagSubtitle         = "subtitle"
	flagVerbose          = "verbose"
	flagVerboseShorthand = "v"
	flagWidth            = "width"
)

func parseEnvBool(key string) (bool, bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return false, false, nil
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return false, false, nil
	}

	switch strings.ToLower(v) {
	case "1", "t", "true", "y", "yes", "on":
		return true, true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, true, nil
	default:
		// Try Go's bool parser too (covers True/False etc.)
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, false, fmt.Errorf("invalid %s=%q (expected true/false)", key, v)
		}
		return b, true, nil
	}
}

func envString(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	return v, true
}

func resolveBoolFlagFromEnv(cmd *cobra.Command, flagName, envKey string) error {
	f := cmd.Flags().Lookup(flagName)
	if f == nil {
		return nil
	}
	// If CLI flag was provided, it wins.
	if f.Changed {
		return nil
	}
	b, ok, err := parseEnvBool(envKey)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return cmd.Flags().Set(flagName, strconv.FormatBool(b))
}

func resolveStringFlagFromEnv(cmd *cobra.Command, flagName, envKey string) error {
	f := cmd.Flags().Lookup(flagName)
	if f == nil {
		return nil
	}
	// If CLI flag was provided, it wins.
	if f.Changed {
		return nil
	}
	v, ok := envString(envKey)
	if !ok {
		return nil
	}
	return cmd.Flags().Set(flagName, v)
}

func resolveIntFlagFromEnv(cmd *cobra.Command, flagName, envKey string) error {
	f := cmd.Flags().Lookup(flagName)
	if f == nil {
		return nil
	}
	// If CLI flag was provided, it wins.
	if f.Changed {
		return nil
	}
	v, ok := envString(envKey)
	if !ok {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s=%q (expected integer): %w", envKey, v, err)
	}
	return cmd.Flags().Set(flagName, strconv.Itoa(i))
}

func resolveDurationFlagFromEnv(cmd *cobra.Command, flagName, envKey string) error {
	f := cmd.Flags().Lookup(flagName)
	if f == nil {
		return nil
	}
	// If CLI flag was provided, it wins.
	if f.Changed {
		return nil
	}
	v, ok := envString(envKey)
	if !ok {
		return nil
	}
	dur, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s=%q (expected duration, e.g. 250ms): %w", envKey, v, err)
	}
	return cmd.Flags().Set(flagName, dur.String())
}
