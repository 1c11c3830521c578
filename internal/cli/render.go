package cli

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrianmusante/subtitle-engine/internal/ass"
	"github.com/adrianmusante/subtitle-engine/internal/fs"
	"github.com/adrianmusante/subtitle-engine/internal/logging"
	"github.com/adrianmusante/subtitle-engine/internal/render"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] <script-file>",
	Short: "Rasterize one frame of a script-tag subtitle to a PNG",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for flag, env := range map[string]string{
			flagWidth:   envCanvasWidth,
			flagHeight:  envCanvasHeight,
			flagFontDir: envFontDir,
		} {
			var err error
			if flag == flagFontDir {
				err = resolveStringFlagFromEnv(cmd, flag, env)
			} else {
				err = resolveIntFlagFromEnv(cmd, flag, env)
			}
			if err != nil {
				return err
			}
		}

		log := logging.FromContext(cmd.Context())
		scriptPath := args[0]
		text, err := fs.ReadText(scriptPath)
		if err != nil {
			return err
		}

		ras, err := render.Native()
		if err != nil {
			// Missing native support degrades to "no overlay".
			log.Warn("native rasterizer unavailable", "err", err)
			cmd.Println("rendering unavailable")
			return nil
		}
		bridge, err := render.NewBridge(ras)
		if err != nil {
			log.Warn("native rasterizer failed to initialize", "err", err)
			cmd.Println("rendering unavailable")
			return nil
		}
		defer bridge.Destroy()

		width, _ := cmd.Flags().GetInt(flagWidth)
		height, _ := cmd.Flags().GetInt(flagHeight)
		if width <= 0 || height <= 0 {
			width, height = cfg.Canvas.Width, cfg.Canvas.Height
		}
		if width <= 0 || height <= 0 {
			doc, err := ass.Parse(strings.NewReader(text))
			if err != nil {
				return err
			}
			width, height = doc.PlayRes()
		}
		bridge.SetCanvas(width, height)

		fontDir, _ := cmd.Flags().GetString(flagFontDir)
		if fontDir == "" {
			fontDir = cfg.Fonts.Dir
		}
		loadFonts(bridge, fontDir)

		if err := bridge.LoadScript(text); err != nil {
			cmd.Println("rendering unavailable")
			return nil
		}

		at, _ := cmd.Flags().GetDuration(flagAt)
		result := bridge.RenderAt(at.Milliseconds())
		if result == nil {
			cmd.Printf("no content at %s\n", at)
			return nil
		}

		outPath, _ := cmd.Flags().GetString(flagOutput)
		if err := writePNG(result, outPath); err != nil {
			return err
		}
		cmd.Printf("%s: %dx%d at (%d,%d) in %dx%d canvas\n",
			outPath, result.Width, result.Height, result.OriginX, result.OriginY, width, height)
		return nil
	},
}

// loadFonts feeds every font file in dir to the renderer.
func loadFonts(bridge *render.Bridge, dir string) {
	if dir == "" {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".ttf", ".otf", ".ttc":
		default:
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		bridge.AddFont(name, data)
	}
}

func writePNG(result *render.Result, path string) error {
	img := image.NewNRGBA(image.Rect(0, 0, result.Width, result.Height))
	for i, p := range result.Pix {
		img.Pix[i*4+0] = uint8(p >> 16)
		img.Pix[i*4+1] = uint8(p >> 8)
		img.Pix[i*4+2] = uint8(p)
		img.Pix[i*4+3] = uint8(p >> 24)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return fs.WriteFile(&buf, path)
}

func init() {
	renderCmd.Flags().Duration(flagAt, 0, "Playback position to rasterize (e.g. 1m5s250ms)")
	renderCmd.Flags().Int(flagWidth, 0, "Canvas width (default: script PlayResX)")
	renderCmd.Flags().Int(flagHeight, 0, "Canvas height (default: script PlayResY)")
	renderCmd.Flags().String(flagFontDir, "", "Directory of extra font files")
	renderCmd.Flags().StringP(flagOutput, flagOutputShorthand, "frame.png", "Output PNG path")
}
