package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/shardpix/shardpix/pkg/imaging"
	"github.com/shardpix/shardpix/pkg/pixmap"
)

var genOpts struct {
	pattern string
	mode    string
	width   int
	height  int
	depth   int
	cell    int
	seed    string
	out     string
}

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a test image",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := pixmap.ParseMode(genOpts.mode)
		if err != nil {
			return err
		}

		var img *pixmap.Pixmap
		switch genOpts.pattern {
		case "gradient":
			img = imaging.Gradient(mode, genOpts.height, genOpts.width, genOpts.depth)
		case "checker":
			img = imaging.Checkerboard(mode, genOpts.height, genOpts.width, genOpts.depth, genOpts.cell)
		case "noise":
			img = imaging.Noise([]byte(genOpts.seed), mode, genOpts.height, genOpts.width, genOpts.depth)
		default:
			return fmt.Errorf("unknown pattern %q (want gradient, checker or noise)", genOpts.pattern)
		}

		if err := imaging.EncodeFile(genOpts.out, img); err != nil {
			return err
		}
		log.Info().
			Str("pattern", genOpts.pattern).
			Stringer("shape", img.Shape).
			Int("bit_depth", genOpts.depth).
			Str("path", genOpts.out).
			Msg("test image written")
		return nil
	},
}

func init() {
	genCmd.Flags().StringVarP(&genOpts.pattern, "pattern", "p", "gradient", "pattern: gradient, checker or noise")
	genCmd.Flags().StringVarP(&genOpts.mode, "mode", "m", "grayscale", "image mode: grayscale or rgb")
	genCmd.Flags().IntVar(&genOpts.width, "width", 256, "image width")
	genCmd.Flags().IntVar(&genOpts.height, "height", 256, "image height")
	genCmd.Flags().IntVarP(&genOpts.depth, "depth", "d", 8, "bit depth: 4, 8 or 16")
	genCmd.Flags().IntVar(&genOpts.cell, "cell", 16, "checker cell size in pixels")
	genCmd.Flags().StringVar(&genOpts.seed, "seed", "shardpix", "seed for the noise pattern")
	genCmd.Flags().StringVarP(&genOpts.out, "out", "o", "test.png", "output image path")
}
