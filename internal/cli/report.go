package cli

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/shardpix/shardpix/pkg/imaging"
	"github.com/shardpix/shardpix/pkg/pixmap"
	"github.com/shardpix/shardpix/pkg/report"
	"github.com/shardpix/shardpix/pkg/sharefile"
)

var reportOpts struct {
	original string
	out      string
}

var reportCmd = &cobra.Command{
	Use:   "report <share>...",
	Short: "Render an HTML histogram report of share value distributions",
	Long: `Render an HTML page with one pixel-value histogram per input. The
original image, when given, shows its structure; every share should look
like uniform noise.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		shares, err := sharefile.ReadAll(args)
		if err != nil {
			return err
		}

		var original *pixmap.Pixmap
		if reportOpts.original != "" {
			original, err = imaging.DecodeFile(reportOpts.original, false)
			if err != nil {
				return err
			}
		}

		f, err := os.Create(reportOpts.out)
		if err != nil {
			return err
		}
		if err := report.WritePage(f, original, shares); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.Info().Int("shares", len(shares)).Str("path", reportOpts.out).Msg("report written")
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportOpts.original, "image", "i", "", "original image to include for contrast")
	reportCmd.Flags().StringVarP(&reportOpts.out, "out", "o", "report.html", "output html path")
}
