package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/shardpix/shardpix/pkg/imaging"
	"github.com/shardpix/shardpix/pkg/pool"
	"github.com/shardpix/shardpix/pkg/shamir"
	"github.com/shardpix/shardpix/pkg/sharefile"
)

var reconstructOut string

var reconstructCmd = &cobra.Command{
	Use:   "reconstruct <share>...",
	Short: "Reconstruct an image from share files",
	Long: `Reconstruct an image from share files.

Shares do not record the threshold they were generated with, so the share
count cannot be validated: supplying fewer shares than the threshold
produces a wrong image without any error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		shares, err := sharefile.ReadAll(args)
		if err != nil {
			return err
		}
		log.Info().
			Int("shares", len(shares)).
			Uint32("prime", shares[0].Prime).
			Stringer("mode", shares[0].Mode).
			Stringer("shape", shares[0].Shape).
			Msg("shares loaded")

		pl := pool.NewPool(0)
		defer pl.TearDown()

		img, err := shamir.Reconstruct(pl, shares)
		if err != nil {
			return err
		}
		if err := imaging.EncodeFile(reconstructOut, img); err != nil {
			return err
		}
		log.Info().Str("path", reconstructOut).Msg("image reconstructed")
		return nil
	},
}

func init() {
	reconstructCmd.Flags().StringVarP(&reconstructOut, "out", "o", "reconstructed.png", "output image path")
}
