package cli

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/shardpix/shardpix/pkg/imaging"
	"github.com/shardpix/shardpix/pkg/pool"
	"github.com/shardpix/shardpix/pkg/shamir"
	"github.com/shardpix/shardpix/pkg/sharefile"
)

var splitOpts struct {
	input     string
	outDir    string
	n         int
	k         int
	prime     uint32
	grayscale bool
}

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split an image into n shares with threshold k",
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := imaging.DecodeFile(splitOpts.input, splitOpts.grayscale)
		if err != nil {
			return err
		}
		log.Info().
			Stringer("mode", img.Mode).
			Stringer("shape", img.Shape).
			Uint32("max_value", img.Max()).
			Int("bit_depth", img.BitDepth()).
			Msg("image loaded")

		pl := pool.NewPool(0)
		defer pl.TearDown()

		shares, err := shamir.Split(rand.Reader, pl, img, splitOpts.k, splitOpts.n, splitOpts.prime)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(splitOpts.outDir, 0o755); err != nil {
			return err
		}
		var g errgroup.Group
		for _, s := range shares {
			s := s
			g.Go(func() error {
				path := filepath.Join(splitOpts.outDir, fmt.Sprintf("share_x%d%s", s.X, sharefile.Ext))
				if err := sharefile.WriteFile(path, s); err != nil {
					return err
				}
				log.Debug().Str("path", path).Uint32("x", s.X).Msg("share written")
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		log.Info().
			Int("shares", splitOpts.n).
			Int("threshold", splitOpts.k).
			Uint32("prime", shares[0].Prime).
			Str("dir", splitOpts.outDir).
			Msgf("split complete; any %d shares reconstruct the image", splitOpts.k)
		return nil
	},
}

func init() {
	splitCmd.Flags().StringVarP(&splitOpts.input, "input", "i", "", "image to split (png or jpeg)")
	splitCmd.Flags().StringVarP(&splitOpts.outDir, "out", "o", "shares", "directory to write share files to")
	splitCmd.Flags().IntVarP(&splitOpts.n, "shares", "n", 5, "total number of shares")
	splitCmd.Flags().IntVarP(&splitOpts.k, "threshold", "k", 3, "shares needed for reconstruction")
	splitCmd.Flags().Uint32Var(&splitOpts.prime, "prime", 0, "explicit field modulus (default: smallest fitting candidate)")
	splitCmd.Flags().BoolVar(&splitOpts.grayscale, "grayscale", false, "convert the image to grayscale before splitting")
	_ = splitCmd.MarkFlagRequired("input")
}
