package cli

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/sha3"

	"github.com/shardpix/shardpix/pkg/imaging"
	"github.com/shardpix/shardpix/pkg/pixmap"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <image-a> <image-b>",
	Short: "Compare two images pixel by pixel",
	Long: `Compare two images pixel by pixel, typically an original against its
reconstruction. Exits nonzero when the images differ.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := imaging.DecodeFile(args[0], false)
		if err != nil {
			return err
		}
		b, err := imaging.DecodeFile(args[1], false)
		if err != nil {
			return err
		}

		fmt.Printf("%s: mode=%v shape=%v sha3=%s\n", args[0], a.Mode, a.Shape, fingerprint(a))
		fmt.Printf("%s: mode=%v shape=%v sha3=%s\n", args[1], b.Mode, b.Shape, fingerprint(b))

		diff, err := imaging.Compare(a, b)
		if err != nil {
			return err
		}
		if !diff.Identical() {
			return fmt.Errorf("images differ at %d of %d positions (max delta %d)",
				diff.Mismatched, diff.Positions, diff.MaxDelta)
		}
		fmt.Printf("identical: %d positions match exactly\n", diff.Positions)
		return nil
	},
}

// fingerprint hashes the decoded pixel data, so the same image stored in
// different containers compares equal.
func fingerprint(p *pixmap.Pixmap) string {
	h := sha3.New256()
	_ = binary.Write(h, binary.BigEndian, p.Values)
	return hex.EncodeToString(h.Sum(nil))
}
