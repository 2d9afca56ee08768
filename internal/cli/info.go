package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shardpix/shardpix/pkg/sharefile"
)

var infoCmd = &cobra.Command{
	Use:   "info <share>...",
	Short: "Print the metadata of share files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			s, err := sharefile.ReadFile(path)
			if err != nil {
				return err
			}
			fmt.Printf("%s: x=%d prime=%d mode=%v shape=%v values=%d\n",
				path, s.X, s.Prime, s.Mode, s.Shape, len(s.Values))
		}
		return nil
	},
}
