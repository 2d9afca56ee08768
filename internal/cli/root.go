// Package cli implements the shardpix command line interface.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "shardpix",
	Short: "Threshold secret sharing for images",
	Long: `shardpix splits an image into n share files such that any k of them
reconstruct the original image exactly, while any fewer reveal nothing
about it. Share files are self-describing; their names carry no meaning.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		splitCmd,
		reconstructCmd,
		infoCmd,
		verifyCmd,
		genCmd,
		reportCmd,
		versionCmd,
	)
}
