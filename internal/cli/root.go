package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "portmeta",
		Short: "Extract CMake usage metadata from packaged ports",
		Long: `Portmeta inspects packaged port archives and derives machine-readable
metadata about their CMake integration: the find_package names each port
exposes, the library targets declared for each name, and a usage note.

Supported archive formats:
  - zip
  - tar (plain, gzip, xz, zstd)`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	rootCmd.AddCommand(NewAnalyzeCmd())

	return rootCmd
}
