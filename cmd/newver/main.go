package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/newver/newver/internal/common/logger"
	"github.com/newver/newver/internal/common/output"
)

var (
	verbose bool
	quiet   bool
	noColor bool
	logFile bool
)

var rootCmd = &cobra.Command{
	Use:   "newver",
	Short: "Check packages for newer published versions",
	Long: `newver checks package registries (crates.io, GitHub Releases, PyPI, or
an arbitrary release page) for newer versions of the packages you watch.
Lookups are cached on disk so registries are only queried when the
cached answer has gone stale.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetVerbose(true)
		}
		if quiet {
			logger.SetQuiet(true)
		}
		if noColor {
			output.NoColor()
		}
		if logFile {
			if err := logger.Default().EnableFileLogging(); err != nil {
				logger.Warn("file logging disabled: %v", err)
			}
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&logFile, "log-file", false, "Also log to the state directory")
}

func main() {
	defer logger.Default().Close()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
