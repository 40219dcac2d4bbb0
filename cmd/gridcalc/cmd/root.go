package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gridcalc",
	Short: "gridcalc - spreadsheet formula engine",
	Long: `gridcalc is a small spreadsheet engine for integer formulas
with exact rational arithmetic.

Commands:
  eval     - evaluate a single expression
  calc     - recalculate a snapshot file and print the result grid
  convert  - convert a snapshot between JSON and YAML
  edit     - open the interactive terminal grid editor
  docs     - manage snapshots stored in a SQLite database`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./gridcalc.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// newLogger builds the process logger: debug text on stderr when
// --verbose is set, discarded otherwise.
func newLogger() *slog.Logger {
	if verbose {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
}
