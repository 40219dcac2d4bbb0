package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkovalenko-dev/gridcalc"
	"github.com/dkovalenko-dev/gridcalc/store"
)

var evalSnapshotPath string

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate a single expression",
	Long: `Evaluates one expression and prints the result.

Without --file the expression is evaluated against an empty table, so
cell references resolve to 0. With --file the named snapshot is loaded
and recalculated first.

Examples:
  gridcalc eval "2 + 3 * 4"
  gridcalc eval --file sheet.json "=A1 + B2"`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVarP(&evalSnapshotPath, "file", "f", "", "snapshot file to evaluate against")
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		printError("loading config", err)
		return err
	}
	logger := newLogger()

	service, err := gridcalc.NewTableService(cfg.Rows, cfg.Columns, logger)
	if err != nil {
		printError("creating table", err)
		return err
	}

	if evalSnapshotPath != "" {
		snap, err := store.NewFileStore(logger).Load(evalSnapshotPath)
		if err != nil {
			printError("loading snapshot", err)
			return err
		}
		if err := service.Load(snap); err != nil {
			printError("loading table", err)
			return err
		}
	}

	value, err := service.EvaluateExpression(args[0])
	if err != nil {
		printError("evaluating expression", err)
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), gridcalc.FormatValue(value))
	return nil
}
