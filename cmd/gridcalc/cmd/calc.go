package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dkovalenko-dev/gridcalc"
	"github.com/dkovalenko-dev/gridcalc/store"
)

var (
	calcOutputPath     string
	calcShowExpression bool
)

var calcCmd = &cobra.Command{
	Use:   "calc <snapshot-file>",
	Short: "Recalculate a snapshot and print the result grid",
	Long: `Loads a snapshot file, runs one full evaluation pass and prints
the resulting grid. With --out the recalculated snapshot is written
back to a file.

Examples:
  gridcalc calc sheet.json
  gridcalc calc sheet.yaml --expressions
  gridcalc calc sheet.json --out sheet.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runCalc,
}

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().StringVarP(&calcOutputPath, "out", "o", "", "write the snapshot back to this file")
	calcCmd.Flags().BoolVarP(&calcShowExpression, "expressions", "e", false, "print expressions instead of values")
}

func runCalc(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	files := store.NewFileStore(logger)

	snap, err := files.Load(args[0])
	if err != nil {
		printError("loading snapshot", err)
		return err
	}

	service, err := gridcalc.NewTableService(snap.Rows, snap.Columns, logger)
	if err != nil {
		printError("creating table", err)
		return err
	}
	if err := service.Load(snap); err != nil {
		printError("loading table", err)
		return err
	}

	if err := printGrid(cmd, service, calcShowExpression); err != nil {
		return err
	}

	if calcOutputPath != "" {
		if err := files.Save(calcOutputPath, service.Export()); err != nil {
			printError("saving snapshot", err)
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", calcOutputPath)
	}
	return nil
}

// printGrid renders the table as an aligned text grid with column
// letters and row numbers.
func printGrid(cmd *cobra.Command, service *gridcalc.TableService, expressions bool) error {
	table := service.Table()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 4, 0, 2, ' ', 0)

	fmt.Fprint(w, " ")
	for col := 0; col < table.Columns(); col++ {
		ref := gridcalc.ReferenceFromIndices(0, col)
		fmt.Fprintf(w, "\t%s", ref.Column)
	}
	fmt.Fprintln(w)

	for row := 0; row < table.Rows(); row++ {
		fmt.Fprintf(w, "%d", row+1)
		for col := 0; col < table.Columns(); col++ {
			cell, err := table.Cell(row, col)
			if err != nil {
				return err
			}
			if expressions {
				fmt.Fprintf(w, "\t%s", cell.Expression())
			} else {
				fmt.Fprintf(w, "\t%s", cell.DisplayValue())
			}
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
