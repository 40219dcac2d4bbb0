package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkovalenko-dev/gridcalc/store"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input-file> <output-file>",
	Short: "Convert a snapshot between JSON and YAML",
	Long: `Reads a snapshot and writes it in the format implied by the
output file extension (".yaml"/".yml" for YAML, anything else for
JSON).

Examples:
  gridcalc convert sheet.json sheet.yaml
  gridcalc convert sheet.yaml sheet.json`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	files := store.NewFileStore(newLogger())

	snap, err := files.Load(args[0])
	if err != nil {
		printError("loading snapshot", err)
		return err
	}

	if err := files.Save(args[1], snap); err != nil {
		printError("saving snapshot", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "converted %s -> %s (%d cells)\n", args[0], args[1], len(snap.Cells))
	return nil
}
