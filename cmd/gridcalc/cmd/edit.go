package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dkovalenko-dev/gridcalc/internal/tui"
)

var (
	editRows    int
	editColumns int
)

var editCmd = &cobra.Command{
	Use:   "edit [snapshot-file]",
	Short: "Open the interactive terminal grid editor",
	Long: `Opens the grid editor. With a snapshot file argument the table
is loaded from it and Ctrl+S writes it back; without one an empty
table of the configured dimensions is created.

Key bindings:
  Arrows / hjkl   Move the cursor
  Enter / i       Edit the current cell
  d               Clear the current cell
  r               Recalculate
  R               Resize the table (ROWSxCOLS)
  Ctrl+S          Save
  q / Ctrl+C      Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().IntVar(&editRows, "rows", 0, "table rows (overrides config)")
	editCmd.Flags().IntVar(&editColumns, "columns", 0, "table columns (overrides config)")
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		printError("loading config", err)
		return err
	}

	editorCfg := tui.Config{
		Rows:     cfg.Rows,
		Columns:  cfg.Columns,
		FilePath: cfg.FilePath,
		Logger:   newLogger(),
	}
	if editRows > 0 {
		editorCfg.Rows = editRows
	}
	if editColumns > 0 {
		editorCfg.Columns = editColumns
	}
	if len(args) == 1 {
		editorCfg.FilePath = args[0]
	}

	if err := tui.Run(editorCfg); err != nil {
		printError("running editor", err)
		return err
	}
	return nil
}
