package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dkovalenko-dev/gridcalc/store"
)

var docsDatabase string

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage snapshots stored in a SQLite database",
}

var docsSaveCmd = &cobra.Command{
	Use:   "save <name> <snapshot-file>",
	Short: "Store a snapshot file under a document name",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocsSave,
}

var docsLoadCmd = &cobra.Command{
	Use:   "load <name> <snapshot-file>",
	Short: "Write a stored document to a snapshot file",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocsLoad,
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents",
	Args:  cobra.NoArgs,
	RunE:  runDocsList,
}

var docsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsDelete,
}

func init() {
	rootCmd.AddCommand(docsCmd)
	docsCmd.AddCommand(docsSaveCmd, docsLoadCmd, docsListCmd, docsDeleteCmd)

	docsCmd.PersistentFlags().StringVar(&docsDatabase, "db", "", "database file (overrides config)")
}

func openDocStore() (*store.SQLiteStore, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	path := cfg.Database
	if docsDatabase != "" {
		path = docsDatabase
	}
	return store.OpenSQLiteStore(path, newLogger())
}

func runDocsSave(cmd *cobra.Command, args []string) error {
	st, err := openDocStore()
	if err != nil {
		printError("opening database", err)
		return err
	}
	defer st.Close()

	snap, err := store.NewFileStore(newLogger()).Load(args[1])
	if err != nil {
		printError("loading snapshot", err)
		return err
	}

	id, err := st.Save(cmd.Context(), args[0], snap)
	if err != nil {
		printError("saving document", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "saved %q as %s\n", args[0], id)
	return nil
}

func runDocsLoad(cmd *cobra.Command, args []string) error {
	st, err := openDocStore()
	if err != nil {
		printError("opening database", err)
		return err
	}
	defer st.Close()

	snap, err := st.LoadByName(cmd.Context(), args[0])
	if err != nil {
		printError("loading document", err)
		return err
	}

	if err := store.NewFileStore(newLogger()).Save(args[1], snap); err != nil {
		printError("saving snapshot", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %q to %s (%d cells)\n", args[0], args[1], len(snap.Cells))
	return nil
}

func runDocsList(cmd *cobra.Command, args []string) error {
	st, err := openDocStore()
	if err != nil {
		printError("opening database", err)
		return err
	}
	defer st.Close()

	docs, err := st.List(cmd.Context())
	if err != nil {
		printError("listing documents", err)
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 4, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSAVED")
	for _, doc := range docs {
		fmt.Fprintf(w, "%s\t%s\t%s\n", doc.ID, doc.Name, doc.SavedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func runDocsDelete(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		printError("parsing document id", err)
		return err
	}

	st, err := openDocStore()
	if err != nil {
		printError("opening database", err)
		return err
	}
	defer st.Close()

	if err := st.Delete(cmd.Context(), id); err != nil {
		printError("deleting document", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
	return nil
}
