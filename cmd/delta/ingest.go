package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var ingestFlags struct {
	schema string
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Register a dataset file",
	Long: `Register a dataset file with the metadata store.

The dataset id is derived from the file contents, so ingesting identical
data always yields the same id. Only metadata is kept; the file itself is
not copied.

Examples:
  # Ingest with an inline schema
  delta ingest rows.csv --schema '{"columns":["age","bmi"]}'

  # Ingest without a schema
  delta ingest rows.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&ingestFlags.schema, "schema", "", "inline schema JSON recorded on the datasheet")
}

func runIngest(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	ds, err := rt.service.Ingest(cmd.Context(), args[0], ingestFlags.schema)
	if err != nil {
		return err
	}

	out, err := json.Marshal(map[string]any{
		"dataset_id": ds.ID.String(),
		"rows":       ds.Rows,
	})
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
