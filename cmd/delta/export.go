package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"deltaml/delta/pkg/model"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export governance documents",
	Long:  `Export model cards and datasheets as JSON.`,
}

var exportCardCmd = &cobra.Command{
	Use:   "card <model-id>",
	Short: "Export the model card of the latest version",
	Long: `Export the model card of the latest version of a model.

The card records the version, kind, artifact location, differential-
privacy budget and fairness report captured at training time.`,
	Args: cobra.ExactArgs(1),
	RunE: runExportCard,
}

var exportDatasheetCmd = &cobra.Command{
	Use:   "datasheet <dataset-id>",
	Short: "Export the datasheet of an ingested dataset",
	Long: `Export the datasheet of an ingested dataset.

The datasheet records the schema marker, row count, creation time and
the retention window the deployment applies to governed records.`,
	Args: cobra.ExactArgs(1),
	RunE: runExportDatasheet,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportCardCmd)
	exportCmd.AddCommand(exportDatasheetCmd)
}

func runExportCard(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	card, err := rt.service.ExportModelCard(model.ModelID(args[0]))
	if err != nil {
		return err
	}
	fmt.Println(card)
	return nil
}

func runExportDatasheet(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	sheet, err := rt.service.ExportDatasheet(cmd.Context(), model.DatasetID(args[0]))
	if err != nil {
		return err
	}
	fmt.Println(sheet)
	return nil
}
