package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"deltaml/delta/pkg/model"
)

var trainCmd = &cobra.Command{
	Use:   "train <dataset-id> <config-file>",
	Short: "Train and register a model version",
	Long: `Train a model version against an ingested dataset.

The config file is JSON selecting the model kind and carrying the
differential-privacy budget and fairness report. Training is gated: the
privacy budget must stay within policy bounds and the fairness report
must be present with all gaps inside their thresholds. A denial registers
nothing.

Example config:
  {
    "model_kind": "tabular_logreg",
    "dp": {"enabled": true, "epsilon": 2.5},
    "fairness": {"delta_tpr": 0.01, "delta_fpr": 0.01, "delta_ppv": 0.02}
  }`,
	Args: cobra.ExactArgs(2),
	RunE: runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	configJSON, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read training config %q: %w", args[1], err)
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	v, err := rt.service.Train(cmd.Context(), model.DatasetID(args[0]), string(configJSON))
	if err != nil {
		return err
	}

	out, err := json.Marshal(map[string]any{
		"model_id": v.ID.String(),
		"version":  v.Version.String(),
		"kind":     v.Kind.Label(),
		"artifact": v.ArtifactPath,
	})
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
