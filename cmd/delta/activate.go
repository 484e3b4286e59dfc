package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"deltaml/delta/pkg/model"
)

var activateCmd = &cobra.Command{
	Use:   "activate <model-id> [version]",
	Short: "Select the model version that serves inference",
	Long: `Select the model version that serves subsequent inference requests.

Without a version argument (or with "latest") the most recently trained
version of the model is activated. The selection is persisted, so a
SQLite-backed deployment keeps serving the same version across restarts.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runActivate,
}

func init() {
	rootCmd.AddCommand(activateCmd)
}

func runActivate(cmd *cobra.Command, args []string) error {
	version := ""
	if len(args) == 2 {
		version = args[1]
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	v, err := rt.service.Activate(cmd.Context(), model.ModelID(args[0]), model.VersionName(version))
	if err != nil {
		return err
	}

	out, err := json.Marshal(map[string]any{
		"model_id": v.ID.String(),
		"version":  v.Version.String(),
	})
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
