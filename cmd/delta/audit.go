package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"deltaml/delta/pkg/audit"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect and verify the audit trail",
	Long:  `Inspect stored audit records and verify prediction bodies against their WhyLog hashes.`,
}

var auditListFlags struct {
	limit int
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored audit records",
	Long: `List audit records from the configured backend, newest first.

Each record carries the request id, the consented context, the serving
model, the routing outcome and the WhyLog hash of the prediction body.`,
	Args: cobra.NoArgs,
	RunE: runAuditList,
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify <prediction-file>",
	Short: "Verify a prediction body against its embedded WhyLog",
	Long: `Verify that a serialized prediction body still matches the hash in its
embedded whylog field. A failed verification means the body was altered
after it was served.`,
	Args: cobra.ExactArgs(1),
	RunE: runAuditVerify,
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditListCmd)
	auditCmd.AddCommand(auditVerifyCmd)

	auditListCmd.Flags().IntVar(&auditListFlags.limit, "limit", 50, "maximum records to return, 0 for all")
}

func runAuditList(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	records, err := rt.auditStore.List(cmd.Context(), auditListFlags.limit)
	if err != nil {
		return err
	}

	for _, rec := range records {
		out, err := json.Marshal(map[string]any{
			"id":         rec.ID,
			"created_at": rec.CreatedAt.UnixMilli(),
			"purpose_id": rec.PurposeID,
			"model_id":   rec.ModelID,
			"version":    rec.Version,
			"target":     rec.Target,
			"reason":     rec.Reason,
			"fell_back":  rec.FellBack,
			"hash":       rec.Hash,
			"confidence": rec.Confidence,
			"latency_ms": rec.LatencyMS,
		})
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	}
	return nil
}

func runAuditVerify(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read prediction file %q: %w", args[0], err)
	}

	ok, err := audit.Verify(string(data))
	if err != nil {
		return err
	}

	out, err := json.Marshal(map[string]any{"verified": ok})
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	if !ok {
		os.Exit(1)
	}
	return nil
}
