package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"deltaml/delta/pkg/status"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "delta",
	Short: "Delta - governed model-serving runtime",
	Long: `Delta is a governed model-serving runtime for consent-gated inference.

It manages datasets, training and serving under governance constraints:
  - Training gated by differential-privacy and fairness policy checks
  - Versioned model registry with a single active serving slot
  - Consent-gated inference with deterministic routing and fallback
  - Tamper-evident WhyLog audit records for every prediction

Successful commands print their result as JSON on stdout; failures print
the error envelope {"ok":false,"code":<int>,"msg":"<reason>"} and exit
non-zero.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Command failures are rendered as the
// stable error envelope so scripted callers can branch on the code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stdout, status.Envelope(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
