package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"deltaml/delta/pkg/serving"
)

var inferFlags struct {
	purpose      string
	subject      string
	featuresOnly bool
	inputFile    string
}

var inferCmd = &cobra.Command{
	Use:   "infer [input-json]",
	Short: "Score a request against the active model",
	Long: `Score a request against the active model.

The request passes the consent gate for the given (purpose, subject)
pair, is routed to the tabular or text engine, and the prediction is
returned with an embedded WhyLog audit record. The input object is given
inline as an argument or read from a file with --file.

Examples:
  # Inline input
  delta infer --purpose care --subject s-17 '{"age":41,"bmi":22.5}'

  # Input from a file, asserting it carries no routable text
  delta infer --purpose care --subject s-17 --features-only --file input.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInfer,
}

func init() {
	rootCmd.AddCommand(inferCmd)

	inferCmd.Flags().StringVar(&inferFlags.purpose, "purpose", "", "processing purpose identifier (required)")
	inferCmd.Flags().StringVar(&inferFlags.subject, "subject", "", "data subject identifier (required)")
	inferCmd.Flags().BoolVar(&inferFlags.featuresOnly, "features-only", false, "assert the input carries no routable text")
	inferCmd.Flags().StringVar(&inferFlags.inputFile, "file", "", "read the input object from a file")
	_ = inferCmd.MarkFlagRequired("purpose")
	_ = inferCmd.MarkFlagRequired("subject")
}

func runInfer(cmd *cobra.Command, args []string) error {
	input, err := readInferInput(args)
	if err != nil {
		return err
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	pred, err := rt.service.Infer(cmd.Context(), serving.InferRequest{
		PurposeID:    inferFlags.purpose,
		SubjectID:    inferFlags.subject,
		FeaturesOnly: inferFlags.featuresOnly,
		InputJSON:    input,
	})
	if err != nil {
		return err
	}

	fmt.Println(pred.JSON)
	return nil
}

func readInferInput(args []string) (string, error) {
	if inferFlags.inputFile != "" {
		data, err := os.ReadFile(inferFlags.inputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file %q: %w", inferFlags.inputFile, err)
		}
		return string(data), nil
	}
	if len(args) == 1 {
		return args[0], nil
	}
	return "", fmt.Errorf("an input object is required, inline or via --file")
}
