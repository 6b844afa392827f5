package main

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check SYMPTOMS",
		Short: "Analyze a symptom description",
		Long: `Send a free-text symptom description to the API server and print the
educational analysis.

Examples:
  # Analyze a symptom description
  symptomctl check "persistent headache and sensitivity to light for two days"

  # Against a remote server
  symptomctl check "dry cough and mild fever" --server http://api.internal:9000`,
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	symptoms := args[0]

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Suffix = " Analyzing symptoms..."
	s.Start()

	client := newAPIClient(serverURL)
	result, err := client.checkSymptoms(symptoms)
	s.Stop()
	if err != nil {
		return err
	}

	yellow := color.New(color.FgYellow, color.Bold)
	faint := color.New(color.Faint)

	fmt.Println()
	yellow.Println("⚠️  EDUCATIONAL INFORMATION ONLY - NOT MEDICAL ADVICE ⚠️")
	fmt.Println()
	fmt.Println(result.Analysis)
	fmt.Println()
	faint.Println(result.Disclaimer)

	if result.Metadata != nil {
		fmt.Println()
		faint.Printf("model: %s  tokens: %d", result.Metadata.Model, result.Metadata.TokensUsed)
		if result.QueryID > 0 {
			faint.Printf("  query: %d", result.QueryID)
		}
		fmt.Println()
	}

	return nil
}
