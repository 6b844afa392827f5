package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "v0.1.0" // Overwritten at build time
)

var serverURL string

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "symptomctl",
		Short: "Symptom checker CLI",
		Long: `symptomctl talks to a running symptom checker API server to analyze
free-text symptom descriptions and browse past queries.

The output is educational information only, never medical advice.`,
		SilenceUsage: true,
	}

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	defaultServer := os.Getenv("SYMPTOMCTL_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:9000"
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer, "Base URL of the symptom checker API (env: SYMPTOMCTL_SERVER)")

	rootCmd.AddCommand(
		newCheckCmd(),
		newHistoryCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("symptomctl version %s\n", version)
		},
	}
}
