package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var historyLimit int

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent symptom queries",
		RunE:  runHistory,
	}

	cmd.Flags().IntVarP(&historyLimit, "limit", "l", 10, "Maximum number of queries to show")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	client := newAPIClient(serverURL)
	result, err := client.listHistory(historyLimit)
	if err != nil {
		return err
	}

	if result.Count == 0 {
		fmt.Println("No queries recorded yet.")
		return nil
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	for _, entry := range result.History {
		bold.Printf("#%d", entry.ID)
		if ts, err := time.Parse(time.RFC3339, entry.Timestamp); err == nil {
			faint.Printf("  %s", ts.Local().Format("2006-01-02 15:04"))
		}
		fmt.Println()
		fmt.Printf("  %s\n", truncate(entry.Symptoms, 100))
	}
	fmt.Println()
	faint.Printf("%d queries\n", result.Count)

	return nil
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
