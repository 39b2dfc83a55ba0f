// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rewrite-engine/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent rewrite invocations",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg := pipelineConfig()
		store, err := history.NewStore(cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No rewrites recorded.")
			return nil
		}

		fmt.Fprintf(os.Stdout, "%-20s  %-12s  %-9s  %-6s  %-6s  %s\n",
			"When", "Input", "Provider", "Sim", "Ratio", "Outcome")
		fmt.Fprintln(os.Stdout, strings.Repeat("-", 70))
		for _, r := range records {
			outcome := r.Outcome
			if r.BestEffort {
				outcome += " (best effort)"
			}
			fmt.Fprintf(os.Stdout, "%-20s  %-12s  %-9s  %-6.2f  %-6.2f  %s\n",
				r.CreatedAt.Format("2006-01-02 15:04:05"), r.InputSHA, r.Provider,
				r.Similarity, r.LengthRatio, outcome)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum number of records to list")

	rootCmd.AddCommand(historyCmd)
}
