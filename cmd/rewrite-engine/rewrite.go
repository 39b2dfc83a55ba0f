// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rewrite-engine/internal/history"
	"github.com/pdiddy/rewrite-engine/pkg/types"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [text]",
	Short: "Rewrite a single text through the provider pipeline",
	Long: `Rewrite takes an input text (as an argument, from --file, or from stdin
when neither is given), runs it through the paraphrase pipeline, and prints
the rewritten text. The input must be at least 10 characters.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		noHistory, _ := cmd.Flags().GetBool("no-history")

		cfg := pipelineConfig()
		if maxAttempts, _ := cmd.Flags().GetInt("max-attempts"); maxAttempts > 0 {
			cfg.Retry.MaxAttempts = maxAttempts
		}
		if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout > 0 {
			cfg.HTTP.Timeout = timeout
		}

		p := buildPipeline(cfg, os.Stderr)
		result := p.Rewrite(cmd.Context(), input)

		if !noHistory && cfg.History.Path != "" {
			recordHistory(cmd.Context(), cfg.History, input, result)
		}

		if err := writeOutput(os.Stdout, result, format); err != nil {
			return err
		}
		if !result.OK() {
			return fmt.Errorf("rewrite failed: %s: %s", result.Err, result.Detail)
		}
		return nil
	},
}

func init() {
	rewriteCmd.Flags().String("file", "", "read input text from a file")
	rewriteCmd.Flags().String("format", "text", "output format: text, json, or yaml")
	rewriteCmd.Flags().Int("max-attempts", 0, "override the primary provider attempt budget")
	rewriteCmd.Flags().Duration("timeout", 0, "override the per-call HTTP timeout")
	rewriteCmd.Flags().Bool("no-history", false, "skip recording this invocation in the history store")

	rootCmd.AddCommand(rewriteCmd)
}

// readInput resolves the input text: positional argument, --file, or stdin.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading input file: %w", err)
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// recordHistory saves the invocation, warning rather than failing the
// command when the store is unavailable.
func recordHistory(ctx context.Context, cfg types.HistoryConfig, input string, result types.Result) {
	store, err := history.NewStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history store unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if err := store.Save(ctx, input, result); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record history: %v\n", err)
	}
}

// writeOutput renders the result in the requested format.
func writeOutput(w io.Writer, result types.Result, format string) error {
	switch format {
	case "text":
		if result.OK() {
			fmt.Fprintln(w, result.Text)
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown format %q (want text, json, or yaml)", format)
	}
}
