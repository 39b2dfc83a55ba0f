// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rewrite-engine/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Rewrite every .txt file in a directory",
	Long: `Batch runs the pipeline over each .txt file in the given directory and
writes a <name>-rewrite.yaml result per input into the output directory.
Inputs older than their existing output are skipped; a failed file does not
abort the run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir, _ := cmd.Flags().GetString("out")

		cfg := pipelineConfig()
		p := buildPipeline(cfg, os.Stderr)

		summary, err := pipeline.RewriteAll(cmd.Context(), p, args[0], outDir, os.Stdout)
		if err != nil {
			return err
		}

		fmt.Printf("%d files: %d rewritten, %d skipped, %d failed\n",
			summary.Total(), summary.Rewritten, summary.Skipped, summary.Failed)
		if summary.HasFailures() {
			return fmt.Errorf("%d files failed", summary.Failed)
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().String("out", "rewrites", "output directory for result files")

	rootCmd.AddCommand(batchCmd)
}
