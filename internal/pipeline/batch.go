// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rewrite-engine/pkg/types"
)

// BatchSummary holds counts from a batch rewrite run.
type BatchSummary struct {
	Rewritten int
	Skipped   int
	Failed    int
}

// Total returns the number of files processed.
func (s BatchSummary) Total() int {
	return s.Rewritten + s.Skipped + s.Failed
}

// HasFailures reports whether any files failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// RewriteAll processes every .txt file in dir, writing a <name>-rewrite.yaml
// result next to each into outDir. Unchanged inputs are skipped; a failed
// file does not abort the run.
func RewriteAll(ctx context.Context, p *Pipeline, dir, outDir string, w io.Writer) (BatchSummary, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return BatchSummary{}, fmt.Errorf("creating output directory: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	var summary BatchSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".txt")
		inPath := filepath.Join(dir, entry.Name())
		outPath := filepath.Join(outDir, name+"-rewrite.yaml")

		changed, err := hasChanged(inPath, outPath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		if !changed {
			fmt.Fprintf(w, "skipped %s\n", name)
			summary.Skipped++
			continue
		}

		data, err := os.ReadFile(inPath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		result := p.Rewrite(ctx, string(data))
		if !result.OK() {
			fmt.Fprintf(w, "failed  %s: %s: %s\n", name, result.Err, result.Detail)
			summary.Failed++
			continue
		}

		if err := writeResult(outPath, result); err != nil {
			fmt.Fprintf(w, "failed  %s: write error: %v\n", name, err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "rewrote %s (%d words, similarity %.2f)\n",
			name, len(strings.Fields(result.Text)), result.Similarity)
		summary.Rewritten++
	}

	return summary, nil
}

// hasChanged reports whether the input file is newer than the output file.
// Returns true if the output does not exist.
func hasChanged(inPath, outPath string) (bool, error) {
	inInfo, err := os.Stat(inPath)
	if err != nil {
		return false, fmt.Errorf("stat input %s: %w", inPath, err)
	}

	outInfo, err := os.Stat(outPath)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat output %s: %w", outPath, err)
	}

	return inInfo.ModTime().After(outInfo.ModTime()), nil
}

// writeResult marshals the rewrite result to a YAML file.
func writeResult(path string, result types.Result) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
