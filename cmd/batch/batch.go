// Package batch handles batch processing of files
package batch

import (
	"context"
	"fmt"
	"io"

	"fjacquet/promob-import/cmd/common"
	"fjacquet/promob-import/cmd/root"
	"fjacquet/promob-import/internal/batch"
	"fjacquet/promob-import/internal/container"

	"github.com/spf13/cobra"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch convert the XML budgets of a directory",
	Long: `Batch imports every .xml file of the input directory and writes one JSON
document per file to the output directory. Files are imported in parallel
by batch.workers workers; a failing file does not stop the others.

Example:
  promob-import batch -i input_dir/ -o output_dir/`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := Run(cmd.Context(), root.GetContainer(), root.SharedFlags.Input, root.SharedFlags.Output, cmd.OutOrStdout())
		return err
	},
}

// Run converts the directory and prints one line per file. It fails when
// any file failed.
func Run(ctx context.Context, c *container.Container, inputDir, outputDir string, out io.Writer) (*batch.Summary, error) {
	if c == nil {
		return nil, common.ErrNoContainer
	}
	if inputDir == "" || outputDir == "" {
		return nil, fmt.Errorf("input and output directories must be specified")
	}

	summary, err := c.GetBatchProcessor().Process(ctx, inputDir, outputDir)
	if err != nil {
		return nil, err
	}

	for _, f := range summary.Files {
		if f.Err != nil {
			fmt.Fprintf(out, "FAIL %s: %v\n", f.Input, f.Err)
			continue
		}
		fmt.Fprintf(out, "ok   %s -> %s (%s)\n", f.Input, f.Output, f.Schema)
	}
	fmt.Fprintf(out, "%d processed, %d failed\n", summary.Processed, summary.Failed)

	if summary.Failed > 0 {
		return summary, fmt.Errorf("%d of %d files failed", summary.Failed, len(summary.Files))
	}
	return summary, nil
}
