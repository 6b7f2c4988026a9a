// Package convert imports a budget XML file and writes it as JSON.
package convert

import (
	"context"
	"fmt"
	"io"

	"fjacquet/promob-import/cmd/common"
	"fjacquet/promob-import/cmd/root"
	"fjacquet/promob-import/internal/container"
	"fjacquet/promob-import/internal/exporter"
	"fjacquet/promob-import/internal/preview"

	"github.com/spf13/cobra"
)

// Options controls a conversion.
type Options struct {
	Input   string
	Output  string
	Stdout  bool
	Preview bool
}

var opts Options

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Import a budget XML file and write it as JSON",
	Long: `Convert imports a Promob or traditional XML budget and writes the
assembled budget document as JSON. Without --output the JSON file is placed
in the configured output directory, or next to the input file.

Example:
  promob-import convert -i orcamento.xml -o orcamento.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts.Input = root.SharedFlags.Input
		opts.Output = root.SharedFlags.Output
		return Run(cmd.Context(), root.GetContainer(), opts, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().BoolVar(&opts.Stdout, "stdout", false, "Print the JSON instead of writing a file")
	Cmd.Flags().BoolVar(&opts.Preview, "preview", false, "Print the section preview before converting")
}

// Run converts one file.
func Run(ctx context.Context, c *container.Container, o Options, out io.Writer) error {
	res, err := common.ImportFile(ctx, c, o.Input)
	if err != nil {
		return err
	}

	if o.Stdout {
		data, err := exporter.RenderJSON(res.Budget, c.GetConfig().Output.JSONIndent)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	if o.Preview {
		if err := preview.Structure(out, res.Structure, preview.DefaultMaxPairs); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}
	if err := preview.Budget(out, res.Budget); err != nil {
		return err
	}

	target := o.Output
	if target == "" {
		target = common.DefaultOutput(o.Input, c.GetConfig().Output.Directory, exporter.JSONExt)
	}
	path, err := c.GetExporter().WriteJSONFile(target, res.Budget)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}
