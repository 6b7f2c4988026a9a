// Package export imports a budget XML file and writes its items as CSV.
package export

import (
	"context"
	"fmt"
	"io"

	"fjacquet/promob-import/cmd/common"
	"fjacquet/promob-import/cmd/root"
	"fjacquet/promob-import/internal/container"

	"github.com/spf13/cobra"
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the items of a budget XML file as CSV",
	Long: `Export imports a budget and writes one CSV row per item, with the names
of its environment and category. The delimiter comes from csv.delimiter.

Example:
  promob-import export -i orcamento.xml -o itens.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.GetContainer(), root.SharedFlags.Input, root.SharedFlags.Output, cmd.OutOrStdout())
	},
}

// Run exports the items of input to output, or to a .csv path derived from
// the input when output is empty.
func Run(ctx context.Context, c *container.Container, input, output string, out io.Writer) error {
	res, err := common.ImportFile(ctx, c, input)
	if err != nil {
		return err
	}
	if output == "" {
		output = common.DefaultOutput(input, c.GetConfig().Output.Directory, ".csv")
	}
	if err := c.GetExporter().WriteItemsCSVFile(output, res.Budget); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %d items to %s\n", len(res.Budget.Itens), output)
	return nil
}
