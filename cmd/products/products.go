// Package products lists the products of a purchase order or NF-e XML file.
package products

import (
	"fmt"
	"io"
	"text/tabwriter"

	"fjacquet/promob-import/cmd/common"
	"fjacquet/promob-import/cmd/root"
	"fjacquet/promob-import/internal/container"
	"fjacquet/promob-import/internal/currencyutils"
	"fjacquet/promob-import/internal/fileutils"
	"fjacquet/promob-import/internal/productparser"

	"github.com/spf13/cobra"
)

// Cmd represents the products command
var Cmd = &cobra.Command{
	Use:   "products",
	Short: "List the products of a purchase order or NF-e XML file",
	Long: `Products reads product records (NF-e det/prod, produto, product or item
elements) and prints code, description, quantity, unit and unit value.
With --output the list is also written as JSON.

Example:
  promob-import products -i nfe.xml -o produtos.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := Run(root.GetContainer(), root.SharedFlags.Input, root.SharedFlags.Output, cmd.OutOrStdout())
		return err
	},
}

// Run parses input, prints the products and optionally writes them to output.
func Run(c *container.Container, input, output string, out io.Writer) ([]productparser.Product, error) {
	if c == nil {
		return nil, common.ErrNoContainer
	}
	raw, err := fileutils.ReadInput(input)
	if err != nil {
		return nil, err
	}

	list, err := c.GetProductParser().Parse(raw)
	if err != nil {
		return nil, err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tDESCRIPTION\tQTY\tUNIT\tUNIT VALUE\tNCM")
	for _, p := range list {
		fmt.Fprintf(tw, "%s\t%s\t%g\t%s\t%s\t%s\n",
			p.Codigo, p.Descricao, p.Quantidade, p.Unidade, currencyutils.FormatBRL(p.ValorUnitario), p.NCM)
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}
	fmt.Fprintln(out, productparser.Summarize(list))

	if output != "" {
		path, err := c.GetExporter().WriteJSONFile(output, list)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "Wrote %s\n", path)
	}
	return list, nil
}
