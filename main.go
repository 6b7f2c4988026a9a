package main

import (
	"fmt"
	"os"

	"fjacquet/promob-import/cmd/analyze"
	"fjacquet/promob-import/cmd/batch"
	"fjacquet/promob-import/cmd/budgets"
	"fjacquet/promob-import/cmd/convert"
	"fjacquet/promob-import/cmd/export"
	"fjacquet/promob-import/cmd/products"
	"fjacquet/promob-import/cmd/root"
	"fjacquet/promob-import/cmd/save"

	"github.com/shopspring/decimal"
)

func init() {
	// Money is exported as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true

	root.Init()

	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(save.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(products.Cmd)
	root.Cmd.AddCommand(budgets.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
