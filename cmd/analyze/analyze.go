// Package analyze previews how a budget XML file is classified and which
// sections it carries, without importing it.
package analyze

import (
	"io"

	"fjacquet/promob-import/cmd/common"
	"fjacquet/promob-import/cmd/root"
	"fjacquet/promob-import/internal/container"
	"fjacquet/promob-import/internal/fileutils"
	"fjacquet/promob-import/internal/logging"
	"fjacquet/promob-import/internal/preview"

	"github.com/spf13/cobra"
)

var maxPairs int

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Show the detected schema and sections of a budget XML file",
	Long: `Analyze classifies an XML file as a Promob export, a traditional order
file or an unknown document, and lists the sections it carries with their
first values.

Example:
  promob-import analyze -i orcamento.xml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(root.GetContainer(), root.SharedFlags.Input, maxPairs, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().IntVar(&maxPairs, "max-pairs", preview.DefaultMaxPairs, "Pairs shown per section")
}

// Run analyzes input and writes the preview to out.
func Run(c *container.Container, input string, maxPairs int, out io.Writer) error {
	if c == nil {
		return common.ErrNoContainer
	}
	raw, err := fileutils.ReadInput(input)
	if err != nil {
		return err
	}

	structure := c.GetPromobParser().Analyze(raw)
	c.GetLogger().Info("Analyzed document",
		logging.F(logging.FieldInputFile, input),
		logging.F(logging.FieldSchema, structure.Type))
	return preview.Structure(out, structure, maxPairs)
}
