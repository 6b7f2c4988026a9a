// Package save imports a budget XML file and stores it in the data directory.
package save

import (
	"context"
	"fmt"
	"io"

	"fjacquet/promob-import/cmd/common"
	"fjacquet/promob-import/cmd/root"
	"fjacquet/promob-import/internal/container"
	"fjacquet/promob-import/internal/store"

	"github.com/spf13/cobra"
)

var dryRun bool

// Cmd represents the save command
var Cmd = &cobra.Command{
	Use:   "save",
	Short: "Import a budget XML file and save it",
	Long: `Save imports a budget and stores it, one YAML file per budget, under the
configured data directory. Environments, categories, items, sub-items and
margins are linked to their parents by id.

Example:
  promob-import save -i orcamento.xml
  promob-import save -i orcamento.xml --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := Run(cmd.Context(), root.GetContainer(), root.SharedFlags.Input, dryRun, cmd.OutOrStdout())
		return err
	},
}

func init() {
	Cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve ids in memory without writing anything")
}

// Run imports input and saves it, returning the ids assigned.
func Run(ctx context.Context, c *container.Container, input string, dryRun bool, out io.Writer) (*store.SaveResult, error) {
	res, err := common.ImportFile(ctx, c, input)
	if err != nil {
		return nil, err
	}
	repo, err := c.NewRepository(dryRun)
	if err != nil {
		return nil, err
	}

	saved, err := c.NewWriter(repo).Save(ctx, res.Budget)
	if err != nil {
		return nil, err
	}

	verb := "Saved"
	if dryRun {
		verb = "Would save"
	}
	fmt.Fprintf(out, "%s budget %s: %d environments, %d categories, %d items, %d sub-items, %d margins\n",
		verb, saved.BudgetID, len(saved.EnvironmentIDs), len(saved.CategoryIDs),
		len(saved.ItemIDs), len(saved.SubItemIDs), len(saved.MarginIDs))
	return saved, nil
}
