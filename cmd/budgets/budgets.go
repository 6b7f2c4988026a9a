// Package budgets lists and shows the budgets stored by the save command.
package budgets

import (
	"fmt"
	"io"
	"text/tabwriter"

	"fjacquet/promob-import/cmd/root"
	"fjacquet/promob-import/internal/container"
	"fjacquet/promob-import/internal/logging"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Cmd groups the stored budget subcommands.
var Cmd = &cobra.Command{
	Use:   "budgets",
	Short: "Inspect budgets saved in the data directory",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored budgets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return List(root.GetContainer(), cmd.OutOrStdout())
	},
}

var showCmd = &cobra.Command{
	Use:   "show <budget-id>",
	Short: "Print a stored budget as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Show(root.GetContainer(), args[0], cmd.OutOrStdout())
	},
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
}

// List writes one line per stored budget: id, date, environment and client.
func List(c *container.Container, out io.Writer) error {
	repo, err := c.OpenStore()
	if err != nil {
		return err
	}
	ids, err := repo.List()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintf(out, "No budgets stored in %s\n", repo.Dir())
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tENVIRONMENT\tCLIENT\tITEMS")
	for _, id := range ids {
		rec, err := repo.Load(id)
		if err != nil {
			c.GetLogger().WithError(err).Warn("Skipping unreadable budget record",
				logging.F(logging.FieldBudgetID, id))
			continue
		}
		o := rec.Budget.Orcamento
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", id, o.Data, o.Ambiente, rec.Budget.Cliente.Nome, len(rec.Items))
	}
	return w.Flush()
}

// Show writes the stored record of budgetID as YAML.
func Show(c *container.Container, budgetID string, out io.Writer) error {
	repo, err := c.OpenStore()
	if err != nil {
		return err
	}
	rec, err := repo.Load(budgetID)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("error encoding budget %s: %w", budgetID, err)
	}
	return enc.Close()
}
