// Package preview renders what an import found so the user can confirm or
// abort before anything is saved.
package preview

import (
	"fmt"
	"io"
	"text/tabwriter"

	"fjacquet/promob-import/internal/currencyutils"
	"fjacquet/promob-import/internal/models"
)

// DefaultMaxPairs is how many pairs per section Structure prints.
const DefaultMaxPairs = 5

// Structure writes the detected schema, the section flags and the first
// maxPairs pairs of each section. maxPairs <= 0 prints no pairs.
func Structure(w io.Writer, x *models.XMLStructure, maxPairs int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Detected schema:\t%s\n", x.Type)
	if x.Root != "" {
		fmt.Fprintf(tw, "Root element:\t<%s>\n", x.Root)
	}
	flags := []struct {
		name    models.SectionName
		present bool
	}{
		{models.SectionCustomers, x.HasCustomerData},
		{models.SectionItems, x.HasItemsData},
		{models.SectionBudget, x.HasBudgetData},
		{models.SectionTotalPrices, x.HasTotalPrices},
		{models.SectionAmbients, x.HasAmbients},
	}
	fmt.Fprintln(tw, "Sections:")
	for _, f := range flags {
		if !f.present {
			fmt.Fprintf(tw, "  %s\tabsent\n", f.name)
			continue
		}
		s, _ := x.Section(f.name)
		fmt.Fprintf(tw, "  %s\t%d pairs\n", f.name, len(s.Data))
		for i, p := range s.Data {
			if i >= maxPairs {
				fmt.Fprintf(tw, "    ...\t(%d more)\n", len(s.Data)-maxPairs)
				break
			}
			fmt.Fprintf(tw, "    %s\t%s\n", p.ID, p.Value)
		}
	}
	if x.Type == models.SchemaUnknown {
		fmt.Fprintln(tw, "Nothing can be imported from this document.")
	}
	return tw.Flush()
}

// Budget writes a short summary of an assembled document.
func Budget(w io.Writer, doc *models.BudgetDocument) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	o := doc.Orcamento

	fmt.Fprintf(tw, "Date:\t%s\n", o.Data)
	fmt.Fprintf(tw, "Environment:\t%s\n", o.Ambiente)
	if doc.Cliente.Nome != "" {
		fmt.Fprintf(tw, "Customer:\t%s\n", doc.Cliente.Nome)
	}
	if o.Situacao != "" || o.Etapa != "" {
		fmt.Fprintf(tw, "Status:\t%s / %s\n", o.Situacao, o.Etapa)
	}
	fmt.Fprintf(tw, "Order total:\t%s\n", currencyutils.FormatBRL(o.ValorPedido))
	fmt.Fprintf(tw, "Budget total:\t%s\n", currencyutils.FormatBRL(o.ValorOrcamento))
	fmt.Fprintf(tw, "Ambients / categories / items:\t%d / %d / %d\n", len(doc.Ambientes), len(doc.Categorias), len(doc.Itens))
	if len(doc.Subitens) > 0 || len(doc.Margens) > 0 {
		fmt.Fprintf(tw, "Sub-items / margins:\t%d / %d\n", len(doc.Subitens), len(doc.Margens))
	}

	for ai, a := range doc.Ambientes {
		fmt.Fprintf(tw, "  %s\t%s\n", a.Descricao, currencyutils.FormatBRL(a.TotalOrcamento))
		for ci, c := range doc.Categorias {
			if c.AmbienteIndex != ai {
				continue
			}
			fmt.Fprintf(tw, "    %s\t%s\n", c.Descricao, currencyutils.FormatBRL(c.TotalOrcamento))
			for _, it := range doc.Itens {
				if it.CategoriaIndex == ci {
					fmt.Fprintf(tw, "      %g %s %s\t%s\n", it.Quantidade, it.Unidade, it.Descricao, currencyutils.FormatBRL(it.ValorTotal))
				}
			}
		}
	}
	return tw.Flush()
}
