package models

import (
	"github.com/shopspring/decimal"
)

// TraditionalDocument is the result of the generic ambiente/item fallback
// parser. It carries no customer block.
type TraditionalDocument struct {
	Orcamento  Orcamento   `json:"orcamento" yaml:"orcamento"`
	Ambientes  []Ambiente  `json:"ambientes" yaml:"ambientes"`
	Categorias []Categoria `json:"categorias" yaml:"categorias"`
	Itens      []Item      `json:"itens" yaml:"itens"`
	Subitens   []Subitem   `json:"subitens" yaml:"subitens"`
	Margens    []Margem    `json:"margens" yaml:"margens"`
}

// NewTraditionalDocument returns a document with every list non-nil.
func NewTraditionalDocument() *TraditionalDocument {
	return &TraditionalDocument{
		Ambientes:  []Ambiente{},
		Categorias: []Categoria{},
		Itens:      []Item{},
		Subitens:   []Subitem{},
		Margens:    []Margem{},
	}
}

// IsEmpty reports whether nothing at all was extracted.
func (t *TraditionalDocument) IsEmpty() bool {
	return len(t.Ambientes) == 0 && len(t.Categorias) == 0 && len(t.Itens) == 0 &&
		len(t.Subitens) == 0 && len(t.Margens) == 0
}

// AsBudget lifts the traditional grouping into a BudgetDocument so both paths
// share the exporter and the persistence writer.
func (t *TraditionalDocument) AsBudget() *BudgetDocument {
	doc := NewBudgetDocument()
	doc.Orcamento = t.Orcamento
	doc.Ambientes = append(doc.Ambientes, t.Ambientes...)
	doc.Categorias = append(doc.Categorias, t.Categorias...)
	doc.Itens = append(doc.Itens, t.Itens...)
	doc.Subitens = append(doc.Subitens, t.Subitens...)
	doc.Margens = append(doc.Margens, t.Margens...)
	return doc
}

// Summarize fills the header from the extracted lines: totals are the sum of
// the environment totals, taxes and discounts the sums of the margins, and
// the principal environment is the first one.
func (t *TraditionalDocument) Summarize(date string) {
	t.Orcamento.Data = date
	if len(t.Ambientes) > 0 {
		t.Orcamento.Ambiente = t.Ambientes[0].Descricao
	}
	pedido, orcamento := decimal.Zero, decimal.Zero
	for _, a := range t.Ambientes {
		pedido = pedido.Add(a.TotalPedido)
		orcamento = orcamento.Add(a.TotalOrcamento)
	}
	impostos, descontos := decimal.Zero, decimal.Zero
	for _, m := range t.Margens {
		switch m.Tipo {
		case MarginTax:
			impostos = impostos.Add(m.Valor)
		case MarginDiscount:
			descontos = descontos.Add(m.Valor)
		}
	}
	t.Orcamento.ValorPedido = pedido
	t.Orcamento.ValorOrcamento = orcamento
	t.Orcamento.Impostos = impostos
	t.Orcamento.Descontos = descontos
}
