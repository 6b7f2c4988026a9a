package models

import (
	"errors"
	"strings"
)

// BudgetBuilder provides a fluent API for constructing budget documents.
// Add methods return the builder; positions are assigned in call order.
type BudgetBuilder struct {
	doc *BudgetDocument
	err error
}

// NewBudgetBuilder creates a builder around an empty document.
func NewBudgetBuilder() *BudgetBuilder {
	return &BudgetBuilder{doc: NewBudgetDocument()}
}

// WithOrcamento sets the budget header.
func (b *BudgetBuilder) WithOrcamento(o Orcamento) *BudgetBuilder {
	if b.err != nil {
		return b
	}
	if strings.TrimSpace(o.Ambiente) == "" {
		b.err = errors.New("principal environment cannot be empty")
		return b
	}
	b.doc.Orcamento = o
	return b
}

// WithCliente sets the customer block.
func (b *BudgetBuilder) WithCliente(c Cliente) *BudgetBuilder {
	if b.err != nil {
		return b
	}
	b.doc.Cliente = c
	return b
}

// AddAmbiente appends an environment.
func (b *BudgetBuilder) AddAmbiente(a Ambiente) *BudgetBuilder {
	if b.err != nil {
		return b
	}
	b.doc.Ambientes = append(b.doc.Ambientes, a)
	return b
}

// AddCategoria appends a category.
func (b *BudgetBuilder) AddCategoria(c Categoria) *BudgetBuilder {
	if b.err != nil {
		return b
	}
	b.doc.Categorias = append(b.doc.Categorias, c)
	return b
}

// AddItem appends a line item.
func (b *BudgetBuilder) AddItem(it Item) *BudgetBuilder {
	if b.err != nil {
		return b
	}
	if it.Quantidade == 0 {
		it.Quantidade = DefaultQuantity
	}
	b.doc.Itens = append(b.doc.Itens, it)
	return b
}

// Len returns the current number of environments, categories and items.
func (b *BudgetBuilder) Len() (ambientes, categorias, itens int) {
	return len(b.doc.Ambientes), len(b.doc.Categorias), len(b.doc.Itens)
}

// Build validates and returns the document.
func (b *BudgetBuilder) Build() (*BudgetDocument, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.doc.Validate(); err != nil {
		return nil, err
	}
	return b.doc, nil
}
