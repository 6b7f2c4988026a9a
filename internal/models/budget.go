package models

import (
	"fmt"
	"strconv"

	"fjacquet/promob-import/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Orcamento is the budget header.
type Orcamento struct {
	Data           string          `json:"data" yaml:"data"`
	Ambiente       string          `json:"ambiente" yaml:"ambiente"`
	Situacao       string          `json:"situacao" yaml:"situacao"`
	Etapa          string          `json:"etapa" yaml:"etapa"`
	ValorPedido    decimal.Decimal `json:"valor_pedido" yaml:"valor_pedido"`
	ValorOrcamento decimal.Decimal `json:"valor_orcamento" yaml:"valor_orcamento"`
	Acrescimo      decimal.Decimal `json:"acrescimo" yaml:"acrescimo"`
	Frete          decimal.Decimal `json:"frete" yaml:"frete"`
	Montagem       decimal.Decimal `json:"montagem" yaml:"montagem"`
	Impostos       decimal.Decimal `json:"impostos" yaml:"impostos"`
	Descontos      decimal.Decimal `json:"descontos" yaml:"descontos"`
}

// Cliente is the customer block of a Promob budget.
type Cliente struct {
	Nome             string `json:"nome" yaml:"nome"`
	Email            string `json:"email" yaml:"email"`
	EmailAlternativo string `json:"email_alternativo" yaml:"email_alternativo"`
	Telefone         string `json:"telefone" yaml:"telefone"`
	TelefoneRaw      string `json:"telefone_raw" yaml:"telefone_raw"`
}

// Ambiente is one environment (room) of the budget.
type Ambiente struct {
	Descricao      string          `json:"descricao" yaml:"descricao"`
	TotalPedido    decimal.Decimal `json:"total_pedido" yaml:"total_pedido"`
	TotalOrcamento decimal.Decimal `json:"total_orcamento" yaml:"total_orcamento"`
}

// Categoria groups items inside an environment. AmbienteIndex is a position
// in the owning document's Ambientes, not a stable id.
type Categoria struct {
	Descricao      string          `json:"descricao" yaml:"descricao"`
	TotalPedido    decimal.Decimal `json:"total_pedido" yaml:"total_pedido"`
	TotalOrcamento decimal.Decimal `json:"total_orcamento" yaml:"total_orcamento"`
	AmbienteIndex  int             `json:"ambiente_index" yaml:"ambiente_index"`
}

// Item is a priced budget line. CategoriaIndex is a position in Categorias.
type Item struct {
	Descricao      string          `json:"descricao" yaml:"descricao"`
	Referencia     string          `json:"referencia" yaml:"referencia"`
	Quantidade     float64         `json:"quantidade" yaml:"quantidade"`
	Unidade        string          `json:"unidade" yaml:"unidade"`
	Largura        float64         `json:"largura" yaml:"largura"`
	Altura         float64         `json:"altura" yaml:"altura"`
	Profundidade   float64         `json:"profundidade" yaml:"profundidade"`
	Dimensoes      string          `json:"dimensoes" yaml:"dimensoes"`
	ValorTotal     decimal.Decimal `json:"valor_total" yaml:"valor_total"`
	CategoriaIndex int             `json:"categoria_index" yaml:"categoria_index"`
}

// Subitem is a component of an item. ItemIndex is a position in Itens.
type Subitem struct {
	Item      `yaml:",inline"`
	ItemIndex int `json:"item_index" yaml:"item_index"`
}

// Margem is a tax or discount line attached to the budget.
type Margem struct {
	EntidadeTipo string          `json:"entidade_tipo" yaml:"entidade_tipo"`
	Tipo         string          `json:"tipo" yaml:"tipo"`
	Descricao    string          `json:"descricao" yaml:"descricao"`
	Valor        decimal.Decimal `json:"valor" yaml:"valor"`
}

// BudgetDocument is the normalized result of a Promob import.
type BudgetDocument struct {
	Orcamento  Orcamento   `json:"orcamento" yaml:"orcamento"`
	Cliente    Cliente     `json:"cliente" yaml:"cliente"`
	Ambientes  []Ambiente  `json:"ambientes" yaml:"ambientes"`
	Categorias []Categoria `json:"categorias" yaml:"categorias"`
	Itens      []Item      `json:"itens" yaml:"itens"`
	Subitens   []Subitem   `json:"subitens" yaml:"subitens"`
	Margens    []Margem    `json:"margens" yaml:"margens"`
}

// NewBudgetDocument returns a document with every list non-nil, so JSON
// renders empty arrays rather than null.
func NewBudgetDocument() *BudgetDocument {
	return &BudgetDocument{
		Ambientes:  []Ambiente{},
		Categorias: []Categoria{},
		Itens:      []Item{},
		Subitens:   []Subitem{},
		Margens:    []Margem{},
	}
}

// Validate checks the positional parent indices. An index into an empty
// parent list is accepted: persistence attaches such rows to position 0.
func (d *BudgetDocument) Validate() error {
	var violations []string
	for i, c := range d.Categorias {
		if !validIndex(c.AmbienteIndex, len(d.Ambientes)) {
			violations = append(violations, fmt.Sprintf("categorias[%d].ambiente_index %d out of range [0,%d)", i, c.AmbienteIndex, len(d.Ambientes)))
		}
	}
	for i, it := range d.Itens {
		if !validIndex(it.CategoriaIndex, len(d.Categorias)) {
			violations = append(violations, fmt.Sprintf("itens[%d].categoria_index %d out of range [0,%d)", i, it.CategoriaIndex, len(d.Categorias)))
		}
	}
	for i, s := range d.Subitens {
		if !validIndex(s.ItemIndex, len(d.Itens)) {
			violations = append(violations, fmt.Sprintf("subitens[%d].item_index %d out of range [0,%d)", i, s.ItemIndex, len(d.Itens)))
		}
	}
	if len(violations) > 0 {
		return &parsererror.ValidationError{Violations: violations}
	}
	return nil
}

func validIndex(idx, n int) bool {
	if idx < 0 {
		return false
	}
	return n == 0 || idx < n
}

// Dimensions renders the "{largura}x{altura}x{profundidade}" string.
func Dimensions(width, height, depth float64) string {
	return formatFloat(width) + DimensionSeparator + formatFloat(height) + DimensionSeparator + formatFloat(depth)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
