package promobparser

import (
	"strings"

	"fjacquet/promob-import/internal/currencyutils"
	"fjacquet/promob-import/internal/dateutils"
	"fjacquet/promob-import/internal/models"

	"github.com/shopspring/decimal"
)

// CUSTOMERSDATA ids.
const (
	idCustomerName  = "nomecliente"
	idCorporateName = "corporateName"
	idEmail         = "email"
	idEmailPrivate  = "email_Private_0"
	idPhoneMobile   = "phone_Mobile_0"
	idCelular       = "celular"
	idEnvironment   = "Environment"
	idSituation     = "Situation"
	idStage         = "Stage"
	idCreatedOn     = "CreatedOn"
)

// TOTALPRICES ids beyond the synthetic *_VALUE ones.
const (
	idBudgetAcrescimo = "BUDGET_ACRESCIMO"
	idOrderAcrescimo  = "ORDER_ACR_1"
	idBudgetFrete     = "BUDGET_FRETE"
	idBudgetMontagem  = "BUDGET_MONTAGEM"
	idOrderICMS       = "ORDER_ICMS"
	idOrderIPI        = "ORDER_IPI"
)

var discountIDs = []string{"ORDER_DESC_1", "ORDER_DESC_2", "ORDER_DESC_3", "ORDER_DESC_4"}

const phoneSeparator = "|"

// Environment returns the trimmed environment name, the one required field.
func Environment(customers models.Section) string {
	return strings.TrimSpace(customers.Lookup(idEnvironment))
}

// UsablePhone strips the DDI prefix from a "55|11999998888" style mobile
// value. Without a separator the celular value is used, and the raw mobile
// value when celular is empty too.
func UsablePhone(mobile, celular string) string {
	if _, after, ok := strings.Cut(mobile, phoneSeparator); ok {
		return after
	}
	if celular != "" {
		return celular
	}
	return mobile
}

func (p *Parser) mapCliente(customers models.Section) models.Cliente {
	nome := customers.Lookup(idCustomerName)
	if strings.TrimSpace(nome) == "" {
		nome = customers.Lookup(idCorporateName)
	}
	mobile := customers.Lookup(idPhoneMobile)
	celular := customers.Lookup(idCelular)

	raw := mobile
	if raw == "" {
		raw = celular
	}
	return models.Cliente{
		Nome:             nome,
		Email:            customers.Lookup(idEmail),
		EmailAlternativo: customers.Lookup(idEmailPrivate),
		Telefone:         UsablePhone(mobile, celular),
		TelefoneRaw:      raw,
	}
}

func (p *Parser) mapOrcamento(customers, totals models.Section) models.Orcamento {
	acrescimo := totals.LookupNumber(idBudgetAcrescimo)
	if strings.TrimSpace(totals.Lookup(idBudgetAcrescimo)) == "" {
		acrescimo = totals.LookupNumber(idOrderAcrescimo)
	}

	discounts := make([]decimal.Decimal, 0, len(discountIDs))
	for _, id := range discountIDs {
		discounts = append(discounts, totals.LookupNumber(id))
	}

	return models.Orcamento{
		Data:           dateutils.BRDateOrToday(customers.Lookup(idCreatedOn), p.now),
		Ambiente:       Environment(customers),
		Situacao:       customers.Lookup(idSituation),
		Etapa:          customers.Lookup(idStage),
		ValorPedido:    totals.LookupNumber(idOrderValue),
		ValorOrcamento: totals.LookupNumber(idBudgetValue),
		Acrescimo:      acrescimo,
		Frete:          totals.LookupNumber(idBudgetFrete),
		Montagem:       totals.LookupNumber(idBudgetMontagem),
		Impostos:       currencyutils.Sum(totals.LookupNumber(idOrderICMS), totals.LookupNumber(idOrderIPI)),
		Descontos:      currencyutils.Sum(discounts...),
	}
}

// orderTotal prefers the ORDER margin value over the table price.
func orderTotal(pr models.PriceNode) decimal.Decimal {
	if strings.TrimSpace(pr.Order) != "" {
		return currencyutils.ParseAmount(pr.Order)
	}
	return currencyutils.ParseAmount(pr.Table)
}

// budgetTotal prefers the BUDGET margin value over the table price.
func budgetTotal(pr models.PriceNode) decimal.Decimal {
	if strings.TrimSpace(pr.Budget) != "" {
		return currencyutils.ParseAmount(pr.Budget)
	}
	return currencyutils.ParseAmount(pr.Table)
}

func (p *Parser) mapItem(n models.ItemNode, categoryIndex int) models.Item {
	width := currencyutils.ParseFloat(n.Width)
	height := currencyutils.ParseFloat(n.Height)
	depth := currencyutils.ParseFloat(n.Depth)

	quantity := currencyutils.ParseFloat(n.Quantity)
	if quantity == 0 {
		quantity = models.DefaultQuantity
	}
	unit := strings.TrimSpace(n.Unit)
	if unit == "" {
		unit = p.defaultUnit
	}
	dims := strings.TrimSpace(n.TextDimension)
	if dims == "" {
		dims = models.Dimensions(width, height, depth)
	}
	value := n.Price.TotalComponents
	if strings.TrimSpace(value) == "" {
		value = n.Price.Table
	}

	return models.Item{
		Descricao:      n.Description,
		Referencia:     n.Reference,
		Quantidade:     quantity,
		Unidade:        unit,
		Largura:        width,
		Altura:         height,
		Profundidade:   depth,
		Dimensoes:      dims,
		ValorTotal:     currencyutils.ParseAmount(value),
		CategoriaIndex: categoryIndex,
	}
}
