package promobparser

import (
	"fmt"
	"strings"

	"fjacquet/promob-import/internal/models"

	"github.com/beevik/etree"
)

// Element and attribute names of the Promob export.
const (
	tagTotalPrices = "TOTALPRICES"
	tagMargins     = "MARGINS"
	tagOrder       = "ORDER"
	tagBudget      = "BUDGET"
	tagMargin      = "MARGIN"
	tagAmbient     = "AMBIENT"
	tagCategories  = "CATEGORIES"
	tagCategory    = "CATEGORY"
	tagItems       = "ITEMS"
	tagItem        = "ITEM"
	tagPrice       = "PRICE"

	attrID    = "ID"
	attrValue = "VALUE"
)

// Synthetic TOTALPRICES ids.
const (
	idTableValue  = "TABLE_VALUE"
	idOrderValue  = "ORDER_VALUE"
	idBudgetValue = "BUDGET_VALUE"
)

func (p *Parser) extractSection(container *etree.Element, name models.SectionName) models.Section {
	switch name {
	case models.SectionTotalPrices:
		return models.Section{Name: name, Data: flattenTotalPrices(container)}
	case models.SectionAmbients:
		ambients := readAmbients(container)
		return models.Section{Name: name, Data: flattenAmbients(ambients), Ambients: ambients}
	default:
		return models.Section{Name: name, Data: flattenData(container)}
	}
}

// flattenData reads ID and VALUE of every descendant DATA element verbatim.
func flattenData(container *etree.Element) []models.Pair {
	pairs := []models.Pair{}
	for _, el := range container.FindElements(".//" + dataTag) {
		pairs = append(pairs, models.Pair{
			ID:    el.SelectAttrValue(attrID, ""),
			Value: el.SelectAttrValue(attrValue, ""),
		})
	}
	return pairs
}

// flattenTotalPrices synthesizes TABLE_VALUE, ORDER_VALUE, BUDGET_VALUE and
// one ORDER_<ID>/BUDGET_<ID> pair per nested margin. Only what exists is
// emitted.
func flattenTotalPrices(container *etree.Element) []models.Pair {
	pairs := []models.Pair{}
	if attr := container.SelectAttr(models.AttrTable); attr != nil {
		pairs = append(pairs, models.Pair{ID: idTableValue, Value: attr.Value})
	}
	for _, kind := range []string{tagOrder, tagBudget} {
		el := container.FindElement(tagMargins + "/" + kind)
		if el == nil {
			continue
		}
		if attr := el.SelectAttr(attrValue); attr != nil {
			pairs = append(pairs, models.Pair{ID: kind + "_VALUE", Value: attr.Value})
		}
		for _, m := range el.FindElements(".//" + tagMargin) {
			id := m.SelectAttrValue(attrID, "")
			if id == "" {
				continue
			}
			pairs = append(pairs, models.Pair{
				ID:    kind + "_" + strings.ToUpper(id),
				Value: m.SelectAttrValue(attrValue, ""),
			})
		}
	}
	return pairs
}

// readAmbients builds the typed ambient tree. Positions are encounter order.
func readAmbients(container *etree.Element) []models.AmbientNode {
	ambients := []models.AmbientNode{}
	for _, a := range container.SelectElements(tagAmbient) {
		amb := models.AmbientNode{
			Description: a.SelectAttrValue(models.AttrDescription, ""),
			Prices:      readPrices(a.SelectElement(tagTotalPrices)),
		}
		for _, c := range a.FindElements(tagCategories + "/" + tagCategory) {
			cat := models.CategoryNode{
				Description: c.SelectAttrValue(models.AttrDescription, ""),
				Prices:      readPrices(c.SelectElement(tagTotalPrices)),
			}
			for _, it := range categoryItems(c) {
				cat.Items = append(cat.Items, readItem(it))
			}
			amb.Categories = append(amb.Categories, cat)
		}
		ambients = append(ambients, amb)
	}
	return ambients
}

// categoryItems returns the items of a category, whether listed directly or
// wrapped in ITEMS. Components nested inside an item are not items.
func categoryItems(c *etree.Element) []*etree.Element {
	var items []*etree.Element
	for _, child := range c.ChildElements() {
		switch child.Tag {
		case tagItem:
			items = append(items, child)
		case tagItems:
			items = append(items, child.SelectElements(tagItem)...)
		}
	}
	return items
}

func readItem(el *etree.Element) models.ItemNode {
	var n models.ItemNode
	for _, attr := range models.ItemAttributes {
		n.SetAttr(attr, el.SelectAttrValue(attr, ""))
	}
	if price := el.SelectElement(tagPrice); price != nil {
		n.Price.TotalComponents = price.SelectAttrValue(models.AttrTotalComponents, "")
		n.Price.Table = price.SelectAttrValue(models.AttrTable, "")
	}
	return n
}

// readPrices reads a TOTALPRICES element nested in an ambient or category.
func readPrices(el *etree.Element) models.PriceNode {
	if el == nil {
		return models.PriceNode{}
	}
	prices := models.PriceNode{Table: el.SelectAttrValue(models.AttrTable, "")}
	if order := el.FindElement(tagMargins + "/" + tagOrder); order != nil {
		prices.Order = order.SelectAttrValue(attrValue, "")
	}
	if budget := el.FindElement(tagMargins + "/" + tagBudget); budget != nil {
		prices.Budget = budget.SelectAttrValue(attrValue, "")
	}
	return prices
}

func ambientID(a int) string          { return fmt.Sprintf("%s_%d", tagAmbient, a) }
func categoryID(a, c int) string      { return fmt.Sprintf("%s_%s_%d", ambientID(a), tagCategory, c) }
func itemID(a, c, i int) string       { return fmt.Sprintf("%s_%s_%d", categoryID(a, c), tagItem, i) }
func fieldID(prefix, f string) string { return prefix + "_" + f }

// flattenAmbients renders the tree as AMBIENT_{a}_..._{FIELD} pairs, emitting
// only populated values.
func flattenAmbients(ambients []models.AmbientNode) []models.Pair {
	pairs := []models.Pair{}
	emit := func(id, value string) {
		if value != "" {
			pairs = append(pairs, models.Pair{ID: id, Value: value})
		}
	}
	emitPrices := func(prefix string, pr models.PriceNode) {
		emit(fieldID(prefix, models.AttrTable), pr.Table)
		emit(fieldID(prefix, models.AttrOrder), pr.Order)
		emit(fieldID(prefix, models.AttrBudget), pr.Budget)
	}

	for a, amb := range ambients {
		emit(fieldID(ambientID(a), models.AttrDescription), amb.Description)
		emitPrices(ambientID(a), amb.Prices)
		for c, cat := range amb.Categories {
			emit(fieldID(categoryID(a, c), models.AttrDescription), cat.Description)
			emitPrices(categoryID(a, c), cat.Prices)
			for i, it := range cat.Items {
				prefix := itemID(a, c, i)
				for _, attr := range models.ItemAttributes {
					emit(fieldID(prefix, attr), it.Attr(attr))
				}
				emit(fieldID(prefix, models.AttrTotalComponents), it.Price.TotalComponents)
				emit(fieldID(prefix, models.AttrTable), it.Price.Table)
			}
		}
	}
	return pairs
}
