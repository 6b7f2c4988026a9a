package promobparser

import (
	"strings"

	"fjacquet/promob-import/internal/models"
	"fjacquet/promob-import/internal/textutils"
)

// Substrings looked for, case and accent insensitive, in ITEMSDATA ids.
// Order matters: "valor_unitario" is a value, not a unit.
var itemFieldAliases = []struct {
	field   string
	needles []string
}{
	{models.AttrDescription, []string{"descricao", "description"}},
	{models.AttrQuantity, []string{"quantidade", "qty"}},
	{models.AttrTotalComponents, []string{"valor", "price"}},
	{models.AttrReference, []string{"referencia", "reference"}},
	{models.AttrUnit, []string{"unidade", "unit"}},
}

// sniffItems groups ITEMSDATA pairs by the token before the first "_" of
// their id and guesses each field from its name. Groups in which no field
// was recognized are dropped.
func (p *Parser) sniffItems(items models.Section, env string) []models.Item {
	var order []string
	groups := map[string]*models.ItemNode{}
	matched := map[string]bool{}

	for _, pair := range items.Data {
		prefix, _, _ := strings.Cut(pair.ID, "_")
		n, ok := groups[prefix]
		if !ok {
			n = &models.ItemNode{}
			groups[prefix] = n
			order = append(order, prefix)
		}
		field := sniffField(pair.ID)
		if field == "" {
			continue
		}
		if current := itemFieldValue(n, field); current == "" {
			n.SetAttr(field, pair.Value)
		}
		matched[prefix] = true
	}

	var result []models.Item
	for _, prefix := range order {
		if !matched[prefix] {
			continue
		}
		n := *groups[prefix]
		if strings.TrimSpace(n.Description) == "" {
			n.Description = models.GenericItemPrefix + env
		}
		result = append(result, p.mapItem(n, 0))
	}
	return result
}

func sniffField(id string) string {
	for _, alias := range itemFieldAliases {
		if textutils.ContainsAny(id, alias.needles...) {
			return alias.field
		}
	}
	return ""
}

func itemFieldValue(n *models.ItemNode, field string) string {
	if field == models.AttrTotalComponents {
		return n.Price.TotalComponents
	}
	return n.Attr(field)
}
