package promobparser

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"fjacquet/promob-import/internal/logging"
	"fjacquet/promob-import/internal/models"
)

// Assemble maps the sections of a Promob document into a budget document.
// It returns nil when CUSTOMERSDATA is missing or carries no Environment.
//
// When the AMBIENTS section was produced by Analyze its typed tree is used
// directly; sections loaded from a saved preview are rebuilt from their
// synthetic ids. A document without ambients gets a single synthesized
// ambient and category so it is never returned empty.
func (p *Parser) Assemble(sections []models.Section) *models.BudgetDocument {
	customers, ok := models.FindSection(sections, models.SectionCustomers)
	if !ok {
		p.logger.Debug("No customer section, nothing to assemble")
		return nil
	}
	env := Environment(customers)
	if env == "" {
		p.logger.Debug("Customer section has no environment, nothing to assemble")
		return nil
	}

	totals, _ := models.FindSection(sections, models.SectionTotalPrices)
	orcamento := p.mapOrcamento(customers, totals)
	b := models.NewBudgetBuilder().
		WithOrcamento(orcamento).
		WithCliente(p.mapCliente(customers))

	if ambients := ambientTree(sections); len(ambients) > 0 {
		p.addTree(b, ambients)
	} else {
		items, _ := models.FindSection(sections, models.SectionItems)
		p.addFallback(b, orcamento, items)
	}

	doc, err := b.Build()
	if err != nil {
		p.logger.WithError(err).Warn("Assembled document is inconsistent",
			logging.F(logging.FieldEnvironment, env))
		return nil
	}

	p.logger.Debug("Document assembled",
		logging.F(logging.FieldEnvironment, env),
		logging.F(logging.FieldAmbients, len(doc.Ambientes)),
		logging.F(logging.FieldCategories, len(doc.Categorias)),
		logging.F(logging.FieldItems, len(doc.Itens)))
	return doc
}

// AssembleStructure assembles a classified document. Non-Promob structures
// yield nil.
func (p *Parser) AssembleStructure(x *models.XMLStructure) *models.BudgetDocument {
	if x == nil || x.Type != models.SchemaPromob {
		return nil
	}
	return p.Assemble(x.Sections)
}

func ambientTree(sections []models.Section) []models.AmbientNode {
	s, ok := models.FindSection(sections, models.SectionAmbients)
	if !ok {
		return nil
	}
	if s.Ambients != nil {
		return s.Ambients
	}
	return DecodeAmbients(s.Data)
}

func (p *Parser) addTree(b *models.BudgetBuilder, ambients []models.AmbientNode) {
	for _, amb := range ambients {
		ambientIndex, _, _ := b.Len()
		b.AddAmbiente(models.Ambiente{
			Descricao:      amb.Description,
			TotalPedido:    orderTotal(amb.Prices),
			TotalOrcamento: budgetTotal(amb.Prices),
		})
		for _, cat := range amb.Categories {
			_, categoryIndex, _ := b.Len()
			b.AddCategoria(models.Categoria{
				Descricao:      cat.Description,
				TotalPedido:    orderTotal(cat.Prices),
				TotalOrcamento: budgetTotal(cat.Prices),
				AmbienteIndex:  ambientIndex,
			})
			for _, it := range cat.Items {
				b.AddItem(p.mapItem(it, categoryIndex))
			}
		}
	}
}

func (p *Parser) addFallback(b *models.BudgetBuilder, o models.Orcamento, items models.Section) {
	p.logger.Debug("No ambients found, synthesizing a single ambient",
		logging.F(logging.FieldEnvironment, o.Ambiente))

	b.AddAmbiente(models.Ambiente{
		Descricao:      o.Ambiente,
		TotalPedido:    o.ValorPedido,
		TotalOrcamento: o.ValorOrcamento,
	})
	b.AddCategoria(models.Categoria{
		Descricao:      p.fallbackCategory,
		TotalPedido:    o.ValorPedido,
		TotalOrcamento: o.ValorOrcamento,
		AmbienteIndex:  0,
	})

	sniffed := p.sniffItems(items, o.Ambiente)
	if len(sniffed) == 0 {
		total := o.ValorOrcamento
		if total.IsZero() {
			total = o.ValorPedido
		}
		sniffed = append(sniffed, models.Item{
			Descricao:  models.GenericItemPrefix + o.Ambiente,
			Quantidade: models.DefaultQuantity,
			Unidade:    p.defaultUnit,
			Dimensoes:  models.Dimensions(0, 0, 0),
			ValorTotal: total,
		})
	}
	for _, it := range sniffed {
		b.AddItem(it)
	}
}

type ambientKey = int
type categoryKey = [2]int
type itemKey = [3]int

// DecodeAmbients rebuilds the ambient tree from AMBIENT_{a}[_CATEGORY_{c}
// [_ITEM_{i}]]_{FIELD} pairs. Entities are created on the first pair that
// mentions them, parents included, and ordered by their original indices.
// Pairs that do not follow the scheme are ignored.
func DecodeAmbients(pairs []models.Pair) []models.AmbientNode {
	ambients := map[ambientKey]*models.AmbientNode{}
	categories := map[categoryKey]*models.CategoryNode{}
	items := map[itemKey]*models.ItemNode{}

	ensureAmbient := func(a int) *models.AmbientNode {
		if n, ok := ambients[a]; ok {
			return n
		}
		n := &models.AmbientNode{}
		ambients[a] = n
		return n
	}
	ensureCategory := func(a, c int) *models.CategoryNode {
		ensureAmbient(a)
		k := categoryKey{a, c}
		if n, ok := categories[k]; ok {
			return n
		}
		n := &models.CategoryNode{}
		categories[k] = n
		return n
	}
	ensureItem := func(a, c, i int) *models.ItemNode {
		ensureCategory(a, c)
		k := itemKey{a, c, i}
		if n, ok := items[k]; ok {
			return n
		}
		n := &models.ItemNode{}
		items[k] = n
		return n
	}

	for _, pair := range pairs {
		id, ok := parseSyntheticID(pair.ID)
		if !ok {
			continue
		}
		switch id.level {
		case levelAmbient:
			n := ensureAmbient(id.a)
			setNodeField(&n.Description, &n.Prices, id.field, pair.Value)
		case levelCategory:
			n := ensureCategory(id.a, id.c)
			setNodeField(&n.Description, &n.Prices, id.field, pair.Value)
		case levelItem:
			ensureItem(id.a, id.c, id.i).SetAttr(id.field, pair.Value)
		}
	}

	var result []models.AmbientNode
	for _, a := range sortedKeys(ambients, cmp.Compare[ambientKey]) {
		amb := *ambients[a]
		for _, ck := range sortedKeys(categories, compareCategory) {
			if ck[0] != a {
				continue
			}
			cat := *categories[ck]
			for _, ik := range sortedKeys(items, compareItem) {
				if ik[0] == ck[0] && ik[1] == ck[1] {
					cat.Items = append(cat.Items, *items[ik])
				}
			}
			amb.Categories = append(amb.Categories, cat)
		}
		result = append(result, amb)
	}
	return result
}

func setNodeField(desc *string, prices *models.PriceNode, field, value string) {
	switch field {
	case models.AttrDescription:
		*desc = value
	case models.AttrTable:
		prices.Table = value
	case models.AttrOrder:
		prices.Order = value
	case models.AttrBudget:
		prices.Budget = value
	}
}

type idLevel int

const (
	levelAmbient idLevel = iota
	levelCategory
	levelItem
)

type syntheticID struct {
	level   idLevel
	a, c, i int
	field   string
}

func parseSyntheticID(raw string) (syntheticID, bool) {
	tokens := strings.Split(raw, "_")
	var id syntheticID

	index := func(pos int, tag string) (int, bool) {
		if len(tokens) <= pos+1 || tokens[pos] != tag {
			return 0, false
		}
		n, err := strconv.Atoi(tokens[pos+1])
		if err != nil || n < 0 {
			return 0, false
		}
		return n, true
	}

	var ok bool
	if id.a, ok = index(0, tagAmbient); !ok {
		return id, false
	}
	rest := 2
	if c, ok := index(2, tagCategory); ok {
		id.c, id.level, rest = c, levelCategory, 4
		if i, ok := index(4, tagItem); ok {
			id.i, id.level, rest = i, levelItem, 6
		}
	}
	id.field = strings.Join(tokens[rest:], "_")
	return id, id.field != ""
}

func sortedKeys[K comparable, V any](m map[K]V, compare func(K, K) int) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compare)
	return keys
}

func compareCategory(x, y categoryKey) int {
	return cmp.Or(cmp.Compare(x[0], y[0]), cmp.Compare(x[1], y[1]))
}

func compareItem(x, y itemKey) int {
	return cmp.Or(cmp.Compare(x[0], y[0]), cmp.Compare(x[1], y[1]), cmp.Compare(x[2], y[2]))
}
