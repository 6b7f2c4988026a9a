// Package traditionalparser extracts budgets from generic XML documents built
// from ambiente, categoria and item elements.
//
// It is the fallback for documents without Promob markers. Missing elements
// only produce empty lists; the only failure is XML that cannot be parsed.
package traditionalparser

import (
	"time"

	"fjacquet/promob-import/internal/currencyutils"
	"fjacquet/promob-import/internal/dateutils"
	"fjacquet/promob-import/internal/logging"
	"fjacquet/promob-import/internal/models"
	"fjacquet/promob-import/internal/parsererror"
	"fjacquet/promob-import/internal/textutils"
	"fjacquet/promob-import/internal/xmlutils"

	"gopkg.in/xmlpath.v2"
)

const snippetLength = 80

// Parser extracts traditional documents.
type Parser struct {
	logger      logging.Logger
	now         dateutils.Clock
	defaultUnit string
	xpaths      xmlutils.Traditional
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock pins the clock used for the budget date.
func WithClock(now dateutils.Clock) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// WithDefaultUnit sets the unit given to items that declare none.
func WithDefaultUnit(unit string) Option {
	return func(p *Parser) {
		if unit != "" {
			p.defaultUnit = unit
		}
	}
}

// New creates a Parser. A nil logger falls back to a logrus adapter.
func New(logger logging.Logger, opts ...Option) *Parser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	p := &Parser{
		logger:      logger,
		now:         time.Now,
		defaultUnit: models.DefaultUnit,
		xpaths:      xmlutils.DefaultTraditionalXPaths(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts every ambiente, categoria, item, sub-item and margin of raw.
func (p *Parser) Parse(raw []byte) (*models.TraditionalDocument, error) {
	root, err := xmlutils.ParseXML(raw)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			ExpectedFormat:       "well-formed XML",
			ActualContentSnippet: textutils.Snippet(string(raw), snippetLength),
			Msg:                  "document cannot be parsed",
			Err:                  err,
		}
	}

	doc := models.NewTraditionalDocument()
	x := p.xpaths

	for _, n := range p.selectAll(root, x.Ambiente.List) {
		doc.Ambientes = append(doc.Ambientes, models.Ambiente{
			Descricao:      xmlutils.FieldText(n, x.Ambiente.Name),
			TotalPedido:    currencyutils.ParseAmount(xmlutils.FieldText(n, x.Ambiente.TotalPedido)),
			TotalOrcamento: currencyutils.ParseAmount(xmlutils.FieldText(n, x.Ambiente.TotalOrcamento)),
		})
	}

	// Categories are not associated with their ambiente: all point at 0.
	for _, n := range p.selectAll(root, x.Categoria.List) {
		doc.Categorias = append(doc.Categorias, models.Categoria{
			Descricao:      xmlutils.FieldText(n, x.Categoria.Name),
			TotalPedido:    currencyutils.ParseAmount(xmlutils.FieldText(n, x.Categoria.TotalPedido)),
			TotalOrcamento: currencyutils.ParseAmount(xmlutils.FieldText(n, x.Categoria.TotalOrcamento)),
			AmbienteIndex:  0,
		})
	}

	for _, n := range p.selectAll(root, x.Item.List) {
		doc.Itens = append(doc.Itens, p.readItem(n))
	}

	for _, list := range x.SubItem.Lists {
		for _, n := range p.selectAll(root, list) {
			doc.Subitens = append(doc.Subitens, models.Subitem{Item: p.readItem(n), ItemIndex: 0})
		}
	}

	for _, m := range []struct{ path, kind string }{
		{x.Margin.Tax, models.MarginTax},
		{x.Margin.Discount, models.MarginDiscount},
	} {
		for _, n := range p.selectAll(root, m.path) {
			doc.Margens = append(doc.Margens, models.Margem{
				EntidadeTipo: models.EntityBudget,
				Tipo:         m.kind,
				Descricao:    xmlutils.FieldText(n, x.Margin.Description),
				Valor:        currencyutils.ParseAmount(xmlutils.FieldText(n, x.Margin.Value)),
			})
		}
	}

	doc.Summarize(dateutils.ToISODate(p.now()))

	p.logger.Debug("Traditional document parsed",
		logging.F(logging.FieldAmbients, len(doc.Ambientes)),
		logging.F(logging.FieldCategories, len(doc.Categorias)),
		logging.F(logging.FieldItems, len(doc.Itens)),
		logging.F(logging.FieldCount, len(doc.Subitens)+len(doc.Margens)))
	return doc, nil
}

func (p *Parser) selectAll(root *xmlpath.Node, path string) []*xmlpath.Node {
	nodes, err := xmlutils.SelectNodes(root, path)
	if err != nil {
		p.logger.WithError(err).Warn("Invalid XPath expression", logging.F("xpath", path))
		return nil
	}
	return nodes
}

func (p *Parser) readItem(n *xmlpath.Node) models.Item {
	x := p.xpaths.Item
	width := currencyutils.ParseFloat(xmlutils.FieldText(n, x.Width))
	height := currencyutils.ParseFloat(xmlutils.FieldText(n, x.Height))
	depth := currencyutils.ParseFloat(xmlutils.FieldText(n, x.Depth))

	unit := xmlutils.FieldText(n, x.Unit)
	if unit == "" {
		unit = p.defaultUnit
	}

	return models.Item{
		Descricao:      xmlutils.FieldText(n, x.Description),
		Referencia:     xmlutils.FieldText(n, x.Reference),
		Quantidade:     parseQuantity(xmlutils.FieldText(n, x.Quantity)),
		Unidade:        unit,
		Largura:        width,
		Altura:         height,
		Profundidade:   depth,
		Dimensoes:      models.Dimensions(width, height, depth),
		ValorTotal:     currencyutils.ParseAmount(xmlutils.FieldText(n, x.Value)),
		CategoriaIndex: 0,
	}
}

// parseQuantity reads a whole quantity; fractions are truncated and anything
// below one becomes the default of one.
func parseQuantity(s string) float64 {
	q := float64(int64(currencyutils.ParseFloat(s)))
	if q < 1 {
		return models.DefaultQuantity
	}
	return q
}

var defaultParser = New(nil)

// Parse extracts a traditional document with the default parser.
func Parse(raw []byte) (*models.TraditionalDocument, error) {
	return defaultParser.Parse(raw)
}
