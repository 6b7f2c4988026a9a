// Package productparser imports product lists from generic purchase-order
// and NF-e XML files. It is independent of the Promob budget importer.
package productparser

import (
	"fmt"

	"fjacquet/promob-import/internal/currencyutils"
	"fjacquet/promob-import/internal/logging"
	"fjacquet/promob-import/internal/parsererror"
	"fjacquet/promob-import/internal/textutils"
	"fjacquet/promob-import/internal/xmlutils"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
)

// Product is one product record sniffed from an XML file.
type Product struct {
	Codigo        string          `json:"codigo" csv:"Codigo"`
	Descricao     string          `json:"descricao" csv:"Descricao"`
	Quantidade    float64         `json:"quantidade" csv:"Quantidade"`
	Unidade       string          `json:"unidade" csv:"Unidade"`
	ValorUnitario decimal.Decimal `json:"valor_unitario" csv:"ValorUnitario"`
	NCM           string          `json:"ncm" csv:"NCM"`
}

// Total is quantity times unit value.
func (p Product) Total() decimal.Decimal {
	return p.ValorUnitario.Mul(decimal.NewFromFloat(p.Quantidade))
}

// Field aliases, folded. The first alias present on a record wins.
var (
	codeAliases        = []string{"codigo", "cprod", "code", "sku", "referencia"}
	descriptionAliases = []string{"descricao", "xprod", "description", "nome", "name"}
	quantityAliases    = []string{"quantidade", "qcom", "qty", "quantity"}
	valueAliases       = []string{"valor", "vuncom", "price", "preco", "valorunitario"}
	unitAliases        = []string{"unidade", "ucom", "unit"}
	ncmAliases         = []string{"ncm"}

	recordTags = []string{"produto", "product", "item"}
)

// Parser extracts products.
type Parser struct {
	logger logging.Logger
}

// New creates a product parser.
func New(logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Parser{logger: logger}
}

var defaultParser = New(nil)

// Parse extracts products with a default parser.
func Parse(raw []byte) ([]Product, error) {
	return defaultParser.Parse(raw)
}

// Parse reads raw and returns the product records found. NF-e det/prod
// elements take precedence over generic produto/product/item elements.
// Records with neither a code nor a description are skipped.
func (p *Parser) Parse(raw []byte) ([]Product, error) {
	doc, err := xmlutils.ReadDocument(raw)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			ExpectedFormat:       "XML",
			ActualContentSnippet: textutils.Snippet(string(raw), 80),
			Msg:                  "document is not well-formed",
			Err:                  err,
		}
	}

	records, source := findRecords(doc.Root())
	products := make([]Product, 0, len(records))
	for _, rec := range records {
		prod, ok := sniff(fieldsOf(rec))
		if !ok {
			continue
		}
		products = append(products, prod)
	}

	p.logger.Debug("Products extracted",
		logging.F("source", source),
		logging.F(logging.FieldCount, len(products)))
	return products, nil
}

func findRecords(root *etree.Element) ([]*etree.Element, string) {
	var nfe, generic []*etree.Element
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		parent := el.Parent()
		switch {
		case el.Tag == "prod" && parent != nil && parent.Tag == "det":
			nfe = append(nfe, el)
		case textutils.EqualFoldAny(el.Tag, recordTags...):
			generic = append(generic, el)
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	walk(root)

	if len(nfe) > 0 {
		return nfe, "nfe"
	}
	return generic, "generic"
}

// fieldsOf collects attributes and direct child element text, keyed by
// folded name. Child elements override attributes of the same name.
func fieldsOf(el *etree.Element) map[string]string {
	fields := make(map[string]string, len(el.Attr)+len(el.ChildElements()))
	for _, a := range el.Attr {
		fields[textutils.Fold(a.Key)] = xmlutils.CleanText(a.Value)
	}
	for _, child := range el.ChildElements() {
		if text := xmlutils.CleanText(child.Text()); text != "" {
			fields[textutils.Fold(child.Tag)] = text
		}
	}
	return fields
}

func pick(fields map[string]string, aliases []string) string {
	for _, a := range aliases {
		if v, ok := fields[a]; ok && v != "" {
			return v
		}
	}
	return ""
}

func sniff(fields map[string]string) (Product, bool) {
	prod := Product{
		Codigo:    pick(fields, codeAliases),
		Descricao: pick(fields, descriptionAliases),
		Unidade:   pick(fields, unitAliases),
		NCM:       pick(fields, ncmAliases),
	}
	if prod.Codigo == "" && prod.Descricao == "" {
		return Product{}, false
	}

	prod.Quantidade = parseQuantity(pick(fields, quantityAliases))
	prod.ValorUnitario = parseValue(pick(fields, valueAliases))
	return prod, true
}

// NF-e amounts use a period decimal point with up to 10 places ("2.0000").
func parseQuantity(s string) float64 {
	if s == "" {
		return 1
	}
	d := parseValue(s)
	if d.Sign() <= 0 {
		return 1
	}
	return d.InexactFloat64()
}

func parseValue(s string) decimal.Decimal {
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}
	return currencyutils.ParseAmount(s)
}

// Summary describes a parsed product list.
type Summary struct {
	Count int
	Total decimal.Decimal
}

// Summarize totals the products.
func Summarize(products []Product) Summary {
	s := Summary{Count: len(products), Total: decimal.Zero}
	for _, prod := range products {
		s.Total = s.Total.Add(prod.Total())
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d products, total %s", s.Count, currencyutils.FormatBRL(s.Total))
}
