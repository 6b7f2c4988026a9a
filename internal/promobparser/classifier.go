package promobparser

import (
	"strings"

	"fjacquet/promob-import/internal/logging"
	"fjacquet/promob-import/internal/models"
	"fjacquet/promob-import/internal/xmlutils"

	"github.com/beevik/etree"
)

const dataTag = "DATA"

var traditionalMarkers = []string{"ambiente", "item"}

// Analyze parses raw and decides which schema family it belongs to. For
// Promob documents every known section that is present is extracted and its
// flag set. Malformed XML is not an error: it classifies as unknown.
func (p *Parser) Analyze(raw []byte) *models.XMLStructure {
	doc, err := xmlutils.ReadDocument(raw)
	if err != nil {
		p.logger.Debug("Document is not well-formed XML",
			logging.F(logging.FieldSchema, models.SchemaUnknown),
			logging.F(logging.FieldError, err.Error()))
		return models.Unknown()
	}

	root := doc.Root()
	result := &models.XMLStructure{
		Type:     models.SchemaUnknown,
		Root:     root.Tag,
		Sections: []models.Section{},
	}

	switch {
	case hasElement(root, func(el *etree.Element) bool { return el.Tag == dataTag }):
		result.Type = models.SchemaPromob
		p.extractSections(root, result)
	case hasElement(root, isTraditionalMarker):
		result.Type = models.SchemaTraditional
	}

	p.logger.Debug("Document classified",
		logging.F(logging.FieldSchema, result.Type),
		logging.F("root", result.Root),
		logging.F(logging.FieldCount, len(result.Sections)))
	return result
}

func (p *Parser) extractSections(root *etree.Element, result *models.XMLStructure) {
	for _, name := range models.KnownSections {
		container := findContainer(root, name)
		if container == nil {
			continue
		}
		section := p.extractSection(container, name)
		result.Sections = append(result.Sections, section)
		result.SetFlag(name)
		p.logger.Debug("Section extracted",
			logging.F(logging.FieldSection, name),
			logging.F(logging.FieldPairs, len(section.Data)))
	}
}

func isTraditionalMarker(el *etree.Element) bool {
	for _, m := range traditionalMarkers {
		if strings.EqualFold(el.Tag, m) {
			return true
		}
	}
	return false
}

// hasElement walks the tree rooted at el depth-first.
func hasElement(el *etree.Element, match func(*etree.Element) bool) bool {
	if match(el) {
		return true
	}
	for _, child := range el.ChildElements() {
		if hasElement(child, match) {
			return true
		}
	}
	return false
}

// findContainer returns the first element named after the section in
// document order. TOTALPRICES also appears inside every ambient and category,
// so for it the first occurrence outside AMBIENTS is preferred.
func findContainer(root *etree.Element, name models.SectionName) *etree.Element {
	var first, outside *etree.Element
	var walk func(el *etree.Element, inAmbients bool) bool
	walk = func(el *etree.Element, inAmbients bool) bool {
		if el.Tag == string(name) {
			if first == nil {
				first = el
			}
			if !inAmbients {
				outside = el
				return true
			}
		}
		inAmbients = inAmbients || el.Tag == string(models.SectionAmbients)
		for _, child := range el.ChildElements() {
			if walk(child, inAmbients) {
				return true
			}
		}
		return false
	}
	walk(root, false)

	if outside != nil {
		return outside
	}
	return first
}
