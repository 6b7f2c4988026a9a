// Package promobparser classifies budget XML documents and turns Promob
// exports into normalized budget documents.
//
// The pipeline is Analyze (classification and section extraction) followed by
// Assemble (field mapping and document assembly). Both are pure apart from
// debug logging; neither returns an error. Malformed input classifies as
// unknown, and a document with no usable environment assembles to nil.
package promobparser

import (
	"time"

	"fjacquet/promob-import/internal/dateutils"
	"fjacquet/promob-import/internal/logging"
	"fjacquet/promob-import/internal/models"
)

// Parser holds the collaborators and defaults used by Analyze and Assemble.
// A Parser has no mutable state and is safe for concurrent use.
type Parser struct {
	logger           logging.Logger
	now              dateutils.Clock
	defaultUnit      string
	fallbackCategory string
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock pins the clock used when a document date cannot be parsed.
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

// WithFallbackCategory sets the name of the category synthesized when the
// document has no ambients.
func WithFallbackCategory(name string) Option {
	return func(p *Parser) {
		if name != "" {
			p.fallbackCategory = name
		}
	}
}

// New creates a Parser. A nil logger falls back to a logrus adapter.
func New(logger logging.Logger, opts ...Option) *Parser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	p := &Parser{
		logger:           logger,
		now:              time.Now,
		defaultUnit:      models.DefaultUnit,
		fallbackCategory: models.DefaultCategory,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = New(nil)

// Analyze classifies raw with the default parser.
func Analyze(raw []byte) *models.XMLStructure {
	return defaultParser.Analyze(raw)
}

// Assemble builds a budget document from sections with the default parser.
func Assemble(sections []models.Section) *models.BudgetDocument {
	return defaultParser.Assemble(sections)
}
