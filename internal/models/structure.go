// Package models holds the data model shared by every stage of the import:
// the classification result (XMLStructure), the flattened sections, the typed
// ambient tree and the normalized budget document.
package models

import (
	"fjacquet/promob-import/internal/currencyutils"

	"github.com/shopspring/decimal"
)

// SchemaType tells which extraction path applies to a document.
type SchemaType string

const (
	SchemaPromob      SchemaType = "promob"
	SchemaTraditional SchemaType = "traditional"
	// SchemaUnknown is terminal: the caller must not run a full import.
	SchemaUnknown SchemaType = "unknown"
)

// SectionName names one of the Promob container elements.
type SectionName string

const (
	SectionCustomers   SectionName = "CUSTOMERSDATA"
	SectionItems       SectionName = "ITEMSDATA"
	SectionBudget      SectionName = "BUDGETDATA"
	SectionTotalPrices SectionName = "TOTALPRICES"
	SectionAmbients    SectionName = "AMBIENTS"
)

// KnownSections lists the Promob sections in extraction order.
var KnownSections = []SectionName{
	SectionCustomers,
	SectionItems,
	SectionBudget,
	SectionTotalPrices,
	SectionAmbients,
}

// Pair is one flattened id/value entry of a section.
type Pair struct {
	ID    string `json:"id" yaml:"id"`
	Value string `json:"value" yaml:"value"`
}

// Section is the flattened key/value view of one Promob container, in
// document order. Ids may repeat; lookups return the first match.
type Section struct {
	Name SectionName `json:"name" yaml:"name"`
	Data []Pair      `json:"data" yaml:"data"`

	// Ambients is the typed tree the AMBIENTS pairs were rendered from. It is
	// only set by the extractor and does not survive serialization.
	Ambients []AmbientNode `json:"-" yaml:"-"`
}

// Lookup returns the value of the first pair whose id equals id exactly, or "".
func (s Section) Lookup(id string) string {
	for _, p := range s.Data {
		if p.ID == id {
			return p.Value
		}
	}
	return ""
}

// LookupNumber coerces Lookup(id) to a decimal; missing or unparseable values
// are zero.
func (s Section) LookupNumber(id string) decimal.Decimal {
	return currencyutils.ParseAmount(s.Lookup(id))
}

// XMLStructure is the classification result handed to the preview step.
type XMLStructure struct {
	Type     SchemaType `json:"type" yaml:"type"`
	Root     string     `json:"root,omitempty" yaml:"root,omitempty"`
	Sections []Section  `json:"sections" yaml:"sections"`

	HasCustomerData bool `json:"hasCustomerData" yaml:"hasCustomerData"`
	HasItemsData    bool `json:"hasItemsData" yaml:"hasItemsData"`
	HasBudgetData   bool `json:"hasBudgetData" yaml:"hasBudgetData"`
	HasTotalPrices  bool `json:"hasTotalPrices" yaml:"hasTotalPrices"`
	HasAmbients     bool `json:"hasAmbients" yaml:"hasAmbients"`
}

// Unknown returns the terminal classification: no sections, no flags.
func Unknown() *XMLStructure {
	return &XMLStructure{Type: SchemaUnknown, Sections: []Section{}}
}

// Section returns the section with this name.
func (x *XMLStructure) Section(name SectionName) (Section, bool) {
	return FindSection(x.Sections, name)
}

// SetFlag marks a section as present.
func (x *XMLStructure) SetFlag(name SectionName) {
	switch name {
	case SectionCustomers:
		x.HasCustomerData = true
	case SectionItems:
		x.HasItemsData = true
	case SectionBudget:
		x.HasBudgetData = true
	case SectionTotalPrices:
		x.HasTotalPrices = true
	case SectionAmbients:
		x.HasAmbients = true
	}
}

// FindSection returns the first section with this name.
func FindSection(sections []Section, name SectionName) (Section, bool) {
	for _, s := range sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}
