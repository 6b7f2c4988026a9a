package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSection_Lookup(t *testing.T) {
	s := Section{
		Name: SectionCustomers,
		Data: []Pair{
			{ID: "nomecliente", Value: "Maria"},
			{ID: "email", Value: "maria@example.com"},
			{ID: "nomecliente", Value: "Second"},
			{ID: "total", Value: "R$ 1.234,56"},
		},
	}

	tests := []struct {
		name string
		id   string
		want string
	}{
		{"first match wins", "nomecliente", "Maria"},
		{"exact id", "email", "maria@example.com"},
		{"case sensitive", "EMAIL", ""},
		{"missing", "phone", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Lookup(tt.id))
		})
	}

	assert.Equal(t, "1234.56", s.LookupNumber("total").String())
	assert.True(t, s.LookupNumber("email").IsZero())
	assert.True(t, s.LookupNumber("missing").IsZero())
}

func TestXMLStructure_SetFlagAndSection(t *testing.T) {
	x := &XMLStructure{Type: SchemaPromob}
	for _, name := range KnownSections {
		x.SetFlag(name)
		x.Sections = append(x.Sections, Section{Name: name})
	}
	assert.True(t, x.HasCustomerData)
	assert.True(t, x.HasItemsData)
	assert.True(t, x.HasBudgetData)
	assert.True(t, x.HasTotalPrices)
	assert.True(t, x.HasAmbients)

	s, ok := x.Section(SectionTotalPrices)
	require.True(t, ok)
	assert.Equal(t, SectionTotalPrices, s.Name)

	_, ok = Unknown().Section(SectionCustomers)
	assert.False(t, ok)
}

func TestUnknown(t *testing.T) {
	u := Unknown()
	assert.Equal(t, SchemaUnknown, u.Type)
	assert.NotNil(t, u.Sections)
	assert.Empty(t, u.Sections)
	assert.False(t, u.HasCustomerData || u.HasItemsData || u.HasBudgetData || u.HasTotalPrices || u.HasAmbients)
}

func TestItemNode_AttrRoundTrip(t *testing.T) {
	var n ItemNode
	for i, attr := range ItemAttributes {
		n.SetAttr(attr, string(rune('a'+i)))
	}
	for i, attr := range ItemAttributes {
		assert.Equal(t, string(rune('a'+i)), n.Attr(attr), attr)
	}
	n.SetAttr(AttrTotalComponents, "10")
	n.SetAttr(AttrTable, "12")
	n.SetAttr("UNKNOWN", "x")
	assert.Equal(t, "10", n.Price.TotalComponents)
	assert.Equal(t, "12", n.Price.Table)
	assert.Empty(t, n.Attr("UNKNOWN"))
}
