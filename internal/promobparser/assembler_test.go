package promobparser

import (
	"testing"

	"fjacquet/promob-import/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertIndicesConsistent(t *testing.T, doc *models.BudgetDocument) {
	t.Helper()
	for i, c := range doc.Categorias {
		assert.Less(t, c.AmbienteIndex, len(doc.Ambientes), "categoria %d", i)
		assert.GreaterOrEqual(t, c.AmbienteIndex, 0)
	}
	for i, it := range doc.Itens {
		assert.Less(t, it.CategoriaIndex, len(doc.Categorias), "item %d", i)
		assert.GreaterOrEqual(t, it.CategoriaIndex, 0)
	}
}

func TestAssemble_Fixture(t *testing.T) {
	p, logger := newTestParser()
	doc := p.AssembleStructure(p.Analyze(readFixture(t, "orcamento_promob.xml")))
	require.NotNil(t, doc)

	o := doc.Orcamento
	assert.Equal(t, "2025-08-05", o.Data)
	assert.Equal(t, "Cozinha", o.Ambiente)
	assert.Equal(t, "Aberto", o.Situacao)
	assert.Equal(t, "Negociação", o.Etapa)
	assertDecimal(t, "11875", o.ValorPedido)
	assertDecimal(t, "14500", o.ValorOrcamento)
	assertDecimal(t, "50", o.Acrescimo)
	assertDecimal(t, "350", o.Frete)
	assertDecimal(t, "800", o.Montagem)
	assertDecimal(t, "1500", o.Impostos)
	assertDecimal(t, "625", o.Descontos)

	assert.Equal(t, models.Cliente{
		Nome:             "Maria Silva",
		Email:            "maria@example.com",
		EmailAlternativo: "maria.silva@example.org",
		Telefone:         "11999998888",
		TelefoneRaw:      "55|11999998888",
	}, doc.Cliente)

	require.Len(t, doc.Ambientes, 2)
	assert.Equal(t, "Cozinha", doc.Ambientes[0].Descricao)
	assertDecimal(t, "9500", doc.Ambientes[0].TotalPedido)
	assertDecimal(t, "12000", doc.Ambientes[0].TotalOrcamento)
	assert.Equal(t, "Área de Serviço", doc.Ambientes[1].Descricao)
	assertDecimal(t, "2500", doc.Ambientes[1].TotalPedido)
	assertDecimal(t, "2500", doc.Ambientes[1].TotalOrcamento)

	require.Len(t, doc.Categorias, 3)
	assert.Equal(t, []int{0, 0, 1}, []int{
		doc.Categorias[0].AmbienteIndex,
		doc.Categorias[1].AmbienteIndex,
		doc.Categorias[2].AmbienteIndex,
	})
	assert.Equal(t, "Bancadas", doc.Categorias[1].Descricao)
	assertDecimal(t, "7000", doc.Categorias[0].TotalPedido)
	assertDecimal(t, "0", doc.Categorias[2].TotalOrcamento)

	require.Len(t, doc.Itens, 4)
	aereo := doc.Itens[0]
	assert.Equal(t, "Armário Aéreo", aereo.Descricao)
	assert.Equal(t, "AA-60", aereo.Referencia)
	assert.Equal(t, 2.0, aereo.Quantidade)
	assert.Equal(t, "600x720x350", aereo.Dimensoes)
	assertDecimal(t, "3000", aereo.ValorTotal)

	balcao := doc.Itens[1]
	assert.Equal(t, "1200 x 850 x 550", balcao.Dimensoes)
	assert.Equal(t, "UN", balcao.Unidade)
	assertDecimal(t, "4000", balcao.ValorTotal)

	assert.Equal(t, 1.5, doc.Itens[2].Quantidade)
	assert.Equal(t, "M2", doc.Itens[2].Unidade)
	assert.Equal(t, []int{0, 0, 1, 2}, []int{
		doc.Itens[0].CategoriaIndex,
		doc.Itens[1].CategoriaIndex,
		doc.Itens[2].CategoriaIndex,
		doc.Itens[3].CategoriaIndex,
	})

	assert.Empty(t, doc.Subitens)
	assert.Empty(t, doc.Margens)
	assertIndicesConsistent(t, doc)
	assert.True(t, logger.HasEntry("DEBUG", "Document assembled"))
}

func TestAssemble_MinimalDocument(t *testing.T) {
	p, _ := newTestParser()
	doc := p.AssembleStructure(p.Analyze([]byte(minimalPromob)))
	require.NotNil(t, doc)

	require.Len(t, doc.Ambientes, 1)
	require.Len(t, doc.Categorias, 1)
	require.Len(t, doc.Itens, 1)
	assert.Equal(t, "Sala", doc.Ambientes[0].Descricao)
	assert.Equal(t, "Estofados", doc.Categorias[0].Descricao)
	assert.Equal(t, "Sofa", doc.Itens[0].Descricao)
	assert.Equal(t, 1.0, doc.Itens[0].Quantidade)
	assert.Equal(t, "2025-03-09", doc.Orcamento.Data)
}

func TestAssemble_DecodedIDsMatchTypedTree(t *testing.T) {
	p, _ := newTestParser()
	x := p.Analyze(readFixture(t, "orcamento_promob.xml"))
	typed := p.Assemble(x.Sections)

	// Sections reloaded from a saved preview carry pairs only.
	stripped := make([]models.Section, len(x.Sections))
	for i, s := range x.Sections {
		stripped[i] = models.Section{Name: s.Name, Data: s.Data}
	}
	decoded := p.Assemble(stripped)

	require.NotNil(t, typed)
	assert.Equal(t, typed, decoded)
}

func TestAssemble_NoAmbientsFallback(t *testing.T) {
	sections := []models.Section{
		{Name: models.SectionCustomers, Data: []models.Pair{{ID: "Environment", Value: "Cozinha"}}},
		{Name: models.SectionTotalPrices, Data: []models.Pair{{ID: "BUDGET_VALUE", Value: "1500,00"}}},
	}
	p, logger := newTestParser()
	doc := p.Assemble(sections)
	require.NotNil(t, doc)

	require.Len(t, doc.Ambientes, 1)
	assert.Equal(t, "Cozinha", doc.Ambientes[0].Descricao)
	assertDecimal(t, "1500", doc.Ambientes[0].TotalOrcamento)

	require.Len(t, doc.Categorias, 1)
	assert.Equal(t, "Categoria Principal", doc.Categorias[0].Descricao)
	assert.Equal(t, 0, doc.Categorias[0].AmbienteIndex)

	require.Len(t, doc.Itens, 1)
	assert.Equal(t, "Móveis de Cozinha", doc.Itens[0].Descricao)
	assertDecimal(t, "1500", doc.Itens[0].ValorTotal)
	assert.Equal(t, 1.0, doc.Itens[0].Quantidade)
	assertIndicesConsistent(t, doc)
	assert.True(t, logger.HasEntry("DEBUG", "No ambients found, synthesizing a single ambient"))
}

func TestAssemble_EmptyAmbientsSectionFallsBack(t *testing.T) {
	p, _ := newTestParser()
	doc := p.AssembleStructure(p.Analyze([]byte(`<PROMOB>
		<CUSTOMERSDATA><DATA ID="Environment" VALUE="Quarto"/></CUSTOMERSDATA>
		<TOTALPRICES><MARGINS><ORDER VALUE="800"/></MARGINS></TOTALPRICES>
		<AMBIENTS/>
	</PROMOB>`)))
	require.NotNil(t, doc)
	require.Len(t, doc.Ambientes, 1)
	assert.Equal(t, "Quarto", doc.Ambientes[0].Descricao)
	require.Len(t, doc.Itens, 1)
	assertDecimal(t, "800", doc.Itens[0].ValorTotal)
}

func TestAssemble_ConfiguredFallbackCategory(t *testing.T) {
	p := New(nil, WithFallbackCategory("Geral"))
	doc := p.Assemble([]models.Section{
		{Name: models.SectionCustomers, Data: []models.Pair{{ID: "Environment", Value: "Sala"}}},
	})
	require.NotNil(t, doc)
	assert.Equal(t, "Geral", doc.Categorias[0].Descricao)
}

func TestAssemble_ItemsDataSniffing(t *testing.T) {
	sections := []models.Section{
		{Name: models.SectionCustomers, Data: []models.Pair{{ID: "Environment", Value: "Sala"}}},
		{Name: models.SectionItems, Data: []models.Pair{
			{ID: "1_Descrição", Value: "Rack"},
			{ID: "1_Qty", Value: "2"},
			{ID: "1_ValorTotal", Value: "R$ 900,00"},
			{ID: "1_Price", Value: "1"},
			{ID: "2_DESCRIPTION", Value: "Painel"},
			{ID: "2_UnitPrice", Value: "300"},
			{ID: "3_Cor", Value: "Branco"},
			{ID: "4_quantidade", Value: "3"},
		}},
	}
	p, _ := newTestParser()
	doc := p.Assemble(sections)
	require.NotNil(t, doc)

	require.Len(t, doc.Itens, 3)
	assert.Equal(t, "Rack", doc.Itens[0].Descricao)
	assert.Equal(t, 2.0, doc.Itens[0].Quantidade)
	assertDecimal(t, "900", doc.Itens[0].ValorTotal)

	assert.Equal(t, "Painel", doc.Itens[1].Descricao)
	assertDecimal(t, "300", doc.Itens[1].ValorTotal)

	assert.Equal(t, "Móveis de Sala", doc.Itens[2].Descricao)
	assert.Equal(t, 3.0, doc.Itens[2].Quantidade)

	for _, it := range doc.Itens {
		assert.Equal(t, 0, it.CategoriaIndex)
	}
}

func TestAssemble_NoUsableDocument(t *testing.T) {
	tests := []struct {
		name     string
		sections []models.Section
	}{
		{"no sections", nil},
		{"no customers", []models.Section{{Name: models.SectionTotalPrices, Data: []models.Pair{{ID: "BUDGET_VALUE", Value: "10"}}}}},
		{"empty environment", []models.Section{{Name: models.SectionCustomers, Data: []models.Pair{{ID: "Environment", Value: " "}}}}},
		{"customer name only", []models.Section{{Name: models.SectionCustomers, Data: []models.Pair{{ID: "nomecliente", Value: "Maria"}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestParser()
			assert.Nil(t, p.Assemble(tt.sections))
		})
	}
}

func TestAssembleStructure_NonPromob(t *testing.T) {
	p, _ := newTestParser()
	assert.Nil(t, p.AssembleStructure(nil))
	assert.Nil(t, p.AssembleStructure(models.Unknown()))
	assert.Nil(t, p.AssembleStructure(&models.XMLStructure{Type: models.SchemaTraditional}))
}

func TestDecodeAmbients(t *testing.T) {
	pairs := []models.Pair{
		{ID: "AMBIENT_1_TABLE", Value: "200"},
		{ID: "AMBIENT_0_CATEGORY_0_ITEM_1_DESCRIPTION", Value: "Cadeira"},
		{ID: "AMBIENT_1_DESCRIPTION", Value: "Quarto"},
		{ID: "AMBIENT_0_DESCRIPTION", Value: "Sala"},
		{ID: "AMBIENT_0_CATEGORY_0_ITEM_0_DESCRIPTION", Value: "Mesa"},
		{ID: "AMBIENT_0_CATEGORY_0_ITEM_0_TOTALCOMPONENTS", Value: "50"},
		{ID: "AMBIENT_0_CATEGORY_0_DESCRIPTION", Value: "Jantar"},
		{ID: "AMBIENT_5_CATEGORY_2_ITEM_7_DESCRIPTION", Value: "Órfão"},
		{ID: "TABLE_VALUE", Value: "ignored"},
		{ID: "AMBIENT_x_DESCRIPTION", Value: "ignored"},
		{ID: "AMBIENT_0", Value: "ignored"},
	}

	ambients := DecodeAmbients(pairs)
	require.Len(t, ambients, 3)

	assert.Equal(t, "Sala", ambients[0].Description)
	require.Len(t, ambients[0].Categories, 1)
	assert.Equal(t, "Jantar", ambients[0].Categories[0].Description)
	require.Len(t, ambients[0].Categories[0].Items, 2)
	assert.Equal(t, "Mesa", ambients[0].Categories[0].Items[0].Description)
	assert.Equal(t, "50", ambients[0].Categories[0].Items[0].Price.TotalComponents)
	assert.Equal(t, "Cadeira", ambients[0].Categories[0].Items[1].Description)

	assert.Equal(t, "Quarto", ambients[1].Description)
	assert.Equal(t, "200", ambients[1].Prices.Table)

	// Parents of an orphan item are created implicitly.
	assert.Empty(t, ambients[2].Description)
	require.Len(t, ambients[2].Categories, 1)
	assert.Equal(t, "Órfão", ambients[2].Categories[0].Items[0].Description)
}

func TestAssemble_DecodedOrphanKeepsIndicesValid(t *testing.T) {
	p, _ := newTestParser()
	doc := p.Assemble([]models.Section{
		{Name: models.SectionCustomers, Data: []models.Pair{{ID: "Environment", Value: "Sala"}}},
		{Name: models.SectionAmbients, Data: []models.Pair{
			{ID: "AMBIENT_3_CATEGORY_2_ITEM_5_DESCRIPTION", Value: "Sofa"},
		}},
	})
	require.NotNil(t, doc)
	require.Len(t, doc.Itens, 1)
	assert.Equal(t, 0, doc.Itens[0].CategoriaIndex)
	assert.Equal(t, 0, doc.Categorias[0].AmbienteIndex)
	assertIndicesConsistent(t, doc)
}

func TestParseSyntheticID(t *testing.T) {
	tests := []struct {
		raw  string
		ok   bool
		want syntheticID
	}{
		{"AMBIENT_0_DESCRIPTION", true, syntheticID{level: levelAmbient, field: "DESCRIPTION"}},
		{"AMBIENT_2_CATEGORY_1_TABLE", true, syntheticID{level: levelCategory, a: 2, c: 1, field: "TABLE"}},
		{"AMBIENT_2_CATEGORY_1_ITEM_9_TEXTDIMENSION", true, syntheticID{level: levelItem, a: 2, c: 1, i: 9, field: "TEXTDIMENSION"}},
		{"AMBIENT_1", false, syntheticID{}},
		{"AMBIENT_-1_DESCRIPTION", false, syntheticID{}},
		{"CATEGORY_0_DESCRIPTION", false, syntheticID{}},
		{"", false, syntheticID{}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := parseSyntheticID(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAssemble_PackageLevel(t *testing.T) {
	doc := Assemble(Analyze([]byte(minimalPromob)).Sections)
	require.NotNil(t, doc)
	assert.Equal(t, "Sofa", doc.Itens[0].Descricao)
}
