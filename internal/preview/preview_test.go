package preview

import (
	"bytes"
	"strings"
	"testing"

	"fjacquet/promob-import/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructure(t *testing.T) {
	x := &models.XMLStructure{
		Type: models.SchemaPromob,
		Root: "PROMOB",
		Sections: []models.Section{
			{Name: models.SectionCustomers, Data: []models.Pair{
				{ID: "Environment", Value: "Sala"},
				{ID: "email", Value: "a@example.com"},
				{ID: "celular", Value: "11999998888"},
			}},
		},
		HasCustomerData: true,
	}

	var buf bytes.Buffer
	require.NoError(t, Structure(&buf, x, 2))
	out := buf.String()

	assert.Contains(t, out, "promob")
	assert.Contains(t, out, "<PROMOB>")
	assert.Regexp(t, `CUSTOMERSDATA\s+3 pairs`, out)
	assert.Regexp(t, `Environment\s+Sala`, out)
	assert.Contains(t, out, "(1 more)")
	assert.NotContains(t, out, "11999998888")
	assert.Regexp(t, `AMBIENTS\s+absent`, out)
	assert.NotContains(t, out, "Nothing can be imported")
}

func TestStructure_Unknown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Structure(&buf, models.Unknown(), DefaultMaxPairs))
	out := buf.String()
	assert.Contains(t, out, "unknown")
	assert.NotContains(t, out, "Root element")
	assert.Equal(t, 5, strings.Count(out, "absent"))
	assert.Contains(t, out, "Nothing can be imported")
}

func TestBudget(t *testing.T) {
	doc := models.NewBudgetDocument()
	doc.Orcamento = models.Orcamento{
		Data:           "2025-08-05",
		Ambiente:       "Sala",
		ValorOrcamento: decimal.RequireFromString("1234.5"),
	}
	doc.Cliente.Nome = "Maria"
	doc.Ambientes = []models.Ambiente{{Descricao: "Sala", TotalOrcamento: decimal.NewFromInt(1000)}}
	doc.Categorias = []models.Categoria{{Descricao: "Estofados"}}
	doc.Itens = []models.Item{{Descricao: "Sofa", Quantidade: 1, Unidade: "UN", ValorTotal: decimal.NewFromInt(1000)}}

	var buf bytes.Buffer
	require.NoError(t, Budget(&buf, doc))
	out := buf.String()

	assert.Regexp(t, `Customer:\s+Maria`, out)
	assert.Contains(t, out, "R$ 1.234,50")
	assert.Contains(t, out, "1 / 1 / 1")
	assert.Contains(t, out, "1 UN Sofa")
	assert.Contains(t, out, "R$ 1.000,00")
	assert.NotContains(t, out, "Sub-items")
	assert.NotContains(t, out, "Status")
}
