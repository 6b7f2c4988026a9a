package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/promob-import/internal/logging"
	"fjacquet/promob-import/internal/models"
	"fjacquet/promob-import/internal/parsererror"
	"fjacquet/promob-import/internal/promobparser"
	"fjacquet/promob-import/internal/traditionalparser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	promobDoc = `<PROMOB>
  <CUSTOMERSDATA><DATA ID="Environment" VALUE="Sala"/></CUSTOMERSDATA>
  <AMBIENTS><AMBIENT DESCRIPTION="Sala"><CATEGORIES><CATEGORY DESCRIPTION="Estofados">
    <ITEM DESCRIPTION="Sofa" QUANTITY="1"/>
  </CATEGORY></CATEGORIES></AMBIENT></AMBIENTS>
</PROMOB>`
	promobWithoutEnvironment  = `<PROMOB><CUSTOMERSDATA><DATA ID="nomecliente" VALUE="Maria"/></CUSTOMERSDATA></PROMOB>`
	promobWithTraditionalBody = `<PROMOB><CUSTOMERSDATA><DATA ID="nomecliente" VALUE="Maria"/></CUSTOMERSDATA>
  <ambiente nome="Cozinha"/></PROMOB>`
	traditionalDoc = `<pedido><item><descricao>Chapa MDF</descricao><quantidade>10</quantidade></item></pedido>`
)

func newTestImporter(opts ...Option) (*Importer, *logging.MockLogger) {
	logger := logging.NewMockLogger()
	now := func() time.Time { return time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC) }
	return New(logger,
		promobparser.New(logger, promobparser.WithClock(now)),
		traditionalparser.New(logger, traditionalparser.WithClock(now)),
		opts...), logger
}

func TestImport_Promob(t *testing.T) {
	imp, logger := newTestImporter()
	res, err := imp.Import(context.Background(), []byte(promobDoc))
	require.NoError(t, err)

	assert.Equal(t, models.SchemaPromob, res.Structure.Type)
	assert.Equal(t, models.SchemaPromob, res.Source)
	assert.Nil(t, res.Traditional)
	require.Len(t, res.Budget.Itens, 1)
	assert.Equal(t, "Sofa", res.Budget.Itens[0].Descricao)
	assert.Equal(t, []string{
		"classified as promob",
		"assembled 1 ambients, 1 categories, 1 items",
		"validated",
	}, res.Trace)
	assert.True(t, logger.HasEntry("INFO", "Import completed"))
}

func TestImport_Traditional(t *testing.T) {
	imp, _ := newTestImporter()
	res, err := imp.Import(context.Background(), []byte(traditionalDoc))
	require.NoError(t, err)

	assert.Equal(t, models.SchemaTraditional, res.Structure.Type)
	assert.Equal(t, models.SchemaTraditional, res.Source)
	require.NotNil(t, res.Traditional)
	require.Len(t, res.Budget.Itens, 1)
	assert.Equal(t, "Chapa MDF", res.Budget.Itens[0].Descricao)
	assert.Equal(t, 10.0, res.Budget.Itens[0].Quantidade)
}

func TestImport_PromobWithoutEnvironmentFallsBack(t *testing.T) {
	imp, _ := newTestImporter()
	res, err := imp.Import(context.Background(), []byte(promobWithTraditionalBody))
	require.NoError(t, err)

	assert.Equal(t, models.SchemaPromob, res.Structure.Type)
	assert.Equal(t, models.SchemaTraditional, res.Source)
	assert.Equal(t, "Cozinha", res.Budget.Ambientes[0].Descricao)
	assert.Contains(t, res.Trace, "assembler returned no document")
}

func TestImport_NothingToImport(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		opts []Option
	}{
		{"promob without environment", promobWithoutEnvironment, nil},
		{"fallback disabled", promobWithTraditionalBody, []Option{WithTraditionalFallback(false)}},
		{"empty traditional document", `<pedido><ITEM/><item_list/><Ambiente/></pedido>`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imp, _ := newTestImporter(tt.opts...)
			res, err := imp.Import(context.Background(), []byte(tt.xml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, parsererror.ErrNothingToImport), err.Error())
			assert.Nil(t, res.Budget)
		})
	}
}

func TestImport_Malformed(t *testing.T) {
	imp, logger := newTestImporter()
	res, err := imp.Import(context.Background(), []byte(`<PROMOB><DATA></PROMOB>`))
	require.Error(t, err)

	var formatErr *parsererror.InvalidFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, models.SchemaUnknown, res.Structure.Type)
	assert.Nil(t, res.Budget)
	assert.Len(t, logger.GetEntriesByLevel("WARN"), 1)
}

func TestImport_UnknownSchema(t *testing.T) {
	imp, _ := newTestImporter()
	_, err := imp.Import(context.Background(), []byte(`<invoice><line/></invoice>`))

	var schemaErr *parsererror.UnknownSchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "invoice", schemaErr.Root)
}

func TestImport_UnknownSchemaRescuedByFallback(t *testing.T) {
	imp, _ := newTestImporter()
	res, err := imp.Import(context.Background(), []byte(`<pedido><imposto descricao="ICMS" valor="10"/></pedido>`))
	require.NoError(t, err)
	assert.Equal(t, models.SchemaUnknown, res.Structure.Type)
	assert.Equal(t, models.SchemaTraditional, res.Source)
	require.Len(t, res.Budget.Margens, 1)
}

func TestImport_CancelledContext(t *testing.T) {
	imp, _ := newTestImporter()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := imp.Import(ctx, []byte(promobDoc))
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orcamento.xml")
	require.NoError(t, os.WriteFile(path, []byte(promobDoc), 0600))

	imp, _ := newTestImporter()
	res, err := imp.ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, res.FilePath)
	assert.Equal(t, "Sala", res.Budget.Orcamento.Ambiente)

	_, err = imp.ImportFile(context.Background(), filepath.Join(dir, "missing.xml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestImportFile_ErrorsCarryPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.xml")
	require.NoError(t, os.WriteFile(path, []byte(`<a><b></a>`), 0600))

	imp, _ := newTestImporter()
	_, err := imp.ImportFile(context.Background(), path)

	var formatErr *parsererror.InvalidFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, path, formatErr.FilePath)
}

func TestImportFile_CancelledBeforeRead(t *testing.T) {
	imp, _ := newTestImporter()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := imp.ImportFile(ctx, filepath.Join(t.TempDir(), "whatever.xml"))
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	imp := New(nil, nil, nil)
	assert.True(t, imp.traditionalFallback)
	assert.True(t, imp.validate)

	imp = New(nil, nil, nil, WithValidation(false), WithTraditionalFallback(false))
	assert.False(t, imp.traditionalFallback)
	assert.False(t, imp.validate)
}
