package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/promob-import/internal/config"
	"fjacquet/promob-import/internal/container"
	"fjacquet/promob-import/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "../../internal/promobparser/testdata/orcamento_promob.xml"

func TestRun(t *testing.T) {
	cfg := config.Default()
	cfg.CSV.Delimiter = ";"
	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)

	output := filepath.Join(t.TempDir(), "itens.csv")
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), c, fixture, output, &out))
	assert.Contains(t, out.String(), "Wrote 4 items")

	data, err := os.ReadFile(output) // #nosec G304 -- test file
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "Ambiente;Categoria;"))
	assert.True(t, strings.HasPrefix(lines[1], "Cozinha;Armários;"))
}

func TestRun_NoContainer(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, Run(context.Background(), nil, fixture, "", &out))
}
