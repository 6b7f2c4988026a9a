package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/promob-import/internal/config"
	"fjacquet/promob-import/internal/container"
	"fjacquet/promob-import/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "../../internal/promobparser/testdata/orcamento_promob.xml"

func newTestContainer(t *testing.T, outputDir string) *container.Container {
	t.Helper()
	cfg := config.Default()
	cfg.Output.Directory = outputDir
	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

func TestCmd_Metadata(t *testing.T) {
	assert.Equal(t, "convert", Cmd.Use)
	assert.NotNil(t, Cmd.Flags().Lookup("stdout"))
	assert.NotNil(t, Cmd.Flags().Lookup("preview"))
}

func TestRun_WritesJSON(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	err := Run(context.Background(), newTestContainer(t, dir), Options{Input: fixture, Output: filepath.Join(dir, "orc"), Preview: true}, &out)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "orc.json")) // #nosec G304 -- test file
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc["itens"], 4)

	assert.Contains(t, out.String(), "CUSTOMERSDATA")
	assert.Contains(t, out.String(), "Maria Silva")
	assert.Contains(t, out.String(), "Wrote ")
}

func TestRun_DefaultOutput(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), newTestContainer(t, dir), Options{Input: fixture}, &out))
	assert.FileExists(t, filepath.Join(dir, "orcamento_promob.json"))
}

func TestRun_Stdout(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), newTestContainer(t, t.TempDir()), Options{Input: fixture, Stdout: true}, &out))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	cliente := doc["cliente"].(map[string]any)
	assert.Equal(t, "Maria Silva", cliente["nome"])
}

func TestRun_MissingInput(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), newTestContainer(t, t.TempDir()), Options{Input: "missing.xml"}, &out)
	assert.Error(t, err)
}
