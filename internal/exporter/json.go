// Package exporter renders imported budgets as JSON and as a flat items CSV.
package exporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/promob-import/internal/fileutils"
	"fjacquet/promob-import/internal/logging"
)

// JSONExt is appended to download names that lack it.
const JSONExt = ".json"

// Exporter writes budgets to files.
type Exporter struct {
	logger    logging.Logger
	indent    string
	delimiter rune
}

// New creates an Exporter. An empty indent renders compact JSON; a zero
// delimiter means ','.
func New(logger logging.Logger, indent string, delimiter rune) *Exporter {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &Exporter{logger: logger, indent: indent, delimiter: delimiter}
}

// RenderJSON marshals v with the given indent, without HTML escaping and
// with a trailing newline.
func RenderJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("error rendering JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// JSONFileName returns name with the .json extension enforced.
func JSONFileName(name string) string {
	if strings.EqualFold(filepath.Ext(name), JSONExt) {
		return name
	}
	return name + JSONExt
}

// WriteJSONFile renders v to the caller-supplied file name, adding .json when
// missing, and returns the path written.
func (e *Exporter) WriteJSONFile(name string, v any) (string, error) {
	if v == nil {
		return "", fmt.Errorf("cannot write nil document to JSON")
	}
	path := JSONFileName(name)

	data, err := RenderJSON(v, e.indent)
	if err != nil {
		return "", err
	}
	if err := fileutils.WriteFile(path, data); err != nil {
		return "", fmt.Errorf("error writing JSON file: %w", err)
	}

	e.logger.Info("Wrote JSON document", logging.F(logging.FieldOutputFile, path))
	return path, nil
}
