// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/promob-import/internal/container"
	"fjacquet/promob-import/internal/fileutils"
	"fjacquet/promob-import/internal/importer"
	"fjacquet/promob-import/internal/logging"
)

// ErrNoContainer is returned when a command runs before the root setup.
var ErrNoContainer = errors.New("container not initialized")

// RequireFile checks that path names an existing regular file.
func RequireFile(path string) error {
	switch {
	case path == "":
		return fmt.Errorf("an input file must be specified with --input")
	case fileutils.DirectoryExists(path):
		return fmt.Errorf("input %s is a directory", path)
	case !fileutils.FileExists(path):
		return fmt.Errorf("file does not exist: %s", path)
	}
	return nil
}

// DefaultOutput derives an output path from the input file: the input base
// name with ext, placed in dir, or next to the input when dir is empty.
func DefaultOutput(input, dir, ext string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ext
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base)
}

// ImportFile runs one import through the container's importer.
func ImportFile(ctx context.Context, c *container.Container, input string) (*importer.Result, error) {
	if c == nil {
		return nil, ErrNoContainer
	}
	if err := RequireFile(input); err != nil {
		return nil, err
	}
	res, err := c.GetImporter().ImportFile(ctx, input)
	if err != nil {
		return res, err
	}
	c.GetLogger().Debug("Import trace",
		logging.F(logging.FieldInputFile, input),
		logging.F("trace", strings.Join(res.Trace, "; ")))
	return res, nil
}
