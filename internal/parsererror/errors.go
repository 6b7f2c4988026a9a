// Package parsererror defines the typed errors returned by the import pipeline.
package parsererror

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNothingToImport is returned when a document was read and classified but
// holds no usable budget (no environment name and no traditional content).
var ErrNothingToImport = errors.New("nothing to import")

// ParseError represents a failure to read one value out of a document.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v", e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError reports a document that is not well-formed XML.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string
	Msg                  string
	Err                  error
}

func (e *InvalidFormatError) Error() string {
	where := e.FilePath
	if where == "" {
		where = "<input>"
	}
	msg := fmt.Sprintf("invalid format in '%s': %s. Expected: %s", where, e.Msg, e.ExpectedFormat)
	if e.ActualContentSnippet != "" {
		msg += fmt.Sprintf(". Content snippet: '%s'", e.ActualContentSnippet)
	}
	return msg
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// UnknownSchemaError reports well-formed XML that matches none of the known
// budget schemas.
type UnknownSchemaError struct {
	FilePath string
	Root     string
}

func (e *UnknownSchemaError) Error() string {
	if e.Root != "" {
		return fmt.Sprintf("unrecognized budget schema in '%s' (root element <%s>)", e.FilePath, e.Root)
	}
	return fmt.Sprintf("unrecognized budget schema in '%s'", e.FilePath)
}

// DataExtractionError reports a required value that could not be found even
// though the document format itself was recognized.
type DataExtractionError struct {
	FilePath  string
	FieldName string
	Reason    string
}

func (e *DataExtractionError) Error() string {
	return fmt.Sprintf("data extraction failed in '%s' for field '%s': %s", e.FilePath, e.FieldName, e.Reason)
}

// Is lets errors.Is(err, ErrNothingToImport) match a missing required field.
func (e *DataExtractionError) Is(target error) bool {
	return target == ErrNothingToImport
}

// ValidationError lists broken invariants of an assembled document.
type ValidationError struct {
	FilePath   string
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, strings.Join(e.Violations, "; "))
}
