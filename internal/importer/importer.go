// Package importer drives a single budget import: read, classify, then
// assemble through the Promob path or the traditional fallback.
package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"fjacquet/promob-import/internal/logging"
	"fjacquet/promob-import/internal/models"
	"fjacquet/promob-import/internal/parsererror"
	"fjacquet/promob-import/internal/promobparser"
	"fjacquet/promob-import/internal/textutils"
	"fjacquet/promob-import/internal/traditionalparser"
)

const snippetLength = 80

// Result is everything one import produced. Budget is set on success;
// Traditional is set when the budget came from the fallback parser.
type Result struct {
	FilePath    string
	Structure   *models.XMLStructure
	Budget      *models.BudgetDocument
	Traditional *models.TraditionalDocument
	// Source is the schema whose extraction path produced Budget.
	Source models.SchemaType
	// Trace records each decision taken, in order.
	Trace []string
}

func (r *Result) tracef(format string, args ...interface{}) {
	r.Trace = append(r.Trace, fmt.Sprintf(format, args...))
}

// Importer runs imports. It holds no per-import state, so one Importer can
// serve concurrent imports.
type Importer struct {
	logger              logging.Logger
	promob              *promobparser.Parser
	traditional         *traditionalparser.Parser
	traditionalFallback bool
	validate            bool
}

// Option configures an Importer.
type Option func(*Importer)

// WithTraditionalFallback toggles the last-resort traditional parse when the
// Promob path yields no document or the schema is unknown.
func WithTraditionalFallback(enabled bool) Option {
	return func(i *Importer) { i.traditionalFallback = enabled }
}

// WithValidation toggles the positional index check of assembled documents.
func WithValidation(enabled bool) Option {
	return func(i *Importer) { i.validate = enabled }
}

// New creates an Importer. Nil parsers are replaced by defaults.
func New(logger logging.Logger, promob *promobparser.Parser, traditional *traditionalparser.Parser, opts ...Option) *Importer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if promob == nil {
		promob = promobparser.New(logger)
	}
	if traditional == nil {
		traditional = traditionalparser.New(logger)
	}
	i := &Importer{
		logger:              logger,
		promob:              promob,
		traditional:         traditional,
		traditionalFallback: true,
		validate:            true,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// ImportFile reads path and imports it. If ctx is done before the read
// completes the content is discarded and ctx's error returned.
func (i *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	raw, err := readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return i.run(ctx, path, raw)
}

// Import imports an in-memory document.
func (i *Importer) Import(ctx context.Context, raw []byte) (*Result, error) {
	return i.run(ctx, "", raw)
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	type readResult struct {
		raw []byte
		err error
	}
	done := make(chan readResult, 1)
	go func() {
		raw, err := os.ReadFile(path) // #nosec G304 -- path chosen by the user
		done <- readResult{raw, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, r.err)
		}
		return r.raw, nil
	}
}

func (i *Importer) run(ctx context.Context, path string, raw []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	log := i.logger.WithFields(logging.F(logging.FieldFile, path))

	res := &Result{FilePath: path}
	res.Structure = i.promob.Analyze(raw)
	res.tracef("classified as %s", res.Structure.Type)

	var err error
	switch res.Structure.Type {
	case models.SchemaPromob:
		err = i.importPromob(res, raw)
	case models.SchemaTraditional:
		err = i.importTraditional(res, raw)
	default:
		err = i.importUnknown(res, raw)
	}
	if err != nil {
		log.WithError(err).Warn("Import failed", logging.F(logging.FieldSchema, res.Structure.Type))
		return res, err
	}

	if i.validate {
		if verr := res.Budget.Validate(); verr != nil {
			var ve *parsererror.ValidationError
			if errors.As(verr, &ve) {
				ve.FilePath = path
			}
			res.tracef("validation failed")
			return res, verr
		}
		res.tracef("validated")
	}

	log.Info("Import completed",
		logging.F(logging.FieldSchema, res.Source),
		logging.F(logging.FieldAmbients, len(res.Budget.Ambientes)),
		logging.F(logging.FieldCategories, len(res.Budget.Categorias)),
		logging.F(logging.FieldItems, len(res.Budget.Itens)),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return res, nil
}

func (i *Importer) importPromob(res *Result, raw []byte) error {
	if doc := i.promob.Assemble(res.Structure.Sections); doc != nil {
		res.Budget = doc
		res.Source = models.SchemaPromob
		res.tracef("assembled %d ambients, %d categories, %d items", len(doc.Ambientes), len(doc.Categorias), len(doc.Itens))
		return nil
	}
	res.tracef("assembler returned no document")

	if i.traditionalFallback {
		ok, err := i.tryTraditional(res, raw)
		if err != nil || ok {
			return err
		}
	}
	return &parsererror.DataExtractionError{
		FilePath:  res.FilePath,
		FieldName: "Environment",
		Reason:    "customer data has no environment name",
	}
}

func (i *Importer) importTraditional(res *Result, raw []byte) error {
	ok, err := i.tryTraditional(res, raw)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w", displayPath(res.FilePath), parsererror.ErrNothingToImport)
	}
	return nil
}

func (i *Importer) importUnknown(res *Result, raw []byte) error {
	if res.Structure.Root == "" {
		res.tracef("document is not well-formed")
		return &parsererror.InvalidFormatError{
			FilePath:             res.FilePath,
			ExpectedFormat:       "well-formed XML",
			ActualContentSnippet: textutils.Snippet(string(raw), snippetLength),
			Msg:                  "document cannot be parsed",
		}
	}
	if i.traditionalFallback {
		ok, err := i.tryTraditional(res, raw)
		if err != nil || ok {
			return err
		}
	}
	return &parsererror.UnknownSchemaError{FilePath: displayPath(res.FilePath), Root: res.Structure.Root}
}

// tryTraditional runs the fallback parser and reports whether it found
// anything.
func (i *Importer) tryTraditional(res *Result, raw []byte) (bool, error) {
	td, err := i.traditional.Parse(raw)
	if err != nil {
		var fe *parsererror.InvalidFormatError
		if errors.As(err, &fe) {
			fe.FilePath = res.FilePath
		}
		res.tracef("traditional parse failed")
		return false, err
	}
	if td.IsEmpty() {
		res.tracef("traditional parse found nothing")
		return false, nil
	}
	res.Traditional = td
	res.Budget = td.AsBudget()
	res.Source = models.SchemaTraditional
	res.tracef("traditional parse found %d ambients, %d items", len(td.Ambientes), len(td.Itens))
	return true, nil
}

func displayPath(path string) string {
	if path == "" {
		return "<input>"
	}
	return path
}
