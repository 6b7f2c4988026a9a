// Package batch imports every budget XML file of a directory with a bounded
// worker pool and writes one JSON document per input.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fjacquet/promob-import/internal/fileutils"
	"fjacquet/promob-import/internal/importer"
	"fjacquet/promob-import/internal/logging"
	"fjacquet/promob-import/internal/models"
)

// DefaultWorkers is used when no worker count is configured.
const DefaultWorkers = 4

// FileImporter imports one file.
type FileImporter interface {
	ImportFile(ctx context.Context, path string) (*importer.Result, error)
}

// JSONWriter writes one document and returns the path written.
type JSONWriter interface {
	WriteJSONFile(name string, v any) (string, error)
}

// FileResult is the outcome for one input file.
type FileResult struct {
	Input  string
	Output string
	Schema models.SchemaType
	Err    error
}

// Summary is the outcome of a batch run, with Files in input order.
type Summary struct {
	Processed int
	Failed    int
	Files     []FileResult
	Duration  time.Duration
}

// Errors returns the per-file errors keyed by input path.
func (s *Summary) Errors() map[string]error {
	errs := make(map[string]error, s.Failed)
	for _, f := range s.Files {
		if f.Err != nil {
			errs[f.Input] = f.Err
		}
	}
	return errs
}

// Processor runs batch imports.
type Processor struct {
	logger   logging.Logger
	importer FileImporter
	writer   JSONWriter
	workers  int
}

// NewProcessor creates a Processor. A workers value below 1 means DefaultWorkers.
func NewProcessor(logger logging.Logger, imp FileImporter, writer JSONWriter, workers int) *Processor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Processor{logger: logger, importer: imp, writer: writer, workers: workers}
}

// ListInputs returns the .xml files directly under dir, sorted by name.
func ListInputs(dir string) ([]string, error) {
	files, err := fileutils.ListFilesWithExtension(dir, ".xml")
	if err != nil {
		return nil, fmt.Errorf("error reading input directory: %w", err)
	}
	return files, nil
}

// OutputName maps an input file to its JSON output under outputDir.
func OutputName(input, outputDir string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(outputDir, base+".json")
}

type job struct {
	index int
	path  string
}

// Process imports every .xml file of inputDir into outputDir. Imports are
// independent: a failing file is recorded and the others continue. Files not
// started when ctx is done are recorded with the context error.
func (p *Processor) Process(ctx context.Context, inputDir, outputDir string) (*Summary, error) {
	start := time.Now()
	files, err := ListInputs(inputDir)
	if err != nil {
		return nil, err
	}
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return nil, fmt.Errorf("error creating output directory: %w", err)
	}

	results := make([]FileResult, len(files))
	jobs := make(chan job)

	var wg sync.WaitGroup
	for w := 0; w < min(p.workers, max(len(files), 1)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.index] = p.processFile(ctx, j.path, outputDir)
			}
		}()
	}

	for i, f := range files {
		select {
		case jobs <- job{index: i, path: f}:
		case <-ctx.Done():
			results[i] = FileResult{Input: f, Err: ctx.Err()}
		}
	}
	close(jobs)
	wg.Wait()

	summary := &Summary{Files: results, Duration: time.Since(start)}
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Processed++
		}
	}

	p.logger.Info("Batch completed",
		logging.F("processed", summary.Processed),
		logging.F("failed", summary.Failed),
		logging.F("workers", p.workers),
		logging.F(logging.FieldDuration, summary.Duration.Milliseconds()))
	return summary, nil
}

func (p *Processor) processFile(ctx context.Context, path, outputDir string) FileResult {
	res := FileResult{Input: path}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	imported, err := p.importer.ImportFile(ctx, path)
	if imported != nil && imported.Structure != nil {
		res.Schema = imported.Structure.Type
	}
	if err != nil {
		p.logger.WithError(err).Warn("Batch file failed", logging.F(logging.FieldInputFile, path))
		res.Err = err
		return res
	}

	out, err := p.writer.WriteJSONFile(OutputName(path, outputDir), imported.Budget)
	if err != nil {
		res.Err = fmt.Errorf("error writing output for %s: %w", filepath.Base(path), err)
		return res
	}
	res.Output = out
	p.logger.Debug("Batch file converted",
		logging.F(logging.FieldInputFile, path),
		logging.F(logging.FieldOutputFile, out))
	return res
}
