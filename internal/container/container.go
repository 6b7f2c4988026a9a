// Package container provides dependency injection for the promob-import
// application. It centralizes the creation and wiring of the import pipeline
// so that commands receive fully configured components.
package container

import (
	"fmt"

	"fjacquet/promob-import/internal/batch"
	"fjacquet/promob-import/internal/config"
	"fjacquet/promob-import/internal/exporter"
	"fjacquet/promob-import/internal/importer"
	"fjacquet/promob-import/internal/logging"
	"fjacquet/promob-import/internal/productparser"
	"fjacquet/promob-import/internal/promobparser"
	"fjacquet/promob-import/internal/store"
	"fjacquet/promob-import/internal/traditionalparser"
)

// Container holds all application dependencies. It is immutable after
// creation; components are reached through getters.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	promob      *promobparser.Parser
	traditional *traditionalparser.Parser
	importer    *importer.Importer
	exporter    *exporter.Exporter
	products    *productparser.Parser
	batch       *batch.Processor
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	return NewContainerWithLogger(cfg, nil)
}

// NewContainerWithLogger wires the dependencies around an existing logger.
// A nil logger is built from the configuration.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	promob := promobparser.New(logger,
		promobparser.WithDefaultUnit(cfg.Import.DefaultUnit),
		promobparser.WithFallbackCategory(cfg.Import.FallbackCategory))
	traditional := traditionalparser.New(logger,
		traditionalparser.WithDefaultUnit(cfg.Import.DefaultUnit))

	imp := importer.New(logger, promob, traditional,
		importer.WithTraditionalFallback(cfg.Import.TraditionalFallback),
		importer.WithValidation(cfg.Import.ValidateDocument))
	exp := exporter.New(logger, cfg.Output.JSONIndent, cfg.DelimiterRune())

	logger.Debug("Container initialized",
		logging.F("traditional_fallback", cfg.Import.TraditionalFallback),
		logging.F("workers", cfg.Batch.Workers))

	return &Container{
		logger:      logger,
		config:      cfg,
		promob:      promob,
		traditional: traditional,
		importer:    imp,
		exporter:    exp,
		products:    productparser.New(logger),
		batch:       batch.NewProcessor(logger, imp, exp, cfg.Batch.Workers),
	}, nil
}

// GetLogger returns the container's logger.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetPromobParser returns the Promob classifier and assembler.
func (c *Container) GetPromobParser() *promobparser.Parser {
	return c.promob
}

// GetTraditionalParser returns the fallback parser.
func (c *Container) GetTraditionalParser() *traditionalparser.Parser {
	return c.traditional
}

// GetImporter returns the import orchestrator.
func (c *Container) GetImporter() *importer.Importer {
	return c.importer
}

// GetExporter returns the JSON and CSV exporter.
func (c *Container) GetExporter() *exporter.Exporter {
	return c.exporter
}

// GetProductParser returns the generic product importer.
func (c *Container) GetProductParser() *productparser.Parser {
	return c.products
}

// GetBatchProcessor returns the directory importer.
func (c *Container) GetBatchProcessor() *batch.Processor {
	return c.batch
}

// NewRepository returns the persistence backend: an in-memory repository for
// dry runs, else YAML files under the configured data directory.
func (c *Container) NewRepository(dryRun bool) (store.Repository, error) {
	if dryRun {
		return store.NewMemoryRepository(), nil
	}
	return c.OpenStore()
}

// OpenStore returns the YAML repository under the configured data directory.
func (c *Container) OpenStore() (*store.YAMLRepository, error) {
	repo, err := store.NewYAMLRepository(c.config.Data.Directory, c.logger)
	if err != nil {
		return nil, fmt.Errorf("error opening data directory: %w", err)
	}
	return repo, nil
}

// NewWriter returns a budget writer over repo.
func (c *Container) NewWriter(repo store.Repository) *store.Writer {
	return store.NewWriter(repo, c.logger)
}

// Close releases container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
