package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"fjacquet/promob-import/internal/logging"
	"fjacquet/promob-import/internal/models"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ErrBudgetNotFound is returned when no record exists for a budget id.
var ErrBudgetNotFound = errors.New("budget not found")

const recordExt = ".yaml"

// Record is everything stored for one budget; it is the content of one file.
type Record struct {
	Budget       BudgetRow        `yaml:"budget"`
	Environments []EnvironmentRow `yaml:"environments"`
	Categories   []CategoryRow    `yaml:"categories"`
	Items        []ItemRow        `yaml:"items"`
	SubItems     []SubItemRow     `yaml:"sub_items"`
	Margins      []MarginRow      `yaml:"margins"`
}

// YAMLRepository stores one YAML file per budget under a directory. Ids are
// random UUIDs. The file is rewritten after every batch so a failed save
// leaves the levels that were inserted.
type YAMLRepository struct {
	dir    string
	logger logging.Logger

	mu      sync.Mutex
	records map[string]*Record
}

// NewYAMLRepository creates the directory if needed.
func NewYAMLRepository(dir string, logger logging.Logger) (*YAMLRepository, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return nil, fmt.Errorf("error creating data directory: %w", err)
	}
	return &YAMLRepository{dir: dir, logger: logger, records: map[string]*Record{}}, nil
}

// Dir returns the directory records are written to.
func (y *YAMLRepository) Dir() string { return y.dir }

// InsertBudget implements Repository.
func (y *YAMLRepository) InsertBudget(_ context.Context, row BudgetRow) (string, error) {
	y.mu.Lock()
	defer y.mu.Unlock()
	row.ID = uuid.NewString()
	rec := &Record{Budget: row}
	y.records[row.ID] = rec
	return row.ID, y.flush(rec)
}

// InsertEnvironments implements Repository.
func (y *YAMLRepository) InsertEnvironments(_ context.Context, rows []EnvironmentRow) ([]string, error) {
	return appendRows(y, rows, func(r EnvironmentRow) string { return r.BudgetID },
		func(r *EnvironmentRow, id string) { r.ID = id },
		func(rec *Record, r EnvironmentRow) { rec.Environments = append(rec.Environments, r) })
}

// InsertCategories implements Repository.
func (y *YAMLRepository) InsertCategories(_ context.Context, rows []CategoryRow) ([]string, error) {
	return appendRows(y, rows, func(r CategoryRow) string { return r.BudgetID },
		func(r *CategoryRow, id string) { r.ID = id },
		func(rec *Record, r CategoryRow) { rec.Categories = append(rec.Categories, r) })
}

// InsertItems implements Repository.
func (y *YAMLRepository) InsertItems(_ context.Context, rows []ItemRow) ([]string, error) {
	return appendRows(y, rows, func(r ItemRow) string { return r.BudgetID },
		func(r *ItemRow, id string) { r.ID = id },
		func(rec *Record, r ItemRow) { rec.Items = append(rec.Items, r) })
}

// InsertSubItems implements Repository.
func (y *YAMLRepository) InsertSubItems(_ context.Context, rows []SubItemRow) ([]string, error) {
	return appendRows(y, rows, func(r SubItemRow) string { return r.BudgetID },
		func(r *SubItemRow, id string) { r.ID = id },
		func(rec *Record, r SubItemRow) { rec.SubItems = append(rec.SubItems, r) })
}

// InsertMargins implements Repository.
func (y *YAMLRepository) InsertMargins(_ context.Context, rows []MarginRow) ([]string, error) {
	return appendRows(y, rows, func(r MarginRow) string { return r.BudgetID },
		func(r *MarginRow, id string) { r.ID = id },
		func(rec *Record, r MarginRow) { rec.Margins = append(rec.Margins, r) })
}

func appendRows[R any](y *YAMLRepository, rows []R, budgetOf func(R) string, setID func(*R, string), add func(*Record, R)) ([]string, error) {
	y.mu.Lock()
	defer y.mu.Unlock()

	touched := map[string]*Record{}
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		budgetID := budgetOf(r)
		rec, ok := y.records[budgetID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrBudgetNotFound, budgetID)
		}
		id := uuid.NewString()
		setID(&r, id)
		add(rec, r)
		touched[budgetID] = rec
		ids = append(ids, id)
	}
	for _, rec := range touched {
		if err := y.flush(rec); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

func (y *YAMLRepository) path(budgetID string) string {
	return filepath.Join(y.dir, budgetID+recordExt)
}

func (y *YAMLRepository) flush(rec *Record) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("error marshaling budget %s: %w", rec.Budget.ID, err)
	}
	path := y.path(rec.Budget.ID)
	if err := os.WriteFile(path, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error writing budget file: %w", err)
	}
	y.logger.Debug("Budget record written",
		logging.F(logging.FieldBudgetID, rec.Budget.ID),
		logging.F(logging.FieldOutputFile, path))
	return nil
}

// Load reads the record of one budget.
func (y *YAMLRepository) Load(budgetID string) (*Record, error) {
	data, err := os.ReadFile(y.path(budgetID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrBudgetNotFound, budgetID)
		}
		return nil, fmt.Errorf("error reading budget file: %w", err)
	}
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("error parsing budget file: %w", err)
	}
	return &rec, nil
}

// List returns the ids of every stored budget, sorted.
func (y *YAMLRepository) List() ([]string, error) {
	entries, err := os.ReadDir(y.dir)
	if err != nil {
		return nil, fmt.Errorf("error reading data directory: %w", err)
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != recordExt {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), recordExt))
	}
	sort.Strings(ids)
	return ids, nil
}
