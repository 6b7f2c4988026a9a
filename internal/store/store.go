// Package store persists imported budgets. The Writer turns the positional
// indices of a budget document into foreign keys, inserting one level at a
// time so every child batch can reference the ids its parents were given.
package store

import (
	"context"
	"fmt"

	"fjacquet/promob-import/internal/logging"
	"fjacquet/promob-import/internal/models"
)

// BudgetRow is the budget header as stored.
type BudgetRow struct {
	ID        string           `json:"id" yaml:"id"`
	Orcamento models.Orcamento `json:"orcamento" yaml:"orcamento"`
	Cliente   models.Cliente   `json:"cliente" yaml:"cliente"`
}

// EnvironmentRow is a stored ambiente.
type EnvironmentRow struct {
	ID              string `json:"id" yaml:"id"`
	BudgetID        string `json:"budget_id" yaml:"budget_id"`
	models.Ambiente `yaml:",inline"`
}

// CategoryRow is a stored categoria linked to its environment.
type CategoryRow struct {
	ID               string `json:"id" yaml:"id"`
	BudgetID         string `json:"budget_id" yaml:"budget_id"`
	EnvironmentID    string `json:"environment_id" yaml:"environment_id"`
	models.Categoria `yaml:",inline"`
}

// ItemRow is a stored item linked to its category.
type ItemRow struct {
	ID          string `json:"id" yaml:"id"`
	BudgetID    string `json:"budget_id" yaml:"budget_id"`
	CategoryID  string `json:"category_id" yaml:"category_id"`
	models.Item `yaml:",inline"`
}

// SubItemRow is a stored sub-item linked to its item.
type SubItemRow struct {
	ID             string `json:"id" yaml:"id"`
	BudgetID       string `json:"budget_id" yaml:"budget_id"`
	ItemID         string `json:"item_id" yaml:"item_id"`
	models.Subitem `yaml:",inline"`
}

// MarginRow is a stored margin linked to the budget.
type MarginRow struct {
	ID            string `json:"id" yaml:"id"`
	BudgetID      string `json:"budget_id" yaml:"budget_id"`
	models.Margem `yaml:",inline"`
}

// Repository inserts batches of rows and returns the ids it assigned, one per
// row and in row order.
type Repository interface {
	InsertBudget(ctx context.Context, row BudgetRow) (string, error)
	InsertEnvironments(ctx context.Context, rows []EnvironmentRow) ([]string, error)
	InsertCategories(ctx context.Context, rows []CategoryRow) ([]string, error)
	InsertItems(ctx context.Context, rows []ItemRow) ([]string, error)
	InsertSubItems(ctx context.Context, rows []SubItemRow) ([]string, error)
	InsertMargins(ctx context.Context, rows []MarginRow) ([]string, error)
}

// SaveResult lists the ids assigned while saving one document.
type SaveResult struct {
	BudgetID       string
	EnvironmentIDs []string
	CategoryIDs    []string
	ItemIDs        []string
	SubItemIDs     []string
	MarginIDs      []string
}

// Writer saves budget documents through a Repository.
type Writer struct {
	repo   Repository
	logger logging.Logger
}

// NewWriter creates a Writer.
func NewWriter(repo Repository, logger logging.Logger) *Writer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Writer{repo: repo, logger: logger}
}

// Save inserts the header, then environments, categories, items, sub-items
// and margins. A parent index outside its list resolves to the first parent;
// with no parents at all the parent id is left empty.
func (w *Writer) Save(ctx context.Context, doc *models.BudgetDocument) (*SaveResult, error) {
	if doc == nil {
		return nil, fmt.Errorf("cannot save a nil document")
	}
	res := &SaveResult{}

	var err error
	if res.BudgetID, err = w.repo.InsertBudget(ctx, BudgetRow{Orcamento: doc.Orcamento, Cliente: doc.Cliente}); err != nil {
		return nil, fmt.Errorf("failed to insert budget: %w", err)
	}
	log := w.logger.WithFields(logging.F(logging.FieldBudgetID, res.BudgetID))

	envRows := make([]EnvironmentRow, 0, len(doc.Ambientes))
	for _, a := range doc.Ambientes {
		envRows = append(envRows, EnvironmentRow{BudgetID: res.BudgetID, Ambiente: a})
	}
	if res.EnvironmentIDs, err = insertBatch(ctx, envRows, w.repo.InsertEnvironments); err != nil {
		return res, fmt.Errorf("failed to insert environments: %w", err)
	}

	catRows := make([]CategoryRow, 0, len(doc.Categorias))
	for i, c := range doc.Categorias {
		catRows = append(catRows, CategoryRow{
			BudgetID:      res.BudgetID,
			EnvironmentID: w.resolve(log, "categorias", i, res.EnvironmentIDs, c.AmbienteIndex),
			Categoria:     c,
		})
	}
	if res.CategoryIDs, err = insertBatch(ctx, catRows, w.repo.InsertCategories); err != nil {
		return res, fmt.Errorf("failed to insert categories: %w", err)
	}

	itemRows := make([]ItemRow, 0, len(doc.Itens))
	for i, it := range doc.Itens {
		itemRows = append(itemRows, ItemRow{
			BudgetID:   res.BudgetID,
			CategoryID: w.resolve(log, "itens", i, res.CategoryIDs, it.CategoriaIndex),
			Item:       it,
		})
	}
	if res.ItemIDs, err = insertBatch(ctx, itemRows, w.repo.InsertItems); err != nil {
		return res, fmt.Errorf("failed to insert items: %w", err)
	}

	subRows := make([]SubItemRow, 0, len(doc.Subitens))
	for i, s := range doc.Subitens {
		subRows = append(subRows, SubItemRow{
			BudgetID: res.BudgetID,
			ItemID:   w.resolve(log, "subitens", i, res.ItemIDs, s.ItemIndex),
			Subitem:  s,
		})
	}
	if res.SubItemIDs, err = insertBatch(ctx, subRows, w.repo.InsertSubItems); err != nil {
		return res, fmt.Errorf("failed to insert sub-items: %w", err)
	}

	marginRows := make([]MarginRow, 0, len(doc.Margens))
	for _, m := range doc.Margens {
		marginRows = append(marginRows, MarginRow{BudgetID: res.BudgetID, Margem: m})
	}
	if res.MarginIDs, err = insertBatch(ctx, marginRows, w.repo.InsertMargins); err != nil {
		return res, fmt.Errorf("failed to insert margins: %w", err)
	}

	log.Info("Budget saved",
		logging.F(logging.FieldAmbients, len(res.EnvironmentIDs)),
		logging.F(logging.FieldCategories, len(res.CategoryIDs)),
		logging.F(logging.FieldItems, len(res.ItemIDs)))
	return res, nil
}

// insertBatch skips empty batches and checks that one id came back per row.
func insertBatch[R any](ctx context.Context, rows []R, insert func(context.Context, []R) ([]string, error)) ([]string, error) {
	if len(rows) == 0 {
		return []string{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ids, err := insert(ctx, rows)
	if err != nil {
		return nil, err
	}
	if len(ids) != len(rows) {
		return nil, fmt.Errorf("repository returned %d ids for %d rows", len(ids), len(rows))
	}
	return ids, nil
}

func (w *Writer) resolve(log logging.Logger, list string, row int, parents []string, idx int) string {
	if len(parents) == 0 {
		return ""
	}
	if idx < 0 || idx >= len(parents) {
		log.Warn("Parent index out of range, attaching to the first parent",
			logging.F("list", list),
			logging.F("row", row),
			logging.F("index", idx))
		return parents[0]
	}
	return parents[idx]
}
