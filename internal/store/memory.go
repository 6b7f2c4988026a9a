package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryRepository keeps rows in memory and assigns sequential ids such as
// "environment-3". It backs dry runs and tests.
type MemoryRepository struct {
	mu   sync.Mutex
	seq  map[string]int
	data MemoryData
}

// MemoryData is a snapshot of everything inserted so far.
type MemoryData struct {
	Budgets      []BudgetRow
	Environments []EnvironmentRow
	Categories   []CategoryRow
	Items        []ItemRow
	SubItems     []SubItemRow
	Margins      []MarginRow
}

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{seq: map[string]int{}}
}

func (m *MemoryRepository) nextID(kind string) string {
	m.seq[kind]++
	return fmt.Sprintf("%s-%d", kind, m.seq[kind])
}

// InsertBudget implements Repository.
func (m *MemoryRepository) InsertBudget(_ context.Context, row BudgetRow) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row.ID = m.nextID("budget")
	m.data.Budgets = append(m.data.Budgets, row)
	return row.ID, nil
}

// InsertEnvironments implements Repository.
func (m *MemoryRepository) InsertEnvironments(_ context.Context, rows []EnvironmentRow) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return insertRows(m, "environment", rows, &m.data.Environments, func(r *EnvironmentRow, id string) { r.ID = id }), nil
}

// InsertCategories implements Repository.
func (m *MemoryRepository) InsertCategories(_ context.Context, rows []CategoryRow) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return insertRows(m, "category", rows, &m.data.Categories, func(r *CategoryRow, id string) { r.ID = id }), nil
}

// InsertItems implements Repository.
func (m *MemoryRepository) InsertItems(_ context.Context, rows []ItemRow) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return insertRows(m, "item", rows, &m.data.Items, func(r *ItemRow, id string) { r.ID = id }), nil
}

// InsertSubItems implements Repository.
func (m *MemoryRepository) InsertSubItems(_ context.Context, rows []SubItemRow) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return insertRows(m, "subitem", rows, &m.data.SubItems, func(r *SubItemRow, id string) { r.ID = id }), nil
}

// InsertMargins implements Repository.
func (m *MemoryRepository) InsertMargins(_ context.Context, rows []MarginRow) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return insertRows(m, "margin", rows, &m.data.Margins, func(r *MarginRow, id string) { r.ID = id }), nil
}

// Snapshot returns a copy of the stored rows.
func (m *MemoryRepository) Snapshot() MemoryData {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MemoryData{
		Budgets:      append([]BudgetRow(nil), m.data.Budgets...),
		Environments: append([]EnvironmentRow(nil), m.data.Environments...),
		Categories:   append([]CategoryRow(nil), m.data.Categories...),
		Items:        append([]ItemRow(nil), m.data.Items...),
		SubItems:     append([]SubItemRow(nil), m.data.SubItems...),
		Margins:      append([]MarginRow(nil), m.data.Margins...),
	}
}

// insertRows assigns ids and appends; the caller holds the lock.
func insertRows[R any](m *MemoryRepository, kind string, rows []R, dst *[]R, setID func(*R, string)) []string {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		id := m.nextID(kind)
		setID(&r, id)
		*dst = append(*dst, r)
		ids = append(ids, id)
	}
	return ids
}
