package store

import (
	"context"
	"fmt"
	"sync"
)

// MemSheet is an in-memory Tabular used by tests and dry runs. The grid
// grows on write; reads outside the grid return empty strings. FailNext
// makes the next call of the named kind fail, for exercising the
// unavailable-store paths.
type MemSheet struct {
	mu   sync.Mutex
	grid map[int]map[int]string
	rows int
	cols int

	failNext map[string]bool
}

func NewMemSheet() *MemSheet {
	return &MemSheet{
		grid:     make(map[int]map[int]string),
		failNext: make(map[string]bool),
	}
}

// NewMemSheetFromRows builds a MemSheet from row-major data, row 1 first.
func NewMemSheetFromRows(rows [][]string) *MemSheet {
	m := NewMemSheet()
	for r, row := range rows {
		for c, v := range row {
			m.Set(r+1, c+1, v)
		}
	}
	return m
}

// FailNext arranges for the next operation of the given kind
// ("read", "write" or "append") to return ErrUnavailable.
func (m *MemSheet) FailNext(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext[kind] = true
}

func (m *MemSheet) trip(kind string) error {
	if m.failNext[kind] {
		m.failNext[kind] = false
		return fmt.Errorf("%s: %w", kind, ErrUnavailable)
	}
	return nil
}

// Set places a value directly, bypassing failure injection.
func (m *MemSheet) Set(row, col int, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(row, col, value)
}

func (m *MemSheet) set(row, col int, value string) {
	if m.grid[row] == nil {
		m.grid[row] = make(map[int]string)
	}
	m.grid[row][col] = value
	if row > m.rows {
		m.rows = row
	}
	if col > m.cols {
		m.cols = col
	}
}

// Get reads a value directly, bypassing failure injection.
func (m *MemSheet) Get(row, col int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.grid[row][col]
}

// RowCount reports the highest occupied row.
func (m *MemSheet) RowCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows
}

// Row returns a copy of the given row padded to the widest column seen.
func (m *MemSheet) Row(row int) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, m.cols)
	for c := 1; c <= m.cols; c++ {
		out[c-1] = m.grid[row][c]
	}
	return out
}

func (m *MemSheet) ReadColumn(ctx context.Context, col int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.trip("read"); err != nil {
		return nil, err
	}
	out := make([]string, m.rows)
	for r := 1; r <= m.rows; r++ {
		out[r-1] = m.grid[r][col]
	}
	return out, nil
}

func (m *MemSheet) ReadCell(ctx context.Context, row, col int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.trip("read"); err != nil {
		return "", err
	}
	return m.grid[row][col], nil
}

func (m *MemSheet) WriteCell(ctx context.Context, row, col int, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.trip("write"); err != nil {
		return err
	}
	m.set(row, col, value)
	return nil
}

func (m *MemSheet) AppendRow(ctx context.Context, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.trip("append"); err != nil {
		return err
	}
	row := m.rows + 1
	for c, v := range values {
		m.set(row, c+1, v)
	}
	return nil
}
