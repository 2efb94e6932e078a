// Package xlsxstore adapts a worksheet of a local .xlsx workbook to the
// store.Tabular contract. It exists for offline rehearsals and for sites
// that keep the countsheet as a shared file instead of a remote document;
// every write is flushed to disk before returning so a crash never loses
// an accepted adjustment.
package xlsxstore

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/aaron-stalmic/countsheet/internal/store"
)

// Workbook is an open .xlsx file.
type Workbook struct {
	file *excelize.File
	path string
}

func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return &Workbook{file: f, path: path}, nil
}

func (w *Workbook) Close() error {
	return w.file.Close()
}

// Sheet returns a store.Tabular view over one named worksheet.
func (w *Workbook) Sheet(name string) *Sheet {
	return &Sheet{wb: w, name: name}
}

// Sheet is a single worksheet of the workbook.
type Sheet struct {
	wb   *Workbook
	name string
}

func (s *Sheet) ReadColumn(ctx context.Context, col int) ([]string, error) {
	cols, err := s.wb.file.GetCols(s.name)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", s.name, store.ErrUnavailable)
	}
	if col > len(cols) {
		return nil, nil
	}
	return cols[col-1], nil
}

func (s *Sheet) ReadCell(ctx context.Context, row, col int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", fmt.Errorf("invalid cell (%d,%d): %w", row, col, err)
	}
	value, err := s.wb.file.GetCellValue(s.name, cell)
	if err != nil {
		return "", fmt.Errorf("failed to read cell %s!%s: %w", s.name, cell, store.ErrUnavailable)
	}
	return value, nil
}

func (s *Sheet) WriteCell(ctx context.Context, row, col int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("invalid cell (%d,%d): %w", row, col, err)
	}
	if err := s.wb.file.SetCellStr(s.name, cell, value); err != nil {
		return fmt.Errorf("failed to write cell %s!%s: %w", s.name, cell, store.ErrUnavailable)
	}
	if err := s.wb.file.Save(); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", s.wb.path, store.ErrUnavailable)
	}
	return nil
}

func (s *Sheet) AppendRow(ctx context.Context, values []string) error {
	rows, err := s.wb.file.GetRows(s.name)
	if err != nil {
		return fmt.Errorf("failed to read rows of %s: %w", s.name, store.ErrUnavailable)
	}
	next := len(rows) + 1
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, next)
		if err != nil {
			return fmt.Errorf("invalid cell (%d,%d): %w", next, i+1, err)
		}
		if err := s.wb.file.SetCellStr(s.name, cell, v); err != nil {
			return fmt.Errorf("failed to write cell %s!%s: %w", s.name, cell, store.ErrUnavailable)
		}
	}
	if err := s.wb.file.Save(); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", s.wb.path, store.ErrUnavailable)
	}
	return nil
}
