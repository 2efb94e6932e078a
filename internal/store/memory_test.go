package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestMemSheetReadColumn(t *testing.T) {
	m := NewMemSheetFromRows([][]string{
		{"a", "x"},
		{"b", ""},
		{"", "y"},
	})

	col, err := m.ReadColumn(context.Background(), 1)
	if err != nil {
		t.Fatalf("ReadColumn failed: %v", err)
	}
	if !reflect.DeepEqual(col, []string{"a", "b", ""}) {
		t.Errorf("Unexpected column: %v", col)
	}
}

func TestMemSheetAppendRow(t *testing.T) {
	m := NewMemSheetFromRows([][]string{{"header"}})

	if err := m.AppendRow(context.Background(), []string{"a", "b"}); err != nil {
		t.Fatalf("AppendRow failed: %v", err)
	}
	if m.RowCount() != 2 {
		t.Fatalf("Expected 2 rows, got %d", m.RowCount())
	}
	if got := m.Get(2, 2); got != "b" {
		t.Errorf("Expected b, got %q", got)
	}
}

func TestMemSheetFailNextOnlyTripsOnce(t *testing.T) {
	m := NewMemSheet()
	m.FailNext("write")

	err := m.WriteCell(context.Background(), 1, 1, "x")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Expected ErrUnavailable, got %v", err)
	}
	if err := m.WriteCell(context.Background(), 1, 1, "x"); err != nil {
		t.Errorf("Expected second write to succeed, got %v", err)
	}
	if got := m.Get(1, 1); got != "x" {
		t.Errorf("Expected x, got %q", got)
	}
}

func TestMemSheetReadOutsideGrid(t *testing.T) {
	m := NewMemSheetFromRows([][]string{{"a"}})

	v, err := m.ReadCell(context.Background(), 5, 5)
	if err != nil {
		t.Fatalf("ReadCell failed: %v", err)
	}
	if v != "" {
		t.Errorf("Expected empty string, got %q", v)
	}
}
