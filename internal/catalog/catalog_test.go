package catalog

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/aaron-stalmic/countsheet/internal/store"
)

func sheetWithColumns(cols ...[]string) *store.MemSheet {
	m := store.NewMemSheet()
	for c, col := range cols {
		for r, v := range col {
			m.Set(r+1, c+1, v)
		}
	}
	return m
}

func TestBuildTrimsTrailingBlanksPerSegment(t *testing.T) {
	inventory := sheetWithColumns(
		[]string{"A", "B", "", ""},
		[]string{"C", "", "D", ""},
		[]string{"E"},
	)

	cat, err := Build(context.Background(), inventory, []int{1, 2, 3})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := []string{"A", "B", "C", "", "D", "E"}
	if !reflect.DeepEqual(cat.Items(), want) {
		t.Errorf("Expected %v, got %v", want, cat.Items())
	}
}

func TestBuildPreservesDuplicatesAndOrder(t *testing.T) {
	inventory := sheetWithColumns(
		[]string{"Tomato", "Potato"},
		[]string{"Tomato"},
	)

	cat, err := Build(context.Background(), inventory, []int{1, 2})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := []string{"Tomato", "Potato", "Tomato"}
	if !reflect.DeepEqual(cat.Items(), want) {
		t.Errorf("Expected %v, got %v", want, cat.Items())
	}
}

func TestBuildEmptySegmentFails(t *testing.T) {
	inventory := sheetWithColumns(
		[]string{"A", "B"},
		[]string{"", ""},
	)

	_, err := Build(context.Background(), inventory, []int{1, 2})
	if !errors.Is(err, ErrEmptySegment) {
		t.Errorf("Expected ErrEmptySegment, got %v", err)
	}
}

func TestBuildPropagatesReadFailure(t *testing.T) {
	inventory := sheetWithColumns([]string{"A"})
	inventory.FailNext("read")

	_, err := Build(context.Background(), inventory, []int{1})
	if !errors.Is(err, store.ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
}

func TestContainsIsCaseSensitive(t *testing.T) {
	inventory := sheetWithColumns([]string{"Tomato"})

	cat, err := Build(context.Background(), inventory, []int{1})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if !cat.Contains("Tomato") {
		t.Error("Expected catalog to contain Tomato")
	}
	if cat.Contains("tomato") {
		t.Error("Expected membership to be case-sensitive")
	}
}
