package match

import (
	"reflect"
	"testing"
)

func TestFilterSortsCaseInsensitively(t *testing.T) {
	m := New([]string{"Tomato", "Potato", "Tornado"})

	got := m.Filter("to")
	want := []string{"Tomato", "Tornado"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestFilterEmptyTextMatchesEverything(t *testing.T) {
	m := New([]string{"banana", "Apple", "cherry"})

	got := m.Filter("")
	want := []string{"Apple", "banana", "cherry"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestFilterIgnoresCase(t *testing.T) {
	m := New([]string{"Tomato", "Potato"})

	got := m.Filter("TOM")
	want := []string{"Tomato"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestCycleWrapsForward(t *testing.T) {
	m := New([]string{"Tomato", "Potato", "Tornado"})

	first, ok := m.Cycle("to", 1)
	if !ok || first != "Tornado" {
		t.Errorf("Expected Tornado on first cycle, got %q (ok=%v)", first, ok)
	}
	second, ok := m.Cycle("to", 1)
	if !ok || second != "Tomato" {
		t.Errorf("Expected wrap to Tomato on second cycle, got %q (ok=%v)", second, ok)
	}
}

func TestCycleZeroDeltaKeepsChoice(t *testing.T) {
	m := New([]string{"Tomato", "Potato", "Tornado"})

	got, ok := m.Cycle("to", 0)
	if !ok || got != "Tomato" {
		t.Errorf("Expected Tomato, got %q (ok=%v)", got, ok)
	}
	again, ok := m.Cycle("to", 0)
	if !ok || again != "Tomato" {
		t.Errorf("Expected choice to stay Tomato, got %q (ok=%v)", again, ok)
	}
}

func TestCycleBackwardWraps(t *testing.T) {
	m := New([]string{"Tomato", "Tornado"})

	got, ok := m.Cycle("to", 0)
	if !ok || got != "Tomato" {
		t.Fatalf("Expected Tomato, got %q (ok=%v)", got, ok)
	}
	got, ok = m.Cycle("to", -1)
	if !ok || got != "Tornado" {
		t.Errorf("Expected backward wrap to Tornado, got %q (ok=%v)", got, ok)
	}
}

func TestCycleResetsOnChangedHitSet(t *testing.T) {
	m := New([]string{"Tomato", "Tornado", "Potato"})

	if got, _ := m.Cycle("to", 1); got != "Tornado" {
		t.Fatalf("Expected Tornado, got %q", got)
	}
	// Narrowing the prefix changes the hit set, so the index resets
	// before the delta applies.
	if got, _ := m.Cycle("tom", 1); got != "Tomato" {
		t.Errorf("Expected Tomato after hit set changed, got %q", got)
	}
}

func TestCycleNoHits(t *testing.T) {
	m := New([]string{"Tomato"})

	if _, ok := m.Cycle("xyz", 0); ok {
		t.Error("Expected no candidate for unmatched prefix")
	}
}

func TestNewDoesNotMutateInput(t *testing.T) {
	items := []string{"b", "a"}
	New(items)
	if !reflect.DeepEqual(items, []string{"b", "a"}) {
		t.Errorf("Expected input untouched, got %v", items)
	}
}
