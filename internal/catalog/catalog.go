// Package catalog builds the canonical item list from the inventory
// source. The inventory keeps item names in a handful of independent
// columns; the catalog is their order-preserving concatenation.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/aaron-stalmic/countsheet/internal/store"
)

// ErrEmptySegment reports an inventory column with no non-empty cell,
// which leaves no boundary for the trailing-blank trim.
var ErrEmptySegment = errors.New("inventory segment is empty")

// Catalog is the ordered set of valid item names. Order is the source
// order of the segments; duplicates across segments are preserved.
type Catalog struct {
	items []string
	has   map[string]bool
}

// Build reads each segment column from the inventory source, trims its
// trailing empty cells and concatenates the segments in order.
func Build(ctx context.Context, inventory store.Tabular, segments []int) (*Catalog, error) {
	var items []string
	for _, col := range segments {
		segment, err := readSegment(ctx, inventory, col)
		if err != nil {
			return nil, err
		}
		items = append(items, segment...)
	}

	has := make(map[string]bool, len(items))
	for _, item := range items {
		has[item] = true
	}

	log.Debug().
		Int("segments", len(segments)).
		Int("items", len(items)).
		Msg("Built item catalog")

	return &Catalog{items: items, has: has}, nil
}

// readSegment reads one column and trims trailing empty strings, keeping
// the run from row 1 through the last non-empty cell. Interior blanks
// survive; only the trailing run is cut.
func readSegment(ctx context.Context, inventory store.Tabular, col int) ([]string, error) {
	values, err := inventory.ReadColumn(ctx, col)
	if err != nil {
		return nil, fmt.Errorf("segment column %d: %w", col, err)
	}

	last := len(values) - 1
	for last >= 0 && values[last] == "" {
		last--
	}
	if last < 0 {
		return nil, fmt.Errorf("segment column %d: %w", col, ErrEmptySegment)
	}
	return values[:last+1], nil
}

// Items returns the catalog in source order. The slice is shared; callers
// must not mutate it.
func (c *Catalog) Items() []string {
	return c.items
}

// Contains reports exact, case-sensitive membership.
func (c *Catalog) Contains(item string) bool {
	return c.has[item]
}

func (c *Catalog) Len() int {
	return len(c.items)
}
