// Package countsheet locates an item's quantity cell across the count
// sheet's physical segments. Each segment is anchored at a fixed item-name
// column; the running-expression cell sits in the column immediately to
// its right.
package countsheet

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/aaron-stalmic/countsheet/internal/store"
)

// DefaultAnchors is the reference count-sheet layout: three name columns
// with two gap columns between each name column and the next anchor.
var DefaultAnchors = []int{1, 5, 10}

// Layout describes where the segments live. HeaderRows rows at the top of
// every segment are never scanned.
type Layout struct {
	Anchors    []int
	HeaderRows int
}

func DefaultLayout() Layout {
	return Layout{Anchors: DefaultAnchors, HeaderRows: 1}
}

// Location identifies an item's row within one segment. Row is the
// zero-based offset from the first data row.
type Location struct {
	Anchor int
	Row    int
}

// CellRow returns the 1-based sheet row of the located cell.
func (l Location) CellRow(layout Layout) int {
	return l.Row + layout.HeaderRows + 1
}

// ValueColumn returns the 1-based column of the running-expression cell.
func (l Location) ValueColumn() int {
	return l.Anchor + 1
}

// Index scans a count sheet for item rows.
type Index struct {
	sheet  store.Tabular
	layout Layout
}

func NewIndex(sheet store.Tabular, layout Layout) *Index {
	if len(layout.Anchors) == 0 {
		layout.Anchors = DefaultAnchors
	}
	return &Index{sheet: sheet, layout: layout}
}

func (x *Index) Layout() Layout {
	return x.layout
}

// Locate scans segments in anchor order and each segment's rows top to
// bottom for an exact match. The first match wins; an item duplicated in
// a later segment is never consulted. The second return is false only
// after every segment's every row has been exhausted.
func (x *Index) Locate(ctx context.Context, item string) (Location, bool, error) {
	for _, anchor := range x.layout.Anchors {
		names, err := x.sheet.ReadColumn(ctx, anchor)
		if err != nil {
			return Location{}, false, fmt.Errorf("countsheet column %d: %w", anchor, err)
		}
		if len(names) <= x.layout.HeaderRows {
			continue
		}
		for r, name := range names[x.layout.HeaderRows:] {
			if name == item {
				log.Debug().
					Str("item", item).
					Int("anchor", anchor).
					Int("row", r).
					Msg("Located item in countsheet")
				return Location{Anchor: anchor, Row: r}, true, nil
			}
		}
	}
	return Location{}, false, nil
}
