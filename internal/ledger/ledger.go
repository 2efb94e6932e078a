// Package ledger appends accepted adjustments to the history sheet. The
// log is append-only: entries are never read back, updated or deleted by
// this system.
package ledger

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aaron-stalmic/countsheet/internal/store"
)

// TimestampLayout matches the history format the downstream consumers
// expect, e.g. "06/14/24 03:07 PM".
const TimestampLayout = "01/02/06 03:04 PM"

// Entry is one immutable audit record.
type Entry struct {
	Item   string
	Amount int // signed: positive add, negative remove
	Time   time.Time
	Reason string
}

// Ledger writes entries as single atomic row appends. No read-modify-
// write, no deduplication, no local retry; a failed append is surfaced
// once to the caller.
type Ledger struct {
	sheet store.Tabular
}

func New(sheet store.Tabular) *Ledger {
	return &Ledger{sheet: sheet}
}

func (l *Ledger) Append(ctx context.Context, e Entry) error {
	row := []string{
		e.Item,
		strconv.Itoa(e.Amount),
		e.Time.Format(TimestampLayout),
		e.Reason,
	}
	if err := l.sheet.AppendRow(ctx, row); err != nil {
		return err
	}
	log.Debug().
		Str("item", e.Item).
		Int("amount", e.Amount).
		Msg("Appended ledger entry")
	return nil
}
