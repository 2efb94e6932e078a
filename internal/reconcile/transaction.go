// Package reconcile validates a requested quantity adjustment and applies
// it as one logical operation: locate the item's running-expression cell,
// append the signed term to its text, then append the audit row. The cell
// is never parsed or evaluated here; the net quantity is whatever a
// downstream consumer computes from the expression.
package reconcile

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/aaron-stalmic/countsheet/internal/catalog"
	"github.com/aaron-stalmic/countsheet/internal/countsheet"
	"github.com/aaron-stalmic/countsheet/internal/ledger"
	"github.com/aaron-stalmic/countsheet/internal/retry"
	"github.com/aaron-stalmic/countsheet/internal/store"
)

// Action is the requested direction of an adjustment. ActionUnset means
// the caller never chose one.
type Action int

const (
	ActionUnset Action = iota
	ActionAdd
	ActionRemove
)

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	default:
		return "unset"
	}
}

// Sign is +1 for add, -1 for remove, 0 for unset.
func (a Action) Sign() int {
	switch a {
	case ActionAdd:
		return 1
	case ActionRemove:
		return -1
	default:
		return 0
	}
}

// Status is the terminal state of a submit call.
type Status int

const (
	// StatusNoop: the amount field was empty; nothing was validated,
	// written or logged.
	StatusNoop Status = iota
	// StatusAccepted: the cell was updated and the ledger row appended.
	StatusAccepted
	// StatusRejected: the request failed local validation; no side
	// effects.
	StatusRejected
	// StatusFailed: a remote call failed. If the cell write had already
	// succeeded the mutation stays applied even though the ledger row is
	// missing; that window is documented, not hidden.
	StatusFailed
)

// Rejection reasons surfaced to the caller.
const (
	ReasonBadAmount       = "amount must be a positive integer"
	ReasonInvalidItem     = "invalid item"
	ReasonNoAction        = "no action selected"
	ReasonNotInCountsheet = "item not in countsheet"
)

// Outcome reports how a submit ended. Reason is set for rejections, Err
// for failures.
type Outcome struct {
	Status Status
	Reason string
	Err    error

	// Entry is the ledger entry written for an accepted adjustment.
	Entry ledger.Entry
}

func accepted(e ledger.Entry) Outcome { return Outcome{Status: StatusAccepted, Entry: e} }
func rejected(reason string) Outcome  { return Outcome{Status: StatusRejected, Reason: reason} }
func failed(err error) Outcome        { return Outcome{Status: StatusFailed, Err: err} }

// Options tunes a Transaction. GuardWrites enables the verify-after-write
// mode: after appending the term the cell is read back, and if another
// writer clobbered it the read-append is retried under GuardRetry. The
// default leaves writes unguarded, matching the single-writer deployment.
type Options struct {
	GuardWrites bool
	GuardRetry  retry.Config
	Now         func() time.Time
}

// Transaction orchestrates one warehouse's adjustments. Calls are
// synchronous and single-threaded; each Submit runs to completion,
// including all remote I/O, before the next starts.
type Transaction struct {
	catalog *catalog.Catalog
	index   *countsheet.Index
	counts  store.Tabular
	history *ledger.Ledger
	opts    Options
}

func NewTransaction(cat *catalog.Catalog, index *countsheet.Index, counts store.Tabular, history *ledger.Ledger, opts Options) *Transaction {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.GuardRetry.Attempts < 1 {
		opts.GuardRetry = DefaultGuardRetry
	}
	return &Transaction{
		catalog: cat,
		index:   index,
		counts:  counts,
		history: history,
		opts:    opts,
	}
}

// DefaultGuardRetry bounds the guarded-write loop.
var DefaultGuardRetry = retry.Config{
	Attempts:  3,
	BaseDelay: 500 * time.Millisecond,
	MaxDelay:  5 * time.Second,
}

// Submit validates the request and, when it passes, applies the signed
// term to the item's running-expression cell and appends the audit row.
// An empty amount is a deliberate no-op: the field simply has not been
// filled in yet.
func (t *Transaction) Submit(ctx context.Context, item, rawAmount string, action Action, reason string) Outcome {
	if rawAmount == "" {
		return Outcome{Status: StatusNoop}
	}

	txn := uuid.NewString()
	logger := log.With().Str("txn", txn).Str("item", item).Logger()

	amount, err := strconv.Atoi(rawAmount)
	if err != nil || amount < 0 {
		logger.Debug().Str("amount", rawAmount).Msg("Rejected malformed amount")
		return rejected(ReasonBadAmount)
	}
	if !t.catalog.Contains(item) {
		logger.Debug().Msg("Rejected item not in catalog")
		return rejected(ReasonInvalidItem)
	}
	if action != ActionAdd && action != ActionRemove {
		logger.Debug().Msg("Rejected request without an action")
		return rejected(ReasonNoAction)
	}

	op := "+"
	if action == ActionRemove {
		op = "-"
	}
	term := op + strconv.Itoa(amount)

	loc, found, err := t.index.Locate(ctx, item)
	if err != nil {
		logger.Error().Err(err).Msg("Countsheet lookup failed")
		return failed(err)
	}
	if !found {
		logger.Debug().Msg("Rejected item missing from countsheet")
		return rejected(ReasonNotInCountsheet)
	}

	row := loc.CellRow(t.index.Layout())
	col := loc.ValueColumn()

	if t.opts.GuardWrites {
		err = t.appendTermGuarded(ctx, row, col, term)
	} else {
		err = t.appendTerm(ctx, row, col, term)
	}
	if err != nil {
		logger.Error().Err(err).Int("row", row).Int("col", col).Msg("Cell update failed")
		return failed(err)
	}

	entry := ledger.Entry{
		Item:   item,
		Amount: amount * action.Sign(),
		Time:   t.opts.Now(),
		Reason: reason,
	}
	if err := t.history.Append(ctx, entry); err != nil {
		// The cell mutation is already applied and is not rolled back.
		logger.Error().Err(err).Msg("Ledger append failed after cell update")
		return failed(err)
	}

	logger.Info().
		Str("action", action.String()).
		Int("amount", amount).
		Int("row", row).
		Int("col", col).
		Msg("Adjustment accepted")
	return accepted(entry)
}

// appendTerm reads the running expression and writes it back with the new
// term concatenated. Classic read-then-write; two concurrent writers can
// still lose an update (see appendTermGuarded).
func (t *Transaction) appendTerm(ctx context.Context, row, col int, term string) error {
	current, err := t.counts.ReadCell(ctx, row, col)
	if err != nil {
		return err
	}
	return t.counts.WriteCell(ctx, row, col, current+term)
}

// appendTermGuarded re-reads the cell after writing and retries the whole
// read-append when the observed value is not the one just written. This
// narrows the lost-update window without claiming to close it; the remote
// store offers no per-cell compare-and-swap.
func (t *Transaction) appendTermGuarded(ctx context.Context, row, col int, term string) error {
	_, err := retry.Do(ctx, t.opts.GuardRetry, func(ctx context.Context) (struct{}, error) {
		current, err := t.counts.ReadCell(ctx, row, col)
		if err != nil {
			return struct{}{}, err
		}
		want := current + term
		if err := t.counts.WriteCell(ctx, row, col, want); err != nil {
			return struct{}{}, err
		}
		got, err := t.counts.ReadCell(ctx, row, col)
		if err != nil {
			return struct{}{}, err
		}
		if got != want {
			return struct{}{}, fmt.Errorf("write conflict: cell changed from %q to %q", want, got)
		}
		return struct{}{}, nil
	})
	return err
}
