package reconcile

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/aaron-stalmic/countsheet/internal/catalog"
	"github.com/aaron-stalmic/countsheet/internal/countsheet"
	"github.com/aaron-stalmic/countsheet/internal/ledger"
	"github.com/aaron-stalmic/countsheet/internal/store"
)

var fixedNow = time.Date(2024, 6, 14, 15, 7, 0, 0, time.Local)

type fixture struct {
	tx      *Transaction
	counts  *store.MemSheet
	history *store.MemSheet
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()

	inventory := store.NewMemSheetFromRows([][]string{
		{"Tomato"},
		{"Potato"},
		{"Onion"},
	})
	cat, err := catalog.Build(context.Background(), inventory, []int{1})
	if err != nil {
		t.Fatalf("catalog build failed: %v", err)
	}

	counts := store.NewMemSheetFromRows([][]string{
		{"Item", "Count"},
		{"Tomato", "10"},
		{"Potato", "20-4"},
	})
	layout := countsheet.Layout{Anchors: []int{1}, HeaderRows: 1}
	history := store.NewMemSheet()

	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	tx := NewTransaction(cat, countsheet.NewIndex(counts, layout), counts, ledger.New(history), opts)
	return &fixture{tx: tx, counts: counts, history: history}
}

func (f *fixture) assertUntouched(t *testing.T) {
	t.Helper()
	if got := f.counts.Get(2, 2); got != "10" {
		t.Errorf("Expected Tomato cell untouched, got %q", got)
	}
	if got := f.counts.Get(3, 2); got != "20-4" {
		t.Errorf("Expected Potato cell untouched, got %q", got)
	}
	if f.history.RowCount() != 0 {
		t.Errorf("Expected empty ledger, got %d rows", f.history.RowCount())
	}
}

func TestSubmitEmptyAmountIsNoop(t *testing.T) {
	f := newFixture(t, Options{})

	outcome := f.tx.Submit(context.Background(), "Tomato", "", ActionAdd, "recount")
	if outcome.Status != StatusNoop {
		t.Errorf("Expected StatusNoop, got %v", outcome.Status)
	}
	if outcome.Reason != "" || outcome.Err != nil {
		t.Errorf("Expected silent no-op, got reason=%q err=%v", outcome.Reason, outcome.Err)
	}
	f.assertUntouched(t)
}

func TestSubmitRejectsMalformedAmounts(t *testing.T) {
	for _, raw := range []string{"-3", "abc", "4.5", "5 "} {
		f := newFixture(t, Options{})

		outcome := f.tx.Submit(context.Background(), "Tomato", raw, ActionAdd, "")
		if outcome.Status != StatusRejected {
			t.Errorf("%q: expected StatusRejected, got %v", raw, outcome.Status)
		}
		if outcome.Reason != ReasonBadAmount {
			t.Errorf("%q: expected %q, got %q", raw, ReasonBadAmount, outcome.Reason)
		}
		f.assertUntouched(t)
	}
}

func TestSubmitRejectsUnknownItem(t *testing.T) {
	f := newFixture(t, Options{})

	outcome := f.tx.Submit(context.Background(), "Carrot", "5", ActionAdd, "")
	if outcome.Status != StatusRejected || outcome.Reason != ReasonInvalidItem {
		t.Errorf("Expected rejection %q, got %v %q", ReasonInvalidItem, outcome.Status, outcome.Reason)
	}
	f.assertUntouched(t)
}

func TestSubmitRejectsMissingAction(t *testing.T) {
	f := newFixture(t, Options{})

	outcome := f.tx.Submit(context.Background(), "Tomato", "5", ActionUnset, "")
	if outcome.Status != StatusRejected || outcome.Reason != ReasonNoAction {
		t.Errorf("Expected rejection %q, got %v %q", ReasonNoAction, outcome.Status, outcome.Reason)
	}
	f.assertUntouched(t)
}

func TestSubmitRejectsItemMissingFromCountsheet(t *testing.T) {
	f := newFixture(t, Options{})

	// Onion is in the catalog but has no countsheet row.
	outcome := f.tx.Submit(context.Background(), "Onion", "5", ActionAdd, "")
	if outcome.Status != StatusRejected || outcome.Reason != ReasonNotInCountsheet {
		t.Errorf("Expected rejection %q, got %v %q", ReasonNotInCountsheet, outcome.Status, outcome.Reason)
	}
	f.assertUntouched(t)
}

func TestSubmitAddAppendsTermAndLedgerRow(t *testing.T) {
	f := newFixture(t, Options{})

	outcome := f.tx.Submit(context.Background(), "Tomato", "5", ActionAdd, "cycle count")
	if outcome.Status != StatusAccepted {
		t.Fatalf("Expected StatusAccepted, got %v (reason=%q err=%v)", outcome.Status, outcome.Reason, outcome.Err)
	}

	if got := f.counts.Get(2, 2); got != "10+5" {
		t.Errorf("Expected cell 10+5, got %q", got)
	}
	if f.history.RowCount() != 1 {
		t.Fatalf("Expected 1 ledger row, got %d", f.history.RowCount())
	}
	want := []string{"Tomato", "5", "06/14/24 03:07 PM", "cycle count"}
	if got := f.history.Row(1); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected ledger row %v, got %v", want, got)
	}
}

func TestSubmitRemoveAppendsNegativeTerm(t *testing.T) {
	f := newFixture(t, Options{})

	outcome := f.tx.Submit(context.Background(), "Tomato", "5", ActionRemove, "spoilage")
	if outcome.Status != StatusAccepted {
		t.Fatalf("Expected StatusAccepted, got %v", outcome.Status)
	}

	if got := f.counts.Get(2, 2); got != "10-5" {
		t.Errorf("Expected cell 10-5, got %q", got)
	}
	if got := f.history.Get(1, 2); got != "-5" {
		t.Errorf("Expected ledger amount -5, got %q", got)
	}
}

func TestSubmitExtendsExistingExpression(t *testing.T) {
	f := newFixture(t, Options{})

	outcome := f.tx.Submit(context.Background(), "Potato", "3", ActionAdd, "")
	if outcome.Status != StatusAccepted {
		t.Fatalf("Expected StatusAccepted, got %v", outcome.Status)
	}
	if got := f.counts.Get(3, 2); got != "20-4+3" {
		t.Errorf("Expected cell 20-4+3, got %q", got)
	}
}

func TestSubmitWriteFailureLeavesNoLedgerRow(t *testing.T) {
	f := newFixture(t, Options{})
	f.counts.FailNext("write")

	outcome := f.tx.Submit(context.Background(), "Tomato", "5", ActionAdd, "")
	if outcome.Status != StatusFailed {
		t.Fatalf("Expected StatusFailed, got %v", outcome.Status)
	}
	if !errors.Is(outcome.Err, store.ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", outcome.Err)
	}
	if got := f.counts.Get(2, 2); got != "10" {
		t.Errorf("Expected cell untouched, got %q", got)
	}
	if f.history.RowCount() != 0 {
		t.Errorf("Expected empty ledger, got %d rows", f.history.RowCount())
	}
}

func TestSubmitLedgerFailureKeepsCellMutation(t *testing.T) {
	f := newFixture(t, Options{})
	f.history.FailNext("append")

	outcome := f.tx.Submit(context.Background(), "Tomato", "5", ActionAdd, "")
	if outcome.Status != StatusFailed {
		t.Fatalf("Expected StatusFailed, got %v", outcome.Status)
	}
	// The cell write happened first and is not rolled back.
	if got := f.counts.Get(2, 2); got != "10+5" {
		t.Errorf("Expected cell 10+5 after ledger failure, got %q", got)
	}
	if f.history.RowCount() != 0 {
		t.Errorf("Expected empty ledger, got %d rows", f.history.RowCount())
	}
}

func TestSubmitLookupFailure(t *testing.T) {
	f := newFixture(t, Options{})
	f.counts.FailNext("read")

	outcome := f.tx.Submit(context.Background(), "Tomato", "5", ActionAdd, "")
	if outcome.Status != StatusFailed {
		t.Fatalf("Expected StatusFailed, got %v", outcome.Status)
	}
	if f.history.RowCount() != 0 {
		t.Errorf("Expected empty ledger, got %d rows", f.history.RowCount())
	}
}

func TestActionSign(t *testing.T) {
	if ActionAdd.Sign() != 1 || ActionRemove.Sign() != -1 || ActionUnset.Sign() != 0 {
		t.Errorf("Unexpected signs: add=%d remove=%d unset=%d",
			ActionAdd.Sign(), ActionRemove.Sign(), ActionUnset.Sign())
	}
}
