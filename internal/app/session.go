package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/aaron-stalmic/countsheet/internal/catalog"
	"github.com/aaron-stalmic/countsheet/internal/config"
	"github.com/aaron-stalmic/countsheet/internal/countsheet"
	"github.com/aaron-stalmic/countsheet/internal/ledger"
	"github.com/aaron-stalmic/countsheet/internal/match"
	"github.com/aaron-stalmic/countsheet/internal/notifications"
	"github.com/aaron-stalmic/countsheet/internal/reconcile"
	"github.com/aaron-stalmic/countsheet/internal/store"
	"github.com/aaron-stalmic/countsheet/internal/store/sheetstore"
	"github.com/aaron-stalmic/countsheet/internal/store/xlsxstore"
)

// Options selects the warehouse and the backend for one session.
type Options struct {
	Warehouse config.Warehouse

	// StoreKind is "sheets" or "xlsx".
	StoreKind string

	// CredentialsFile is the Google service-account key ("sheets" only).
	CredentialsFile string

	// WorkbookPath is the local .xlsx file ("xlsx" only); defaults to the
	// warehouse's SpreadsheetID.
	WorkbookPath string

	Reconcile reconcile.Options
}

// Session is one warehouse's working state: the catalog and index built
// at open time, the matcher seeded from the catalog, and the transaction
// every adjustment goes through. Nothing here is mutated concurrently.
type Session struct {
	Warehouse config.Warehouse
	Catalog   *catalog.Catalog
	Matcher   *match.Matcher
	Tx        *reconcile.Transaction

	closer func() error
}

// Open connects the stores for the selected warehouse and rebuilds the
// catalog and count-sheet index from the remote source. Catalog and index
// are never cached across restarts.
func Open(ctx context.Context, opts Options) (*Session, error) {
	w := opts.Warehouse

	inventory, counts, history, closer, err := openStores(ctx, opts)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Build(ctx, inventory, w.Segments)
	if err != nil {
		if closer != nil {
			_ = closer()
		}
		return nil, fmt.Errorf("building catalog for %s: %w", w.Name, err)
	}

	layout := countsheet.Layout{Anchors: w.Anchors, HeaderRows: w.HeaderRows}
	index := countsheet.NewIndex(counts, layout)
	hist := ledger.New(history)
	tx := reconcile.NewTransaction(cat, index, counts, hist, opts.Reconcile)

	log.Info().
		Str("warehouse", w.Name).
		Str("store", opts.StoreKind).
		Int("items", cat.Len()).
		Msg("Session opened")

	return &Session{
		Warehouse: w,
		Catalog:   cat,
		Matcher:   match.New(cat.Items()),
		Tx:        tx,
		closer:    closer,
	}, nil
}

func openStores(ctx context.Context, opts Options) (inventory, counts, history store.Tabular, closer func() error, err error) {
	w := opts.Warehouse
	switch opts.StoreKind {
	case "", "sheets":
		client, err := sheetstore.NewClient(ctx, opts.CredentialsFile, w.SpreadsheetID)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return client.Sheet(w.InventorySheet), client.Sheet(w.CountSheet), client.Sheet(w.HistorySheet), nil, nil
	case "xlsx":
		path := opts.WorkbookPath
		if path == "" {
			path = w.SpreadsheetID
		}
		wb, err := xlsxstore.Open(path)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return wb.Sheet(w.InventorySheet), wb.Sheet(w.CountSheet), wb.Sheet(w.HistorySheet), wb.Close, nil
	default:
		return nil, nil, nil, nil, fmt.Errorf("unknown store kind %q", opts.StoreKind)
	}
}

func (s *Session) Close() error {
	if s.closer != nil {
		return s.closer()
	}
	return nil
}

// NotificationClient builds the ntfy client from NTFY_* env vars.
func NotificationClient() *notifications.Client {
	enabled := GetEnvWithDefault("NTFY_ENABLED", "false") == "true"
	baseURL := GetEnvWithDefault("NTFY_URL", "https://ntfy.sh")
	topic := GetEnvWithDefault("NTFY_TOPIC", "countsheet-updates")

	client := notifications.NewClient(baseURL, topic, enabled)
	if enabled {
		log.Info().Str("topic", topic).Msg("Notifications enabled")
	} else {
		log.Debug().Msg("Notifications disabled")
	}
	return client
}
