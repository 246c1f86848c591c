package tablesource

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/conectamos-mx/dashboard-ova/internal/dataset"
	"github.com/conectamos-mx/dashboard-ova/internal/graph"
)

// Downloader is the slice of the graph client the remote source needs.
type Downloader interface {
	Download(ctx context.Context, itemID string) ([]byte, error)
	Metadata(ctx context.Context, itemID string) (*graph.ItemMetadata, error)
}

type cachedTable struct {
	table     *Table
	fetchedAt time.Time
}

// Remote reads workbooks from OneDrive via the graph client. Parsed tables
// are cached per (document, sheet, header) for a short TTL on top of the
// client's byte cache; reads get a defensive copy so the cached value stays
// immutable.
type Remote struct {
	client Downloader
	docs   map[dataset.Workbook]string
	ttl    time.Duration
	logger *slog.Logger

	mu     sync.Mutex
	tables map[string]cachedTable
	now    func() time.Time
}

// NewRemote creates a remote source. Item IDs may be empty for workbooks the
// deployment does not track; reading their datasets fails with
// ErrDocumentNotConfigured.
func NewRemote(client Downloader, ventasItemID, almacenItemID string, ttl time.Duration, logger *slog.Logger) *Remote {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &Remote{
		client: client,
		docs: map[dataset.Workbook]string{
			dataset.WorkbookVentas:  ventasItemID,
			dataset.WorkbookAlmacen: almacenItemID,
		},
		ttl:    ttl,
		logger: logger.With(slog.String("component", "remote_source")),
		tables: make(map[string]cachedTable),
		now:    time.Now,
	}
}

// ReadTable implements Source.
func (r *Remote) ReadTable(ctx context.Context, ds dataset.Info) (*Table, error) {
	itemID := r.docs[ds.Workbook]
	if itemID == "" {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotConfigured, ds.Workbook)
	}

	key := fmt.Sprintf("%s|%s|%d", itemID, ds.Sheet, ds.HeaderRow)

	r.mu.Lock()
	if entry, ok := r.tables[key]; ok && r.now().Sub(entry.fetchedAt) < r.ttl {
		table := entry.table.Clone()
		r.mu.Unlock()
		return table, nil
	}
	r.mu.Unlock()

	data, err := r.client.Download(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("dataset %s (sheet %q): %w", ds.ID, ds.Sheet, err)
	}

	f, err := parseWorkbook(data)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", ds.ID, err)
	}
	defer f.Close()

	table, err := sheetTable(f, ds)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", ds.ID, err)
	}

	r.mu.Lock()
	r.tables[key] = cachedTable{table: table, fetchedAt: r.now()}
	r.mu.Unlock()

	r.logger.DebugContext(ctx, "sheet parsed",
		slog.String("dataset", string(ds.ID)),
		slog.String("sheet", ds.Sheet),
		slog.Int("rows", len(table.Rows)))

	return table.Clone(), nil
}

// Mode implements Source.
func (r *Remote) Mode() string { return "OneDrive" }

// Status implements Source.
func (r *Remote) Status(ctx context.Context) map[string]interface{} {
	configured := make(map[string]bool, len(r.docs))
	for wb, id := range r.docs {
		configured[string(wb)] = id != ""
	}
	return map[string]interface{}{
		"mode":                 "OneDrive",
		"onedrive_enabled":     true,
		"documents_configured": configured,
	}
}

// ClearCache drops every cached table.
func (r *Remote) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables = make(map[string]cachedTable)
}
