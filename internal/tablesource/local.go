package tablesource

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/conectamos-mx/dashboard-ova/internal/dataset"
)

// Local reads workbooks from fixed filesystem paths. No caching: the files
// are local and small enough that reopening per request is cheap.
type Local struct {
	paths  map[dataset.Workbook]string
	logger *slog.Logger
}

// NewLocal creates a local source over the two workbook paths.
func NewLocal(ventasPath, almacenPath string, logger *slog.Logger) *Local {
	if logger == nil {
		logger = slog.Default()
	}
	return &Local{
		paths: map[dataset.Workbook]string{
			dataset.WorkbookVentas:  ventasPath,
			dataset.WorkbookAlmacen: almacenPath,
		},
		logger: logger.With(slog.String("component", "local_source")),
	}
}

// ReadTable implements Source.
func (l *Local) ReadTable(ctx context.Context, ds dataset.Info) (*Table, error) {
	path := l.paths[ds.Workbook]

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWorkbookNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSheetLayout, path, err)
	}
	defer f.Close()

	table, err := sheetTable(f, ds)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", ds.ID, err)
	}

	l.logger.DebugContext(ctx, "sheet loaded",
		slog.String("dataset", string(ds.ID)),
		slog.String("sheet", ds.Sheet),
		slog.Int("rows", len(table.Rows)))

	return table, nil
}

// Mode implements Source.
func (l *Local) Mode() string { return "Local" }

// Status implements Source.
func (l *Local) Status(ctx context.Context) map[string]interface{} {
	exists := make(map[string]bool, len(l.paths))
	for wb, path := range l.paths {
		_, err := os.Stat(path)
		exists[string(wb)] = err == nil
	}
	return map[string]interface{}{
		"mode":              "Local",
		"onedrive_enabled":  false,
		"local_files_exist": exists,
	}
}
