package tablesource

import (
	"context"

	"github.com/conectamos-mx/dashboard-ova/internal/dataset"
)

// Source fetches the raw table behind a dataset. Implementations may block
// on network I/O; callers should treat ReadTable as potentially slow.
type Source interface {
	// ReadTable returns the dataset's sheet sliced at its header row.
	ReadTable(ctx context.Context, ds dataset.Info) (*Table, error)
	// Mode names the backend ("Local" or "OneDrive") for diagnostics.
	Mode() string
	// Status reports backend health details for the health endpoint.
	Status(ctx context.Context) map[string]interface{}
}
