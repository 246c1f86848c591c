package graph

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conectamos-mx/dashboard-ova/internal/config"
)

func TestDownloadServesFromByteCache(t *testing.T) {
	client := NewClient(config.OneDriveConfig{FileCacheTTL: 2 * time.Minute}, nil)
	client.files["item-1"] = cachedFile{data: []byte("workbook"), fetchedAt: time.Now()}

	// No credentials are configured; a cache hit must not need any.
	data, err := client.Download(context.Background(), "item-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("workbook"), data)
}

func TestDownloadStaleCacheNeedsCredentials(t *testing.T) {
	client := NewClient(config.OneDriveConfig{FileCacheTTL: 2 * time.Minute}, nil)
	client.files["item-1"] = cachedFile{
		data:      []byte("workbook"),
		fetchedAt: time.Now().Add(-10 * time.Minute),
	}

	_, err := client.Download(context.Background(), "item-1")
	assert.ErrorIs(t, err, ErrTokenUnavailable)
}

func TestClearCache(t *testing.T) {
	client := NewClient(config.OneDriveConfig{FileCacheTTL: 2 * time.Minute}, nil)
	client.files["item-1"] = cachedFile{data: []byte("workbook"), fetchedAt: time.Now()}

	client.ClearCache()

	_, err := client.Download(context.Background(), "item-1")
	assert.ErrorIs(t, err, ErrTokenUnavailable)
}

func TestFetchErrorFormatting(t *testing.T) {
	inner := errors.New("boom")

	withStatus := &FetchError{ItemID: "item-1", StatusCode: 503, Err: inner}
	assert.Contains(t, withStatus.Error(), "503")
	assert.Contains(t, withStatus.Error(), "item-1")
	assert.ErrorIs(t, withStatus, inner)

	plain := &FetchError{ItemID: "item-1", Err: inner}
	assert.NotContains(t, plain.Error(), "status")
}
