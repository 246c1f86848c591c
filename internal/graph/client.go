// Package graph is a Microsoft Graph client for personal OneDrive accounts.
// It downloads workbook documents with a short-lived byte cache and acquires
// bearer tokens through a three-tier credential fallback.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/conectamos-mx/dashboard-ova/internal/config"
)

const baseURL = "https://graph.microsoft.com/v1.0"

// Bounded per-call timeouts: downloads can move whole workbooks, metadata is
// a single small JSON document.
const (
	downloadTimeout = 60 * time.Second
	metadataTimeout = 30 * time.Second
)

// FetchError wraps a transport or HTTP failure while talking to Graph.
type FetchError struct {
	ItemID     string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("graph: fetching item %s: status %d: %v", e.ItemID, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("graph: fetching item %s: %v", e.ItemID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ItemMetadata is the subset of drive item metadata the dashboard reports.
type ItemMetadata struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

type cachedFile struct {
	data      []byte
	fetchedAt time.Time
}

// Client talks to the Graph API. Downloaded documents are cached in memory
// for cfg.FileCacheTTL; concurrent refreshes of the same item race benignly
// (last write wins, values are immutable snapshots).
type Client struct {
	cfg        config.OneDriveConfig
	logger     *slog.Logger
	httpClient *http.Client

	mu    sync.Mutex
	files map[string]cachedFile
	now   func() time.Time
}

// NewClient creates a Graph client.
func NewClient(cfg config.OneDriveConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		logger:     logger.With(slog.String("component", "graph_client")),
		httpClient: &http.Client{Timeout: downloadTimeout},
		files:      make(map[string]cachedFile),
		now:        time.Now,
	}
}

// Download fetches the raw bytes of a drive item, serving from the byte
// cache while it is fresh.
func (c *Client) Download(ctx context.Context, itemID string) ([]byte, error) {
	c.mu.Lock()
	if entry, ok := c.files[itemID]; ok && c.now().Sub(entry.fetchedAt) < c.cfg.FileCacheTTL {
		c.mu.Unlock()
		return entry.data, nil
	}
	c.mu.Unlock()

	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/me/drive/items/%s/content", baseURL, itemID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{ItemID: itemID, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{ItemID: itemID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &FetchError{
			ItemID:     itemID,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected response: %s", string(body)),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{ItemID: itemID, Err: err}
	}

	c.mu.Lock()
	c.files[itemID] = cachedFile{data: data, fetchedAt: c.now()}
	c.mu.Unlock()

	c.logger.InfoContext(ctx, "document downloaded",
		slog.String("item_id", itemID),
		slog.Int("bytes", len(data)))

	return data, nil
}

// Metadata fetches name/size/id for a drive item.
func (c *Client) Metadata(ctx context.Context, itemID string) (*ItemMetadata, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/me/drive/items/%s", baseURL, itemID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{ItemID: itemID, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{ItemID: itemID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{
			ItemID:     itemID,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("metadata request rejected"),
		}
	}

	var meta ItemMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, &FetchError{ItemID: itemID, Err: err}
	}
	return &meta, nil
}

// ClearCache drops every cached document.
func (c *Client) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files = make(map[string]cachedFile)
}
