package app

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conectamos-mx/dashboard-ova/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildSourceLocal(t *testing.T) {
	cfg := config.Default()

	src, err := buildSource(cfg, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "Local", src.Mode())
}

func TestBuildSourceOneDrive(t *testing.T) {
	cfg := config.Default()
	cfg.Source.Mode = config.ModeOneDrive
	cfg.Source.OneDrive.ClientID = "client-id"
	cfg.Source.OneDrive.VentasItemID = "item-ventas"

	src, err := buildSource(cfg, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "OneDrive", src.Mode())
}

func TestBuildSourceUnknownMode(t *testing.T) {
	cfg := config.Default()
	cfg.Source.Mode = "ftp"

	_, err := buildSource(cfg, testLogger())
	assert.Error(t, err)
}
