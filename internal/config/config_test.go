package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8005, cfg.Server.Port)
	assert.Equal(t, ModeLocal, cfg.Source.Mode)
	assert.Equal(t, "consumers", cfg.Source.OneDrive.TenantID)
	assert.Equal(t, 2*time.Minute, cfg.Source.OneDrive.FileCacheTTL)
	assert.Equal(t, 2*time.Minute, cfg.Source.OneDrive.TableCacheTTL)
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg.Server.Port = 70000
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownSourceMode(t *testing.T) {
	cfg := Default()
	cfg.Source.Mode = "ftp"
	assert.Error(t, cfg.Validate())
}

func TestValidateOneDriveCrossFields(t *testing.T) {
	cfg := Default()
	cfg.Source.Mode = ModeOneDrive

	// No document IDs at all.
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document item ID")

	// Documents configured but no way to authenticate.
	cfg.Source.OneDrive.VentasItemID = "item-ventas"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client ID")

	cfg.Source.OneDrive.ClientID = "client-id"
	assert.NoError(t, cfg.Validate())
}

func TestValidateOneDriveStaticTokenOnly(t *testing.T) {
	cfg := Default()
	cfg.Source.Mode = ModeOneDrive
	cfg.Source.OneDrive.AlmacenItemID = "item-almacen"
	cfg.Source.OneDrive.AccessToken = "static-token"

	assert.NoError(t, cfg.Validate())
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9100
source:
  mode: local
  ventas_file: ventas.xlsx
`), 0644))

	t.Setenv("OVA_CONFIG_FILE", path)
	t.Setenv("OVA_SERVER_PORT", "9200")

	cfg, err := Load()
	require.NoError(t, err)

	// Env beats file, file beats defaults.
	assert.Equal(t, 9200, cfg.Server.Port)
	assert.Equal(t, "ventas.xlsx", cfg.Source.VentasFile)
	assert.Equal(t, "CONTROL DE ALMACÉN OVA 2026 -.xlsx", cfg.Source.AlmacenFile)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0644))

	t.Setenv("OVA_CONFIG_FILE", path)

	_, err := Load()
	assert.Error(t, err)
}
