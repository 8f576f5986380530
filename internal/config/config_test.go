package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateRejectsEmptyRooms(t *testing.T) {
	cfg := Default()
	cfg.Rooms = nil
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Rooms = []string{"General", ""}
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveUploadCap(t *testing.T) {
	cfg := Default()
	cfg.UploadMaxBytes = 0
	require.Error(t, cfg.Validate())
}

func TestLoadWritesAndReadsDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, resolved, err := Load(nil, path)
	require.NoError(t, err)
	require.Equal(t, path, resolved)
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, []string{"General", "Random", "Tech"}, cfg.Rooms)
	require.Equal(t, int64(UploadMaxBytesDefault), cfg.UploadMaxBytes)

	// Second load reads the file written on first run.
	again, _, err := Load(nil, path)
	require.NoError(t, err)
	require.Equal(t, cfg, again)
}

func TestLoadHonorsFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "addr: \":9999\"\nrooms:\n  - Lobby\nsession_ttl: 1h\n")

	cfg, _, err := Load(nil, path)
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.Addr)
	require.Equal(t, []string{"Lobby"}, cfg.Rooms)
	require.Equal(t, time.Hour, cfg.SessionTTL)
	// Untouched keys keep defaults.
	require.Equal(t, "info", cfg.LogLevel)
}
