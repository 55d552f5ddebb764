package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZQisAmalou/v2x-log-server/internal/models"
)

// chdir changes the working directory for the duration of the test,
// matching the behavior of testing.T.Chdir (added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-matter.yaml"))
	// An explicitly named but missing file is an error; fall back to the
	// default search path in a directory without a config file instead.
	require.Error(t, err)
	assert.Nil(t, cfg)

	chdir(t, t.TempDir())
	cfg, err = Load("")
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 100, cfg.Ingest.SyntheticCount)
	assert.Equal(t, 50, cfg.Ingest.NodeLogLimit)
	assert.True(t, cfg.Watch.Enabled)
	assert.Equal(t, 256, cfg.Watch.BufferSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `server:
  port: 8080
paths:
  veins: /data/logs
ingest:
  synthetic_count: 7
watch:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "/data/logs", cfg.Paths.Veins)
	assert.Equal(t, 7, cfg.Ingest.SyntheticCount)
	assert.False(t, cfg.Watch.Enabled)
	// Unset keys keep their defaults.
	assert.Equal(t, "./messages/qca_storage", cfg.Paths.QCA)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LOGSERVER_SERVER_PORT", "9999")
	t.Setenv("LOGSERVER_PATHS_VEINS", "/env/logs")
	t.Setenv("LOGSERVER_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "/env/logs", cfg.Paths.Veins)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Keys without an override keep their defaults.
	assert.Equal(t, 100, cfg.Ingest.SyntheticCount)
}

func TestPathsConfig_Roots(t *testing.T) {
	paths := PathsConfig{
		Veins:       "/v",
		Certificate: "/c",
		QCA:         "/q",
		Config:      "/cfg",
	}

	roots := paths.Roots()

	assert.Equal(t, map[models.SourceType]string{
		models.SourceVeins:       "/v",
		models.SourceCertificate: "/c",
		models.SourceQCA:         "/q",
		models.SourceConfig:      "/cfg",
	}, roots)
}
