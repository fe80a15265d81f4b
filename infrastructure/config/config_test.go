package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archibridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
	assert.True(t, cfg.CSV.WriteHeader)
	assert.Equal(t, "images/", cfg.Images.FeaturePrefix)
	assert.Equal(t, []string{"defaults", "environment"}, cfg.LoadedFrom)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	path := writeYAML(t, `
server:
  address: ":9090"
  cors_origins: ["https://models.example.com"]
logging:
  level: debug
csv:
  delimiter: ";"
  encoding: ANSI
  strip_newlines: true
workspace:
  undo_limit: 5
  idle_ttl: 30m
`)
	t.Setenv("CSV_ENCODING", "UTF-8 BOM")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, []string{"https://models.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, ";", cfg.CSV.Delimiter)
	assert.Equal(t, "UTF-8 BOM", cfg.CSV.Encoding)
	assert.True(t, cfg.CSV.StripNewLines)
	assert.True(t, cfg.CSV.WriteHeader)
	assert.Equal(t, 5, cfg.Workspace.UndoLimit)
	assert.Equal(t, 30*time.Minute, cfg.Workspace.IdleTTL)
	assert.Equal(t, []string{"defaults", path, "environment"}, cfg.LoadedFrom)
}

func TestLoadConfig_UsesFileEnvVar(t *testing.T) {
	t.Setenv(FileEnvVar, writeYAML(t, "images:\n  max_bytes: 1024\n"))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, int64(1024), cfg.Images.MaxBytes)
	assert.Equal(t, int64(1024), cfg.Domain().MaxImageBytes)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
	}{
		{name: "unknown log level", yaml: "logging:\n  level: loud\n"},
		{name: "prefix without slash", yaml: "images:\n  feature_prefix: pics\n"},
		{name: "auth without secret", yaml: "server:\n  auth:\n    enabled: true\n"},
		{name: "production without auth", env: map[string]string{"ENVIRONMENT": "production"}},
		{name: "bad yaml", yaml: "server: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.yaml != "" {
				path = writeYAML(t, tt.yaml)
			}
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}
