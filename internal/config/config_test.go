package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, Config{
		ServerAddress:    "0.0.0.0:8080",
		DataSource:       DataSourceFile,
		DataFile:         "data/Mobile_Food_Facility_Permit.csv",
		LogLevel:         "info",
		LogFormat:        "json",
		DefaultNeighbors: 5,
		GinMode:          "release",
	}, cfg)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.env", "SERVER_ADDRESS=127.0.0.1:9000\nDEFAULT_NEIGHBORS=3\nLOG_LEVEL=debug\n")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.ServerAddress)
	assert.Equal(t, 3, cfg.DefaultNeighbors)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "DATA_SOURCE=postgres\nDB_SOURCE=postgres://u:p@localhost:5432/facilities\n")
	t.Setenv("DATA_SOURCE", "")
	t.Setenv("DB_SOURCE", "")
	// godotenv does not override variables that are already set, so clear them.
	os.Unsetenv("DATA_SOURCE")
	os.Unsetenv("DB_SOURCE")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, DataSourcePostgres, cfg.DataSource)
	assert.Equal(t, "postgres://u:p@localhost:5432/facilities", cfg.DBSource)
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.env", "DATA_SOURCE=mongo\n")

	_, err := LoadConfig(dir)
	assert.ErrorContains(t, err, `unknown DATA_SOURCE "mongo"`)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{DataSource: DataSourceFile, DataFile: "facilities.csv", DefaultNeighbors: 5}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing file", mutate: func(c *Config) { c.DataFile = "" }, errMsg: "DATA_FILE is required"},
		{name: "postgres without dsn", mutate: func(c *Config) { c.DataSource = DataSourcePostgres }, errMsg: "DB_SOURCE is required"},
		{name: "postgres with dsn", mutate: func(c *Config) { c.DataSource = DataSourcePostgres; c.DBSource = "postgres://x" }},
		{name: "negative neighbors", mutate: func(c *Config) { c.DefaultNeighbors = -1 }, errMsg: "DEFAULT_NEIGHBORS must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.errMsg)
			}
		})
	}
}
