package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataglide/dataglide/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validJob = `
name: users-sync
source:
  driver: pgx
  url: postgres://src-host/app
  username: reader
  password: s3cret
  query: SELECT id, name FROM users
  fetch_size: 500
sink:
  driver: mysql
  url: writer@tcp(dst-host)/warehouse
  username: writer
  statement: INSERT INTO users (id, name) VALUES (?, ?)
  columns: [id, name]
  batch_size: 250
logging:
  level: debug
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validJob))
	require.NoError(t, err)

	assert.Equal(t, "users-sync", cfg.Name)
	assert.Equal(t, "pgx", cfg.Source.Driver)
	assert.Equal(t, "postgres://src-host/app", cfg.Source.URL)
	assert.Equal(t, "reader", cfg.Source.Username)
	assert.Equal(t, "s3cret", cfg.Source.Password)
	assert.Equal(t, "SELECT id, name FROM users", cfg.Source.Query)
	assert.Equal(t, 500, cfg.Source.FetchSize)

	assert.Equal(t, "mysql", cfg.Sink.Driver)
	assert.Equal(t, "INSERT INTO users (id, name) VALUES (?, ?)", cfg.Sink.Statement)
	assert.Equal(t, []string{"id", "name"}, cfg.Sink.Columns)
	assert.Equal(t, 250, cfg.Sink.BatchSize)

	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_DefaultLogLevel(t *testing.T) {
	content := `
source:
  driver: pgx
  url: postgres://host/db
  query: SELECT 1
sink:
  driver: pgx
  url: postgres://host/db
  statement: INSERT INTO t DEFAULT VALUES
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Zero(t, cfg.Source.FetchSize)
	assert.Zero(t, cfg.Sink.BatchSize)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestValidate(t *testing.T) {
	valid := func() *JobConfig {
		return &JobConfig{
			Source: SourceConfig{
				Driver: "pgx",
				URL:    "postgres://host/db",
				Query:  "SELECT 1",
			},
			Sink: SinkConfig{
				Driver:    "pgx",
				URL:       "postgres://host/db",
				Statement: "INSERT INTO t DEFAULT VALUES",
			},
		}
	}

	tests := []struct {
		name      string
		mutate    func(c *JobConfig)
		wantError string
	}{
		{"valid", func(c *JobConfig) {}, ""},
		{"missing source driver", func(c *JobConfig) { c.Source.Driver = "" }, "source.driver"},
		{"missing source url", func(c *JobConfig) { c.Source.URL = "" }, "source.url"},
		{"missing source query", func(c *JobConfig) { c.Source.Query = "" }, "source.query"},
		{"negative fetch size", func(c *JobConfig) { c.Source.FetchSize = -1 }, "fetch_size"},
		{"missing sink driver", func(c *JobConfig) { c.Sink.Driver = "" }, "sink.driver"},
		{"missing sink url", func(c *JobConfig) { c.Sink.URL = "" }, "sink.url"},
		{"missing sink statement", func(c *JobConfig) { c.Sink.Statement = "" }, "sink.statement"},
		{"negative batch size", func(c *JobConfig) { c.Sink.BatchSize = -1 }, "batch_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}
