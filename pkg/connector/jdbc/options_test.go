package jdbc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataglide/dataglide/pkg/errors"
)

func validConnection() ConnectionOptions {
	return ConnectionOptions{
		DriverName: "pgx",
		URL:        "postgres://host/db",
		Username:   "svc",
		Password:   "secret",
	}
}

func TestRead_Validation(t *testing.T) {
	tests := []struct {
		name      string
		opts      ReadOptions[int64]
		wantError string
	}{
		{
			name: "valid options",
			opts: ReadOptions[int64]{
				Connection: validConnection(),
				Query:      "SELECT id FROM t",
				RowMapper:  intMapper,
			},
		},
		{
			name: "missing driver name",
			opts: ReadOptions[int64]{
				Connection: ConnectionOptions{URL: "postgres://host/db"},
				Query:      "SELECT id FROM t",
				RowMapper:  intMapper,
			},
			wantError: "driver name is required",
		},
		{
			name: "missing url",
			opts: ReadOptions[int64]{
				Connection: ConnectionOptions{DriverName: "pgx"},
				Query:      "SELECT id FROM t",
				RowMapper:  intMapper,
			},
			wantError: "connection URL is required",
		},
		{
			name: "missing query",
			opts: ReadOptions[int64]{
				Connection: validConnection(),
				RowMapper:  intMapper,
			},
			wantError: "query is required",
		},
		{
			name: "missing row mapper",
			opts: ReadOptions[int64]{
				Connection: validConnection(),
				Query:      "SELECT id FROM t",
			},
			wantError: "row mapper is required",
		},
		{
			name: "negative fetch size",
			opts: ReadOptions[int64]{
				Connection: validConnection(),
				Query:      "SELECT id FROM t",
				RowMapper:  intMapper,
				FetchSize:  -1,
			},
			wantError: "fetch size must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, err := Read(tt.opts)
			if tt.wantError == "" {
				require.NoError(t, err)
				assert.NotNil(t, source)
				return
			}
			require.Error(t, err)
			assert.Nil(t, source)
			assert.Contains(t, err.Error(), tt.wantError)
			assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
		})
	}
}

func TestWrite_Validation(t *testing.T) {
	tests := []struct {
		name      string
		opts      WriteOptions[int64]
		wantError string
	}{
		{
			name: "valid options",
			opts: WriteOptions[int64]{
				Connection: validConnection(),
				Statement:  "INSERT INTO t VALUES ($1)",
			},
		},
		{
			name: "setter is optional",
			opts: WriteOptions[int64]{
				Connection: validConnection(),
				Statement:  "INSERT INTO t DEFAULT VALUES",
			},
		},
		{
			name: "missing statement",
			opts: WriteOptions[int64]{
				Connection: validConnection(),
			},
			wantError: "statement is required",
		},
		{
			name: "missing url",
			opts: WriteOptions[int64]{
				Connection: ConnectionOptions{DriverName: "pgx"},
				Statement:  "INSERT INTO t VALUES ($1)",
			},
			wantError: "connection URL is required",
		},
		{
			name: "negative batch size",
			opts: WriteOptions[int64]{
				Connection: validConnection(),
				Statement:  "INSERT INTO t VALUES ($1)",
				BatchSize:  -5,
			},
			wantError: "batch size must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink, err := Write(tt.opts)
			if tt.wantError == "" {
				require.NoError(t, err)
				assert.NotNil(t, sink)
				return
			}
			require.Error(t, err)
			assert.Nil(t, sink)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}
