// Package jdbc provides declarative database source and sink connectors for
// a pipeline engine. A connector is a descriptor (connection details, SQL
// text, user callbacks) plus exactly one operation mode: sources read,
// sinks write. The connector never executes SQL itself; it assembles an
// engine transform spec and submits it through the execution context.
package jdbc

import (
	"github.com/dataglide/dataglide/pkg/engine"
	"github.com/dataglide/dataglide/pkg/errors"
)

// UseDefaultFetchSize leaves the read fetch size to the runner. It is the
// zero value, so an unset ReadOptions.FetchSize means "runner default" and
// a positive value is always an explicit override.
const UseDefaultFetchSize = 0

// UseDefaultBatchSize leaves the write batch size to the runner.
const UseDefaultBatchSize = 0

// ConnectionOptions describes how to reach a database. The URL is an opaque
// DSN interpreted by the named driver. An empty Password means no password.
// ConnectionOptions are immutable values; connectors with equal URL,
// username, and password are considered equivalent for identity purposes.
type ConnectionOptions struct {
	DriverName string
	URL        string
	Username   string
	Password   string
}

func (c ConnectionOptions) validate() error {
	if c.DriverName == "" {
		return errors.New(errors.ErrorTypeConfig, "driver name is required")
	}
	if c.URL == "" {
		return errors.New(errors.ErrorTypeConfig, "connection URL is required")
	}
	return nil
}

// dataSource resolves the connection options into a runtime data-source
// configuration for a transform spec.
func (c ConnectionOptions) dataSource() engine.DataSourceConfig {
	return engine.ResolveDataSource(c.DriverName, c.URL, c.Username, c.Password)
}

// RowMapper maps one result row to one output record. Mappers must be pure,
// must not retain the row beyond the call, and are invoked concurrently on
// independent connections by distributed runners.
type RowMapper[T any] func(row engine.Row) (T, error)

// StatementPreparator binds query parameters before a read executes.
type StatementPreparator func(b engine.ParameterBinder) error

// PreparedStatementSetter binds one record's fields into a write statement.
type PreparedStatementSetter[T any] func(record T, b engine.ParameterBinder) error

// ReadOptions describes a database read: connection options, the query to
// run, the mandatory row mapper, an optional statement preparator for query
// parameters, and an optional fetch-size override.
type ReadOptions[T any] struct {
	Connection          ConnectionOptions
	Query               string
	RowMapper           RowMapper[T]
	StatementPreparator StatementPreparator
	FetchSize           int
}

func (o ReadOptions[T]) validate() error {
	if err := o.Connection.validate(); err != nil {
		return err
	}
	if o.Query == "" {
		return errors.New(errors.ErrorTypeConfig, "query is required")
	}
	if o.RowMapper == nil {
		return errors.New(errors.ErrorTypeValidation, "row mapper is required")
	}
	if o.FetchSize < 0 {
		return errors.Newf(errors.ErrorTypeValidation, "fetch size must be positive, got %d", o.FetchSize)
	}
	return nil
}

// WriteOptions describes a database write: connection options, the DML
// statement to run, an optional per-record parameter setter, and an
// optional batch-size override. A nil setter is valid for statements with
// no parameters.
type WriteOptions[T any] struct {
	Connection              ConnectionOptions
	Statement               string
	PreparedStatementSetter PreparedStatementSetter[T]
	BatchSize               int
}

func (o WriteOptions[T]) validate() error {
	if err := o.Connection.validate(); err != nil {
		return err
	}
	if o.Statement == "" {
		return errors.New(errors.ErrorTypeConfig, "statement is required")
	}
	if o.BatchSize < 0 {
		return errors.Newf(errors.ErrorTypeValidation, "batch size must be positive, got %d", o.BatchSize)
	}
	return nil
}
