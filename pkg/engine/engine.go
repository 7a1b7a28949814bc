// Package engine defines the execution-engine surface the database
// connectors are built against: row and parameter-binding abstractions,
// declarative read/write transform specs, the record collection handle, and
// the Runner interface that executes assembled specs. Connectors only
// assemble specs; everything that blocks (connections, SQL execution,
// batching) happens inside a Runner implementation.
package engine

import (
	"context"
)

// Row is a single result row handed to a user row mapper. Implementations
// are only valid for the duration of the mapper call; mappers must not
// retain the Row.
type Row interface {
	// Scan copies the row's column values into dest, in column order.
	Scan(dest ...interface{}) error
	// Columns returns the result set's column names.
	Columns() []string
}

// ParameterBinder collects positional statement parameters. User callbacks
// bind query or DML parameters through it instead of touching the driver.
type ParameterBinder interface {
	Bind(args ...interface{})
}

// DataSourceConfig is the resolved runtime connection configuration a
// transform spec carries. The DSN is opaque to the engine and interpreted
// by the named driver.
type DataSourceConfig struct {
	Driver   string
	DSN      string
	Username string
	Password string
}

// ResolveDataSource resolves connection details into a runtime data-source
// configuration for a transform spec.
func ResolveDataSource(driver, dsn, username, password string) DataSourceConfig {
	return DataSourceConfig{
		Driver:   driver,
		DSN:      dsn,
		Username: username,
		Password: password,
	}
}

// ReadSpec describes a database read transform. FetchSize zero means the
// runner chooses its own default; a positive value is an explicit override.
type ReadSpec struct {
	DataSource DataSourceConfig
	Query      string
	MapRow     func(Row) (interface{}, error)
	Prepare    func(ParameterBinder) error // nil means the query has no parameters
	FetchSize  int
	Coder      Coder
}

// WriteSpec describes a database write transform. BatchSize zero means the
// runner chooses its own default; a positive value is an explicit override.
type WriteSpec struct {
	DataSource    DataSourceConfig
	Statement     string
	SetParameters func(record interface{}, b ParameterBinder) error // nil means no parameters
	BatchSize     int
}

// Collection is the engine's handle over a typed sequence of records. The
// reference runner materializes records in memory; a distributed runner
// would keep this opaque.
type Collection struct {
	elements []interface{}
}

// NewCollection creates a collection over the given records.
func NewCollection(elements []interface{}) *Collection {
	return &Collection{elements: elements}
}

// Elements returns the materialized records.
func (c *Collection) Elements() []interface{} {
	if c == nil {
		return nil
	}
	return c.elements
}

// Size returns the number of records in the collection.
func (c *Collection) Size() int {
	if c == nil {
		return 0
	}
	return len(c.elements)
}

// Done is the completion handle returned by terminal writes. Writing
// produces no typed output, so the handle is empty.
type Done struct{}

// Tap is a materialization handle over a transform's durable side output.
// Database connectors produce no side artifact of their own, so their taps
// are always empty.
type Tap struct{}

// EmptyTap returns the no-op materialization handle.
func EmptyTap() *Tap {
	return &Tap{}
}

// Elements always returns nil for an empty tap.
func (t *Tap) Elements() []interface{} {
	return nil
}

// Runner executes assembled transform specs. Implementations own all
// connection management, batching, and parallelism.
type Runner interface {
	ExecuteRead(ctx context.Context, spec *ReadSpec) (*Collection, error)
	ExecuteWrite(ctx context.Context, collection *Collection, spec *WriteSpec) error
}
