// Package direct provides the in-process reference runner. It executes
// assembled transform specs sequentially over database/sql: reads map rows
// through the spec's adapter and round-trip every record through the
// spec's coder, the way a distributed runner would serialize records across
// worker boundaries; writes prepare the statement once and execute it per
// record inside batch-sized transactions.
package direct

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/dataglide/dataglide/pkg/engine"
	"github.com/dataglide/dataglide/pkg/errors"
	"github.com/dataglide/dataglide/pkg/logger"
	"github.com/dataglide/dataglide/pkg/metrics"
)

// DefaultBatchSize is the write batch size used when the spec carries no
// explicit override.
const DefaultBatchSize = 1000

// defaultFetchSize sizes row buffers when the spec carries no override.
const defaultFetchSize = 1024

// Opener opens a database handle for a driver name and DSN. The default is
// sql.Open; tests inject openers backed by sqlmock.
type Opener func(driver, dsn string) (*sql.DB, error)

// Runner is the sequential reference implementation of engine.Runner.
type Runner struct {
	open   Opener
	logger *zap.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithOpener overrides how the runner opens database handles.
func WithOpener(open Opener) Option {
	return func(r *Runner) {
		r.open = open
	}
}

// WithLogger overrides the runner's logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = log
	}
}

// NewRunner creates a reference runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		open:   sql.Open,
		logger: logger.WithComponent("direct_runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// paramBinder collects positional parameters for one statement execution.
type paramBinder struct {
	args []interface{}
}

func (b *paramBinder) Bind(args ...interface{}) {
	b.args = append(b.args, args...)
}

// sqlRow adapts *sql.Rows positioned on the current row to engine.Row.
type sqlRow struct {
	rows    *sql.Rows
	columns []string
}

func (r *sqlRow) Scan(dest ...interface{}) error {
	return r.rows.Scan(dest...)
}

func (r *sqlRow) Columns() []string {
	return r.columns
}

// ExecuteRead runs a read transform spec and materializes the mapped
// records into a collection. Driver and SQL errors are wrapped with
// context but never reinterpreted.
func (r *Runner) ExecuteRead(ctx context.Context, spec *engine.ReadSpec) (*engine.Collection, error) {
	timer := metrics.NewTimer(spec.DataSource.Driver, "read")
	defer timer.Stop()

	db, err := r.open(spec.DataSource.Driver, spec.DataSource.DSN)
	if err != nil {
		metrics.TransformErrors.WithLabelValues(spec.DataSource.Driver, "read").Inc()
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to open data source").
			WithDetail("driver", spec.DataSource.Driver)
	}
	defer db.Close() //nolint:errcheck

	var args []interface{}
	if spec.Prepare != nil {
		binder := &paramBinder{}
		if err := spec.Prepare(binder); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "statement preparator failed")
		}
		args = binder.args
	}

	rows, err := db.QueryContext(ctx, spec.Query, args...)
	if err != nil {
		metrics.TransformErrors.WithLabelValues(spec.DataSource.Driver, "read").Inc()
		return nil, errors.Wrap(err, errors.ErrorTypeQuery, "query failed")
	}
	defer rows.Close() //nolint:errcheck

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeQuery, "failed to read result columns")
	}

	fetchSize := spec.FetchSize
	if fetchSize <= 0 {
		fetchSize = defaultFetchSize
	}

	records := make([]interface{}, 0, fetchSize)
	row := &sqlRow{rows: rows, columns: columns}

	for rows.Next() {
		record, err := spec.MapRow(row)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "row mapper failed")
		}

		if spec.Coder != nil {
			record, err = roundTrip(spec.Coder, record)
			if err != nil {
				return nil, err
			}
		}

		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		metrics.TransformErrors.WithLabelValues(spec.DataSource.Driver, "read").Inc()
		return nil, errors.Wrap(err, errors.ErrorTypeQuery, "row iteration failed")
	}

	metrics.RecordsRead.WithLabelValues(spec.DataSource.Driver).Add(float64(len(records)))
	r.logger.Info("read transform complete",
		zap.String("driver", spec.DataSource.Driver),
		zap.Int("records", len(records)))

	return engine.NewCollection(records), nil
}

// roundTrip encodes and decodes a record through the coder, surfacing
// non-serializable record types where a distributed runner would.
func roundTrip(coder engine.Coder, record interface{}) (interface{}, error) {
	data, err := coder.Encode(record)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "record is not encodable")
	}
	decoded, err := coder.Decode(data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "record is not decodable")
	}
	return decoded, nil
}

// ExecuteWrite runs a write transform spec against every record of the
// collection, committing a transaction per batch.
func (r *Runner) ExecuteWrite(ctx context.Context, collection *engine.Collection, spec *engine.WriteSpec) error {
	timer := metrics.NewTimer(spec.DataSource.Driver, "write")
	defer timer.Stop()

	db, err := r.open(spec.DataSource.Driver, spec.DataSource.DSN)
	if err != nil {
		metrics.TransformErrors.WithLabelValues(spec.DataSource.Driver, "write").Inc()
		return errors.Wrap(err, errors.ErrorTypeConnection, "failed to open data source").
			WithDetail("driver", spec.DataSource.Driver)
	}
	defer db.Close() //nolint:errcheck

	batchSize := spec.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	records := collection.Elements()
	written := 0

	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}

		if err := r.writeBatch(ctx, db, spec, records[start:end]); err != nil {
			metrics.TransformErrors.WithLabelValues(spec.DataSource.Driver, "write").Inc()
			return err
		}

		written += end - start
		metrics.BatchesCommitted.WithLabelValues(spec.DataSource.Driver).Inc()
	}

	metrics.RecordsWritten.WithLabelValues(spec.DataSource.Driver).Add(float64(written))
	r.logger.Info("write transform complete",
		zap.String("driver", spec.DataSource.Driver),
		zap.Int("records", written),
		zap.Int("batch_size", batchSize))

	return nil
}

// writeBatch executes the statement for each record of one batch inside a
// single transaction.
func (r *Runner) writeBatch(ctx context.Context, db *sql.DB, spec *engine.WriteSpec, batch []interface{}) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConnection, "failed to begin batch transaction")
	}

	stmt, err := tx.PrepareContext(ctx, spec.Statement)
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return errors.Wrap(err, errors.ErrorTypeQuery, "failed to prepare statement")
	}
	defer stmt.Close() //nolint:errcheck

	for _, record := range batch {
		var args []interface{}
		if spec.SetParameters != nil {
			binder := &paramBinder{}
			if err := spec.SetParameters(record, binder); err != nil {
				tx.Rollback() //nolint:errcheck
				return errors.Wrap(err, errors.ErrorTypeData, "parameter setter failed")
			}
			args = binder.args
		}

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			tx.Rollback() //nolint:errcheck
			return errors.Wrap(err, errors.ErrorTypeQuery, "statement execution failed")
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeQuery, "failed to commit batch")
	}
	return nil
}
