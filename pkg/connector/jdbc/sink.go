package jdbc

import (
	"context"

	"go.uber.org/zap"

	"github.com/dataglide/dataglide/pkg/engine"
	"github.com/dataglide/dataglide/pkg/errors"
	"github.com/dataglide/dataglide/pkg/logger"
)

// SinkConnector is a write-only database connector. It is an immutable
// value after construction and safe to share across workers.
type SinkConnector[T any] struct {
	opts   WriteOptions[T]
	id     string
	logger *zap.Logger
}

// Write creates a sink connector from write options, validating required
// fields at construction time.
func Write[T any](opts WriteOptions[T]) (*SinkConnector[T], error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "invalid write options")
	}

	return &SinkConnector[T]{
		opts:   opts,
		id:     fingerprint(opts),
		logger: logger.WithComponent("jdbc_sink"),
	}, nil
}

// TestID returns the connector's deterministic identity string.
func (k *SinkConnector[T]) TestID() string {
	return k.id
}

// Write assembles the write transform spec and applies it to the input
// collection. The batch-size override is attached only when it differs from
// the use-default sentinel, and the parameter setter only when present;
// writing is terminal, so the returned handle is empty.
func (k *SinkConnector[T]) Write(ctx context.Context, ec *engine.Context, collection *engine.Collection) (*engine.Done, error) {
	spec := &engine.WriteSpec{
		DataSource: k.opts.Connection.dataSource(),
		Statement:  k.opts.Statement,
	}

	if setter := k.opts.PreparedStatementSetter; setter != nil {
		spec.SetParameters = func(record interface{}, b engine.ParameterBinder) error {
			typed, ok := record.(T)
			if !ok {
				return errors.Newf(errors.ErrorTypeData, "unexpected record type %T", record)
			}
			return setter(typed, b)
		}
	}

	if k.opts.BatchSize != UseDefaultBatchSize {
		spec.BatchSize = k.opts.BatchSize
	}

	k.logger.Debug("submitting write transform",
		zap.String("driver", spec.DataSource.Driver),
		zap.Int("batch_size", spec.BatchSize),
		zap.Int("records", collection.Size()))

	if err := ec.SubmitWrite(ctx, k.id, collection, spec); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeQuery, "write transform failed")
	}
	return &engine.Done{}, nil
}

// Read always fails: a sink connector has no source capability.
func (k *SinkConnector[T]) Read(ctx context.Context, ec *engine.Context) (*engine.Collection, error) {
	return nil, errors.New(errors.ErrorTypeUnsupported, "write-only connector")
}

// Tap returns the empty materialization handle.
func (k *SinkConnector[T]) Tap(ctx context.Context, ec *engine.Context) (*engine.Tap, error) {
	return engine.EmptyTap(), nil
}
