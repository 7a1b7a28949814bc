package jdbc

import (
	"context"

	"go.uber.org/zap"

	"github.com/dataglide/dataglide/pkg/engine"
	"github.com/dataglide/dataglide/pkg/errors"
	"github.com/dataglide/dataglide/pkg/logger"
)

// SourceConnector is a read-only database connector. It is an immutable
// value after construction and safe to share across workers.
type SourceConnector[T any] struct {
	opts   ReadOptions[T]
	id     string
	logger *zap.Logger
}

// Read creates a source connector from read options, validating required
// fields at construction time.
func Read[T any](opts ReadOptions[T]) (*SourceConnector[T], error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "invalid read options")
	}

	return &SourceConnector[T]{
		opts:   opts,
		id:     fingerprint(opts),
		logger: logger.WithComponent("jdbc_source"),
	}, nil
}

// TestID returns the connector's deterministic identity string.
func (s *SourceConnector[T]) TestID() string {
	return s.id
}

// Read assembles the read transform spec and submits it to the engine. The
// fetch-size override is attached only when it differs from the
// use-default sentinel, and the statement preparator only when present.
func (s *SourceConnector[T]) Read(ctx context.Context, ec *engine.Context) (*engine.Collection, error) {
	mapper := s.opts.RowMapper
	spec := &engine.ReadSpec{
		DataSource: s.opts.Connection.dataSource(),
		Query:      s.opts.Query,
		MapRow: func(row engine.Row) (interface{}, error) {
			return mapper(row)
		},
		Coder: engine.CoderOf[T](),
	}

	if s.opts.StatementPreparator != nil {
		spec.Prepare = s.opts.StatementPreparator
	}

	if s.opts.FetchSize != UseDefaultFetchSize {
		spec.FetchSize = s.opts.FetchSize
	}

	s.logger.Debug("submitting read transform",
		zap.String("driver", spec.DataSource.Driver),
		zap.Int("fetch_size", spec.FetchSize))

	collection, err := ec.SubmitRead(ctx, s.id, spec)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeQuery, "read transform failed")
	}
	return collection, nil
}

// Write always fails: a source connector has no sink capability.
func (s *SourceConnector[T]) Write(ctx context.Context, ec *engine.Context, collection *engine.Collection) (*engine.Done, error) {
	return nil, errors.New(errors.ErrorTypeUnsupported, "read-only connector")
}

// Tap returns the empty materialization handle.
func (s *SourceConnector[T]) Tap(ctx context.Context, ec *engine.Context) (*engine.Tap, error) {
	return engine.EmptyTap(), nil
}
