package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/dataglide/dataglide/pkg/errors"
	"github.com/dataglide/dataglide/pkg/logger"
)

// FakeStore matches connectors against registered test doubles by identity.
// Lookups are keyed by the connector's test identity string, not by
// reference, so an equivalent descriptor built inside a pipeline under test
// still hits the registered fake.
type FakeStore interface {
	// FakeSource returns the canned records registered for id, if any.
	FakeSource(id string) ([]interface{}, bool)
	// CaptureWrite hands written records to the fake sink registered for
	// id, reporting whether one was registered.
	CaptureWrite(id string, records []interface{}) bool
}

// Context is the execution context connectors submit assembled transform
// specs to. It dispatches to the configured Runner, short-circuiting to
// registered test doubles when a FakeStore knows the submitting connector's
// identity.
type Context struct {
	runner Runner
	fakes  FakeStore
	logger *zap.Logger
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithFakes attaches a test-double store consulted before the runner.
func WithFakes(fakes FakeStore) ContextOption {
	return func(c *Context) {
		c.fakes = fakes
	}
}

// WithLogger overrides the context's logger.
func WithLogger(log *zap.Logger) ContextOption {
	return func(c *Context) {
		c.logger = log
	}
}

// NewContext creates an execution context over the given runner.
func NewContext(runner Runner, opts ...ContextOption) *Context {
	c := &Context{
		runner: runner,
		logger: logger.WithComponent("engine"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Logger returns the context's logger.
func (c *Context) Logger() *zap.Logger {
	return c.logger
}

// SubmitRead executes a read transform spec on behalf of the connector
// identified by testID. A fake source registered under that identity is
// substituted for real execution.
func (c *Context) SubmitRead(ctx context.Context, testID string, spec *ReadSpec) (*Collection, error) {
	if c.fakes != nil {
		if records, ok := c.fakes.FakeSource(testID); ok {
			c.logger.Debug("substituting fake source",
				zap.String("id", testID),
				zap.Int("records", len(records)))
			return NewCollection(records), nil
		}
	}

	if c.runner == nil {
		return nil, errors.New(errors.ErrorTypeConfig, "no runner configured and no fake source registered").
			WithDetail("id", testID)
	}

	return c.runner.ExecuteRead(ctx, spec)
}

// SubmitWrite applies a write transform spec to a collection on behalf of
// the connector identified by testID. A fake sink registered under that
// identity captures the records instead of real execution.
func (c *Context) SubmitWrite(ctx context.Context, testID string, collection *Collection, spec *WriteSpec) error {
	if c.fakes != nil {
		if c.fakes.CaptureWrite(testID, collection.Elements()) {
			c.logger.Debug("substituting fake sink",
				zap.String("id", testID),
				zap.Int("records", collection.Size()))
			return nil
		}
	}

	if c.runner == nil {
		return errors.New(errors.ErrorTypeConfig, "no runner configured and no fake sink registered").
			WithDetail("id", testID)
	}

	return c.runner.ExecuteWrite(ctx, collection, spec)
}
