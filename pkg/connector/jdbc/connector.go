package jdbc

import (
	"context"

	"github.com/dataglide/dataglide/pkg/engine"
)

// Connector is the mode-agnostic surface the engine drives connectors
// through. Sources implement Read and fail Write; sinks implement Write and
// fail Read. The typed constructors make misuse unlikely, but an engine
// holding the unified interface can still call the wrong operation, so the
// wrong-mode entry points fail loudly instead of silently doing nothing.
type Connector interface {
	// TestID returns the connector's deterministic identity string, used by
	// the engine's test-substitution mechanism and for duplicate detection.
	TestID() string

	// Read submits the connector's read transform and returns the resulting
	// record collection.
	Read(ctx context.Context, ec *engine.Context) (*engine.Collection, error)

	// Write applies the connector's write transform to the collection.
	Write(ctx context.Context, ec *engine.Context, collection *engine.Collection) (*engine.Done, error)

	// Tap returns the connector's materialization handle. Database
	// connectors produce no durable side artifact, so the tap is empty.
	Tap(ctx context.Context, ec *engine.Context) (*engine.Tap, error)
}
