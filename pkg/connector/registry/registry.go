// Package registry manages test-double registration for connectors. Fakes
// are keyed by the connector's deterministic identity string rather than by
// reference, so an equivalent connector built deep inside a pipeline under
// test still matches the registered double.
package registry

import (
	"sync"

	"go.uber.org/zap"

	"github.com/dataglide/dataglide/pkg/errors"
	"github.com/dataglide/dataglide/pkg/logger"
)

// Registry holds fake sources and sinks keyed by connector identity.
type Registry struct {
	sources map[string][]interface{}
	sinks   map[string]*FakeSink
	mu      sync.RWMutex
	logger  *zap.Logger
}

// FakeSink captures records written through a substituted sink connector.
type FakeSink struct {
	mu      sync.Mutex
	records []interface{}
}

// Capture appends written records to the sink.
func (f *FakeSink) Capture(records []interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, records...)
}

// Records returns a copy of everything captured so far.
func (f *FakeSink) Records() []interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]interface{}, len(f.records))
	copy(out, f.records)
	return out
}

// Global registry instance
var globalRegistry = NewRegistry()

// NewRegistry creates a new test-double registry
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string][]interface{}),
		sinks:   make(map[string]*FakeSink),
		logger:  logger.WithComponent("connector_registry"),
	}
}

// RegisterFakeSource registers canned records for the connector identified
// by id. Registering the same identity twice is a conflict.
func (r *Registry) RegisterFakeSource(id string, records []interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sources[id]; exists {
		return errors.Newf(errors.ErrorTypeConflict, "fake source already registered for %s", id)
	}

	r.sources[id] = records
	r.logger.Info("fake source registered", zap.String("id", id), zap.Int("records", len(records)))
	return nil
}

// RegisterFakeSink registers a capturing sink for the connector identified
// by id and returns it for later assertions. Registering the same identity
// twice is a conflict.
func (r *Registry) RegisterFakeSink(id string) (*FakeSink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sinks[id]; exists {
		return nil, errors.Newf(errors.ErrorTypeConflict, "fake sink already registered for %s", id)
	}

	sink := &FakeSink{}
	r.sinks[id] = sink
	r.logger.Info("fake sink registered", zap.String("id", id))
	return sink, nil
}

// FakeSource returns the canned records registered for id, if any.
func (r *Registry) FakeSource(id string) ([]interface{}, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records, exists := r.sources[id]
	return records, exists
}

// FakeSink returns the capturing sink registered for id, if any.
func (r *Registry) FakeSink(id string) (*FakeSink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sink, exists := r.sinks[id]
	return sink, exists
}

// CaptureWrite hands written records to the fake sink registered for id,
// reporting whether one was registered.
func (r *Registry) CaptureWrite(id string, records []interface{}) bool {
	sink, exists := r.FakeSink(id)
	if !exists {
		return false
	}
	sink.Capture(records)
	return true
}

// HasSource checks if a fake source is registered for id.
func (r *Registry) HasSource(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.sources[id]
	return exists
}

// HasSink checks if a fake sink is registered for id.
func (r *Registry) HasSink(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.sinks[id]
	return exists
}

// Clear removes all registered fakes (mainly for testing).
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = make(map[string][]interface{})
	r.sinks = make(map[string]*FakeSink)
}

// Global registry functions

// RegisterFakeSource registers a fake source in the global registry.
func RegisterFakeSource(id string, records []interface{}) error {
	return globalRegistry.RegisterFakeSource(id, records)
}

// RegisterFakeSink registers a fake sink in the global registry.
func RegisterFakeSink(id string) (*FakeSink, error) {
	return globalRegistry.RegisterFakeSink(id)
}

// Clear clears the global registry.
func Clear() {
	globalRegistry.Clear()
}

// GetRegistry returns the global registry instance.
func GetRegistry() *Registry {
	return globalRegistry
}
