package engine

import (
	"bytes"
	"reflect"
	"sync"

	gojson "github.com/goccy/go-json"

	"github.com/dataglide/dataglide/pkg/errors"
)

// Coder serializes records across worker boundaries. Read transforms carry
// the coder for their record type so a runner can move mapped records
// between execution nodes.
type Coder interface {
	Encode(v interface{}) ([]byte, error)
	Decode(data []byte) (interface{}, error)
}

// coderRegistry holds coders keyed by record type.
type coderRegistry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]Coder
}

var coders = &coderRegistry{
	byType: make(map[reflect.Type]Coder),
}

// RegisterCoder registers a custom coder for record type T. Registering a
// second coder for the same type is a conflict error.
func RegisterCoder[T any](c Coder) error {
	t := reflect.TypeOf((*T)(nil)).Elem()

	coders.mu.Lock()
	defer coders.mu.Unlock()

	if _, exists := coders.byType[t]; exists {
		return errors.Newf(errors.ErrorTypeConflict, "coder already registered for type %s", t)
	}

	coders.byType[t] = c
	return nil
}

// CoderOf returns the coder for record type T, falling back to the JSON
// coder when none has been registered.
func CoderOf[T any]() Coder {
	t := reflect.TypeOf((*T)(nil)).Elem()

	coders.mu.RLock()
	c, exists := coders.byType[t]
	coders.mu.RUnlock()

	if exists {
		return c
	}
	return JSONCoder[T]{}
}

// ClearCoders removes all registered coders (mainly for testing).
func ClearCoders() {
	coders.mu.Lock()
	defer coders.mu.Unlock()
	coders.byType = make(map[reflect.Type]Coder)
}

// JSONCoder is the default coder, serializing records as JSON.
type JSONCoder[T any] struct{}

// Encode serializes a record to JSON.
func (JSONCoder[T]) Encode(v interface{}) ([]byte, error) {
	data, err := gojson.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to encode record")
	}
	return data, nil
}

// Decode deserializes a record from JSON. Numbers landing in interface{}
// destinations keep 64-bit integer precision instead of rounding through
// float64.
func (JSONCoder[T]) Decode(data []byte) (interface{}, error) {
	var v T
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to decode record")
	}
	return restoreNumbers(v), nil
}

// restoreNumbers rewrites the json.Number values UseNumber leaves in
// interface{} destinations: integral literals become int64, everything
// else float64. Typed struct fields are unaffected.
func restoreNumbers(v interface{}) interface{} {
	switch val := v.(type) {
	case gojson.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		f, err := val.Float64()
		if err != nil {
			return val
		}
		return f
	case map[string]interface{}:
		for k, elem := range val {
			val[k] = restoreNumbers(elem)
		}
		return val
	case []interface{}:
		for i, elem := range val {
			val[i] = restoreNumbers(elem)
		}
		return val
	default:
		return v
	}
}
