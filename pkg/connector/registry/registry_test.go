package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataglide/dataglide/pkg/errors"
)

func TestRegistry_FakeSource(t *testing.T) {
	reg := NewRegistry()
	records := []interface{}{int64(1), int64(2)}

	require.NoError(t, reg.RegisterFakeSource("svc@db:SELECT 1", records))

	t.Run("lookup hit", func(t *testing.T) {
		got, ok := reg.FakeSource("svc@db:SELECT 1")
		require.True(t, ok)
		assert.Equal(t, records, got)
		assert.True(t, reg.HasSource("svc@db:SELECT 1"))
	})

	t.Run("lookup miss", func(t *testing.T) {
		_, ok := reg.FakeSource("svc@db:SELECT 2")
		assert.False(t, ok)
		assert.False(t, reg.HasSource("svc@db:SELECT 2"))
	})

	t.Run("duplicate registration is a conflict", func(t *testing.T) {
		err := reg.RegisterFakeSource("svc@db:SELECT 1", nil)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeConflict))
	})
}

func TestRegistry_FakeSink(t *testing.T) {
	reg := NewRegistry()

	sink, err := reg.RegisterFakeSink("svc@db:INSERT")
	require.NoError(t, err)
	require.NotNil(t, sink)

	t.Run("duplicate registration is a conflict", func(t *testing.T) {
		_, err := reg.RegisterFakeSink("svc@db:INSERT")
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeConflict))
	})

	t.Run("capture accumulates records", func(t *testing.T) {
		assert.True(t, reg.CaptureWrite("svc@db:INSERT", []interface{}{"a"}))
		assert.True(t, reg.CaptureWrite("svc@db:INSERT", []interface{}{"b", "c"}))
		assert.Equal(t, []interface{}{"a", "b", "c"}, sink.Records())
	})

	t.Run("capture misses unregistered identities", func(t *testing.T) {
		assert.False(t, reg.CaptureWrite("svc@db:DELETE", []interface{}{"x"}))
	})

	t.Run("records returns a copy", func(t *testing.T) {
		got := sink.Records()
		got[0] = "mutated"
		assert.Equal(t, "a", sink.Records()[0])
	})
}

func TestRegistry_Clear(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterFakeSource("id1", nil))
	_, err := reg.RegisterFakeSink("id2")
	require.NoError(t, err)

	reg.Clear()

	assert.False(t, reg.HasSource("id1"))
	assert.False(t, reg.HasSink("id2"))
	require.NoError(t, reg.RegisterFakeSource("id1", nil))
}

func TestGlobalRegistry(t *testing.T) {
	Clear()
	defer Clear()

	require.NoError(t, RegisterFakeSource("global-id", []interface{}{1}))
	records, ok := GetRegistry().FakeSource("global-id")
	require.True(t, ok)
	assert.Len(t, records, 1)

	sink, err := RegisterFakeSink("global-sink")
	require.NoError(t, err)
	assert.NotNil(t, sink)
}
