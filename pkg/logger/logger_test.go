package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func resetLogger() {
	mu.Lock()
	defer mu.Unlock()
	globalLogger = nil
}

func TestInit_RetriesAfterFailure(t *testing.T) {
	resetLogger()
	defer resetLogger()

	err := Init(Config{Level: "not-a-level"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")

	require.NoError(t, Init(Config{Level: "debug", Encoding: "console"}))
	assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))
}

func TestInit_FirstSuccessWins(t *testing.T) {
	resetLogger()
	defer resetLogger()

	require.NoError(t, Init(Config{Level: "warn", Encoding: "json"}))
	require.NoError(t, Init(Config{Level: "debug", Encoding: "json"}))

	assert.False(t, Get().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, Get().Core().Enabled(zapcore.WarnLevel))
}

func TestGet_DefaultsWhenUninitialized(t *testing.T) {
	resetLogger()
	defer resetLogger()

	log := Get()
	require.NotNil(t, log)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestWithComponent(t *testing.T) {
	resetLogger()
	defer resetLogger()

	require.NotNil(t, WithComponent("runner"))
}
