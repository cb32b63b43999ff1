package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("production env builds a logger at the requested level", func(t *testing.T) {
		log, err := New("warn", "production")
		require.NoError(t, err)
		defer log.Sync()

		assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("development env builds a logger at the requested level", func(t *testing.T) {
		log, err := New("debug", "development")
		require.NoError(t, err)
		defer log.Sync()

		assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("unparseable level falls back to info", func(t *testing.T) {
		log, err := New("loud", "production")
		require.NoError(t, err)
		defer log.Sync()

		assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
		assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	})
}
