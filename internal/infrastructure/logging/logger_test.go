package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	t.Run("rejects unknown level", func(t *testing.T) {
		_, err := New(Config{Level: "chatty"})
		assert.Error(t, err)
	})

	t.Run("writes json to configured path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mathd.log")
		logger, err := New(Config{Level: "info", OutputPaths: []string{path}})
		require.NoError(t, err)

		logger.Named("registry").Info("tool call", zap.String("tool", "add"))
		require.NoError(t, logger.Sync())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"message":"tool call"`)
		assert.Contains(t, string(data), `"tool":"add"`)
		assert.Contains(t, string(data), `"logger":"registry"`)
	})

	t.Run("respects level", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mathd.log")
		logger, err := New(Config{Level: "warn", OutputPaths: []string{path}})
		require.NoError(t, err)

		logger.Info("hidden")
		logger.Warn("shown")
		require.NoError(t, logger.Sync())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "hidden")
		assert.Contains(t, string(data), "shown")
	})
}

func TestConfigFor(t *testing.T) {
	http := ConfigFor("info", false, false)
	assert.Equal(t, []string{"stdout"}, http.OutputPaths)
	assert.False(t, http.Development)

	stdio := ConfigFor("debug", true, true)
	assert.Equal(t, []string{"stderr"}, stdio.OutputPaths)
	assert.Equal(t, "debug", stdio.Level)
	assert.True(t, stdio.Development)
}

func TestDevelopmentEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mathd.log")
	logger, err := New(Config{Level: "debug", Development: true, OutputPaths: []string{path}})
	require.NoError(t, err)

	logger.Debug("verbose")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "verbose")
	assert.NotContains(t, string(data), `"message"`)
}
