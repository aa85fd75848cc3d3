package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		logger, err := New(DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
		assert.False(t, logger.ReportCaller)
	})

	t.Run("debug reports caller", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Level = "debug"

		logger, err := New(cfg)
		require.NoError(t, err)
		assert.True(t, logger.ReportCaller)
	})

	t.Run("bad level", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Level = "loud"

		_, err := New(cfg)
		assert.Error(t, err)
	})

	t.Run("writes to file", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.NoColors = true
		cfg.File = filepath.Join(t.TempDir(), "mudra.log")

		logger, err := New(cfg)
		require.NoError(t, err)

		logger.WithField("request_id", "abc").Info("prediction served")

		data, err := os.ReadFile(cfg.File)
		require.NoError(t, err)
		assert.Contains(t, string(data), "prediction served")
		assert.Contains(t, string(data), "abc")
	})
}
