package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("bogus"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "warden.log")
	logger, err := New(Options{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)

	logger.Debug("cells loaded")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.Contains(out, `"msg":"cells loaded"`), out)
	assert.True(t, strings.Contains(out, `"timestamp"`), out)
	assert.True(t, strings.Contains(out, `"service_name":"warden"`), out)
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warden.log")
	logger, err := New(Options{Level: "error", Format: "json", File: path})
	require.NoError(t, err)

	logger.Info("quiet")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet")
}
