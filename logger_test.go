package tokenlist_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tokenlists/tokenlist"
)

func TestNewLogger(t *testing.T) {
	var console, errorLog bytes.Buffer
	cfg := tokenlist.DefaultConfig().Log
	logger, err := tokenlist.NewLogger(cfg, zapcore.AddSync(&console), zapcore.AddSync(&errorLog))
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("Token list is valid.")
	assert.Contains(t, console.String(), "INFO\tToken list is valid.")
	assert.NotContains(t, console.String(), "hidden")
	assert.Zero(t, errorLog.Len(), "info records must not reach the error log")

	logger.Error("Failed to fetch data", zap.Int("status", 404))
	assert.Contains(t, console.String(), "ERROR\tFailed to fetch data")

	var record map[string]any
	require.NoError(t, json.Unmarshal(errorLog.Bytes(), &record))
	assert.Equal(t, "error", record["level"])
	assert.Equal(t, "Failed to fetch data", record["msg"])
	assert.Equal(t, "token-list-validator", record["service"])
	assert.Equal(t, float64(404), record["status"])
	assert.NotEmpty(t, record["timestamp"])
}

func TestNewLoggerLevel(t *testing.T) {
	var console, errorLog bytes.Buffer
	cfg := tokenlist.LogConfig{Level: "error", Service: "svc"}
	logger, err := tokenlist.NewLogger(cfg, zapcore.AddSync(&console), zapcore.AddSync(&errorLog))
	require.NoError(t, err)

	logger.Info("quiet")
	assert.Zero(t, console.Len())

	_, err = tokenlist.NewLogger(tokenlist.LogConfig{Level: "loud"}, zapcore.AddSync(&console), zapcore.AddSync(&errorLog))
	assert.Error(t, err)
}

func TestOpenLogger(t *testing.T) {
	var console bytes.Buffer
	cfg := tokenlist.DefaultConfig().Log
	cfg.ErrorLog = filepath.Join(t.TempDir(), "error.log")

	logger, closeLogger, err := tokenlist.OpenLogger(cfg, &console)
	require.NoError(t, err)
	logger.Info("Validating token list")
	logger.Error("Validation failed")
	closeLogger()

	data, err := os.ReadFile(cfg.ErrorLog)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"msg":"Validation failed"`)
	assert.Contains(t, console.String(), "Validating token list")
}
