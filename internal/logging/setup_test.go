package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupHandlerText(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		debugOut bool
	}{
		{name: "trace level", logLevel: "trace", debugOut: true},
		{name: "debug level", logLevel: "debug", debugOut: true},
		{name: "info level", logLevel: "info"},
		{name: "mixed case level", logLevel: "DeBuG", debugOut: true},
		{name: "unknown level defaults to info", logLevel: "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := slog.New(SetupHandlerText(tt.logLevel, buf))

			logger.Debug("debug message")
			logger.Info("test message", "key", "value")

			output := buf.String()
			assert.Contains(t, output, "test message")
			assert.Contains(t, output, "key")
			assert.Contains(t, output, "value")
			assert.Equal(t, tt.debugOut, bytes.Contains(buf.Bytes(), []byte("debug message")))
		})
	}
}

func TestSetupHandlerText_FiltersBelowLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(SetupHandlerText("error", buf))

	logger.Warn("warn message")
	assert.Empty(t, buf.String())

	logger.Error("error message")
	assert.Contains(t, buf.String(), "error message")
}

func TestSetupHandlerJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(SetupHandlerJSON("warn", buf))

	logger.Info("hidden")
	logger.Warn("shown", "outcome", "not_ok")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "shown", record["msg"])
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "not_ok", record["outcome"])
}

func TestNew(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New("info", "JSON", buf)
	require.NoError(t, err)
	logger.Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	_, err = New("info", "xml", buf)
	assert.Error(t, err)
}

func TestValidLevel(t *testing.T) {
	for _, level := range []string{"trace", "debug", "INFO", "warn", "warning", "error"} {
		assert.True(t, ValidLevel(level), level)
	}
	assert.False(t, ValidLevel("verbose"))
}
