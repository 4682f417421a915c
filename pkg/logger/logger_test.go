package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/bmizerany/assert"
)

func TestLoggerFormatsMessages(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{Level: "info", Output: &buf}).With("component", "test")

	log.Debug("hidden %d", 1)
	log.Info("game %s created", "ABC123")

	var record map[string]interface{}
	assert.Equal(t, nil, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "game ABC123 created", record["msg"])
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "test", record["component"])
}

func TestGetLoggerLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, getLoggerLevel("WARN"))
	assert.Equal(t, slog.LevelDebug, getLoggerLevel("verbose"))
}
