package logrus

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_JSONCarriesSystemAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: "debug", JSON: true, Output: &buf})

	logger.Info("Current feed keywords", map[string]interface{}{
		"count": 3,
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "LinkOff", entry["system"])
	assert.Equal(t, "Current feed keywords", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, float64(3), entry["count"])
}

func TestLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: "warn", Output: &buf})

	logger.Debug("debug line", nil)
	logger.Info("info line", nil)
	logger.Warn("warn line", nil)
	logger.Error("error line", map[string]interface{}{"error": "boom"})

	out := buf.String()
	assert.NotContains(t, out, "debug line")
	assert.NotContains(t, out, "info line")
	assert.Contains(t, out, "warn line")
	assert.Contains(t, out, "error line")
	assert.Contains(t, out, "system=LinkOff")
}

func TestLogger_UnknownLevelMeansInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: "chatty", Output: &buf})

	logger.Debug("hidden", nil)
	logger.Info("shown", nil)

	assert.False(t, strings.Contains(buf.String(), "hidden"))
	assert.True(t, strings.Contains(buf.String(), "shown"))
}
