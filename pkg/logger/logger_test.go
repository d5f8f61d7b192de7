package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{" WARN ", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"", logrus.InfoLevel},
		{"verbose", logrus.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseLevel(tc.input))
		})
	}
}

func TestNew_WritesJSON(t *testing.T) {
	log := New("debug")
	var buf bytes.Buffer
	log.SetOutput(&buf)

	log.WithField("event_id", "42").Debug("Event cache refreshed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Event cache refreshed", entry["msg"])
	assert.Equal(t, "42", entry["event_id"])
	assert.Equal(t, "debug", entry["level"])
}

func TestNewConsole_TextAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsole("warn", &buf)

	log.Info("hidden")
	log.WithField("queued", 2).Warn("Push channel dropped")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `msg="Push channel dropped"`)
	assert.Contains(t, out, "queued=2")
	assert.NotContains(t, out, "{")
}
