package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, log.InfoLevel, ParseLevel(" INFO "))
	assert.Equal(t, log.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, log.WarnLevel, ParseLevel("nonsense"))
	assert.Equal(t, log.WarnLevel, ParseLevel(""))
}

func TestNewWithConfigPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithConfig(&buf, "ipc", log.InfoLevel, false, false, log.LogfmtFormatter)
	l.Info("ready", "terms", 3)
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "ipc")
	assert.Contains(t, out, "terms=3")
	assert.NotContains(t, out, "hidden")
}
