package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := out
	out = log.New(&buf, "", 0)
	t.Cleanup(func() {
		out = prev
		Init("info")
	})
	return &buf
}

func TestInitLevels(t *testing.T) {
	cases := map[string]string{
		"debug":   "debug",
		"INFO":    "info",
		"Warning": "warn",
		"warn":    "warn",
		"error":   "error",
		"fatal":   "fatal",
		"bogus":   "info",
		"":        "info",
	}
	for in, want := range cases {
		Init(in)
		assert.Equal(t, want, LevelString(), "Init(%q)", in)
	}
	Init("info")
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t)

	Init("warn")
	Debugf("hidden %d", 1)
	Infof("hidden %d", 2)
	Warnf("visible %d", 3)
	Errorf("visible %d", 4)

	s := buf.String()
	assert.NotContains(t, s, "hidden")
	assert.Contains(t, s, "[WARN] visible 3")
	assert.Contains(t, s, "[ERROR] visible 4")
}

func TestDebugLevelLogsEverything(t *testing.T) {
	buf := capture(t)

	Init("debug")
	Debugf("one")
	Infof("two")

	s := buf.String()
	assert.Contains(t, s, "[DEBUG] one")
	assert.Contains(t, s, "[INFO] two")
}
