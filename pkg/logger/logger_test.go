package logger

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func captureOutput(f func()) string {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	outputChan := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		outputChan <- buf.String()
	}()

	f()

	w.Close()
	os.Stdout = oldStdout
	return <-outputChan
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	assert.NotNil(t, logger)
	assert.IsType(t, &zerologLogger{}, logger)
}

func TestLogLevels(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	tests := []struct {
		name    string
		logFunc func(Logger, string)
		level   string
	}{
		{"debug", func(l Logger, m string) { l.Debug(m) }, "debug"},
		{"info", func(l Logger, m string) { l.Info(m) }, "info"},
		{"warn", func(l Logger, m string) { l.Warn(m) }, "warn"},
		{"error", func(l Logger, m string) { l.Error(m) }, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureOutput(func() {
				tt.logFunc(NewLogger(), tt.name+" message")
			})
			assert.Contains(t, output, tt.name+" message")
			assert.Contains(t, output, `"level":"`+tt.level+`"`)
		})
	}
}

func TestLogLevelFiltering(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	output := captureOutput(func() {
		NewLogger().Debug("filtered out")
	})
	assert.NotContains(t, output, "filtered out")

	output = captureOutput(func() {
		NewLogger().Info("kept")
	})
	assert.Contains(t, output, "kept")
}

func TestNewLoggerWithLevel(t *testing.T) {
	tests := []struct {
		name          string
		level         string
		expectedLevel zerolog.Level
	}{
		{"debug level", "debug", zerolog.DebugLevel},
		{"info level", "info", zerolog.InfoLevel},
		{"warn level", "warn", zerolog.WarnLevel},
		{"warning alias", "warning", zerolog.WarnLevel},
		{"error level", "error", zerolog.ErrorLevel},
		{"fatal level", "fatal", zerolog.FatalLevel},
		{"panic level", "panic", zerolog.PanicLevel},
		{"disabled level", "disabled", zerolog.Disabled},
		{"off alias", "off", zerolog.Disabled},
		{"unknown defaults to info", "unknown", zerolog.InfoLevel},
		{"empty defaults to info", "", zerolog.InfoLevel},
		{"mixed case", "DEBUG", zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLoggerWithLevel(tt.level)
			assert.NotNil(t, logger)
			assert.Equal(t, tt.expectedLevel, zerolog.GlobalLevel())
		})
	}
}

func TestWithField(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	output := captureOutput(func() {
		logger := NewLogger().
			WithField("tracker_id", 42).
			WithField("scoped_id", 7)
		logger.Info("ticket event")
	})

	assert.Contains(t, output, "ticket event")
	assert.Contains(t, output, `"tracker_id":42`)
	assert.Contains(t, output, `"scoped_id":7`)
}

func TestWithFields(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	output := captureOutput(func() {
		logger := NewLogger().WithFields(map[string]interface{}{
			"tracker":     "mytracker",
			"ticket_id":   123,
			"resolved":    true,
			"unset_field": nil,
		})
		logger.Info("fanout complete")
	})

	assert.Contains(t, output, "fanout complete")
	assert.Contains(t, output, `"tracker":"mytracker"`)
	assert.Contains(t, output, `"ticket_id":123`)
	assert.Contains(t, output, `"resolved":true`)
	assert.Contains(t, output, `"unset_field":null`)
}

func TestWithFieldReturnsNewInstance(t *testing.T) {
	original := NewLogger()
	derived := original.WithField("k", "v")
	assert.NotSame(t, original, derived)

	withFields := original.WithFields(map[string]interface{}{"k": "v"})
	assert.NotSame(t, original, withFields)
}
