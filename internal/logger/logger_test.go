package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{input: "debug", expected: zapcore.DebugLevel},
		{input: "info", expected: zapcore.InfoLevel},
		{input: "", expected: zapcore.InfoLevel},
		{input: "warn", expected: zapcore.WarnLevel},
		{input: "warning", expected: zapcore.WarnLevel},
		{input: "error", expected: zapcore.ErrorLevel},
		{input: "ERROR", expected: zapcore.ErrorLevel},
		{input: "loud", expected: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run("level "+tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestInitialize(t *testing.T) {
	Initialize(Options{Level: "debug"})
	assert.NotNil(t, current())

	// Logging through the package functions must not panic.
	Debugf("debug %s", "message")
	Infof("info %s", "message")
}
