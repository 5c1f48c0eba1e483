package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	for input, want := range map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	} {
		got, err := ParseLevel(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got, input)
	}
	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	for _, format := range []string{"", "console", "json"} {
		lg, err := New("debug", format)
		require.NoError(t, err, format)
		require.True(t, lg.Core().Enabled(zapcore.DebugLevel))
	}

	lg, err := New("warn", "json")
	require.NoError(t, err)
	require.False(t, lg.Core().Enabled(zapcore.InfoLevel))

	_, err = New("info", "xml")
	require.Error(t, err)
	_, err = New("nope", "json")
	require.Error(t, err)
}
