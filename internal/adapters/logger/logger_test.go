package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/TopPano/providence-engine/internal/adapters/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

func TestLogger_Levels(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := logger.NewWithOutput(buf)

	lg.Info("some message")
	lg.Warn("some warning")
	lg.Error(os.ErrPermission)

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "some message")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "some warning")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "permission denied")
}

func TestLogger_SetLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := logger.NewWithOutput(buf)

	lg.SetLevel("warn")
	lg.Info("hidden")
	lg.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	lg.SetLevel("not-a-level")
	lg.Info("still hidden")
	assert.NotContains(t, buf.String(), "still hidden")
}

func TestLogger_NilError(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := logger.NewWithOutput(buf)

	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_WithAddsAttributes(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := logger.NewWithOutput(buf)
	lg.SetJSON(true)

	child := lg.With("build_id", "abcdefghij")
	child.Info("unpacking")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "unpacking", record["msg"])
	assert.Equal(t, "abcdefghij", record["build_id"])
}

func TestLogger_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := logger.NewWithOutput(buf)
	lg.SetJSON(true)

	lg.Error(errors.New("push failed"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "push failed", record["error"])
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "standard error",
			err:  errors.New("simple"),
			want: "simple",
		},
		{
			name: "zerr chain",
			err:  zerr.Wrap(zerr.Wrap(errors.New("connection refused"), "failed to dial"), "failed to save metadata"),
			want: "failed to save metadata\ncaused by:\n  failed to dial\n  connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatError(tt.err))
		})
	}
}
