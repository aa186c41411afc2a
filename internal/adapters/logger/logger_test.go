package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/workbench/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func newLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)
	return l, buf
}

func TestLogger_InfoWarn(t *testing.T) {
	l, buf := newLogger(t)

	l.Info("loaded build.json")
	l.Warn("no targets")

	assert.Equal(t, "loaded build.json\n! no targets\n", buf.String())
}

func TestLogger_QuietDropsInfo(t *testing.T) {
	l, buf := newLogger(t)
	l.SetQuiet(true)

	l.Info("hidden")
	l.Warn("shown")

	assert.Equal(t, "! shown\n", buf.String())

	l.SetQuiet(false)
	l.Info("visible again")
	assert.Contains(t, buf.String(), "visible again")
}

func TestLogger_ErrorNil(t *testing.T) {
	l, buf := newLogger(t)
	l.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_ErrorPlain(t *testing.T) {
	l, buf := newLogger(t)
	l.Error(errors.New("boom"))
	assert.Equal(t, "✗ Error: boom\n", buf.String())
}

func TestLogger_JSON(t *testing.T) {
	l, buf := newLogger(t)
	l.SetJSON(true)

	l.Error(errors.New("boom"))

	assert.Contains(t, buf.String(), `"msg":"operation failed"`)
	assert.Contains(t, buf.String(), `"error":"boom"`)
}

func TestFormatErrorEntries(t *testing.T) {
	got := logger.FormatErrorEntries([]string{"build failed", "builder failed\nexit 1", "no such file"})

	want := "Error: build failed\n\n  Caused by:\n    → builder failed\n      exit 1\n    → no such file"
	assert.Equal(t, want, got)
}

func TestCollectErrorEntries(t *testing.T) {
	err := zerr.Wrap(errors.New("permission denied"), "failed to read build description")

	entries := logger.CollectErrorEntries(err)
	require.NotEmpty(t, entries)
	assert.Contains(t, entries[len(entries)-1], "permission denied")
}
