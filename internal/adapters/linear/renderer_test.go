package linear_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/workbench/internal/adapters/linear"
)

func newRenderer(t *testing.T) (*linear.Renderer, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	var stdout, stderr bytes.Buffer
	return linear.NewRenderer(&stdout, &stderr), &stdout, &stderr
}

func TestRenderer_Plan(t *testing.T) {
	r, _, stderr := newRenderer(t)
	r.OnPlanEmit([]string{"app", "lib"})
	assert.Equal(t, "Building 2 target(s): app, lib\n", stderr.String())
}

func TestRenderer_LogLinesArePrefixed(t *testing.T) {
	r, stdout, _ := newRenderer(t)
	start := time.Now()

	r.OnTargetStart("1", "app", start)
	r.OnTargetLog("1", []byte("first\nsec"))
	r.OnTargetLog("1", []byte("ond\npartial"))
	r.OnTargetComplete("1", start.Add(time.Second), "built", nil)

	assert.Equal(t, "[app] first\n[app] second\n[app] partial\n", stdout.String())
}

func TestRenderer_Statuses(t *testing.T) {
	tests := []struct {
		status string
		err    error
		want   string
	}{
		{status: "built", want: "[app] ✓ Built in 1.5s\n"},
		{status: "up-to-date", want: "[app] ~ Up to date\n"},
		{status: "no-inputs", want: "[app] ○ No inputs\n"},
		{status: "dry-run", want: "[app] ● Would build\n"},
		{status: "partial", want: "[app] ! Partially built in 1.5s\n"},
		{status: "failed", err: errors.New("resource not found"), want: "[app] ✗ Failed after 1.5s: resource not found\n"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			r, _, stderr := newRenderer(t)
			start := time.Now()

			r.OnTargetStart("1", "app", start)
			r.OnTargetComplete("1", start.Add(1500*time.Millisecond), tt.status, tt.err)

			assert.Equal(t, tt.want, stderr.String())
		})
	}
}

func TestRenderer_UnknownSpanIgnored(t *testing.T) {
	r, stdout, stderr := newRenderer(t)
	r.OnTargetLog("missing", []byte("x\n"))
	r.OnTargetComplete("missing", time.Now(), "built", nil)

	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRenderer_StopFlushes(t *testing.T) {
	r, stdout, _ := newRenderer(t)
	r.OnTargetStart("1", "app", time.Now())
	r.OnTargetLog("1", []byte("dangling"))

	require.NoError(t, r.Stop())
	assert.Equal(t, "[app] dangling\n", stdout.String())
}
