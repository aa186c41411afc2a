// Package shell runs external processes for builders.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/workbench/internal/core/domain"
	"go.trai.ch/workbench/internal/core/ports"
	"go.trai.ch/zerr"
)

// stderrTailLines bounds how much stderr is attached to a failure.
const stderrTailLines = 20

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor. Output of callers that pass nil writers goes to logger.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Execute runs cmd to completion. The process inherits the current
// environment with cmd.Env applied on top.
func (e *Executor) Execute(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) error {
	if len(cmd.Args) == 0 {
		return nil
	}

	var logs []*logWriter
	if stdout == nil {
		w := &logWriter{logger: e.logger, level: "info"}
		logs = append(logs, w)
		stdout = w
	}
	if stderr == nil {
		w := &logWriter{logger: e.logger, level: "warn"}
		logs = append(logs, w)
		stderr = w
	}
	defer func() {
		for _, w := range logs {
			_ = w.Close()
		}
	}()

	tail := &tailWriter{max: stderrTailLines}

	c := exec.CommandContext(ctx, cmd.Args[0], cmd.Args[1:]...) //nolint:gosec // command comes from the build description
	c.Dir = cmd.Dir
	c.Env = mergeEnv(os.Environ(), cmd.Env)
	c.Stdout = stdout
	c.Stderr = io.MultiWriter(stderr, tail)

	if err := c.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		wrapped := zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()), "command", strings.Join(cmd.Args, " "))
		wrapped = zerr.With(wrapped, "exit_code", exitCode)
		if s := tail.String(); s != "" {
			wrapped = zerr.With(wrapped, "stderr", s)
		}
		return wrapped
	}

	return nil
}

// mergeEnv applies overrides to a KEY=VALUE environment.
func mergeEnv(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}

	env := make([]string, 0, len(base)+len(overrides))
	for _, entry := range base {
		k, _, ok := strings.Cut(entry, "=")
		if _, overridden := overrides[k]; ok && overridden {
			continue
		}
		env = append(env, entry)
	}
	for k, v := range overrides {
		env = append(env, k+"="+v)
	}
	return env
}

// logWriter forwards complete lines to a logger.
type logWriter struct {
	logger ports.Logger
	level  string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if w.logger == nil || msg == "" {
		return
	}
	if w.level == "info" {
		w.logger.Info(msg)
	} else {
		w.logger.Warn(msg)
	}
}

// tailWriter keeps the last max lines written to it.
type tailWriter struct {
	max   int
	lines []string
	part  []byte
}

func (w *tailWriter) Write(p []byte) (int, error) {
	w.part = append(w.part, p...)
	for {
		i := bytes.IndexByte(w.part, '\n')
		if i < 0 {
			break
		}
		w.push(string(w.part[:i]))
		w.part = w.part[i+1:]
	}
	return len(p), nil
}

func (w *tailWriter) push(line string) {
	w.lines = append(w.lines, strings.TrimSuffix(line, "\r"))
	if len(w.lines) > w.max {
		w.lines = w.lines[len(w.lines)-w.max:]
	}
}

func (w *tailWriter) String() string {
	lines := w.lines
	if len(w.part) > 0 {
		lines = append(append([]string(nil), lines...), string(w.part))
	}
	return strings.Join(lines, "\n")
}
