// Package linear renders build progress as plain, prefixed lines.
package linear

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/workbench/internal/core/domain"
	"go.trai.ch/workbench/internal/core/ports"
	"go.trai.ch/workbench/internal/ui/output"
	"go.trai.ch/workbench/internal/ui/style"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer with one line per event.
// Process output goes to stdout, status lines to stderr.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu      sync.Mutex
	targets map[string]*targetState // spanID -> state
}

type targetState struct {
	name      string
	startTime time.Time
	buf       bytes.Buffer
}

// NewRenderer creates a Renderer. Nil writers default to os.Stdout and os.Stderr.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		output:  output.NewWithProfile(stderr, output.ColorProfileANSI),
		targets: make(map[string]*targetState),
	}
}

// Stop flushes partial lines of targets that never completed.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, st := range r.targets {
		r.flushLocked(st)
	}
	return nil
}

// OnPlanEmit prints the targets about to be built.
func (r *Renderer) OnPlanEmit(targets []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Building %d target(s): %s\n", len(targets), strings.Join(targets, ", "))
}

// OnTargetStart registers the target. Nothing is printed until it completes or logs.
func (r *Renderer) OnTargetStart(spanID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.targets[spanID] = &targetState{name: name, startTime: startTime}
}

// OnTargetLog prints complete lines with the target prefix and buffers the rest.
func (r *Renderer) OnTargetLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.targets[spanID]
	if !ok {
		return
	}

	st.buf.Write(data)
	for {
		i := bytes.IndexByte(st.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		line := st.buf.Next(i + 1)
		r.printLineLocked(st.name, line)
	}
}

// OnTargetComplete prints the outcome of a target.
func (r *Renderer) OnTargetComplete(spanID string, endTime time.Time, status string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.targets[spanID]
	if !ok {
		return
	}
	r.flushLocked(st)
	delete(r.targets, spanID)

	prefix := r.output.String(fmt.Sprintf("[%s]", st.name)).Faint().String()
	duration := endTime.Sub(st.startTime).Round(time.Millisecond)

	if err != nil {
		symbol := r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n", prefix, symbol, duration, err)
		return
	}

	switch domain.BuildStatus(status) {
	case domain.StatusUpToDate:
		symbol := r.output.String(style.Tilde).Foreground(termenv.ANSIBrightBlack).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Up to date\n", prefix, symbol)
	case domain.StatusNoInputs:
		symbol := r.output.String(style.Circle).Foreground(termenv.ANSIBrightBlack).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s No inputs\n", prefix, symbol)
	case domain.StatusDryRun:
		symbol := r.output.String(style.Dot).Foreground(termenv.ANSIYellow).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Would build\n", prefix, symbol)
	case domain.StatusPartial:
		symbol := r.output.String(style.Warning).Foreground(termenv.ANSIYellow).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Partially built in %v\n", prefix, symbol, duration)
	default:
		symbol := r.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Built in %v\n", prefix, symbol, duration)
	}
}

// flushLocked must be called with r.mu held.
func (r *Renderer) flushLocked(st *targetState) {
	if st.buf.Len() > 0 {
		r.printLineLocked(st.name, st.buf.Bytes())
		st.buf.Reset()
	}
}

// printLineLocked must be called with r.mu held.
func (r *Renderer) printLineLocked(name string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}
	_, _ = fmt.Fprintf(r.stdout, "[%s] %s\n", name, line)
}
