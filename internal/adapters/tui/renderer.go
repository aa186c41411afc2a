package tui

import (
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/workbench/internal/core/ports"
)

const durationPrecision = 10 * time.Millisecond

var _ ports.Renderer = (*Renderer)(nil)

// Renderer wraps the Bubble Tea model as a ports.Renderer.
type Renderer struct {
	program *tea.Program
	model   *Model
	errCh   chan error

	startOnce sync.Once
	stopOnce  sync.Once
	started   bool
	stopping  atomic.Bool
	stopErr   error
	onQuit    func()
}

// NewRenderer creates a new TUI renderer.
func NewRenderer(model *Model, opts ...tea.ProgramOption) *Renderer {
	return &Renderer{
		program: tea.NewProgram(model, opts...),
		model:   model,
		errCh:   make(chan error, 1),
	}
}

// OnQuit registers fn to run when the user leaves the TUI before Stop.
func (r *Renderer) OnQuit(fn func()) *Renderer {
	r.onQuit = fn
	return r
}

// Start launches the TUI in a background goroutine.
func (r *Renderer) Start() {
	r.startOnce.Do(func() {
		r.started = true
		go func() {
			_, err := r.program.Run()
			if !r.stopping.Load() && r.onQuit != nil {
				r.onQuit()
			}
			r.errCh <- err
		}()
	})
}

// Stop asks the TUI to quit and waits for its final frame.
func (r *Renderer) Stop() error {
	r.stopOnce.Do(func() {
		if !r.started {
			return
		}
		r.stopping.Store(true)
		r.program.Quit()
		r.stopErr = <-r.errCh
	})
	return r.stopErr
}

// Model returns the model driven by the renderer. Read it only after Stop.
func (r *Renderer) Model() *Model {
	return r.model
}

// OnPlanEmit forwards the plan to the TUI.
func (r *Renderer) OnPlanEmit(targets []string) {
	r.program.Send(MsgPlan{Targets: targets})
}

// OnTargetStart forwards target start events to the TUI.
func (r *Renderer) OnTargetStart(spanID, name string, startTime time.Time) {
	r.program.Send(MsgTargetStart{SpanID: spanID, Name: name, StartTime: startTime})
}

// OnTargetLog forwards process output to the TUI.
func (r *Renderer) OnTargetLog(spanID string, data []byte) {
	r.program.Send(MsgTargetLog{SpanID: spanID, Data: data})
}

// OnTargetComplete forwards target completion events to the TUI.
func (r *Renderer) OnTargetComplete(spanID string, endTime time.Time, status string, err error) {
	r.program.Send(MsgTargetComplete{SpanID: spanID, EndTime: endTime, Status: status, Err: err})
}
