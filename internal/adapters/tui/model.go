// Package tui renders build progress as an interactive terminal view.
package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	targetListWidthRatio = 0.3
	logPaneBorderWidth   = 4
	maxLogLines          = 1000
)

// TargetState is the lifecycle position of a target in the view.
type TargetState string

const (
	// StatePending indicates the target is waiting to be built.
	StatePending TargetState = "Pending"
	// StateRunning indicates the target is being built.
	StateRunning TargetState = "Running"
	// StateDone indicates the target finished without error.
	StateDone TargetState = "Done"
	// StateError indicates the target failed.
	StateError TargetState = "Error"
)

// TargetNode represents a single target in the list.
type TargetNode struct {
	Name  string
	State TargetState
	// Result is the build status reported on completion.
	Result   string
	Err      error
	Started  time.Time
	Duration time.Duration
	Logs     []string
	partial  string
}

// appendLog splits data into lines, keeping the newest maxLogLines.
func (n *TargetNode) appendLog(data []byte) {
	text := n.partial + string(data)
	lines := strings.Split(text, "\n")
	n.partial = lines[len(lines)-1]
	n.Logs = append(n.Logs, lines[:len(lines)-1]...)
	if over := len(n.Logs) - maxLogLines; over > 0 {
		n.Logs = n.Logs[over:]
	}
}

// lines returns the complete log lines plus any unterminated tail.
func (n *TargetNode) lines() []string {
	if n.partial == "" {
		return n.Logs
	}
	return append(append([]string(nil), n.Logs...), n.partial)
}

// Model represents the main TUI state.
type Model struct {
	Targets      []*TargetNode
	SpanMap      map[string]*TargetNode
	ActiveTarget int
	SelectedIdx  int
	ListOffset   int
	ListHeight   int
	LogWidth     int
	LogHeight    int
	FollowMode   bool
}

// NewModel creates a new TUI model with default settings.
func NewModel() *Model {
	return &Model{
		SpanMap:      make(map[string]*TargetNode),
		ActiveTarget: -1,
		FollowMode:   true,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) ensureVisible() {
	if m.ListHeight <= 0 {
		return
	}
	if m.SelectedIdx < m.ListOffset {
		m.ListOffset = m.SelectedIdx
	} else if m.SelectedIdx >= m.ListOffset+m.ListHeight {
		m.ListOffset = m.SelectedIdx - m.ListHeight + 1
	}
}

func (m *Model) selectTarget(idx int) {
	m.SelectedIdx = idx
	m.ActiveTarget = idx
	m.ensureVisible()
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop // message dispatch
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "k", "up":
			if m.SelectedIdx > 0 {
				m.FollowMode = false
				m.selectTarget(m.SelectedIdx - 1)
			}
		case "j", "down":
			if m.SelectedIdx < len(m.Targets)-1 {
				m.FollowMode = false
				m.selectTarget(m.SelectedIdx + 1)
			}
		case "esc":
			m.FollowMode = true
			for i, t := range m.Targets {
				if t.State == StateRunning {
					m.selectTarget(i)
					break
				}
			}
		}

	case tea.WindowSizeMsg:
		listWidth := int(float64(msg.Width) * targetListWidthRatio)
		m.LogWidth = msg.Width - listWidth - logPaneBorderWidth

		headerHeight := lipgloss.Height(titleStyle.Render("TARGETS") + "\n\n")
		m.ListHeight = msg.Height - headerHeight
		m.LogHeight = msg.Height - lipgloss.Height(titleStyle.Render("LOGS"))
		m.ensureVisible()

	case MsgPlan:
		m.Targets = make([]*TargetNode, len(msg.Targets))
		m.SpanMap = make(map[string]*TargetNode)
		for i, name := range msg.Targets {
			m.Targets[i] = &TargetNode{Name: name, State: StatePending}
		}
		m.SelectedIdx, m.ListOffset, m.ActiveTarget = 0, 0, -1

	case MsgTargetStart:
		// A target requested twice appears twice; take the first pending one.
		for i, node := range m.Targets {
			if node.Name != msg.Name || node.State != StatePending {
				continue
			}
			node.State = StateRunning
			node.Started = msg.StartTime
			m.SpanMap[msg.SpanID] = node
			if m.FollowMode {
				m.selectTarget(i)
			}
			break
		}

	case MsgTargetLog:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			node.appendLog(msg.Data)
		}

	case MsgTargetComplete:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			node.Result = msg.Status
			node.Err = msg.Err
			node.Duration = msg.EndTime.Sub(node.Started)
			if msg.Err != nil {
				node.State = StateError
			} else {
				node.State = StateDone
			}
		}
	}

	return m, nil
}
