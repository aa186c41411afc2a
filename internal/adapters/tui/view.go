package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/workbench/internal/core/domain"
	"go.trai.ch/workbench/internal/ui/style"
)

// View renders the UI.
func (m *Model) View() string {
	if m.ListHeight == 0 {
		return "Initializing..."
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.targetList(),
		m.logPane(),
	)
}

func (m *Model) targetList() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("TARGETS") + "\n\n")

	start := m.ListOffset
	end := min(m.ListOffset+m.ListHeight, len(m.Targets))
	start = min(start, end)

	for i := start; i < end; i++ {
		s.WriteString(m.renderTargetRow(i, m.Targets[i]) + "\n")
	}

	return listStyle.Render(s.String())
}

func (m *Model) renderTargetRow(index int, node *TargetNode) string {
	icon, rowStyle := targetAppearance(node)

	cursor := "  "
	if index == m.SelectedIdx {
		cursor = selectedStyle.Render("> ")
		if node.State == StatePending || node.State == StateRunning {
			rowStyle = selectedStyle
		}
	}

	content := fmt.Sprintf("%s %s", icon, node.Name)
	if node.State == StateDone || node.State == StateError {
		content += " " + node.Duration.Round(durationPrecision).String()
	}
	return cursor + rowStyle.Render(content)
}

func targetAppearance(node *TargetNode) (string, lipgloss.Style) {
	switch node.State {
	case StateRunning:
		return style.Dot, targetRunningStyle
	case StateError:
		return style.Cross, targetErrorStyle
	case StateDone:
		switch domain.BuildStatus(node.Result) {
		case domain.StatusUpToDate:
			return style.Tilde, targetSkippedStyle
		case domain.StatusNoInputs:
			return style.Circle, targetSkippedStyle
		case domain.StatusDryRun:
			return style.Dot, targetSkippedStyle
		case domain.StatusPartial:
			return style.Warning, targetPartialStyle
		default:
			return style.Check, targetDoneStyle
		}
	default:
		return style.Circle, targetPendingStyle
	}
}

func (m *Model) logPane() string {
	if m.ActiveTarget < 0 || m.ActiveTarget >= len(m.Targets) {
		return logStyle.Render(titleStyle.Render("LOGS (Waiting...)"))
	}

	node := m.Targets[m.ActiveTarget]
	mode := " (Following)"
	if !m.FollowMode {
		mode = " (Manual)"
	}
	header := titleStyle.Render("LOGS: " + node.Name + mode)

	lines := node.lines()
	if node.Err != nil {
		lines = append(append([]string(nil), lines...), targetErrorStyle.Render(node.Err.Error()))
	}
	if m.LogHeight > 0 && len(lines) > m.LogHeight {
		lines = lines[len(lines)-m.LogHeight:]
	}

	return logStyle.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			strings.Join(lines, "\n"),
		),
	)
}
