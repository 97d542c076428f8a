package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hielopolar/polar/internal/logtail"
)

var logLevels = []string{"debug", "info", "warn", "error"}

type logState struct {
	raw    []string
	follow bool
	level  string
	dirty  bool
	err    error
}

func newLogState() logState {
	return logState{follow: true, level: "info"}
}

type logLinesMsg struct {
	lines []string
	err   error
}

func readLogsCmd(path string) tea.Cmd {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogTailLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	m.logs.err = msg.err
	if msg.err == nil {
		m.logs.raw = msg.lines
	}
	m.logs.dirty = true
	m.refreshLogViewport()
}

// resizeLogViewport fits the viewport to the content area minus the status line.
func (m *Model) resizeLogViewport() {
	if m.width == 0 {
		return
	}
	h := m.contentHeight() - 1
	if m.logView.Width == 0 {
		m.logView = viewport.New(m.width, h)
	}
	m.logView.Width = m.width
	m.logView.Height = h
	m.logs.dirty = true
	m.refreshLogViewport()
}

func (m *Model) refreshLogViewport() {
	if m.logView.Width == 0 || !m.logs.dirty {
		return
	}
	m.logView.SetContent(m.renderLogContent())
	m.logs.dirty = false
	if m.logs.follow {
		m.logView.GotoBottom()
	}
}

func (m Model) renderLogContent() string {
	styles := m.theme.Styles()
	lines := logtail.FormatLines(m.logs.raw, m.logs.level)
	if len(lines) == 0 {
		return styles.MutedText.Render("Sin entradas en el registro")
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = m.colorizeLogLine(line, styles)
	}
	return strings.Join(out, "\n")
}

// colorizeLogLine highlights the level token of a formatted line.
func (m Model) colorizeLogLine(line string, styles Styles) string {
	for _, lvl := range []string{"ERROR", "WARN", "INFO", "DEBUG"} {
		idx := strings.Index(line, " "+lvl+" ")
		if idx < 0 {
			continue
		}
		return styles.FaintText.Render(line[:idx+1]) +
			m.levelStyle(lvl, styles).Render(lvl) +
			styles.Text.Render(line[idx+1+len(lvl):])
	}
	return styles.Text.Render(line)
}

func (m Model) levelStyle(level string, styles Styles) lipgloss.Style {
	switch level {
	case "INFO":
		return styles.SuccessText
	case "WARN":
		return styles.WarningText
	case "ERROR":
		return styles.DangerText
	case "DEBUG":
		return styles.InfoText
	default:
		return styles.Text
	}
}

func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	follow := "off"
	if m.logs.follow {
		follow = "on"
	}
	status := fmt.Sprintf("Registro %d líneas · nivel ≥ %s · seguir %s", len(m.logs.raw), m.logs.level, follow)
	if m.logs.err != nil {
		status = "No se pudo leer el registro: " + m.logs.err.Error()
	}
	line := styles.FaintText.Render(truncate(status, m.width-len(m.logPath)-4)) +
		"  " + styles.AccentText.Render(m.logPath)
	vp := m.logView
	vp.Height = m.contentHeight() - 1
	return vp.View() + "\n" + lipgloss.NewStyle().Width(m.width).Render(line)
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logs.follow = !m.logs.follow
		if m.logs.follow {
			m.logView.GotoBottom()
			return m, readLogsCmd(m.logPath)
		}
	case key.Matches(msg, m.keys.CycleLevel):
		m.logs.level = nextLevel(m.logs.level)
		m.logs.dirty = true
		m.refreshLogViewport()
	case key.Matches(msg, m.keys.Top):
		m.logView.GotoTop()
		m.logs.follow = false
	case key.Matches(msg, m.keys.Bottom):
		m.logView.GotoBottom()
		m.logs.follow = true
	case key.Matches(msg, m.keys.Down):
		m.logView.ScrollDown(1)
		m.logs.follow = false
	case key.Matches(msg, m.keys.Up):
		m.logView.ScrollUp(1)
		m.logs.follow = false
	case key.Matches(msg, m.keys.HalfPageDown):
		m.logView.HalfPageDown()
		m.logs.follow = false
	case key.Matches(msg, m.keys.HalfPageUp):
		m.logView.HalfPageUp()
		m.logs.follow = false
	}
	return m, nil
}

func nextLevel(current string) string {
	for i, l := range logLevels {
		if l == current {
			return logLevels[(i+1)%len(logLevels)]
		}
	}
	return logLevels[0]
}
