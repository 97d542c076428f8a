package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hielopolar/polar/internal/notify"
)

type toast struct {
	notice  notify.Notice
	expires time.Time
}

// pushToast shows n, dropping the oldest toast past MaxToasts.
func (m *Model) pushToast(n notify.Notice) {
	at := n.At
	if at.IsZero() {
		at = time.Now()
	}
	m.toasts = append(m.toasts, toast{notice: n, expires: at.Add(ToastTTL)})
	if len(m.toasts) > MaxToasts {
		m.toasts = m.toasts[len(m.toasts)-MaxToasts:]
	}
	m.resizeLogViewport()
}

func (m *Model) expireToasts(now time.Time) {
	var kept []toast
	for _, t := range m.toasts {
		if now.Before(t.expires) {
			kept = append(kept, t)
		}
	}
	if len(kept) != len(m.toasts) {
		m.toasts = kept
		m.resizeLogViewport()
	}
}

// renderToasts renders one line per toast, newest last.
func (m Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bar := lipgloss.NewStyle().Background(lipgloss.Color(m.theme.SurfaceAlt)).Width(m.width)

	lines := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		icon, title := styles.SuccessText.Render(" ✓ "), styles.SuccessText
		if t.notice.Kind == notify.Error {
			icon, title = styles.DangerText.Render(" ✗ "), styles.DangerText
		}
		text := icon + title.Render(t.notice.Title)
		if d := strings.TrimSpace(t.notice.Description); d != "" {
			text += styles.MutedText.Render("  " + truncate(d, m.width-lipgloss.Width(t.notice.Title)-8))
		}
		lines = append(lines, bar.Render(text))
	}
	return strings.Join(lines, "\n")
}
