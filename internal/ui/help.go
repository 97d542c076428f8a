package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title    string
	bindings []key.Binding
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	k := m.keys

	sections := []helpSection{
		{"Navegación", []key.Binding{k.Up, k.Down, k.Top, k.Bottom, k.HalfPageDown, k.Escape}},
		{"Conservadores", []key.Binding{k.Add, k.Edit, k.CycleStatus, k.Delete, k.CycleFilter, k.ToggleDetail}},
		{"Registro", []key.Binding{k.ViewLogs, k.ToggleFollow, k.CycleLevel}},
		{"Formulario", []key.Binding{k.NextField, k.PrevField, k.Submit}},
		{"General", []key.Binding{k.Pull, k.CycleTheme, k.Help, k.Quit}},
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Atajos de teclado"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(14)
	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, binding := range section.bindings {
			h := binding.Help()
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}
	if !m.remote {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("Sin base de datos remota: solo copia local."))
	}
	return m.modal(b.String(), 48)
}
