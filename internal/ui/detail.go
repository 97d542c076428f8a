package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderDetail renders every field of the selected asset in a bordered pane.
func (m Model) renderDetail(width, height int) string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		BorderBackground(lipgloss.Color(m.theme.Background)).
		Background(lipgloss.Color(m.theme.SurfaceAlt)).
		Padding(0, 1).
		Width(width - 2).
		Height(height - 2)

	a, ok := m.selectedAsset()
	if !ok {
		return box.Render(styles.MutedText.Render("Selecciona un conservador"))
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(truncate(a.Model, inner-len(a.ID)-3)))
	b.WriteString(styles.FaintText.Render("  " + a.ID))
	b.WriteString("\n")
	b.WriteString(m.theme.Styles().StatusBadge(a.Status).Render(a.Status.Label()))
	b.WriteString("\n\n")

	coords := ""
	if a.Coordinates != nil {
		coords = a.Coordinates.String()
	}
	fields := [][2]string{
		{"Número de serie", a.SerialNumber},
		{"Ubicación", a.Location},
		{"Asignado a", a.AssignedTo},
		{"Último mantenimiento", a.LastMaintenance},
		{"Capacidad", a.Capacity},
		{"Rango de temperatura", a.TemperatureRange},
		{"Coordenadas", coords},
		{"Imagen", a.ImageSrc},
	}
	for _, f := range fields {
		b.WriteString(styles.MutedText.Render(f[0]))
		b.WriteString("\n")
		b.WriteString(styles.Text.Render(truncate(orDash(f[1]), inner)))
		b.WriteString("\n")
	}
	return box.Render(strings.TrimRight(b.String(), "\n"))
}
