package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hielopolar/polar/internal/asset"
	"github.com/hielopolar/polar/internal/state"
)

// renderHeader renders the top bar: logo, load phase, per-status counts and
// remote state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	sep := styles.Text.Render("  ")

	parts := []string{styles.Logo.Render("❄ hielo polar")}

	switch m.snapshot.Phase {
	case state.PhaseLoading:
		parts = append(parts, styles.WarningText.Render("Cargando..."))
	case state.PhaseErrored:
		msg := "Error al cargar"
		if m.snapshot.LastError != nil {
			msg += ": " + truncate(m.snapshot.LastError.Error(), 40)
		}
		parts = append(parts, styles.DangerText.Render(msg))
	}

	parts = append(parts,
		styles.MutedText.Render("Total ")+styles.Text.Render(fmt.Sprintf("%d", len(m.snapshot.Assets))))

	if m.width >= LayoutCompactWidth {
		counts := m.snapshot.Assets.CountByStatus()
		for _, st := range asset.Statuses() {
			parts = append(parts,
				styles.StatusText(st).Background(lipgloss.Color(m.theme.Surface)).Render("● ")+
					styles.MutedText.Render(st.Label()+" ")+
					styles.Text.Render(fmt.Sprintf("%d", counts[st])))
		}
	}

	parts = append(parts, m.remoteIndicator(styles))

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

func (m Model) remoteIndicator(styles Styles) string {
	switch {
	case !m.remote:
		return styles.FaintText.Render("○ local")
	case m.pulling:
		return styles.InfoText.Render("◌ sincronizando")
	case m.snapshot.IsOffline():
		return styles.DangerText.Render("● sin conexión")
	case m.snapshot.Unsynced > 0:
		return styles.WarningText.Render(fmt.Sprintf("● %d sin sincronizar", m.snapshot.Unsynced))
	case m.snapshot.PullError != nil:
		return styles.WarningText.Render("● reintentando")
	case !m.snapshot.LastPull.IsZero():
		return styles.SuccessText.Render("● remoto ") + styles.FaintText.Render(m.snapshot.LastPull.Format("15:04:05"))
	default:
		return styles.SuccessText.Render("● remoto")
	}
}

// renderFooter renders the key hints for the active view.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	var hints [][2]string
	switch m.view {
	case ViewLogs:
		hints = [][2]string{{"space", "seguir"}, {"v", "nivel"}, {"j/k", "desplazar"}, {"esc", "volver"}, {"?", "ayuda"}}
	default:
		hints = [][2]string{{"a", "añadir"}, {"e", "editar"}, {"s", "estado"}, {"d", "eliminar"}, {"f", "filtro: " + m.filterLabel()}, {"l", "registro"}}
		if m.remote {
			hints = append(hints, [2]string{"r", "sincronizar"})
		}
		hints = append(hints, [2]string{"?", "ayuda"}, [2]string{"q", "salir"})
	}
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, styles.AccentText.Render(h[0])+styles.MutedText.Render(" "+h[1]))
	}
	return styles.Footer.Width(m.width).Render(strings.Join(parts, styles.FaintText.Render("  ")))
}
