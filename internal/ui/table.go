package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hielopolar/polar/internal/asset"
)

type column struct {
	title string
	width int
	value func(asset.Asset) string
}

// columns picks the visible columns for the available width.
func (m Model) columns(width int) []column {
	cols := []column{
		{"ID", 9, func(a asset.Asset) string { return a.ID }},
		{"Modelo", 18, func(a asset.Asset) string { return a.Model }},
		{"Serie", 14, func(a asset.Asset) string { return a.SerialNumber }},
		{"Estado", 15, func(a asset.Asset) string { return a.Status.Label() }},
	}
	if width >= LayoutWideWidth || !m.detailVisible() {
		cols = append(cols,
			column{"Ubicación", 24, func(a asset.Asset) string { return orDash(a.Location) }},
			column{"Asignado a", 18, func(a asset.Asset) string { return orDash(a.AssignedTo) }},
		)
	}
	cols = append(cols, column{"Capacidad", 10, func(a asset.Asset) string { return orDash(a.Capacity) }})

	// Shrink the widest free-form column until the table fits.
	total := func() int {
		n := 0
		for _, c := range cols {
			n += c.width + 1
		}
		return n
	}
	for total() > width && len(cols) > 4 {
		cols = cols[:len(cols)-1]
	}
	if over := total() - width; over > 0 && cols[1].width-over >= 8 {
		cols[1].width -= over
	}
	return cols
}

func (m Model) detailVisible() bool {
	return m.showDetail && m.width >= LayoutCompactWidth
}

// tableRows is the number of data rows that fit below the column header.
func (m Model) tableRows() int {
	rows := m.contentHeight() - 1
	if rows < 1 {
		return 1
	}
	return rows
}

// renderAssets renders the table and, when there is room, the detail pane.
func (m Model) renderAssets() string {
	height := m.contentHeight()
	tableWidth := m.width
	if m.detailVisible() {
		tableWidth = m.width * 3 / 5
	}
	table := m.renderTable(tableWidth, height)
	if !m.detailVisible() {
		return table
	}
	detail := m.renderDetail(m.width-tableWidth, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, table, detail)
}

func (m Model) renderTable(width, height int) string {
	styles := m.theme.Styles()
	bg := lipgloss.Color(m.theme.Background)
	base := lipgloss.NewStyle().Width(width).Background(bg)
	cols := m.columns(width)
	items := m.visibleAssets()

	var lines []string
	var head strings.Builder
	for _, c := range cols {
		head.WriteString(fit(c.title, c.width) + " ")
	}
	lines = append(lines, styles.MutedText.Bold(true).Width(width).Background(bg).Render(head.String()))

	if len(items) == 0 {
		msg := "No hay conservadores."
		if m.filter != "" {
			msg = fmt.Sprintf("No hay conservadores con estado %s.", m.filter.Label())
		}
		lines = append(lines, styles.FaintText.Width(width).Background(bg).Render(" "+msg))
	}

	rows := height - 1
	start := 0
	if m.selected >= rows {
		start = m.selected - rows + 1
	}
	for i := start; i < len(items) && i < start+rows; i++ {
		a := items[i]
		var row strings.Builder
		for _, c := range cols {
			cell := fit(c.value(a), c.width)
			if c.title == "Estado" && i != m.selected {
				cell = styles.StatusText(a.Status).Render(cell)
			}
			row.WriteString(cell + " ")
		}
		if i == m.selected {
			lines = append(lines, styles.Selected.Width(width).Render(row.String()))
			continue
		}
		lines = append(lines, styles.Text.Width(width).Background(bg).Render(row.String()))
	}
	for len(lines) < height {
		lines = append(lines, base.Render(""))
	}
	return strings.Join(lines, "\n")
}
