package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hielopolar/polar/internal/asset"
	"github.com/hielopolar/polar/internal/state"
)

type formField int

const (
	fieldID formField = iota
	fieldModel
	fieldSerial
	fieldStatus
	fieldLocation
	fieldLastMaintenance
	fieldAssignedTo
	fieldCapacity
	fieldTemperature
	fieldImage
	fieldCoordinates
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"ID",
	"Modelo *",
	"Número de serie",
	"Estado",
	"Ubicación",
	"Último mantenimiento",
	"Asignado a",
	"Capacidad",
	"Rango de temperatura",
	"URL de imagen",
	"Coordenadas (lng,lat)",
}

var fieldPlaceholders = [fieldCount]string{
	"CON-009",
	"Polar-3000XL",
	"PL3K-2023-001",
	"Disponible, En Uso, Mantenimiento, Retirado",
	"Almacén Central",
	"2024-01-15",
	"Cliente",
	"500L",
	"-25°C a -18°C",
	"https://...",
	"-99.1332,19.4326",
}

type formState struct {
	editing  bool
	original asset.Asset
	inputs   [fieldCount]textinput.Model
	focus    formField
	err      string
}

func newFormState(a asset.Asset, editing bool) formState {
	values := [fieldCount]string{
		a.ID, a.Model, a.SerialNumber, a.Status.Label(), a.Location, a.LastMaintenance,
		a.AssignedTo, a.Capacity, a.TemperatureRange, a.ImageSrc, "",
	}
	if a.Coordinates != nil {
		values[fieldCoordinates] = fmt.Sprintf("%g,%g", a.Coordinates.Lng(), a.Coordinates.Lat())
	}

	f := formState{editing: editing, original: a.Clone()}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = fieldPlaceholders[i]
		ti.CharLimit = 200
		ti.Prompt = ""
		ti.SetValue(values[i])
		f.inputs[i] = ti
	}
	f.focus = fieldModel
	if !editing {
		f.focus = fieldID
	}
	f.inputs[f.focus].Focus()
	return f
}

func (m *Model) openAddForm() {
	a := asset.Asset{Status: asset.StatusAvailable}
	if m.store != nil {
		a.ID = m.store.NewID()
	}
	m.form = newFormState(a, false)
	m.mode = modeForm
}

func (m *Model) openEditForm(a asset.Asset) {
	m.form = newFormState(a, true)
	m.mode = modeForm
}

func (f *formState) move(delta int) {
	f.inputs[f.focus].Blur()
	next := int(f.focus)
	for {
		next = (next + delta + int(fieldCount)) % int(fieldCount)
		// The id is fixed once an asset exists.
		if f.editing && formField(next) == fieldID {
			continue
		}
		break
	}
	f.focus = formField(next)
	f.inputs[f.focus].Focus()
}

func (f formState) value(field formField) string {
	return strings.TrimSpace(f.inputs[field].Value())
}

// build converts the inputs into an asset. A non-empty message names the
// first invalid field.
func (f formState) build() (asset.Asset, string) {
	a := asset.Asset{
		ID:               f.value(fieldID),
		Model:            f.value(fieldModel),
		SerialNumber:     f.value(fieldSerial),
		Location:         f.value(fieldLocation),
		LastMaintenance:  f.value(fieldLastMaintenance),
		AssignedTo:       f.value(fieldAssignedTo),
		Capacity:         f.value(fieldCapacity),
		TemperatureRange: f.value(fieldTemperature),
		ImageSrc:         f.value(fieldImage),
	}
	if f.editing {
		a.ID = f.original.ID
	}
	if a.ID == "" {
		return a, "El ID es obligatorio."
	}
	if a.Model == "" {
		return a, "El modelo es obligatorio."
	}
	if raw := f.value(fieldStatus); raw == "" {
		a.Status = asset.StatusAvailable
	} else {
		st, err := asset.ParseStatus(raw)
		if err != nil {
			return a, fmt.Sprintf("Estado no válido: %s.", raw)
		}
		a.Status = st
	}
	if raw := f.value(fieldCoordinates); raw != "" {
		c, err := asset.ParseCoordinates(raw)
		if err != nil {
			return a, "Coordenadas no válidas. Usa el formato lng,lat."
		}
		a.Coordinates = &c
	}
	return a, ""
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case msg.String() == "esc":
		m.mode = modeNormal
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.submitForm()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		if m.form.focus == fieldCount-1 {
			m.submitForm()
			return m, nil
		}
		m.form.move(1)
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		m.form.move(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.form.move(-1)
		return m, nil
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	m.form.err = ""
	return m, cmd
}

// submitForm applies the form through the store. The form stays open when
// validation or the store rejects it.
func (m *Model) submitForm() {
	a, problem := m.form.build()
	if problem != "" {
		m.form.err = problem
		return
	}
	var err error
	if m.store == nil {
		m.mode = modeNormal
		return
	}
	if m.form.editing {
		err = m.store.UpdateAsset(a.ID, asset.Diff(m.form.original, a))
	} else {
		err = m.store.AddAsset(a)
	}
	if err != nil {
		m.form.err = describeStoreError(err)
		return
	}
	m.mode = modeNormal
	m.applySnapshot(m.store.Snapshot())
	if !m.form.editing {
		m.selectID(a.ID)
	}
}

func describeStoreError(err error) string {
	switch {
	case errors.Is(err, state.ErrDuplicateID):
		return "Ya existe un conservador con ese ID."
	case errors.Is(err, asset.ErrInvalidAsset):
		return "Revisa los campos obligatorios."
	default:
		return err.Error()
	}
}

// selectID moves the selection to id when it is visible.
func (m *Model) selectID(id string) {
	for i, a := range m.visibleAssets() {
		if a.ID == id {
			m.selected = i
			return
		}
	}
}

func (m Model) renderForm() string {
	styles := m.theme.Styles()
	title := "Añadir conservador"
	if m.form.editing {
		title = "Editar conservador " + m.form.original.ID
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n\n")
	for i := range m.form.inputs {
		field := formField(i)
		label := styles.MutedText
		marker := "  "
		if field == m.form.focus {
			label = styles.AccentText.Bold(true)
			marker = styles.AccentText.Render("› ")
		}
		b.WriteString(marker)
		b.WriteString(label.Render(padRight(fieldLabels[i], 24)))
		if m.form.editing && field == fieldID {
			b.WriteString(styles.FaintText.Render(m.form.original.ID))
		} else {
			b.WriteString(m.form.inputs[i].View())
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.form.err != "" {
		b.WriteString(styles.DangerText.Render(m.form.err))
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render("tab/↓ siguiente · shift+tab/↑ anterior · ctrl+s guardar · esc cancelar"))

	return m.modal(b.String(), 72)
}

func (m Model) renderConfirm() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.DangerText.Render("Eliminar conservador"))
	b.WriteString("\n\n")
	name := m.confirmID
	if a, ok := m.snapshot.Assets.Find(m.confirmID); ok {
		name = fmt.Sprintf("%s (%s)", a.Model, a.ID)
	}
	b.WriteString(styles.Text.Render("¿Seguro que quieres eliminar " + name + "?"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Esta acción no se puede deshacer."))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render("y") + styles.FaintText.Render(" eliminar · ") +
		styles.AccentText.Render("n") + styles.FaintText.Render(" cancelar"))
	return m.modal(b.String(), 56)
}

// modal centers content in a bordered box.
func (m Model) modal(content string, width int) string {
	if width > m.width-2 && m.width > 10 {
		width = m.width - 2
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(width)
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
