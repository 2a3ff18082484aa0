package live

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-parampanel/pkg/panel"
)

// refreshMsg asks the model to rebuild its rows from the panel. It is
// sent when the target mutates outside the sheet.
type refreshMsg struct{}

// Model is the bubbletea state for an editable property sheet. Each
// row is one widget; edits are pushed through the panel's change
// relay, so the target object mutates as the user commits values.
type Model struct {
	panel   *panel.Panel
	heading string
	rows    []panel.Descriptor

	cursor  int
	editing bool
	input   textinput.Model
	status  string

	width  int
	styles Styles
	err    error
}

// NewModel builds the sheet model from a panel. The title, when not
// empty, replaces the panel's own heading.
func NewModel(p *panel.Panel, title string) (Model, error) {
	rows, err := p.Ordered()
	if err != nil {
		return Model{}, err
	}

	heading := title
	if heading == "" {
		head, err := p.Heading()
		if err != nil {
			return Model{}, err
		}
		heading = fmt.Sprintf("%v", head.Value)
	}

	ti := textinput.New()
	ti.Prompt = "│ "
	ti.CharLimit = 256
	ti.Width = 48

	m := Model{
		panel:   p,
		heading: heading,
		input:   ti,
		width:   80,
		styles:  DefaultStyles(),
	}
	if err := m.rebuild(rows); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) rebuild(names []string) error {
	rows := make([]panel.Descriptor, 0, len(names))
	for _, name := range names {
		desc, err := m.panel.Widget(name)
		if err != nil {
			return err
		}
		rows = append(rows, desc)
	}
	m.rows = rows
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return nil
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and refresh requests.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case refreshMsg:
		names, err := m.panel.Ordered()
		if err == nil {
			err = m.rebuild(names)
		}
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}

	return m, nil
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.status = ""

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		m.status = ""

	case "left", "h":
		m.cycleSelect(-1)

	case "right", "l":
		m.cycleSelect(1)

	case " ":
		m.toggleCheckbox()

	case "enter":
		if len(m.rows) == 0 {
			return m, nil
		}
		row := m.rows[m.cursor]
		switch row.Type {
		case panel.WidgetCheckbox:
			m.toggleCheckbox()
		case panel.WidgetSelect:
			m.cycleSelect(1)
		default:
			m.beginEdit(row)
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		m.status = ""
		return m, nil

	case "enter":
		row := m.rows[m.cursor]
		value, err := parseAnswer(row, m.input.Value())
		if err == nil {
			err = m.applyRow(row.Name, value)
		}
		if err != nil {
			m.status = fmt.Sprintf("invalid value: %v", err)
			return m, nil
		}
		m.editing = false
		m.input.Blur()
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) beginEdit(row panel.Descriptor) {
	m.editing = true
	m.status = ""
	m.input.SetValue(editText(row))
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) toggleCheckbox() {
	if len(m.rows) == 0 {
		return
	}
	row := m.rows[m.cursor]
	if row.Type != panel.WidgetCheckbox {
		return
	}
	current, _ := row.Value.(bool)
	if err := m.applyRow(row.Name, !current); err != nil {
		m.status = fmt.Sprintf("invalid value: %v", err)
	}
}

func (m *Model) cycleSelect(step int) {
	if len(m.rows) == 0 {
		return
	}
	row := m.rows[m.cursor]
	if row.Type != panel.WidgetSelect || len(row.Options) == 0 {
		return
	}
	current, _ := row.Value.(string)
	idx := 0
	for i, opt := range row.Options {
		if opt.Label == current {
			idx = i
			break
		}
	}
	idx = (idx + step + len(row.Options)) % len(row.Options)
	if err := m.applyRow(row.Name, row.Options[idx].Label); err != nil {
		m.status = fmt.Sprintf("invalid value: %v", err)
	}
}

// applyRow commits through the change relay and refreshes the edited
// row so the sheet shows the accepted value.
func (m *Model) applyRow(name string, value any) error {
	if err := m.panel.Apply(name, value); err != nil {
		return err
	}
	desc, err := m.panel.Widget(name)
	if err != nil {
		return err
	}
	for i := range m.rows {
		if m.rows[i].Name == name {
			m.rows[i] = desc
			break
		}
	}
	return nil
}

// View renders the sheet.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.heading))
	b.WriteString("\n\n")

	for i, row := range m.rows {
		marker := "  "
		labelStyle := m.styles.Label
		if i == m.cursor {
			marker = "> "
			labelStyle = m.styles.Focused
		}

		b.WriteString(marker)
		b.WriteString(labelStyle.Render(row.Label))
		b.WriteString("  ")

		if m.editing && i == m.cursor {
			b.WriteString(m.input.View())
		} else {
			b.WriteString(m.styles.Value.Render(displayText(row)))
		}
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.status))
	}

	b.WriteString("\n\n")
	help := "↑/↓ move · enter edit · space toggle · ←/→ cycle · q quit"
	if m.editing {
		help = "enter commit · esc cancel"
	}
	b.WriteString(m.styles.Muted.Render(help))
	b.WriteString("\n")

	return b.String()
}

// Err reports a failure that ended the session.
func (m Model) Err() error { return m.err }

// Result serializes the target's current attribute values.
func (m Model) Result() ([]byte, error) {
	values := make(map[string]any, len(m.rows))
	for _, row := range m.rows {
		value, err := m.panel.Target().Get(row.Name)
		if err != nil {
			return nil, err
		}
		values[row.Name] = value
	}
	return json.MarshalIndent(values, "", "  ")
}

func displayText(row panel.Descriptor) string {
	switch row.Type {
	case panel.WidgetCheckbox:
		if checked, _ := row.Value.(bool); checked {
			return "[x]"
		}
		return "[ ]"

	case panel.WidgetSelect:
		return fmt.Sprintf("‹ %v ›", row.Value)

	case panel.WidgetMultiSelect:
		if picked, ok := row.Value.([]string); ok {
			return strings.Join(picked, ", ")
		}
		return fmt.Sprintf("%v", row.Value)

	case panel.WidgetFloatSlider, panel.WidgetIntSlider:
		text := fmt.Sprintf("%v", row.Value)
		if row.Start != nil && row.End != nil {
			text += fmt.Sprintf("  (%v .. %v)", *row.Start, *row.End)
		}
		return text

	case panel.WidgetRangeSlider:
		if pair, ok := row.Value.([2]float64); ok {
			return fmt.Sprintf("%v .. %v", pair[0], pair[1])
		}
		return fmt.Sprintf("%v", row.Value)

	case panel.WidgetDatePicker:
		if date, ok := row.Value.(time.Time); ok && !date.IsZero() {
			return date.Format("2006-01-02")
		}
		return ""

	default:
		return fmt.Sprintf("%v", row.Value)
	}
}

func editText(row panel.Descriptor) string {
	switch row.Type {
	case panel.WidgetMultiSelect:
		if picked, ok := row.Value.([]string); ok {
			return strings.Join(picked, ", ")
		}
	case panel.WidgetRangeSlider:
		if pair, ok := row.Value.([2]float64); ok {
			return fmt.Sprintf("%v, %v", pair[0], pair[1])
		}
	case panel.WidgetDatePicker:
		if date, ok := row.Value.(time.Time); ok && !date.IsZero() {
			return date.Format("2006-01-02")
		}
		return ""
	}
	if text, ok := row.Value.(string); ok {
		return text
	}
	return fmt.Sprintf("%v", row.Value)
}

// parseAnswer converts the edited text into the value shape the
// widget's attribute expects.
func parseAnswer(row panel.Descriptor, text string) (any, error) {
	text = strings.TrimSpace(text)

	switch row.Type {
	case panel.WidgetFloatSlider:
		return strconv.ParseFloat(text, 64)

	case panel.WidgetIntSlider:
		return strconv.Atoi(text)

	case panel.WidgetRangeSlider:
		parts := strings.Split(text, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("expected \"low, high\"")
		}
		low, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, err
		}
		high, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, err
		}
		return [2]float64{low, high}, nil

	case panel.WidgetDatePicker:
		return time.Parse("2006-01-02", text)

	case panel.WidgetMultiSelect:
		if text == "" {
			return []string{}, nil
		}
		parts := strings.Split(text, ",")
		picked := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				picked = append(picked, trimmed)
			}
		}
		return picked, nil

	default:
		// Literal inputs accept JSON; bare words stay strings.
		var value any
		if err := json.Unmarshal([]byte(text), &value); err == nil {
			return value, nil
		}
		return text, nil
	}
}
