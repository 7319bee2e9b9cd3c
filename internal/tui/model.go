// Package tui renders a picker.Controller in the terminal: a trigger button
// while closed, and a header, search bar and country list while open.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hightemp/countrypicker/internal/countries"
	"github.com/hightemp/countrypicker/internal/picker"
)

const (
	defaultMaxRows = 10
	minRows        = 3
	chromeRows     = 6 // header, search bar, footer and hints
)

// OpenMsg and CloseMsg let a host drive the picker from outside the update
// loop with (*tea.Program).Send.
type (
	OpenMsg  struct{}
	CloseMsg struct{}
)

// Renderers replace pieces of the default view. Nil fields use the default.
type Renderers struct {
	Flag    func(c countries.Country) string
	Chevron func(open bool) string
	Header  func(title string) string
}

var (
	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	cursorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	callingCodeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	emptyStyle       = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244"))
	hintStyle        = lipgloss.NewStyle().Faint(true)
)

// Model is a bubbletea model around one controller.
type Model struct {
	ctrl   *picker.Controller
	opts   picker.Options
	render Renderers
	input  textinput.Model

	cursor  int
	offset  int
	maxRows int

	wasOpen      bool
	quitOnSelect bool
	cancelled    bool
	done         bool
}

// New creates a model. With quitOnSelect the program exits after the first
// selection.
func New(ctrl *picker.Controller, render Renderers, quitOnSelect bool) Model {
	input := textinput.New()
	input.Placeholder = ctrl.Strings().SearchPlaceholder
	input.Prompt = "🔍 "

	return Model{
		ctrl:         ctrl,
		opts:         ctrl.Options(),
		render:       render,
		input:        input,
		maxRows:      defaultMaxRows,
		quitOnSelect: quitOnSelect,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Cancelled reports whether the user quit without selecting.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.maxRows = max(msg.Height-chromeRows, minRows)
		m.clampScroll()
		return m, nil

	case OpenMsg:
		m.ctrl.Open()

	case CloseMsg:
		m.ctrl.Close()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancelled = true
			return m, tea.Quit
		}
		if m.ctrl.IsOpen() {
			cmd = m.updateOpen(msg)
		} else {
			cmd = m.updateClosed(msg)
		}
	}

	cmd = tea.Batch(cmd, m.sync())
	return m, cmd
}

func (m *Model) updateClosed(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", " ":
		m.ctrl.Open()
	case "q", "esc":
		if _, ok := m.ctrl.Selected(); !ok {
			m.cancelled = true
		}
		return tea.Quit
	}
	return nil
}

func (m *Model) updateOpen(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.ctrl.Close()
		return nil
	case "up":
		m.moveCursor(-1)
		return nil
	case "down":
		m.moveCursor(+1)
		return nil
	case "enter":
		visible := m.ctrl.VisibleCountries()
		if m.cursor < 0 || m.cursor >= len(visible) {
			return nil
		}
		if m.ctrl.Select(visible[m.cursor]) && m.quitOnSelect {
			m.done = true
			return tea.Quit
		}
		return nil
	}

	if !m.opts.WithFilter {
		return nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.ctrl.SetSearchText(m.input.Value())
		m.cursor = 0
		m.offset = 0
	}
	return cmd
}

// sync aligns the search input and cursor with the controller after a
// transition.
func (m *Model) sync() tea.Cmd {
	if m.input.Value() != m.ctrl.SearchText() {
		m.input.SetValue(m.ctrl.SearchText())
	}

	open := m.ctrl.IsOpen()
	if open == m.wasOpen {
		return nil
	}
	m.wasOpen = open

	m.cursor, m.offset = 0, 0
	if !open {
		m.input.Blur()
		return nil
	}
	m.cursorToSelection()
	if m.opts.WithFilter {
		return m.input.Focus()
	}
	return nil
}

// cursorToSelection places the cursor on the selected country when it is
// visible.
func (m *Model) cursorToSelection() {
	sel, ok := m.ctrl.Selected()
	if !ok {
		return
	}
	for i, c := range m.ctrl.VisibleCountries() {
		if c.Code == sel.Code {
			m.cursor = i
			m.clampScroll()
			return
		}
	}
}

func (m *Model) moveCursor(delta int) {
	n := len(m.ctrl.VisibleCountries())
	if n == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
	m.clampScroll()
}

func (m *Model) clampScroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.maxRows {
		m.offset = m.cursor - m.maxRows + 1
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done {
		return ""
	}
	if m.ctrl.IsOpen() {
		return m.viewModal()
	}
	return m.viewButton()
}

func (m Model) viewButton() string {
	var parts []string

	if sel, ok := m.ctrl.Selected(); ok {
		if m.opts.WithFlag {
			parts = append(parts, m.flag(sel))
		}
		if m.opts.WithCountryNameButton {
			parts = append(parts, m.ctrl.DisplayName(sel))
		}
		if m.opts.WithCallingCode {
			parts = append(parts, sel.CallingCode)
		}
	} else {
		parts = append(parts, placeholderStyle.Render(m.ctrl.Placeholder()))
	}
	parts = append(parts, m.chevron(false))

	var b strings.Builder
	b.WriteString(buttonStyle.Render(strings.Join(parts, " ")))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("enter: open • q: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewModal() string {
	var b strings.Builder
	strs := m.ctrl.Strings()

	if m.render.Header != nil {
		b.WriteString(m.render.Header(strs.HeaderTitle))
	} else {
		b.WriteString(titleStyle.Render(strs.HeaderTitle))
		b.WriteString(" " + m.chevron(true))
	}
	b.WriteString("\n")

	if m.opts.WithFilter {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	visible := m.ctrl.VisibleCountries()
	if len(visible) == 0 {
		b.WriteString(emptyStyle.Render(strs.NoCountriesFound))
		b.WriteString("\n")
	}

	end := min(m.offset+m.maxRows, len(visible))
	for i := m.offset; i < end; i++ {
		row := m.row(visible[i])
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}
	if remaining := len(visible) - end; remaining > 0 {
		b.WriteString(hintStyle.Render(fmt.Sprintf("  ... and %d more", remaining)))
		b.WriteString("\n")
	}

	b.WriteString(hintStyle.Render("↑/↓: move • enter: select • esc: close"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) row(c countries.Country) string {
	var parts []string
	if m.opts.WithFlag {
		parts = append(parts, m.flag(c))
	}
	parts = append(parts, m.ctrl.DisplayName(c))
	if m.opts.WithCallingCode {
		parts = append(parts, callingCodeStyle.Render(c.CallingCode))
	}
	return strings.Join(parts, " ")
}

func (m Model) flag(c countries.Country) string {
	if m.render.Flag != nil {
		return m.render.Flag(c)
	}
	return c.Flag
}

func (m Model) chevron(open bool) string {
	if m.render.Chevron != nil {
		return m.render.Chevron(open)
	}
	if open {
		return "✕"
	}
	return "▼"
}
