package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/hightemp/countrypicker/internal/countries"
	"github.com/hightemp/countrypicker/internal/picker"
)

func testCatalog() []countries.Country {
	return []countries.Country{
		{Code: "US", Name: "United States", CallingCode: "+1", Flag: "🇺🇸", Names: map[string]string{"es": "Estados Unidos"}},
		{Code: "GB", Name: "United Kingdom", CallingCode: "+44", Flag: "🇬🇧"},
		{Code: "CA", Name: "Canada", CallingCode: "+1", Flag: "🇨🇦"},
		{Code: "AU", Name: "Australia", CallingCode: "+61", Flag: "🇦🇺"},
		{Code: "DE", Name: "Germany", CallingCode: "+49", Flag: "🇩🇪"},
	}
}

type harness struct {
	selected []string
	opens    int
	closes   int
}

func (h *harness) controller(t *testing.T, mutate func(*picker.Options)) *picker.Controller {
	t.Helper()
	logger, _ := test.NewNullLogger()
	opts := picker.Options{
		Catalog:               testCatalog(),
		WithFilter:            true,
		WithFlag:              true,
		WithCallingCode:       true,
		WithCountryNameButton: true,
		OnSelect:              func(c countries.Country) { h.selected = append(h.selected, c.Code) },
		OnOpen:                func() { h.opens++ },
		OnClose:               func() { h.closes++ },
		Logger:                logger,
	}
	if mutate != nil {
		mutate(&opts)
	}
	ctrl, err := picker.New(opts)
	if err != nil {
		t.Fatalf("picker.New failed: %v", err)
	}
	return ctrl
}

func send(m tea.Model, msgs ...tea.Msg) tea.Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// quits runs cmd and reports whether it, or any command it batches, quits.
func quits(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if quits(c) {
				return true
			}
		}
	}
	return false
}

func TestClosedViewShowsPlaceholder(t *testing.T) {
	h := &harness{}
	m := New(h.controller(t, nil), Renderers{}, false)

	view := m.View()
	if !strings.Contains(view, "Select Country") {
		t.Errorf("closed view without selection should show placeholder:\n%s", view)
	}
	if !strings.Contains(view, "▼") {
		t.Errorf("closed view should show the chevron:\n%s", view)
	}
}

func TestClosedViewShowsSelection(t *testing.T) {
	h := &harness{}
	ctrl := h.controller(t, func(o *picker.Options) {
		o.CountryCode = "us"
		o.Language = "es"
	})
	view := New(ctrl, Renderers{}, false).View()

	for _, want := range []string{"🇺🇸", "Estados Unidos", "+1"} {
		if !strings.Contains(view, want) {
			t.Errorf("closed view missing %q:\n%s", want, view)
		}
	}
}

func TestOpenSearchSelect(t *testing.T) {
	h := &harness{}
	ctrl := h.controller(t, nil)
	var m tea.Model = New(ctrl, Renderers{}, false)

	m = send(m, key(tea.KeyEnter))
	if !ctrl.IsOpen() || h.opens != 1 {
		t.Fatalf("enter should open the picker (open=%v opens=%d)", ctrl.IsOpen(), h.opens)
	}

	m = send(m, runes("ger"))
	if ctrl.SearchText() != "ger" {
		t.Errorf("SearchText() = %q, expected ger", ctrl.SearchText())
	}
	view := m.View()
	if !strings.Contains(view, "Germany") || strings.Contains(view, "Canada") {
		t.Errorf("filtered view:\n%s", view)
	}

	m = send(m, key(tea.KeyEnter))
	if len(h.selected) != 1 || h.selected[0] != "DE" {
		t.Errorf("OnSelect calls = %v", h.selected)
	}
	if ctrl.IsOpen() || h.closes != 1 {
		t.Errorf("selection should close the picker (open=%v closes=%d)", ctrl.IsOpen(), h.closes)
	}
	if ctrl.SearchText() != "" {
		t.Errorf("SearchText() = %q after close", ctrl.SearchText())
	}
	if !strings.Contains(m.View(), "Germany") {
		t.Errorf("button should show the selection:\n%s", m.View())
	}
}

func TestCursorMovement(t *testing.T) {
	h := &harness{}
	ctrl := h.controller(t, nil)
	var m tea.Model = New(ctrl, Renderers{}, false)

	m = send(m, key(tea.KeyEnter), key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyUp), key(tea.KeyEnter))
	if len(h.selected) != 1 || h.selected[0] != "GB" {
		t.Errorf("OnSelect calls = %v, expected [GB]", h.selected)
	}

	m = send(m, key(tea.KeyEnter))
	for i := 0; i < 10; i++ {
		m = send(m, key(tea.KeyDown))
	}
	send(m, key(tea.KeyEnter))
	if h.selected[len(h.selected)-1] != "DE" {
		t.Errorf("cursor should stop at the last row, selected %v", h.selected)
	}
}

func TestCursorStartsAtSelection(t *testing.T) {
	h := &harness{}
	ctrl := h.controller(t, func(o *picker.Options) { o.CountryCode = "AU" })
	m := send(New(ctrl, Renderers{}, false), key(tea.KeyEnter))

	if !strings.Contains(m.View(), "> 🇦🇺 Australia") {
		t.Errorf("cursor should start on the selection:\n%s", m.View())
	}
}

func TestEscClosesAndClearsSearch(t *testing.T) {
	h := &harness{}
	ctrl := h.controller(t, nil)
	m := send(New(ctrl, Renderers{}, false), key(tea.KeyEnter), runes("xyz123"))

	if !strings.Contains(m.View(), "No countries found") {
		t.Errorf("empty result should show the empty message:\n%s", m.View())
	}

	m = send(m, key(tea.KeyEsc))
	if ctrl.IsOpen() || ctrl.SearchText() != "" {
		t.Errorf("esc should close and clear (open=%v search=%q)", ctrl.IsOpen(), ctrl.SearchText())
	}

	send(m, key(tea.KeyEnter))
	if !ctrl.IsOpen() || ctrl.SearchText() != "" {
		t.Error("reopened picker should start with an empty search")
	}
	if len(ctrl.VisibleCountries()) != 5 {
		t.Errorf("reopened picker should list all countries")
	}
}

func TestFilterDisabledIgnoresTyping(t *testing.T) {
	h := &harness{}
	ctrl := h.controller(t, func(o *picker.Options) { o.WithFilter = false })
	m := send(New(ctrl, Renderers{}, false), key(tea.KeyEnter), runes("ger"))

	if ctrl.SearchText() != "" {
		t.Errorf("typing without filter changed search to %q", ctrl.SearchText())
	}
	if strings.Contains(m.View(), "Search by name or code") {
		t.Errorf("search bar should be hidden without filter:\n%s", m.View())
	}
}

func TestHostMessages(t *testing.T) {
	h := &harness{}
	ctrl := h.controller(t, nil)
	var m tea.Model = New(ctrl, Renderers{}, false)

	m = send(m, OpenMsg{}, OpenMsg{})
	if !ctrl.IsOpen() || h.opens != 1 {
		t.Errorf("OpenMsg: open=%v opens=%d", ctrl.IsOpen(), h.opens)
	}
	send(m, CloseMsg{}, CloseMsg{})
	if ctrl.IsOpen() || h.closes != 1 {
		t.Errorf("CloseMsg: open=%v closes=%d", ctrl.IsOpen(), h.closes)
	}
}

func TestQuitOnSelect(t *testing.T) {
	h := &harness{}
	ctrl := h.controller(t, nil)
	var m tea.Model = New(ctrl, Renderers{}, true)

	m = send(m, key(tea.KeyEnter))
	m, cmd := m.Update(key(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a quit command after selection")
	}
	if !quits(cmd) {
		t.Error("command should quit the program")
	}
	if m.(Model).Cancelled() {
		t.Error("selection should not count as cancelled")
	}
}

func TestQuitWithoutSelectionIsCancelled(t *testing.T) {
	h := &harness{}
	m := send(New(h.controller(t, nil), Renderers{}, true), runes("q"))
	if !m.(Model).Cancelled() {
		t.Error("q without selection should cancel")
	}

	m = send(New(h.controller(t, nil), Renderers{}, true), key(tea.KeyCtrlC))
	if !m.(Model).Cancelled() {
		t.Error("ctrl+c should cancel")
	}
}

func TestCustomRenderers(t *testing.T) {
	h := &harness{}
	ctrl := h.controller(t, func(o *picker.Options) { o.CountryCode = "DE" })
	r := Renderers{
		Flag:    func(c countries.Country) string { return "[" + c.Code + "]" },
		Chevron: func(open bool) string { return "<chevron>" },
		Header:  func(title string) string { return "## " + title },
	}
	var m tea.Model = New(ctrl, r, false)

	closed := m.View()
	if !strings.Contains(closed, "[DE]") || !strings.Contains(closed, "<chevron>") {
		t.Errorf("custom renderers not used while closed:\n%s", closed)
	}

	m = send(m, key(tea.KeyEnter))
	open := m.View()
	if !strings.Contains(open, "## Select Country") || !strings.Contains(open, "[GB]") {
		t.Errorf("custom renderers not used while open:\n%s", open)
	}
}

func TestWindowSizeLimitsRows(t *testing.T) {
	h := &harness{}
	ctrl := h.controller(t, nil)
	m := send(New(ctrl, Renderers{}, false), tea.WindowSizeMsg{Width: 80, Height: 8}, key(tea.KeyEnter))

	view := m.View()
	if !strings.Contains(view, "... and 2 more") {
		t.Errorf("expected truncated list with 3 rows:\n%s", view)
	}
}

func TestUpdateReturnsSyncedModel(t *testing.T) {
	h := &harness{}
	ctrl := h.controller(t, func(o *picker.Options) { o.CountryCode = "CA" })

	m, _ := New(ctrl, Renderers{}, false).Update(OpenMsg{})
	opened := m.(Model)
	if !opened.input.Focused() {
		t.Error("returned model should have the search input focused after opening")
	}
	if opened.cursor != 2 {
		t.Errorf("returned model cursor = %d, expected 2 (Canada)", opened.cursor)
	}

	m, _ = opened.Update(CloseMsg{})
	if m.(Model).input.Focused() {
		t.Error("returned model should blur the search input after closing")
	}
}
