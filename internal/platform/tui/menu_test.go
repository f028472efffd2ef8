package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestMenuSelectsVariant(t *testing.T) {
	m := NewMenuModel(80, 24)
	if len(m.games) != 2 {
		t.Fatalf("menu lists %d games, expected snake and snake_ai", len(m.games))
	}
	if view := m.View(); !strings.Contains(view, "> "+m.games[0].Title) {
		t.Errorf("View() should mark the first variant:\n%s", view)
	}

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("select returned no command")
	}
	if got := model.(MenuModel).Selected(); got != "snake_ai" {
		t.Errorf("Selected() = %q, expected snake_ai", got)
	}
}

func TestMenuQuit(t *testing.T) {
	model, _ := NewMenuModel(80, 24).Update(runeKey('q'))
	m := model.(MenuModel)
	if m.Selected() != "" {
		t.Errorf("Selected() = %q after quit, expected empty", m.Selected())
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}
