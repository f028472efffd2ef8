package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-astar/internal/registry"
)

// MenuModel lets users pick manual play or the autopilot before a game.
type MenuModel struct {
	games    []registry.GameInfo
	cursor   int
	width    int
	height   int
	selected string
	quitting bool
}

// NewMenuModel creates a menu over every registered game.
func NewMenuModel(width, height int) MenuModel {
	return MenuModel{
		games:  registry.List(),
		width:  width,
		height: height,
	}
}

// Init initializes the model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.games)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.games) > 0 {
			m.selected = m.games[m.cursor].ID
			return m, tea.Quit
		}
	}
	return m, nil
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDescStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// menuDescriptions explains each variant below its title.
var menuDescriptions = map[string]string{
	"snake":    "steer with arrows or WASD, Space hands over to A*",
	"snake_ai": "A* steers toward the food, then chases its tail",
}

// View renders the variant list.
func (m MenuModel) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	lines := []string{
		"",
		menuTitleStyle.Render(centerText("S N A K E", m.width)),
		"",
		centerText("Who steers?", m.width),
		"",
	}
	for i, g := range m.games {
		line := centerText("  "+g.Title, m.width)
		if i == m.cursor {
			line = menuActiveStyle.Render(centerText("> "+g.Title, m.width))
		}
		lines = append(lines, line)
		if desc, ok := menuDescriptions[g.ID]; ok {
			lines = append(lines, menuDescStyle.Render(centerText(desc, m.width)))
		}
		lines = append(lines, "")
	}
	lines = append(lines, menuDescStyle.Render(centerText("enter select • q quit", m.width)))

	return strings.Join(lines, "\n")
}

// Selected returns the chosen game ID, or "" if none was chosen.
func (m MenuModel) Selected() string {
	return m.selected
}

// centerText pads text with spaces to center it in width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// RunMenu shows the game menu and returns the chosen game ID.
// An empty ID means the user quit.
func RunMenu(width, height int) (string, error) {
	p := tea.NewProgram(
		NewMenuModel(width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return "", nil
	}
	return m.Selected(), nil
}
