package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/spacewar/internal/config"
	"github.com/vovakirdan/spacewar/internal/core"
)

// MenuChoice is what the user picked from the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoiceStart
	ChoiceScores
	ChoiceHelp
	ChoiceQuit
)

// MenuItem is one selectable line in the menu.
type MenuItem struct {
	Choice MenuChoice
	Title  string
}

var menuItems = []MenuItem{
	{ChoiceStart, "Start"},
	{ChoiceScores, "High Scores"},
	{ChoiceHelp, "How to Play"},
	{ChoiceQuit, "Quit"},
}

// menuPresets is the order the difficulty selector cycles through.
var menuPresets = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

var helpLines = []string{
	"Arrows / WASD   move the ship",
	"Space           fire",
	"P               pause",
	"R               restart after game over",
	"Esc             back to menu (paused or game over)",
	"Ctrl+S          screenshot to ~/.spacewar/screenshots",
	"Q               quit",
	"",
	"Basic W: 1 hit, 10 pts   Fast V: 1 hit, 30 pts",
	"Armored █: 3 hits, 30 pts",
	"When the border flashes red a rush wave and a formation are coming.",
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuCurStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
)

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	cursor     int
	preset     int
	width      int
	height     int
	highScore  int
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	showHelp   bool
	quitting   bool
	choice     MenuChoice
	standalone bool // quit the program on selection
}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg core.RuntimeConfig, difficulty config.DifficultyPreset, highScore int) MenuModel {
	m := MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		highScore: highScore,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		preset:    1,
	}
	for i, p := range menuPresets {
		if p == difficulty {
			m.preset = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.showHelp {
		if action == MenuActionQuit {
			m.quitting = true
			return m, tea.Quit
		}
		if action != MenuActionNone {
			m.showHelp = false
		}
		return m, nil
	}

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = core.Clamp(m.cursor-1, 0, len(menuItems)-1)

	case MenuActionDown:
		m.cursor = core.Clamp(m.cursor+1, 0, len(menuItems)-1)

	case MenuActionLeft:
		m.preset = (m.preset + len(menuPresets) - 1) % len(menuPresets)

	case MenuActionRight:
		m.preset = (m.preset + 1) % len(menuPresets)

	case MenuActionSelect:
		return m.selectItem(menuItems[m.cursor].Choice)
	}

	return m, nil
}

func (m MenuModel) selectItem(choice MenuChoice) (tea.Model, tea.Cmd) {
	switch choice {
	case ChoiceHelp:
		m.showHelp = true
		return m, nil
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit
	}
	m.choice = choice
	if m.standalone {
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.viewHelp()
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("S P A C E W A R"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Best: %d", m.highScore), m.width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		line := "  " + item.Title
		if item.Choice == ChoiceStart {
			line += fmt.Sprintf("  < %s >", m.Difficulty())
		}
		if i == m.cursor {
			line = menuCurStyle.Render("> " + line[2:])
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(menuHintStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) viewHelp() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("HOW TO PLAY"), m.width))
	b.WriteString("\n\n")
	for _, line := range helpLines {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Press any key to return"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Choice returns what the user selected, or ChoiceNone.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Difficulty returns the currently selected preset.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return menuPresets[m.preset]
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
// Width is measured in cells so styled strings center correctly.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice     MenuChoice
	Difficulty config.DifficultyPreset
	Config     core.RuntimeConfig
	Quit       bool
}

// RunMenu runs the menu on its own and returns the selection result.
func RunMenu(cfg core.RuntimeConfig, difficulty config.DifficultyPreset, highScore int) (MenuResult, error) {
	model := NewMenuModel(cfg, difficulty, highScore)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg, Quit: true}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.IsQuitting() || m.Choice() == ChoiceNone {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	return MenuResult{
		Choice:     m.Choice(),
		Difficulty: m.Difficulty(),
		Config:     m.Config(),
	}, nil
}
