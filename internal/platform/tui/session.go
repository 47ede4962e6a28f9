package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/spacewar/internal/config"
	"github.com/vovakirdan/spacewar/internal/core"
	"github.com/vovakirdan/spacewar/internal/games/spacewar"
)

// Store is the persistence a full session needs.
type Store interface {
	ScoreStore
	ScoreReader
}

// GameFactory builds a fresh game for the chosen difficulty.
type GameFactory func(preset config.DifficultyPreset) (Game, error)

type sessionState int

const (
	stateMenu sessionState = iota
	stateGame
	stateScores
)

// SessionModel manages the full flow: menu -> game or scores -> menu.
// It is the top-level model for SSH sessions and the local menu command.
type SessionModel struct {
	store      Store
	newGame    GameFactory
	opts       Options
	config     core.RuntimeConfig
	username   string
	state      sessionState
	menu       MenuModel
	game       *Model
	scores     ScoreboardModel
	difficulty config.DifficultyPreset
	lastErr    error
	quitting   bool
}

// NewSessionModel creates a new session model. store may be nil.
func NewSessionModel(store Store, newGame GameFactory, cfg core.RuntimeConfig, username string, opts Options) SessionModel {
	opts.ExitOnBack = false
	if store != nil {
		opts.Store = store
	}
	m := SessionModel{
		store:      store,
		newGame:    newGame,
		opts:       opts,
		config:     cfg,
		username:   username,
		difficulty: config.DifficultyNormal,
	}
	if opts.Difficulty != "" {
		if p, err := config.ParsePreset(opts.Difficulty); err == nil {
			m.difficulty = p
		}
	}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	best := 0
	if m.store != nil {
		if hs, err := m.store.HighScore(spacewar.GameID); err == nil {
			best = hs
		}
	}
	return NewMenuModel(m.config, m.difficulty, best)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.state {
	case stateGame:
		return m.updateGame(msg)
	case stateScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.menu.Choice() {
	case ChoiceStart:
		m.difficulty = m.menu.Difficulty()
		m.config = m.menu.Config()
		game, err := m.newGame(m.difficulty)
		if err != nil {
			m.lastErr = err
			m.menu = m.newMenu()
			return m, nil
		}
		opts := m.opts
		opts.Difficulty = string(m.difficulty)
		gameModel := NewModel(game, m.config, opts)
		m.game = &gameModel
		m.state = stateGame
		return m, m.game.Init()

	case ChoiceScores:
		var reader ScoreReader
		if m.store != nil {
			reader = m.store
		}
		m.scores = NewScoreboardModel(reader, spacewar.GameID, m.config.ScreenW, m.config.ScreenH)
		m.state = stateScores
		return m, m.scores.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.state = stateMenu
		m.game = nil
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.state = stateMenu
		m.menu = m.newMenu()
		return m, nil
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateGame:
		return m.game.View()
	case stateScores:
		return m.scores.View()
	}

	view := m.menu.View()
	if m.lastErr != nil {
		view += "\n" + centerText("error: "+m.lastErr.Error(), m.config.ScreenW)
	}
	return view
}

// Err returns the last error raised while starting a game, if any.
func (m SessionModel) Err() error {
	return m.lastErr
}

// RunSession runs the full menu flow locally.
func RunSession(store Store, newGame GameFactory, cfg core.RuntimeConfig, opts Options) error {
	model := NewSessionModel(store, newGame, cfg, "", opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
