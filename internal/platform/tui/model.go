package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/spacewar/internal/audio"
	"github.com/vovakirdan/spacewar/internal/core"
	"github.com/vovakirdan/spacewar/internal/games/spacewar"
	"github.com/vovakirdan/spacewar/internal/storage"
)

// statusDuration is how long a status line (e.g. screenshot saved) stays visible.
const statusDuration = 2 * time.Second

// Game is what the terminal host drives. *spacewar.Game implements it.
type Game interface {
	ID() string
	Title() string
	SetHighScore(score int)
	Reset(rc core.RuntimeConfig)
	Step(in core.InputFrame, dt time.Duration) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
	Events() []spacewar.Event
}

// ScoreStore persists finished runs. *storage.Store implements it.
type ScoreStore interface {
	SaveRun(run storage.Run) (int64, error)
	HighScore(gameID string) (int, error)
}

// Options configures a Model beyond the game itself.
type Options struct {
	Store      ScoreStore
	Audio      *audio.Player
	Difficulty string

	// ExitOnBack quits the program when Back is pressed on the game-over
	// or pause screen instead of returning to a menu.
	ExitOnBack bool

	// Screenshots enables ctrl+s, which writes the screen under
	// ~/.spacewar/screenshots and copies it to the clipboard of the host
	// running the program. Leave it off for remote sessions.
	Screenshots bool
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	runTime    time.Duration
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over

	status      string
	statusUntil time.Time

	screenshotDir string
	copyText      func(string) error
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	if opts.Store != nil {
		if best, err := opts.Store.HighScore(game.ID()); err == nil {
			game.SetHighScore(best)
		}
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
	if opts.Screenshots {
		m.screenshotDir = defaultScreenshotDir()
		m.copyText = clipboard.WriteAll
	}
	return m
}

func defaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".spacewar", "screenshots")
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The simulation runs in viewport pixels, so a resize only changes the projection.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if m.opts.Screenshots {
			m.saveScreenshot(time.Now())
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		m.opts.Audio.SetPaused(true)
		if m.opts.ExitOnBack {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleTick advances the game by the real time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := tickInterval(m.config.TickRate)
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick)
	}
	m.lastTick = now

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = now.UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.runTime = 0
		m.inputFrame.Clear()
		m.opts.Audio.Handle(m.game.Events())
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame, dt)
	m.gameState = result.State
	if !m.gameState.GameOver && !m.gameState.Paused {
		m.runTime += dt
	}

	m.opts.Audio.Handle(m.game.Events())
	m.opts.Audio.SetPaused(m.gameState.Paused)

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScore records the finished run once. Zero scores are not recorded.
func (m *Model) saveScore() {
	if m.opts.Store == nil || m.gameState.Score <= 0 {
		return
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.opts.Store.SaveRun(storage.Run{
		GameID:     m.game.ID(),
		Score:      m.gameState.Score,
		Difficulty: m.opts.Difficulty,
		DurationMs: m.runTime.Milliseconds(),
	})
}

// saveScreenshot writes the current screen to a text file and copies it to
// the clipboard. Both are best-effort.
func (m *Model) saveScreenshot(now time.Time) {
	m.game.Render(m.screen)
	shot := m.screen.String()

	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.screenshotDir, 0o755)

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), now.Format("20060102_150405"))
	path := filepath.Join(m.screenshotDir, filename)

	m.status = "screenshot saved"
	if err := os.WriteFile(path, []byte(shot), 0o600); err != nil {
		m.status = "screenshot failed"
	}
	if m.copyText != nil && m.copyText(shot) == nil {
		m.status += ", copied"
	}
	m.statusUntil = now.Add(statusDuration)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.status != "" && m.lastTick.Before(m.statusUntil) {
		m.screen.DrawTextColor(0, m.screen.Height()-1, " "+m.status+" ", core.ColorGray)
	}
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program for a single game and returns when it exits.
func Run(game Game, cfg core.RuntimeConfig, opts Options) error {
	opts.ExitOnBack = true
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
