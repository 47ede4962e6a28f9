package spacewar

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/spacewar/internal/config"
	"github.com/vovakirdan/spacewar/internal/core"
)

// GameID is the identifier used for score storage.
const GameID = "spacewar"

// DefaultHoldWindow is how long a direction stays held after its last key
// press on hosts that never report key releases.
const DefaultHoldWindow = 150 * time.Millisecond

var directionActions = [...]struct {
	action core.Action
	dir    Direction
}{
	{core.ActionLeft, DirLeft},
	{core.ActionRight, DirRight},
	{core.ActionUp, DirUp},
	{core.ActionDown, DirDown},
}

// opposite returns the direction that cancels d.
func opposite(d Direction) Direction {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	case DirUp:
		return DirDown
	default:
		return DirUp
	}
}

// Game adapts a Session to frame-based terminal hosts.
// Terminals deliver key presses but no releases, so held directions are
// emulated with a per-direction hold timer.
type Game struct {
	cfg        config.SpacewarConfig
	logger     *log.Logger
	session    *Session
	runtime    core.RuntimeConfig
	highScore  int
	HoldWindow time.Duration

	holds  [4]time.Duration
	events []Event
}

// New creates a game using the given simulation config.
func New(cfg config.SpacewarConfig, logger *log.Logger) *Game {
	return &Game{
		cfg:        cfg,
		logger:     logger,
		HoldWindow: DefaultHoldWindow,
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Spacewar"
}

// SetHighScore sets the stored best score passed to the next Reset.
func (g *Game) SetHighScore(score int) {
	g.highScore = score
}

// Reset starts a new session.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if g.session != nil {
		if best := g.session.HighScore(); best > g.highScore {
			g.highScore = best
		}
	}
	g.runtime = rc
	g.session = NewSession(g.cfg, WithSeed(rc.Seed), WithLogger(g.logger))
	g.holds = [4]time.Duration{}
	g.events = append(g.events[:0], g.session.Start(g.highScore))
}

// Step applies one frame of input and advances the simulation by dt.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	if g.session == nil {
		g.Reset(g.runtime)
	}
	s := g.session

	if in.Has(core.ActionPause) {
		s.TogglePause()
	}

	if s.Running() {
		for _, da := range directionActions {
			if in.Has(da.action) {
				g.holds[da.dir] = g.HoldWindow
				g.holds[opposite(da.dir)] = 0
			}
		}
		for _, da := range directionActions {
			s.SetDirection(da.dir, g.holds[da.dir] > 0)
			g.holds[da.dir] -= dt
			if g.holds[da.dir] < 0 {
				g.holds[da.dir] = 0
			}
		}
		if in.Has(core.ActionFire) {
			s.Fire()
		}
	}

	res := s.Tick(float64(dt) / float64(time.Millisecond))
	g.events = append(g.events, res.Events...)
	return core.StepResult{State: g.State()}
}

// Events drains the events collected since the previous call.
func (g *Game) Events() []Event {
	out := g.events
	g.events = nil
	return out
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{HighScore: g.highScore}
	}
	return core.GameState{
		Score:     g.session.Score(),
		HighScore: g.session.HighScore(),
		GameOver:  g.session.Ended(),
		Paused:    g.session.Paused(),
	}
}

// Session exposes the underlying session.
func (g *Game) Session() *Session {
	return g.session
}
