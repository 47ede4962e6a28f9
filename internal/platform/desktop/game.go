// Package desktop hosts spacewar in a native window through ebiten.
// Unlike the terminal host it sees real key releases and pointer positions,
// so it drives the session directly.
package desktop

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/spacewar/internal/audio"
	"github.com/vovakirdan/spacewar/internal/config"
	"github.com/vovakirdan/spacewar/internal/core"
	"github.com/vovakirdan/spacewar/internal/games/spacewar"
	"github.com/vovakirdan/spacewar/internal/storage"
)

// ticksPerSecond is ebiten's default update rate.
const ticksPerSecond = 60

// ScoreStore persists finished runs. *storage.Store implements it.
type ScoreStore interface {
	SaveRun(run storage.Run) (int64, error)
	HighScore(gameID string) (int, error)
}

// Options configures the window host.
type Options struct {
	Store      ScoreStore
	Audio      *audio.Player
	Difficulty string
	Seed       int64 // 0 picks one from the clock
	Logger     *log.Logger
	Scale      float64 // window scale over the viewport, default 1.5
}

// inputState is one tick of polled input.
type inputState struct {
	left, right, up, down bool
	fire                  bool // just pressed
	pause                 bool // just pressed
	restart               bool // just pressed
	pointer               bool // mouse button held or finger down
	pointerX, pointerY    float64
	pointerTap            bool // pointer went down this tick
}

// Game implements ebiten.Game around a spacewar session.
type Game struct {
	cfg     config.SpacewarConfig
	opts    Options
	logger  *log.Logger
	session *spacewar.Session
	face    *text.GoXFace

	highScore     int
	seed          int64
	saved         bool
	lastPointerMs float64 // session time of the last pointer-driven shot
	pointerFired  bool
	runMs         float64
}

// New creates a window host and starts the first session.
func New(cfg config.SpacewarConfig, opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	g := &Game{
		cfg:    cfg,
		opts:   opts,
		logger: opts.Logger,
		face:   text.NewGoXFace(basicfont.Face7x13),
		seed:   opts.Seed,
	}
	if opts.Store != nil {
		if best, err := opts.Store.HighScore(spacewar.GameID); err == nil {
			g.highScore = best
		}
	}
	g.restart()
	return g
}

// restart replaces the session with a fresh one.
func (g *Game) restart() {
	if g.session != nil && g.session.HighScore() > g.highScore {
		g.highScore = g.session.HighScore()
	}
	seed := g.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.seed = 0 // only the first session uses a fixed seed

	g.session = spacewar.NewSession(g.cfg, spacewar.WithSeed(seed), spacewar.WithLogger(g.logger))
	start := g.session.Start(g.highScore)
	g.opts.Audio.Handle([]spacewar.Event{start})
	g.saved = false
	g.pointerFired = false
	g.runMs = 0
}

// Update polls input and advances the session by one 60 Hz frame.
func (g *Game) Update() error {
	g.step(pollInput(), 1000.0/ticksPerSecond)
	return nil
}

// step applies input and advances the simulation. Split from Update so it
// can run without a window.
func (g *Game) step(in inputState, deltaMs float64) {
	s := g.session
	field := core.NewRect(0, 0, g.cfg.Viewport.Width, g.cfg.Viewport.Height)
	onField := in.pointer && field.Contains(in.pointerX, in.pointerY)

	if s.Ended() {
		if in.restart || (in.pointerTap && onField) {
			g.restart()
		}
		return
	}

	if in.pause {
		g.opts.Audio.SetPaused(s.TogglePause())
	}

	if s.Running() {
		s.SetDirection(spacewar.DirLeft, in.left)
		s.SetDirection(spacewar.DirRight, in.right)
		s.SetDirection(spacewar.DirUp, in.up)
		s.SetDirection(spacewar.DirDown, in.down)

		if in.fire {
			s.Fire()
		}
		if onField {
			g.followPointer(in.pointerX, in.pointerY)
		}
	}

	res := s.Tick(deltaMs)
	if s.Running() {
		g.runMs += deltaMs
	}
	g.opts.Audio.Handle(res.Events)

	if res.Ended && !g.saved {
		g.saveScore()
		g.saved = true
	}
}

// followPointer centers the ship on the pointer and fires at the touch rate.
func (g *Game) followPointer(x, y float64) {
	p := g.cfg.Player
	g.session.MovePlayerTo(x-p.Width/2, y-p.Height/2)

	now := g.session.ElapsedMs()
	if !g.pointerFired || now-g.lastPointerMs >= g.cfg.Fire.TouchIntervalMs {
		if g.session.Fire() {
			g.lastPointerMs = now
			g.pointerFired = true
		}
	}
}

func (g *Game) saveScore() {
	score := g.session.FinalScore()
	g.logger.Info("game over", "score", score, "duration", time.Duration(g.runMs)*time.Millisecond)
	if g.opts.Store == nil || score <= 0 {
		return
	}
	_, err := g.opts.Store.SaveRun(storage.Run{
		GameID:     spacewar.GameID,
		Score:      score,
		Difficulty: g.opts.Difficulty,
		DurationMs: int64(g.runMs),
	})
	if err != nil {
		g.logger.Warn("could not save score", "error", err)
	}
}

// Layout fixes the logical screen to the viewport; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.cfg.Viewport.Width), int(g.cfg.Viewport.Height)
}

// Session exposes the running session.
func (g *Game) Session() *spacewar.Session {
	return g.session
}

// pollInput reads the keyboard, mouse and touch state for this tick.
func pollInput() inputState {
	in := inputState{
		left:    ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		right:   ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		up:      ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		down:    ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		fire:    inpututil.IsKeyJustPressed(ebiten.KeySpace),
		pause:   inpututil.IsKeyJustPressed(ebiten.KeyP),
		restart: inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter),
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		in.pointer = true
		in.pointerX, in.pointerY = float64(x), float64(y)
		in.pointerTap = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	}

	if touches := ebiten.AppendTouchIDs(nil); len(touches) > 0 {
		x, y := ebiten.TouchPosition(touches[0])
		in.pointer = true
		in.pointerX, in.pointerY = float64(x), float64(y)
		in.pointerTap = in.pointerTap || len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
	}

	return in
}

// Run opens the window and blocks until it is closed.
func Run(cfg config.SpacewarConfig, opts Options) error {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1.5
	}
	ebiten.SetWindowTitle("Spacewar")
	ebiten.SetWindowSize(int(cfg.Viewport.Width*scale), int(cfg.Viewport.Height*scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(New(cfg, opts))
}
