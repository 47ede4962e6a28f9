package spacewar

import (
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/spacewar/internal/config"
	"github.com/vovakirdan/spacewar/internal/core"
)

// Direction is one of the four steering flags of the player.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// Session owns all mutable state of one game: entities, clocks, phase and
// formation plan. It is not safe for concurrent use; hosts drive it from a
// single goroutine.
type Session struct {
	cfg        config.SpacewarConfig
	controller *Controller
	rng        *rand.Rand
	logger     *log.Logger
	seed       int64
	layouts    []Layout

	phases    phaseMachine
	formation Scheduler
	stars     *Starfield

	player     Player
	enemies    []Enemy
	bullets    []Bullet
	explosions []Explosion

	elapsedMs   float64
	lastSpawnAt float64
	score       int
	highScore   int

	started bool
	paused  bool
	ended   bool

	events []Event
}

// Option configures a Session.
type Option func(*Session)

// WithSeed fixes the RNG seed. Zero picks one from the clock.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.seed = seed
	}
}

// WithLogger sets the debug logger. Sessions log nothing by default.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession creates an idle session. Call Start to begin playing.
func NewSession(cfg config.SpacewarConfig, opts ...Option) *Session {
	s := &Session{
		cfg:    cfg,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.seed == 0 {
		s.seed = time.Now().UnixNano()
	}
	s.rng = rand.New(rand.NewSource(s.seed))
	s.controller = NewController(cfg)

	for _, name := range cfg.Formation.Layouts {
		s.layouts = append(s.layouts, Layout(name))
	}
	if len(s.layouts) == 0 {
		s.layouts = AllLayouts
	}

	s.reset()
	return s
}

// reset clears every piece of per-game state.
func (s *Session) reset() {
	c := s.cfg
	s.phases = newPhaseMachine(c.Phases.NormalMs, c.Phases.RushMs, c.Phases.WarningPeriodMs)
	s.formation.Reset()
	s.stars = NewStarfield(c.Ambience.Stars, c.Viewport.Width, c.Viewport.Height, c.Ambience.ColoredChance, s.rng)

	s.player = Player{
		Rect: core.NewRect(
			c.Viewport.Width/2-c.Player.Width/2,
			c.Viewport.Height-c.Player.SpawnDY,
			c.Player.Width, c.Player.Height,
		),
		Speed: c.Player.Speed,
	}
	s.enemies = nil
	s.bullets = nil
	s.explosions = nil

	s.elapsedMs = 0
	s.lastSpawnAt = 0
	s.score = 0
	s.started = false
	s.paused = false
	s.ended = false
	s.events = nil
}

// Start resets all state and begins a new game in the normal phase.
// highScore is the externally stored best score, shown while playing.
func (s *Session) Start(highScore int) Event {
	s.reset()
	s.highScore = highScore
	s.started = true

	ev := Event{Kind: EventSessionStarted}
	s.logger.Debug("session started", "seed", s.seed, "high_score", highScore)
	return ev
}

// Tick advances the simulation by deltaMs milliseconds.
// Ticks are no-ops while the session is idle, paused or ended, and for
// non-positive or non-finite deltas. Tick never fails.
func (s *Session) Tick(deltaMs float64) TickResult {
	if !s.started || s.paused || s.ended || !(deltaMs > 0) || math.IsInf(deltaMs, 0) {
		return s.flush()
	}

	frames := deltaMs / s.cfg.Simulation.FrameMs
	if frames > s.cfg.Simulation.MaxFramesPerTick {
		frames = s.cfg.Simulation.MaxFramesPerTick
	}

	s.elapsedMs += deltaMs

	s.updatePhase(deltaMs)
	s.stars.Update(deltaMs)
	s.formation.Advance(deltaMs, s.spawnFormationEntry)
	s.maybeSpawnRandom()

	s.updatePlayer(frames)
	s.updateBullets(frames)
	s.updateEnemies(frames)
	s.updateExplosions()

	s.resolveCollisions()

	return s.flush()
}

func (s *Session) flush() TickResult {
	r := TickResult{Events: s.events, Score: s.score, Ended: s.ended}
	s.events = nil
	return r
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

func (s *Session) settings() Settings {
	return s.controller.Compute(s.score, s.phases.phase, s.elapsedMs)
}

func (s *Session) updatePhase(deltaMs float64) {
	step := s.phases.advance(deltaMs)
	if !step.changed {
		return
	}

	s.logger.Debug("phase changed", "from", step.from, "to", step.to, "elapsed_ms", s.elapsedMs)
	s.emit(Event{Kind: EventPhaseChanged, Phase: step.to})

	if step.requestFormation && !s.formation.Active() {
		s.startFormation()
	}
}

// startFormation generates one random formation plan.
func (s *Session) startFormation() {
	settings := s.settings()
	layout := s.layouts[s.rng.Intn(len(s.layouts))]

	plan := BuildLayout(layout, s.cfg.Viewport.Width, func() EnemyKind {
		return PickKind(settings.Roster, s.cfg.Formation.SpecialChance, s.rng)
	})
	s.formation.Start(plan)
	if !s.formation.Active() {
		return
	}

	s.logger.Debug("formation generated", "layout", layout, "entries", len(plan))
	s.emit(Event{Kind: EventFormationStarted, Layout: layout, Count: len(plan)})
}

func (s *Session) spawnFormationEntry(e Entry) {
	settings := s.settings()
	enemy := NewEnemy(s.cfg.Enemies, e.Kind, e.X, e.Y, settings.SpeedMultiplier, s.rng)
	enemy.IsFormation = true
	enemy.FormationSpeed = settings.SpeedMultiplier * s.cfg.Formation.SpeedFactor
	s.addEnemy(enemy)
}

// maybeSpawnRandom spawns one random enemy when the spawn interval has
// elapsed and no formation is being dispatched.
func (s *Session) maybeSpawnRandom() {
	if s.formation.Active() {
		return
	}
	settings := s.settings()
	if s.elapsedMs-s.lastSpawnAt < settings.SpawnIntervalMs {
		return
	}

	kind := PickKind(settings.Roster, settings.SpecialChance, s.rng)
	speed := settings.SpeedMultiplier
	if s.phases.phase == PhaseRush {
		speed *= s.cfg.Phases.RushSpawnSpeedBoost
	}

	w := kindStats(s.cfg.Enemies, kind).Width
	x := s.rng.Float64() * (s.cfg.Viewport.Width - w)
	s.addEnemy(NewEnemy(s.cfg.Enemies, kind, x, spawnY, speed, s.rng))
	s.lastSpawnAt = s.elapsedMs
}

func (s *Session) addEnemy(e Enemy) {
	s.enemies = append(s.enemies, e)
	s.emit(Event{Kind: EventEnemySpawned, X: e.X, Y: e.Y, Enemy: e.Kind})
}

func (s *Session) updatePlayer(frames float64) {
	s.player.Update(frames)
	s.player.Rect = s.player.Rect.ClampInto(s.cfg.Viewport.Width, s.cfg.Viewport.Height)
}

func (s *Session) updateBullets(frames float64) {
	kept := s.bullets[:0]
	for _, b := range s.bullets {
		b.Update(frames)
		if !b.Gone() {
			kept = append(kept, b)
		}
	}
	s.bullets = kept
}

func (s *Session) updateEnemies(frames float64) {
	kept := s.enemies[:0]
	for _, e := range s.enemies {
		advanceEnemy(&e, frames, s.elapsedMs, s.cfg.Viewport.Width, s.cfg.Formation.EntryLine)
		if e.Y <= s.cfg.Viewport.Height {
			kept = append(kept, e)
		}
	}
	s.enemies = kept
}

func (s *Session) updateExplosions() {
	kept := s.explosions[:0]
	for _, e := range s.explosions {
		e.Update()
		if !e.Done() {
			kept = append(kept, e)
		}
	}
	s.explosions = kept
}

func (s *Session) resolveCollisions() {
	var destroyed []Enemy
	s.bullets, s.enemies, destroyed = resolveBulletHits(s.bullets, s.enemies)
	for _, e := range destroyed {
		s.score += e.ScoreValue
		s.addExplosion(e.X, e.Y)
	}

	if playerCollides(s.player.Rect, s.enemies) {
		s.addExplosion(s.player.X, s.player.Y)
		s.end()
	}
}

func (s *Session) addExplosion(x, y float64) {
	s.explosions = append(s.explosions, Explosion{
		X:           x,
		Y:           y,
		Radius:      s.cfg.Explosion.Radius,
		TotalFrames: s.cfg.Explosion.Frames,
	})
	s.emit(Event{Kind: EventExplosion, X: x, Y: y})
}

func (s *Session) end() {
	if s.ended {
		return
	}
	s.ended = true
	if s.score > s.highScore {
		s.highScore = s.score
	}
	s.logger.Debug("session ended", "score", s.score, "elapsed_ms", s.elapsedMs)
	s.emit(Event{Kind: EventSessionEnded, Score: s.score})
}

// Fire spawns a bullet above the player. Hosts rate-limit calls.
// Firing is ignored unless the session is running.
func (s *Session) Fire() bool {
	if !s.Running() {
		return false
	}
	c := s.cfg.Bullet
	b := Bullet{
		Rect:  core.NewRect(s.player.X+c.OffsetX, s.player.Y-c.Height, c.Width, c.Height),
		Speed: c.Speed,
	}
	s.bullets = append(s.bullets, b)
	s.emit(Event{Kind: EventBulletFired, X: b.X, Y: b.Y})
	return true
}

// SetDirection sets or clears one steering flag.
func (s *Session) SetDirection(dir Direction, held bool) {
	switch dir {
	case DirLeft:
		s.player.MoveLeft = held
	case DirRight:
		s.player.MoveRight = held
	case DirUp:
		s.player.MoveUp = held
	case DirDown:
		s.player.MoveDown = held
	}
}

// MovePlayerTo places the player's top-left corner at (x, y).
// The position is clamped on the next tick.
func (s *Session) MovePlayerTo(x, y float64) {
	if !s.Running() {
		return
	}
	s.player.X = x
	s.player.Y = y
}

// Pause stops the clocks; entities are kept in place.
func (s *Session) Pause() {
	if s.started && !s.ended && !s.paused {
		s.paused = true
		s.logger.Debug("session paused", "elapsed_ms", s.elapsedMs)
	}
}

// Resume restarts the clocks after Pause.
func (s *Session) Resume() {
	if s.paused {
		s.paused = false
		s.logger.Debug("session resumed", "elapsed_ms", s.elapsedMs)
	}
}

// TogglePause flips the pause state and reports the new value.
func (s *Session) TogglePause() bool {
	if s.paused {
		s.Resume()
	} else {
		s.Pause()
	}
	return s.paused
}

// Running reports whether the session accepts input and advances.
func (s *Session) Running() bool {
	return s.started && !s.paused && !s.ended
}

// Paused reports whether the session is paused.
func (s *Session) Paused() bool {
	return s.paused
}

// Ended reports whether the player has been destroyed.
func (s *Session) Ended() bool {
	return s.ended
}

// ElapsedMs returns the session clock in milliseconds.
func (s *Session) ElapsedMs() float64 {
	return s.elapsedMs
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// FinalScore returns the score of the session. It is stable once Ended.
func (s *Session) FinalScore() int {
	return s.score
}

// HighScore returns the larger of the supplied high score and the current score.
func (s *Session) HighScore() int {
	if s.score > s.highScore {
		return s.score
	}
	return s.highScore
}

// Settings returns the difficulty settings for the current moment.
func (s *Session) Settings() Settings {
	return s.settings()
}

// Config returns the configuration the session was built with.
func (s *Session) Config() config.SpacewarConfig {
	return s.cfg
}
