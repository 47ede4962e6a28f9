package spacewar

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/spacewar/internal/config"
	"github.com/vovakirdan/spacewar/internal/core"
)

// newTestSession returns a started session with a fixed seed.
func newTestSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(config.DefaultSpacewarConfig(), WithSeed(42))
	s.Start(0)
	return s
}

func TestStartState(t *testing.T) {
	s := NewSession(config.DefaultSpacewarConfig(), WithSeed(1))
	ev := s.Start(250)

	if ev.Kind != EventSessionStarted {
		t.Errorf("Start() event = %v, expected %v", ev.Kind, EventSessionStarted)
	}
	snap := s.Snapshot()
	if snap.Phase != PhaseNormal || snap.ElapsedMs != 0 || snap.Score != 0 {
		t.Errorf("Start() snapshot = phase %v elapsed %v score %d, expected normal/0/0", snap.Phase, snap.ElapsedMs, snap.Score)
	}
	if snap.HighScore != 250 {
		t.Errorf("HighScore = %d, expected 250", snap.HighScore)
	}
	if snap.Player.X != 174 || snap.Player.Y != 450 {
		t.Errorf("player spawned at (%v, %v), expected (174, 450)", snap.Player.X, snap.Player.Y)
	}
	if len(snap.Stars) != 100 {
		t.Errorf("len(Stars) = %d, expected 100", len(snap.Stars))
	}
}

func TestTickIgnoredBeforeStart(t *testing.T) {
	s := NewSession(config.DefaultSpacewarConfig(), WithSeed(1))
	s.Tick(5000)
	if s.Snapshot().ElapsedMs != 0 {
		t.Error("Tick before Start should not advance the clock")
	}
}

func TestTickNonPositiveDeltaIsNoop(t *testing.T) {
	s := newTestSession(t)
	for i := 0; i < 20; i++ {
		s.Tick(100)
	}
	s.Fire()
	s.Tick(16)

	before := s.Snapshot()
	for _, delta := range []float64{0, -1, -1000} {
		res := s.Tick(delta)
		if len(res.Events) != 0 {
			t.Errorf("Tick(%v) emitted %d events, expected none", delta, len(res.Events))
		}
	}
	after := s.Snapshot()

	if !reflect.DeepEqual(before, after) {
		t.Errorf("state changed after non-positive ticks:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestTickNonFiniteDeltaIsNoop(t *testing.T) {
	s := newTestSession(t)
	s.Tick(100)

	for _, delta := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		if res := s.Tick(delta); len(res.Events) != 0 {
			t.Errorf("Tick(%v) emitted %d events, expected none", delta, len(res.Events))
		}
	}
	if got := s.ElapsedMs(); got != 100 {
		t.Fatalf("ElapsedMs() = %v after non-finite ticks, expected 100", got)
	}

	// One second of normal frames still spawns at the regular rate.
	spawned := 0
	for i := 0; i < 60; i++ {
		res := s.Tick(16.6)
		for _, e := range res.Events {
			if e.Kind == EventEnemySpawned {
				spawned++
			}
		}
		s.enemies = s.enemies[:0]
	}
	if spawned > 1 {
		t.Errorf("spawned %d enemies in one second, expected at most 1", spawned)
	}
	if c := s.Settings().DifficultyCoefficient; math.IsInf(c, 0) || math.IsNaN(c) {
		t.Errorf("DifficultyCoefficient = %v, expected a finite value", c)
	}
}

func TestTickNonPositiveKeepsPauseFlag(t *testing.T) {
	s := newTestSession(t)
	s.Pause()
	s.Tick(0)
	if !s.Paused() {
		t.Error("Tick(0) should not clear the paused flag")
	}
	s.Resume()
	s.Tick(-5)
	if s.Paused() {
		t.Error("Tick(-5) should not set the paused flag")
	}
}

func TestPauseStopsClocks(t *testing.T) {
	s := newTestSession(t)
	s.Tick(100)
	s.Pause()
	s.Tick(1000)

	if got := s.Snapshot().ElapsedMs; got != 100 {
		t.Errorf("ElapsedMs while paused = %v, expected 100", got)
	}
	if s.Fire() {
		t.Error("Fire() while paused should be ignored")
	}

	if paused := s.TogglePause(); paused {
		t.Error("TogglePause() should resume")
	}
	s.Tick(100)
	if got := s.Snapshot().ElapsedMs; got != 200 {
		t.Errorf("ElapsedMs after resume = %v, expected 200", got)
	}
}

func TestRandomSpawnAfterInterval(t *testing.T) {
	s := newTestSession(t)

	res := s.Tick(0)
	if res.Has(EventEnemySpawned) || len(s.Snapshot().Enemies) != 0 {
		t.Fatal("nothing should spawn on a zero tick")
	}

	for i := 1; i < 15; i++ {
		res = s.Tick(100)
		if res.Has(EventEnemySpawned) {
			t.Fatalf("enemy spawned at %dms, before the 1500ms interval", i*100)
		}
	}

	res = s.Tick(100)
	if n := res.Count(EventEnemySpawned); n != 1 {
		t.Fatalf("spawned %d enemies at 1500ms, expected 1", n)
	}
	for _, ev := range res.Events {
		if ev.Kind == EventEnemySpawned && ev.Y != -32 {
			t.Errorf("enemy spawned at y=%v, expected -32", ev.Y)
		}
	}

	enemies := s.Snapshot().Enemies
	if len(enemies) != 1 {
		t.Fatalf("len(Enemies) = %d, expected 1", len(enemies))
	}
	if enemies[0].Kind != KindBasic {
		t.Errorf("first tier spawned %v, expected basic", enemies[0].Kind)
	}
	if enemies[0].X < 0 || enemies[0].X > 380-32 {
		t.Errorf("enemy x = %v, expected inside [0, 348]", enemies[0].X)
	}
}

func TestBulletKillsBasicEnemy(t *testing.T) {
	s := newTestSession(t)
	rng := rand.New(rand.NewSource(1))

	enemy := NewEnemy(s.cfg.Enemies, KindBasic, 100, 200, 2.9, rng)
	s.enemies = []Enemy{enemy}
	s.bullets = []Bullet{{Rect: core.NewRect(110, 205, 8, 8), Speed: 8}}

	res := s.Tick(16)

	snap := s.Snapshot()
	if len(snap.Enemies) != 0 {
		t.Errorf("len(Enemies) = %d, expected 0", len(snap.Enemies))
	}
	if len(snap.Bullets) != 0 {
		t.Errorf("len(Bullets) = %d, expected 0", len(snap.Bullets))
	}
	if snap.Score != 10 || res.Score != 10 {
		t.Errorf("Score = %d (result %d), expected 10", snap.Score, res.Score)
	}
	if len(snap.Explosions) != 1 {
		t.Fatalf("len(Explosions) = %d, expected 1", len(snap.Explosions))
	}
	ex := snap.Explosions[0]
	if ex.X != 100 || ex.Y < 200 || ex.Y > 210 {
		t.Errorf("explosion at (%v, %v), expected at the enemy near (100, 203)", ex.X, ex.Y)
	}
	if !res.Has(EventExplosion) {
		t.Error("expected an explosion event")
	}
	if res.Ended {
		t.Error("killing an enemy should not end the session")
	}
}

func TestHitsToDestroy(t *testing.T) {
	tests := []struct {
		kind  EnemyKind
		hits  int
		score int
	}{
		{KindBasic, 1, 10},
		{KindFast, 1, 30},
		{KindArmored, 3, 30},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			s := newTestSession(t)
			rng := rand.New(rand.NewSource(7))
			s.enemies = []Enemy{NewEnemy(s.cfg.Enemies, tc.kind, 100, 150, 0, rng)}

			for hit := 1; hit <= tc.hits; hit++ {
				e := s.enemies[0]
				s.bullets = []Bullet{{Rect: core.NewRect(e.X+12, e.Y+12, 8, 8)}}
				s.Tick(1)

				if hit < tc.hits {
					if len(s.enemies) != 1 {
						t.Fatalf("enemy destroyed after %d hits, expected %d", hit, tc.hits)
					}
					if s.enemies[0].HP != tc.hits-hit {
						t.Errorf("HP after %d hits = %d, expected %d", hit, s.enemies[0].HP, tc.hits-hit)
					}
					if s.Score() != 0 {
						t.Errorf("Score = %d before destruction, expected 0", s.Score())
					}
				}
			}

			if len(s.enemies) != 0 {
				t.Fatalf("enemy survived %d hits", tc.hits)
			}
			if s.Score() != tc.score {
				t.Errorf("Score = %d, expected %d", s.Score(), tc.score)
			}
		})
	}
}

func TestPlayerCollisionEndsSession(t *testing.T) {
	s := newTestSession(t)
	rng := rand.New(rand.NewSource(3))

	p := s.player
	s.enemies = []Enemy{
		NewEnemy(s.cfg.Enemies, KindBasic, 10, 10, 0, rng),
		NewEnemy(s.cfg.Enemies, KindArmored, p.X, p.Y, 0, rng),
		NewEnemy(s.cfg.Enemies, KindBasic, 300, 10, 0, rng),
	}
	s.bullets = []Bullet{{Rect: core.NewRect(50, 300, 8, 8), Speed: 8}}

	res := s.Tick(16)
	if !res.Ended || !s.Ended() {
		t.Fatal("session should end when the player overlaps an enemy")
	}
	if res.Count(EventSessionEnded) != 1 {
		t.Errorf("EventSessionEnded count = %d, expected 1", res.Count(EventSessionEnded))
	}

	snap := s.Snapshot()
	found := false
	for _, ex := range snap.Explosions {
		if ex.X == p.X && ex.Y == p.Y {
			found = true
		}
	}
	if !found {
		t.Errorf("no explosion at the player position (%v, %v)", p.X, p.Y)
	}

	// Ended sessions do not advance
	elapsed := snap.ElapsedMs
	res = s.Tick(100)
	if s.Snapshot().ElapsedMs != elapsed || res.Has(EventSessionEnded) {
		t.Error("Tick after end should be a no-op")
	}
}

func TestHighScoreUpdatedOnEnd(t *testing.T) {
	s := NewSession(config.DefaultSpacewarConfig(), WithSeed(5))
	s.Start(5)
	s.score = 40
	s.end()
	if s.HighScore() != 40 || s.FinalScore() != 40 {
		t.Errorf("HighScore() = %d, FinalScore() = %d, expected 40/40", s.HighScore(), s.FinalScore())
	}

	s.Start(3)
	if s.HighScore() != 3 {
		t.Errorf("HighScore() after restart = %d, expected the supplied 3", s.HighScore())
	}
}

func TestFireSpawnsBulletAbovePlayer(t *testing.T) {
	s := newTestSession(t)
	if !s.Fire() {
		t.Fatal("Fire() should succeed on a running session")
	}

	b := s.bullets[0]
	if b.X != s.player.X+12 || b.Y != s.player.Y-8 {
		t.Errorf("bullet at (%v, %v), expected (%v, %v)", b.X, b.Y, s.player.X+12, s.player.Y-8)
	}

	res := s.Tick(16)
	if !res.Has(EventBulletFired) {
		t.Error("bullet fired event should be reported on the next tick")
	}
}

func TestBulletsRemovedAboveTop(t *testing.T) {
	s := newTestSession(t)
	s.bullets = []Bullet{
		{Rect: core.NewRect(10, -7, 8, 8), Speed: 8},
		{Rect: core.NewRect(10, 300, 8, 8), Speed: 8},
	}
	s.Tick(1000.0 / 60.0)
	if len(s.bullets) != 1 || s.bullets[0].Y >= 300 {
		t.Errorf("bullets after tick = %+v, expected only the lower one moved up", s.bullets)
	}
}

func TestEnemiesRemovedBelowBottom(t *testing.T) {
	s := newTestSession(t)
	rng := rand.New(rand.NewSource(1))
	s.enemies = []Enemy{
		NewEnemy(s.cfg.Enemies, KindBasic, 0, 499, 2.9, rng),
		NewEnemy(s.cfg.Enemies, KindBasic, 0, 10, 2.9, rng),
	}
	s.Tick(1000.0 / 60.0)
	if len(s.enemies) != 1 || s.enemies[0].Y > 20 {
		t.Errorf("enemies after tick = %d, expected only the upper one", len(s.enemies))
	}
}

func TestPlayerMovementAndClamp(t *testing.T) {
	s := newTestSession(t)
	startX := s.player.X

	s.SetDirection(DirLeft, true)
	s.Tick(1000.0 / 60.0)
	if got := s.player.X; got != startX-5 {
		t.Errorf("player x after one frame = %v, expected %v", got, startX-5)
	}
	s.SetDirection(DirLeft, false)

	s.MovePlayerTo(-100, 1000)
	s.Tick(1)
	if s.player.X != 0 || s.player.Y != 500-32 {
		t.Errorf("player at (%v, %v), expected clamped to (0, 468)", s.player.X, s.player.Y)
	}
}

func TestHugeDeltaIsClamped(t *testing.T) {
	s := newTestSession(t)
	s.SetDirection(DirUp, true)
	startY := s.player.Y

	s.Tick(10000)

	maxStep := 5 * s.cfg.Simulation.MaxFramesPerTick
	if moved := startY - s.player.Y; moved > maxStep+1e-9 {
		t.Errorf("player moved %v in one tick, expected at most %v", moved, maxStep)
	}
	if s.Snapshot().ElapsedMs != 10000 {
		t.Errorf("clock should advance by the full delta")
	}
}

func TestExplosionsExpire(t *testing.T) {
	s := newTestSession(t)
	s.addExplosion(50, 50)
	s.events = nil

	for i := 0; i < 19; i++ {
		s.Tick(1)
	}
	if len(s.explosions) != 1 {
		t.Fatalf("explosion expired early after 19 frames")
	}
	s.Tick(1)
	if len(s.explosions) != 0 {
		t.Errorf("explosion should be removed after 20 frames")
	}
}

func TestPhaseCycleWithFormation(t *testing.T) {
	s := newTestSession(t)

	var phases []Phase
	formations := 0
	tick := func() TickResult {
		res := s.Tick(100)
		// Keep the field empty so nothing can hit the player.
		s.enemies = nil
		for _, ev := range res.Events {
			switch ev.Kind {
			case EventPhaseChanged:
				phases = append(phases, ev.Phase)
			case EventFormationStarted:
				formations++
			}
		}
		return res
	}

	for i := 0; i < 199; i++ {
		tick()
	}
	if s.Snapshot().Phase != PhaseNormal {
		t.Fatalf("phase at 19900ms = %v, expected normal", s.Snapshot().Phase)
	}

	tick()
	snap := s.Snapshot()
	if snap.Phase != PhaseRush || !snap.Warning || snap.PhaseElapsedMs != 0 {
		t.Fatalf("at 20000ms: phase %v warning %v phaseElapsed %v, expected rush/true/0", snap.Phase, snap.Warning, snap.PhaseElapsedMs)
	}

	for i := 0; i < 149; i++ {
		tick()
	}
	snap = s.Snapshot()
	if snap.Phase != PhaseRush {
		t.Fatalf("phase at 34900ms = %v, expected rush", snap.Phase)
	}
	if snap.WarningIntensity < 0 || snap.WarningIntensity > 1 {
		t.Errorf("WarningIntensity = %v, expected within [0, 1]", snap.WarningIntensity)
	}
	if formations != 0 {
		t.Fatalf("formation started during rush")
	}

	tick()
	snap = s.Snapshot()
	if snap.Phase != PhaseNormal || snap.Warning {
		t.Fatalf("at 35000ms: phase %v warning %v, expected normal/false", snap.Phase, snap.Warning)
	}
	if formations != 1 {
		t.Errorf("formations started = %d, expected 1", formations)
	}
	if !snap.FormationActive {
		t.Error("formation should be active right after rush ends")
	}

	want := []Phase{PhaseRush, PhaseNormal}
	if !reflect.DeepEqual(phases, want) {
		t.Errorf("phase changes = %v, expected %v", phases, want)
	}
}

func TestFormationSuppressesRandomSpawn(t *testing.T) {
	s := newTestSession(t)
	s.formation.Start([]Entry{
		{X: 10, Y: -32, FireDelayMs: 0, Kind: KindBasic},
		{X: 60, Y: -32, FireDelayMs: 5000, Kind: KindBasic},
	})

	spawned := 0
	for i := 0; i < 30; i++ {
		res := s.Tick(100)
		spawned += res.Count(EventEnemySpawned)
	}
	if spawned != 1 {
		t.Errorf("spawned %d enemies in 3s with a formation pending, expected only the first entry", spawned)
	}
	for _, e := range s.enemies {
		if !e.IsFormation {
			t.Error("random enemy spawned while formation active")
		}
		if e.FormationSpeed != 2.9*0.5 {
			t.Errorf("FormationSpeed = %v, expected %v", e.FormationSpeed, 2.9*0.5)
		}
	}
}

func TestSessionDeterministicPerSeed(t *testing.T) {
	run := func() Snapshot {
		s := NewSession(config.DefaultSpacewarConfig(), WithSeed(99))
		s.Start(0)
		for i := 0; i < 300; i++ {
			if i%15 == 0 {
				s.Fire()
			}
			s.Tick(1000.0 / 60.0)
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("two sessions with the same seed diverged")
	}
}
