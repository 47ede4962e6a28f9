package desktop

import (
	"image/color"
	"testing"

	"github.com/vovakirdan/spacewar/internal/config"
	"github.com/vovakirdan/spacewar/internal/games/spacewar"
	"github.com/vovakirdan/spacewar/internal/storage"
)

const frameMs = 1000.0 / 60.0

type fakeStore struct {
	best int
	runs []storage.Run
}

func (s *fakeStore) SaveRun(run storage.Run) (int64, error) {
	s.runs = append(s.runs, run)
	return int64(len(s.runs)), nil
}

func (s *fakeStore) HighScore(gameID string) (int, error) {
	return s.best, nil
}

func newTestGame(t *testing.T, cfg config.SpacewarConfig, store ScoreStore) *Game {
	t.Helper()
	return New(cfg, Options{Store: store, Difficulty: "normal", Seed: 7})
}

// crashConfig squeezes the viewport so spawned enemies land on the player.
func crashConfig() config.SpacewarConfig {
	cfg := config.DefaultSpacewarConfig()
	cfg.Viewport.Width = 32
	cfg.Viewport.Height = 100
	cfg.Player.SpawnDY = 40
	cfg.Difficulty.Tiers[0].SpawnIntervalMs = 0
	return cfg
}

func TestNewLoadsHighScore(t *testing.T) {
	g := newTestGame(t, config.DefaultSpacewarConfig(), &fakeStore{best: 420})
	if got := g.Session().HighScore(); got != 420 {
		t.Errorf("HighScore() = %d, expected 420", got)
	}
	if !g.Session().Running() {
		t.Error("session should be running after New")
	}
}

func TestLayout(t *testing.T) {
	g := newTestGame(t, config.DefaultSpacewarConfig(), nil)
	w, h := g.Layout(1920, 1080)
	if w != 380 || h != 500 {
		t.Errorf("Layout() = %dx%d, expected 380x500", w, h)
	}
}

func TestStepKeyboardMovesPlayer(t *testing.T) {
	g := newTestGame(t, config.DefaultSpacewarConfig(), nil)
	startX := g.Session().Snapshot().Player.X

	g.step(inputState{left: true}, frameMs)
	if got := g.Session().Snapshot().Player.X; got >= startX {
		t.Errorf("Player.X = %v, expected less than %v", got, startX)
	}

	// Releasing the key stops the ship.
	g.step(inputState{}, frameMs)
	x := g.Session().Snapshot().Player.X
	g.step(inputState{}, frameMs)
	if got := g.Session().Snapshot().Player.X; got != x {
		t.Errorf("Player.X = %v after release, expected %v", got, x)
	}
}

func TestStepFire(t *testing.T) {
	g := newTestGame(t, config.DefaultSpacewarConfig(), nil)

	g.step(inputState{fire: true}, frameMs)
	g.step(inputState{}, frameMs)
	if got := len(g.Session().Snapshot().Bullets); got != 1 {
		t.Errorf("len(Bullets) = %d, expected 1", got)
	}
}

func TestStepPause(t *testing.T) {
	g := newTestGame(t, config.DefaultSpacewarConfig(), nil)

	g.step(inputState{pause: true}, frameMs)
	if !g.Session().Paused() {
		t.Fatal("session should be paused")
	}
	elapsed := g.Session().Snapshot().ElapsedMs

	g.step(inputState{fire: true}, frameMs)
	if got := g.Session().Snapshot().ElapsedMs; got != elapsed {
		t.Errorf("ElapsedMs = %v while paused, expected %v", got, elapsed)
	}
	if got := len(g.Session().Snapshot().Bullets); got != 0 {
		t.Errorf("len(Bullets) = %d while paused, expected 0", got)
	}

	g.step(inputState{pause: true}, frameMs)
	if g.Session().Paused() {
		t.Error("second pause press should resume")
	}
}

func TestStepPointerCentersShip(t *testing.T) {
	g := newTestGame(t, config.DefaultSpacewarConfig(), nil)

	g.step(inputState{pointer: true, pointerX: 100, pointerY: 400}, frameMs)
	p := g.Session().Snapshot().Player
	if p.X != 84 || p.Y != 384 {
		t.Errorf("Player = (%v, %v), expected (84, 384)", p.X, p.Y)
	}
}

func TestStepPointerOutsideField(t *testing.T) {
	g := newTestGame(t, config.DefaultSpacewarConfig(), nil)
	start := g.Session().Snapshot().Player

	for _, pos := range [][2]float64{{-20, 400}, {100, 500}, {380, 10}} {
		g.step(inputState{pointer: true, pointerTap: true, pointerX: pos[0], pointerY: pos[1]}, frameMs)
	}
	p := g.Session().Snapshot().Player
	if p.X != start.X || p.Y != start.Y {
		t.Errorf("Player = (%v, %v), expected unmoved (%v, %v)", p.X, p.Y, start.X, start.Y)
	}
	if got := len(g.Session().Snapshot().Bullets); got != 0 {
		t.Errorf("len(Bullets) = %d, expected 0", got)
	}
}

func TestStepPointerFireRate(t *testing.T) {
	g := newTestGame(t, config.DefaultSpacewarConfig(), nil)
	hold := inputState{pointer: true, pointerX: 190, pointerY: 450}

	for i := 0; i < 10; i++ {
		g.step(hold, frameMs)
	}
	if got := len(g.Session().Snapshot().Bullets); got != 1 {
		t.Fatalf("len(Bullets) = %d after 10 frames, expected 1", got)
	}

	for i := 0; i < 10; i++ {
		g.step(hold, frameMs)
	}
	if got := len(g.Session().Snapshot().Bullets); got != 2 {
		t.Errorf("len(Bullets) = %d after 20 frames, expected 2", got)
	}
}

func TestStepSavesOnceAndRestarts(t *testing.T) {
	store := &fakeStore{}
	g := newTestGame(t, crashConfig(), store)

	for i := 0; i < 600 && !g.Session().Ended(); i++ {
		g.step(inputState{fire: i < 5}, frameMs)
	}
	if !g.Session().Ended() {
		t.Fatal("session should have ended")
	}
	if len(store.runs) != 1 {
		t.Fatalf("saved %d runs, expected 1", len(store.runs))
	}
	run := store.runs[0]
	if run.GameID != spacewar.GameID || run.Score <= 0 || run.Difficulty != "normal" {
		t.Errorf("saved run = %+v", run)
	}
	if run.DurationMs <= 0 {
		t.Errorf("DurationMs = %d, expected positive", run.DurationMs)
	}

	// Further frames do not save again.
	for i := 0; i < 5; i++ {
		g.step(inputState{}, frameMs)
	}
	if len(store.runs) != 1 {
		t.Errorf("saved %d runs after idle frames, expected 1", len(store.runs))
	}

	// A tap outside the field does not restart.
	g.step(inputState{pointer: true, pointerTap: true, pointerX: 50, pointerY: 200}, frameMs)
	if !g.Session().Ended() {
		t.Fatal("tap outside the field restarted the game")
	}

	best := run.Score
	g.step(inputState{pointer: true, pointerTap: true, pointerX: 10, pointerY: 50}, frameMs)
	if g.Session().Ended() {
		t.Fatal("restart should start a new session")
	}
	if got := g.Session().HighScore(); got != best {
		t.Errorf("HighScore() = %d after restart, expected %d", got, best)
	}
	if got := g.Session().Score(); got != 0 {
		t.Errorf("Score() = %d after restart, expected 0", got)
	}
}

func TestEnemyColor(t *testing.T) {
	tests := []struct {
		kind spacewar.EnemyKind
		want color.NRGBA
	}{
		{spacewar.KindBasic, colorBasic},
		{spacewar.KindFast, colorFast},
		{spacewar.KindArmored, colorArmored},
	}
	for _, tc := range tests {
		if got := enemyColor(tc.kind); got != tc.want {
			t.Errorf("enemyColor(%v) = %v, expected %v", tc.kind, got, tc.want)
		}
	}
}

func TestHPColor(t *testing.T) {
	if got := hpColor(3, 3); got != colorBasic {
		t.Errorf("hpColor(3, 3) = %v, expected green", got)
	}
	if got := hpColor(1, 3); got != colorFast {
		t.Errorf("hpColor(1, 3) = %v, expected red", got)
	}
	if got := hpColor(1, 0); got != colorFast {
		t.Errorf("hpColor(1, 0) = %v, expected red", got)
	}
}

func TestStarColor(t *testing.T) {
	s := spacewar.Star{Brightness: 0.5, Tint: 0}
	got := starColor(s)
	if got.R != 0xff || got.G != 0xff || got.B != 0xff || got.A != 127 {
		t.Errorf("starColor() = %v, expected half-transparent white", got)
	}

	s = spacewar.Star{Brightness: 2, Tint: 99}
	if got := starColor(s); got.A != 255 || got.R != 0xff {
		t.Errorf("starColor() = %v, expected clamped white", got)
	}
}

func TestWarningColor(t *testing.T) {
	if got := warningColor(1); got.R != 0xff || got.A != 51 {
		t.Errorf("warningColor(1) = %v, expected alpha 51", got)
	}
	if got := warningColor(-1); got.A != 0 {
		t.Errorf("warningColor(-1) = %v, expected transparent", got)
	}
}
