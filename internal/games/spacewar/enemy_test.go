package spacewar

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/spacewar/internal/config"
	"github.com/vovakirdan/spacewar/internal/core"
)

func TestNewEnemyStats(t *testing.T) {
	cfg := config.DefaultSpacewarConfig().Enemies
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		kind     EnemyKind
		wantKind EnemyKind
		hp       int
		score    int
		speed    float64
	}{
		{KindBasic, KindBasic, 1, 10, 2.0},
		{KindFast, KindFast, 1, 30, 2.6},
		{KindArmored, KindArmored, 3, 30, 1.6},
		{EnemyKind(42), KindBasic, 1, 10, 2.0},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			e := NewEnemy(cfg, tc.kind, 10, -32, 2.0, rng)
			if e.Kind != tc.wantKind {
				t.Errorf("Kind = %v, expected %v", e.Kind, tc.wantKind)
			}
			if e.HP != tc.hp || e.MaxHP != tc.hp {
				t.Errorf("HP/MaxHP = %d/%d, expected %d", e.HP, e.MaxHP, tc.hp)
			}
			if e.ScoreValue != tc.score {
				t.Errorf("ScoreValue = %d, expected %d", e.ScoreValue, tc.score)
			}
			if diff := e.Speed - tc.speed; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Speed = %v, expected %v", e.Speed, tc.speed)
			}
			if e.W != 32 || e.H != 32 {
				t.Errorf("size = %vx%v, expected 32x32", e.W, e.H)
			}
		})
	}
}

func TestFastEnemyRandomParameters(t *testing.T) {
	cfg := config.DefaultSpacewarConfig().Enemies
	rng := rand.New(rand.NewSource(11))

	patterns := map[MotionPattern]bool{}
	for i := 0; i < 200; i++ {
		e := NewEnemy(cfg, KindFast, 100, -32, 3, rng)
		patterns[e.Pattern] = true

		if e.Direction != 1 && e.Direction != -1 {
			t.Fatalf("Direction = %v, expected ±1", e.Direction)
		}
		if e.OscAmplitude < 10 || e.OscAmplitude > 25 {
			t.Fatalf("OscAmplitude = %v, expected within [10, 25]", e.OscAmplitude)
		}
		if e.OscSpeed < 0.01 || e.OscSpeed > 0.03 {
			t.Fatalf("OscSpeed = %v, expected within [0.01, 0.03]", e.OscSpeed)
		}
		if e.TimeOffset < 0 || e.TimeOffset >= 100 {
			t.Fatalf("TimeOffset = %v, expected within [0, 100)", e.TimeOffset)
		}
		if e.HorizontalSpeed != e.Speed*0.5 {
			t.Fatalf("HorizontalSpeed = %v, expected half of %v", e.HorizontalSpeed, e.Speed)
		}
	}
	if len(patterns) != patternCount {
		t.Errorf("saw %d patterns in 200 spawns, expected %d", len(patterns), patternCount)
	}
}

func TestAdvanceEnemyFormationEntry(t *testing.T) {
	e := Enemy{Rect: core.NewRect(50, 0, 32, 32), Kind: KindBasic, Speed: 4, FormationSpeed: 1, IsFormation: true}

	advanceEnemy(&e, 1, 0, 380, 100)
	if e.Y != 1 {
		t.Errorf("y above entry line = %v, expected 1 (formation speed)", e.Y)
	}

	e.Y = 100
	advanceEnemy(&e, 1, 0, 380, 100)
	if e.Y != 104 {
		t.Errorf("y below entry line = %v, expected 104 (normal speed)", e.Y)
	}

	loose := Enemy{Rect: core.NewRect(50, 0, 32, 32), Kind: KindBasic, Speed: 4, FormationSpeed: 1}
	advanceEnemy(&loose, 2, 0, 380, 100)
	if loose.Y != 8 {
		t.Errorf("non-formation y = %v, expected 8", loose.Y)
	}
}

func TestAdvanceFastSweepReverses(t *testing.T) {
	e := Enemy{
		Rect:            core.NewRect(347, 0, 32, 32),
		Kind:            KindFast,
		Speed:           1,
		Pattern:         PatternSweep,
		Direction:       1,
		HorizontalSpeed: 2,
	}
	advanceEnemy(&e, 1, 0, 380, 100)
	if e.X != 349 || e.Direction != -1 {
		t.Errorf("x=%v direction=%v, expected 349 and reversed", e.X, e.Direction)
	}
	advanceEnemy(&e, 1, 0, 380, 100)
	if e.X != 347 {
		t.Errorf("x after reversal = %v, expected 347", e.X)
	}
}

func TestAdvanceFastPatternsStayInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	cfg := config.DefaultSpacewarConfig().Enemies

	for _, pattern := range []MotionPattern{PatternSine, PatternSpiral} {
		for _, startX := range []float64{0, 348} {
			e := NewEnemy(cfg, KindFast, startX, -32, 3, rng)
			e.Pattern = pattern
			for frame := 0; frame < 200; frame++ {
				advanceEnemy(&e, 1, float64(frame)*16.7, 380, 100)
				if e.X < 0 || e.X > 348 {
					t.Fatalf("pattern %d left bounds: x=%v", pattern, e.X)
				}
			}
		}
	}
}

func TestArmoredMovesLikeBasic(t *testing.T) {
	a := Enemy{Rect: core.NewRect(40, 0, 32, 32), Kind: KindArmored, Speed: 3}
	b := Enemy{Rect: core.NewRect(40, 0, 32, 32), Kind: KindBasic, Speed: 3}
	for i := 0; i < 10; i++ {
		advanceEnemy(&a, 1, float64(i)*16, 380, 100)
		advanceEnemy(&b, 1, float64(i)*16, 380, 100)
	}
	if a.Rect != b.Rect {
		t.Errorf("armored at %+v, basic at %+v, expected identical motion", a.Rect, b.Rect)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want EnemyKind
		ok   bool
	}{
		{"basic", KindBasic, true},
		{"Fast", KindFast, true},
		{" armored ", KindArmored, true},
		{"boss", KindBasic, false},
	}
	for _, tc := range tests {
		got, ok := ParseKind(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseKind(%q) = %v, %v, expected %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestExplosionProgress(t *testing.T) {
	e := Explosion{TotalFrames: 20}
	if e.Progress() != 0 {
		t.Errorf("Progress() = %v, expected 0", e.Progress())
	}
	for i := 0; i < 10; i++ {
		e.Update()
	}
	if e.Progress() != 0.5 {
		t.Errorf("Progress() = %v, expected 0.5", e.Progress())
	}
	for i := 0; i < 10; i++ {
		e.Update()
	}
	if !e.Done() {
		t.Error("explosion should be done after TotalFrames updates")
	}
	if (Explosion{}).Progress() != 1 {
		t.Error("zero-length explosion should report full progress")
	}
}
