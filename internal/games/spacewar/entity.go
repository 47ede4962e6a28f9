// Package spacewar implements the spacewar simulation: a ship at the bottom of a
// fixed viewport shooting down waves of descending enemies.
//
// The package is host agnostic. A host creates a Session, calls Tick with the
// milliseconds elapsed since the previous frame and reads Snapshot for drawing
// and TickResult.Events for audio.
package spacewar

import "github.com/vovakirdan/spacewar/internal/core"

// Player is the ship controlled by the user.
type Player struct {
	core.Rect
	Speed     float64 // Pixels per frame
	MoveLeft  bool
	MoveRight bool
	MoveUp    bool
	MoveDown  bool
}

// Update moves the player according to its direction flags.
// Clamping to the viewport is done by the session.
func (p *Player) Update(frames float64) {
	step := p.Speed * frames
	if p.MoveLeft {
		p.X -= step
	}
	if p.MoveRight {
		p.X += step
	}
	if p.MoveUp {
		p.Y -= step
	}
	if p.MoveDown {
		p.Y += step
	}
}

// Bullet is a player projectile travelling upwards.
type Bullet struct {
	core.Rect
	Speed float64
}

// Update moves the bullet up.
func (b *Bullet) Update(frames float64) {
	b.Y -= b.Speed * frames
}

// Gone reports whether the bullet has left the top of the viewport.
func (b *Bullet) Gone() bool {
	return b.Y < -b.H
}

// Explosion is a purely visual effect. It never collides.
type Explosion struct {
	X, Y        float64
	Radius      float64
	Frame       int
	TotalFrames int
}

// Update advances the animation by one frame.
func (e *Explosion) Update() {
	e.Frame++
}

// Done reports whether the animation has finished.
func (e *Explosion) Done() bool {
	return e.Frame >= e.TotalFrames
}

// Progress returns the animation progress in [0, 1].
func (e Explosion) Progress() float64 {
	if e.TotalFrames <= 0 {
		return 1
	}
	return core.ClampF(float64(e.Frame)/float64(e.TotalFrames), 0, 1)
}
