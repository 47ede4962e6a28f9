package spacewar

import (
	"image/color"
	"math/rand"
)

// StarTints are the colors of the occasional tinted star. Tint 0 is white.
var StarTints = []color.RGBA{
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	{R: 0x64, G: 0x95, B: 0xed, A: 0xff}, // cornflower blue
	{R: 0x8a, G: 0x2b, B: 0xe2, A: 0xff}, // blue violet
	{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}, // gold
	{R: 0xff, G: 0x63, B: 0x47, A: 0xff}, // tomato
	{R: 0x00, G: 0xff, B: 0xff, A: 0xff}, // cyan
}

// Star is one background star.
type Star struct {
	X, Y       float64
	Radius     float64
	Speed      float64
	Brightness float64
	Tint       int
}

// Starfield is the scrolling background. It has no gameplay effect.
type Starfield struct {
	stars  []Star
	w, h   float64
	rng    *rand.Rand
	tinted float64
}

// NewStarfield scatters n stars over a w x h viewport.
func NewStarfield(n int, w, h, tintedChance float64, rng *rand.Rand) *Starfield {
	f := &Starfield{w: w, h: h, rng: rng, tinted: tintedChance}
	if n < 0 {
		n = 0
	}
	f.stars = make([]Star, n)
	for i := range f.stars {
		f.stars[i] = f.newStar(rng.Float64() * h)
	}
	return f
}

func (f *Starfield) newStar(y float64) Star {
	s := Star{
		X:          f.rng.Float64() * f.w,
		Y:          y,
		Radius:     0.5 + f.rng.Float64()*1.5,
		Speed:      0.1 + f.rng.Float64()*0.3,
		Brightness: 0.2 + f.rng.Float64()*0.8,
	}
	if f.rng.Float64() < f.tinted {
		s.Tint = 1 + f.rng.Intn(len(StarTints)-1)
	}
	return s
}

// Update scrolls the stars down. Stars leaving the bottom wrap to the top
// at a new horizontal position.
func (f *Starfield) Update(deltaMs float64) {
	for i := range f.stars {
		s := &f.stars[i]
		s.Y += s.Speed * deltaMs / 16
		if s.Y > f.h {
			s.Y = 0
			s.X = f.rng.Float64() * f.w
		}
	}
}

// Stars returns a copy of the stars.
func (f *Starfield) Stars() []Star {
	out := make([]Star, len(f.stars))
	copy(out, f.stars)
	return out
}
