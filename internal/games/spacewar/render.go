package spacewar

import (
	"fmt"
	"math"

	"github.com/vovakirdan/spacewar/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar    = '▲'
	BasicChar     = 'W'
	FastChar      = 'V'
	ArmoredChar   = '█'
	DamagedChar   = '▓'
	CrackedChar   = '▒'
	BulletChar    = '|'
	StarChar      = '.'
	BrightStar    = '+'
	ExplosionChar = '*'
	FadingChar    = '·'
	WarningChar   = '!'
)

// starColors maps star tints to terminal colors.
var starColors = [...]core.Color{
	core.ColorDimGray,
	core.ColorBrightBlue,
	core.ColorMagenta,
	core.ColorYellow,
	core.ColorRed,
	core.ColorCyan,
}

// hudRows is the number of screen rows above the playfield.
const hudRows = 1

// viewportMapper projects viewport pixels onto screen cells.
type viewportMapper struct {
	sx, sy  float64
	offsetY int
	w, h    int
}

func newViewportMapper(snap Snapshot, dst *core.Screen) viewportMapper {
	w := dst.Width()
	h := dst.Height() - hudRows
	if h < 1 {
		h = 1
	}
	return viewportMapper{
		sx:      float64(w) / snap.ViewportW,
		sy:      float64(h) / snap.ViewportH,
		offsetY: hudRows,
		w:       w,
		h:       h,
	}
}

// point maps a viewport point to a cell.
func (m viewportMapper) point(x, y float64) (int, int) {
	return int(math.Floor(x * m.sx)), int(math.Floor(y*m.sy)) + m.offsetY
}

// rect maps a viewport rectangle to a cell rectangle of at least one cell.
func (m viewportMapper) rect(r core.Rect) (x, y, w, h int) {
	x, y = m.point(r.X, r.Y)
	x1 := int(math.Ceil(r.Right() * m.sx))
	y1 := int(math.Ceil(r.Bottom()*m.sy)) + m.offsetY
	return x, y, core.Max(1, x1-x), core.Max(1, y1-y)
}

// inField reports whether a cell row belongs to the playfield.
func (m viewportMapper) inField(y int) bool {
	return y >= m.offsetY && y < m.offsetY+m.h
}

// fill draws a cell rectangle clipped to the playfield.
func (m viewportMapper) fill(dst *core.Screen, x, y, w, h int, r rune, c core.Color) {
	for row := y; row < y+h; row++ {
		if !m.inField(row) {
			continue
		}
		for col := x; col < x+w; col++ {
			dst.SetWithColor(col, row, r, c)
		}
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}
	RenderSnapshot(g.session.Snapshot(), dst)
}

// RenderSnapshot draws a snapshot onto a character screen, scaling the
// viewport to fill everything below the HUD row.
func RenderSnapshot(snap Snapshot, dst *core.Screen) {
	if dst.Width() <= 0 || dst.Height() <= hudRows || snap.ViewportW <= 0 || snap.ViewportH <= 0 {
		return
	}
	m := newViewportMapper(snap, dst)

	for _, s := range snap.Stars {
		x, y := m.point(s.X, s.Y)
		if !m.inField(y) {
			continue
		}
		r := StarChar
		if s.Brightness > 0.8 {
			r = BrightStar
		}
		c := core.ColorDimGray
		if s.Tint > 0 && s.Tint < len(starColors) {
			c = starColors[s.Tint]
		}
		dst.SetWithColor(x, y, r, c)
	}

	if snap.Warning && snap.WarningIntensity > 0.5 {
		drawWarningBorder(dst, m)
	}

	for _, b := range snap.Bullets {
		x, y, w, h := m.rect(b.Rect)
		m.fill(dst, x, y, w, h, BulletChar, core.ColorBrightYellow)
	}

	for _, e := range snap.Enemies {
		x, y, w, h := m.rect(e.Rect)
		r, c := enemyGlyph(e)
		m.fill(dst, x, y, w, h, r, c)
	}

	px, py, pw, ph := m.rect(snap.Player.Rect)
	if !snap.Ended {
		m.fill(dst, px, py, pw, ph, PlayerChar, core.ColorBrightBlue)
	}

	for _, e := range snap.Explosions {
		drawExplosion(dst, m, e)
	}

	drawHUD(dst, snap)

	switch {
	case snap.Ended:
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  Best: %d  |  R restart  Q quit", snap.Score, snap.HighScore))
	case snap.Paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// enemyGlyph picks the rune and color for an enemy; armored enemies
// show their remaining hit points.
func enemyGlyph(e Enemy) (rune, core.Color) {
	switch e.Kind {
	case KindFast:
		return FastChar, core.ColorBrightRed
	case KindArmored:
		switch {
		case e.HP >= e.MaxHP:
			return ArmoredChar, core.ColorGray
		case e.HP == 1:
			return CrackedChar, core.ColorGray
		default:
			return DamagedChar, core.ColorGray
		}
	default:
		return BasicChar, core.ColorBrightGreen
	}
}

func drawExplosion(dst *core.Screen, m viewportMapper, e Explosion) {
	radius := e.Radius * (0.5 + e.Progress())
	r := core.NewRect(e.X+16-radius, e.Y+16-radius, radius*2, radius*2)
	x, y, w, h := m.rect(r)

	glyph, c := ExplosionChar, core.ColorOrange
	if e.Progress() > 0.6 {
		glyph, c = FadingChar, core.ColorYellow
	}
	// Sparse ring so the explosion does not hide everything under it.
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			if (row+col)%2 == 0 && m.inField(row) {
				dst.SetWithColor(col, row, glyph, c)
			}
		}
	}
}

func drawWarningBorder(dst *core.Screen, m viewportMapper) {
	top, bottom := m.offsetY, m.offsetY+m.h-1
	for x := 0; x < m.w; x++ {
		dst.SetWithColor(x, top, WarningChar, core.ColorRed)
		dst.SetWithColor(x, bottom, WarningChar, core.ColorRed)
	}
	for y := top; y <= bottom; y++ {
		dst.SetWithColor(0, y, WarningChar, core.ColorRed)
		dst.SetWithColor(m.w-1, y, WarningChar, core.ColorRed)
	}
}

func drawHUD(dst *core.Screen, snap Snapshot) {
	dst.DrawRect(0, 0, dst.Width(), hudRows, ' ', core.ColorDefault)

	left := fmt.Sprintf(" Score: %d  Best: %d", snap.Score, snap.HighScore)
	dst.DrawTextColor(0, 0, left, core.ColorBrightWhite)

	phaseColor := core.ColorGreen
	switch snap.Phase {
	case PhaseRush:
		phaseColor = core.ColorBrightRed
	case PhaseBoss:
		phaseColor = core.ColorMagenta
	}
	right := fmt.Sprintf("%s  T%d  %02d:%02d ", phaseLabel(snap.Phase), snap.Tier+1,
		int(snap.ElapsedMs/60000), int(snap.ElapsedMs/1000)%60)
	dst.DrawTextColor(dst.Width()-len([]rune(right)), 0, right, phaseColor)
}

func phaseLabel(p Phase) string {
	switch p {
	case PhaseRush:
		return "RUSH"
	case PhaseBoss:
		return "BOSS"
	default:
		return "NORMAL"
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorWhite)

	dst.DrawTextColor(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightWhite)
	dst.DrawTextColor(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle, core.ColorWhite)
}
