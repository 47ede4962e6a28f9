package desktop

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/spacewar/internal/core"
	"github.com/vovakirdan/spacewar/internal/games/spacewar"
)

var (
	colorBackground = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
	colorPlayer     = color.NRGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}
	colorCockpit    = color.NRGBA{R: 0xf1, G: 0xc4, B: 0x0f, A: 0xff}
	colorBullet     = color.NRGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
	colorBasic      = color.NRGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff}
	colorFast       = color.NRGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
	colorArmored    = color.NRGBA{R: 0x7f, G: 0x8c, B: 0x8d, A: 0xff}
	colorHull       = color.NRGBA{R: 0xc0, G: 0x39, B: 0x2b, A: 0xff}
	colorPlating    = color.NRGBA{R: 0xbd, G: 0xc3, B: 0xc7, A: 0xff}
	colorHPBack     = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0x80}
	colorBlastOuter = color.NRGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xcc}
	colorBlastInner = color.NRGBA{R: 0xff, G: 0x45, B: 0x00, A: 0xcc}
	colorDim        = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0x80}
	colorText       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorWarnText   = color.NRGBA{R: 0xff, G: 0x55, B: 0x55, A: 0xff}
)

// enemyColor returns the body color of an enemy kind.
func enemyColor(k spacewar.EnemyKind) color.NRGBA {
	switch k {
	case spacewar.KindFast:
		return colorFast
	case spacewar.KindArmored:
		return colorArmored
	default:
		return colorBasic
	}
}

// hpColor is green above half health and red otherwise.
func hpColor(hp, maxHP int) color.NRGBA {
	if maxHP > 0 && float64(hp)/float64(maxHP) > 0.5 {
		return colorBasic
	}
	return colorFast
}

// starColor scales a star tint by its brightness.
func starColor(s spacewar.Star) color.NRGBA {
	tint := spacewar.StarTints[0]
	if s.Tint > 0 && s.Tint < len(spacewar.StarTints) {
		tint = spacewar.StarTints[s.Tint]
	}
	a := core.ClampF(s.Brightness, 0, 1)
	return color.NRGBA{R: tint.R, G: tint.G, B: tint.B, A: uint8(a * 255)}
}

// warningColor is the red overlay shown while the rush warning flashes.
func warningColor(intensity float64) color.NRGBA {
	intensity = core.ClampF(intensity, 0, 1)
	return color.NRGBA{R: 0xff, A: uint8(intensity * 0.2 * 255)}
}

// Draw renders the current snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.session.Snapshot()
	w, h := float32(snap.ViewportW), float32(snap.ViewportH)

	screen.Fill(colorBackground)

	for _, s := range snap.Stars {
		vector.FillCircle(screen, float32(s.X), float32(s.Y), float32(s.Radius), starColor(s), true)
	}

	if snap.Warning {
		vector.FillRect(screen, 0, 0, w, h, warningColor(snap.WarningIntensity), false)
	}

	drawPlayer(screen, snap.Player)
	for _, b := range snap.Bullets {
		vector.FillRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), colorBullet, false)
	}
	for _, e := range snap.Enemies {
		drawEnemy(screen, e)
	}
	for _, e := range snap.Explosions {
		drawExplosion(screen, e)
	}

	g.drawHUD(screen, snap)

	switch {
	case snap.Ended:
		vector.FillRect(screen, 0, 0, w, h, colorDim, false)
		g.drawCentered(screen, "GAME OVER", float64(h)/2-20, colorText)
		g.drawCentered(screen, fmt.Sprintf("Score: %d", snap.Score), float64(h)/2, colorText)
		g.drawCentered(screen, "R or click to play again", float64(h)/2+20, colorText)
	case snap.Paused:
		vector.FillRect(screen, 0, 0, w, h, colorDim, false)
		g.drawCentered(screen, "PAUSED", float64(h)/2, colorText)
	}
}

func drawPlayer(screen *ebiten.Image, p spacewar.Player) {
	x, y := float32(p.X), float32(p.Y)
	vector.FillRect(screen, x, y, float32(p.W), float32(p.H), colorPlayer, false)
	vector.FillRect(screen, x+13, y+8, 6, 6, colorCockpit, false)
}

func drawEnemy(screen *ebiten.Image, e spacewar.Enemy) {
	x, y, w, h := float32(e.X), float32(e.Y), float32(e.W), float32(e.H)
	vector.FillRect(screen, x, y, w, h, enemyColor(e.Kind), false)
	vector.FillRect(screen, x+8, y+8, 16, 6, colorHull, false)
	vector.FillRect(screen, x+14, y+14, 4, 10, colorHull, false)

	if e.Kind == spacewar.KindArmored {
		vector.StrokeRect(screen, x+2, y+2, w-4, h-4, 3, colorPlating, false)
	}

	if e.HP > 1 {
		vector.FillRect(screen, x, y-8, w, 5, colorHPBack, false)
		frac := float32(e.HP) / float32(e.MaxHP)
		vector.FillRect(screen, x, y-8, w*frac, 5, hpColor(e.HP, e.MaxHP), false)
	}
}

func drawExplosion(screen *ebiten.Image, e spacewar.Explosion) {
	left := 1 - e.Progress()
	if left <= 0 {
		return
	}
	cx, cy := float32(e.X+e.Radius), float32(e.Y+e.Radius)
	vector.FillCircle(screen, cx, cy, float32(e.Radius*left), colorBlastOuter, true)
	vector.FillCircle(screen, cx, cy, float32(e.Radius*0.7*left), colorBlastInner, true)
}

func (g *Game) drawHUD(screen *ebiten.Image, snap spacewar.Snapshot) {
	g.drawText(screen, fmt.Sprintf("Score: %d", snap.Score), 8, 6, colorText)
	g.drawText(screen, fmt.Sprintf("Best: %d", snap.HighScore), 8, 22, colorText)

	phase := fmt.Sprintf("%s  T%d", snap.Phase, snap.Tier+1)
	clr := colorText
	if snap.Warning {
		clr = colorWarnText
	}
	g.drawText(screen, phase, snap.ViewportW-8-textWidth(phase), 6, clr)
}

// basicfont glyphs are 7 pixels wide.
func textWidth(s string) float64 {
	return float64(len([]rune(s)) * 7)
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, g.face, op)
}

func (g *Game) drawCentered(screen *ebiten.Image, s string, y float64, clr color.Color) {
	x := (g.cfg.Viewport.Width - textWidth(s)) / 2
	g.drawText(screen, s, x, y, clr)
}
