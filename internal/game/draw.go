package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	fieldBG      = color.RGBA{R: 14, G: 16, B: 24, A: 255}
	gridCol      = color.RGBA{R: 30, G: 34, B: 48, A: 255}
	orbCol       = color.RGBA{R: 90, G: 220, B: 255, A: 255}
	droneCol     = color.RGBA{R: 240, G: 240, B: 250, A: 255}
	harvesterCol = color.RGBA{R: 120, G: 230, B: 120, A: 255}
	jammedCol    = color.RGBA{R: 170, G: 90, B: 220, A: 255}
)

const (
	gridSpacing    = 40
	scrollGridRate = 0.5 // grid scroll relative to orb speed
)

// drawField renders everything inside the field at field coordinates.
func (g *Game) drawField(dst *ebiten.Image) {
	s := g.session
	dst.Fill(fieldBG)

	// Scrolling grid gives a sense of forward motion.
	shift := int(float64(g.frame)*s.Config().Session.ScrollSpeed/60*scrollGridRate) % gridSpacing
	drawGridOffset(dst, -shift, 0, g.fieldW+gridSpacing, g.fieldH, gridSpacing, gridCol)

	for _, o := range s.Orbs().Orbs() {
		vector.FillCircle(dst, float32(o.X), float32(o.Y), orbRadius, orbCol, true)
	}

	zones := s.Zones()
	for _, h := range s.Harvesters().All() {
		col := harvesterCol
		if zones.IsHarvesterJammed(h) {
			col = jammedCol
		}
		r := float32(s.Config().Harvester.Radius)
		vector.FillRect(dst, float32(h.X)-r, float32(h.Y)-r, 2*r, 2*r, col, false)
		vector.StrokeRect(dst, float32(h.X)-r-2, float32(h.Y)-r-2, 2*r+4, 2*r+4, 1, col, false)
	}

	zones.Render(dst)

	d := s.Drone()
	dr := float32(d.Radius())
	dx, dy := float32(d.X), float32(d.Y)
	var path vector.Path
	path.MoveTo(dx+dr, dy)
	path.LineTo(dx-dr, dy-dr*0.8)
	path.LineTo(dx-dr*0.5, dy)
	path.LineTo(dx-dr, dy+dr*0.8)
	path.Close()
	vector.FillPath(dst, &path, &vector.FillOptions{}, &vector.DrawPathOptions{AntiAlias: true, ColorScale: colorScale(droneCol)})

	zones.DrawWarnings(dst)
	s.Flash().Draw(dst, 0, 0, float32(g.fieldW), float32(g.fieldH))
	drawVignette(dst, g.fieldW, g.fieldH)
}

func colorScale(c color.RGBA) ebiten.ColorScale {
	var cs ebiten.ColorScale
	cs.ScaleWithColor(c)
	return cs
}

// drawFieldBorder frames the field in screen coordinates.
func drawFieldBorder(screen *ebiten.Image, offX, offY, w, h int) {
	ox, oy := float32(offX), float32(offY)
	fw, fh := float32(w), float32(h)
	vector.StrokeRect(screen, ox-1, oy-1, fw+2, fh+2, 2.0, color.RGBA{R: 70, G: 60, B: 100, A: 255}, false)
	vector.StrokeRect(screen, ox-3, oy-3, fw+6, fh+6, 1.0, color.RGBA{R: 40, G: 36, B: 60, A: 100}, false)
}

// drawVignette darkens the field edges.
func drawVignette(dst *ebiten.Image, w, h int) {
	gw, gh := float32(w), float32(h)
	outer := float32(24)
	dark := color.RGBA{A: 70}
	vector.FillRect(dst, 0, 0, gw, outer, dark, false)
	vector.FillRect(dst, 0, gh-outer, gw, outer, dark, false)
	vector.FillRect(dst, 0, 0, outer, gh, dark, false)
	vector.FillRect(dst, gw-outer, 0, outer, gh, dark, false)
}

func drawGridOffset(dst *ebiten.Image, offX, offY, w, h, spacing int, c color.Color) {
	if spacing <= 0 {
		return
	}
	ox, oy := float32(offX), float32(offY)
	for x := 0; x <= w; x += spacing {
		xf := ox + float32(x)
		vector.StrokeLine(dst, xf, oy, xf, oy+float32(h), 1.0, c, false)
	}
	for y := 0; y <= h; y += spacing {
		yf := oy + float32(y)
		vector.StrokeLine(dst, ox, yf, ox+float32(w), yf, 1.0, c, false)
	}
}
