package game

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var hudFace = text.NewGoXFace(basicfont.Face7x13)

const (
	hudLineH = 14
	hudPadX  = 6
	hudPadY  = 4
)

// hudLines lists the HUD text for the current frame.
func (g *Game) hudLines() []string {
	s := g.session
	diff := s.Zones().Difficulty()

	speedStr := "1x"
	switch {
	case g.simSpeed == 0:
		speedStr = "PAUSED"
	case g.simSpeed != 1:
		speedStr = fmt.Sprintf("%.1fx", g.simSpeed)
	}

	jammed := 0
	for _, h := range s.Harvesters().All() {
		if s.Zones().IsHarvesterJammed(h) {
			jammed++
		}
	}

	lines := []string{
		fmt.Sprintf("ENERGY %.0f   LEVEL %d   T+%s", s.Energy(), s.Level(), s.Zones().Now().Truncate(time.Second)),
		fmt.Sprintf("zones %d/%d  speed x%.1f  size x%.1f", s.Zones().ActiveCount(), diff.CurrentMaxZones, diff.SpeedMultiplier, diff.SizeMultiplier),
		fmt.Sprintf("harvesters %d/%d (%d jammed)  cost %.0f", s.Harvesters().Len(), s.Config().Harvester.Max, jammed, s.Config().Harvester.Cost),
		fmt.Sprintf("SIM %s  P=pause  ,/. speed", speedStr),
		"WASD=move  SPACE=deploy  R=restart  C=copy  H=hud",
	}
	if ws := s.Zones().Warnings(); len(ws) > 0 {
		lines = append(lines, fmt.Sprintf("!! %d incoming, nearest %.0f (%s)", len(ws), ws[0].Distance, ws[0].Urgency))
	}
	if g.statusLeft > 0 {
		lines = append(lines, "> "+g.status)
	}
	return lines
}

// drawHUD renders the panel into hudBuf at 1x and blits it at hudScale.
func (g *Game) drawHUD(screen *ebiten.Image) {
	lines := g.hudLines()
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	boxW := float32(maxLen*7 + hudPadX*2)
	boxH := float32(len(lines)*hudLineH + hudPadY*2)
	bx := float32(g.offX/hudScale + 4)
	by := float32(g.offY/hudScale + 4)

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, bx, by, boxW, boxH, color.RGBA{R: 6, G: 6, B: 12, A: 200}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH, 1.0, color.RGBA{R: 80, G: 70, B: 120, A: 180}, false)

	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(bx)+hudPadX, float64(by)+hudPadY+float64(i*hudLineH))
		op.ColorScale.ScaleWithColor(color.RGBA{R: 220, G: 220, B: 235, A: 255})
		text.Draw(g.hudBuf, line, hudFace, op)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(hudScale, hudScale)
	screen.DrawImage(g.hudBuf, opts)
}

// drawGameOver dims the field and prints the run summary.
func (g *Game) drawGameOver(screen *ebiten.Image) {
	vector.FillRect(screen, float32(g.offX), float32(g.offY), float32(g.fieldW), float32(g.fieldH), color.RGBA{A: 150}, false)

	lines := append([]string{"DRONE LOST", ""}, strings.Split(strings.TrimSpace(g.session.Summary()), "\n")...)
	lines = append(lines, "", "R to restart   C to copy summary")

	cx := float64(g.offX + g.fieldW/2)
	y := float64(g.offY+g.fieldH/2) - float64(len(lines)*hudLineH)/2
	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(cx, y+float64(i*hudLineH))
		op.PrimaryAlign = text.AlignCenter
		c := color.RGBA{R: 230, G: 230, B: 240, A: 255}
		if i == 0 {
			c = color.RGBA{R: 255, G: 80, B: 80, A: 255}
		}
		op.ColorScale.ScaleWithColor(c)
		text.Draw(screen, line, hudFace, op)
	}
}
