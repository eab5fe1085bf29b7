package corruption

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// labelFace is the bitmap face used for archetype labels.
var labelFace = text.NewGoXFace(basicfont.Face7x13)

var urgencyColors = map[Urgency]color.RGBA{
	UrgencyMedium:   {R: 255, G: 210, B: 60, A: 255},
	UrgencyHigh:     {R: 255, G: 120, B: 30, A: 255},
	UrgencyCritical: {R: 255, G: 30, B: 30, A: 255},
}

// Render draws every active zone and its label. It only reads state.
func (s *System) Render(screen *ebiten.Image) {
	t := s.now.Seconds()
	for i, z := range s.zones {
		if !z.Active {
			continue
		}
		// Offset each zone's pulse so neighbours do not throb in sync.
		pulse := 0.5 + 0.5*math.Sin(t*4+float64(i)*1.7)
		z.Draw(screen, pulse)
		z.DrawTypeLabel(screen)
	}
}

// DrawWarnings renders a threat line from the drone toward each warned zone.
func (s *System) DrawWarnings(screen *ebiten.Image) {
	if s.deps.Drone == nil {
		return
	}
	dx, dy := s.deps.Drone.Position()
	for _, w := range s.warnings {
		c := urgencyColors[w.Urgency]
		c.A = uint8(80 + 175*w.Intensity)
		ux := (w.X - dx) / math.Max(w.Distance, 1)
		uy := (w.Y - dy) / math.Max(w.Distance, 1)
		sx := float32(dx + ux*(s.settings.DroneRadius+6))
		sy := float32(dy + uy*(s.settings.DroneRadius+6))
		ex := float32(dx + ux*(s.settings.DroneRadius+6+24*w.Intensity+8))
		ey := float32(dy + uy*(s.settings.DroneRadius+6+24*w.Intensity+8))
		vector.StrokeLine(screen, sx, sy, ex, ey, 2, c, true)
		vector.FillCircle(screen, ex, ey, 3, c, true)
	}
}

// Draw renders the zone body. pulse in [0,1] drives a cosmetic throb.
func (z *Zone) Draw(screen *ebiten.Image, pulse float64) {
	if !z.Active {
		return
	}
	x, y := float32(z.X), float32(z.Y)
	r := float32(z.Radius() * (0.94 + 0.06*pulse))
	body := z.Desc.Color
	body.A = 170

	// Halo.
	halo := body
	halo.A = uint8(40 + 30*pulse)
	vector.FillCircle(screen, x, y, r*1.25, halo, true)
	vector.FillCircle(screen, x, y, r, body, true)
	vector.FillCircle(screen, x, y, r*0.45, color.RGBA{R: body.R / 3, G: body.G / 3, B: body.B / 3, A: 220}, true)

	switch {
	case z.jam != nil:
		ring := body
		ring.A = 50
		vector.StrokeCircle(screen, x, y, float32(z.jam.params.JamRadius), 1, ring, true)
	case z.burst != nil:
		switch z.burst.phase {
		case BurstCharging:
			vector.StrokeCircle(screen, x, y, r+3, 2, color.RGBA{R: 255, G: 255, B: 255, A: uint8(120 + 120*pulse)}, true)
		case BurstBursting:
			tx := x - float32(z.burst.dirX)*r*2.5
			ty := y - float32(z.burst.dirY)*r*2.5
			vector.StrokeLine(screen, x, y, tx, ty, r*0.6, halo, true)
		}
	case z.Type == BlobSplitter && z.Desc.Splitter != nil && z.Desc.Splitter.SplitCount > 0:
		k := z.Desc.Splitter.SplitCount
		for i := 0; i < k; i++ {
			a := 2 * math.Pi * float64(i) / float64(k)
			cx := x + float32(math.Cos(a))*r*0.55
			cy := y + float32(math.Sin(a))*r*0.55
			vector.FillCircle(screen, cx, cy, r*0.18, body, true)
		}
	}

	if z.Fast {
		vector.StrokeCircle(screen, x, y, r+5, 1.5, urgencyColors[UrgencyCritical], true)
	}
}

// DrawTypeLabel prints the archetype name under the zone.
func (z *Zone) DrawTypeLabel(screen *ebiten.Image) {
	if !z.Active {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(z.X, z.Y+z.Radius()+4)
	op.ColorScale.ScaleWithColor(color.RGBA{R: 220, G: 220, B: 220, A: 200})
	op.PrimaryAlign = text.AlignCenter
	label := z.Desc.Name
	if z.Generation > 0 {
		label += "'"
	}
	text.Draw(screen, label, labelFace, op)
}
