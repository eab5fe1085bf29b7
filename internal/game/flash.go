package game

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Flash is a full-field colour pulse that fades linearly.
// It satisfies corruption.EffectSink.
type Flash struct {
	col       color.RGBA
	intensity float64
	duration  time.Duration
	remaining time.Duration
}

// ScreenFlash starts a flash unless a brighter one is still showing.
func (f *Flash) ScreenFlash(c color.RGBA, intensity float64, duration time.Duration) {
	if duration <= 0 || intensity <= 0 {
		return
	}
	if f.Level() > intensity {
		return
	}
	f.col = c
	f.intensity = intensity
	f.duration = duration
	f.remaining = duration
}

func (f *Flash) Update(dt time.Duration) {
	f.remaining -= dt
	if f.remaining < 0 {
		f.remaining = 0
	}
}

// Level is the current opacity in [0, 1].
func (f *Flash) Level() float64 {
	if f.remaining <= 0 || f.duration <= 0 {
		return 0
	}
	return f.intensity * float64(f.remaining) / float64(f.duration)
}

func (f *Flash) Color() color.RGBA { return f.col }

func (f *Flash) Reset() { *f = Flash{} }

// Draw tints the rectangle (x, y, w, h) with the current flash.
func (f *Flash) Draw(screen *ebiten.Image, x, y, w, h float32) {
	lvl := f.Level()
	if lvl <= 0 {
		return
	}
	c := color.NRGBA{R: f.col.R, G: f.col.G, B: f.col.B, A: uint8(255 * min(lvl, 1))}
	vector.FillRect(screen, x, y, w, h, c, false)
}
