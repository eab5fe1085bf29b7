package game

import (
	"math/rand"
	"time"

	"github.com/Garsondee/Drone-Harvest/internal/corruption"
)

const orbRadius = 6

// Orb is a floating energy pickup drifting toward the left edge.
type Orb struct {
	X, Y float64
}

// OrbField spawns orbs on the right edge at a fixed interval and scrolls them left.
type OrbField struct {
	orbs     []Orb
	interval time.Duration
	timer    time.Duration
	speed    float64
	bounds   corruption.Bounds
}

func NewOrbField(interval time.Duration, scrollSpeed float64, b corruption.Bounds) *OrbField {
	return &OrbField{interval: interval, speed: scrollSpeed, bounds: b}
}

// Update scrolls live orbs, drops those past the left edge and spawns new ones.
func (f *OrbField) Update(dt time.Duration, rng *rand.Rand) {
	dx := f.speed * dt.Seconds()
	kept := f.orbs[:0]
	for _, o := range f.orbs {
		o.X -= dx
		if o.X < -orbRadius {
			continue
		}
		kept = append(kept, o)
	}
	f.orbs = kept

	f.timer += dt
	for f.timer >= f.interval {
		f.timer -= f.interval
		y := orbRadius + rng.Float64()*(f.bounds.Height-2*orbRadius)
		f.orbs = append(f.orbs, Orb{X: f.bounds.Width + orbRadius, Y: y})
	}
}

// Collect removes the orbs touching the drone and returns how many were taken.
func (f *OrbField) Collect(d *Drone) int {
	n := 0
	kept := f.orbs[:0]
	for _, o := range f.orbs {
		dx, dy := o.X-d.X, o.Y-d.Y
		r := orbRadius + d.Radius()
		if dx*dx+dy*dy <= r*r {
			n++
			continue
		}
		kept = append(kept, o)
	}
	f.orbs = kept
	return n
}

func (f *OrbField) Orbs() []Orb { return f.orbs }

func (f *OrbField) Clear() {
	f.orbs = f.orbs[:0]
	f.timer = 0
}
