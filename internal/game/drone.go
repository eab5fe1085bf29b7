package game

import (
	"math"
	"time"

	"github.com/Garsondee/Drone-Harvest/internal/corruption"
)

// Drone is the player ship. It satisfies corruption.Drone.
type Drone struct {
	X, Y   float64
	speed  float64 // units per second
	radius float64
}

// NewDrone places a drone at (x, y).
func NewDrone(x, y, speed, radius float64) *Drone {
	return &Drone{X: x, Y: y, speed: speed, radius: radius}
}

func (d *Drone) Position() (float64, float64) { return d.X, d.Y }

func (d *Drone) Radius() float64 { return d.radius }

// Move steers by (mx, my) in [-1, 1], normalising diagonals, and keeps the
// hull inside the field.
func (d *Drone) Move(mx, my float64, dt time.Duration, b corruption.Bounds) {
	if mx == 0 && my == 0 {
		return
	}
	if l := math.Hypot(mx, my); l > 1 {
		mx /= l
		my /= l
	}
	step := d.speed * dt.Seconds()
	d.X = clamp(d.X+mx*step, d.radius, b.Width-d.radius)
	d.Y = clamp(d.Y+my*step, d.radius, b.Height-d.radius)
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
