package corruption

import (
	"image/color"
	"time"
)

// Drone is the player entity zones hunt and collide with.
type Drone interface {
	Position() (x, y float64)
}

// Harvester is a deployed energy collector. Jammers track comparable
// harvesters by identity and other values by position.
type Harvester interface {
	Position() (x, y float64)
}

// HarvesterSystem owns the live harvester population. The system reads it
// every tick and removes entries by index when a zone destroys one.
type HarvesterSystem interface {
	Harvesters() []Harvester
	RemoveHarvester(index int)
}

// EffectSink receives fire-and-forget visual notifications.
type EffectSink interface {
	ScreenFlash(c color.RGBA, intensity float64, duration time.Duration)
}

// Deps are the optional collaborators. Any of them may be nil.
type Deps struct {
	Drone      Drone
	Harvesters HarvesterSystem
	Effects    EffectSink
}

func (d Deps) harvesters() []Harvester {
	if d.Harvesters == nil {
		return nil
	}
	return d.Harvesters.Harvesters()
}

func (d Deps) flash(c color.RGBA, intensity float64, duration time.Duration) {
	if d.Effects == nil {
		return
	}
	d.Effects.ScreenFlash(c, intensity, duration)
}

// Bounds is the visible field size.
type Bounds struct {
	Width  float64
	Height float64
}

// Contains reports whether (x, y) lies inside the field.
func (b Bounds) Contains(x, y float64) bool {
	return x >= 0 && x <= b.Width && y >= 0 && y <= b.Height
}

// ContainsWithMargin reports whether (x, y) lies inside the field grown by margin on every side.
func (b Bounds) ContainsWithMargin(x, y, margin float64) bool {
	return x >= -margin && x <= b.Width+margin && y >= -margin && y <= b.Height+margin
}
