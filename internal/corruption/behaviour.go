package corruption

import (
	"math"
	"reflect"
	"time"
)

// chargeSlowdown scales sprinter movement while it winds up a burst.
const chargeSlowdown = 0.25

// BurstPhase is the sprinter state.
type BurstPhase int

const (
	BurstIdle BurstPhase = iota
	BurstCharging
	BurstBursting
)

func (p BurstPhase) String() string {
	switch p {
	case BurstIdle:
		return "idle"
	case BurstCharging:
		return "charging"
	case BurstBursting:
		return "bursting"
	default:
		return "unknown"
	}
}

// burstState drives idle → charging → bursting → idle.
type burstState struct {
	params        SprinterParams
	phase         BurstPhase
	timer         time.Duration
	dirX, dirY    float64 // fixed when the burst starts
	originalSpeed float64 // hunting speed to restore after the burst
}

// update advances the cycle. When override is true the returned velocity
// replaces normal hunting movement for this tick.
func (b *burstState) update(z *Zone, dt time.Duration, d Drone) (vx, vy float64, override bool) {
	b.timer += dt
	switch b.phase {
	case BurstIdle:
		if b.timer >= b.params.BurstCooldown {
			b.phase = BurstCharging
			b.timer = 0
		}
	case BurstCharging:
		if b.timer >= b.params.ChargeDuration {
			b.start(z, d)
			return b.dirX * z.HuntingSpeed, b.dirY * z.HuntingSpeed, true
		}
	case BurstBursting:
		if b.timer >= b.params.BurstDuration {
			z.HuntingSpeed = b.originalSpeed
			b.phase = BurstIdle
			b.timer = 0
			return 0, 0, false
		}
		return b.dirX * z.HuntingSpeed, b.dirY * z.HuntingSpeed, true
	}
	return 0, 0, false
}

func (b *burstState) start(z *Zone, d Drone) {
	b.dirX, b.dirY = -1, 0
	if d != nil {
		if hx, hy := z.huntVector(d); hx != 0 || hy != 0 {
			b.dirX, b.dirY = hx, hy
		}
	}
	b.originalSpeed = z.HuntingSpeed
	z.HuntingSpeed = b.originalSpeed * b.params.burstFactor()
	b.phase = BurstBursting
	b.timer = 0
}

// jamState tracks harvesters suppressed by a jammer. Harvesters inside the
// radius are held at the full duration; outside it their timer runs down.
type jamState struct {
	params JammerParams
	jammed map[any]time.Duration // keyed by harvesterKey
}

// positionKey stands in for harvesters whose values cannot be map keys.
type positionKey struct {
	typ  reflect.Type
	x, y float64
}

// harvesterKey identifies h across ticks. Comparable harvesters (pointers in
// practice) key themselves; anything else is keyed by type and position.
func harvesterKey(h Harvester) any {
	if reflect.ValueOf(h).Comparable() {
		return h
	}
	x, y := h.Position()
	return positionKey{typ: reflect.TypeOf(h), x: x, y: y}
}

func (j *jamState) update(z *Zone, dt time.Duration, harvesters []Harvester) {
	inRange := make(map[any]bool, len(harvesters))
	for _, h := range harvesters {
		if h == nil {
			continue
		}
		x, y := h.Position()
		if math.Hypot(x-z.X, y-z.Y) <= j.params.JamRadius {
			k := harvesterKey(h)
			j.jammed[k] = j.params.JamDuration
			inRange[k] = true
		}
	}
	for k, left := range j.jammed {
		if inRange[k] {
			continue
		}
		left -= dt
		if left <= 0 {
			delete(j.jammed, k)
			continue
		}
		j.jammed[k] = left
	}
}
