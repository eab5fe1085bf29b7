package corruption

import (
	"math"
	"time"
)

// Zone is one live corruption blob.
type Zone struct {
	X, Y          float64
	BaseSize      float64
	SizeVariation float64 // applied once at spawn
	Speed         float64 // scroll drift
	HuntingSpeed  float64 // current, includes the difficulty multiplier

	Type BlobType
	Desc BlobTypeDescriptor

	SpawnTime time.Duration // system clock at creation
	Active    bool          // false once destroyed by a collision

	Generation    int
	MaxGeneration int
	HasSplit      bool
	Fast          bool // legacy fast-corruption variant

	baseHuntingSpeed float64 // before the difficulty multiplier
	speedMul         float64

	// Variant state, only allocated for the matching archetype.
	jam   *jamState
	burst *burstState
}

// newZone builds a zone for the given archetype. Variant state is allocated
// from the descriptor payload.
func newZone(desc BlobTypeDescriptor, x, y float64, now time.Duration) *Zone {
	z := &Zone{
		X:             x,
		Y:             y,
		SizeVariation: 1.0,
		Type:          desc.Type,
		Desc:          desc,
		SpawnTime:     now,
		Active:        true,
		MaxGeneration: 2,
		speedMul:      1.0,
	}
	switch {
	case desc.Type == BlobJammer && desc.Jammer != nil:
		z.jam = &jamState{params: *desc.Jammer, jammed: map[any]time.Duration{}}
	case desc.Type == BlobSprinter && desc.Sprinter != nil:
		z.burst = &burstState{params: *desc.Sprinter}
	}
	return z
}

// Radius is the collision radius.
func (z *Zone) Radius() float64 {
	return z.BaseSize * z.SizeVariation / 2
}

// Age returns how long the zone has lived at system time now.
func (z *Zone) Age(now time.Duration) time.Duration {
	return now - z.SpawnTime
}

// Expired reports whether the zone has outlived lifespan.
func (z *Zone) Expired(now, lifespan time.Duration) bool {
	return z.Age(now) > lifespan
}

// OutOfBounds reports whether the zone has left the field plus margin.
func (z *Zone) OutOfBounds(b Bounds, margin float64) bool {
	return !b.ContainsWithMargin(z.X, z.Y, margin)
}

// CanSplit reports whether expiry of this zone should produce children.
func (z *Zone) CanSplit() bool {
	return z.Type == BlobSplitter && z.Desc.Splitter != nil && !z.HasSplit && z.Generation < z.MaxGeneration
}

// applySpeedMultiplier recomputes the hunting speed from the immutable base,
// so repeated difficulty changes never compound.
func (z *Zone) applySpeedMultiplier(m float64) {
	z.speedMul = m
	z.HuntingSpeed = z.baseHuntingSpeed * m
	if z.burst != nil && z.burst.phase == BurstBursting {
		z.burst.originalSpeed = z.HuntingSpeed
		z.HuntingSpeed = z.burst.originalSpeed * z.burst.params.burstFactor()
	}
}

// Update advances movement and archetype behaviour by dt. No-op when inactive.
func (z *Zone) Update(dt time.Duration, deps Deps) {
	if !z.Active || dt <= 0 {
		return
	}
	sec := dt.Seconds()

	if z.jam != nil {
		z.jam.update(z, dt, deps.harvesters())
	}

	vx, vy := -z.Speed, 0.0
	if z.burst != nil {
		bvx, bvy, override := z.burst.update(z, dt, deps.Drone)
		if override {
			z.X += bvx * sec
			z.Y += bvy * sec
			return
		}
		if z.burst.phase == BurstCharging {
			vx *= chargeSlowdown
		}
	}

	if deps.Drone != nil {
		hx, hy := z.huntVector(deps.Drone)
		speed := z.HuntingSpeed
		if z.burst != nil && z.burst.phase == BurstCharging {
			speed *= chargeSlowdown
		}
		vx += hx * speed
		vy += hy * speed
	}
	z.X += vx * sec
	z.Y += vy * sec
}

// huntVector returns the unit vector toward the drone, or zero when on top of it.
func (z *Zone) huntVector(d Drone) (float64, float64) {
	dx, dy := d.Position()
	dx -= z.X
	dy -= z.Y
	dist := math.Hypot(dx, dy)
	if dist < 1e-6 {
		return 0, 0
	}
	return dx / dist, dy / dist
}

// CheckCollision reports whether the zone overlaps a drone of radius droneRadius.
func (z *Zone) CheckCollision(d Drone, droneRadius float64) bool {
	if d == nil || !z.Active {
		return false
	}
	x, y := d.Position()
	return circlesOverlap(z.X, z.Y, z.Radius(), x, y, droneRadius)
}

// CheckHarvesterCollision returns the first harvester overlapping the zone.
func (z *Zone) CheckHarvesterCollision(hs HarvesterSystem, harvesterRadius float64) (Harvester, int, bool) {
	if hs == nil || !z.Active {
		return nil, -1, false
	}
	for i, h := range hs.Harvesters() {
		if h == nil {
			continue
		}
		x, y := h.Position()
		if circlesOverlap(z.X, z.Y, z.Radius(), x, y, harvesterRadius) {
			return h, i, true
		}
	}
	return nil, -1, false
}

// Jamming reports whether h is currently suppressed by this zone.
func (z *Zone) Jamming(h Harvester) bool {
	if z.jam == nil || !z.Active || h == nil {
		return false
	}
	_, ok := z.jam.jammed[harvesterKey(h)]
	return ok
}

// JammedCount is the number of harvesters this zone currently suppresses.
func (z *Zone) JammedCount() int {
	if z.jam == nil {
		return 0
	}
	return len(z.jam.jammed)
}

// BurstPhase returns the sprinter phase, or BurstIdle for other archetypes.
func (z *Zone) BurstPhase() BurstPhase {
	if z.burst == nil {
		return BurstIdle
	}
	return z.burst.phase
}

func circlesOverlap(ax, ay, ar, bx, by, br float64) bool {
	dx := ax - bx
	dy := ay - by
	r := ar + br
	return dx*dx+dy*dy < r*r
}
