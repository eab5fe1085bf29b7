package corruption

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHunter_MovesTowardDrone(t *testing.T) {
	s := newTestSystem(quietSettings(), Deps{})
	z := placeZone(t, s, BlobHunter, 600, 400, 40)
	drone := &testDrone{x: 200, y: 100}

	before := math.Hypot(z.X-drone.x, z.Y-drone.y)
	for i := 0; i < 60; i++ {
		z.Update(tick, Deps{Drone: drone})
	}
	after := math.Hypot(z.X-drone.x, z.Y-drone.y)

	assert.InDelta(t, before-s.settings.BaseHuntingSpeed, after, 0.5,
		"one second of hunting should close the gap by the hunting speed")
}

func TestZoneUpdate_InactiveIsNoOp(t *testing.T) {
	s := newTestSystem(quietSettings(), Deps{})
	z := placeZone(t, s, BlobHunter, 600, 400, 40)
	z.Active = false

	z.Update(time.Second, Deps{Drone: &testDrone{x: 0, y: 0}})
	assert.Equal(t, 600.0, z.X)
	assert.Equal(t, 400.0, z.Y)
}

func TestZoneUpdate_NoDroneOnlyDrifts(t *testing.T) {
	s := newTestSystem(quietSettings(), Deps{})
	z := placeZone(t, s, BlobHunter, 600, 400, 40)
	z.Speed = 10

	z.Update(time.Second, Deps{})
	assert.InDelta(t, 590, z.X, 1e-9)
	assert.InDelta(t, 400, z.Y, 1e-9)
}

func TestCheckCollision_UsesScaledRadius(t *testing.T) {
	s := newTestSystem(quietSettings(), Deps{})
	z := placeZone(t, s, BlobHunter, 100, 100, 40) // radius 20
	z.SizeVariation = 1.5                          // radius 30

	assert.True(t, z.CheckCollision(&testDrone{x: 139, y: 100}, 10))
	assert.False(t, z.CheckCollision(&testDrone{x: 141, y: 100}, 10))
	assert.False(t, z.CheckCollision(nil, 10))

	z.Active = false
	assert.False(t, z.CheckCollision(&testDrone{x: 100, y: 100}, 10))
}

func TestCheckHarvesterCollision_ReturnsFirstMatch(t *testing.T) {
	s := newTestSystem(quietSettings(), Deps{})
	z := placeZone(t, s, BlobHunter, 100, 100, 40)

	far := &testHarvester{x: 500, y: 500}
	near1 := &testHarvester{x: 110, y: 100}
	near2 := &testHarvester{x: 90, y: 100}
	hs := newTestHarvesters(far, near1, near2)

	h, idx, ok := z.CheckHarvesterCollision(hs, 10)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Same(t, near1, h)
	assert.Len(t, hs.list, 3, "scan must not mutate the harvester list")

	_, _, ok = z.CheckHarvesterCollision(nil, 10)
	assert.False(t, ok)
}

func TestSprinter_BurstCycle(t *testing.T) {
	s := newTestSystem(quietSettings(), Deps{})
	z := placeZone(t, s, BlobSprinter, 600, 400, 40)
	params := z.Desc.Sprinter
	require.NotNil(t, params)
	drone := &testDrone{x: 100, y: 400}
	deps := Deps{Drone: drone}
	base := z.HuntingSpeed

	run := func(d time.Duration) {
		for el := time.Duration(0); el < d; el += tick {
			z.Update(tick, deps)
		}
	}

	assert.Equal(t, BurstIdle, z.BurstPhase())
	run(params.BurstCooldown + tick)
	assert.Equal(t, BurstCharging, z.BurstPhase())

	run(params.ChargeDuration + tick)
	require.Equal(t, BurstBursting, z.BurstPhase())
	assert.InDelta(t, base*params.BurstSpeedFactor, z.HuntingSpeed, 1e-9)
	assert.InDelta(t, -1, z.burst.dirX, 1e-3, "burst aims at the drone when it starts")

	// Direction stays fixed even if the drone moves.
	drone.y = 0
	dirX, dirY := z.burst.dirX, z.burst.dirY
	z.Update(tick, deps)
	assert.Equal(t, dirX, z.burst.dirX)
	assert.Equal(t, dirY, z.burst.dirY)

	run(params.BurstDuration + tick)
	assert.Equal(t, BurstIdle, z.BurstPhase())
	assert.InDelta(t, base, z.HuntingSpeed, 1e-9, "speed restored after the burst")
}

func TestSprinter_DifficultyDuringBurstKeepsBurstScale(t *testing.T) {
	s := newTestSystem(quietSettings(), Deps{})
	z := placeZone(t, s, BlobSprinter, 600, 400, 40)
	params := z.Desc.Sprinter
	z.burst.phase = BurstCharging
	z.burst.timer = params.ChargeDuration
	z.Update(tick, Deps{Drone: &testDrone{x: 0, y: 400}})
	require.Equal(t, BurstBursting, z.BurstPhase())

	s.IncreaseZoneDifficulty(3)
	want := z.baseHuntingSpeed * s.Difficulty().SpeedMultiplier
	assert.InDelta(t, want*params.BurstSpeedFactor, z.HuntingSpeed, 1e-9)
	assert.InDelta(t, want, z.burst.originalSpeed, 1e-9)
}

func TestJammer_TracksHarvestersInRadius(t *testing.T) {
	s := newTestSystem(quietSettings(), Deps{})
	z := placeZone(t, s, BlobJammer, 600, 400, 40)
	params := z.Desc.Jammer
	require.NotNil(t, params)

	inside := &testHarvester{x: 600 + params.JamRadius - 1, y: 400}
	outside := &testHarvester{x: 600 + params.JamRadius + 50, y: 400}
	hs := newTestHarvesters(inside, outside)
	deps := Deps{Harvesters: hs}

	z.Update(tick, deps)
	assert.True(t, z.Jamming(inside))
	assert.False(t, z.Jamming(outside))
	assert.Equal(t, 1, z.JammedCount())

	// Harvester leaves the radius: it stays jammed until the duration runs out.
	inside.x = 600 + params.JamRadius + 100
	z.Update(params.JamDuration-tick, deps)
	assert.True(t, z.Jamming(inside))
	z.Update(2*tick, deps)
	assert.False(t, z.Jamming(inside))
	assert.Zero(t, z.JammedCount())
}

func TestNonJammer_HasNoJamState(t *testing.T) {
	s := newTestSystem(quietSettings(), Deps{})
	z := placeZone(t, s, BlobHunter, 600, 400, 40)
	assert.Nil(t, z.jam)
	assert.Nil(t, z.burst)
	assert.False(t, z.Jamming(&testHarvester{x: 600, y: 400}))
	assert.Equal(t, BurstIdle, z.BurstPhase())
}

func TestSprinter_NonPositiveBurstFactorHoldsSpeed(t *testing.T) {
	s := newTestSystem(quietSettings(), Deps{})
	desc := mustDescriptor(t, BlobSprinter)
	desc.Sprinter.BurstSpeedFactor = 0
	z := newZone(desc, 600, 400, s.now)
	z.BaseSize = 40
	z.baseHuntingSpeed = s.settings.BaseHuntingSpeed
	z.applySpeedMultiplier(s.diff.SpeedMultiplier)
	s.zones = append(s.zones, z)

	z.burst.phase = BurstCharging
	z.burst.timer = desc.Sprinter.ChargeDuration
	z.Update(tick, Deps{Drone: &testDrone{x: 0, y: 400}})
	require.Equal(t, BurstBursting, z.BurstPhase())
	assert.InDelta(t, z.baseHuntingSpeed, z.HuntingSpeed, 1e-9)

	s.IncreaseZoneDifficulty(3)
	want := z.baseHuntingSpeed * s.Difficulty().SpeedMultiplier
	assert.Positive(t, z.HuntingSpeed)
	assert.InDelta(t, want, z.HuntingSpeed, 1e-9, "difficulty change mid-burst keeps the clamped factor")
}

// valueHarvester is not comparable, so it cannot be a map key itself.
type valueHarvester struct {
	x, y float64
	tags []string
}

func (h valueHarvester) Position() (float64, float64) { return h.x, h.y }

type valueHarvesters struct{ list []Harvester }

func (v *valueHarvesters) Harvesters() []Harvester { return v.list }

func (v *valueHarvesters) RemoveHarvester(i int) {
	v.list = append(v.list[:i], v.list[i+1:]...)
}

func TestJammer_HandlesValueHarvesters(t *testing.T) {
	near := valueHarvester{x: 650, y: 400, tags: []string{"near"}}
	far := valueHarvester{x: 1000, y: 400, tags: []string{"far"}}
	hs := &valueHarvesters{list: []Harvester{near, far}}
	s := newTestSystem(quietSettings(), Deps{Harvesters: hs})
	z := placeZone(t, s, BlobJammer, 600, 400, 20)

	require.NotPanics(t, func() {
		s.Update(tick)
		s.Update(tick)
	})
	assert.True(t, s.IsHarvesterJammed(near))
	assert.False(t, s.IsHarvesterJammed(far))
	assert.Equal(t, 1, z.JammedCount(), "the same harvester is tracked once across ticks")
}
