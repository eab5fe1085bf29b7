package corruption

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_ReturnsSameInstance(t *testing.T) {
	s := newTestSystem(DefaultSettings(), Deps{})
	assert.Same(t, s, s.Init())
}

func TestUpdate_SpawnsUpToMinImmediately(t *testing.T) {
	s := newTestSystem(DefaultSettings(), Deps{})
	require.Zero(t, s.ActiveCount())

	s.Update(tick)
	assert.Equal(t, 1, s.ActiveCount(), "below min zones spawns without waiting for the timer")
}

func TestUpdate_PopulationStaysWithinBounds(t *testing.T) {
	settings := DefaultSettings()
	settings.MinZones = 2
	cat, err := DefaultCatalog().WithWeights(map[BlobType]float64{BlobSplitter: 0})
	require.NoError(t, err)

	drone := &testDrone{x: 300, y: 400}
	s := newTestSystem(settings, Deps{Drone: drone}, WithCatalog(cat))
	s.IncreaseZoneDifficulty(3)
	maxZones := s.Difficulty().CurrentMaxZones

	// Warm-up: the min is reached one spawn per tick.
	for i := 0; i < settings.MinZones; i++ {
		s.Update(tick)
	}
	for i := 0; i < 60*120; i++ {
		s.Update(tick)
		n := s.ActiveCount()
		require.GreaterOrEqual(t, n, settings.MinZones, "tick %d", i)
		require.LessOrEqual(t, n, maxZones, "tick %d", i)
	}
}

func TestUpdate_SpawnIntervalThrottlesWithPopulation(t *testing.T) {
	settings := DefaultSettings()
	s := newTestSystem(settings, Deps{})

	s.Update(tick) // min-zones spawn, population 1 of 3
	want := time.Duration(float64(3*time.Second) * (0.5 + 0.5*1.0/3.0))
	assert.Equal(t, want, s.SpawnInterval())

	s.Update(want)
	assert.Equal(t, 2, s.ActiveCount())
	want = time.Duration(float64(3*time.Second) * (0.5 + 0.5*2.0/3.0))
	assert.Equal(t, want, s.SpawnInterval())
}

func TestUpdate_SpawnIntervalNeverBelowFloor(t *testing.T) {
	s := newTestSystem(DefaultSettings(), Deps{})
	s.IncreaseZoneDifficulty(30)
	s.Update(tick)
	assert.GreaterOrEqual(t, s.SpawnInterval(), time.Second)
}

func TestSpawnNewZone_PlacesPastRightEdge(t *testing.T) {
	settings := quietSettings()
	s := newTestSystem(settings, Deps{})

	for i := 0; i < 200; i++ {
		z := s.SpawnNewZone()
		assert.Equal(t, testBounds.Width+settings.SpawnEdgeOffset, z.X)
		assert.GreaterOrEqual(t, z.Y, settings.SpawnEdgePadding)
		assert.LessOrEqual(t, z.Y, testBounds.Height-settings.SpawnEdgePadding)
		assert.GreaterOrEqual(t, z.SizeVariation, 0.7)
		assert.LessOrEqual(t, z.SizeVariation, 1.4)
		assert.True(t, z.Active)
		assert.Equal(t, settings.MaxGeneration, z.MaxGeneration)
	}
	assert.Len(t, s.Zones(), 200, "SpawnNewZone does not enforce the cap")
}

func TestSpawnNewZone_AppliesArchetypeAndDifficulty(t *testing.T) {
	only, err := NewCatalog(mustDescriptor(t, BlobJammer))
	require.NoError(t, err)
	settings := quietSettings()
	s := newTestSystem(settings, Deps{}, WithCatalog(only))
	s.IncreaseZoneDifficulty(3)

	z := s.SpawnNewZone()
	d := s.Difficulty()
	assert.Equal(t, BlobJammer, z.Type)
	assert.NotNil(t, z.jam)
	assert.InDelta(t, settings.BaseZoneSize*z.Desc.SizeFactor*d.SizeMultiplier, z.BaseSize, 1e-9)
	assert.InDelta(t, settings.BaseHuntingSpeed*z.Desc.SpeedFactor*d.SpeedMultiplier, z.HuntingSpeed, 1e-9)
}

func TestSpawnNewZone_FallsBackToHunterWithoutCatalog(t *testing.T) {
	s := newTestSystem(quietSettings(), Deps{}, WithCatalog(nil))

	z := s.SpawnNewZone()
	assert.Equal(t, BlobHunter, z.Type)
	assert.InDelta(t, 1.0, z.Desc.SpeedFactor, 1e-9)
	assert.InDelta(t, 1.0, z.Desc.SizeFactor, 1e-9)
	assert.False(t, z.Fast, "legacy fast corruption is off by default")
}

func TestLegacyFastCorruption_OnlyOnFallbackPath(t *testing.T) {
	settings := quietSettings()
	settings.LegacyFastCorruption = true
	settings.FastChance = 1

	fallback := newTestSystem(settings, Deps{}, WithCatalog(nil))
	z := fallback.SpawnNewZone()
	assert.True(t, z.Fast)
	assert.InDelta(t, settings.BaseHuntingSpeed*settings.FastSpeedFactor, z.HuntingSpeed, 1e-9)

	withCatalog := newTestSystem(settings, Deps{})
	for i := 0; i < 50; i++ {
		assert.False(t, withCatalog.SpawnNewZone().Fast)
	}
}

func TestExpiry_NeverBeforeLifespan(t *testing.T) {
	s := newTestSystem(quietSettings(), Deps{})
	s.Update(5 * time.Second)
	z := s.SpawnNewZone()
	spawnedAt := s.Now()

	for s.Now() < spawnedAt+s.settings.ZoneLifespan {
		s.Update(time.Second)
		if s.Now() <= spawnedAt+s.settings.ZoneLifespan {
			require.Contains(t, s.Zones(), z, "removed early at %s", s.Now())
		}
	}
	s.Update(time.Second)
	assert.NotContains(t, s.Zones(), z)
	assert.Equal(t, 1, s.Stats().Expired)
}

func TestFilter_CullsZonesBeyondMargin(t *testing.T) {
	s := newTestSystem(quietSettings(), Deps{})
	inside := placeZone(t, s, BlobHunter, -199, 400, 40)
	outside := placeZone(t, s, BlobHunter, -201, 400, 40)
	below := placeZone(t, s, BlobHunter, 600, testBounds.Height+250, 40)

	s.Update(tick)
	assert.Contains(t, s.Zones(), inside)
	assert.NotContains(t, s.Zones(), outside)
	assert.NotContains(t, s.Zones(), below)
	assert.Equal(t, 2, s.Stats().Culled)
}

func TestHarvesterCollision_ExactlyOnePerUpdate(t *testing.T) {
	h1 := &testHarvester{x: 300, y: 300}
	h2 := &testHarvester{x: 700, y: 500}
	hs := newTestHarvesters(h1, h2)
	sink := &testSink{}
	s := newTestSystem(quietSettings(), Deps{Harvesters: hs, Effects: sink})
	z1 := placeZone(t, s, BlobHunter, 300, 300, 40)
	z2 := placeZone(t, s, BlobHunter, 700, 500, 40)

	s.Update(tick)

	require.Len(t, hs.removed, 1)
	assert.Len(t, hs.list, 1)
	assert.False(t, z1.Active, "first zone in order claims its harvester")
	assert.True(t, z2.Active)
	assert.Len(t, s.Zones(), 1, "the destroyed zone is filtered in the same tick")
	assert.Len(t, sink.flashes, 1)

	s.Update(tick)
	assert.Len(t, hs.removed, 2)
	assert.False(t, z2.Active)
	assert.Equal(t, 2, s.Stats().HarvestersDestroyed)
}

func TestNilCollaborators_AreNoOps(t *testing.T) {
	s := newTestSystem(DefaultSettings(), Deps{})
	require.NotPanics(t, func() {
		for i := 0; i < 600; i++ {
			s.Update(tick)
		}
		assert.False(t, s.CheckCollisions(nil))
		assert.Empty(t, s.Warnings())
	})
}

func TestCheckCollisions_AnyZoneHits(t *testing.T) {
	s := newTestSystem(quietSettings(), Deps{})
	placeZone(t, s, BlobHunter, 900, 100, 40)
	drone := &testDrone{x: 400, y: 400}
	assert.False(t, s.CheckCollisions(drone))

	hit := placeZone(t, s, BlobHunter, 410, 400, 40)
	assert.True(t, s.CheckCollisions(drone))

	hit.Active = false
	assert.False(t, s.CheckCollisions(drone))
}

func TestIsHarvesterJammed(t *testing.T) {
	h := &testHarvester{x: 610, y: 400}
	hs := newTestHarvesters(h)
	s := newTestSystem(quietSettings(), Deps{Harvesters: hs})
	placeZone(t, s, BlobJammer, 600, 300, 40)

	s.Update(tick)
	assert.True(t, s.IsHarvesterJammed(h))
	assert.False(t, s.IsHarvesterJammed(&testHarvester{x: 610, y: 400}))
}

type resetView struct {
	Zones                int
	Now                  time.Duration
	SpawnTimer           time.Duration
	CurrentSpawnInterval time.Duration
	Diff                 Difficulty
	Warnings             int
	Stats                Stats
}

func viewOf(s *System) resetView {
	return resetView{
		Zones:                len(s.zones),
		Now:                  s.now,
		SpawnTimer:           s.spawnTimer,
		CurrentSpawnInterval: s.currentSpawnInterval,
		Diff:                 s.diff,
		Warnings:             len(s.warnings),
		Stats:                s.stats,
	}
}

func TestReset_RestoresPostInitState(t *testing.T) {
	drone := &testDrone{x: 300, y: 400}
	s := newTestSystem(DefaultSettings(), Deps{Drone: drone})
	fresh := viewOf(s)

	s.IncreaseZoneDifficulty(6)
	for i := 0; i < 60*20; i++ {
		s.Update(tick)
	}
	require.NotZero(t, len(s.Zones()))

	s.Reset()
	if diff := cmp.Diff(fresh, viewOf(s)); diff != "" {
		t.Fatalf("state after Reset differs from Init (-init +reset):\n%s", diff)
	}
	assert.Zero(t, s.ActiveCount())
}

func TestEvents_LifecycleIsReported(t *testing.T) {
	bus := NewEventBus()
	got := map[EventType]int{}
	bus.SubscribeAll(func(e Event) { got[e.Type]++ })

	s := newTestSystem(quietSettings(), Deps{}, WithEvents(bus))
	s.SpawnNewZone()
	s.IncreaseZoneDifficulty(2)
	s.Update(s.settings.ZoneLifespan + time.Second)

	assert.Equal(t, 1, got[EventZoneSpawned])
	assert.Equal(t, 1, got[EventDifficultyChanged])
	assert.Equal(t, 1, got[EventZoneExpired])
}
