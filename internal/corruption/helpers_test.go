package corruption

import (
	"image/color"
	"math/rand"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// tick is the host frame length at 60 TPS.
const tick = time.Second / 60

type testDrone struct{ x, y float64 }

func (d *testDrone) Position() (float64, float64) { return d.x, d.y }

type testHarvester struct{ x, y float64 }

func (h *testHarvester) Position() (float64, float64) { return h.x, h.y }

type testHarvesters struct {
	list    []Harvester
	removed []int
}

func newTestHarvesters(hs ...*testHarvester) *testHarvesters {
	th := &testHarvesters{}
	for _, h := range hs {
		th.list = append(th.list, h)
	}
	return th
}

func (th *testHarvesters) Harvesters() []Harvester { return th.list }

func (th *testHarvesters) RemoveHarvester(i int) {
	th.removed = append(th.removed, i)
	th.list = append(th.list[:i], th.list[i+1:]...)
}

type flash struct {
	c         color.RGBA
	intensity float64
	duration  time.Duration
}

type testSink struct{ flashes []flash }

func (s *testSink) ScreenFlash(c color.RGBA, intensity float64, d time.Duration) {
	s.flashes = append(s.flashes, flash{c, intensity, d})
}

// quietSettings never spawns on its own, so tests control the population.
func quietSettings() Settings {
	s := DefaultSettings()
	s.MinZones = 0
	s.MaxZonesBase = 0
	s.MaxZonesCap = 0
	s.BaseDriftSpeed = 0
	return s
}

var testBounds = Bounds{Width: 1200, Height: 800}

func newTestSystem(settings Settings, deps Deps, opts ...Option) *System {
	opts = append([]Option{WithRand(rand.New(rand.NewSource(7)))}, opts...)
	return New(settings, testBounds, deps, opts...)
}

func mustDescriptor(t *testing.T, bt BlobType) BlobTypeDescriptor {
	t.Helper()
	d, ok := DefaultCatalog().Lookup(bt)
	if !ok {
		t.Fatalf("default catalog has no %s", bt)
	}
	return d
}

// placeZone appends a zone of the given archetype at (x, y) with a fixed size.
func placeZone(t *testing.T, s *System, bt BlobType, x, y, size float64) *Zone {
	t.Helper()
	z := newZone(mustDescriptor(t, bt), x, y, s.now)
	z.BaseSize = size
	z.MaxGeneration = s.settings.MaxGeneration
	z.baseHuntingSpeed = s.settings.BaseHuntingSpeed
	z.applySpeedMultiplier(s.diff.SpeedMultiplier)
	s.zones = append(s.zones, z)
	return z
}
