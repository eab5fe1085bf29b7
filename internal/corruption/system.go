// Package corruption runs the hostile "corruption zone" population: spawning,
// archetype behaviour, ageing and expiry, difficulty scaling, collisions
// against the drone and harvesters, and proximity warnings.
//
// The System is single-threaded and owned by one game session. All mutation
// happens inside Update, SpawnNewZone, HandleSplitterDestruction,
// IncreaseZoneDifficulty and Reset.
package corruption

import (
	"image/color"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// harvesterFlash is the screen flash fired when a zone eats a harvester.
var harvesterFlash = color.RGBA{R: 255, G: 40, B: 40, A: 255}

// Stats counts lifecycle events since the last Init/Reset.
type Stats struct {
	Spawned             int
	Expired             int
	Culled              int
	Destroyed           int
	Splits              int
	ChildrenSpawned     int
	HarvestersDestroyed int
	PeakPopulation      int
}

// System manages the corruption zone population for one game session.
type System struct {
	settings Settings
	bounds   Bounds
	deps     Deps
	catalog  *Catalog
	rng      *rand.Rand
	log      *zap.Logger
	events   *EventBus

	zones []*Zone
	spare []*Zone // reused by filterZones

	now                  time.Duration // monotonic simulation clock
	spawnTimer           time.Duration
	currentSpawnInterval time.Duration
	diff                 Difficulty

	warnings []Warning
	stats    Stats
}

// Option configures a System at construction.
type Option func(*System)

// WithCatalog sets the archetype catalog. A nil catalog makes every spawn
// fall back to a plain hunter.
func WithCatalog(c *Catalog) Option {
	return func(s *System) { s.catalog = c }
}

// WithRand sets the random source used for spawns and splits.
func WithRand(r *rand.Rand) Option {
	return func(s *System) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *System) {
		if l != nil {
			s.log = l
		}
	}
}

// WithEvents attaches an event bus for lifecycle notifications.
func WithEvents(bus *EventBus) Option {
	return func(s *System) { s.events = bus }
}

// New creates an initialised System. Settings are expected to have passed
// Validate.
func New(settings Settings, bounds Bounds, deps Deps, opts ...Option) *System {
	s := &System{
		settings: settings,
		bounds:   bounds,
		deps:     deps,
		catalog:  DefaultCatalog(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- game only
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s.Init()
}

// Init resets all state to defaults and returns the system.
func (s *System) Init() *System {
	s.Reset()
	return s
}

// Reset clears the population and puts timing and difficulty back to their
// level 1 values. Called at the start of every game session.
func (s *System) Reset() {
	clear(s.zones)
	s.zones = s.zones[:0]
	clear(s.spare)
	s.spare = s.spare[:0]
	s.now = 0
	s.spawnTimer = 0
	s.diff = baselineDifficulty(s.settings)
	s.currentSpawnInterval = s.diff.BaseSpawnInterval
	s.warnings = s.warnings[:0]
	s.stats = Stats{}
}

// Update advances the simulation by dt.
func (s *System) Update(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.now += dt
	s.spawnTimer += dt

	for _, z := range s.zones {
		z.Update(dt, s.deps)
	}

	if s.settings.WarningsEnabled {
		s.warnings = s.computeWarnings(s.warnings[:0])
	} else {
		s.warnings = s.warnings[:0]
	}

	s.resolveHarvesterCollision()
	s.filterZones()
	s.maintainPopulation()

	if n := len(s.zones); n > s.stats.PeakPopulation {
		s.stats.PeakPopulation = n
	}
}

// resolveHarvesterCollision destroys at most one harvester per call.
func (s *System) resolveHarvesterCollision() {
	hs := s.deps.Harvesters
	if hs == nil {
		return
	}
	for _, z := range s.zones {
		h, idx, ok := z.CheckHarvesterCollision(hs, s.settings.HarvesterRadius)
		if !ok {
			continue
		}
		z.Active = false
		hs.RemoveHarvester(idx)
		s.deps.flash(harvesterFlash, 0.3, 200*time.Millisecond)

		hx, hy := h.Position()
		s.stats.HarvestersDestroyed++
		s.stats.Destroyed++
		s.log.Info("harvester destroyed",
			zap.Stringer("zone", z.Type),
			zap.Int("index", idx),
			zap.Float64("x", hx), zap.Float64("y", hy))
		s.events.Emit(Event{Type: EventHarvesterDestroyed, Zone: z, X: hx, Y: hy, Data: idx})
		s.events.Emit(Event{Type: EventZoneDestroyed, Zone: z, X: z.X, Y: z.Y})
		return
	}
}

// filterZones drops inactive, expired and out-of-field zones. Expired
// splitters reproduce before removal; children land in the new population.
func (s *System) filterZones() {
	old := s.zones
	s.zones = s.spare[:0]

	for _, z := range old {
		switch {
		case !z.Active:
			continue
		case z.Expired(s.now, s.settings.ZoneLifespan):
			if z.CanSplit() {
				s.HandleSplitterDestruction(z)
			}
			s.stats.Expired++
			s.events.Emit(Event{Type: EventZoneExpired, Zone: z, X: z.X, Y: z.Y})
		case z.OutOfBounds(s.bounds, s.settings.CullMargin):
			s.stats.Culled++
			s.events.Emit(Event{Type: EventZoneCulled, Zone: z, X: z.X, Y: z.Y})
		default:
			s.zones = append(s.zones, z)
		}
	}

	clear(old)
	s.spare = old[:0]
}

// maintainPopulation spawns at most one zone per tick.
func (s *System) maintainPopulation() {
	count := len(s.zones)
	switch {
	case count < s.settings.MinZones:
	case count < s.diff.CurrentMaxZones && s.spawnTimer >= s.currentSpawnInterval:
	default:
		return
	}
	s.SpawnNewZone()
	s.spawnTimer = 0
	s.currentSpawnInterval = s.nextSpawnInterval()
}

// nextSpawnInterval slows spawning as the population nears the cap.
func (s *System) nextSpawnInterval() time.Duration {
	maxZones := s.diff.CurrentMaxZones
	if maxZones < 1 {
		maxZones = 1
	}
	fill := float64(len(s.zones)) / float64(maxZones)
	interval := time.Duration(float64(s.diff.BaseSpawnInterval) * (0.5 + 0.5*fill))
	return max(s.settings.MinSpawnInterval, interval)
}

// CheckCollisions reports whether any active zone touches the drone.
func (s *System) CheckCollisions(d Drone) bool {
	if d == nil {
		return false
	}
	for _, z := range s.zones {
		if z.CheckCollision(d, s.settings.DroneRadius) {
			return true
		}
	}
	return false
}

// IsHarvesterJammed reports whether any jammer currently suppresses h.
func (s *System) IsHarvesterJammed(h Harvester) bool {
	for _, z := range s.zones {
		if z.Jamming(h) {
			return true
		}
	}
	return false
}

// Zones returns the live population. Callers must not modify the slice.
func (s *System) Zones() []*Zone { return s.zones }

// ActiveCount is the number of live, active zones.
func (s *System) ActiveCount() int {
	n := 0
	for _, z := range s.zones {
		if z.Active {
			n++
		}
	}
	return n
}

// Now is the simulation clock.
func (s *System) Now() time.Duration { return s.now }

// SpawnInterval is the current gap between timed spawns.
func (s *System) SpawnInterval() time.Duration { return s.currentSpawnInterval }

// Stats returns lifecycle counters since the last reset.
func (s *System) Stats() Stats { return s.stats }

// Settings returns the tuning in use.
func (s *System) Settings() Settings { return s.settings }

// Bounds returns the field size.
func (s *System) Bounds() Bounds { return s.bounds }
