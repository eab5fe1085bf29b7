package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Garsondee/Drone-Harvest/internal/config"
	"github.com/Garsondee/Drone-Harvest/internal/corruption"
)

// TickDuration is one fixed simulation step at ebiten's default 60 TPS.
const TickDuration = time.Second / 60

// Input is the player's intent for one tick.
type Input struct {
	MoveX, MoveY float64 // each in [-1, 1]
	Deploy       bool
}

// Session is one playthrough: drone, harvesters, orbs and the corruption
// system they share a field with. It has no rendering and no input polling,
// so both Game and TestSim drive it.
type Session struct {
	ID uuid.UUID

	cfg    *config.Config
	bounds corruption.Bounds
	log    *zap.Logger
	rng    *rand.Rand

	events     *corruption.EventBus
	zones      *corruption.System
	drone      *Drone
	harvesters *HarvesterField
	orbs       *OrbField
	flash      *Flash

	energy     float64
	level      int
	levelTimer time.Duration
	tick       int
	over       bool
	stats      RunStats
}

// NewSession builds a session from cfg. seed 0 falls back to cfg.Session.Seed
// and then to the clock.
func NewSession(cfg *config.Config, log *zap.Logger, seed int64) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	catalog, err := cfg.BuildCatalog()
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	if seed == 0 {
		seed = cfg.Session.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Session{
		cfg:        cfg,
		bounds:     cfg.Bounds(),
		log:        log,
		rng:        rand.New(rand.NewSource(seed)), // #nosec G404 -- game only
		events:     corruption.NewEventBus(),
		harvesters: NewHarvesterField(cfg.Harvester.Max, cfg.Harvester.YieldPerSecond),
		flash:      &Flash{},
	}
	s.drone = NewDrone(cfg.Drone.StartX, s.bounds.Height/2, cfg.Drone.Speed, cfg.Drone.Radius)
	s.orbs = NewOrbField(cfg.Session.OrbInterval, cfg.Session.ScrollSpeed, s.bounds)
	s.events.SubscribeAll(s.stats.Record)

	s.zones = corruption.New(
		cfg.CorruptionSettings(),
		s.bounds,
		corruption.Deps{Drone: s.drone, Harvesters: s.harvesters, Effects: s.flash},
		corruption.WithCatalog(catalog),
		corruption.WithRand(rand.New(rand.NewSource(s.rng.Int63()))), // #nosec G404 -- game only
		corruption.WithLogger(log.Named("corruption")),
		corruption.WithEvents(s.events),
	)
	s.begin()
	return s, nil
}

// Restart returns the session to a fresh start with a new ID.
func (s *Session) Restart() {
	s.log.Info("session ended",
		zap.String("session", s.ID.String()),
		zap.Int("tick", s.tick),
		zap.Int("level", s.level))
	s.zones.Reset()
	s.harvesters.Clear()
	s.orbs.Clear()
	s.flash.Reset()
	s.drone.X = s.cfg.Drone.StartX
	s.drone.Y = s.bounds.Height / 2
	s.begin()
}

func (s *Session) begin() {
	s.ID = uuid.New()
	s.energy = s.cfg.Session.StartingEnergy
	s.levelTimer = 0
	s.tick = 0
	s.over = false
	s.stats = RunStats{}
	s.SetLevel(1)
	s.log.Info("session started", zap.String("session", s.ID.String()))
}

// SetLevel jumps the zone level and restarts the level timer.
func (s *Session) SetLevel(level int) {
	s.level = max(level, 1)
	s.levelTimer = 0
	s.zones.IncreaseZoneDifficulty(s.level)
}

// Step advances the session by dt. It does nothing once the drone is lost.
func (s *Session) Step(dt time.Duration, in Input) {
	if s.over {
		return
	}
	s.tick++

	s.drone.Move(in.MoveX, in.MoveY, dt, s.bounds)
	if in.Deploy {
		s.Deploy()
	}

	s.orbs.Update(dt, s.rng)
	if n := s.orbs.Collect(s.drone); n > 0 {
		gain := float64(n) * s.cfg.Session.OrbValue
		s.energy += gain
		s.stats.OrbsCollected += n
		s.stats.Energy += gain
	}

	s.zones.Update(dt)

	gain := s.harvesters.Yield(dt, s.zones.IsHarvesterJammed)
	s.energy += gain
	s.stats.Energy += gain
	s.flash.Update(dt)

	s.levelTimer += dt
	if s.levelTimer >= s.cfg.Session.LevelInterval {
		s.SetLevel(s.level + 1)
	}

	s.stats.PeakZones = max(s.stats.PeakZones, s.zones.ActiveCount())

	if s.zones.CheckCollisions(s.drone) {
		s.over = true
		s.stats.FirstHitTick = s.tick
		s.log.Info("drone lost",
			zap.String("session", s.ID.String()),
			zap.Int("tick", s.tick),
			zap.Int("level", s.level))
	}
}

// Deploy drops a harvester at the drone if there is energy and room for it.
func (s *Session) Deploy() bool {
	if s.energy < s.cfg.Harvester.Cost || s.harvesters.Full() {
		return false
	}
	h, ok := s.harvesters.Deploy(s.drone.X, s.drone.Y)
	if !ok {
		return false
	}
	s.energy -= s.cfg.Harvester.Cost
	s.stats.Deployed++
	s.log.Debug("harvester deployed",
		zap.Float64("x", h.X),
		zap.Float64("y", h.Y),
		zap.Float64("energy", s.energy))
	return true
}

// PlaceHarvester deploys a harvester at (x, y) without spending energy.
func (s *Session) PlaceHarvester(x, y float64) (*Harvester, bool) {
	h, ok := s.harvesters.Deploy(x, y)
	if ok {
		s.stats.Deployed++
	}
	return h, ok
}

func (s *Session) Summary() string { return s.stats.Summary(s.ID.String(), s.tick) }

func (s *Session) Events() *corruption.EventBus { return s.events }
func (s *Session) Zones() *corruption.System { return s.zones }
func (s *Session) Drone() *Drone { return s.drone }
func (s *Session) Harvesters() *HarvesterField { return s.harvesters }
func (s *Session) Orbs() *OrbField { return s.orbs }
func (s *Session) Flash() *Flash { return s.flash }
func (s *Session) Bounds() corruption.Bounds { return s.bounds }
func (s *Session) Config() *config.Config { return s.cfg }
func (s *Session) Energy() float64 { return s.energy }
func (s *Session) Level() int { return s.level }
func (s *Session) Tick() int { return s.tick }
func (s *Session) Over() bool { return s.over }
func (s *Session) Stats() RunStats { return s.stats }
