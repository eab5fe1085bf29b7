package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Garsondee/Drone-Harvest/internal/config"
	"github.com/Garsondee/Drone-Harvest/internal/corruption"
)

// TestSim is a headless harness around Session. It has no input polling or
// rendering, supports deterministic seeding and records a structured SimLog.
type TestSim struct {
	Session *Session
	SimLog  *SimLog

	cfg    *config.Config
	log    *zap.Logger
	seed   int64
	input  func(tick int) Input
	levels map[int]int // tick -> zone level
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptConfig simOptionKind = iota // field, config, seed, verbose: applied before the session exists
	simOptEntity                      // drone and harvesters: applied after the session is built
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithFieldSize sets the field dimensions.
func WithFieldSize(w, h float64) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.cfg.Field.Width = w
		ts.cfg.Field.Height = h
	}}
}

// WithConfig edits the configuration before the session is built.
func WithConfig(edit func(*config.Config)) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		edit(ts.cfg)
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.seed = seed
	}}
}

// WithVerbose enables per-tick population and warning entries.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithLogger routes session and corruption logs to l.
func WithLogger(l *zap.Logger) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.log = l
	}}
}

// WithLevelAt raises the zone level to level when tick is reached.
func WithLevelAt(tick, level int) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.levels[tick] = level
	}}
}

// WithDroneInput scripts the drone: fn returns the input for each tick.
func WithDroneInput(fn func(tick int) Input) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.input = fn
	}}
}

// WithDroneAt moves the drone to (x, y) before the first tick.
func WithDroneAt(x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		d := ts.Session.Drone()
		d.X, d.Y = x, y
	}}
}

// WithHarvester places a harvester at (x, y) at no cost.
func WithHarvester(x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.Session.PlaceHarvester(x, y)
	}}
}

// NewTestSim constructs a TestSim in two ordered passes:
//  1. Configuration (field, config edits, seed, verbose, level schedule)
//  2. Build the session, then place the drone and harvesters
func NewTestSim(opts ...SimOption) (*TestSim, error) {
	ts := &TestSim{
		SimLog: NewSimLog(false),
		cfg:    config.Default(),
		log:    zap.NewNop(),
		seed:   1,
		levels: map[int]int{},
	}
	for _, o := range opts {
		if o.kind == simOptConfig {
			o.fn(ts)
		}
	}
	s, err := NewSession(ts.cfg, ts.log, ts.seed)
	if err != nil {
		return nil, fmt.Errorf("test sim: %w", err)
	}
	ts.Session = s
	s.Events().SubscribeAll(ts.recordEvent)
	for _, o := range opts {
		if o.kind == simOptEntity {
			o.fn(ts)
		}
	}
	return ts, nil
}

func (ts *TestSim) recordEvent(e corruption.Event) {
	cat := "zone"
	switch e.Type {
	case corruption.EventSplitterReproduced:
		cat = "split"
	case corruption.EventHarvesterDestroyed:
		cat = "harvester"
	case corruption.EventDifficultyChanged:
		cat = "difficulty"
	}
	ts.SimLog.Add(ts.Session.Tick(), zoneLabel(e.Zone), cat, e.Type.String(), describeEvent(e), float64(e.Data))
}

// RunTicks advances the simulation n ticks, stopping early if the drone is lost.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n && !ts.Session.Over(); i++ {
		ts.runOneTick()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks && !ts.Session.Over(); i++ {
		ts.runOneTick()
		if predicate(ts) {
			return ts.Session.Tick()
		}
	}
	return -1
}

// runOneTick mirrors Game.Update for the headless harness.
func (ts *TestSim) runOneTick() {
	s := ts.Session
	next := s.Tick() + 1
	if lvl, ok := ts.levels[next]; ok {
		s.SetLevel(lvl)
	}

	var in Input
	if ts.input != nil {
		in = ts.input(next)
	}
	s.Step(TickDuration, in)
	tick := s.Tick()

	if s.Over() {
		x, y := s.Drone().Position()
		ts.SimLog.Add(tick, "--", "drone", "hit", fmt.Sprintf("lost at (%.0f,%.0f)", x, y), float64(tick))
	}

	if !ts.SimLog.Verbose() {
		return
	}
	active := s.Zones().ActiveCount()
	ts.SimLog.AddVerbose(tick, "--", "population", "active", fmt.Sprintf("%d zones", active), float64(active))
	if ws := s.Zones().Warnings(); len(ws) > 0 {
		w := ws[0]
		ts.SimLog.AddVerbose(tick, zoneLabel(w.Zone), "warning", w.Urgency.String(),
			fmt.Sprintf("%d incoming, nearest %.0f", len(ws), w.Distance), w.Distance)
	}
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.Session.Tick()
}

// SimSnapshot captures a lightweight state summary.
type SimSnapshot struct {
	Tick       int
	Level      int
	Energy     float64
	Harvesters int
	Over       bool
	Zones      []ZoneSnapshot
}

// ZoneSnapshot is a lightweight copy of a zone's state at a tick.
type ZoneSnapshot struct {
	Type       string
	X, Y       float64
	Radius     float64
	Generation int
	Phase      corruption.BurstPhase
}

// Snapshot returns the current state of the session and its live zones.
func (ts *TestSim) Snapshot() SimSnapshot {
	s := ts.Session
	snap := SimSnapshot{
		Tick:       s.Tick(),
		Level:      s.Level(),
		Energy:     s.Energy(),
		Harvesters: s.Harvesters().Len(),
		Over:       s.Over(),
	}
	for _, z := range s.Zones().Zones() {
		if !z.Active {
			continue
		}
		snap.Zones = append(snap.Zones, ZoneSnapshot{
			Type:       z.Type.String(),
			X:          z.X,
			Y:          z.Y,
			Radius:     z.Radius(),
			Generation: z.Generation,
			Phase:      z.BurstPhase(),
		})
	}
	return snap
}
