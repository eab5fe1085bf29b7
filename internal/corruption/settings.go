package corruption

import (
	"errors"
	"fmt"
	"time"
)

// Settings holds the tunables of the corruption system. Distances are field
// units, speeds are field units per second.
type Settings struct {
	ZoneLifespan time.Duration // age at which a zone expires
	CullMargin   float64       // distance beyond the field before a zone is culled

	SpawnEdgeOffset  float64 // how far past the right edge new zones appear
	SpawnEdgePadding float64 // keeps spawns away from the top/bottom edges

	MinZones     int
	MaxZonesBase int
	MaxZonesCap  int

	BaseSpawnInterval time.Duration
	MinSpawnInterval  time.Duration

	BaseZoneSize     float64
	BaseDriftSpeed   float64 // leftward scroll drift
	BaseHuntingSpeed float64
	SizeVariationMin float64
	SizeVariationMax float64

	MaxGeneration    int
	SplitRadiusMin   float64
	SplitRadiusMax   float64
	ChildSpeedFactor float64

	WarningsEnabled bool
	WarningRange    float64

	DroneRadius     float64
	HarvesterRadius float64

	// LegacyFastCorruption enables the old 15% fast variant. It only applies
	// to zones spawned on the catalog fallback path.
	LegacyFastCorruption bool
	FastChance           float64
	FastSpeedFactor      float64
}

// DefaultSettings returns the stock tuning.
func DefaultSettings() Settings {
	return Settings{
		ZoneLifespan: 60 * time.Second,
		CullMargin:   200,

		SpawnEdgeOffset:  50,
		SpawnEdgePadding: 50,

		MinZones:     1,
		MaxZonesBase: 3,
		MaxZonesCap:  8,

		BaseSpawnInterval: 3 * time.Second,
		MinSpawnInterval:  time.Second,

		BaseZoneSize:     60,
		BaseDriftSpeed:   12,
		BaseHuntingSpeed: 45,
		SizeVariationMin: 0.7,
		SizeVariationMax: 1.4,

		MaxGeneration:    2,
		SplitRadiusMin:   40,
		SplitRadiusMax:   60,
		ChildSpeedFactor: 1.2,

		WarningsEnabled: true,
		WarningRange:    150,

		DroneRadius:     14,
		HarvesterRadius: 10,

		LegacyFastCorruption: false,
		FastChance:           0.15,
		FastSpeedFactor:      1.5,
	}
}

// ErrInvalidSettings is wrapped by Validate failures.
var ErrInvalidSettings = errors.New("invalid corruption settings")

// Validate rejects settings the system cannot run with.
func (s Settings) Validate() error {
	switch {
	case s.ZoneLifespan <= 0:
		return fmt.Errorf("%w: zone lifespan must be positive", ErrInvalidSettings)
	case s.MinZones < 0:
		return fmt.Errorf("%w: min zones must be >= 0", ErrInvalidSettings)
	case s.MaxZonesBase < s.MinZones:
		return fmt.Errorf("%w: max zones (%d) below min zones (%d)", ErrInvalidSettings, s.MaxZonesBase, s.MinZones)
	case s.MaxZonesCap < s.MaxZonesBase:
		return fmt.Errorf("%w: max zones cap (%d) below base (%d)", ErrInvalidSettings, s.MaxZonesCap, s.MaxZonesBase)
	case s.BaseSpawnInterval <= 0 || s.MinSpawnInterval <= 0:
		return fmt.Errorf("%w: spawn intervals must be positive", ErrInvalidSettings)
	case s.SizeVariationMin <= 0 || s.SizeVariationMax < s.SizeVariationMin:
		return fmt.Errorf("%w: size variation range [%g, %g]", ErrInvalidSettings, s.SizeVariationMin, s.SizeVariationMax)
	case s.SplitRadiusMax < s.SplitRadiusMin:
		return fmt.Errorf("%w: split radius range [%g, %g]", ErrInvalidSettings, s.SplitRadiusMin, s.SplitRadiusMax)
	case s.WarningRange <= 0:
		return fmt.Errorf("%w: warning range must be positive", ErrInvalidSettings)
	case s.FastChance < 0 || s.FastChance > 1:
		return fmt.Errorf("%w: fast chance must be in [0,1]", ErrInvalidSettings)
	}
	return nil
}
