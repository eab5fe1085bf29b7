package corruption

import (
	"math"
	"time"

	"go.uber.org/zap"
)

// Difficulty is the scaling applied at a zone level.
type Difficulty struct {
	Level               int
	SpeedMultiplier     float64
	SizeMultiplier      float64
	SpawnRateMultiplier float64 // reported only; the interval curve already carries spawn rate
	CurrentMaxZones     int
	BaseSpawnInterval   time.Duration
}

// difficultyFor computes the multipliers for level (clamped to >= 1).
func difficultyFor(settings Settings, level int) Difficulty {
	if level < 1 {
		level = 1
	}
	l := float64(level - 1)
	interval := time.Duration(float64(settings.BaseSpawnInterval) * math.Pow(0.9, l))
	return Difficulty{
		Level:               level,
		SpeedMultiplier:     1 + l*0.2,
		SizeMultiplier:      1 + l*0.1,
		SpawnRateMultiplier: 1 + l*0.15,
		CurrentMaxZones:     min(settings.MaxZonesBase+(level-1)/2, settings.MaxZonesCap),
		BaseSpawnInterval:   max(settings.MinSpawnInterval, interval),
	}
}

func baselineDifficulty(settings Settings) Difficulty {
	return difficultyFor(settings, 1)
}

// IncreaseZoneDifficulty sets the scaling for zoneLevel and applies the new
// speed multiplier to every live zone immediately. Hunting speed is always
// recomputed from each zone's base speed, so repeated calls do not compound.
func (s *System) IncreaseZoneDifficulty(zoneLevel int) {
	s.diff = difficultyFor(s.settings, zoneLevel)
	for _, z := range s.zones {
		z.applySpeedMultiplier(s.diff.SpeedMultiplier)
	}
	s.log.Info("zone difficulty changed",
		zap.Int("level", s.diff.Level),
		zap.Float64("speed", s.diff.SpeedMultiplier),
		zap.Float64("size", s.diff.SizeMultiplier),
		zap.Int("max_zones", s.diff.CurrentMaxZones),
		zap.Duration("base_interval", s.diff.BaseSpawnInterval))
	s.events.Emit(Event{Type: EventDifficultyChanged, Data: s.diff.Level})
}

// Difficulty returns the current scaling.
func (s *System) Difficulty() Difficulty { return s.diff }
