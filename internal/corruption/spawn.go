package corruption

import (
	"math"
	"time"

	"go.uber.org/zap"
)

// SpawnNewZone creates a zone just past the right edge of the field and
// appends it to the population. The population cap is enforced by Update,
// not here.
func (s *System) SpawnNewZone() *Zone {
	desc, err := s.catalog.SelectRandom(s.rng)
	fallback := err != nil
	if fallback {
		s.log.Debug("blob catalog unavailable, spawning hunter", zap.Error(err))
		desc = HunterFallback()
	}

	x := s.bounds.Width + s.settings.SpawnEdgeOffset
	y := s.bounds.Height / 2
	if span := s.bounds.Height - 2*s.settings.SpawnEdgePadding; span > 0 {
		y = s.settings.SpawnEdgePadding + s.rng.Float64()*span
	}

	z := newZone(desc, x, y, s.now)
	z.MaxGeneration = s.settings.MaxGeneration
	z.SizeVariation = s.settings.SizeVariationMin +
		s.rng.Float64()*(s.settings.SizeVariationMax-s.settings.SizeVariationMin)
	z.BaseSize = s.settings.BaseZoneSize * desc.SizeFactor * s.diff.SizeMultiplier
	z.Speed = s.settings.BaseDriftSpeed * desc.SpeedFactor * s.diff.SpeedMultiplier
	z.baseHuntingSpeed = s.settings.BaseHuntingSpeed * desc.SpeedFactor

	if fallback && s.settings.LegacyFastCorruption && s.rng.Float64() < s.settings.FastChance {
		z.Fast = true
		z.Speed *= s.settings.FastSpeedFactor
		z.baseHuntingSpeed *= s.settings.FastSpeedFactor
	}
	z.applySpeedMultiplier(s.diff.SpeedMultiplier)

	s.zones = append(s.zones, z)
	s.stats.Spawned++
	s.log.Debug("zone spawned",
		zap.Stringer("type", z.Type),
		zap.Float64("x", z.X), zap.Float64("y", z.Y),
		zap.Float64("size", z.BaseSize*z.SizeVariation),
		zap.Bool("fast", z.Fast))
	s.events.Emit(Event{Type: EventZoneSpawned, Zone: z, X: z.X, Y: z.Y})
	return z
}

// HandleSplitterDestruction spawns the children of an expiring splitter and
// returns how many landed inside the field. It does nothing for zones that
// cannot split or have already split.
func (s *System) HandleSplitterDestruction(z *Zone) int {
	if z == nil || !z.CanSplit() {
		return 0
	}
	z.HasSplit = true
	params := z.Desc.Splitter

	hunter, ok := s.catalog.Lookup(BlobHunter)
	if !ok {
		hunter = HunterFallback()
	}

	spawned := 0
	for i := 0; i < params.SplitCount; i++ {
		angle := 2 * math.Pi * float64(i) / float64(params.SplitCount)
		r := s.settings.SplitRadiusMin + s.rng.Float64()*(s.settings.SplitRadiusMax-s.settings.SplitRadiusMin)
		cx := z.X + math.Cos(angle)*r
		cy := z.Y + math.Sin(angle)*r
		if !s.bounds.Contains(cx, cy) {
			continue
		}

		child := newZone(hunter, cx, cy, s.now)
		child.BaseSize = z.BaseSize * params.SplitSize
		child.Speed = z.Speed * s.settings.ChildSpeedFactor
		child.baseHuntingSpeed = z.baseHuntingSpeed * s.settings.ChildSpeedFactor
		child.Generation = z.Generation + 1
		child.MaxGeneration = z.MaxGeneration
		child.applySpeedMultiplier(s.diff.SpeedMultiplier)

		s.zones = append(s.zones, child)
		spawned++
		s.events.Emit(Event{Type: EventZoneSpawned, Zone: child, X: cx, Y: cy})
	}

	s.deps.flash(z.Desc.Color, 0.2, 150*time.Millisecond)
	s.stats.Splits++
	s.stats.ChildrenSpawned += spawned
	s.log.Info("splitter reproduced",
		zap.Int("children", spawned),
		zap.Int("requested", params.SplitCount),
		zap.Int("generation", z.Generation+1))
	s.events.Emit(Event{Type: EventSplitterReproduced, Zone: z, X: z.X, Y: z.Y, Data: spawned})
	return spawned
}
