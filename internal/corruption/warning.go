package corruption

import (
	"cmp"
	"math"
	"slices"
)

// Urgency ranks a warning.
type Urgency int

const (
	UrgencyMedium Urgency = iota
	UrgencyHigh
	UrgencyCritical
)

func (u Urgency) String() string {
	switch u {
	case UrgencyMedium:
		return "medium"
	case UrgencyHigh:
		return "high"
	case UrgencyCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Warning is a transient threat indicator for a zone ahead of the drone.
type Warning struct {
	X, Y      float64
	Distance  float64
	Intensity float64 // 0-1, 1 at the drone
	Urgency   Urgency
	Fast      bool
	Zone      *Zone
}

// computeWarnings rebuilds the warning list into buf. Only active zones
// ahead of the drone (larger x) and within range are reported.
func (s *System) computeWarnings(buf []Warning) []Warning {
	if s.deps.Drone == nil {
		return buf
	}
	dx, dy := s.deps.Drone.Position()
	rng := s.settings.WarningRange

	for _, z := range s.zones {
		if !z.Active || z.X <= dx {
			continue
		}
		dist := math.Hypot(z.X-dx, z.Y-dy)
		if dist > rng {
			continue
		}
		w := Warning{
			X:         z.X,
			Y:         z.Y,
			Distance:  dist,
			Intensity: max(0, 1-dist/rng),
			Fast:      z.Fast,
			Zone:      z,
		}
		switch {
		case z.Fast:
			w.Urgency = UrgencyCritical
		case dist < rng/2:
			w.Urgency = UrgencyHigh
		default:
			w.Urgency = UrgencyMedium
		}
		buf = append(buf, w)
	}

	sortWarnings(buf)
	return buf
}

// sortWarnings puts critical entries first, then orders by distance.
func sortWarnings(ws []Warning) {
	slices.SortStableFunc(ws, func(a, b Warning) int {
		ac, bc := a.Urgency == UrgencyCritical, b.Urgency == UrgencyCritical
		if ac != bc {
			if ac {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Distance, b.Distance)
	})
}

// Warnings returns the list computed on the last Update.
func (s *System) Warnings() []Warning { return s.warnings }
