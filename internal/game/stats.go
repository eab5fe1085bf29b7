package game

import (
	"fmt"
	"strings"

	"github.com/Garsondee/Drone-Harvest/internal/corruption"
)

// --- Run stats ---

// RunStats tallies one session from its corruption events and host state.
type RunStats struct {
	Spawned        int
	Expired        int
	Culled         int
	Destroyed      int
	Splits         int
	Children       int
	HarvestersLost int
	Deployed       int
	OrbsCollected  int
	Energy         float64 // total energy gained, orbs and harvesters
	PeakZones      int
	Level          int
	FirstHitTick   int // 0 while the drone is alive
}

// Record folds one corruption event into the tally.
func (rs *RunStats) Record(e corruption.Event) {
	switch e.Type {
	case corruption.EventZoneSpawned:
		rs.Spawned++
	case corruption.EventZoneExpired:
		rs.Expired++
	case corruption.EventZoneCulled:
		rs.Culled++
	case corruption.EventZoneDestroyed:
		rs.Destroyed++
	case corruption.EventSplitterReproduced:
		rs.Splits++
		rs.Children += e.Data
	case corruption.EventHarvesterDestroyed:
		rs.HarvestersLost++
	case corruption.EventDifficultyChanged:
		rs.Level = e.Data
	}
}

// Survived reports whether the drone was never hit.
func (rs RunStats) Survived() bool { return rs.FirstHitTick == 0 }

// --- Summary ---

// Summary renders the tally as a short multi-line report.
func (rs RunStats) Summary(sessionID string, tick int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Drone Harvest session %s at T=%d ---\n", sessionID, tick)
	fmt.Fprintf(&sb, "level=%d  energy=%.1f  orbs=%d\n", rs.Level, rs.Energy, rs.OrbsCollected)
	fmt.Fprintf(&sb, "zones: spawned=%d expired=%d culled=%d destroyed=%d peak=%d\n",
		rs.Spawned, rs.Expired, rs.Culled, rs.Destroyed, rs.PeakZones)
	fmt.Fprintf(&sb, "splits=%d children=%d\n", rs.Splits, rs.Children)
	fmt.Fprintf(&sb, "harvesters: deployed=%d lost=%d\n", rs.Deployed, rs.HarvestersLost)
	if rs.Survived() {
		sb.WriteString("drone: alive\n")
	} else {
		fmt.Fprintf(&sb, "drone: lost at T=%d\n", rs.FirstHitTick)
	}
	return sb.String()
}
