package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a headless simulation.
type SimLogEntry struct {
	Tick     int
	Zone     string  // blob label e.g. "jammer", "hunter/1", or "--" for field-wide events
	Category string  // zone, split, harvester, difficulty, drone, warning, population
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042] jammer     zone       zone_expired     faded out
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-10s %-10s %-20s %s",
		e.Tick, e.Zone, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a headless simulation.
// Unlike EventLog (UI ring-buffer), SimLog is unbounded and machine-readable.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick population and
// warning entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

func (sl *SimLog) Add(tick int, zone, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Zone:     zone,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, zone, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, zone, category, key, value, numVal)
}

func (sl *SimLog) Verbose() bool { return sl.verbose }

func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// FirstOf returns the earliest entry matching category+key, or false if none.
func (sl *SimLog) FirstOf(category, key string) (SimLogEntry, bool) {
	for _, e := range sl.entries {
		if (category == "" || e.Category == category) && (key == "" || e.Key == key) {
			return e, true
		}
	}
	return SimLogEntry{}, false
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	return formatEntries(sl.entries)
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	return formatEntries(sl.FilterTickRange(fromTick, toTick))
}

func formatEntries(entries []SimLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short breakdown of the log by category and key.
func (sl *SimLog) Summary(snap SimSnapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%04d ---\n", snap.Tick)
	fmt.Fprintf(&sb, "level=%d energy=%.1f harvesters=%d over=%t\n",
		snap.Level, snap.Energy, snap.Harvesters, snap.Over)

	byType := map[string]int{}
	for _, z := range snap.Zones {
		byType[z.Type]++
	}
	if len(byType) == 0 {
		sb.WriteString("Zones: none\n")
	} else {
		sb.WriteString("Zones:")
		for _, name := range []string{"hunter", "jammer", "sprinter", "splitter"} {
			if n := byType[name]; n > 0 {
				fmt.Fprintf(&sb, " %s=%d", name, n)
			}
		}
		sb.WriteByte('\n')
	}

	for _, k := range []struct{ cat, key string }{
		{"zone", "zone_spawned"},
		{"zone", "zone_expired"},
		{"zone", "zone_culled"},
		{"split", "splitter_reproduced"},
		{"harvester", "harvester_destroyed"},
	} {
		fmt.Fprintf(&sb, "%s=%d ", k.key, sl.CountCategory(k.cat, k.key))
	}
	sb.WriteByte('\n')
	return sb.String()
}
