package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Drone-Harvest/internal/corruption"
)

const (
	logPanelWidth = 300
	logMaxEntries = 60
	logLineHeight = 11
)

// EventLogEntry is a single line in the event log.
type EventLogEntry struct {
	Tick    int
	Label   string // blob type, or "--" for field-wide events
	Kind    corruption.EventType
	Message string
}

// EventLog is a ring buffer of corruption events rendered on-screen.
type EventLog struct {
	entries []EventLogEntry
	head    int
	count   int
}

func NewEventLog() *EventLog {
	return &EventLog{
		entries: make([]EventLogEntry, logMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (el *EventLog) Add(tick int, label string, kind corruption.EventType, msg string) {
	el.entries[el.head] = EventLogEntry{
		Tick:    tick,
		Label:   label,
		Kind:    kind,
		Message: msg,
	}
	el.head = (el.head + 1) % logMaxEntries
	if el.count < logMaxEntries {
		el.count++
	}
}

// AddEvent formats a corruption event. Spawns are skipped; they would drown out everything else.
func (el *EventLog) AddEvent(tick int, e corruption.Event) {
	if e.Type == corruption.EventZoneSpawned {
		return
	}
	el.Add(tick, zoneLabel(e.Zone), e.Type, describeEvent(e))
}

// Recent returns entries in chronological order (oldest first).
func (el *EventLog) Recent() []EventLogEntry {
	result := make([]EventLogEntry, el.count)
	for i := 0; i < el.count; i++ {
		idx := (el.head - el.count + i + logMaxEntries) % logMaxEntries
		result[i] = el.entries[idx]
	}
	return result
}

func (el *EventLog) Clear() {
	el.head = 0
	el.count = 0
}

func zoneLabel(z *corruption.Zone) string {
	if z == nil {
		return "--"
	}
	if z.Generation > 0 {
		return fmt.Sprintf("%s/%d", z.Type, z.Generation)
	}
	return z.Type.String()
}

func describeEvent(e corruption.Event) string {
	switch e.Type {
	case corruption.EventZoneSpawned:
		return fmt.Sprintf("spawned at (%.0f,%.0f)", e.X, e.Y)
	case corruption.EventZoneExpired:
		return "faded out"
	case corruption.EventZoneCulled:
		return "left the field"
	case corruption.EventZoneDestroyed:
		return fmt.Sprintf("spent at (%.0f,%.0f)", e.X, e.Y)
	case corruption.EventSplitterReproduced:
		return fmt.Sprintf("split into %d", e.Data)
	case corruption.EventHarvesterDestroyed:
		return fmt.Sprintf("destroyed harvester at (%.0f,%.0f)", e.X, e.Y)
	case corruption.EventDifficultyChanged:
		return fmt.Sprintf("zone level %d", e.Data)
	default:
		return e.Type.String()
	}
}

func eventColor(t corruption.EventType) color.RGBA {
	switch t {
	case corruption.EventHarvesterDestroyed:
		return color.RGBA{R: 230, G: 60, B: 60, A: 255}
	case corruption.EventSplitterReproduced:
		return color.RGBA{R: 90, G: 200, B: 120, A: 255}
	case corruption.EventDifficultyChanged:
		return color.RGBA{R: 240, G: 200, B: 60, A: 255}
	default:
		return color.RGBA{R: 120, G: 120, B: 140, A: 255}
	}
}

// Draw renders the log panel at panelX, newest entry at the bottom.
func (el *EventLog) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 10, G: 10, B: 14, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 60, G: 50, B: 80, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 24, G: 20, B: 34, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENT LOG", panelX+8, 0)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 70, G: 60, B: 90, A: 200}, false)

	entries := el.Recent()
	maxVisible := (panelH - 24) / logLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}
	const highlight = 3

	y := 20
	for i, e := range entries {
		if i >= len(entries)-highlight {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 34, G: 30, B: 46, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, eventColor(e.Kind), false)
		line := fmt.Sprintf("%5d [%s] %s", e.Tick, e.Label, e.Message)
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y-2)
		y += logLineHeight
	}
}
