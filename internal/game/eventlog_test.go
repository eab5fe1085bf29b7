package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Drone-Harvest/internal/corruption"
)

func TestEventLog_RingBufferKeepsNewest(t *testing.T) {
	el := NewEventLog()
	for i := 0; i < logMaxEntries+5; i++ {
		el.Add(i, "hunter", corruption.EventZoneExpired, "faded out")
	}
	got := el.Recent()
	require.Len(t, got, logMaxEntries)
	assert.Equal(t, 5, got[0].Tick)
	assert.Equal(t, logMaxEntries+4, got[len(got)-1].Tick)

	el.Clear()
	assert.Empty(t, el.Recent())
}

func TestEventLog_AddEventSkipsSpawns(t *testing.T) {
	el := NewEventLog()
	el.AddEvent(1, corruption.Event{Type: corruption.EventZoneSpawned})
	el.AddEvent(2, corruption.Event{Type: corruption.EventDifficultyChanged, Data: 3})

	got := el.Recent()
	require.Len(t, got, 1)
	assert.Equal(t, "--", got[0].Label)
	assert.Equal(t, "zone level 3", got[0].Message)
}

func TestRunStats_Record(t *testing.T) {
	var rs RunStats
	for _, e := range []corruption.Event{
		{Type: corruption.EventZoneSpawned},
		{Type: corruption.EventZoneSpawned},
		{Type: corruption.EventZoneExpired},
		{Type: corruption.EventZoneCulled},
		{Type: corruption.EventZoneDestroyed},
		{Type: corruption.EventSplitterReproduced, Data: 2},
		{Type: corruption.EventHarvesterDestroyed},
		{Type: corruption.EventDifficultyChanged, Data: 5},
	} {
		rs.Record(e)
	}
	assert.Equal(t, RunStats{
		Spawned: 2, Expired: 1, Culled: 1, Destroyed: 1,
		Splits: 1, Children: 2, HarvestersLost: 1, Level: 5,
	}, rs)
	assert.True(t, rs.Survived())

	rs.FirstHitTick = 90
	summary := rs.Summary("abc", 100)
	assert.Contains(t, summary, "session abc at T=100")
	assert.Contains(t, summary, "lost at T=90")
}
