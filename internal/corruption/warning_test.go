package corruption

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarnings_CriticalFirstThenByDistance(t *testing.T) {
	drone := &testDrone{x: 100, y: 400}
	s := newTestSystem(quietSettings(), Deps{Drone: drone})
	placeZone(t, s, BlobHunter, 180, 400, 20)
	fast := placeZone(t, s, BlobHunter, 140, 400, 20)
	fast.Fast = true
	placeZone(t, s, BlobHunter, 220, 400, 20)

	s.Update(0)
	ws := s.Warnings()
	require.Len(t, ws, 3)

	assert.Equal(t, UrgencyCritical, ws[0].Urgency)
	assert.InDelta(t, 40, ws[0].Distance, 1e-9)
	assert.True(t, ws[0].Fast)
	assert.Same(t, fast, ws[0].Zone)
	assert.InDelta(t, 80, ws[1].Distance, 1e-9)
	assert.InDelta(t, 120, ws[2].Distance, 1e-9)
}

func TestWarnings_UrgencyAndIntensity(t *testing.T) {
	drone := &testDrone{x: 100, y: 400}
	s := newTestSystem(quietSettings(), Deps{Drone: drone})
	placeZone(t, s, BlobHunter, 160, 400, 20) // 60: under half range
	placeZone(t, s, BlobHunter, 220, 400, 20) // 120: outer band

	s.Update(0)
	ws := s.Warnings()
	require.Len(t, ws, 2)
	assert.Equal(t, UrgencyHigh, ws[0].Urgency)
	assert.InDelta(t, 1-60.0/150, ws[0].Intensity, 1e-9)
	assert.Equal(t, UrgencyMedium, ws[1].Urgency)
	assert.InDelta(t, 1-120.0/150, ws[1].Intensity, 1e-9)
}

func TestWarnings_IgnoresZonesBehindOrOutOfRange(t *testing.T) {
	drone := &testDrone{x: 500, y: 400}
	s := newTestSystem(quietSettings(), Deps{Drone: drone})
	placeZone(t, s, BlobHunter, 450, 400, 20) // behind
	placeZone(t, s, BlobHunter, 500, 300, 20) // level with the drone, not ahead
	placeZone(t, s, BlobHunter, 700, 400, 20) // beyond 150
	inactive := placeZone(t, s, BlobHunter, 520, 400, 20)
	inactive.Active = false

	s.Update(0)
	assert.Empty(t, s.Warnings())
}

func TestWarnings_DisabledLeavesListEmpty(t *testing.T) {
	settings := quietSettings()
	settings.WarningsEnabled = false
	drone := &testDrone{x: 100, y: 400}
	s := newTestSystem(settings, Deps{Drone: drone})
	placeZone(t, s, BlobHunter, 150, 400, 20)

	s.Update(0)
	assert.Empty(t, s.Warnings())
}

func TestWarnings_RecomputedEveryTick(t *testing.T) {
	drone := &testDrone{x: 100, y: 400}
	s := newTestSystem(quietSettings(), Deps{Drone: drone})
	placeZone(t, s, BlobHunter, 180, 400, 20)

	s.Update(0)
	require.Len(t, s.Warnings(), 1)

	drone.x = 400 // zone is now behind the drone
	s.Update(0)
	assert.Empty(t, s.Warnings())
}
