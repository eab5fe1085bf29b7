package corruption

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestIncreaseZoneDifficulty_Level5(t *testing.T) {
	s := newTestSystem(DefaultSettings(), Deps{})
	s.IncreaseZoneDifficulty(5)

	d := s.Difficulty()
	assert.Equal(t, 5, d.Level)
	assert.InDelta(t, 1.8, d.SpeedMultiplier, 1e-9)
	assert.InDelta(t, 1.4, d.SizeMultiplier, 1e-9)
	assert.InDelta(t, 1.6, d.SpawnRateMultiplier, 1e-9)
	assert.Equal(t, 5, d.CurrentMaxZones)
	want := time.Duration(float64(3*time.Second) * math.Pow(0.9, 4))
	assert.Equal(t, want, d.BaseSpawnInterval)
}

func TestIncreaseZoneDifficulty_LevelOneIsBaseline(t *testing.T) {
	s := newTestSystem(DefaultSettings(), Deps{})
	s.IncreaseZoneDifficulty(9)
	s.IncreaseZoneDifficulty(1)

	want := Difficulty{
		Level:               1,
		SpeedMultiplier:     1,
		SizeMultiplier:      1,
		SpawnRateMultiplier: 1,
		CurrentMaxZones:     3,
		BaseSpawnInterval:   3 * time.Second,
	}
	if diff := cmp.Diff(want, s.Difficulty()); diff != "" {
		t.Fatalf("level 1 difficulty mismatch (-want +got):\n%s", diff)
	}
}

func TestIncreaseZoneDifficulty_CapsAndFloors(t *testing.T) {
	s := newTestSystem(DefaultSettings(), Deps{})
	s.IncreaseZoneDifficulty(40)
	assert.Equal(t, 8, s.Difficulty().CurrentMaxZones)
	assert.Equal(t, time.Second, s.Difficulty().BaseSpawnInterval)

	s.IncreaseZoneDifficulty(-3)
	assert.Equal(t, 1, s.Difficulty().Level, "levels below one clamp to one")
}

func TestIncreaseZoneDifficulty_RetroactiveWithoutCompounding(t *testing.T) {
	s := newTestSystem(quietSettings(), Deps{})
	z := placeZone(t, s, BlobHunter, 600, 400, 40)
	base := z.HuntingSpeed

	s.IncreaseZoneDifficulty(3)
	assert.InDelta(t, base*1.4, z.HuntingSpeed, 1e-9)

	// Re-applying the same level must not drift.
	s.IncreaseZoneDifficulty(3)
	s.IncreaseZoneDifficulty(3)
	assert.InDelta(t, base*1.4, z.HuntingSpeed, 1e-9)

	s.IncreaseZoneDifficulty(1)
	assert.InDelta(t, base, z.HuntingSpeed, 1e-9)
}
