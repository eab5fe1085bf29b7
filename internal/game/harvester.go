package game

import (
	"time"

	"github.com/Garsondee/Drone-Harvest/internal/corruption"
)

// Harvester is a deployed collector. Pointers are used as identities by the
// corruption system, so a Harvester is never copied once deployed.
type Harvester struct {
	X, Y    float64
	Yielded float64
}

func (h *Harvester) Position() (float64, float64) { return h.X, h.Y }

// HarvesterField owns the deployed harvesters and satisfies
// corruption.HarvesterSystem.
type HarvesterField struct {
	list  []*Harvester
	view  []corruption.Harvester
	max   int
	yield float64 // energy per second
}

func NewHarvesterField(max int, yieldPerSecond float64) *HarvesterField {
	return &HarvesterField{max: max, yield: yieldPerSecond}
}

// Deploy adds a harvester at (x, y) unless the field is full.
func (f *HarvesterField) Deploy(x, y float64) (*Harvester, bool) {
	if len(f.list) >= f.max {
		return nil, false
	}
	h := &Harvester{X: x, Y: y}
	f.list = append(f.list, h)
	f.rebuild()
	return h, true
}

func (f *HarvesterField) Harvesters() []corruption.Harvester { return f.view }

// RemoveHarvester drops the harvester at index. Out-of-range indices are ignored.
func (f *HarvesterField) RemoveHarvester(index int) {
	if index < 0 || index >= len(f.list) {
		return
	}
	f.list = append(f.list[:index], f.list[index+1:]...)
	f.rebuild()
}

// Yield credits every harvester not reported as jammed and returns the total.
func (f *HarvesterField) Yield(dt time.Duration, jammed func(corruption.Harvester) bool) float64 {
	per := f.yield * dt.Seconds()
	total := 0.0
	for _, h := range f.list {
		if jammed != nil && jammed(h) {
			continue
		}
		h.Yielded += per
		total += per
	}
	return total
}

func (f *HarvesterField) All() []*Harvester { return f.list }

func (f *HarvesterField) Len() int { return len(f.list) }

func (f *HarvesterField) Full() bool { return len(f.list) >= f.max }

func (f *HarvesterField) Clear() {
	f.list = f.list[:0]
	f.rebuild()
}

func (f *HarvesterField) rebuild() {
	f.view = f.view[:0]
	for _, h := range f.list {
		f.view = append(f.view, h)
	}
}
