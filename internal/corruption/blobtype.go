package corruption

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand"
	"strings"
	"time"
)

// ErrCatalogUnavailable is returned when no archetype can be drawn.
var ErrCatalogUnavailable = errors.New("corruption: blob catalog unavailable")

// BlobType is the behavioural archetype of a corruption zone.
type BlobType int

const (
	BlobHunter BlobType = iota
	BlobJammer
	BlobSprinter
	BlobSplitter
	blobTypeCount
)

func (b BlobType) String() string {
	switch b {
	case BlobHunter:
		return "hunter"
	case BlobJammer:
		return "jammer"
	case BlobSprinter:
		return "sprinter"
	case BlobSplitter:
		return "splitter"
	default:
		return "unknown"
	}
}

// ParseBlobType maps a config name ("hunter", "Jammer", ...) to a BlobType.
func ParseBlobType(s string) (BlobType, error) {
	for b := BlobHunter; b < blobTypeCount; b++ {
		if strings.EqualFold(s, b.String()) {
			return b, nil
		}
	}
	return BlobHunter, fmt.Errorf("unknown blob type %q", s)
}

// JammerParams configures harvester suppression around a jammer.
type JammerParams struct {
	JamRadius   float64
	JamDuration time.Duration
}

// SprinterParams configures the sprinter burst cycle.
type SprinterParams struct {
	BurstCooldown    time.Duration // idle time before charging
	BurstDuration    time.Duration
	ChargeDuration   time.Duration
	BurstSpeedFactor float64 // multiplies the pre-burst speed
}

// burstFactor is BurstSpeedFactor, or 1 when it is not positive.
func (p SprinterParams) burstFactor() float64 {
	if p.BurstSpeedFactor <= 0 {
		return 1
	}
	return p.BurstSpeedFactor
}

// SplitterParams configures reproduction on expiry.
type SplitterParams struct {
	SplitCount int
	SplitSize  float64 // fraction of parent size, 0-1
}

// BlobTypeDescriptor is the immutable definition of one archetype.
// Exactly one of Jammer, Sprinter, Splitter is set for the matching Type;
// all three are nil for hunters.
type BlobTypeDescriptor struct {
	Type        BlobType
	Name        string
	Color       color.RGBA
	SpeedFactor float64
	SizeFactor  float64
	SpawnWeight float64

	Jammer   *JammerParams
	Sprinter *SprinterParams
	Splitter *SplitterParams
}

// clone copies d with its own variant payload.
func (d BlobTypeDescriptor) clone() BlobTypeDescriptor {
	if d.Jammer != nil {
		p := *d.Jammer
		d.Jammer = &p
	}
	if d.Sprinter != nil {
		p := *d.Sprinter
		d.Sprinter = &p
	}
	if d.Splitter != nil {
		p := *d.Splitter
		d.Splitter = &p
	}
	return d
}

// HunterFallback is used whenever the catalog cannot produce an archetype.
func HunterFallback() BlobTypeDescriptor {
	return BlobTypeDescriptor{
		Type:        BlobHunter,
		Name:        "Hunter",
		Color:       color.RGBA{R: 200, G: 40, B: 60, A: 255},
		SpeedFactor: 1.0,
		SizeFactor:  1.0,
		SpawnWeight: 1.0,
	}
}

// Catalog is a read-only registry of archetypes with weighted selection.
type Catalog struct {
	descs       []BlobTypeDescriptor
	totalWeight float64
}

// NewCatalog validates and deep-copies the given descriptors.
func NewCatalog(descs ...BlobTypeDescriptor) (*Catalog, error) {
	c := &Catalog{descs: make([]BlobTypeDescriptor, 0, len(descs))}
	for _, d := range descs {
		if d.SpawnWeight < 0 || d.SpeedFactor < 0 || d.SizeFactor < 0 {
			return nil, fmt.Errorf("blob type %s: negative factor or weight", d.Type)
		}
		if err := d.checkPayload(); err != nil {
			return nil, err
		}
		c.descs = append(c.descs, d.clone())
		c.totalWeight += d.SpawnWeight
	}
	if c.totalWeight <= 0 {
		return nil, fmt.Errorf("new catalog: %w: spawn weights sum to zero", ErrCatalogUnavailable)
	}
	return c, nil
}

func (d BlobTypeDescriptor) checkPayload() error {
	switch d.Type {
	case BlobJammer:
		if d.Jammer == nil {
			return fmt.Errorf("blob type %s: missing jammer params", d.Type)
		}
	case BlobSprinter:
		if d.Sprinter == nil {
			return fmt.Errorf("blob type %s: missing sprinter params", d.Type)
		}
	case BlobSplitter:
		if d.Splitter == nil {
			return fmt.Errorf("blob type %s: missing splitter params", d.Type)
		}
		if d.Splitter.SplitCount < 0 || d.Splitter.SplitSize < 0 || d.Splitter.SplitSize > 1 {
			return fmt.Errorf("blob type %s: split params out of range", d.Type)
		}
	}
	return nil
}

// DefaultCatalog returns the stock four archetypes.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		BlobTypeDescriptor{
			Type: BlobHunter, Name: "Hunter",
			Color:       color.RGBA{R: 200, G: 40, B: 60, A: 255},
			SpeedFactor: 1.0, SizeFactor: 1.0, SpawnWeight: 0.40,
		},
		BlobTypeDescriptor{
			Type: BlobJammer, Name: "Jammer",
			Color:       color.RGBA{R: 150, G: 60, B: 220, A: 255},
			SpeedFactor: 0.7, SizeFactor: 1.2, SpawnWeight: 0.20,
			Jammer: &JammerParams{JamRadius: 120, JamDuration: 3 * time.Second},
		},
		BlobTypeDescriptor{
			Type: BlobSprinter, Name: "Sprinter",
			Color:       color.RGBA{R: 255, G: 150, B: 30, A: 255},
			SpeedFactor: 0.8, SizeFactor: 0.8, SpawnWeight: 0.25,
			Sprinter: &SprinterParams{
				BurstCooldown:    3 * time.Second,
				BurstDuration:    800 * time.Millisecond,
				ChargeDuration:   500 * time.Millisecond,
				BurstSpeedFactor: 3.5,
			},
		},
		BlobTypeDescriptor{
			Type: BlobSplitter, Name: "Splitter",
			Color:       color.RGBA{R: 60, G: 200, B: 120, A: 255},
			SpeedFactor: 0.9, SizeFactor: 1.3, SpawnWeight: 0.15,
			Splitter: &SplitterParams{SplitCount: 3, SplitSize: 0.5},
		},
	)
	if err != nil {
		panic(err) // stock table is static
	}
	return c
}

// WithWeights returns a copy with spawn weights replaced for the listed types.
func (c *Catalog) WithWeights(weights map[BlobType]float64) (*Catalog, error) {
	if c == nil {
		return nil, ErrCatalogUnavailable
	}
	descs := make([]BlobTypeDescriptor, len(c.descs))
	copy(descs, c.descs)
	for i := range descs {
		if w, ok := weights[descs[i].Type]; ok {
			descs[i].SpawnWeight = w
		}
	}
	return NewCatalog(descs...)
}

// Descriptors returns a copy of the registered archetypes.
func (c *Catalog) Descriptors() []BlobTypeDescriptor {
	if c == nil {
		return nil
	}
	out := make([]BlobTypeDescriptor, len(c.descs))
	for i, d := range c.descs {
		out[i] = d.clone()
	}
	return out
}

// Lookup returns the descriptor for a type.
func (c *Catalog) Lookup(t BlobType) (BlobTypeDescriptor, bool) {
	if c == nil {
		return BlobTypeDescriptor{}, false
	}
	for _, d := range c.descs {
		if d.Type == t {
			return d.clone(), true
		}
	}
	return BlobTypeDescriptor{}, false
}

// SelectRandom draws an archetype with probability proportional to its weight.
func (c *Catalog) SelectRandom(rng *rand.Rand) (BlobTypeDescriptor, error) {
	if c == nil || len(c.descs) == 0 || c.totalWeight <= 0 || rng == nil {
		return BlobTypeDescriptor{}, ErrCatalogUnavailable
	}
	r := rng.Float64() * c.totalWeight
	for _, d := range c.descs {
		if d.SpawnWeight <= 0 {
			continue
		}
		if r < d.SpawnWeight {
			return d.clone(), nil
		}
		r -= d.SpawnWeight
	}
	// Float rounding can leave r just above the last bucket.
	for i := len(c.descs) - 1; i >= 0; i-- {
		if c.descs[i].SpawnWeight > 0 {
			return c.descs[i].clone(), nil
		}
	}
	return BlobTypeDescriptor{}, ErrCatalogUnavailable
}
