// Package config loads the YAML game configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Drone-Harvest/internal/corruption"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all Drone Harvest configuration.
type Config struct {
	Field      FieldConfig      `yaml:"field"`
	Corruption CorruptionConfig `yaml:"corruption"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Drone      DroneConfig      `yaml:"drone"`
	Harvester  HarvesterConfig  `yaml:"harvester"`
	Session    SessionConfig    `yaml:"session"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// FieldConfig is the visible play area.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// CorruptionConfig tunes the corruption system.
type CorruptionConfig struct {
	ZoneLifespan      time.Duration `yaml:"zone_lifespan"`
	CullMargin        float64       `yaml:"cull_margin"`
	MinZones          int           `yaml:"min_zones"`
	MaxZonesBase      int           `yaml:"max_zones_base"`
	MaxZonesCap       int           `yaml:"max_zones_cap"`
	BaseSpawnInterval time.Duration `yaml:"base_spawn_interval"`
	MinSpawnInterval  time.Duration `yaml:"min_spawn_interval"`
	BaseZoneSize      float64       `yaml:"base_zone_size"`
	BaseDriftSpeed    float64       `yaml:"base_drift_speed"`
	BaseHuntingSpeed  float64       `yaml:"base_hunting_speed"`
	MaxGeneration     int           `yaml:"max_generation"`
	WarningsEnabled   bool          `yaml:"warnings_enabled"`
	WarningRange      float64       `yaml:"warning_range"`

	// LegacyFastCorruption re-enables the pre-archetype fast variant.
	LegacyFastCorruption bool    `yaml:"legacy_fast_corruption"`
	FastChance           float64 `yaml:"fast_chance"`
}

// CatalogConfig overrides archetype spawn weights by name.
type CatalogConfig struct {
	Weights map[string]float64 `yaml:"weights"`
}

// DroneConfig tunes the player drone.
type DroneConfig struct {
	Speed  float64 `yaml:"speed"` // units per second
	Radius float64 `yaml:"radius"`
	StartX float64 `yaml:"start_x"`
}

// HarvesterConfig tunes deployable harvesters.
type HarvesterConfig struct {
	Cost           float64 `yaml:"cost"`
	YieldPerSecond float64 `yaml:"yield_per_second"`
	Radius         float64 `yaml:"radius"`
	Max            int     `yaml:"max"`
}

// SessionConfig tunes the game session around the corruption core.
type SessionConfig struct {
	LevelInterval  time.Duration `yaml:"level_interval"` // time between zone levels
	OrbInterval    time.Duration `yaml:"orb_interval"`
	OrbValue       float64       `yaml:"orb_value"`
	ScrollSpeed    float64       `yaml:"scroll_speed"`
	StartingEnergy float64       `yaml:"starting_energy"`
	Seed           int64         `yaml:"seed"` // 0 = seed from the clock
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level       string   `yaml:"level"` // debug, info, warn, error
	Development bool     `yaml:"development"`
	OutputPaths []string `yaml:"output_paths"`
}

// Default returns the stock configuration.
func Default() *Config {
	s := corruption.DefaultSettings()
	return &Config{
		Field: FieldConfig{Width: 1200, Height: 800},
		Corruption: CorruptionConfig{
			ZoneLifespan:         s.ZoneLifespan,
			CullMargin:           s.CullMargin,
			MinZones:             s.MinZones,
			MaxZonesBase:         s.MaxZonesBase,
			MaxZonesCap:          s.MaxZonesCap,
			BaseSpawnInterval:    s.BaseSpawnInterval,
			MinSpawnInterval:     s.MinSpawnInterval,
			BaseZoneSize:         s.BaseZoneSize,
			BaseDriftSpeed:       s.BaseDriftSpeed,
			BaseHuntingSpeed:     s.BaseHuntingSpeed,
			MaxGeneration:        s.MaxGeneration,
			WarningsEnabled:      s.WarningsEnabled,
			WarningRange:         s.WarningRange,
			LegacyFastCorruption: s.LegacyFastCorruption,
			FastChance:           s.FastChance,
		},
		Drone: DroneConfig{
			Speed:  220,
			Radius: s.DroneRadius,
			StartX: 200,
		},
		Harvester: HarvesterConfig{
			Cost:           25,
			YieldPerSecond: 4,
			Radius:         s.HarvesterRadius,
			Max:            6,
		},
		Session: SessionConfig{
			LevelInterval:  45 * time.Second,
			OrbInterval:    1500 * time.Millisecond,
			OrbValue:       10,
			ScrollSpeed:    60,
			StartingEnergy: 50,
		},
		Logging: LoggingConfig{
			Level:       "info",
			OutputPaths: []string{"stderr"},
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks the configuration for values the game cannot run with.
func (c *Config) Validate() error {
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		return fmt.Errorf("%w: field must be positive, got %gx%g", ErrInvalid, c.Field.Width, c.Field.Height)
	}
	if c.Drone.Speed <= 0 || c.Drone.Radius <= 0 {
		return fmt.Errorf("%w: drone speed and radius must be positive", ErrInvalid)
	}
	if c.Harvester.Radius <= 0 || c.Harvester.Max < 0 || c.Harvester.Cost < 0 {
		return fmt.Errorf("%w: harvester radius must be positive, cost and max non-negative", ErrInvalid)
	}
	if c.Session.LevelInterval <= 0 || c.Session.OrbInterval <= 0 {
		return fmt.Errorf("%w: session intervals must be positive", ErrInvalid)
	}
	if !logLevels[c.Logging.Level] {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Logging.Level)
	}
	if _, err := c.catalogWeights(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := c.CorruptionSettings().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// CorruptionSettings converts the config into core settings.
func (c *Config) CorruptionSettings() corruption.Settings {
	s := corruption.DefaultSettings()
	cc := c.Corruption
	s.ZoneLifespan = cc.ZoneLifespan
	s.CullMargin = cc.CullMargin
	s.MinZones = cc.MinZones
	s.MaxZonesBase = cc.MaxZonesBase
	s.MaxZonesCap = cc.MaxZonesCap
	s.BaseSpawnInterval = cc.BaseSpawnInterval
	s.MinSpawnInterval = cc.MinSpawnInterval
	s.BaseZoneSize = cc.BaseZoneSize
	s.BaseDriftSpeed = cc.BaseDriftSpeed
	s.BaseHuntingSpeed = cc.BaseHuntingSpeed
	s.MaxGeneration = cc.MaxGeneration
	s.WarningsEnabled = cc.WarningsEnabled
	s.WarningRange = cc.WarningRange
	s.LegacyFastCorruption = cc.LegacyFastCorruption
	s.FastChance = cc.FastChance
	s.DroneRadius = c.Drone.Radius
	s.HarvesterRadius = c.Harvester.Radius
	return s
}

// Bounds returns the field as core bounds.
func (c *Config) Bounds() corruption.Bounds {
	return corruption.Bounds{Width: c.Field.Width, Height: c.Field.Height}
}

// BuildCatalog returns the stock catalog with configured weight overrides.
func (c *Config) BuildCatalog() (*corruption.Catalog, error) {
	weights, err := c.catalogWeights()
	if err != nil {
		return nil, err
	}
	if len(weights) == 0 {
		return corruption.DefaultCatalog(), nil
	}
	return corruption.DefaultCatalog().WithWeights(weights)
}

func (c *Config) catalogWeights() (map[corruption.BlobType]float64, error) {
	out := make(map[corruption.BlobType]float64, len(c.Catalog.Weights))
	for name, w := range c.Catalog.Weights {
		bt, err := corruption.ParseBlobType(name)
		if err != nil {
			return nil, err
		}
		if w < 0 {
			return nil, fmt.Errorf("weight for %s is negative", name)
		}
		out[bt] = w
	}
	return out, nil
}
