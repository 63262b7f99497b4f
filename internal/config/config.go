package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"depot3d/internal/facility"

	"gopkg.in/yaml.v3"
)

// Path is the default config file, relative to the process working directory.
const Path = "config/depot3d.yaml"

// Environment overrides applied by ApplyEnv.
const (
	EnvDB       = "DEPOT3D_DB"
	EnvFacility = "DEPOT3D_FACILITY"
	EnvSeed     = "DEPOT3D_SEED"
)

// Window is the viewer window.
type Window struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int32  `yaml:"target_fps"`
	Background string `yaml:"background"`
}

// Debug holds the overlay switches. Persisted across runs.
type Debug struct {
	ShowFPS      bool `yaml:"show_fps"`
	ShowMemAlloc bool `yaml:"show_memalloc"`
	ShowStatus   bool `yaml:"show_status"`
}

// Inventory selects where boxes come from.
type Inventory struct {
	DBPath string `yaml:"db_path"`
	// SeedDemo fills an empty database with generated boxes.
	SeedDemo bool  `yaml:"seed_demo"`
	DemoSeed int64 `yaml:"demo_seed"`
}

// Config is the application configuration. FacilityPath, when set, replaces the inline
// Facility section.
type Config struct {
	Window       Window          `yaml:"window"`
	Debug        Debug           `yaml:"debug"`
	Inventory    Inventory       `yaml:"inventory"`
	FacilityPath string          `yaml:"facility_path,omitempty"`
	Facility     facility.Config `yaml:"facility"`
}

// Default returns the demo setup: a 1280x720 window, the four-rack demo facility and a
// seeded SQLite inventory under data/.
func Default() Config {
	return Config{
		Window: Window{
			Title:      "depot3d",
			Width:      1280,
			Height:     720,
			TargetFPS:  60,
			Background: "#F0F2F5",
		},
		Inventory: Inventory{
			DBPath:   "data/inventory.db",
			SeedDemo: true,
			DemoSeed: 756,
		},
		Facility: facility.Demo(),
	}
}

// Load reads path. A missing file yields Default() without error; fields absent from the
// file keep their default values.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path, creating the directory if needed.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides the database path, facility file and demo seed from the environment.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvDB); v != "" {
		c.Inventory.DBPath = v
	}
	if v := os.Getenv(EnvFacility); v != "" {
		c.FacilityPath = v
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Inventory.DemoSeed = seed
	}
	return nil
}

// LoadFacility returns the facility from FacilityPath if set, otherwise the inline section.
func (c Config) LoadFacility() (facility.Config, error) {
	if c.FacilityPath != "" {
		return facility.Load(c.FacilityPath)
	}
	if err := c.Facility.Validate(); err != nil {
		return facility.Config{}, err
	}
	return c.Facility, nil
}

// BackgroundRGB parses Window.Background ("#RRGGBB"), falling back to light grey.
func (c Config) BackgroundRGB() uint32 {
	const fallback = 0xF0F2F5
	s := c.Window.Background
	if len(s) == 7 && s[0] == '#' {
		if v, err := strconv.ParseUint(s[1:], 16, 32); err == nil {
			return uint32(v)
		}
	}
	return fallback
}
