// Package facility describes the racks of a storage facility as supplied by the host.
package facility

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every configuration rejection. It is fatal to scene construction.
var ErrInvalidConfig = errors.New("invalid facility config")

// RackSpec is one rack as configured. Width runs along X (rack length), Height along Y.
type RackSpec struct {
	ID           string  `yaml:"id"`
	Shelves      int     `yaml:"shelves"`
	Trays        int     `yaml:"trays"`
	BoxesPerTray int     `yaml:"boxes_per_tray,omitempty"`
	Physical     bool    `yaml:"physical"`
	Width        float32 `yaml:"width"`
	Height       float32 `yaml:"height"`
}

// Slots returns the number of box slots per tray (at least 1).
func (r RackSpec) Slots() int {
	if r.BoxesPerTray <= 0 {
		return 1
	}
	return r.BoxesPerTray
}

// ShelfSpacing returns the vertical distance between two shelf decks.
func (r RackSpec) ShelfSpacing() float32 {
	return r.Height / float32(r.Shelves)
}

// DisplayShelf returns the presentation number for an internal bottom-up shelf index:
// the topmost shelf is 1.
func (r RackSpec) DisplayShelf(shelf int) int {
	return r.Shelves - shelf + 1
}

// Config is the ordered set of racks. Order matters: it drives the layout bands.
type Config struct {
	Name  string     `yaml:"name,omitempty"`
	Racks []RackSpec `yaml:"racks"`
}

// Rack returns the rack with the given id.
func (c Config) Rack(id string) (RackSpec, bool) {
	for _, r := range c.Racks {
		if r.ID == id {
			return r, true
		}
	}
	return RackSpec{}, false
}

// Validate checks every rack. An empty rack list is valid.
func (c Config) Validate() error {
	seen := make(map[string]bool, len(c.Racks))
	for i, r := range c.Racks {
		if strings.TrimSpace(r.ID) == "" {
			return fmt.Errorf("%w: rack #%d has no id", ErrInvalidConfig, i+1)
		}
		if seen[r.ID] {
			return fmt.Errorf("%w: duplicate rack id %s", ErrInvalidConfig, r.ID)
		}
		seen[r.ID] = true
		if r.Shelves <= 0 {
			return fmt.Errorf("%w: rack %s has %d shelves", ErrInvalidConfig, r.ID, r.Shelves)
		}
		if r.Trays <= 0 {
			return fmt.Errorf("%w: rack %s has %d trays", ErrInvalidConfig, r.ID, r.Trays)
		}
		if r.BoxesPerTray < 0 {
			return fmt.Errorf("%w: rack %s has %d boxes per tray", ErrInvalidConfig, r.ID, r.BoxesPerTray)
		}
		if r.Width <= 0 || r.Height <= 0 {
			return fmt.Errorf("%w: rack %s has size %gx%g", ErrInvalidConfig, r.ID, r.Width, r.Height)
		}
	}
	return nil
}

// Equal reports whether two configs describe the same racks in the same order.
func (c Config) Equal(o Config) bool {
	if len(c.Racks) != len(o.Racks) {
		return false
	}
	for i := range c.Racks {
		if c.Racks[i] != o.Racks[i] {
			return false
		}
	}
	return true
}

// Demo returns the four-rack demo archive: two placeholder racks at the back and two
// physical racks facing the aisle.
func Demo() Config {
	return Config{
		Name: "Muster-Archiv",
		Racks: []RackSpec{
			{ID: "R01", Shelves: 5, Trays: 6, Physical: false, Width: 6.0, Height: 2.5},
			{ID: "R02", Shelves: 3, Trays: 1, BoxesPerTray: 8, Physical: true, Width: 1.0, Height: 0.9},
			{ID: "R03", Shelves: 3, Trays: 1, BoxesPerTray: 8, Physical: true, Width: 1.0, Height: 0.9},
			{ID: "R04", Shelves: 5, Trays: 6, Physical: false, Width: 6.0, Height: 2.5},
		},
	}
}

// Parse decodes a YAML facility description and validates it.
func Parse(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse facility: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads and validates a YAML facility file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}
