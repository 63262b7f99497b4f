// Package layout places racks on both sides of a central aisle.
package layout

import (
	"depot3d/internal/facility"
)

const (
	// AisleWidth is the width of the central aisle along Z.
	AisleWidth float32 = 1.5
	// RackDepth is the depth of every rack along Z; it is also the band spacing.
	RackDepth float32 = 0.4
)

// Placement is where one rack sits. CenterZ is the rack center along the depth axis and
// Opening is +1 when the open side faces +Z, -1 when it faces -Z.
type Placement struct {
	RackID  string
	Band    int
	CenterZ float32
	Opening float32
	Width   float32
	Height  float32
	Depth   float32
}

// Near returns the Z of the rack face closest to the aisle.
func (p Placement) Near() float32 {
	if p.CenterZ >= 0 {
		return p.CenterZ - p.Depth/2
	}
	return p.CenterZ + p.Depth/2
}

// Layout is the placement of every rack, in configuration (band) order.
type Layout struct {
	Placements []Placement
	index      map[string]int
}

// Get returns the placement for a rack id.
func (l Layout) Get(rackID string) (Placement, bool) {
	i, ok := l.index[rackID]
	if !ok {
		return Placement{}, false
	}
	return l.Placements[i], true
}

// Len returns the number of placements.
func (l Layout) Len() int {
	return len(l.Placements)
}

// Compute assigns each rack a band. The first ceil(N/2) racks fill the +Z side from the
// outside in, the rest fill the -Z side from the aisle out, so CenterZ strictly decreases
// with band index. Physical racks open toward the aisle, placeholders away from it.
func Compute(cfg facility.Config) (Layout, error) {
	if err := cfg.Validate(); err != nil {
		return Layout{}, err
	}
	n := len(cfg.Racks)
	l := Layout{
		Placements: make([]Placement, 0, n),
		index:      make(map[string]int, n),
	}
	plus := (n + 1) / 2
	for k, r := range cfg.Racks {
		var side float32 = 1
		fromAisle := plus - 1 - k
		if k >= plus {
			side = -1
			fromAisle = k - plus
		}
		center := side * (AisleWidth/2 + float32(fromAisle)*RackDepth + RackDepth/2)
		opening := -side
		if !r.Physical {
			opening = side
		}
		l.index[r.ID] = len(l.Placements)
		l.Placements = append(l.Placements, Placement{
			RackID:  r.ID,
			Band:    k,
			CenterZ: center,
			Opening: opening,
			Width:   r.Width,
			Height:  r.Height,
			Depth:   RackDepth,
		})
	}
	return l, nil
}
