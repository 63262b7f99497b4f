// Package picking resolves a world ray against the pickable shelf regions of a scene.
package picking

import (
	"depot3d/internal/geom"
	"depot3d/internal/scene"
)

// Result is the outcome of a pick: either a Hit on one shelf or a Miss.
type Result struct {
	Hit      bool
	RackID   string
	Shelf    int
	Region   int
	Distance float32
}

// Miss is the no-hit result.
var Miss = Result{Region: -1}

// Pick returns the nearest region hit by ray. Regions whose rack is not visible are ignored;
// visible may be nil to consider every region.
func Pick(ray geom.Ray, regions []scene.Region, visible func(rackID string) bool) Result {
	best := Miss
	for i, rg := range regions {
		if visible != nil && !visible(rg.RackID) {
			continue
		}
		d, ok := ray.IntersectAABB(rg.Bounds)
		if !ok {
			continue
		}
		if !best.Hit || d < best.Distance {
			best = Result{Hit: true, RackID: rg.RackID, Shelf: rg.Shelf, Region: i, Distance: d}
		}
	}
	return best
}
