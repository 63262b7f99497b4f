// Package scene builds the renderable scene graph of a facility: rack structures, shelf decks,
// boxes, text labels and the pickable shelf regions.
package scene

import (
	"depot3d/internal/geom"
)

// Role tells the renderer what a volume represents.
type Role int

const (
	RoleFloor Role = iota
	RoleSidePanel
	RoleBackPanel
	RoleTopRail
	RoleShelfDeck
	RoleBox
	RoleQRMark
	RoleNumberMark
)

// Volume is one axis-aligned box primitive in world space. Color is 0xRRGGBB.
type Volume struct {
	Role    Role
	Center  geom.Vec3
	Size    geom.Vec3
	Color   uint32
	Opacity float32
	// BoxID is set for RoleBox volumes.
	BoxID string
}

// Bounds returns the volume's AABB.
func (v Volume) Bounds() geom.AABB {
	return geom.BoxAt(v.Center, v.Size)
}

// Node is a drawable group. Racks are direct children of the root; hiding a node hides
// all of its volumes and children.
type Node struct {
	Name     string
	RackID   string
	Visible  bool
	Volumes  []Volume
	Children []*Node
}

// Walk calls fn for n and every visible descendant, depth first. Invisible subtrees are skipped.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil || !n.Visible {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Highlight is the transient state of a pickable region.
type Highlight int

const (
	HighlightNone Highlight = iota
	// HighlightHover marks the region under the pointer.
	HighlightHover
	// HighlightCommitted marks the region of the completed selection.
	HighlightCommitted
)

// Region is the invisible pickable volume covering one shelf interior of a physical rack.
type Region struct {
	RackID    string
	Shelf     int
	Bounds    geom.AABB
	Highlight Highlight
}

// Scene is the output of one build cycle.
type Scene struct {
	// ID identifies the build cycle in diagnostics.
	ID      string
	Root    *Node
	Regions []Region
	Labels  LabelSet

	racks      map[string]int
	regions    map[string][]int
	shelfBoxes map[shelfKey][]string
}

type shelfKey struct {
	rack  string
	shelf int
}

// Rack returns the node of a rack.
func (s *Scene) Rack(rackID string) (*Node, bool) {
	i, ok := s.racks[rackID]
	if !ok {
		return nil, false
	}
	return s.Root.Children[i], true
}

// RackVisible reports whether a rack exists and is visible.
func (s *Scene) RackVisible(rackID string) bool {
	n, ok := s.Rack(rackID)
	return ok && n.Visible
}

// RackIDs returns rack ids in configuration order.
func (s *Scene) RackIDs() []string {
	ids := make([]string, 0, len(s.racks))
	for _, c := range s.Root.Children {
		if c.RackID != "" {
			ids = append(ids, c.RackID)
		}
	}
	return ids
}

// SetRackVisible shows or hides a rack node.
func (s *Scene) SetRackVisible(rackID string, visible bool) {
	if n, ok := s.Rack(rackID); ok {
		n.Visible = visible
	}
}

// RegionIndex returns the index into Regions of a rack's shelf, or -1.
func (s *Scene) RegionIndex(rackID string, shelf int) int {
	for _, i := range s.regions[rackID] {
		if s.Regions[i].Shelf == shelf {
			return i
		}
	}
	return -1
}

// RackRegions returns the region indices of one rack.
func (s *Scene) RackRegions(rackID string) []int {
	return s.regions[rackID]
}

// ShelfBoxes returns the ids of the boxes rendered on a shelf.
func (s *Scene) ShelfBoxes(rackID string, shelf int) []string {
	return s.shelfBoxes[shelfKey{rackID, shelf}]
}

// ClearHighlights resets every region to HighlightNone.
func (s *Scene) ClearHighlights() {
	for i := range s.Regions {
		s.Regions[i].Highlight = HighlightNone
	}
}
