package scene

import (
	"depot3d/internal/geom"
)

// LabelKind distinguishes rack labels from the per-rack detail labels.
type LabelKind int

const (
	LabelRack LabelKind = iota
	LabelShelf
	LabelTray
)

// Label scales, in world units of text height.
const (
	RackLabelScale         float32 = 0.35
	ShelfLabelScale        float32 = 0.3
	TrayLabelScale         float32 = 0.15
	TrayLabelSelectedScale float32 = 0.25
)

// Label is a two-line camera-facing text sprite. Lines[0] is the small caption ("Rack"),
// Lines[1] the large number ("02").
type Label struct {
	Kind     LabelKind
	RackID   string
	Shelf    int
	Lines    [2]string
	Position geom.Vec3
	Scale    float32
	Visible  bool
	// Dim is set for placeholder racks.
	Dim bool

	// OverviewAnchor and DetailAnchor are the two positions of a rack label.
	OverviewAnchor geom.Vec3
	DetailAnchor   geom.Vec3
}

// LabelSet holds all labels with lookup tables by rack id.
type LabelSet struct {
	Labels []Label
	rack   map[string]int
	detail map[string][]int
}

func newLabelSet() LabelSet {
	return LabelSet{rack: make(map[string]int), detail: make(map[string][]int)}
}

func (ls *LabelSet) addRack(l Label) {
	ls.rack[l.RackID] = len(ls.Labels)
	ls.Labels = append(ls.Labels, l)
}

func (ls *LabelSet) addDetail(l Label) {
	ls.detail[l.RackID] = append(ls.detail[l.RackID], len(ls.Labels))
	ls.Labels = append(ls.Labels, l)
}

// Rack returns the rack label of a rack.
func (ls *LabelSet) Rack(rackID string) *Label {
	i, ok := ls.rack[rackID]
	if !ok {
		return nil
	}
	return &ls.Labels[i]
}

// Detail returns the shelf and tray labels of a physical rack.
func (ls *LabelSet) Detail(rackID string) []*Label {
	idx := ls.detail[rackID]
	out := make([]*Label, len(idx))
	for i, j := range idx {
		out[i] = &ls.Labels[j]
	}
	return out
}

// Tray returns the tray label of one shelf.
func (ls *LabelSet) Tray(rackID string, shelf int) *Label {
	for _, l := range ls.Detail(rackID) {
		if l.Kind == LabelTray && l.Shelf == shelf {
			return l
		}
	}
	return nil
}

// Visible returns the visible labels.
func (ls *LabelSet) Visible() []Label {
	var out []Label
	for _, l := range ls.Labels {
		if l.Visible {
			out = append(out, l)
		}
	}
	return out
}
