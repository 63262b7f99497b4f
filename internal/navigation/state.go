// Package navigation is the picking and camera controller: it turns pointer input into
// transitions between the overview, rack and shelf framings and keeps rack visibility,
// labels and highlights in step with the current mode.
package navigation

import (
	"fmt"

	"depot3d/internal/camera"
	"depot3d/internal/facility"
	"depot3d/internal/geom"
)

// Mode is the navigation mode.
type Mode int

const (
	// Overview shows every rack from the elevated aisle position.
	Overview Mode = iota
	// RackDetail shows only the selected rack, framed on one shelf.
	RackDetail
	// ShelfDetail is RackDetail after moving to another shelf of the same rack.
	ShelfDetail
)

func (m Mode) String() string {
	switch m {
	case Overview:
		return "overview"
	case RackDetail:
		return "rack"
	case ShelfDetail:
		return "shelf"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Transition durations in seconds. Moving within a rack is faster than jumping racks.
const (
	OverviewDuration float32 = 1.0
	RackDuration     float32 = 0.8
	ShelfDuration    float32 = 0.4
)

// OverviewPose is the elevated camera in the aisle looking along -X.
var OverviewPose = camera.Pose{Position: geom.V3(6, 3, 0), Target: geom.V3(0, 1, 0)}

// cameraDistance is how far in front of a rack the shelf framing puts the camera.
const cameraDistance = 4

// State is the externally visible navigation state. SelectedRack is empty and
// SelectedShelf is 0 when unset; SelectedShelf is only set in ShelfDetail.
type State struct {
	Position      geom.Vec3
	LookTarget    geom.Vec3
	Mode          Mode
	SelectedRack  string
	SelectedShelf int
}

// Check verifies the state invariants against cfg.
func (s State) Check(cfg facility.Config) error {
	switch s.Mode {
	case Overview:
		if s.SelectedRack != "" || s.SelectedShelf != 0 {
			return fmt.Errorf("overview with selection %s/%d", s.SelectedRack, s.SelectedShelf)
		}
		return nil
	case RackDetail:
		if s.SelectedShelf != 0 {
			return fmt.Errorf("rack detail with shelf %d", s.SelectedShelf)
		}
	}
	r, ok := cfg.Rack(s.SelectedRack)
	if !ok {
		return fmt.Errorf("%s with unknown rack %q", s.Mode, s.SelectedRack)
	}
	if s.Mode == ShelfDetail && (s.SelectedShelf < 1 || s.SelectedShelf > r.Shelves) {
		return fmt.Errorf("shelf %d outside 1..%d", s.SelectedShelf, r.Shelves)
	}
	return nil
}

// ShelfPose frames one shelf from the rack's open side.
func ShelfPose(r facility.RackSpec, centerZ, opening float32, shelf int) camera.Pose {
	y := (float32(shelf) - 0.5) * r.ShelfSpacing()
	return camera.Pose{
		Position: geom.V3(0, y+0.5, centerZ+opening*cameraDistance),
		Target:   geom.V3(0, y, centerZ),
	}
}
