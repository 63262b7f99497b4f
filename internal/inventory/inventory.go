// Package inventory holds the read-only box dataset the scene is built from.
package inventory

import (
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
)

// Item is one archive box and its position in the facility. Shelf, Tray and Slot are 1-based.
type Item struct {
	ID         string `json:"id"`
	RackID     string `json:"rack"`
	Shelf      int    `json:"shelf"`
	Tray       int    `json:"tray"`
	Slot       int    `json:"slot"`
	Department string `json:"department"`
	Status     string `json:"status"`
	Label      string `json:"label,omitempty"`
}

// SlotIndex returns Slot, reading an unset slot as the first one.
func (it Item) SlotIndex() int {
	if it.Slot == 0 {
		return 1
	}
	return it.Slot
}

// PositionString formats the position as "R02 / S02 / T01".
func (it Item) PositionString() string {
	return fmt.Sprintf("R%s / S%02d / T%02d", strings.TrimPrefix(it.RackID, "R"), it.Shelf, it.Tray)
}

// Snapshot is an immutable copy of the inventory taken at one point in time.
type Snapshot struct {
	items []Item
}

// NewSnapshot deep-copies items so later changes by the caller are not visible.
func NewSnapshot(items []Item) Snapshot {
	if len(items) == 0 {
		return Snapshot{}
	}
	var out []Item
	if err := copier.CopyWithOption(&out, &items, copier.Option{DeepCopy: true}); err != nil {
		out = append([]Item(nil), items...)
	}
	return Snapshot{items: out}
}

// Len returns the number of items.
func (s Snapshot) Len() int {
	return len(s.items)
}

// Items returns a copy of all items.
func (s Snapshot) Items() []Item {
	return append([]Item(nil), s.items...)
}

// ByID returns the item with the given id.
func (s Snapshot) ByID(id string) (Item, bool) {
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// ByRackShelf returns the items on one shelf in snapshot order.
func (s Snapshot) ByRackShelf(rackID string, shelf int) []Item {
	var out []Item
	for _, it := range s.items {
		if it.RackID == rackID && it.Shelf == shelf {
			out = append(out, it)
		}
	}
	return out
}

// ByStatus returns the items with the given status.
func (s Snapshot) ByStatus(status string) []Item {
	var out []Item
	for _, it := range s.items {
		if it.Status == status {
			out = append(out, it)
		}
	}
	return out
}
