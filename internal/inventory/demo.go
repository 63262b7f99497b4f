package inventory

import (
	"fmt"
	"math/rand"

	"depot3d/internal/facility"
)

// emptyChance is the probability that a generated slot stays empty.
const emptyChance = 0.15

// GenerateDemo fills every slot of cfg with a box, leaving roughly 15% empty.
// Ids are numbered over all slots (including empty ones) so they stay stable for a seed.
func GenerateDemo(cfg facility.Config, seed int64) []Item {
	rng := rand.New(rand.NewSource(seed))
	var items []Item
	num := 1
	for _, rack := range cfg.Racks {
		for s := 1; s <= rack.Shelves; s++ {
			for t := 1; t <= rack.Trays; t++ {
				for b := 1; b <= rack.Slots(); b++ {
					if rng.Float64() < emptyChance {
						num++
						continue
					}
					status := StatusStored
					switch r := rng.Float64(); {
					case r > 0.95:
						status = StatusRequested
					case r > 0.88:
						status = StatusDisposal
					}
					items = append(items, Item{
						ID:         fmt.Sprintf("DS-756-0126-%04d", num),
						RackID:     rack.ID,
						Shelf:      s,
						Tray:       t,
						Slot:       b,
						Department: Departments[num%len(Departments)].Name,
						Status:     status,
						Label:      labels[num%len(labels)],
					})
					num++
				}
			}
		}
	}
	return items
}
