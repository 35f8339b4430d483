package solver

import "github.com/gravitas-games/armory/pkg/models"

// slotEnergy is one slot's resource snapshot: energy already committed by
// slot-specific mods, the effective capacity under the active upgrade tier,
// and the type new mods must be compatible with. The snapshot is seeded once
// before the search and never mutated; each branch layers its own category
// costs on top arithmetically, so sibling branches cannot corrupt each
// other.
type slotEnergy struct {
	used     int
	capacity int
	typ      models.EnergyType
	present  bool
}

// fits reports whether the slot can absorb extra energy on top of what is
// already committed. Slots without an energy meter absorb nothing.
func (e slotEnergy) fits(extra int) bool {
	return e.present && e.used+extra <= e.capacity
}

// seedSlotEnergies builds the per-slot snapshots from the items and the
// already-committed slot-specific mods. A slot's type collapses to wildcard
// when the item has no fixed type or the policy permits type swapping at the
// active tier.
func seedSlotEnergies(items []*models.Item, committed models.Assignment, policy Policy) [models.SlotCount]slotEnergy {
	var states [models.SlotCount]slotEnergy
	for i, item := range items {
		if item.Energy == nil {
			continue
		}
		used := 0
		for _, m := range committed[item.ID] {
			used += m.CostAmount()
		}
		typ := item.Energy.Type
		if typ == "" || policy.EnergySwapAllowed(item) {
			typ = models.EnergyAny
		}
		states[i] = slotEnergy{
			used:     used,
			capacity: policy.Capacity(item),
			typ:      typ,
			present:  true,
		}
	}
	return states
}
