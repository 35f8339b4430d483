package solver

import "github.com/gravitas-games/armory/pkg/models"

// CompatibleEnergy reports whether a mod's energy cost could ever fit the
// item: the item must carry an energy meter, and the cost type must be
// wildcard, match the item's type, or be swappable under the active policy.
// Capacity is not consulted here; cumulative budgets are the search's job.
func CompatibleEnergy(item *models.Item, mod *models.Mod, policy Policy) bool {
	if item == nil || item.Energy == nil {
		return false
	}
	if mod == nil || mod.Cost == nil || mod.Cost.Type == models.EnergyAny {
		return true
	}
	if t := item.Energy.Type; t == "" || t == models.EnergyAny || t == mod.Cost.Type {
		return true
	}
	return policy.EnergySwapAllowed(item)
}

// HasElementalRequirement reports whether any mod in the set carries a cost
// with a fixed (non-wildcard) energy type. Callers use it to skip elemental
// optimization entirely when no mod constrains the element.
func HasElementalRequirement(mods []*models.Mod) bool {
	for _, m := range mods {
		if m != nil && m.Cost != nil && m.Cost.Type != models.EnergyAny {
			return true
		}
	}
	return false
}

// compatibleTypes is the symmetric wildcard-aware type predicate used for
// slot/mod and mod/mod checks during the search.
func compatibleTypes(a, b models.EnergyType) bool {
	return a == b || a == models.EnergyAny || b == models.EnergyAny
}
