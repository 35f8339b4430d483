// Package solver assigns upgrade mods to the five equipment slots of a
// loadout without overspending any slot's energy budget. Mods are classified
// into general / combat / raid / slot-specific categories, per-category
// placements are enumerated as deduplicated permutations, and a pruned
// nested search finds the joint placement that uses the most energy.
package solver

import (
	"fmt"

	"github.com/gravitas-games/armory/pkg/models"
)

// Policy supplies the externally defined pieces of a solve: how an item's
// effective capacity and energy-swap allowance derive from the active
// upgrade tier, and the socket metadata used for combat/raid tag checks.
type Policy interface {
	// Capacity returns the effective energy capacity for the item under the
	// active upgrade tier.
	Capacity(item *models.Item) int

	// EnergySwapAllowed reports whether the item's energy type may be
	// treated as wildcard under the active upgrade tier.
	EnergySwapAllowed(item *models.Item) bool

	// ClassifyPlugTag maps a mod's raw plug category to the normalized tag
	// used for socket-compatibility checks. ok is false when the category
	// has no tag.
	ClassifyPlugTag(plugCategory string) (tag string, ok bool)

	// SocketTags returns the set of tags the item's specialty sockets
	// accept.
	SocketTags(item *models.Item) map[string]bool
}

// Tables holds the static category-membership data the partitioner
// classifies mods with. They are configuration, not code: see
// config.SolverConfig.
type Tables struct {
	// GeneralTag is the plug category of general mods.
	GeneralTag string

	// CombatTags is the set of plug categories treated as combat mods.
	CombatTags map[string]bool

	// RaidTags is the set of plug categories treated as raid mods.
	RaidTags map[string]bool

	// BucketCategories maps an item bucket to the plug category of mods
	// bound to that slot alone.
	BucketCategories map[models.Bucket]string
}

// Solve finds the best assignment of mods to the given five items.
//
// Slot-specific mods are committed directly to their matching item. General,
// combat and raid mods are placed by a pruned search over per-category
// permutations; among all joint placements satisfying every energy and
// type-compatibility constraint, the one using the most total energy is
// committed (ties resolved by discovery order). Mods matching no category
// and no slot are dropped. Absence of any non-trivial placement is not an
// error: the returned assignment then carries only slot-specific mods.
//
// The solve is a pure synchronous computation over caller-owned inputs and
// holds no state across calls.
func Solve(items []*models.Item, mods []*models.Mod, tables Tables, policy Policy) (models.Assignment, error) {
	if len(items) != models.SlotCount {
		return nil, fmt.Errorf("solver: expected %d items, got %d", models.SlotCount, len(items))
	}
	for i, item := range items {
		if item == nil {
			return nil, fmt.Errorf("solver: item at slot %d is nil", i)
		}
		if item.Energy != nil && item.Energy.Capacity < 0 {
			return nil, fmt.Errorf("solver: item %s has negative energy capacity %d", item.ID, item.Energy.Capacity)
		}
	}
	for _, mod := range mods {
		if mod == nil {
			return nil, fmt.Errorf("solver: nil mod in pool")
		}
		if mod.Cost != nil && mod.Cost.Amount < 0 {
			return nil, fmt.Errorf("solver: mod %d has negative cost %d", mod.Hash, mod.Cost.Amount)
		}
	}

	assignment := make(models.Assignment, models.SlotCount)
	buckets := tables.partition(mods, items, assignment)

	s := newSearcher(items, assignment, policy)

	combat := Permute(viableMods(buckets.combat, items, policy), CanonicalKey)
	general := Permute(viableMods(buckets.general, items, policy), CanonicalKey)
	raid := Permute(viableMods(buckets.raid, items, policy), CanonicalKey)

	var best candidate
	bestCost := -1
	s.searchAll(combat, general, raid, func(c candidate) bool {
		if cost := c.totalCost(); cost > bestCost {
			best = c
			bestCost = cost
		}
		return true
	})

	if bestCost >= 0 {
		best.commit(items, assignment)
	}
	return assignment, nil
}

// viableMods drops mods that no slot could ever host. They only inflate the
// permutation space; the search would reject every branch containing them.
// When no mod in the pool fixes an element the scan cannot exclude anything
// the search would not, so it is skipped.
func viableMods(mods []*models.Mod, items []*models.Item, policy Policy) []*models.Mod {
	if !HasElementalRequirement(mods) {
		return mods
	}
	viable := mods[:0]
	for _, m := range mods {
		for _, item := range items {
			if CompatibleEnergy(item, m, policy) {
				viable = append(viable, m)
				break
			}
		}
	}
	return viable
}
