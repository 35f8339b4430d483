package solver

import (
	"strings"
	"testing"

	"github.com/gravitas-games/armory/pkg/models"
)

func testPolicy() *stubPolicy {
	return &stubPolicy{
		tagRules: map[string]string{
			"mods.combat.wells":   "well",
			"mods.combat.warmind": "warmind",
			"mods.raid.garden":    "garden",
		},
		socketTags: map[string]map[string]bool{
			"head":  {"well": true, "warmind": true, "garden": true},
			"arms":  {"well": true},
			"chest": {"warmind": true},
			"legs":  {"well": true, "garden": true},
			"class": {"warmind": true},
		},
	}
}

// tripleValid re-checks a (combat, general, raid) triple from first
// principles, without any of the search's pruning: per slot, cumulative
// energy within capacity, pairwise type compatibility among the present mods
// and the slot, and socket tags for the combat and raid mods.
func tripleValid(items []*models.Item, policy Policy, committed models.Assignment, c, g, r Arrangement) bool {
	for i, item := range items {
		present := make([]*models.Mod, 0, 3)
		for _, m := range []*models.Mod{c[i], g[i], r[i]} {
			if m != nil {
				present = append(present, m)
			}
		}
		if len(present) == 0 {
			continue
		}
		if item.Energy == nil {
			return false
		}
		used := 0
		for _, m := range committed[item.ID] {
			used += m.CostAmount()
		}
		for _, m := range present {
			used += m.CostAmount()
		}
		if used > policy.Capacity(item) {
			return false
		}
		slotType := item.Energy.Type
		if slotType == "" || policy.EnergySwapAllowed(item) {
			slotType = models.EnergyAny
		}
		for x, m := range present {
			if !compatibleTypes(m.CostType(), slotType) {
				return false
			}
			for _, other := range present[x+1:] {
				if !compatibleTypes(m.CostType(), other.CostType()) {
					return false
				}
			}
		}
		for _, m := range []*models.Mod{c[i], r[i]} {
			if m == nil {
				continue
			}
			tag, ok := policy.ClassifyPlugTag(m.PlugCategory)
			if !ok || !policy.SocketTags(item)[tag] {
				return false
			}
		}
	}
	return true
}

func tripleKey(c, g, r Arrangement) string {
	return strings.Join([]string{CanonicalKey(c), CanonicalKey(g), CanonicalKey(r)}, "||")
}

func TestSearchPrunesUntaggedRaidMod(t *testing.T) {
	items := testItems()
	policy := testPolicy()
	s := newSearcher(items, make(models.Assignment), policy)

	combatMod := costedMod(1, "mods.combat.wells", models.EnergySolar, 5)
	generalMod := costedMod(2, "mods.general", models.EnergyAny, 4)
	// garden is not in arms/chest/class socket sets and arc clashes with
	// head's solar meter, so this raid mod can never land.
	raidMod := costedMod(3, "mods.raid.garden", models.EnergyArc, 3)

	combat := Permute([]*models.Mod{combatMod}, CanonicalKey)
	general := Permute([]*models.Mod{generalMod}, CanonicalKey)
	raid := Permute([]*models.Mod{raidMod}, CanonicalKey)

	sawCombatAndGeneral := false
	s.searchAll(combat, general, raid, func(cand candidate) bool {
		for i := range items {
			if cand.raid[i] != nil {
				t.Fatalf("unplaceable raid mod landed at slot %d", i)
			}
		}
		if cand.combat[0] == combatMod && cand.general[0] == generalMod {
			sawCombatAndGeneral = true
		}
		return true
	})
	if !sawCombatAndGeneral {
		t.Fatalf("expected a candidate with combat mod and general mod at slot 0 (5+4 <= 10)")
	}
}

func TestSearchSlotWithoutEnergyOnlyAcceptsNone(t *testing.T) {
	items := testItems()
	items[1] = &models.Item{ID: "arms", Bucket: models.BucketArms} // no energy meter
	policy := testPolicy()
	s := newSearcher(items, make(models.Assignment), policy)

	mods := []*models.Mod{
		costedMod(1, "mods.general", models.EnergyAny, 1),
		costedMod(2, "mods.general", models.EnergyAny, 2),
	}
	general := Permute(mods, CanonicalKey)
	empty := Permute(nil, CanonicalKey)

	s.searchAll(empty, general, empty, func(cand candidate) bool {
		if cand.general[1] != nil {
			t.Fatalf("slot without energy meter accepted mod %d", cand.general[1].Hash)
		}
		return true
	})
}

func TestSearchSoundness(t *testing.T) {
	items := testItems()
	policy := testPolicy()
	committed := make(models.Assignment)
	s := newSearcher(items, committed, policy)

	combat := Permute([]*models.Mod{
		costedMod(1, "mods.combat.wells", models.EnergySolar, 3),
		costedMod(2, "mods.combat.warmind", models.EnergyAny, 1),
	}, CanonicalKey)
	general := Permute([]*models.Mod{
		costedMod(3, "mods.general", models.EnergyAny, 4),
		costedMod(4, "mods.general", models.EnergyVoid, 6),
	}, CanonicalKey)
	raid := Permute([]*models.Mod{
		costedMod(5, "mods.raid.garden", models.EnergySolar, 3),
	}, CanonicalKey)

	count := 0
	s.searchAll(combat, general, raid, func(cand candidate) bool {
		count++
		if !tripleValid(items, policy, committed, cand.combat, cand.general, cand.raid) {
			t.Fatalf("search yielded an invalid triple: %s", tripleKey(cand.combat, cand.general, cand.raid))
		}
		return true
	})
	if count == 0 {
		t.Fatalf("expected at least the all-empty triple")
	}
}

func TestSearchCompletenessAgainstBruteForce(t *testing.T) {
	items := testItems()
	policy := testPolicy()
	committed := models.Assignment{
		"head": {costedMod(90, "mods.slot.head", models.EnergyAny, 3)},
	}
	s := newSearcher(items, committed, policy)

	combat := Permute([]*models.Mod{
		costedMod(1, "mods.combat.wells", models.EnergySolar, 3),
		costedMod(2, "mods.combat.warmind", models.EnergyAny, 1),
	}, CanonicalKey)
	general := Permute([]*models.Mod{
		costedMod(3, "mods.general", models.EnergyAny, 4),
	}, CanonicalKey)
	raid := Permute([]*models.Mod{
		costedMod(4, "mods.raid.garden", models.EnergySolar, 3),
	}, CanonicalKey)

	want := make(map[string]bool)
	for _, c := range combat {
		for _, g := range general {
			for _, r := range raid {
				if tripleValid(items, policy, committed, c, g, r) {
					want[tripleKey(c, g, r)] = true
				}
			}
		}
	}

	got := make(map[string]bool)
	s.searchAll(combat, general, raid, func(cand candidate) bool {
		got[tripleKey(cand.combat, cand.general, cand.raid)] = true
		return true
	})

	if len(got) != len(want) {
		t.Fatalf("search found %d valid triples, brute force found %d", len(got), len(want))
	}
	for k := range want {
		if !got[k] {
			t.Fatalf("brute-force-valid triple missing from search: %s", k)
		}
	}
}

func TestSolveCommitsHighestEnergyCandidate(t *testing.T) {
	// Only the head slot has an energy meter: capacity 5, two general mods
	// costing 4 and 2. Only one general mod fits per slot, so the best
	// placement uses the 4-cost mod.
	items := []*models.Item{
		{ID: "head", Bucket: models.BucketHead, Energy: &models.Energy{Type: models.EnergySolar, Capacity: 5}},
		{ID: "arms", Bucket: models.BucketArms},
		{ID: "chest", Bucket: models.BucketChest},
		{ID: "legs", Bucket: models.BucketLegs},
		{ID: "class", Bucket: models.BucketClassItem},
	}
	mods := []*models.Mod{
		costedMod(1, "mods.general", models.EnergyAny, 2),
		costedMod(2, "mods.general", models.EnergyAny, 4),
	}

	assignment, err := Solve(items, mods, testTables(), testPolicy())
	if err != nil {
		t.Fatalf("unexpected solve error: %v", err)
	}
	if len(assignment["head"]) != 1 || assignment["head"][0].Hash != 2 {
		t.Fatalf("expected the 4-cost mod committed to head, got %v", assignment["head"])
	}
	if total := assignment.TotalCost(); total != 4 {
		t.Fatalf("expected total cost 4, got %d", total)
	}
}

func TestSolveKeepsSlotSpecificWhenNothingElseFits(t *testing.T) {
	items := testItems()
	policy := testPolicy()
	mods := []*models.Mod{
		costedMod(1, "mods.slot.class_item", models.EnergyAny, 1),
		// stasis cost on a pool where no slot is stasis or wildcard-swappable
		costedMod(2, "mods.general", models.EnergyStasis, 4),
	}
	items[4].Energy.Type = models.EnergyVoid // class item off stasis for this case

	assignment, err := Solve(items, mods, testTables(), policy)
	if err != nil {
		t.Fatalf("unexpected solve error: %v", err)
	}
	if len(assignment["class"]) != 1 || assignment["class"][0].Hash != 1 {
		t.Fatalf("slot-specific mod missing from result: %v", assignment["class"])
	}
	for id, placed := range assignment {
		for _, m := range placed {
			if m.Hash == 2 {
				t.Fatalf("unplaceable general mod committed to %s", id)
			}
		}
	}
}

func TestSolvePreconditions(t *testing.T) {
	tables := testTables()
	policy := testPolicy()

	if _, err := Solve(testItems()[:4], nil, tables, policy); err == nil {
		t.Fatalf("expected error for fewer than five items")
	}

	items := testItems()
	items[2] = nil
	if _, err := Solve(items, nil, tables, policy); err == nil {
		t.Fatalf("expected error for nil item")
	}

	bad := []*models.Mod{costedMod(1, "mods.general", models.EnergyAny, -2)}
	if _, err := Solve(testItems(), bad, tables, policy); err == nil {
		t.Fatalf("expected error for negative mod cost")
	}
}
