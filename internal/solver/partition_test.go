package solver

import (
	"testing"

	"github.com/gravitas-games/armory/pkg/models"
)

func testTables() Tables {
	return Tables{
		GeneralTag: "mods.general",
		CombatTags: map[string]bool{"mods.combat.wells": true, "mods.combat.warmind": true},
		RaidTags:   map[string]bool{"mods.raid.garden": true},
		BucketCategories: map[models.Bucket]string{
			models.BucketHead:      "mods.slot.head",
			models.BucketArms:      "mods.slot.arms",
			models.BucketChest:     "mods.slot.chest",
			models.BucketLegs:      "mods.slot.legs",
			models.BucketClassItem: "mods.slot.class_item",
		},
	}
}

func testItems() []*models.Item {
	return []*models.Item{
		{ID: "head", Bucket: models.BucketHead, Energy: &models.Energy{Type: models.EnergySolar, Capacity: 10}},
		{ID: "arms", Bucket: models.BucketArms, Energy: &models.Energy{Type: models.EnergyArc, Capacity: 10}},
		{ID: "chest", Bucket: models.BucketChest, Energy: &models.Energy{Type: models.EnergyVoid, Capacity: 10}},
		{ID: "legs", Bucket: models.BucketLegs, Energy: &models.Energy{Type: models.EnergySolar, Capacity: 10}},
		{ID: "class", Bucket: models.BucketClassItem, Energy: &models.Energy{Type: models.EnergyAny, Capacity: 10}},
	}
}

func TestPartitionClassifiesByCategory(t *testing.T) {
	tables := testTables()
	items := testItems()
	mods := []*models.Mod{
		costedMod(1, "mods.general", models.EnergyAny, 1),
		costedMod(2, "mods.combat.wells", models.EnergySolar, 3),
		costedMod(3, "mods.raid.garden", models.EnergySolar, 3),
		costedMod(4, "mods.combat.warmind", models.EnergyAny, 1),
	}

	out := make(models.Assignment)
	buckets := tables.partition(mods, items, out)

	if len(buckets.general) != 1 || buckets.general[0].Hash != 1 {
		t.Fatalf("general bucket wrong: %+v", buckets.general)
	}
	if len(buckets.combat) != 2 {
		t.Fatalf("expected 2 combat mods, got %d", len(buckets.combat))
	}
	if len(buckets.raid) != 1 || buckets.raid[0].Hash != 3 {
		t.Fatalf("raid bucket wrong: %+v", buckets.raid)
	}
	if len(out) != 0 {
		t.Fatalf("no slot-specific mods supplied, assignment should be empty: %v", out)
	}
}

func TestPartitionCommitsSlotSpecificEagerly(t *testing.T) {
	tables := testTables()
	items := testItems()
	mods := []*models.Mod{
		costedMod(1, "mods.slot.head", models.EnergyAny, 3),
		costedMod(2, "mods.slot.class_item", models.EnergyAny, 1),
	}

	out := make(models.Assignment)
	buckets := tables.partition(mods, items, out)

	if len(buckets.general)+len(buckets.combat)+len(buckets.raid) != 0 {
		t.Fatalf("slot-specific mods must not land in category buckets")
	}
	if len(out["head"]) != 1 || out["head"][0].Hash != 1 {
		t.Fatalf("head slot should hold mod 1: %v", out["head"])
	}
	if len(out["class"]) != 1 || out["class"][0].Hash != 2 {
		t.Fatalf("class slot should hold mod 2: %v", out["class"])
	}
}

func TestPartitionDropsUnmatchedSilently(t *testing.T) {
	tables := testTables()
	items := testItems()
	mods := []*models.Mod{
		costedMod(1, "mods.weapon.barrel", models.EnergyAny, 2),
	}

	out := make(models.Assignment)
	buckets := tables.partition(mods, items, out)

	if len(buckets.general)+len(buckets.combat)+len(buckets.raid) != 0 || len(out) != 0 {
		t.Fatalf("unrecognized mod should be dropped, not classified")
	}
}
