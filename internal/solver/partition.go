package solver

import "github.com/gravitas-games/armory/pkg/models"

// modBuckets holds the mod pool split by category. Slot-specific mods are
// not bucketed: they are committed straight into the assignment at partition
// time.
type modBuckets struct {
	general []*models.Mod
	combat  []*models.Mod
	raid    []*models.Mod
}

// partition classifies each mod, in input order, into its category bucket.
// Mods whose plug category matches a slot's bucket mapping are appended
// directly to that slot's assignment list; mods matching nothing are dropped
// without error, since irrelevant mods in the pool are expected.
func (t Tables) partition(mods []*models.Mod, items []*models.Item, out models.Assignment) modBuckets {
	var buckets modBuckets
	for _, mod := range mods {
		switch {
		case mod.PlugCategory == t.GeneralTag:
			buckets.general = append(buckets.general, mod)
		case t.CombatTags[mod.PlugCategory]:
			buckets.combat = append(buckets.combat, mod)
		case t.RaidTags[mod.PlugCategory]:
			buckets.raid = append(buckets.raid, mod)
		default:
			for _, item := range items {
				if t.BucketCategories[item.Bucket] == mod.PlugCategory {
					out[item.ID] = append(out[item.ID], mod)
					break
				}
			}
		}
	}
	return buckets
}
