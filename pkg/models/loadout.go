package models

// SlotCount is the number of equipment slots participating in one solve.
// Slot order is fixed and positional indexing is used throughout the solver.
const SlotCount = 5

// EnergyType is the elemental affinity of an item's energy meter or a mod's
// cost. EnergyAny is the wildcard: it matches, and is matched by, every type.
type EnergyType string

const (
	EnergyAny    EnergyType = "any"
	EnergyArc    EnergyType = "arc"
	EnergySolar  EnergyType = "solar"
	EnergyVoid   EnergyType = "void"
	EnergyStasis EnergyType = "stasis"
)

// Bucket identifies which of the five equipment slots an item occupies.
type Bucket string

const (
	BucketHead      Bucket = "head"
	BucketArms      Bucket = "arms"
	BucketChest     Bucket = "chest"
	BucketLegs      Bucket = "legs"
	BucketClassItem Bucket = "class_item"
)

// Energy is an item's resource meter: a typed capacity that slotted mods
// draw from.
type Energy struct {
	Type     EnergyType `json:"type"`
	Capacity int        `json:"capacity"`
}

// Item represents one equipment piece. Exactly five items, one per bucket,
// participate in a solve. Energy is nil for items without an energy meter;
// such items reject every costed mod.
type Item struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Bucket Bucket  `json:"bucket"`
	Energy *Energy `json:"energy,omitempty"`
}

// ModCost is the energy a mod draws when slotted. A nil cost, or a cost of
// type EnergyAny, places no elemental constraint on the hosting item.
type ModCost struct {
	Type   EnergyType `json:"type"`
	Amount int        `json:"amount"`
}

// Mod represents an upgrade modifier. PlugCategory is the raw category tag
// the partitioner classifies by; Cost is nil for free mods.
type Mod struct {
	Hash         int64    `json:"hash"`
	Name         string   `json:"name"`
	PlugCategory string   `json:"plug_category"`
	Cost         *ModCost `json:"cost,omitempty"`
}

// CostAmount returns the mod's energy cost, treating a nil mod or a nil cost
// as zero.
func (m *Mod) CostAmount() int {
	if m == nil || m.Cost == nil {
		return 0
	}
	return m.Cost.Amount
}

// CostType returns the mod's cost type, treating a nil mod or a nil cost as
// the wildcard.
func (m *Mod) CostType() EnergyType {
	if m == nil || m.Cost == nil {
		return EnergyAny
	}
	return m.Cost.Type
}

// Assignment maps an item ID to the ordered list of mods placed into it.
type Assignment map[string][]*Mod

// TotalCost sums the energy cost of every assigned mod.
func (a Assignment) TotalCost() int {
	total := 0
	for _, mods := range a {
		for _, m := range mods {
			total += m.CostAmount()
		}
	}
	return total
}
