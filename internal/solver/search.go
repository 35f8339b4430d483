package solver

import "github.com/gravitas-games/armory/pkg/models"

// candidate is one valid joint placement of combat, general and raid
// arrangements across the five slots.
type candidate struct {
	combat  Arrangement
	general Arrangement
	raid    Arrangement
}

// totalCost is the energy the candidate adds on top of slot-specific mods.
func (c candidate) totalCost() int {
	total := 0
	for i := 0; i < models.SlotCount; i++ {
		total += c.combat[i].CostAmount() + c.general[i].CostAmount() + c.raid[i].CostAmount()
	}
	return total
}

// commit appends the candidate's mods to each slot's assignment list.
func (c candidate) commit(items []*models.Item, out models.Assignment) {
	for i, item := range items {
		for _, m := range []*models.Mod{c.combat[i], c.general[i], c.raid[i]} {
			if m != nil {
				out[item.ID] = append(out[item.ID], m)
			}
		}
	}
}

// searcher carries the immutable per-solve state threaded through the three
// search levels: energy snapshots, each slot's accepted socket tags and the
// normalized tag of every combat/raid mod, classified once up front.
type searcher struct {
	energy  [models.SlotCount]slotEnergy
	sockets [models.SlotCount]map[string]bool
	tags    map[int64]string
	policy  Policy
}

func newSearcher(items []*models.Item, committed models.Assignment, policy Policy) *searcher {
	s := &searcher{
		energy: seedSlotEnergies(items, committed, policy),
		tags:   make(map[int64]string),
		policy: policy,
	}
	for i, item := range items {
		s.sockets[i] = policy.SocketTags(item)
	}
	return s
}

// socketAccepts reports whether slot i's specialty sockets accept the mod's
// normalized tag. Mods whose plug category classifies to no tag are rejected,
// as are slots without a matching socket.
func (s *searcher) socketAccepts(i int, m *models.Mod) bool {
	tag, ok := s.tags[m.Hash]
	if !ok {
		tag, ok = s.policy.ClassifyPlugTag(m.PlugCategory)
		if !ok {
			return false
		}
		s.tags[m.Hash] = tag
	}
	return s.sockets[i][tag]
}

// combatFeasible checks a combat arrangement index by index. A failure at
// any position disqualifies the whole arrangement: it is an atomic candidate
// global placement, not five independent choices.
func (s *searcher) combatFeasible(c Arrangement) bool {
	for i, m := range c {
		if m == nil {
			continue
		}
		e := s.energy[i]
		if !e.fits(m.CostAmount()) {
			return false
		}
		if !compatibleTypes(m.CostType(), e.typ) {
			return false
		}
		if !s.socketAccepts(i, m) {
			return false
		}
	}
	return true
}

// generalFeasible checks a general arrangement layered over an accepted
// combat arrangement. General mods face no socket-tag requirement but must
// be type-compatible with both the slot and the combat mod sharing it.
func (s *searcher) generalFeasible(g, c Arrangement) bool {
	for i, m := range g {
		if m == nil {
			continue
		}
		e := s.energy[i]
		if !e.fits(m.CostAmount() + c[i].CostAmount()) {
			return false
		}
		if !compatibleTypes(m.CostType(), e.typ) {
			return false
		}
		if !compatibleTypes(m.CostType(), c[i].CostType()) {
			return false
		}
	}
	return true
}

// raidFeasible checks a raid arrangement layered over accepted combat and
// general arrangements. Raid mods pay the full cumulative budget, must be
// type-compatible with the slot and both co-resident mods, and must match a
// socket tag.
func (s *searcher) raidFeasible(r, g, c Arrangement) bool {
	for i, m := range r {
		if m == nil {
			continue
		}
		e := s.energy[i]
		if !e.fits(m.CostAmount() + g[i].CostAmount() + c[i].CostAmount()) {
			return false
		}
		if !compatibleTypes(m.CostType(), e.typ) {
			return false
		}
		if !compatibleTypes(m.CostType(), g[i].CostType()) {
			return false
		}
		if !compatibleTypes(m.CostType(), c[i].CostType()) {
			return false
		}
		if !s.socketAccepts(i, m) {
			return false
		}
	}
	return true
}

// searchAll enumerates every valid (combat, general, raid) triple, pruning
// entire permutations at the first failing slot of each level. The visitor
// returns false to stop the search early.
func (s *searcher) searchAll(combat, general, raid []Arrangement, yield func(candidate) bool) {
	for _, c := range combat {
		if !s.combatFeasible(c) {
			continue
		}
		for _, g := range general {
			if !s.generalFeasible(g, c) {
				continue
			}
			for _, r := range raid {
				if !s.raidFeasible(r, g, c) {
					continue
				}
				if !yield(candidate{combat: c, general: g, raid: r}) {
					return
				}
			}
		}
	}
}
