package solver

import (
	"strconv"
	"strings"

	"github.com/gravitas-games/armory/pkg/models"
)

// Arrangement is one way of placing a category's mods across the five slot
// positions. A nil entry means the position receives no mod from this
// category.
type Arrangement [models.SlotCount]*models.Mod

// KeyFunc derives a deduplication key from a whole arrangement. Two
// arrangements with equal keys are treated as one.
type KeyFunc func(Arrangement) string

// CanonicalKey keys an arrangement by, per position, the mod's energy type,
// cost and plug category. Two mod instances with identical values are
// interchangeable for constraint checking, so arrangements differing only by
// swapping them collapse to a single entry.
func CanonicalKey(arr Arrangement) string {
	var b strings.Builder
	for i, m := range arr {
		if i > 0 {
			b.WriteByte('|')
		}
		if m == nil {
			continue
		}
		b.WriteString(modKey(m))
	}
	return b.String()
}

// modKey is a mod's functional identity: energy type, cost and plug
// category. Copies sharing a key pass and fail exactly the same constraint
// checks.
func modKey(m *models.Mod) string {
	return string(m.CostType()) + "," + strconv.Itoa(m.CostAmount()) + "," + m.PlugCategory
}

// dedupMods keeps one representative per functional identity, in input
// order. A pool with n copies of a mod must yield the same arrangements as
// a pool with one: extra copies could otherwise still appear alongside
// their representative.
func dedupMods(mods []*models.Mod) []*models.Mod {
	seen := make(map[string]bool, len(mods))
	out := make([]*models.Mod, 0, len(mods))
	for _, m := range mods {
		k := modKey(m)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, m)
	}
	return out
}

// Permute produces every distinct way to place between zero and
// min(5, len(mods)) of the given mods into the five fixed positions, unused
// positions holding nil and no mod appearing twice in one arrangement.
// Distinctness is decided by the key function over the whole arrangement.
// An empty pool yields exactly one arrangement: all positions nil.
// Functionally identical mods in the pool are collapsed to one representative
// first, so duplicate copies never enlarge the result.
func Permute(mods []*models.Mod, key KeyFunc) []Arrangement {
	mods = dedupMods(mods)
	var (
		out  []Arrangement
		seen = make(map[string]bool)
		used = make([]bool, len(mods))
		cur  Arrangement
	)

	var fill func(pos int)
	fill = func(pos int) {
		if pos == models.SlotCount {
			k := key(cur)
			if !seen[k] {
				seen[k] = true
				out = append(out, cur)
			}
			return
		}
		cur[pos] = nil
		fill(pos + 1)
		for i := range mods {
			if used[i] {
				continue
			}
			used[i] = true
			cur[pos] = mods[i]
			fill(pos + 1)
			cur[pos] = nil
			used[i] = false
		}
	}
	fill(0)
	return out
}
