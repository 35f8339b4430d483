package solver

import (
	"testing"

	"github.com/gravitas-games/armory/pkg/models"
)

func TestPermuteEmptyPool(t *testing.T) {
	arrs := Permute(nil, CanonicalKey)
	if len(arrs) != 1 {
		t.Fatalf("expected exactly one arrangement for empty pool, got %d", len(arrs))
	}
	for i, m := range arrs[0] {
		if m != nil {
			t.Fatalf("expected nil at position %d", i)
		}
	}
}

func TestPermuteNoModAppearsTwice(t *testing.T) {
	mods := []*models.Mod{
		costedMod(1, "mods.general", models.EnergyArc, 1),
		costedMod(2, "mods.general", models.EnergySolar, 2),
		costedMod(3, "mods.general", models.EnergyVoid, 3),
	}
	for _, arr := range Permute(mods, CanonicalKey) {
		seen := make(map[int64]bool)
		for _, m := range arr {
			if m == nil {
				continue
			}
			if seen[m.Hash] {
				t.Fatalf("mod %d appears twice in arrangement %v", m.Hash, arr)
			}
			seen[m.Hash] = true
		}
	}
}

func TestPermuteCountSmallPool(t *testing.T) {
	// Two distinct mods across five positions:
	// 1 empty + 5*2 singles + C(5,2)*2! ordered pairs = 31 arrangements.
	mods := []*models.Mod{
		costedMod(1, "mods.general", models.EnergyArc, 1),
		costedMod(2, "mods.general", models.EnergySolar, 2),
	}
	arrs := Permute(mods, CanonicalKey)
	if len(arrs) != 31 {
		t.Fatalf("expected 31 distinct arrangements, got %d", len(arrs))
	}
}

func TestPermuteDedupCollapsesIdenticalMods(t *testing.T) {
	single := []*models.Mod{
		costedMod(1, "mods.combat.wells", models.EnergySolar, 5),
	}
	twins := []*models.Mod{
		costedMod(1, "mods.combat.wells", models.EnergySolar, 5),
		costedMod(2, "mods.combat.wells", models.EnergySolar, 5),
	}
	got := len(Permute(twins, CanonicalKey))
	want := len(Permute(single, CanonicalKey))
	if got != want {
		t.Fatalf("identical twin mods should collapse: got %d arrangements, want %d", got, want)
	}
	for _, arr := range Permute(twins, CanonicalKey) {
		for i := 0; i < len(arr); i++ {
			for j := i + 1; j < len(arr); j++ {
				if arr[i] != nil && arr[j] != nil && modKey(arr[i]) == modKey(arr[j]) {
					t.Fatalf("twin copies placed together in %v", arr)
				}
			}
		}
	}
}

func TestCanonicalKeyDistinguishesPositions(t *testing.T) {
	m := costedMod(1, "mods.general", models.EnergyArc, 2)
	var a, b Arrangement
	a[0] = m
	b[1] = m
	if CanonicalKey(a) == CanonicalKey(b) {
		t.Fatalf("arrangements with the mod at different positions must not collide")
	}
}
