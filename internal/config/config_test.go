package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleConfig = `
server:
  host: "127.0.0.1"
  port: 9000
session:
  max_players: 25
solver:
  general_tag: "mods.general"
  combat_tags: ["mods.combat.wells"]
  raid_tags: ["mods.raid.garden"]
  bucket_categories:
    head: "mods.slot.head"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Fatalf("server section wrong: %+v", cfg.Server)
	}
	if cfg.Session.MaxPlayers != 25 {
		t.Fatalf("expected configured max_players 25, got %d", cfg.Session.MaxPlayers)
	}
	if cfg.Session.SolveTimeoutSec != 10 {
		t.Fatalf("expected default solve timeout 10, got %d", cfg.Session.SolveTimeoutSec)
	}
	if cfg.JWT.PublicKeyRefreshHrs != 24 {
		t.Fatalf("expected default key refresh 24h, got %d", cfg.JWT.PublicKeyRefreshHrs)
	}
	if cfg.Solver.SwapMinTier != 10 {
		t.Fatalf("expected default swap_min_tier 10, got %d", cfg.Solver.SwapMinTier)
	}
	if len(cfg.Solver.TierCapacities) != 11 || cfg.Solver.TierCapacities[10] != 10 {
		t.Fatalf("expected default tier capacities 0..10, got %v", cfg.Solver.TierCapacities)
	}
	if cfg.Solver.BucketCategories["head"] != "mods.slot.head" {
		t.Fatalf("bucket categories wrong: %v", cfg.Solver.BucketCategories)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestTagSets(t *testing.T) {
	sc := SolverConfig{
		CombatTags: []string{"a", "b"},
		RaidTags:   []string{"c"},
	}
	combat, raid := sc.TagSets()
	if !combat["a"] || !combat["b"] || len(combat) != 2 {
		t.Fatalf("combat set wrong: %v", combat)
	}
	if !raid["c"] || len(raid) != 1 {
		t.Fatalf("raid set wrong: %v", raid)
	}
}
