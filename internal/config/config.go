package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all server configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	JWT      JWTConfig      `yaml:"jwt"`
	Redis    RedisConfig    `yaml:"redis"`
	Session  SessionConfig  `yaml:"session"`
	Manifest ManifestConfig `yaml:"manifest"`
	Solver   SolverConfig   `yaml:"solver"`
}

// ServerConfig holds server-specific settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// JWTConfig holds JWT authentication settings
type JWTConfig struct {
	Issuer              string `yaml:"issuer"`
	PublicKeyURL        string `yaml:"public_key_url"`
	PublicKeyRefreshHrs int    `yaml:"public_key_refresh_hours"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Address         string `yaml:"address"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	BlacklistPrefix string `yaml:"blacklist_prefix"`
}

// SessionConfig holds solve-session settings
type SessionConfig struct {
	MaxPlayers      int `yaml:"max_players"`
	SolveTimeoutSec int `yaml:"solve_timeout_seconds"` // wall-clock bound per solve job
}

// ManifestConfig holds game manifest settings
type ManifestConfig struct {
	Path string `yaml:"path"`
}

// SolverConfig holds the static category tables and upgrade-tier policy the
// solver classifies and budgets with. They live in configuration so the
// search logic stays decoupled from classification rules.
type SolverConfig struct {
	GeneralTag       string            `yaml:"general_tag"`
	CombatTags       []string          `yaml:"combat_tags"`
	RaidTags         []string          `yaml:"raid_tags"`
	BucketCategories map[string]string `yaml:"bucket_categories"`

	// TierCapacities[t] is the minimum energy capacity granted at upgrade
	// tier t; an item's own capacity applies when higher.
	TierCapacities []int `yaml:"tier_capacities"`

	// SwapMinTier is the lowest upgrade tier at which an item's energy type
	// may be treated as wildcard.
	SwapMinTier int `yaml:"swap_min_tier"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults if not provided
	if cfg.JWT.PublicKeyRefreshHrs == 0 {
		cfg.JWT.PublicKeyRefreshHrs = 24
	}
	if cfg.Session.MaxPlayers == 0 {
		cfg.Session.MaxPlayers = 100
	}
	if cfg.Session.SolveTimeoutSec == 0 {
		cfg.Session.SolveTimeoutSec = 10
	}
	if cfg.Manifest.Path == "" {
		cfg.Manifest.Path = "./configs/manifest.json"
	}
	if cfg.Solver.SwapMinTier == 0 {
		cfg.Solver.SwapMinTier = 10
	}
	if len(cfg.Solver.TierCapacities) == 0 {
		// tiers 0..10, one energy point per tier
		for t := 0; t <= 10; t++ {
			cfg.Solver.TierCapacities = append(cfg.Solver.TierCapacities, t)
		}
	}

	return &cfg, nil
}

// TagSets converts the configured combat/raid tag lists into the solver's
// set form.
func (c SolverConfig) TagSets() (combat, raid map[string]bool) {
	combat = make(map[string]bool, len(c.CombatTags))
	for _, t := range c.CombatTags {
		combat[t] = true
	}
	raid = make(map[string]bool, len(c.RaidTags))
	for _, t := range c.RaidTags {
		raid[t] = true
	}
	return combat, raid
}
