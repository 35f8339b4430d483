package manifest

import (
	"fmt"

	"github.com/gravitas-games/armory/internal/config"
	"github.com/gravitas-games/armory/pkg/models"
)

// TierPolicy binds the manifest definitions and the configured upgrade-tier
// table to one active tier, implementing solver.Policy.
type TierPolicy struct {
	defs           *Definitions
	tier           int
	tierCapacities []int
	swapMinTier    int
}

// PolicyForTier returns the solve policy at the given upgrade tier.
func (d *Definitions) PolicyForTier(tier int, cfg config.SolverConfig) (*TierPolicy, error) {
	if tier < 0 || tier >= len(cfg.TierCapacities) {
		return nil, fmt.Errorf("upgrade tier %d out of range [0,%d]", tier, len(cfg.TierCapacities)-1)
	}
	return &TierPolicy{
		defs:           d,
		tier:           tier,
		tierCapacities: cfg.TierCapacities,
		swapMinTier:    cfg.SwapMinTier,
	}, nil
}

// Tier returns the upgrade tier the policy is bound to.
func (p *TierPolicy) Tier() int { return p.tier }

// Capacity returns the item's effective energy capacity: its own meter, or
// the tier's granted capacity when that is higher.
func (p *TierPolicy) Capacity(item *models.Item) int {
	granted := p.tierCapacities[p.tier]
	if item.Energy != nil && item.Energy.Capacity > granted {
		return item.Energy.Capacity
	}
	return granted
}

// EnergySwapAllowed reports whether the active tier lets the item's energy
// type be treated as wildcard.
func (p *TierPolicy) EnergySwapAllowed(item *models.Item) bool {
	return p.tier >= p.swapMinTier
}

// ClassifyPlugTag maps a raw plug category to its normalized socket tag.
func (p *TierPolicy) ClassifyPlugTag(plugCategory string) (string, bool) {
	tag, ok := p.defs.tagRules[plugCategory]
	return tag, ok
}

// SocketTags returns the tag set the item's specialty sockets accept.
func (p *TierPolicy) SocketTags(item *models.Item) map[string]bool {
	return p.defs.socketTags[item.ID]
}
