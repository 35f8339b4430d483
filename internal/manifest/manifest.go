// Package manifest loads the game's item and mod definitions from the
// manifest JSON export and binds them to an upgrade tier as the solver's
// policy.
package manifest

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/gravitas-games/armory/pkg/models"
)

// Definitions is the parsed, immutable manifest: item and mod definitions,
// per-item socket tag sets and the plug-category -> tag normalization rules.
type Definitions struct {
	items      map[string]*models.Item
	mods       map[int64]*models.Mod
	socketTags map[string]map[string]bool
	tagRules   map[string]string
}

// Load reads and parses a manifest file.
func Load(path string) (*Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(data)
}

// Parse builds Definitions from manifest JSON.
func Parse(data []byte) (*Definitions, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("manifest is not valid JSON")
	}
	doc := gjson.ParseBytes(data)

	defs := &Definitions{
		items:      make(map[string]*models.Item),
		mods:       make(map[int64]*models.Mod),
		socketTags: make(map[string]map[string]bool),
		tagRules:   make(map[string]string),
	}

	doc.Get("items").ForEach(func(_, v gjson.Result) bool {
		item := &models.Item{
			ID:     v.Get("id").String(),
			Name:   v.Get("name").String(),
			Bucket: models.Bucket(v.Get("bucket").String()),
		}
		if e := v.Get("energy"); e.Exists() {
			item.Energy = &models.Energy{
				Type:     models.EnergyType(e.Get("type").String()),
				Capacity: int(e.Get("capacity").Int()),
			}
		}
		defs.items[item.ID] = item

		tags := make(map[string]bool)
		v.Get("socket_tags").ForEach(func(_, t gjson.Result) bool {
			tags[t.String()] = true
			return true
		})
		defs.socketTags[item.ID] = tags
		return true
	})

	doc.Get("mods").ForEach(func(_, v gjson.Result) bool {
		mod := &models.Mod{
			Hash:         v.Get("hash").Int(),
			Name:         v.Get("name").String(),
			PlugCategory: v.Get("plug_category").String(),
		}
		if c := v.Get("cost"); c.Exists() {
			mod.Cost = &models.ModCost{
				Type:   models.EnergyType(c.Get("type").String()),
				Amount: int(c.Get("amount").Int()),
			}
		}
		defs.mods[mod.Hash] = mod
		return true
	})

	doc.Get("tag_rules").ForEach(func(k, v gjson.Result) bool {
		defs.tagRules[k.String()] = v.String()
		return true
	})

	if len(defs.items) == 0 {
		return nil, fmt.Errorf("manifest contains no items")
	}
	return defs, nil
}

// Item looks up an item definition by ID.
func (d *Definitions) Item(id string) (*models.Item, bool) {
	item, ok := d.items[id]
	return item, ok
}

// Mod looks up a mod definition by hash.
func (d *Definitions) Mod(hash int64) (*models.Mod, bool) {
	mod, ok := d.mods[hash]
	return mod, ok
}

// ItemCount returns the number of item definitions loaded.
func (d *Definitions) ItemCount() int { return len(d.items) }

// ModCount returns the number of mod definitions loaded.
func (d *Definitions) ModCount() int { return len(d.mods) }
