package data

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tacticalcore/ids"
	"tacticalcore/units"
)

// TemplateFile is the on-disk shape of one unit template: base stats,
// starting inventory, talent unlocks, and hotkey bindings.
type TemplateFile struct {
	Name  string `json:"name" yaml:"name"`
	Stats struct {
		BaseHealth       int      `json:"base_health" yaml:"base_health"`
		BaseMP           int      `json:"base_mp" yaml:"base_mp"`
		BaseMovePoints   int      `json:"base_move_points" yaml:"base_move_points"`
		BaseAttackRange  int      `json:"base_attack_range" yaml:"base_attack_range"`
		AttributeBonuses []string `json:"attribute_bonuses" yaml:"attribute_bonuses"`
	} `json:"stats" yaml:"stats"`
	Inventory struct {
		StartingItems []TemplateItem `json:"starting_items" yaml:"starting_items"`
	} `json:"inventory" yaml:"inventory"`
	Talents         map[string]TemplateTalent `json:"talents" yaml:"talents"`
	HotkeyAbilities map[string]HotkeyBinding  `json:"hotkey_abilities" yaml:"hotkey_abilities"`
}

// TemplateItem is a starting-inventory entry.
type TemplateItem struct {
	ID      string         `json:"id" yaml:"id"`
	Name    string         `json:"name" yaml:"name"`
	Bonuses map[string]int `json:"bonuses" yaml:"bonuses"`
}

// TemplateTalent is one talents-map entry: whether it starts unlocked, and
// any prerequisite talents.
type TemplateTalent struct {
	Unlocked     bool     `json:"unlocked" yaml:"unlocked"`
	Requirements []string `json:"requirements" yaml:"requirements"`
}

// HotkeyBinding is a hotkey_abilities entry: either a bare talent id, or a
// richer binding naming an action id plus default target hints.
type HotkeyBinding struct {
	TalentID       string   `json:"talent_id" yaml:"talent_id"`
	ActionID       string   `json:"action_id" yaml:"action_id"`
	DefaultTargets []string `json:"default_targets" yaml:"default_targets"`
}

// LoadUnitTemplateJSON reads and builds a units.Template from a JSON file at
// path. base_health/base_mp/base_move_points/base_attack_range feed
// MaxHP/MaxMP/MovePoints/AttackRange directly (AttackRange becomes the
// effective range for any action the unit uses that doesn't declare its own
// Targeting.Range); attribute_bonuses adds +5 to each named attribute's base
// value; starting_items and talents seed the template's equipment/talent
// lists; hotkey_abilities fills the 8 hotkey slots (a bare talent id binding
// is recorded with the talent id as the slot's ActionID, since
// Template.Hotkeys binds slots to actions).
func LoadUnitTemplateJSON(path string) (units.Template, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return units.Template{}, fmt.Errorf("data: reading template file %s: %w", path, err)
	}
	var tf TemplateFile
	if err := json.Unmarshal(raw, &tf); err != nil {
		return units.Template{}, fmt.Errorf("data: parsing template file %s: %w", path, err)
	}
	return buildTemplate(tf)
}

// LoadUnitTemplateYAML is LoadUnitTemplateJSON's YAML-encoded sibling.
func LoadUnitTemplateYAML(path string) (units.Template, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return units.Template{}, fmt.Errorf("data: reading template file %s: %w", path, err)
	}
	var tf TemplateFile
	if err := yaml.Unmarshal(raw, &tf); err != nil {
		return units.Template{}, fmt.Errorf("data: parsing template file %s: %w", path, err)
	}
	return buildTemplate(tf)
}

func buildTemplate(tf TemplateFile) (units.Template, error) {
	base := units.NewAttributes(10, 10, 10, 10, 10, 10, 10, 10, 10)
	for _, name := range tf.Stats.AttributeBonuses {
		attr, ok := units.ParseAttribute(name)
		if !ok {
			return units.Template{}, fmt.Errorf("data: unknown attribute %q in attribute_bonuses", name)
		}
		base = base.Add(attr, 5)
	}

	tmpl := units.Template{
		Name: tf.Name, Base: base,
		MaxHP: tf.Stats.BaseHealth, MaxMP: tf.Stats.BaseMP, MovePoints: tf.Stats.BaseMovePoints,
		AttackRange: tf.Stats.BaseAttackRange,
	}

	for _, item := range tf.Inventory.StartingItems {
		bonuses := map[units.Attribute]int{}
		for name, v := range item.Bonuses {
			attr, ok := units.ParseAttribute(name)
			if !ok {
				return units.Template{}, fmt.Errorf("data: unknown attribute %q on item %q", name, item.ID)
			}
			bonuses[attr] = v
		}
		tmpl.StartingItems = append(tmpl.StartingItems, units.Item{ID: item.ID, Name: item.Name, Bonuses: bonuses})
	}

	for id, t := range tf.Talents {
		if t.Unlocked {
			tmpl.StartingTalents = append(tmpl.StartingTalents, ids.TalentID(id))
		}
	}

	for slotKey, binding := range tf.HotkeyAbilities {
		idx, ok := parseSlotIndex(slotKey)
		if !ok || idx < 0 || idx >= units.HotkeySlotCount {
			return units.Template{}, fmt.Errorf("data: invalid hotkey slot %q", slotKey)
		}
		actionID := binding.ActionID
		if actionID == "" {
			actionID = binding.TalentID
		}
		var defaults []ids.UnitID
		for _, d := range binding.DefaultTargets {
			defaults = append(defaults, ids.UnitID(d))
		}
		tmpl.Hotkeys[idx] = units.HotkeySlot{ActionID: ids.ActionID(actionID), DefaultTargets: defaults}
	}

	return tmpl, nil
}

func parseSlotIndex(key string) (int, bool) {
	n := 0
	if key == "" {
		return 0, false
	}
	for _, r := range key {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n - 1, true
}
