// Package data loads action and unit-template registration files (JSON and
// YAML) into the in-memory catalogs actions.Registry and units.Template
// expect, the same JSON-with-defaults loading shape as config/usersettings.go
// and templates/readdata.go, but with the effect half locked to a fixed
// vocabulary instead of open substring matching.
package data

import (
	"fmt"
	"strings"

	"tacticalcore/effects"
	"tacticalcore/ids"
	"tacticalcore/units"
)

// legacyEffectKeys translates old substring-matched effect keys (the prior
// data format matched any key containing "damage", "heal", etc.) into the
// locked dotted vocabulary, for one-time migration of old data files.
var legacyEffectKeys = map[string]string{
	"damage":           "damage.physical",
	"magic_damage":     "damage.magical",
	"heal_amount":      "heal.hp",
	"mp_restoration":   "restore.mp",
	"ap_restoration":   "restore.ap",
	"rage_restoration": "restore.rage",
}

// BuildEffect maps one (key, value) data-file entry to an Effect, rejecting
// anything outside the locked vocabulary: damage.physical, damage.magical,
// damage.true, heal.hp, restore.<mp|ap|rage|kwan>, buff.attr.<name>,
// status.<name>. extra supplies companion fields a key needs beyond its
// headline magnitude (buff.attr.* needs "duration" and "percent";
// status.* needs "duration").
func BuildEffect(key string, magnitude float64, extra map[string]float64, source ids.ActionID) (effects.Effect, error) {
	if translated, ok := legacyEffectKeys[key]; ok {
		key = translated
	}

	switch {
	case key == "damage.physical":
		return effects.Damage{Magnitude: int(magnitude), DamageType: units.Physical, Source: source}, nil
	case key == "damage.magical":
		return effects.Damage{Magnitude: int(magnitude), DamageType: units.Magical, Source: source}, nil
	case key == "damage.true":
		return effects.Damage{Magnitude: int(magnitude), DamageType: units.True, Source: source}, nil
	case key == "heal.hp":
		return effects.Heal{Magnitude: int(magnitude), Source: source}, nil
	case strings.HasPrefix(key, "restore."):
		kind, ok := parseResourceKind(strings.TrimPrefix(key, "restore."))
		if !ok {
			return nil, fmt.Errorf("data: unknown resource in effect key %q", key)
		}
		return effects.ResourceChange{ResourceKind: kind, Delta: int(magnitude), Source: source}, nil
	case strings.HasPrefix(key, "buff.attr."):
		attr, ok := units.ParseAttribute(strings.TrimPrefix(key, "buff.attr."))
		if !ok {
			return nil, fmt.Errorf("data: unknown attribute in effect key %q", key)
		}
		return effects.StatModifier{
			Attr: attr, Magnitude: int(magnitude),
			Duration: int(extra["duration"]), Percent: extra["percent"] != 0,
			Source: source,
		}, nil
	case strings.HasPrefix(key, "status."):
		name := strings.TrimPrefix(key, "status.")
		return effects.Status{Name: units.StatusName(name), Duration: int(extra["duration"]), Source: source}, nil
	default:
		return nil, fmt.Errorf("data: unrecognized effect key %q, not in the registered vocabulary", key)
	}
}

func parseResourceKind(name string) (units.ResourceKind, bool) {
	switch name {
	case "hp":
		return units.HP, true
	case "mp":
		return units.MP, true
	case "ap":
		return units.AP, true
	case "rage":
		return units.Rage, true
	case "kwan":
		return units.Kwan, true
	default:
		return 0, false
	}
}
