package data

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"tacticalcore/actions"
	"tacticalcore/effects"
	"tacticalcore/enginelog"
	"tacticalcore/ids"
	"tacticalcore/units"
)

// ActionFile is the on-disk shape of one action registration entry: id,
// name, kind, tier, level, description, requirements, effects (free-form
// key → value, interpreted by BuildEffect), and cost with the recognized
// keys — unrecognized cost keys are ignored with a warning, not rejected.
type ActionFile struct {
	ID           string             `json:"id" yaml:"id"`
	Name         string             `json:"name" yaml:"name"`
	Kind         string             `json:"kind" yaml:"kind"`
	Tier         int                `json:"tier" yaml:"tier"`
	Level        int                `json:"level" yaml:"level"`
	Description  string             `json:"description" yaml:"description"`
	Range        int                `json:"range" yaml:"range"`
	AoERadius    int                `json:"aoe_radius" yaml:"aoe_radius"`
	TargetType   string             `json:"target_type" yaml:"target_type"`
	Cooldown     int                `json:"cooldown" yaml:"cooldown"`
	CastTime     int                `json:"cast_time" yaml:"cast_time"`
	Requirements ActionRequirements `json:"requirements" yaml:"requirements"`
	Effects      map[string]float64 `json:"effects" yaml:"effects"`
	// Duration and Percent are companion fields consulted only by the
	// buff.attr.* and status.* effect keys; ignored by every other key.
	Duration int            `json:"duration" yaml:"duration"`
	Percent  bool           `json:"percent" yaml:"percent"`
	Cost     map[string]int `json:"cost" yaml:"cost"`
}

// ActionRequirements mirrors actions.Requirements in data-file form.
type ActionRequirements struct {
	MinAttributes   map[string]int `json:"min_attributes" yaml:"min_attributes"`
	RequiredTalents []string       `json:"required_talents" yaml:"required_talents"`
}

// recognizedCostKeys is the controlled vocabulary for ActionFile.Cost; any
// other key is ignored with a warning per the registration-file contract.
var recognizedCostKeys = map[string]func(*actions.Cost, int){
	"mp_cost":       func(c *actions.Cost, v int) { c.MP = v },
	"ap_cost":       func(c *actions.Cost, v int) { c.AP = v },
	"rage_cost":     func(c *actions.Cost, v int) { c.Rage = v },
	"kwan_cost":     func(c *actions.Cost, v int) { c.Kwan = v },
	"item_quantity": func(c *actions.Cost, v int) { c.ItemQuantity = v },
	"talent_points": func(c *actions.Cost, v int) { c.TalentPoints = v },
}

var actionKinds = map[string]actions.Kind{
	"attack": actions.Attack, "magic": actions.Magic, "spirit": actions.Spirit,
	"move": actions.Move, "inventory": actions.Inventory, "passive": actions.Passive,
}

var targetTypes = map[string]actions.TargetType{
	"self": actions.TargetSelf, "ally": actions.TargetAlly, "enemy": actions.TargetEnemy,
	"any": actions.TargetAny, "tile": actions.TargetTile, "area": actions.TargetArea,
}

// LoadActionsJSON reads a JSON array of ActionFile entries from path and
// registers each one. A malformed file is a fatal startup error; a single
// bad entry within an otherwise valid file is logged and skipped. log may be
// nil, in which case diagnostics go to enginelog.Default().
func LoadActionsJSON(path string, registry *actions.Registry, log *logrus.Logger) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("data: reading action file %s: %w", path, err)
	}
	var entries []ActionFile
	if err := json.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("data: parsing action file %s: %w", path, err)
	}
	return registerAll(entries, registry, log)
}

// LoadActionsYAML is LoadActionsJSON's YAML-encoded sibling, for the
// alternate registration-file format.
func LoadActionsYAML(path string, registry *actions.Registry, log *logrus.Logger) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("data: reading action file %s: %w", path, err)
	}
	var entries []ActionFile
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("data: parsing action file %s: %w", path, err)
	}
	return registerAll(entries, registry, log)
}

func registerAll(entries []ActionFile, registry *actions.Registry, log *logrus.Logger) error {
	if log == nil {
		log = enginelog.Default()
	}
	for _, e := range entries {
		act, err := buildAction(e, log)
		if err != nil {
			log.WithFields(enginelog.Fields{"action": e.ID, "error": err}).Warn("skipping malformed action")
			continue
		}
		if err := registry.Register(act); err != nil {
			log.WithFields(enginelog.Fields{"action": e.ID, "error": err}).Warn("skipping action")
		}
	}
	return nil
}

func buildAction(e ActionFile, log *logrus.Logger) (*actions.Action, error) {
	kind, ok := actionKinds[e.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown kind %q", e.Kind)
	}
	targetType, ok := targetTypes[e.TargetType]
	if !ok {
		return nil, fmt.Errorf("unknown target_type %q", e.TargetType)
	}

	cost := actions.Cost{}
	for key, value := range e.Cost {
		apply, ok := recognizedCostKeys[key]
		if !ok {
			log.WithFields(enginelog.Fields{"action": e.ID, "cost_key": key}).Warn("ignoring unrecognized cost key")
			continue
		}
		apply(&cost, value)
	}

	built, err := buildEffects(e, ids.ActionID(e.ID))
	if err != nil {
		return nil, err
	}

	minAttrs := map[units.Attribute]int{}
	for name, min := range e.Requirements.MinAttributes {
		attr, ok := units.ParseAttribute(name)
		if !ok {
			return nil, fmt.Errorf("unknown attribute %q in requirements", name)
		}
		minAttrs[attr] = min
	}
	talents := make([]ids.TalentID, 0, len(e.Requirements.RequiredTalents))
	for _, t := range e.Requirements.RequiredTalents {
		talents = append(talents, ids.TalentID(t))
	}

	return &actions.Action{
		ID: ids.ActionID(e.ID), Name: e.Name, Kind: kind,
		Targeting: actions.Targeting{Range: e.Range, AoERadius: e.AoERadius, TargetType: targetType, MaxTargets: 1},
		Cost:      cost,
		Effects:   built,
		Requirements: actions.Requirements{MinAttributes: minAttrs, RequiredTalents: talents},
		Cooldown:  e.Cooldown, CastTime: e.CastTime,
	}, nil
}

// buildEffects maps every (key, magnitude) pair in e.Effects to an Effect
// via BuildEffect, using e.Duration/e.Percent as the companion fields keys
// that need them (buff.attr.*, status.*) consult.
func buildEffects(e ActionFile, source ids.ActionID) ([]effects.Effect, error) {
	extra := map[string]float64{"duration": float64(e.Duration)}
	if e.Percent {
		extra["percent"] = 1
	}
	keys := make([]string, 0, len(e.Effects))
	for key := range e.Effects {
		keys = append(keys, key)
	}
	sort.Strings(keys) // deterministic effect-index order across loads of the same file

	out := make([]effects.Effect, 0, len(keys))
	for _, key := range keys {
		eff, err := BuildEffect(key, e.Effects[key], extra, source)
		if err != nil {
			return nil, fmt.Errorf("effect %q: %w", key, err)
		}
		out = append(out, eff)
	}
	return out, nil
}
