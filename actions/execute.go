package actions

import (
	"tacticalcore/effects"
	"tacticalcore/ids"
	"tacticalcore/units"
)

// Execute validates, consumes costs, applies every effect to every resolved
// target in (effect-index, target-index) row-major order, sets the caster's
// cooldown, and returns the structured result.
func (a *Action) Execute(caster *units.Instance, targets []Target, world World) (Result, bool, ReasonCode) {
	if ok, reason := a.CanExecute(caster, targets, world); !ok {
		return Result{}, false, reason
	}

	caster.Resources.Spend(a.Cost.AsResourceCost())
	affected := a.resolveAffectedUnits(caster, targets, world)

	result := Result{ActionID: a.ID, Caster: caster.ID, ResourcesUsed: costToMap(a.Cost)}

	for _, eff := range a.Effects {
		for _, unitID := range affected {
			target, ok := world.UnitByID(unitID)
			if !ok {
				continue
			}
			tgt := effects.Target{Unit: target}
			applyResult := eff.Apply(tgt, effects.Context{Grid: world.Grid(), SourceAction: a.ID})
			result.Outcomes = append(result.Outcomes, TargetEffectOutcome{
				Target: unitID, EffectKind: eff.Kind(), Result: applyResult,
			})
			if applyResult.Kind == effects.KindDamage {
				result.TotalDamage += applyResult.Dealt
			}
			if applyResult.Died {
				result.Secondary = append(result.Secondary, SecondaryEvent{Kind: "unit_died", Unit: unitID})
			}
			if applyResult.Kind == effects.KindStatus && applyResult.Applied {
				result.Secondary = append(result.Secondary, SecondaryEvent{Kind: "status_added", Unit: unitID})
			}
		}
		// Tile-only effects (TerrainChange) apply once per tile target, not per unit.
		if eff.Kind() == effects.KindTerrainChange {
			for _, t := range targets {
				if !t.IsTile {
					continue
				}
				applyResult := eff.Apply(effects.Target{Tile: t.Tile}, effects.Context{Grid: world.Grid(), SourceAction: a.ID})
				result.Outcomes = append(result.Outcomes, TargetEffectOutcome{EffectKind: eff.Kind(), Result: applyResult})
			}
		}
	}

	caster.Cooldowns[a.ID] = a.Cooldown
	return result, true, ReasonOK
}

// resolveAffectedUnits expands AoE centers into the actual affected unit
// set: every unit within Manhattan radius <= AoE of a center, filtered by
// target-type compatibility with the caster.
func (a *Action) resolveAffectedUnits(caster *units.Instance, targets []Target, world World) []ids.UnitID {
	if a.Targeting.AoERadius <= 0 {
		var out []ids.UnitID
		for _, t := range targets {
			if !t.IsTile {
				out = append(out, t.UnitID)
			}
		}
		return out
	}

	seen := map[ids.UnitID]bool{}
	var out []ids.UnitID
	for _, t := range targets {
		center := t.Tile
		if !t.IsTile {
			if p, ok := world.PositionOf(t.UnitID); ok {
				center = p
			}
		}
		for _, id := range world.AllUnitIDs() {
			if seen[id] {
				continue
			}
			pos, ok := world.PositionOf(id)
			if !ok || pos.ManhattanDistance(center) > a.Targeting.AoERadius {
				continue
			}
			if !a.targetTypeCompatible(caster, id, world) {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func (a *Action) targetTypeCompatible(caster *units.Instance, id ids.UnitID, world World) bool {
	u, ok := world.UnitByID(id)
	if !ok {
		return false
	}
	filter := a.Targeting.TargetType
	if a.Targeting.AoERadius > 0 {
		filter = a.Targeting.AoEFilter
		if filter == TargetSelf {
			// An unset AoEFilter (zero value) means everyone in the radius.
			filter = TargetAny
		}
	}
	switch filter {
	case TargetSelf:
		return id == caster.ID
	case TargetAlly:
		return u.Faction == caster.Faction
	case TargetEnemy:
		return u.Faction != caster.Faction
	default:
		return true
	}
}

func costToMap(c Cost) map[string]int {
	return map[string]int{
		"mp": c.MP, "ap": c.AP, "rage": c.Rage, "kwan": c.Kwan,
		"item_quantity": c.ItemQuantity, "talent_points": c.TalentPoints,
	}
}
