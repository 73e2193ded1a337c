package actions

import (
	"tacticalcore/effects"
	"tacticalcore/units"
)

// Preview runs the same validation and effect-resolution path as Execute but
// against throwaway copies of each affected target, and without spending the
// caster's cost, so callers can inspect the
// predicted outcome without mutating any real state. Terrain-changing
// effects are reported but not actually applied to the grid.
func (a *Action) Preview(caster *units.Instance, targets []Target, world World) (Result, bool, ReasonCode) {
	if ok, reason := a.CanExecute(caster, targets, world); !ok {
		return Result{Hypothetical: true}, false, reason
	}

	affected := a.resolveAffectedUnits(caster, targets, world)

	result := Result{ActionID: a.ID, Caster: caster.ID, ResourcesUsed: costToMap(a.Cost), Hypothetical: true}

	for _, eff := range a.Effects {
		if eff.Kind() == effects.KindTerrainChange {
			for _, t := range targets {
				if !t.IsTile {
					continue
				}
				result.Outcomes = append(result.Outcomes, TargetEffectOutcome{
					EffectKind: eff.Kind(),
					Result:     effects.ApplyResult{Kind: eff.Kind(), Applied: true, Reason: "predicted, not applied"},
				})
			}
			continue
		}
		for _, unitID := range affected {
			target, ok := world.UnitByID(unitID)
			if !ok {
				continue
			}
			previewTarget := *target
			applyResult := eff.Apply(effects.Target{Unit: &previewTarget}, effects.Context{Grid: world.Grid(), SourceAction: a.ID})
			result.Outcomes = append(result.Outcomes, TargetEffectOutcome{
				Target: unitID, EffectKind: eff.Kind(), Result: applyResult,
			})
			if applyResult.Kind == effects.KindDamage {
				result.TotalDamage += applyResult.Dealt
			}
		}
	}

	return result, true, ReasonOK
}
