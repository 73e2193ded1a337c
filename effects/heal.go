package effects

import (
	"tacticalcore/ids"
	"tacticalcore/units"
)

// Heal raises a unit's HP, clamped at max. CanApply is false at max HP, so a
// no-op heal is skipped rather than failing the whole action (see DESIGN.md).
type Heal struct {
	Magnitude int
	Source    ids.ActionID
}

func (h Heal) Kind() Kind                { return KindHeal }
func (h Heal) SourceAction() ids.ActionID { return h.Source }

func (h Heal) CanApply(target Target) bool {
	return target.Unit != nil && target.Unit.Alive && target.Unit.BelowMaxHP()
}

func (h Heal) Apply(target Target, _ Context) ApplyResult {
	if !h.CanApply(target) {
		return ApplyResult{Kind: KindHeal, Skipped: true, Reason: "not below max hp"}
	}
	hp := target.Unit.Resources.Pool(units.HP)
	old := hp.Current
	healed := target.Unit.Heal(h.Magnitude)
	return ApplyResult{
		Kind:     KindHeal,
		Applied:  true,
		OldValue: float64(old),
		NewValue: float64(hp.Current),
		Dealt:    healed,
	}
}
