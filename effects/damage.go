package effects

import (
	"tacticalcore/ids"
	"tacticalcore/units"
)

// Damage reduces a unit's HP, applying its type's defensive mitigation.
type Damage struct {
	Magnitude  int
	DamageType units.DamageType
	Source     ids.ActionID
}

func (d Damage) Kind() Kind                { return KindDamage }
func (d Damage) SourceAction() ids.ActionID { return d.Source }

func (d Damage) CanApply(target Target) bool {
	return target.Unit != nil && target.Unit.Alive
}

func (d Damage) Apply(target Target, _ Context) ApplyResult {
	if !d.CanApply(target) {
		return ApplyResult{Kind: KindDamage, Skipped: true, Reason: "target not alive"}
	}
	hp := target.Unit.Resources.Pool(units.HP)
	old := hp.Current
	dealt := target.Unit.TakeDamage(d.Magnitude, d.DamageType)
	return ApplyResult{
		Kind:     KindDamage,
		Applied:  true,
		OldValue: float64(old),
		NewValue: float64(hp.Current),
		Dealt:    dealt,
		Died:     !target.Unit.Alive,
	}
}
