package actions

import (
	"tacticalcore/effects"
	"tacticalcore/ids"
)

// TargetEffectOutcome is one (effect, target) application result.
type TargetEffectOutcome struct {
	Target     ids.UnitID
	EffectKind effects.Kind
	Result     effects.ApplyResult
}

// SecondaryEvent is a notable side-effect of execution the manager must emit
// on the event bus — a death, a status addition, etc.
type SecondaryEvent struct {
	Kind   string
	Unit   ids.UnitID
	Detail string
}

// Result is the structured outcome of Execute or Preview.
type Result struct {
	ActionID      ids.ActionID
	Caster        ids.UnitID
	Outcomes      []TargetEffectOutcome
	ResourcesUsed map[string]int
	Secondary     []SecondaryEvent
	Hypothetical  bool
	TotalDamage   int
}
