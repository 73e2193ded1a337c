package effects

import (
	"tacticalcore/ids"
	"tacticalcore/units"
)

// StatModifier pushes a temporary (or permanent, Duration<0) attribute
// modifier onto the target's status list. Expiration happens at turn-start
// decrement (units.Instance.TurnStart).
type StatModifier struct {
	Attr      units.Attribute
	Magnitude int
	Duration  int
	Percent   bool
	Source    ids.ActionID
}

func (s StatModifier) Kind() Kind                { return KindStatModifier }
func (s StatModifier) SourceAction() ids.ActionID { return s.Source }

func (s StatModifier) CanApply(target Target) bool {
	return target.Unit != nil
}

func (s StatModifier) Apply(target Target, _ Context) ApplyResult {
	if !s.CanApply(target) {
		return ApplyResult{Kind: KindStatModifier, Skipped: true, Reason: "no target unit"}
	}
	old := target.Unit.Attribute(s.Attr)
	target.Unit.AddModifier(units.StatModifier{
		Attr:           s.Attr,
		Delta:          s.Magnitude,
		Percent:        s.Percent,
		RemainingTurns: s.Duration,
		Source:         string(s.Source),
	})
	return ApplyResult{
		Kind:     KindStatModifier,
		Applied:  true,
		OldValue: float64(old),
		NewValue: float64(target.Unit.Attribute(s.Attr)),
	}
}

// Status adds a named status (e.g. "stunned"). Interpretation of what that
// name does to turn flow is delegated to the battle controller.
type Status struct {
	Name     units.StatusName
	Duration int
	Source   ids.ActionID
}

func (s Status) Kind() Kind                { return KindStatus }
func (s Status) SourceAction() ids.ActionID { return s.Source }

func (s Status) CanApply(target Target) bool {
	return target.Unit != nil && target.Unit.Alive
}

func (s Status) Apply(target Target, _ Context) ApplyResult {
	if !s.CanApply(target) {
		return ApplyResult{Kind: KindStatus, Skipped: true, Reason: "target not alive"}
	}
	target.Unit.AddStatus(units.Status{Name: s.Name, RemainingTurns: s.Duration, Source: string(s.Source)})
	return ApplyResult{Kind: KindStatus, Applied: true}
}
