package effects

import (
	"tacticalcore/ids"
	"tacticalcore/units"
)

// ResourceChange applies a signed delta to a named resource, clamped to
// [0, max].
type ResourceChange struct {
	ResourceKind units.ResourceKind
	Delta        int
	Source       ids.ActionID
}

func (r ResourceChange) Kind() Kind                { return KindResourceChange }
func (r ResourceChange) SourceAction() ids.ActionID { return r.Source }

func (r ResourceChange) CanApply(target Target) bool {
	return target.Unit != nil && target.Unit.Alive
}

func (r ResourceChange) Apply(target Target, _ Context) ApplyResult {
	if !r.CanApply(target) {
		return ApplyResult{Kind: KindResourceChange, Skipped: true, Reason: "no target unit"}
	}
	pool := target.Unit.Resources.Pool(r.ResourceKind)
	old := pool.Current
	applied := pool.Adjust(r.Delta)
	return ApplyResult{
		Kind:     KindResourceChange,
		Applied:  true,
		OldValue: float64(old),
		NewValue: float64(pool.Current),
		Dealt:    applied,
	}
}
