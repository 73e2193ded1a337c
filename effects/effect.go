// Package effects implements the unified, tagged-union effect model: the
// only sanctioned mutation path into unit or grid state.
package effects

import (
	"tacticalcore/grid"
	"tacticalcore/ids"
	"tacticalcore/units"
)

// Kind identifies which effect variant a descriptor/result carries.
type Kind int

const (
	KindDamage Kind = iota
	KindHeal
	KindResourceChange
	KindStatModifier
	KindStatus
	KindTerrainChange
	KindSpecial
)

// Target is either a unit or a bare tile (TerrainChange has no unit target).
type Target struct {
	Unit *units.Instance
	Tile grid.Position
}

// Context is the ambient state an effect needs to apply itself: the battle
// grid (for TerrainChange and cache invalidation) and a back-reference to
// the action that produced the effect.
type Context struct {
	Grid         *grid.Grid
	SourceAction ids.ActionID
}

// ApplyResult carries old/new values for observers. Apply must always
// return a structured result and never panic.
type ApplyResult struct {
	Kind     Kind
	Applied  bool
	Skipped  bool
	Reason   string
	OldValue float64
	NewValue float64
	Dealt    int
	Died     bool
}

// Effect is the sum-type contract every effect kind implements. Apply
// re-checks CanApply itself and returns a Skipped result when it fails, so
// callers (actions.Execute) call Apply directly; Apply is total and must
// never panic.
type Effect interface {
	Kind() Kind
	CanApply(target Target) bool
	Apply(target Target, ctx Context) ApplyResult
	// SourceAction returns the action identifier this effect was authored
	// under, for back-reference.
	SourceAction() ids.ActionID
}
