package effects

import (
	"tacticalcore/grid"
	"tacticalcore/ids"
)

// TerrainChange mutates a grid cell's terrain kind. grid.SetTerrain owns and
// invalidates its own pathfinding cache, so no extra bookkeeping is needed
// here.
type TerrainChange struct {
	Terrain grid.Terrain
	Source  ids.ActionID
}

func (t TerrainChange) Kind() Kind                { return KindTerrainChange }
func (t TerrainChange) SourceAction() ids.ActionID { return t.Source }

func (t TerrainChange) CanApply(_ Target) bool {
	return true
}

func (t TerrainChange) Apply(target Target, ctx Context) ApplyResult {
	if ctx.Grid == nil {
		return ApplyResult{Kind: KindTerrainChange, Skipped: true, Reason: "no grid in context"}
	}
	cell, ok := ctx.Grid.At(target.Tile)
	if !ok {
		return ApplyResult{Kind: KindTerrainChange, Skipped: true, Reason: "tile out of bounds"}
	}
	old := cell.Terrain
	if err := ctx.Grid.SetTerrain(target.Tile, t.Terrain); err != nil {
		return ApplyResult{Kind: KindTerrainChange, Skipped: true, Reason: err.Error()}
	}
	return ApplyResult{
		Kind:     KindTerrainChange,
		Applied:  true,
		OldValue: float64(old),
		NewValue: float64(t.Terrain),
	}
}

// Special is an escape hatch for effect kinds the registered vocabulary
// doesn't name; it carries a free-form tag and magnitude and is always a
// no-op apply unless a caller type-asserts and handles Tag itself.
type Special struct {
	Tag       string
	Magnitude float64
	Source    ids.ActionID
}

func (s Special) Kind() Kind                { return KindSpecial }
func (s Special) SourceAction() ids.ActionID { return s.Source }
func (s Special) CanApply(_ Target) bool     { return true }
func (s Special) Apply(_ Target, _ Context) ApplyResult {
	return ApplyResult{Kind: KindSpecial, Applied: true}
}
