package actions

import (
	"tacticalcore/grid"
	"tacticalcore/ids"
	"tacticalcore/units"
)

// Target is a resolved queued-action target: a unit, or a bare tile/area
// center when the action's TargetType is Tile or Area.
type Target struct {
	UnitID ids.UnitID
	Tile   grid.Position
	IsTile bool
}

// World is the read surface actions need to validate/execute/preview without
// owning the grid or unit table themselves; those belong to the battle
// controller.
type World interface {
	Grid() *grid.Grid
	UnitByID(id ids.UnitID) (*units.Instance, bool)
	PositionOf(id ids.UnitID) (grid.Position, bool)
	AllUnitIDs() []ids.UnitID
}
