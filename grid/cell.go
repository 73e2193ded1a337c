package grid

import "tacticalcore/ids"

// Cell is one tile of the battlefield: its terrain and (at most) one occupant.
type Cell struct {
	Pos      Position
	Terrain  Terrain
	Occupant ids.UnitID // "" when empty
}

// Empty reports whether the cell has no occupant.
func (c Cell) Empty() bool {
	return c.Occupant == ""
}
