package grid

import (
	"errors"
	"fmt"

	"tacticalcore/ids"
)

// ErrOccupied is returned by Occupy when the target cell already has an occupant.
var ErrOccupied = errors.New("grid: cell already occupied")

// ErrOutOfBounds is returned when a position falls outside the grid.
var ErrOutOfBounds = errors.New("grid: position out of bounds")

// Grid is a fixed W×H rectangular battlefield.
type Grid struct {
	Width, Height int
	cells         []Cell
	pathCache     *pathCache
}

// New builds a W×H grid with every cell defaulted to Normal terrain and empty.
func New(width, height int) *Grid {
	cells := make([]Cell, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := index(width, x, y)
			cells[idx] = Cell{Pos: Position{X: x, Y: y}, Terrain: Normal}
		}
	}
	return &Grid{Width: width, Height: height, cells: cells, pathCache: newPathCache()}
}

func index(width, x, y int) int {
	return y*width + x
}

// InBounds reports whether pos falls within the grid.
func (g *Grid) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < g.Width && pos.Y >= 0 && pos.Y < g.Height
}

// At returns the cell at pos. The second return is false when pos is out of bounds.
func (g *Grid) At(pos Position) (Cell, bool) {
	if !g.InBounds(pos) {
		return Cell{}, false
	}
	return g.cells[index(g.Width, pos.X, pos.Y)], true
}

// SetTerrain mutates a cell's terrain kind and invalidates cached pathfinding
// results.
func (g *Grid) SetTerrain(pos Position, terrain Terrain) error {
	if !g.InBounds(pos) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, pos)
	}
	g.cells[index(g.Width, pos.X, pos.Y)].Terrain = terrain
	g.pathCache.invalidateAll()
	return nil
}

// Occupy places unit at pos. Fails if pos is out of bounds, impassable, or
// already occupied — enforcing the invariant that a cell holds at most one
// unit. It does not check whether unit already occupies another cell.
func (g *Grid) Occupy(pos Position, unit ids.UnitID) error {
	if !g.InBounds(pos) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, pos)
	}
	idx := index(g.Width, pos.X, pos.Y)
	if g.cells[idx].Terrain.Impassable() {
		return fmt.Errorf("grid: cell %v is impassable (%s)", pos, g.cells[idx].Terrain)
	}
	if g.cells[idx].Occupant != "" {
		return fmt.Errorf("%w: %v held by %s", ErrOccupied, pos, g.cells[idx].Occupant)
	}
	g.cells[idx].Occupant = unit
	g.pathCache.invalidateAll()
	return nil
}

// Free clears the occupant of pos, if any.
func (g *Grid) Free(pos Position) {
	if !g.InBounds(pos) {
		return
	}
	g.cells[index(g.Width, pos.X, pos.Y)].Occupant = ""
	g.pathCache.invalidateAll()
}

// Move relocates unit from one cell to another atomically: frees the old
// cell only after the new cell accepts the occupant. The grid is the single
// source of truth for position.
func (g *Grid) Move(unit ids.UnitID, from, to Position) error {
	if err := g.Occupy(to, unit); err != nil {
		return err
	}
	g.Free(from)
	return nil
}

// FindUnit returns the position of unit, if it currently occupies a cell.
func (g *Grid) FindUnit(unit ids.UnitID) (Position, bool) {
	for _, c := range g.cells {
		if c.Occupant == unit {
			return c.Pos, true
		}
	}
	return Position{}, false
}

// Blocked reports whether pos cannot be entered, optionally treating
// excludeUnit's own cell as empty (used when a unit recomputes its own path).
func (g *Grid) Blocked(pos Position, excludeUnit ids.UnitID) bool {
	cell, ok := g.At(pos)
	if !ok {
		return true
	}
	if cell.Terrain.Impassable() {
		return true
	}
	if cell.Occupant != "" && cell.Occupant != excludeUnit {
		return true
	}
	return false
}
