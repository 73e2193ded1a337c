// Package grid implements the tactical battlefield: cell state, terrain,
// occupancy, and A*/Dijkstra pathfinding over a fixed-size rectangular grid.
package grid

import "math"

// Position is an integer grid coordinate.
type Position struct {
	X, Y int
}

// Equal reports whether two positions refer to the same cell.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// ManhattanDistance returns the taxicab distance between two positions.
func (p Position) ManhattanDistance(other Position) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// ChebyshevDistance returns the diagonal (king-move) distance between two positions.
func (p Position) ChebyshevDistance(other Position) int {
	return int(math.Max(float64(abs(p.X-other.X)), float64(abs(p.Y-other.Y))))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
