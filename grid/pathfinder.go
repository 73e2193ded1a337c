package grid

import (
	"container/heap"
	"math"

	"tacticalcore/ids"
)

// diagonalCost is the movement-cost multiplier for diagonal steps when
// 8-neighborhood movement is enabled.
const diagonalCost = 1.414

// PathOptions configures a single pathfinding call.
type PathOptions struct {
	Budget      float64    // movement-point budget; negative/Inf rejected by callers
	Diagonal    bool       // enable 8-neighborhood movement
	ExcludeUnit ids.UnitID // treat this unit's own occupied cell as empty
}

// PathResult is the outcome of a Path query.
type PathResult struct {
	Path    []Position
	Cost    float64
	Success bool
}

type pfNode struct {
	pos    Position
	g, h, f float64
	parent *pfNode
}

// Path runs A* from start to goal using 4-neighborhood movement (or 8 when
// Diagonal is set), constrained to a summed movement cost <= opts.Budget.
// Ties break by lower f, then lower h, then lower (x+y).
func (g *Grid) Path(start, goal Position, opts PathOptions) PathResult {
	if !g.InBounds(start) || !g.InBounds(goal) {
		return PathResult{Success: false}
	}
	if opts.Budget < 0 || math.IsInf(opts.Budget, 1) {
		return PathResult{Success: false}
	}

	open := &nodeHeap{}
	heap.Init(open)
	visited := map[Position]*pfNode{}

	startNode := &pfNode{pos: start, g: 0, h: heuristic(start, goal, opts.Diagonal)}
	startNode.f = startNode.g + startNode.h
	heap.Push(open, startNode)
	visited[start] = startNode

	closed := map[Position]bool{}

	for open.Len() > 0 {
		current := heap.Pop(open).(*pfNode)
		if closed[current.pos] {
			continue
		}
		closed[current.pos] = true

		if current.pos.Equal(goal) {
			return PathResult{Path: reconstruct(current), Cost: current.g, Success: true}
		}

		for _, n := range g.neighbors(current.pos, opts) {
			if closed[n.pos] {
				continue
			}
			cost, ok := g.stepCost(current.pos, n.pos, opts)
			if !ok {
				continue
			}
			tentativeG := current.g + cost
			if tentativeG > opts.Budget {
				continue
			}
			existing, seen := visited[n.pos]
			if seen && tentativeG >= existing.g {
				continue
			}
			node := &pfNode{
				pos:    n.pos,
				g:      tentativeG,
				h:      heuristic(n.pos, goal, opts.Diagonal),
				parent: current,
			}
			node.f = node.g + node.h
			visited[n.pos] = node
			heap.Push(open, node)
		}
	}
	return PathResult{Success: false}
}

func heuristic(a, b Position, diagonal bool) float64 {
	if diagonal {
		return float64(a.ChebyshevDistance(b))
	}
	return float64(a.ManhattanDistance(b))
}

func reconstruct(n *pfNode) []Position {
	var path []Position
	for cur := n; cur != nil; cur = cur.parent {
		path = append(path, cur.pos)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type offset struct{ dx, dy int }

var orthogonal = []offset{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
var diagonals = []offset{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}

func (g *Grid) neighbors(pos Position, opts PathOptions) []Cell {
	offsets := orthogonal
	if opts.Diagonal {
		offsets = append(append([]offset{}, orthogonal...), diagonals...)
	}
	var out []Cell
	for _, o := range offsets {
		np := Position{X: pos.X + o.dx, Y: pos.Y + o.dy}
		if cell, ok := g.At(np); ok {
			out = append(out, cell)
		}
	}
	return out
}

func (g *Grid) stepCost(from, to Position, opts PathOptions) (float64, bool) {
	if g.Blocked(to, opts.ExcludeUnit) {
		return 0, false
	}
	cell, _ := g.At(to)
	base := cell.Terrain.MovementCost()
	if math.IsInf(base, 1) {
		return 0, false
	}
	if from.X != to.X && from.Y != to.Y {
		base *= diagonalCost
	}
	return base, true
}

// ReachablePositions returns every cell reachable from start with cumulative
// movement cost <= budget, via bounded Dijkstra. Results are cached per
// (unit, start, budget) and invalidated on any grid mutation.
func (g *Grid) ReachablePositions(unit ids.UnitID, start Position, budget float64, opts PathOptions) map[Position]float64 {
	if cached, ok := g.pathCache.get(unit, start, budget); ok {
		return cached
	}
	opts.ExcludeUnit = unit
	opts.Budget = budget

	dist := map[Position]float64{start: 0}
	open := &nodeHeap{}
	heap.Init(open)
	heap.Push(open, &pfNode{pos: start, g: 0})
	visited := map[Position]bool{}

	for open.Len() > 0 {
		cur := heap.Pop(open).(*pfNode)
		if visited[cur.pos] {
			continue
		}
		visited[cur.pos] = true

		for _, n := range g.neighbors(cur.pos, opts) {
			cost, ok := g.stepCost(cur.pos, n.pos, opts)
			if !ok {
				continue
			}
			nd := cur.g + cost
			if nd > budget {
				continue
			}
			if existing, seen := dist[n.pos]; !seen || nd < existing {
				dist[n.pos] = nd
				heap.Push(open, &pfNode{pos: n.pos, g: nd})
			}
		}
	}

	g.pathCache.put(unit, start, budget, dist)
	return dist
}

// nodeHeap is a container/heap min-heap over pfNode.f (tie-break: h, then x+y).
type nodeHeap []*pfNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	if h[i].h != h[j].h {
		return h[i].h < h[j].h
	}
	return (h[i].pos.X + h[i].pos.Y) < (h[j].pos.X + h[j].pos.Y)
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) {
	*h = append(*h, x.(*pfNode))
}
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
