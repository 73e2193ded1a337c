package grid

import (
	"sync"

	"tacticalcore/ids"
)

type cacheKey struct {
	unit   ids.UnitID
	start  Position
	budget float64
}

// pathCache memoizes ReachablePositions results keyed on (unit, position,
// remaining budget), invalidated wholesale on any grid mutation. The battle
// core is single-threaded; the mutex only guards against incidental
// concurrent reads from external observers (e.g. AI, UI).
type pathCache struct {
	mu    sync.Mutex
	cache map[cacheKey]map[Position]float64
}

func newPathCache() *pathCache {
	return &pathCache{cache: make(map[cacheKey]map[Position]float64)}
}

func (c *pathCache) get(unit ids.UnitID, start Position, budget float64) (map[Position]float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.cache[cacheKey{unit, start, budget}]
	return v, ok
}

func (c *pathCache) put(unit ids.UnitID, start Position, budget float64, result map[Position]float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[cacheKey{unit, start, budget}] = result
}

func (c *pathCache) invalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[cacheKey]map[Position]float64)
}
