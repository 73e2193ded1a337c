package queue

import (
	"sort"

	"tacticalcore/ids"
)

// ExecutionOrder computes order = priority*1000 + max(0, 100-(initiative+bonus)) + cast_time.
// Lower executes earlier.
func ExecutionOrder(qa *QueuedAction, initiative int) int {
	speedTerm := 100 - (initiative + qa.InitiativeBonus)
	if speedTerm < 0 {
		speedTerm = 0
	}
	return int(qa.Priority)*1000 + speedTerm + qa.CastTime
}

// ResolveTimeline flattens every unit's queued actions into one globally
// sorted sequence: ascending execution order, tie-broken by unit id then by
// insertion sequence number, so the result is fully deterministic for a
// fixed set of queues and unit stats.
func (q *Queue) ResolveTimeline(initiative map[ids.UnitID]int) []*QueuedAction {
	var all []*QueuedAction
	for _, list := range q.perUnit {
		all = append(all, list...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		oi := ExecutionOrder(all[i], initiative[all[i].UnitID])
		oj := ExecutionOrder(all[j], initiative[all[j].UnitID])
		if oi != oj {
			return oi < oj
		}
		if all[i].UnitID != all[j].UnitID {
			return all[i].UnitID < all[j].UnitID
		}
		return all[i].Sequence < all[j].Sequence
	})
	return all
}
