// Package queue holds per-unit queued actions and resolves them into a
// single ordered execution timeline each resolution pass.
package queue

import (
	"fmt"

	"tacticalcore/actions"
	"tacticalcore/effects"
	"tacticalcore/ids"
)

// PredictionTag is an optional player-supplied guess about an action's
// outcome, compared against the real result once it executes.
type PredictionTag struct {
	PredictedDamage int
	PredictedEffect effects.Kind
}

// QueuedAction is one unit's pending action: a resolved target list plus the
// bookkeeping timeline resolution needs.
type QueuedAction struct {
	UnitID     ids.UnitID
	ActionID   ids.ActionID
	Targets    []actions.Target
	Priority   actions.PriorityClass
	InitiativeBonus int
	CastTime   int
	Sequence   int
	Prediction *PredictionTag
}

// Queue owns every unit's pending action list plus a monotonic sequence
// counter used to break execution-order ties deterministically.
type Queue struct {
	perUnit  map[ids.UnitID][]*QueuedAction
	sequence int
	history  []StepResult
}

const historyCap = 100

func New() *Queue {
	return &Queue{perUnit: map[ids.UnitID][]*QueuedAction{}}
}

// Add appends a new queued action to unit's list and returns it.
func (q *Queue) Add(unit ids.UnitID, actionID ids.ActionID, targets []actions.Target, priority actions.PriorityClass, initiativeBonus, castTime int, prediction *PredictionTag) *QueuedAction {
	q.sequence++
	qa := &QueuedAction{
		UnitID: unit, ActionID: actionID, Targets: targets,
		Priority: priority, InitiativeBonus: initiativeBonus, CastTime: castTime,
		Sequence: q.sequence, Prediction: prediction,
	}
	q.perUnit[unit] = append(q.perUnit[unit], qa)
	return qa
}

// Clear drops every queued action for unit.
func (q *Queue) Clear(unit ids.UnitID) {
	delete(q.perUnit, unit)
}

// Remove drops the queued action at idx in unit's list.
func (q *Queue) Remove(unit ids.UnitID, idx int) error {
	list := q.perUnit[unit]
	if idx < 0 || idx >= len(list) {
		return fmt.Errorf("queue: index %d out of range for unit %s (len %d)", idx, unit, len(list))
	}
	q.perUnit[unit] = append(list[:idx], list[idx+1:]...)
	return nil
}

// Reorder permutes unit's queued list according to newOrder, a permutation
// of [0, len(list)).
func (q *Queue) Reorder(unit ids.UnitID, newOrder []int) error {
	list := q.perUnit[unit]
	if len(newOrder) != len(list) {
		return fmt.Errorf("queue: reorder length %d does not match queue length %d", len(newOrder), len(list))
	}
	seen := make([]bool, len(list))
	next := make([]*QueuedAction, len(list))
	for i, idx := range newOrder {
		if idx < 0 || idx >= len(list) || seen[idx] {
			return fmt.Errorf("queue: invalid permutation index %d", idx)
		}
		seen[idx] = true
		next[i] = list[idx]
	}
	q.perUnit[unit] = next
	return nil
}

// List returns unit's queued actions in insertion/reorder order.
func (q *Queue) List(unit ids.UnitID) []*QueuedAction {
	return q.perUnit[unit]
}

// RemoveEntry drops qa from unit's list by identity, used after a timeline
// event for that unit has executed.
func (q *Queue) RemoveEntry(unit ids.UnitID, qa *QueuedAction) {
	list := q.perUnit[unit]
	for i, entry := range list {
		if entry == qa {
			q.perUnit[unit] = append(list[:i], list[i+1:]...)
			return
		}
	}
}
