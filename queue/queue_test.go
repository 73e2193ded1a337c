package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tacticalcore/actions"
	"tacticalcore/ids"
)

func TestResolveTimelineOrdersByPriorityThenSpeedThenCastTime(t *testing.T) {
	q := New()
	q.Add("slow", "a1", nil, actions.Normal, 0, 0, nil)
	q.Add("fast", "a2", nil, actions.Normal, 0, 0, nil)
	q.Add("cleanup", "a3", nil, actions.Cleanup, 0, 0, nil)

	initiative := map[ids.UnitID]int{"slow": 5, "fast": 50, "cleanup": 50}
	timeline := q.ResolveTimeline(initiative)

	require.Len(t, timeline, 3)
	assert.Equal(t, ids.UnitID("fast"), timeline[0].UnitID)
	assert.Equal(t, ids.UnitID("slow"), timeline[1].UnitID)
	assert.Equal(t, ids.UnitID("cleanup"), timeline[2].UnitID)
}

func TestResolveTimelineTieBreaksByUnitIDThenSequence(t *testing.T) {
	q := New()
	first := q.Add("e", "a1", nil, actions.Normal, 0, 0, nil)
	second := q.Add("e", "a2", nil, actions.Normal, 0, 0, nil)
	q.Add("f", "a3", nil, actions.Normal, 0, 0, nil)

	initiative := map[ids.UnitID]int{"e": 20, "f": 20}
	timeline := q.ResolveTimeline(initiative)

	require.Len(t, timeline, 3)
	assert.Equal(t, ids.UnitID("e"), timeline[0].UnitID)
	assert.Equal(t, first.Sequence, timeline[0].Sequence)
	assert.Equal(t, ids.UnitID("e"), timeline[1].UnitID)
	assert.Equal(t, second.Sequence, timeline[1].Sequence)
	assert.Equal(t, ids.UnitID("f"), timeline[2].UnitID)
}

func TestSameUnitSamePrioritySequenceOrder(t *testing.T) {
	q := New()
	first := q.Add("u", "a1", nil, actions.Normal, 0, 0, nil)
	second := q.Add("u", "a2", nil, actions.Normal, 0, 0, nil)

	initiative := map[ids.UnitID]int{"u": 10}
	timeline := q.ResolveTimeline(initiative)

	require.Len(t, timeline, 2)
	assert.Equal(t, first.ActionID, timeline[0].ActionID)
	assert.Equal(t, second.ActionID, timeline[1].ActionID)
}

func TestRemoveLeavesOtherEntriesIntact(t *testing.T) {
	q := New()
	q.Add("u", "a1", nil, actions.Normal, 0, 0, nil)
	q.Add("u", "a2", nil, actions.Normal, 0, 0, nil)

	require.NoError(t, q.Remove("u", 0))
	list := q.List("u")
	require.Len(t, list, 1)
	assert.Equal(t, ids.ActionID("a2"), list[0].ActionID)
}

func TestReorderPermutesQueue(t *testing.T) {
	q := New()
	q.Add("u", "a1", nil, actions.Normal, 0, 0, nil)
	q.Add("u", "a2", nil, actions.Normal, 0, 0, nil)

	require.NoError(t, q.Reorder("u", []int{1, 0}))
	list := q.List("u")
	assert.Equal(t, ids.ActionID("a2"), list[0].ActionID)
	assert.Equal(t, ids.ActionID("a1"), list[1].ActionID)
}

func TestClearDropsAllEntries(t *testing.T) {
	q := New()
	q.Add("u", "a1", nil, actions.Normal, 0, 0, nil)
	q.Clear("u")
	assert.Empty(t, q.List("u"))
}
