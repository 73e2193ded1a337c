// Package manager is the facade between external callers (UI input, AI) and
// the combat core: it owns the preview cache and routes every mutation
// through the battle controller's registry, queue, and event bus. Queue
// edits such as ClearUnit, ReorderUnit and Remove publish no event, while
// ExecuteImmediately can publish a unit_died event besides its own.
package manager

import (
	"fmt"
	"hash/fnv"
	"sort"

	"tacticalcore/actions"
	"tacticalcore/battle"
	"tacticalcore/events"
	"tacticalcore/ids"
	"tacticalcore/queue"
	"tacticalcore/units"
)

// ActionSummary is the hotkey-facing view of one usable action.
type ActionSummary struct {
	ActionID   ids.ActionID
	Name       string
	Kind       actions.Kind
	APCost     int
	MPCost     int
	Cooldown   int
	Affordable bool
}

// EventSummary is one entry in a timeline preview: which unit's action fires
// at what resolved order, before any of it actually executes.
type EventSummary struct {
	UnitID   ids.UnitID
	ActionID ids.ActionID
	Order    int
	CastTime int
}

type previewKey struct {
	unit       ids.UnitID
	action     ids.ActionID
	targetHash uint64
}

// Manager is the facade. It does not own the grid or unit table — those
// belong to the battle.Context it wraps — but it is the sole mutator of that
// context's registry and queue contents from the outside.
type Manager struct {
	ctx   *battle.Context
	cache map[previewKey]actions.Result
}

// New wraps ctx in a facade and subscribes the preview cache's invalidation
// hooks (action_executed, turn_started) to ctx's event bus.
func New(ctx *battle.Context) *Manager {
	m := &Manager{ctx: ctx, cache: map[previewKey]actions.Result{}}
	ctx.Bus().Subscribe(events.ActionExecuted, func(events.Event) { m.invalidateCache() })
	ctx.Bus().Subscribe(events.TurnStarted, func(events.Event) { m.invalidateCache() })
	return m
}

func (m *Manager) invalidateCache() {
	m.cache = map[previewKey]actions.Result{}
}

// QueueAction validates and enqueues actionID for unit against targets,
// returning the queue sequence number new callers can use to reference the
// entry later (clear/reorder/remove operate by index, not this id, but the
// sequence is useful for UI correlation). Validation failure publishes
// action_failed and returns an error; success publishes action_queued.
func (m *Manager) QueueAction(unit ids.UnitID, actionID ids.ActionID, targets []actions.Target, priority actions.PriorityClass, prediction *queue.PredictionTag) (int, error) {
	act, caster, err := m.lookup(unit, actionID)
	if err != nil {
		return 0, err
	}
	if ok, reason := act.CanExecute(caster, targets, m.ctx); !ok {
		m.ctx.Bus().Publish(events.Event{Topic: events.ActionFailed, Data: reason})
		return 0, fmt.Errorf("manager: queue_action validation failed: %s", reason)
	}
	qa := m.ctx.Queue().Add(unit, actionID, targets, priority, act.InitiativeBonus, act.CastTime, prediction)
	m.ctx.Bus().Publish(events.Event{Topic: events.ActionQueued, Data: qa})
	return qa.Sequence, nil
}

// ExecuteImmediately runs actionID against targets right now, bypassing the
// queue regardless of the action's cast time. Used by callers (UI "instant"
// hotkeys, AI snap decisions) that want synchronous resolution rather than
// timeline placement.
func (m *Manager) ExecuteImmediately(unit ids.UnitID, actionID ids.ActionID, targets []actions.Target) (actions.Result, error) {
	act, caster, err := m.lookup(unit, actionID)
	if err != nil {
		return actions.Result{}, err
	}
	result, ok, reason := act.Execute(caster, targets, m.ctx)
	if !ok {
		m.ctx.Bus().Publish(events.Event{Topic: events.ActionFailed, Data: reason})
		return actions.Result{}, fmt.Errorf("manager: execute_immediately failed: %s", reason)
	}
	m.invalidateCache()
	m.ctx.Bus().Publish(events.Event{Topic: events.ActionExecuted, Data: result})
	m.publishDeaths(result)
	return result, nil
}

// Preview returns the predicted outcome of actionID against targets without
// mutating any real state, serving cached results keyed on
// (unit, action, hash(targets)) until the next action_executed or
// turn_started event invalidates the whole cache.
func (m *Manager) Preview(unit ids.UnitID, actionID ids.ActionID, targets []actions.Target) (actions.Result, error) {
	key := previewKey{unit: unit, action: actionID, targetHash: hashTargets(targets)}
	if cached, ok := m.cache[key]; ok {
		return cached, nil
	}
	act, caster, err := m.lookup(unit, actionID)
	if err != nil {
		return actions.Result{}, err
	}
	result, ok, reason := act.Preview(caster, targets, m.ctx)
	if !ok {
		return actions.Result{}, fmt.Errorf("manager: preview validation failed: %s", reason)
	}
	m.cache[key] = result
	return result, nil
}

// AvailableActions reports the hotkey-bound actions unit can currently
// afford, off cooldown, requirements met — range/targeting are judged later,
// once a target is chosen.
func (m *Manager) AvailableActions(unit ids.UnitID) ([]ActionSummary, error) {
	u, ok := m.ctx.UnitByID(unit)
	if !ok {
		return nil, fmt.Errorf("manager: unknown unit %q", unit)
	}
	available := m.ctx.Registry().AvailableFor(u)
	out := make([]ActionSummary, 0, len(available))
	for _, id := range available {
		act, ok := m.ctx.Registry().Get(id)
		if !ok {
			continue
		}
		out = append(out, ActionSummary{
			ActionID: act.ID, Name: act.Name, Kind: act.Kind,
			APCost: act.Cost.AP, MPCost: act.Cost.MP, Cooldown: u.Cooldowns[act.ID],
			Affordable: true,
		})
	}
	return out, nil
}

// TimelinePreview resolves the current global queue against the supplied
// per-unit initiative snapshot and reports the order every pending event
// would execute in, without running any of them.
func (m *Manager) TimelinePreview(unitInitiative map[ids.UnitID]int) []EventSummary {
	timeline := m.ctx.Queue().ResolveTimeline(unitInitiative)
	out := make([]EventSummary, 0, len(timeline))
	for _, qa := range timeline {
		out = append(out, EventSummary{
			UnitID: qa.UnitID, ActionID: qa.ActionID,
			Order:    queue.ExecutionOrder(qa, unitInitiative[qa.UnitID]),
			CastTime: qa.CastTime,
		})
	}
	return out
}

// ClearUnit drops every queued action for unit. Queueing then clearing
// leaves unit resources unchanged since nothing was ever executed.
func (m *Manager) ClearUnit(unit ids.UnitID) {
	m.ctx.Queue().Clear(unit)
}

// ReorderUnit permutes unit's queued action list.
func (m *Manager) ReorderUnit(unit ids.UnitID, newOrder []int) error {
	return m.ctx.Queue().Reorder(unit, newOrder)
}

// Remove drops the queued action at idx from unit's list.
func (m *Manager) Remove(unit ids.UnitID, idx int) error {
	return m.ctx.Queue().Remove(unit, idx)
}

func (m *Manager) lookup(unit ids.UnitID, actionID ids.ActionID) (*actions.Action, *units.Instance, error) {
	act, ok := m.ctx.Registry().Get(actionID)
	if !ok {
		return nil, nil, fmt.Errorf("manager: unknown action %q", actionID)
	}
	caster, ok := m.ctx.UnitByID(unit)
	if !ok {
		return nil, nil, fmt.Errorf("manager: unknown unit %q", unit)
	}
	return act, caster, nil
}

func (m *Manager) publishDeaths(result actions.Result) {
	m.ctx.ResolveDeaths(result)
}

func hashTargets(targets []actions.Target) uint64 {
	h := fnv.New64a()
	sorted := make([]actions.Target, len(targets))
	copy(sorted, targets)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].IsTile != sorted[j].IsTile {
			return !sorted[i].IsTile
		}
		if !sorted[i].IsTile {
			return sorted[i].UnitID < sorted[j].UnitID
		}
		if sorted[i].Tile.X != sorted[j].Tile.X {
			return sorted[i].Tile.X < sorted[j].Tile.X
		}
		return sorted[i].Tile.Y < sorted[j].Tile.Y
	})
	for _, t := range sorted {
		fmt.Fprintf(h, "%v|%v|%v|", t.IsTile, t.UnitID, t.Tile)
	}
	return h.Sum64()
}
