package battle

import (
	"fmt"

	"tacticalcore/actions"
	"tacticalcore/enginelog"
	"tacticalcore/events"
	"tacticalcore/ids"
	"tacticalcore/queue"
	"tacticalcore/units"
)

// State is a turn/battle lifecycle state.
type State int

const (
	Idle State = iota
	SelectingAction
	Targeting
	AwaitingConfirmation
	Executing
	TurnEnd
	BattleOver
)

// Mode is the interaction sub-state active during SelectingAction/Targeting.
type Mode int

const (
	ModeNone Mode = iota
	ModeMove
	ModeAttack
	ModeMagic
	ModeSpirit
	ModeInventory
)

// StartBattle seeds the initiative-sorted round order from every placed
// unit and begins the first turn.
func (c *Context) StartBattle() {
	c.buildRoundOrder()
	c.round = 1
	c.activeIndex = -1
	c.NextTurn()
}

// NextTurn advances to the next living unit's turn slot, wrapping to a new
// round when the order is exhausted. Dead units are skipped without
// consuming a slot. A stunned unit still has its turn-start resources
// restored, but its slot is consumed immediately — it never enters
// SelectingAction — per spec's "stunned units skip their actions" rule. If
// the battle has already ended this is a no-op.
func (c *Context) NextTurn() {
	if c.state == BattleOver {
		return
	}
	for {
		c.activeIndex++
		if c.activeIndex >= len(c.order) {
			c.activeIndex = 0
			c.round++
			if c.round > c.turnCap {
				c.endBattle("")
				return
			}
		}
		if len(c.order) == 0 {
			c.endBattle("")
			return
		}
		unit, ok := c.unitTbl[c.order[c.activeIndex]]
		if !ok || !unit.Alive {
			continue
		}
		stunned := unit.HasStatus("stunned")
		unit.TurnStart()
		if stunned {
			c.log.WithFields(enginelog.Fields{"battle": c.id, "unit": unit.ID, "round": c.round}).Info("unit stunned, turn skipped")
			c.bus.Publish(events.Event{Topic: events.ActionSkipped, Data: "stunned"})
			continue
		}
		c.state = SelectingAction
		c.mode = ModeNone
		c.log.WithFields(enginelog.Fields{"battle": c.id, "unit": unit.ID, "round": c.round}).Debug("turn started")
		c.bus.Publish(events.Event{Topic: events.TurnStarted, Data: unit.ID})
		return
	}
}

// EnterMode transitions from SelectingAction into Targeting under mode.
func (c *Context) EnterMode(mode Mode) {
	if c.state == SelectingAction {
		c.state = Targeting
		c.mode = mode
	}
}

// Cancel returns to SelectingAction/ModeNone without committing state —
// the Escape behavior.
func (c *Context) Cancel() {
	if c.state == Targeting || c.state == AwaitingConfirmation {
		c.state = SelectingAction
		c.mode = ModeNone
	}
}

// Confirm transitions from Targeting to AwaitingConfirmation.
func (c *Context) Confirm() {
	if c.state == Targeting {
		c.state = AwaitingConfirmation
	}
}

// Act resolves the active unit's chosen action: cast_time==0 actions execute
// immediately, everything else is enqueued for timeline resolution.
func (c *Context) Act(actionID ids.ActionID, targets []actions.Target, priority actions.PriorityClass) (*actions.Result, error) {
	active, ok := c.ActiveUnit()
	if !ok {
		return nil, fmt.Errorf("battle: no active unit")
	}
	act, ok := c.registry.Get(actionID)
	if !ok {
		return nil, fmt.Errorf("battle: unknown action %q", actionID)
	}
	caster, ok := c.unitTbl[active]
	if !ok {
		return nil, fmt.Errorf("battle: active unit %s missing from unit table", active)
	}

	if act.CastTime == 0 {
		result, ok, reason := act.Execute(caster, targets, c)
		if !ok {
			c.log.WithFields(enginelog.Fields{"battle": c.id, "unit": active, "action": actionID, "reason": reason}).Warn("action failed")
			c.bus.Publish(events.Event{Topic: events.ActionFailed, Data: reason})
			return nil, fmt.Errorf("battle: action failed: %s", reason)
		}
		c.bus.Publish(events.Event{Topic: events.ActionExecuted, Data: result})
		c.publishSecondary(result)
		return &result, nil
	}

	qa := c.queue.Add(active, actionID, targets, priority, act.InitiativeBonus, act.CastTime, nil)
	c.bus.Publish(events.Event{Topic: events.ActionQueued, Data: qa})
	return nil, nil
}

// EndTurn resolves the active unit's queued (cast-time > 0) actions against
// the global timeline, applies end-of-turn status effects, broadcasts
// turn_ended, checks for battle end, and advances to the next turn.
func (c *Context) EndTurn() {
	active, ok := c.ActiveUnit()
	if !ok {
		return
	}
	c.state = Executing
	c.resolveQueuedFor(active)
	c.applyEndOfTurnStatuses(active)

	c.state = TurnEnd
	c.bus.Publish(events.Event{Topic: events.TurnEnded, Data: active})

	if c.checkBattleEnd() {
		return
	}
	c.NextTurn()
}

// resolveQueuedFor executes every timeline event belonging to unit, in
// timeline order, against the current global state.
func (c *Context) resolveQueuedFor(unit ids.UnitID) {
	timeline := c.queue.ResolveTimeline(c.initiativeSnapshot())
	for _, event := range timeline {
		if event.UnitID != unit {
			continue
		}
		step := c.queue.ExecuteStep(event, c.registry, c, c.UnitByID)
		c.queue.RemoveEntry(unit, event)
		switch step.Outcome {
		case queue.StepSkippedDeadCaster:
			c.bus.Publish(events.Event{Topic: events.ActionSkipped, Data: "dead_caster"})
		case queue.StepSkippedInvalid, queue.StepSkippedUnknownAction:
			c.bus.Publish(events.Event{Topic: events.ActionSkipped, Data: step.Reason})
		default:
			c.bus.Publish(events.Event{Topic: events.ActionExecuted, Data: step.Result})
			c.publishSecondary(step.Result)
		}
	}
}

func (c *Context) publishSecondary(result actions.Result) {
	c.ResolveDeaths(result)
}

// ResolveDeaths publishes unit_died and frees the grid cell and roster entry
// for every "unit_died" secondary effect in result. Exported so the manager
// facade's immediate-execution path (which bypasses battle's own controller
// loop) shares this cleanup instead of leaving a dead unit occupying its
// grid cell and roster slot — the same invariant the controller's own
// queued-action path already upholds.
func (c *Context) ResolveDeaths(result actions.Result) {
	for _, sec := range result.Secondary {
		if sec.Kind != "unit_died" {
			continue
		}
		c.log.WithFields(enginelog.Fields{"battle": c.id, "unit": sec.Unit}).Info("unit died")
		c.bus.Publish(events.Event{Topic: events.UnitDied, Data: sec.Unit})
		if pos, ok := c.grid.FindUnit(sec.Unit); ok {
			c.grid.Free(pos)
		}
		c.RemoveUnit(sec.Unit)
	}
}

// applyEndOfTurnStatuses resolves the named status effects the timeline
// can't express as an Effect descriptor: "poison" deals a small fixed true
// wound, "regen" restores a small fixed amount of HP, each turn they remain
// active.
func (c *Context) applyEndOfTurnStatuses(unit ids.UnitID) {
	u, ok := c.unitTbl[unit]
	if !ok {
		return
	}
	if u.HasStatus("poison") {
		u.TakeDamage(2, units.True)
	}
	if u.HasStatus("regen") {
		u.Heal(2)
	}
}

// checkBattleEnd transitions to BattleOver when at most one faction has a
// living unit remaining; returns true if the battle just ended.
func (c *Context) checkBattleEnd() bool {
	living := map[ids.FactionID]bool{}
	for _, u := range c.unitTbl {
		if u.Alive {
			living[u.Faction] = true
		}
	}
	if len(living) > 1 {
		return false
	}
	var winner ids.FactionID
	for f := range living {
		winner = f
	}
	c.endBattle(winner)
	return true
}

func (c *Context) endBattle(winner ids.FactionID) {
	c.state = BattleOver
	c.winner = winner
	c.log.WithFields(enginelog.Fields{"battle": c.id, "winner": winner, "round": c.round}).Info("battle ended")
	c.bus.Publish(events.Event{Topic: events.BattleEnded, Data: winner})
}
