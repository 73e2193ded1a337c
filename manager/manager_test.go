package manager

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tacticalcore/actions"
	"tacticalcore/battle"
	"tacticalcore/effects"
	"tacticalcore/events"
	"tacticalcore/grid"
	"tacticalcore/units"
)

func newTestManager() (*Manager, *battle.Context, *units.Instance, *units.Instance) {
	g := grid.New(5, 5)
	registry := actions.NewRegistry()
	strike := &actions.Action{
		ID: "strike", Kind: actions.Attack,
		Targeting: actions.Targeting{Range: 1, TargetType: actions.TargetEnemy, MaxTargets: 1},
		Cost:      actions.Cost{AP: 2},
		Effects:   []effects.Effect{effects.Damage{Magnitude: 12, DamageType: units.Physical, Source: "strike"}},
		Cooldown:  1,
	}
	registry.Register(strike)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	bus := events.New(log)
	ctx := battle.NewContext(g, registry, bus, log)

	tmpl := units.Template{
		Base: units.NewAttributes(10, 4, 5, 5, 5, 5, 5, 5, 10), MaxHP: 30, MaxMP: 10, MaxAP: 6, MovePoints: 4,
		Hotkeys: [units.HotkeySlotCount]units.HotkeySlot{0: {ActionID: "strike"}},
	}
	a := units.NewFromTemplate("a", "P", tmpl)
	b := units.NewFromTemplate("b", "E", tmpl)
	ctx.AddUnit(a, grid.Position{X: 0, Y: 0})
	ctx.AddUnit(b, grid.Position{X: 1, Y: 0})
	ctx.StartBattle()

	return New(ctx), ctx, a, b
}

func TestExecuteImmediatelyAppliesDamageAndEmitsEvent(t *testing.T) {
	m, ctx, a, b := newTestManager()
	active, _ := ctx.ActiveUnit()
	target := b.ID
	if active == b.ID {
		target = a.ID
	}

	var executed bool
	ctx.Bus().Subscribe(events.ActionExecuted, func(ev events.Event) { executed = true })

	result, err := m.ExecuteImmediately(active, "strike", []actions.Target{{UnitID: target}})
	require.NoError(t, err)
	assert.True(t, executed)
	assert.True(t, result.TotalDamage > 0)
}

func TestPreviewIsCachedUntilActionExecuted(t *testing.T) {
	m, ctx, a, b := newTestManager()
	active, _ := ctx.ActiveUnit()
	target := b.ID
	if active == b.ID {
		target = a.ID
	}

	first, err := m.Preview(active, "strike", []actions.Target{{UnitID: target}})
	require.NoError(t, err)
	assert.True(t, first.Hypothetical)

	second, err := m.Preview(active, "strike", []actions.Target{{UnitID: target}})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = m.ExecuteImmediately(active, "strike", []actions.Target{{UnitID: target}})
	require.NoError(t, err)
	assert.Empty(t, m.cache, "action_executed must invalidate the whole preview cache")
}

func TestExecuteImmediatelyFreesGridAndRosterOnKill(t *testing.T) {
	m, ctx, a, b := newTestManager()
	active, _ := ctx.ActiveUnit()
	target := b.ID
	if active == b.ID {
		target = a.ID
	}
	victim, _ := ctx.UnitByID(target)
	victim.Resources.Pool(units.HP).Current = 1

	var died bool
	ctx.Bus().Subscribe(events.UnitDied, func(ev events.Event) { died = true })

	_, err := m.ExecuteImmediately(active, "strike", []actions.Target{{UnitID: target}})
	require.NoError(t, err)
	assert.True(t, died)

	_, occupied := ctx.Grid().FindUnit(target)
	assert.False(t, occupied, "execute_immediately must free the dead unit's grid cell")

	victimUnit, _ := ctx.UnitByID(target)
	assert.NotContains(t, ctx.UnitIDsInFaction(victimUnit.Faction), target,
		"execute_immediately must drop the dead unit from its faction roster")
}

func TestQueueActionRejectsUnaffordableAction(t *testing.T) {
	m, ctx, a, b := newTestManager()
	active, _ := ctx.ActiveUnit()
	target := b.ID
	if active == b.ID {
		target = a.ID
	}
	caster, _ := ctx.UnitByID(active)
	caster.Resources.Pool(units.AP).Current = 0

	var failed bool
	ctx.Bus().Subscribe(events.ActionFailed, func(ev events.Event) { failed = true })

	_, err := m.QueueAction(active, "strike", []actions.Target{{UnitID: target}}, actions.Normal, nil)
	assert.Error(t, err)
	assert.True(t, failed)
}

func TestClearUnitLeavesNoQueuedEntries(t *testing.T) {
	m, ctx, a, b := newTestManager()
	active, _ := ctx.ActiveUnit()
	target := b.ID
	if active == b.ID {
		target = a.ID
	}
	strike := &actions.Action{
		ID: "slow-strike", Kind: actions.Attack,
		Targeting: actions.Targeting{Range: 1, TargetType: actions.TargetEnemy, MaxTargets: 1},
		Cost:      actions.Cost{AP: 1},
		Effects:   []effects.Effect{effects.Damage{Magnitude: 5, DamageType: units.Physical, Source: "slow-strike"}},
		CastTime:  1,
	}
	require.NoError(t, ctx.Registry().Register(strike))

	_, err := m.QueueAction(active, "slow-strike", []actions.Target{{UnitID: target}}, actions.Normal, nil)
	require.NoError(t, err)
	assert.Len(t, ctx.Queue().List(active), 1)

	m.ClearUnit(active)
	assert.Empty(t, ctx.Queue().List(active))
}

func TestAvailableActionsListsHotkeyBoundAffordableActions(t *testing.T) {
	m, ctx, _, _ := newTestManager()
	active, _ := ctx.ActiveUnit()

	summaries, err := m.AvailableActions(active)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.EqualValues(t, "strike", summaries[0].ActionID)
}
