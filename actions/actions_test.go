package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tacticalcore/effects"
	"tacticalcore/grid"
	"tacticalcore/ids"
	"tacticalcore/units"
)

type fakeWorld struct {
	grid  *grid.Grid
	units map[ids.UnitID]*units.Instance
	pos   map[ids.UnitID]grid.Position
}

func newFakeWorld(w, h int) *fakeWorld {
	return &fakeWorld{
		grid:  grid.New(w, h),
		units: map[ids.UnitID]*units.Instance{},
		pos:   map[ids.UnitID]grid.Position{},
	}
}

func (f *fakeWorld) Grid() *grid.Grid { return f.grid }
func (f *fakeWorld) UnitByID(id ids.UnitID) (*units.Instance, bool) {
	u, ok := f.units[id]
	return u, ok
}
func (f *fakeWorld) PositionOf(id ids.UnitID) (grid.Position, bool) {
	p, ok := f.pos[id]
	return p, ok
}
func (f *fakeWorld) AllUnitIDs() []ids.UnitID {
	out := make([]ids.UnitID, 0, len(f.units))
	for id := range f.units {
		out = append(out, id)
	}
	return out
}

func (f *fakeWorld) place(u *units.Instance, faction ids.FactionID, p grid.Position) {
	u.Faction = faction
	f.units[u.ID] = u
	f.pos[u.ID] = p
	f.grid.Occupy(p, u.ID)
}

func newUnit(id ids.UnitID, maxHP int) *units.Instance {
	tmpl := units.Template{
		Base: units.NewAttributes(10, 4, 5, 5, 5, 5, 5, 5, 6),
		MaxHP: maxHP, MaxMP: 20, MaxAP: 6, MovePoints: 4,
	}
	return units.NewFromTemplate(id, "", tmpl)
}

func meleeAttack() *Action {
	return &Action{
		ID:   "strike",
		Kind: Attack,
		Targeting: Targeting{Range: 1, TargetType: TargetEnemy, MaxTargets: 1},
		Cost: Cost{AP: 2},
		Effects: []effects.Effect{
			effects.Damage{Magnitude: 10, DamageType: units.Physical, Source: "strike"},
		},
		Cooldown: 1,
	}
}

func TestExecuteAppliesDamageAndSetsCooldown(t *testing.T) {
	w := newFakeWorld(5, 5)
	caster := newUnit("attacker", 30)
	target := newUnit("defender", 30)
	w.place(caster, "A", grid.Position{X: 0, Y: 0})
	w.place(target, "B", grid.Position{X: 1, Y: 0})

	a := meleeAttack()
	result, ok, reason := a.Execute(caster, []Target{{UnitID: "defender"}}, w)
	require.True(t, ok, reason)
	require.Len(t, result.Outcomes, 1)
	assert.True(t, result.TotalDamage >= 1)
	assert.Equal(t, 1, caster.Cooldowns["strike"])
	assert.Equal(t, 4, caster.Resources.Pool(units.AP).Current)
}

func TestExecuteRejectsOutOfRange(t *testing.T) {
	w := newFakeWorld(5, 5)
	caster := newUnit("attacker", 30)
	target := newUnit("defender", 30)
	w.place(caster, "A", grid.Position{X: 0, Y: 0})
	w.place(target, "B", grid.Position{X: 4, Y: 4})

	a := meleeAttack()
	_, ok, reason := a.Execute(caster, []Target{{UnitID: "defender"}}, w)
	assert.False(t, ok)
	assert.Equal(t, ReasonOutOfRange, reason)
}

func TestExecuteFallsBackToCasterAttackRangeWhenActionDeclaresNone(t *testing.T) {
	w := newFakeWorld(5, 5)
	caster := newUnit("attacker", 30)
	caster.AttackRange = 1
	target := newUnit("defender", 30)
	w.place(caster, "A", grid.Position{X: 0, Y: 0})
	w.place(target, "B", grid.Position{X: 4, Y: 4})

	a := meleeAttack()
	a.Targeting.Range = 0 // no range of its own; must inherit from the caster

	_, ok, reason := a.Execute(caster, []Target{{UnitID: "defender"}}, w)
	assert.False(t, ok)
	assert.Equal(t, ReasonOutOfRange, reason)

	w2 := newFakeWorld(5, 5)
	caster2 := newUnit("attacker2", 30)
	caster2.AttackRange = 1
	target2 := newUnit("defender2", 30)
	w2.place(caster2, "A", grid.Position{X: 0, Y: 0})
	w2.place(target2, "B", grid.Position{X: 1, Y: 0})

	_, ok, reason = a.Execute(caster2, []Target{{UnitID: "defender2"}}, w2)
	require.True(t, ok, reason)
}

func TestExecuteRejectsOnCooldown(t *testing.T) {
	w := newFakeWorld(5, 5)
	caster := newUnit("attacker", 30)
	target := newUnit("defender", 30)
	w.place(caster, "A", grid.Position{X: 0, Y: 0})
	w.place(target, "B", grid.Position{X: 1, Y: 0})
	caster.Cooldowns["strike"] = 2

	a := meleeAttack()
	_, ok, reason := a.Execute(caster, []Target{{UnitID: "defender"}}, w)
	assert.False(t, ok)
	assert.Equal(t, ReasonOnCooldown, reason)
}

func TestExecuteAoEHitsEveryoneInRadius(t *testing.T) {
	w := newFakeWorld(7, 7)
	caster := newUnit("caster", 30)
	e1 := newUnit("e1", 20)
	e2 := newUnit("e2", 20)
	ally := newUnit("ally", 20)
	w.place(caster, "A", grid.Position{X: 3, Y: 3})
	w.place(e1, "B", grid.Position{X: 4, Y: 3})
	w.place(e2, "B", grid.Position{X: 3, Y: 4})
	w.place(ally, "A", grid.Position{X: 2, Y: 3})

	blast := &Action{
		ID:   "blast",
		Kind: Magic,
		Targeting: Targeting{Range: 5, AoERadius: 2, TargetType: TargetArea, AoEFilter: TargetEnemy, CanTargetEmpty: true, MaxTargets: 1},
		Cost: Cost{MP: 5},
		Effects: []effects.Effect{
			effects.Damage{Magnitude: 8, DamageType: units.Magical, Source: "blast"},
		},
	}

	result, ok, reason := blast.Execute(caster, []Target{{Tile: grid.Position{X: 3, Y: 3}, IsTile: true}}, w)
	require.True(t, ok, reason)

	hit := map[ids.UnitID]bool{}
	for _, o := range result.Outcomes {
		hit[o.Target] = true
	}
	assert.True(t, hit["e1"])
	assert.True(t, hit["e2"])
	assert.False(t, hit["ally"])
}

func TestPreviewDoesNotMutateRealState(t *testing.T) {
	w := newFakeWorld(5, 5)
	caster := newUnit("attacker", 30)
	target := newUnit("defender", 30)
	w.place(caster, "A", grid.Position{X: 0, Y: 0})
	w.place(target, "B", grid.Position{X: 1, Y: 0})

	a := meleeAttack()
	result, ok, reason := a.Preview(caster, []Target{{UnitID: "defender"}}, w)
	require.True(t, ok, reason)
	assert.True(t, result.Hypothetical)
	assert.True(t, result.TotalDamage >= 1)

	assert.Equal(t, 30, target.Resources.Pool(units.HP).Current)
	assert.Equal(t, 6, caster.Resources.Pool(units.AP).Current)
	assert.Equal(t, 0, caster.Cooldowns["strike"])
}

func TestCanExecuteRejectsDeadCaster(t *testing.T) {
	w := newFakeWorld(5, 5)
	caster := newUnit("attacker", 30)
	caster.Alive = false
	w.place(caster, "A", grid.Position{X: 0, Y: 0})

	a := meleeAttack()
	ok, reason := a.CanExecute(caster, []Target{{UnitID: "defender"}}, w)
	assert.False(t, ok)
	assert.Equal(t, ReasonDeadCaster, reason)
}

func TestRegistryAvailableForFiltersUnaffordable(t *testing.T) {
	r := NewRegistry()
	a := meleeAttack()
	require.NoError(t, r.Register(a))

	u := newUnit("attacker", 30)
	u.Hotkeys[0] = units.HotkeySlot{ActionID: "strike"}
	assert.Contains(t, r.AvailableFor(u), ids.ActionID("strike"))

	u.Resources.Pool(units.AP).Current = 0
	assert.NotContains(t, r.AvailableFor(u), ids.ActionID("strike"))
}
