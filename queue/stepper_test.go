package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tacticalcore/actions"
	"tacticalcore/effects"
	"tacticalcore/grid"
	"tacticalcore/ids"
	"tacticalcore/units"
)

type testWorld struct {
	grid  *grid.Grid
	units map[ids.UnitID]*units.Instance
	pos   map[ids.UnitID]grid.Position
}

func newTestWorld() *testWorld {
	return &testWorld{grid: grid.New(5, 5), units: map[ids.UnitID]*units.Instance{}, pos: map[ids.UnitID]grid.Position{}}
}

func (w *testWorld) Grid() *grid.Grid { return w.grid }
func (w *testWorld) UnitByID(id ids.UnitID) (*units.Instance, bool) {
	u, ok := w.units[id]
	return u, ok
}
func (w *testWorld) PositionOf(id ids.UnitID) (grid.Position, bool) {
	p, ok := w.pos[id]
	return p, ok
}
func (w *testWorld) AllUnitIDs() []ids.UnitID {
	out := make([]ids.UnitID, 0, len(w.units))
	for id := range w.units {
		out = append(out, id)
	}
	return out
}

func (w *testWorld) place(u *units.Instance, faction ids.FactionID, p grid.Position) {
	u.Faction = faction
	w.units[u.ID] = u
	w.pos[u.ID] = p
	w.grid.Occupy(p, u.ID)
}

func testUnit(id ids.UnitID, maxHP int) *units.Instance {
	tmpl := units.Template{Base: units.NewAttributes(10, 4, 5, 5, 5, 5, 5, 5, 6), MaxHP: maxHP, MaxMP: 10, MaxAP: 6, MovePoints: 4}
	return units.NewFromTemplate(id, "", tmpl)
}

func TestExecuteStepRunsValidAction(t *testing.T) {
	w := newTestWorld()
	caster := testUnit("a", 30)
	target := testUnit("b", 30)
	w.place(caster, "P", grid.Position{X: 0, Y: 0})
	w.place(target, "E", grid.Position{X: 1, Y: 0})

	registry := actions.NewRegistry()
	act := &actions.Action{
		ID: "strike", Kind: actions.Attack,
		Targeting: actions.Targeting{Range: 1, TargetType: actions.TargetEnemy, MaxTargets: 1},
		Cost:      actions.Cost{AP: 2},
		Effects:   []effects.Effect{effects.Damage{Magnitude: 10, DamageType: units.Physical, Source: "strike"}},
		Cooldown:  1,
	}
	require.NoError(t, registry.Register(act))

	q := New()
	qa := q.Add("a", "strike", []actions.Target{{UnitID: "b"}}, actions.Normal, 0, 0, nil)

	res := q.ExecuteStep(qa, registry, w, w.UnitByID)
	assert.Equal(t, StepExecuted, res.Outcome)
	assert.True(t, res.Result.TotalDamage >= 1)
	assert.Len(t, q.History(), 1)
}

func TestExecuteStepSkipsDeadCaster(t *testing.T) {
	w := newTestWorld()
	caster := testUnit("a", 30)
	caster.Alive = false
	w.place(caster, "P", grid.Position{X: 0, Y: 0})

	registry := actions.NewRegistry()
	q := New()
	qa := q.Add("a", "strike", nil, actions.Normal, 0, 0, nil)

	res := q.ExecuteStep(qa, registry, w, w.UnitByID)
	assert.Equal(t, StepSkippedDeadCaster, res.Outcome)
}

func TestExecuteStepSkipsInvalidOnReValidation(t *testing.T) {
	w := newTestWorld()
	caster := testUnit("a", 30)
	target := testUnit("b", 30)
	w.place(caster, "P", grid.Position{X: 0, Y: 0})
	w.place(target, "E", grid.Position{X: 4, Y: 4})

	registry := actions.NewRegistry()
	act := &actions.Action{
		ID: "strike", Kind: actions.Attack,
		Targeting: actions.Targeting{Range: 1, TargetType: actions.TargetEnemy, MaxTargets: 1},
		Cost:      actions.Cost{AP: 2},
		Effects:   []effects.Effect{effects.Damage{Magnitude: 10, DamageType: units.Physical, Source: "strike"}},
	}
	require.NoError(t, registry.Register(act))

	q := New()
	qa := q.Add("a", "strike", []actions.Target{{UnitID: "b"}}, actions.Normal, 0, 0, nil)

	res := q.ExecuteStep(qa, registry, w, w.UnitByID)
	assert.Equal(t, StepSkippedInvalid, res.Outcome)
	assert.Equal(t, actions.ReasonOutOfRange, res.Reason)
}

func TestPredictionAccuracyWithinTenPercent(t *testing.T) {
	tag := &PredictionTag{PredictedDamage: 10, PredictedEffect: effects.KindDamage}
	result := actions.Result{TotalDamage: 10}
	assert.True(t, scoreAccuracy(tag, result))

	result.TotalDamage = 20
	assert.False(t, scoreAccuracy(tag, result))
}
