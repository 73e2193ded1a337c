package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tacticalcore/grid"
	"tacticalcore/units"
)

func newUnit(hp int) *units.Instance {
	tmpl := units.Template{
		Name: "T",
		Base: units.NewAttributes(10, 4, 5, 5, 5, 5, 5, 5, 6),
		MaxHP: hp, MaxMP: 10, MaxAP: 6,
	}
	return units.NewFromTemplate("u1", "P", tmpl)
}

func TestDamageSkippedWhenDead(t *testing.T) {
	u := newUnit(30)
	u.Alive = false
	d := Damage{Magnitude: 10, DamageType: units.Physical}
	require.False(t, d.CanApply(Target{Unit: u}))
	result := d.Apply(Target{Unit: u}, Context{})
	assert.True(t, result.Skipped)
	assert.False(t, result.Applied)
}

func TestHealSkippedAtMaxHP(t *testing.T) {
	u := newUnit(30)
	h := Heal{Magnitude: 5}
	require.False(t, h.CanApply(Target{Unit: u}))
	result := h.Apply(Target{Unit: u}, Context{})
	assert.True(t, result.Skipped)
}

func TestDamageAppliesAndReportsDeath(t *testing.T) {
	u := newUnit(1)
	d := Damage{Magnitude: 50, DamageType: units.True}
	result := d.Apply(Target{Unit: u}, Context{})
	assert.True(t, result.Applied)
	assert.True(t, result.Died)
	assert.False(t, u.Alive)
}

func TestTerrainChangeInvalidatesCache(t *testing.T) {
	g := grid.New(3, 3)
	pos := grid.Position{X: 1, Y: 1}
	before := g.ReachablePositions("", grid.Position{}, 5, grid.PathOptions{})
	assert.Contains(t, before, pos)

	tc := TerrainChange{Terrain: grid.Wall}
	result := tc.Apply(Target{Tile: pos}, Context{Grid: g})
	assert.True(t, result.Applied)

	cell, _ := g.At(pos)
	assert.Equal(t, grid.Wall, cell.Terrain)

	after := g.ReachablePositions("", grid.Position{}, 5, grid.PathOptions{})
	assert.NotContains(t, after, pos, "a cached result would still list the walled cell")
}

func TestStatModifierAffectsEffectiveAttribute(t *testing.T) {
	u := newUnit(30)
	before := u.Attribute(units.Strength)
	sm := StatModifier{Attr: units.Strength, Magnitude: 5, Duration: 2}
	result := sm.Apply(Target{Unit: u}, Context{})
	assert.True(t, result.Applied)
	assert.Equal(t, before+5, u.Attribute(units.Strength))
}
