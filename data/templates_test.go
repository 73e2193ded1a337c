package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tacticalcore/ids"
	"tacticalcore/units"
)

const sampleTemplateJSON = `{
  "name": "Warrior",
  "stats": {
    "base_health": 40,
    "base_mp": 5,
    "base_move_points": 4,
    "base_attack_range": 1,
    "attribute_bonuses": ["strength", "fortitude"]
  },
  "inventory": {
    "starting_items": [
      {"id": "sword", "name": "Iron Sword", "bonuses": {"strength": 2}}
    ]
  },
  "talents": {
    "cleave": {"unlocked": true, "requirements": []},
    "whirlwind": {"unlocked": false, "requirements": ["cleave"]}
  },
  "hotkey_abilities": {
    "1": {"action_id": "basic_strike"},
    "2": {"talent_id": "cleave"}
  }
}`

func TestLoadUnitTemplateJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "warrior.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleTemplateJSON), 0o644))

	tmpl, err := LoadUnitTemplateJSON(path)
	require.NoError(t, err)

	assert.Equal(t, 40, tmpl.MaxHP)
	assert.Equal(t, 5, tmpl.MaxMP)
	assert.Equal(t, 4, tmpl.MovePoints)
	assert.Equal(t, 1, tmpl.AttackRange)
	assert.Equal(t, 15, tmpl.Base.Get(units.Strength)) // 10 base + 5 bonus
	assert.Equal(t, 15, tmpl.Base.Get(units.Fortitude))
	assert.Equal(t, 10, tmpl.Base.Get(units.Finesse))
	require.Len(t, tmpl.StartingItems, 1)
	assert.Equal(t, "sword", tmpl.StartingItems[0].ID)
	assert.Contains(t, tmpl.StartingTalents, ids.TalentID("cleave"))
	assert.NotContains(t, tmpl.StartingTalents, ids.TalentID("whirlwind"))

	assert.EqualValues(t, "basic_strike", tmpl.Hotkeys[0].ActionID)
	assert.EqualValues(t, "cleave", tmpl.Hotkeys[1].ActionID)
}

func TestLoadUnitTemplateJSONRejectsUnknownAttribute(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	bad := `{"name":"Bad","stats":{"base_health":10,"attribute_bonuses":["luck"]}}`
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

	_, err := LoadUnitTemplateJSON(path)
	assert.Error(t, err)
}
