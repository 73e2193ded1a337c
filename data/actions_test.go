package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tacticalcore/actions"
)

const sampleActionsJSON = `[
  {
    "id": "basic_strike",
    "name": "Basic Strike",
    "kind": "attack",
    "target_type": "enemy",
    "range": 1,
    "cooldown": 0,
    "effects": {"damage.physical": 12},
    "cost": {"ap_cost": 2, "made_up_key": 99}
  },
  {
    "id": "broken_entry",
    "name": "Broken",
    "kind": "not-a-real-kind",
    "target_type": "enemy",
    "effects": {"damage.physical": 5},
    "cost": {}
  }
]`

func TestLoadActionsJSONRegistersValidEntriesAndSkipsMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "actions.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleActionsJSON), 0o644))

	registry := actions.NewRegistry()
	require.NoError(t, LoadActionsJSON(path, registry, nil))

	act, ok := registry.Get("basic_strike")
	require.True(t, ok)
	assert.Equal(t, 2, act.Cost.AP)
	assert.Equal(t, actions.TargetEnemy, act.Targeting.TargetType)
	assert.Len(t, act.Effects, 1)

	_, ok = registry.Get("broken_entry")
	assert.False(t, ok, "an entry with an unrecognized kind must be skipped, not registered")
}

func TestLoadActionsJSONMissingFileIsAnError(t *testing.T) {
	registry := actions.NewRegistry()
	err := LoadActionsJSON("/nonexistent/path/actions.json", registry, nil)
	assert.Error(t, err)
}
