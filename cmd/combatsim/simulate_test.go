package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tacticalcore/ai"
	"tacticalcore/engineconfig"
)

func TestRunOnceAlwaysEndsInAWinnerOrDraw(t *testing.T) {
	s := scenario{
		name: "test duel", width: 6, height: 6,
		attacker: squadConfig{faction: "attacker", count: 1, row: 0},
		defender: squadConfig{faction: "defender", count: 1, row: 1},
	}
	ctx, err := buildBattle(s, nil, engineconfig.Default())
	require.NoError(t, err)

	result := runOnce(ctx, ai.DefaultRecommender{}, false)
	assert.True(t, result.winner == "attacker" || result.winner == "defender" || result.winner == "")
	assert.Greater(t, result.rounds, 0)
}

func TestAggregateResultTalliesWinsAndDraws(t *testing.T) {
	agg := newAggregateResult("test", 3)
	agg.add(roundResult{winner: "attacker", rounds: 4})
	agg.add(roundResult{winner: "attacker", rounds: 6})
	agg.add(roundResult{winner: "", rounds: 100})

	assert.Equal(t, 2, agg.wins["attacker"])
	assert.Equal(t, 1, agg.draws)
	report := agg.format()
	assert.Contains(t, report, "attacker")
	assert.Contains(t, report, "draws")
}
