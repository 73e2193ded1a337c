package main

import (
	"fmt"
	"sort"
	"strings"

	"tacticalcore/ids"
)

// aggregateResult tallies runOnce outcomes across every iteration of one
// scenario, the scripted-battle analogue of tactical/combatsim's
// SimulationResult win-rate tracking.
type aggregateResult struct {
	scenarioName string
	iterations   int
	wins         map[ids.FactionID]int
	draws        int
	totalRounds  int
}

func newAggregateResult(name string, iterations int) *aggregateResult {
	return &aggregateResult{scenarioName: name, iterations: iterations, wins: map[ids.FactionID]int{}}
}

func (a *aggregateResult) add(r roundResult) {
	if r.winner == "" {
		a.draws++
	} else {
		a.wins[r.winner]++
	}
	a.totalRounds += r.rounds
}

// format renders a human-readable summary, grouping win rates by faction in
// descending order of wins.
func (a *aggregateResult) format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s (%d iterations)\n", a.scenarioName, a.iterations)

	factions := make([]ids.FactionID, 0, len(a.wins))
	for f := range a.wins {
		factions = append(factions, f)
	}
	sort.Slice(factions, func(i, j int) bool { return a.wins[factions[i]] > a.wins[factions[j]] })

	for _, f := range factions {
		pct := 100 * float64(a.wins[f]) / float64(a.iterations)
		fmt.Fprintf(&b, "  %-12s %4d wins (%.1f%%)\n", f, a.wins[f], pct)
	}
	if a.draws > 0 {
		pct := 100 * float64(a.draws) / float64(a.iterations)
		fmt.Fprintf(&b, "  %-12s %4d draws (%.1f%%)\n", "turn-cap", a.draws, pct)
	}
	avgRounds := float64(a.totalRounds) / float64(a.iterations)
	fmt.Fprintf(&b, "  average rounds: %.1f\n", avgRounds)
	return b.String()
}
