package main

import (
	"fmt"

	"tacticalcore/actions"
	"tacticalcore/ai"
	"tacticalcore/battle"
	"tacticalcore/ids"
	"tacticalcore/manager"
)

// roundResult is the outcome of one scripted battle: the winning faction (or
// "" for a turn-cap draw) and how many rounds it took.
type roundResult struct {
	winner ids.FactionID
	rounds int
}

// runOnce drives ctx to completion using the default recommender for both
// sides' turns: each active unit takes its single highest-confidence
// recommended action (or passes, if none), then ends its turn. This mirrors
// how a scripted or unattended battle would be driven without a human or a
// richer external AI collaborator attached.
func runOnce(ctx *battle.Context, recommender ai.Recommender, verbose bool) roundResult {
	m := manager.New(ctx)
	registry := ctx.Registry()

	for ctx.State() != battle.BattleOver {
		active, ok := ctx.ActiveUnit()
		if !ok {
			break
		}

		recs := recommender.RecommendActions(active, ctx, registry)
		best, ok := bestValidRecommendation(ctx, recs)
		if ok {
			result, err := m.ExecuteImmediately(active, best.ActionID, best.TargetHint)
			if verbose {
				if err != nil {
					fmt.Printf("round %d: %s attempts %s: %v\n", ctx.Round(), active, best.ActionID, err)
				} else {
					fmt.Printf("round %d: %s uses %s for %d damage (%s)\n", ctx.Round(), active, best.ActionID, result.TotalDamage, best.Reasoning)
				}
			}
		}

		ctx.EndTurn()
	}

	if verbose {
		for _, faction := range []ids.FactionID{"attacker", "defender"} {
			fmt.Printf("  %s survivors: %d\n", faction, len(ctx.UnitIDsInFaction(faction)))
		}
	}

	return roundResult{winner: ctx.Winner(), rounds: ctx.Round()}
}

// bestValidRecommendation returns the first recommendation (they arrive
// sorted by descending confidence) whose target hint still resolves to a
// living unit, skipping stale hints from an external Recommender that
// evaluated a now-outdated world snapshot.
func bestValidRecommendation(world actions.World, recs []ai.Recommendation) (ai.Recommendation, bool) {
	for _, rec := range recs {
		if targetHintValid(world, rec.TargetHint) {
			return rec, true
		}
	}
	return ai.Recommendation{}, false
}

func targetHintValid(world actions.World, hint []actions.Target) bool {
	for _, t := range hint {
		if t.IsTile {
			continue
		}
		u, ok := world.UnitByID(t.UnitID)
		if !ok || !u.Alive {
			return false
		}
	}
	return true
}
