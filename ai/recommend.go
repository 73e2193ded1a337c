// Package ai defines the pull-based recommendation contract external AI
// collaborators implement, plus a deterministic default that scores attack
// targets by favoring the weakest enemy in range, without ever blocking the
// core.
package ai

import (
	"fmt"
	"sort"

	"tacticalcore/actions"
	"tacticalcore/grid"
	"tacticalcore/ids"
	"tacticalcore/units"
)

// Recommendation is one suggested action for a unit, with a confidence the
// caller may use to rank or threshold suggestions. It is advisory only: the
// core never acts on a Recommendation by itself.
type Recommendation struct {
	ActionID   ids.ActionID
	Confidence float64 // in [0, 1]
	Reasoning  string
	TargetHint []actions.Target
}

// Recommender is the pull interface the core exposes to external AI
// collaborators. RecommendActions must return promptly — the core never
// blocks waiting for it, and a missing, slow, or failed recommender degrades
// to an empty slice, never an error the caller must handle.
type Recommender interface {
	RecommendActions(unitID ids.UnitID, world actions.World, registry *actions.Registry) []Recommendation
}

// DefaultRecommender is a deterministic, synchronous scorer: it favors
// attacking the weakest in-range enemy and weakly suggests self-targeted
// actions absent any stronger signal. It never returns an error — a unit
// with no usable actions just gets an empty recommendation list.
type DefaultRecommender struct{}

// RecommendActions scores every action in unitID's available set and
// returns recommendations sorted by descending confidence.
func (DefaultRecommender) RecommendActions(unitID ids.UnitID, world actions.World, registry *actions.Registry) []Recommendation {
	unit, ok := world.UnitByID(unitID)
	if !ok || !unit.Alive {
		return nil
	}
	casterPos, ok := world.PositionOf(unitID)
	if !ok {
		return nil
	}

	var out []Recommendation
	for _, actionID := range registry.AvailableFor(unit) {
		act, ok := registry.Get(actionID)
		if !ok {
			continue
		}
		switch act.Targeting.TargetType {
		case actions.TargetEnemy:
			rec, ok := recommendAttack(unit, casterPos, act, world)
			if ok {
				out = append(out, rec)
			}
		case actions.TargetSelf:
			out = append(out, Recommendation{
				ActionID: act.ID, Confidence: 0.2,
				Reasoning:  fmt.Sprintf("%s affects only the caster; low priority absent a trigger condition", act.ID),
				TargetHint: []actions.Target{{UnitID: unitID}},
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	return out
}

// recommendAttack finds the best in-range enemy for act and scores the
// suggestion by how wounded that enemy already is — a lower-HP target is a
// more confident kill-securing recommendation.
func recommendAttack(caster *units.Instance, casterPos grid.Position, act *actions.Action, world actions.World) (Recommendation, bool) {
	var best *units.Instance
	bestHPFraction := 1.1

	for _, id := range world.AllUnitIDs() {
		candidate, ok := world.UnitByID(id)
		if !ok || !candidate.Alive || candidate.Faction == caster.Faction {
			continue
		}
		pos, ok := world.PositionOf(id)
		if !ok {
			continue
		}
		if act.Targeting.Range > 0 && casterPos.ManhattanDistance(pos) > act.Targeting.Range {
			continue
		}
		hp := candidate.Resources.Pool(units.HP)
		fraction := float64(hp.Current) / float64(hp.Max)
		if fraction < bestHPFraction {
			bestHPFraction = fraction
			best = candidate
		}
	}
	if best == nil {
		return Recommendation{}, false
	}
	confidence := 0.5 + 0.5*(1.0-bestHPFraction)
	return Recommendation{
		ActionID:   act.ID,
		Confidence: confidence,
		Reasoning:  fmt.Sprintf("%s is the weakest enemy in range of %s (%.0f%% HP)", best.ID, act.ID, bestHPFraction*100),
		TargetHint: []actions.Target{{UnitID: best.ID}},
	}, true
}
