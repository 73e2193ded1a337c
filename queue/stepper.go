package queue

import (
	"math"

	"tacticalcore/actions"
	"tacticalcore/effects"
	"tacticalcore/ids"
	"tacticalcore/units"
)

// StepOutcome classifies how one timeline event resolved.
type StepOutcome string

const (
	StepExecuted            StepOutcome = "executed"
	StepSkippedDeadCaster    StepOutcome = "skipped_dead_caster"
	StepSkippedInvalid       StepOutcome = "skipped_invalid"
	StepSkippedUnknownAction StepOutcome = "skipped_unknown_action"
)

// StepResult records what happened when one queued action reached the head
// of the execution stepper.
type StepResult struct {
	Queued            *QueuedAction
	Outcome           StepOutcome
	Result            actions.Result
	Reason            actions.ReasonCode
	PredictionAccurate *bool
}

// ExecuteStep runs one timeline event to completion: dead-caster skip,
// re-validation (the world may have changed since this action was queued),
// execution, and prediction scoring. The result is appended to the bounded
// execution history.
func (q *Queue) ExecuteStep(event *QueuedAction, registry *actions.Registry, world actions.World, unitLookup func(id ids.UnitID) (*units.Instance, bool)) StepResult {
	caster, ok := unitLookup(event.UnitID)
	if !ok || !caster.Alive {
		res := StepResult{Queued: event, Outcome: StepSkippedDeadCaster}
		q.recordHistory(res)
		return res
	}

	act, ok := registry.Get(event.ActionID)
	if !ok {
		res := StepResult{Queued: event, Outcome: StepSkippedUnknownAction}
		q.recordHistory(res)
		return res
	}

	if ok, reason := act.CanExecute(caster, event.Targets, world); !ok {
		res := StepResult{Queued: event, Outcome: StepSkippedInvalid, Reason: reason}
		q.recordHistory(res)
		return res
	}

	result, _, _ := act.Execute(caster, event.Targets, world)
	res := StepResult{Queued: event, Outcome: StepExecuted, Result: result}
	if event.Prediction != nil {
		accurate := scoreAccuracy(event.Prediction, result)
		res.PredictionAccurate = &accurate
	}
	q.recordHistory(res)
	return res
}

// scoreAccuracy implements the "predicted damage within ±10%" rule for
// damage effects, and an applied-effect-of-matching-kind rule otherwise.
func scoreAccuracy(tag *PredictionTag, result actions.Result) bool {
	if tag.PredictedEffect == effects.KindDamage {
		if result.TotalDamage == 0 {
			return tag.PredictedDamage == 0
		}
		diff := math.Abs(float64(result.TotalDamage-tag.PredictedDamage)) / float64(result.TotalDamage)
		return diff <= 0.10
	}
	for _, o := range result.Outcomes {
		if o.EffectKind == tag.PredictedEffect && o.Result.Applied {
			return true
		}
	}
	return false
}

func (q *Queue) recordHistory(r StepResult) {
	q.history = append(q.history, r)
	if len(q.history) > historyCap {
		q.history = q.history[len(q.history)-historyCap:]
	}
}

// History returns the bounded ring of recent step results, oldest first.
func (q *Queue) History() []StepResult {
	return q.history
}
