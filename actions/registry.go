package actions

import (
	"fmt"
	"sort"

	"tacticalcore/ids"
	"tacticalcore/units"
)

// Registry is an in-memory catalog of actions keyed by id, plus the
// slot-availability query hotkey UIs need to gray out unaffordable actions.
type Registry struct {
	byID map[ids.ActionID]*Action
}

func NewRegistry() *Registry {
	return &Registry{byID: map[ids.ActionID]*Action{}}
}

func (r *Registry) Register(a *Action) error {
	if a.ID == "" {
		return fmt.Errorf("actions: cannot register action with empty id")
	}
	if _, exists := r.byID[a.ID]; exists {
		return fmt.Errorf("actions: action %q already registered", a.ID)
	}
	r.byID[a.ID] = a
	return nil
}

func (r *Registry) Get(id ids.ActionID) (*Action, bool) {
	a, ok := r.byID[id]
	return a, ok
}

func (r *Registry) ByKind(kind Kind) []*Action {
	var out []*Action
	for _, a := range r.byID {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AvailableFor reports which of a unit's hotkey-bound actions are currently
// usable: affordable, off cooldown, and requirements met. Range/targeting are
// evaluated later, once a target is chosen.
func (r *Registry) AvailableFor(u *units.Instance) []ids.ActionID {
	var out []ids.ActionID
	for _, slot := range u.Hotkeys {
		if slot.ActionID == "" {
			continue
		}
		a, ok := r.byID[slot.ActionID]
		if !ok {
			continue
		}
		if !u.Resources.CanAfford(a.Cost.AsResourceCost()) {
			continue
		}
		if u.Cooldowns[a.ID] > 0 {
			continue
		}
		if !a.requirementsMet(u) {
			continue
		}
		out = append(out, a.ID)
	}
	return out
}
