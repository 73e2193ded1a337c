package units

// StatModifier is a single active, temporary attribute modifier.
type StatModifier struct {
	Attr           Attribute
	Delta          int // applied as a percentage of base when Percent is true
	Percent        bool
	RemainingTurns int // -1 = permanent, 0 = expired
	Source         string
}

// StatusName is a free-form status tag (e.g. "stunned"); interpretation is
// delegated to the battle/turn controller.
type StatusName string

// Status is a named temporary condition distinct from a stat modifier.
type Status struct {
	Name           StatusName
	RemainingTurns int
	Source         string
}

// effectiveAttribute folds base + equipment bonuses + active modifiers for attr.
func (u *Instance) effectiveAttribute(attr Attribute) int {
	base := float64(u.Base.Get(attr) + u.Equipment.bonus(attr))
	flat := 0
	percentTotal := 0.0
	for _, m := range u.Modifiers {
		if m.Attr != attr {
			continue
		}
		if m.Percent {
			percentTotal += float64(m.Delta) / 100.0
		} else {
			flat += m.Delta
		}
	}
	return int(base*(1+percentTotal)) + flat
}

// Attribute returns the effective (base + equipment + modifiers) value of
// attr. Always recomputed, never cached past a mutation.
func (u *Instance) Attribute(attr Attribute) int {
	return u.effectiveAttribute(attr)
}

// HasStatus reports whether the unit currently carries the named status.
func (u *Instance) HasStatus(name StatusName) bool {
	for _, s := range u.Statuses {
		if s.Name == name {
			return true
		}
	}
	return false
}

// AddModifier pushes a new stat modifier onto the unit's active list.
func (u *Instance) AddModifier(m StatModifier) {
	u.Modifiers = append(u.Modifiers, m)
}

// AddStatus pushes a new named status onto the unit's active list.
func (u *Instance) AddStatus(s Status) {
	u.Statuses = append(u.Statuses, s)
}

// decayModifiers decrements every modifier's remaining-turns counter and
// drops expired entries at turn start. -1 is permanent and is left untouched.
func decayModifiers(mods []StatModifier) []StatModifier {
	out := mods[:0]
	for _, m := range mods {
		if m.RemainingTurns < 0 {
			out = append(out, m)
			continue
		}
		m.RemainingTurns--
		if m.RemainingTurns > 0 {
			out = append(out, m)
		}
	}
	return out
}

func decayStatuses(statuses []Status) []Status {
	out := statuses[:0]
	for _, s := range statuses {
		if s.RemainingTurns < 0 {
			out = append(out, s)
			continue
		}
		s.RemainingTurns--
		if s.RemainingTurns > 0 {
			out = append(out, s)
		}
	}
	return out
}
