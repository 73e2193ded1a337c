package units

// DamageType classifies incoming damage for defense-stat lookup.
type DamageType int

const (
	Physical DamageType = iota
	Magical
	Spiritual
	True
)

// defenseFor maps a damage type to the attribute that mitigates it. Spiritual
// damage is mitigated by Spirit, Magical by Wonder, Physical by Fortitude;
// True damage ignores defense entirely.
func (u *Instance) defenseFor(dtype DamageType) int {
	switch dtype {
	case Physical:
		return u.Attribute(Fortitude)
	case Magical:
		return u.Attribute(Wonder)
	case Spiritual:
		return u.Attribute(Spirit)
	default:
		return 0
	}
}

// TakeDamage applies max(1, amount-defense) HP loss (exactly amount for True
// damage), clears alive when HP reaches zero, and returns the HP actually lost.
func (u *Instance) TakeDamage(amount int, dtype DamageType) int {
	if !u.Alive {
		return 0
	}
	dealt := amount
	if dtype != True {
		dealt = amount - u.defenseFor(dtype)
		if dealt < 1 {
			dealt = 1
		}
	}
	lost := -u.Resources.Pool(HP).Adjust(-dealt)
	if u.Resources.Pool(HP).Current == 0 {
		u.Alive = false
	}
	return lost
}

// Heal raises HP by amount, clamped at max, and returns the HP actually restored.
func (u *Instance) Heal(amount int) int {
	return u.Resources.Pool(HP).Adjust(amount)
}

// BelowMaxHP reports whether the unit can still receive healing.
func (u *Instance) BelowMaxHP() bool {
	hp := u.Resources.Pool(HP)
	return hp.Current < hp.Max
}

// TurnStart applies the per-turn lifecycle reset: AP restored to Speed,
// movement restored to its max, cooldowns decremented, status/modifier
// durations decremented with expired entries removed.
func (u *Instance) TurnStart() {
	ap := u.Resources.Pool(AP)
	ap.Max = u.Attribute(Speed)
	ap.Current = ap.Max
	u.MovePointsRemaining = u.MovePoints
	for id, remaining := range u.Cooldowns {
		if remaining <= 0 {
			delete(u.Cooldowns, id)
			continue
		}
		u.Cooldowns[id] = remaining - 1
		if u.Cooldowns[id] == 0 {
			delete(u.Cooldowns, id)
		}
	}
	u.Modifiers = decayModifiers(u.Modifiers)
	u.Statuses = decayStatuses(u.Statuses)
}

// GrantExperience adds xp and performs level-ups per an increasing
// per-level threshold. Each level gained grants one talent point.
func (u *Instance) GrantExperience(xp int) {
	u.Experience += xp
	for u.Experience >= levelThreshold(u.Level) {
		u.Experience -= levelThreshold(u.Level)
		u.Level++
		u.TalentPoints.Available++
	}
}

func levelThreshold(level int) int {
	return 100 * level
}
