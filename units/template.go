package units

import "tacticalcore/ids"

// HotkeySlot binds one of a unit's 8 hotkey slots to an action and its
// default target hint.
type HotkeySlot struct {
	ActionID       ids.ActionID
	DefaultTargets []ids.UnitID
}

const HotkeySlotCount = 8

// Template is the immutable data a unit instance is built from: base
// attributes, resource maxima, starting talents, hotkey bindings.
type Template struct {
	Name            string
	Base            Attributes
	MaxHP, MaxMP    int
	MaxAP           int
	MaxRage, MaxKwan int
	MovePoints      int
	// AttackRange is the unit's innate reach, consulted by actions/validate.go
	// as the effective range for any action that doesn't declare its own
	// Targeting.Range.
	AttackRange     int
	StartingTalents []ids.TalentID
	StartingItems   []Item
	Hotkeys         [HotkeySlotCount]HotkeySlot
}

// TalentPoints tracks spend/refund bookkeeping separate from the unlocked set.
type TalentPoints struct {
	Available int
	Spent     int
}

// Instance is the mutable runtime state of one unit in battle.
type Instance struct {
	ID      ids.UnitID
	Faction ids.FactionID
	Name    string

	Base       Attributes
	Resources  Resources
	Equipment  Equipment
	Modifiers  []StatModifier
	Statuses   []Status

	Talents      map[ids.TalentID]bool
	TalentPoints TalentPoints
	Cooldowns    map[ids.ActionID]int
	Hotkeys      [HotkeySlotCount]HotkeySlot

	MovePoints          int
	MovePointsRemaining int
	AttackRange         int

	Experience int
	Level      int

	InitiativeBonus int

	Alive bool
}

// NewFromTemplate instantiates a unit from an immutable template, combined
// with freshly initialized mutable runtime state.
func NewFromTemplate(id ids.UnitID, faction ids.FactionID, tmpl Template) *Instance {
	talents := make(map[ids.TalentID]bool, len(tmpl.StartingTalents))
	for _, t := range tmpl.StartingTalents {
		talents[t] = true
	}
	inst := &Instance{
		ID:                  id,
		Faction:             faction,
		Name:                tmpl.Name,
		Base:                tmpl.Base,
		Resources:           NewResources(tmpl.MaxHP, tmpl.MaxMP, tmpl.MaxAP, tmpl.MaxRage, tmpl.MaxKwan),
		Talents:             talents,
		Cooldowns:           make(map[ids.ActionID]int),
		Hotkeys:             tmpl.Hotkeys,
		MovePoints:          tmpl.MovePoints,
		MovePointsRemaining: tmpl.MovePoints,
		AttackRange:         tmpl.AttackRange,
		Level:               1,
		Alive:               true,
	}
	if len(tmpl.StartingItems) > 0 {
		inst.Equipment.Equip(SlotWeapon, &tmpl.StartingItems[0])
	}
	return inst
}

// Initiative is speed plus any per-action/per-turn bonus accrued.
func (u *Instance) Initiative() int {
	return u.Attribute(Speed) + u.InitiativeBonus
}
