// Package ids defines the small set of identifier types shared across the
// tactical combat packages, kept separate to avoid import cycles between
// grid, units, actions, and effects.
package ids

// UnitID stably identifies a unit instance for the lifetime of a battle.
type UnitID string

// ActionID identifies a registered action definition.
type ActionID string

// TalentID identifies a talent unlock.
type TalentID string

// FactionID identifies a side in a battle; ally/enemy classification is a
// simple equality/inequality comparison on this value.
type FactionID string
