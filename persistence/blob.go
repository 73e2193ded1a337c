// Package persistence serializes and restores the runtime state of units in
// an in-progress battle, the same JSON-envelope-with-checksum shape as
// savesystem.go but narrowed to a single flat blob instead of a registry of
// per-subsystem chunks, since this engine's persisted surface is unit
// instances only: current resources, position, cooldowns, unlocked talents,
// equipped items, experience, and level.
package persistence

import "tacticalcore/ids"

// CurrentBlobVersion is bumped whenever Blob's shape changes incompatibly.
const CurrentBlobVersion = 1

// ItemSnapshot is the minimal record needed to re-equip a unit: the item's
// catalog ID. Name/Bonuses are asset data, reloaded from the catalog the
// caller already has rather than duplicated into every save file.
type ItemSnapshot struct {
	Slot   string `json:"slot"`
	ItemID string `json:"item_id"`
}

// UnitSnapshot captures everything spec'd as unit runtime state: current
// resource pools, board position, per-action cooldowns, unlocked talents,
// equipped items, and experience/level progress.
type UnitSnapshot struct {
	ID ids.UnitID `json:"id"`

	PositionX int `json:"position_x"`
	PositionY int `json:"position_y"`

	HP   int `json:"hp"`
	MP   int `json:"mp"`
	AP   int `json:"ap"`
	Rage int `json:"rage"`
	Kwan int `json:"kwan"`

	Cooldowns       map[ids.ActionID]int `json:"cooldowns,omitempty"`
	UnlockedTalents []ids.TalentID       `json:"unlocked_talents,omitempty"`
	EquippedItems   []ItemSnapshot       `json:"equipped_items,omitempty"`

	Experience int `json:"experience"`
	Level      int `json:"level"`

	TalentPointsAvailable int `json:"talent_points_available"`
	TalentPointsSpent     int `json:"talent_points_spent"`

	Alive bool `json:"alive"`
}

// Blob is the full persisted state of one battle in progress.
type Blob struct {
	SaveID       string         `json:"save_id"`
	Version      int            `json:"version"`
	Timestamp    string         `json:"timestamp"`
	ActiveUnitID ids.UnitID     `json:"active_unit_id,omitempty"`
	Units        []UnitSnapshot `json:"units"`
	RNGSeed      *int64         `json:"rng_seed,omitempty"`
	Checksum     string         `json:"checksum,omitempty"`
}
