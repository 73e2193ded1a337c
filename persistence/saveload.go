package persistence

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"tacticalcore/battle"
	"tacticalcore/grid"
	"tacticalcore/ids"
	"tacticalcore/units"
)

func slotName(slot units.EquipSlot) string {
	switch slot {
	case units.SlotWeapon:
		return "weapon"
	case units.SlotBody:
		return "body"
	case units.SlotAccessory:
		return "accessory"
	default:
		return "unknown"
	}
}

func parseSlot(name string) (units.EquipSlot, bool) {
	switch name {
	case "weapon":
		return units.SlotWeapon, true
	case "body":
		return units.SlotBody, true
	case "accessory":
		return units.SlotAccessory, true
	default:
		return 0, false
	}
}

// Capture builds a Blob from the current state of every unit in ctx. The
// units themselves are not mutated.
func Capture(ctx *battle.Context) Blob {
	unitIDs := ctx.AllUnitIDs()
	sort.Slice(unitIDs, func(i, j int) bool { return unitIDs[i] < unitIDs[j] })

	snapshots := make([]UnitSnapshot, 0, len(unitIDs))
	for _, id := range unitIDs {
		u, ok := ctx.UnitByID(id)
		if !ok {
			continue
		}
		pos, _ := ctx.PositionOf(id)
		snapshots = append(snapshots, snapshotUnit(u, pos))
	}

	active, _ := ctx.ActiveUnit()

	return Blob{
		SaveID:       uuid.New().String(),
		Version:      CurrentBlobVersion,
		Timestamp:    time.Now().Format(time.RFC3339),
		ActiveUnitID: active,
		Units:        snapshots,
	}
}

func snapshotUnit(u *units.Instance, pos grid.Position) UnitSnapshot {
	talents := make([]ids.TalentID, 0, len(u.Talents))
	for t, unlocked := range u.Talents {
		if unlocked {
			talents = append(talents, t)
		}
	}
	sort.Slice(talents, func(i, j int) bool { return talents[i] < talents[j] })

	cooldowns := make(map[ids.ActionID]int, len(u.Cooldowns))
	for actionID, turns := range u.Cooldowns {
		if turns > 0 {
			cooldowns[actionID] = turns
		}
	}

	var equipped []ItemSnapshot
	for _, slot := range []units.EquipSlot{units.SlotWeapon, units.SlotBody, units.SlotAccessory} {
		if item := u.Equipment.Get(slot); item != nil {
			equipped = append(equipped, ItemSnapshot{Slot: slotName(slot), ItemID: item.ID})
		}
	}

	return UnitSnapshot{
		ID:                    u.ID,
		PositionX:             pos.X,
		PositionY:             pos.Y,
		HP:                    u.Resources.Pool(units.HP).Current,
		MP:                    u.Resources.Pool(units.MP).Current,
		AP:                    u.Resources.Pool(units.AP).Current,
		Rage:                  u.Resources.Pool(units.Rage).Current,
		Kwan:                  u.Resources.Pool(units.Kwan).Current,
		Cooldowns:             cooldowns,
		UnlockedTalents:       talents,
		EquippedItems:         equipped,
		Experience:            u.Experience,
		Level:                 u.Level,
		TalentPointsAvailable: u.TalentPoints.Available,
		TalentPointsSpent:     u.TalentPoints.Spent,
		Alive:                 u.Alive,
	}
}

// Restore applies a Blob onto units already present in ctx (constructed from
// their templates by the caller beforehand; static template data such as
// base attributes and hotkeys is not part of the persisted surface and is
// assumed reconstructible from the unit's template). itemCatalog resolves an
// equipped item's saved ID back into the *units.Item the caller's data
// package loaded; a snapshot referencing an ID absent from itemCatalog is
// skipped, not an error, so a save file outlives removed/renamed items.
func Restore(blob Blob, ctx *battle.Context, itemCatalog map[string]*units.Item) error {
	for _, snap := range blob.Units {
		u, ok := ctx.UnitByID(snap.ID)
		if !ok {
			return fmt.Errorf("persistence: save references unknown unit %q", snap.ID)
		}
		if err := restoreUnit(u, snap, ctx, itemCatalog); err != nil {
			return err
		}
	}
	return nil
}

func restoreUnit(u *units.Instance, snap UnitSnapshot, ctx *battle.Context, itemCatalog map[string]*units.Item) error {
	u.Resources.Pool(units.HP).Current = clamp(snap.HP, u.Resources.Pool(units.HP).Max)
	u.Resources.Pool(units.MP).Current = clamp(snap.MP, u.Resources.Pool(units.MP).Max)
	u.Resources.Pool(units.AP).Current = clamp(snap.AP, u.Resources.Pool(units.AP).Max)
	u.Resources.Pool(units.Rage).Current = clamp(snap.Rage, u.Resources.Pool(units.Rage).Max)
	u.Resources.Pool(units.Kwan).Current = clamp(snap.Kwan, u.Resources.Pool(units.Kwan).Max)

	if from, ok := ctx.Grid().FindUnit(snap.ID); ok {
		to := grid.Position{X: snap.PositionX, Y: snap.PositionY}
		if from != to {
			if err := ctx.Grid().Move(snap.ID, from, to); err != nil {
				return fmt.Errorf("persistence: restoring position for %q: %w", snap.ID, err)
			}
		}
	}

	u.Cooldowns = make(map[ids.ActionID]int, len(snap.Cooldowns))
	for actionID, turns := range snap.Cooldowns {
		u.Cooldowns[actionID] = turns
	}

	u.Talents = make(map[ids.TalentID]bool, len(snap.UnlockedTalents))
	for _, t := range snap.UnlockedTalents {
		u.Talents[t] = true
	}

	for _, eq := range snap.EquippedItems {
		slot, ok := parseSlot(eq.Slot)
		if !ok {
			continue
		}
		if item, ok := itemCatalog[eq.ItemID]; ok {
			u.Equipment.Equip(slot, item)
		}
	}

	u.Experience = snap.Experience
	u.Level = snap.Level
	u.TalentPoints.Available = snap.TalentPointsAvailable
	u.TalentPoints.Spent = snap.TalentPointsSpent
	u.Alive = snap.Alive

	return nil
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// WriteFile marshals blob with a checksum over its units and writes it to
// path using a write-tmp-then-rename sequence with a .bak backup of any
// existing file, so a crash mid-write never leaves a half-written save.
func WriteFile(path string, blob Blob) error {
	unitsBytes, err := json.Marshal(blob.Units)
	if err != nil {
		return fmt.Errorf("persistence: marshal units for checksum: %w", err)
	}
	sum := sha256.Sum256(unitsBytes)
	blob.Checksum = hex.EncodeToString(sum[:])

	out, err := json.MarshalIndent(blob, "", "  ")
	if err != nil {
		return fmt.Errorf("persistence: marshal save blob: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("persistence: create save directory: %w", err)
		}
	}

	tmpPath := path + ".tmp"
	bakPath := path + ".bak"

	if err := os.WriteFile(tmpPath, out, 0o644); err != nil {
		return fmt.Errorf("persistence: write temp save file: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		os.Remove(bakPath)
		if err := os.Rename(path, bakPath); err != nil {
			os.Remove(bakPath)
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("persistence: finalize save file: %w", err)
	}
	return nil
}

// ReadFile loads and checksum-verifies a save file written by WriteFile.
func ReadFile(path string) (Blob, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Blob{}, fmt.Errorf("persistence: read save file: %w", err)
	}

	var blob Blob
	if err := json.Unmarshal(raw, &blob); err != nil {
		return Blob{}, fmt.Errorf("persistence: unmarshal save file: %w", err)
	}

	if blob.Version > CurrentBlobVersion {
		return Blob{}, fmt.Errorf("persistence: save version %d is newer than supported version %d", blob.Version, CurrentBlobVersion)
	}

	if blob.Checksum != "" {
		unitsBytes, err := json.Marshal(blob.Units)
		if err != nil {
			return Blob{}, fmt.Errorf("persistence: marshal units for checksum verification: %w", err)
		}
		sum := sha256.Sum256(unitsBytes)
		expected := hex.EncodeToString(sum[:])
		if blob.Checksum != expected {
			return Blob{}, fmt.Errorf("persistence: checksum mismatch, save file may be corrupted")
		}
	}

	return blob, nil
}
