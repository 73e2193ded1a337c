package actions

import (
	"tacticalcore/grid"
	"tacticalcore/units"
)

// CanExecute checks, in order: dead caster, resource affordability,
// requirements, cooldown, target-count, range, line-of-sight, target-type
// compatibility, and AoE-center passability. Returns (ok, reason).
func (a *Action) CanExecute(caster *units.Instance, targets []Target, world World) (bool, ReasonCode) {
	if caster == nil || !caster.Alive {
		return false, ReasonDeadCaster
	}
	if !caster.Resources.CanAfford(a.Cost.AsResourceCost()) {
		return false, ReasonInsufficientResource
	}
	if !a.requirementsMet(caster) {
		return false, ReasonRequirementsNotMet
	}
	if caster.Cooldowns[a.ID] > 0 {
		return false, ReasonOnCooldown
	}
	if a.Targeting.MaxTargets > 0 && len(targets) > a.Targeting.MaxTargets {
		return false, ReasonTooManyTargets
	}

	casterPos, _ := world.PositionOf(caster.ID)
	for _, t := range targets {
		pos := t.Tile
		if !t.IsTile {
			p, ok := world.PositionOf(t.UnitID)
			if !ok {
				return false, ReasonUnknownTarget
			}
			pos = p
		}
		if r := effectiveRange(a, caster); r > 0 && casterPos.ManhattanDistance(pos) > r {
			return false, ReasonOutOfRange
		}
		if a.Targeting.RequiresLineOfSight && !hasLineOfSight(world, casterPos, pos) {
			return false, ReasonNoLineOfSight
		}
	}

	if ok, reason := a.checkTargetType(caster, targets, world); !ok {
		return false, reason
	}

	if a.Targeting.AoERadius > 0 && !a.Targeting.CanTargetEmpty {
		for _, t := range targets {
			pos := t.Tile
			if !t.IsTile {
				pos, _ = world.PositionOf(t.UnitID)
			}
			cell, ok := world.Grid().At(pos)
			if !ok || cell.Terrain.Impassable() {
				return false, ReasonInvalidAoECenter
			}
		}
	}

	return true, ReasonOK
}

// effectiveRange returns a's own declared range if it set one, otherwise
// falls back to caster's innate AttackRange. An action with neither is
// genuinely unlimited range (e.g. a global buff), same as before this
// fallback existed.
func effectiveRange(a *Action, caster *units.Instance) int {
	if a.Targeting.Range > 0 {
		return a.Targeting.Range
	}
	return caster.AttackRange
}

func (a *Action) requirementsMet(caster *units.Instance) bool {
	for attr, min := range a.Requirements.MinAttributes {
		if caster.Attribute(attr) < min {
			return false
		}
	}
	for _, talent := range a.Requirements.RequiredTalents {
		if !caster.Talents[talent] {
			return false
		}
	}
	return true
}

func (a *Action) checkTargetType(caster *units.Instance, targets []Target, world World) (bool, ReasonCode) {
	switch a.Targeting.TargetType {
	case TargetSelf:
		if len(targets) != 1 || targets[0].IsTile || targets[0].UnitID != caster.ID {
			return false, ReasonTargetTypeMismatch
		}
	case TargetAlly:
		for _, t := range targets {
			if t.IsTile {
				return false, ReasonTargetTypeMismatch
			}
			u, ok := world.UnitByID(t.UnitID)
			if !ok || u.Faction != caster.Faction {
				return false, ReasonTargetTypeMismatch
			}
		}
	case TargetEnemy:
		for _, t := range targets {
			if t.IsTile {
				return false, ReasonTargetTypeMismatch
			}
			u, ok := world.UnitByID(t.UnitID)
			if !ok || u.Faction == caster.Faction {
				return false, ReasonTargetTypeMismatch
			}
		}
	case TargetTile, TargetArea:
		for _, t := range targets {
			if !t.IsTile {
				return false, ReasonTargetTypeMismatch
			}
		}
	case TargetAny:
		// no restriction
	}
	return true, ReasonOK
}

// hasLineOfSight walks a Bresenham line from `from` to `to` and fails if any
// intermediate cell is impassable. It only needs to answer a yes/no gate for
// CanExecute, not render a field of view.
func hasLineOfSight(world World, from, to grid.Position) bool {
	x0, y0 := from.X, from.Y
	x1, y1 := to.X, to.Y
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if !(x0 == from.X && y0 == from.Y) && !(x0 == x1 && y0 == y1) {
			cell, ok := world.Grid().At(grid.Position{X: x0, Y: y0})
			if !ok || cell.Terrain.Impassable() {
				return false
			}
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
