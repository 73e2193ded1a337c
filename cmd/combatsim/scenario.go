package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"tacticalcore/actions"
	"tacticalcore/battle"
	"tacticalcore/effects"
	"tacticalcore/engineconfig"
	"tacticalcore/enginelog"
	"tacticalcore/events"
	"tacticalcore/grid"
	"tacticalcore/ids"
	"tacticalcore/units"
)

// squadConfig describes one side's starting units for a scenario, the same
// shape tactical/combatsim/cmd's UnitConfig serves for its scenario builder,
// narrowed to the fields this engine's grid/template model needs.
type squadConfig struct {
	faction ids.FactionID
	count   int
	row     int
}

// scenario is one scripted matchup: two squads, a row separation, and a
// shared action set every unit can use.
type scenario struct {
	name      string
	width     int
	height    int
	attacker  squadConfig
	defender  squadConfig
}

// Squads are placed on adjacent rows, column-aligned, so every unit with a
// counterpart in the opposing row starts within strike's range-1 reach: this
// driver scripts combat resolution only, not approach movement (no "move"
// action is registered in buildRegistry), so a scenario must start units
// already in range of a target.
func defaultScenarios() []scenario {
	return []scenario{
		{
			name: "3v3 skirmish", width: 8, height: 6,
			attacker: squadConfig{faction: "attacker", count: 3, row: 0},
			defender: squadConfig{faction: "defender", count: 3, row: 1},
		},
		{
			name: "1v1 duel", width: 6, height: 6,
			attacker: squadConfig{faction: "attacker", count: 1, row: 0},
			defender: squadConfig{faction: "defender", count: 1, row: 1},
		},
		{
			name: "5v3 lopsided", width: 10, height: 6,
			attacker: squadConfig{faction: "attacker", count: 5, row: 0},
			defender: squadConfig{faction: "defender", count: 3, row: 1},
		},
	}
}

func fighterTemplate() units.Template {
	return units.Template{
		Name:       "Fighter",
		Base:       units.NewAttributes(10, 4, 5, 5, 5, 5, 5, 5, 10),
		MaxHP:      30, MaxMP: 10, MaxAP: 6, MaxRage: 10, MaxKwan: 10,
		MovePoints: 4,
		Hotkeys:    [units.HotkeySlotCount]units.HotkeySlot{0: {ActionID: "strike"}},
	}
}

func buildRegistry() *actions.Registry {
	registry := actions.NewRegistry()
	registry.Register(&actions.Action{
		ID: "strike", Name: "Strike", Kind: actions.Attack,
		Targeting: actions.Targeting{Range: 1, TargetType: actions.TargetEnemy, MaxTargets: 1},
		Cost:      actions.Cost{AP: 2},
		Effects:   []effects.Effect{effects.Damage{Magnitude: 8, DamageType: units.Physical, Source: "strike"}},
		Cooldown:  0,
	})
	return registry
}

// buildBattle places both squads on a fresh grid and starts the initiative
// order, returning a ready-to-drive battle.Context. cfg overrides the
// battle's turn cap and event history size; pass engineconfig.Default() for
// the engine's built-in values.
func buildBattle(s scenario, log *logrus.Logger, cfg engineconfig.EngineConfig) (*battle.Context, error) {
	if log == nil {
		log = enginelog.Default()
	}
	g := grid.New(s.width, s.height)
	registry := buildRegistry()
	bus := events.New(log)
	ctx := battle.NewContext(g, registry, bus, log)
	ctx.ApplyConfig(cfg)

	if err := placeSquad(ctx, s.attacker); err != nil {
		return nil, fmt.Errorf("combatsim: placing attacker squad: %w", err)
	}
	if err := placeSquad(ctx, s.defender); err != nil {
		return nil, fmt.Errorf("combatsim: placing defender squad: %w", err)
	}

	ctx.StartBattle()
	return ctx, nil
}

func placeSquad(ctx *battle.Context, cfg squadConfig) error {
	tmpl := fighterTemplate()
	for i := 0; i < cfg.count; i++ {
		id := ids.UnitID(fmt.Sprintf("%s-%d", cfg.faction, i))
		u := units.NewFromTemplate(id, cfg.faction, tmpl)
		pos := grid.Position{X: i, Y: cfg.row}
		if err := ctx.AddUnit(u, pos); err != nil {
			return err
		}
	}
	return nil
}
