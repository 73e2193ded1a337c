// Command combatsim drives scripted battles to completion using the default
// recommender for every unit's turn and reports aggregate win rates, the
// headless analogue of tactical/combatsim/cmd's scenario runner adapted to
// this engine's battle/manager/ai packages.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"tacticalcore/ai"
	"tacticalcore/battle"
	"tacticalcore/engineconfig"
	"tacticalcore/persistence"
)

func main() {
	iterations := flag.Int("iterations", 100, "battles to run per scenario")
	verbose := flag.Bool("verbose", false, "print each action as it executes")
	scenarioFilter := flag.String("scenario", "all", "scenario name substring to run, or 'all'")
	savePath := flag.String("save", "", "if set, write the final battle of the last scenario run to this path")
	configPath := flag.String("config", "", "if set, load engine tunables (turn cap, event history size) from this JSON file")
	flag.Parse()

	cfg := engineconfig.Default()
	if *configPath != "" {
		loaded, err := engineconfig.Load(*configPath)
		if err != nil {
			log.Fatalf("combatsim: loading engine config: %v", err)
		}
		cfg = loaded
	}

	scenarios := defaultScenarios()
	recommender := ai.DefaultRecommender{}

	var lastCtx *battle.Context

	for _, s := range scenarios {
		if *scenarioFilter != "all" && !strings.Contains(strings.ToLower(s.name), strings.ToLower(*scenarioFilter)) {
			continue
		}

		agg := newAggregateResult(s.name, *iterations)
		for i := 0; i < *iterations; i++ {
			ctx, err := buildBattle(s, nil, cfg)
			if err != nil {
				log.Fatalf("combatsim: building scenario %q: %v", s.name, err)
			}
			agg.add(runOnce(ctx, recommender, *verbose && i == 0))
			lastCtx = ctx
		}

		fmt.Print(agg.format())
		fmt.Println()
	}

	if *savePath != "" && lastCtx != nil {
		blob := persistence.Capture(lastCtx)
		if err := persistence.WriteFile(*savePath, blob); err != nil {
			log.Fatalf("combatsim: writing save file: %v", err)
		}
		fmt.Printf("wrote final battle state to %s\n", *savePath)
	}
}
