// Package engineconfig loads the battle engine's own tunable constants (turn
// cap, AI recommendation deadline, event history size) from a JSON file, the
// same read-with-defaults shape config/usersettings.go and
// templates/readdata.go use for user/game data, but returned as a plain
// value instead of a package-level global — every battle.Context is built
// from its own owned EngineConfig rather than a shared mutable singleton.
package engineconfig

import (
	"encoding/json"
	"fmt"
	"os"
)

// EngineConfig holds the engine-internal tunables a caller may override.
type EngineConfig struct {
	// TurnCap forces a draw after this many rounds (engine default: 100).
	TurnCap int `json:"turn_cap"`

	// AITimeoutMS is the soft deadline an embedding application should give
	// an external ai.Recommender before giving up on its suggestion; the
	// core itself never blocks on a Recommender call, so this value is
	// advisory only, for the caller driving that call.
	AITimeoutMS int `json:"ai_timeout_ms"`

	// EventRingBufferSize bounds events.Bus's recent-event history; 0
	// disables history tracking entirely.
	EventRingBufferSize int `json:"event_ring_buffer_size"`
}

// Default returns the engine's built-in tunables.
func Default() EngineConfig {
	return EngineConfig{
		TurnCap:             100,
		AITimeoutMS:         250,
		EventRingBufferSize: 64,
	}
}

// Load reads path as JSON into an EngineConfig, filling any field missing or
// non-positive in the file with its default value. A missing file is not an
// error — Load returns Default() unchanged. A present-but-malformed file
// returns Default() alongside a non-nil error describing the parse failure,
// so a caller can choose to log it and proceed on defaults or fail startup.
func Load(path string) (EngineConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, nil
	}

	var file EngineConfig
	if err := json.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("engineconfig: parsing %s: %w", path, err)
	}

	if file.TurnCap > 0 {
		cfg.TurnCap = file.TurnCap
	}
	if file.AITimeoutMS > 0 {
		cfg.AITimeoutMS = file.AITimeoutMS
	}
	if file.EventRingBufferSize > 0 {
		cfg.EventRingBufferSize = file.EventRingBufferSize
	}
	return cfg, nil
}

// Save writes cfg to path as indented JSON.
func Save(path string, cfg EngineConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("engineconfig: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("engineconfig: writing %s: %w", path, err)
	}
	return nil
}
