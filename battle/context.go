// Package battle owns the grid, unit table, action queue, registry, and
// event bus for one battle instance, and drives the turn/round state
// machine that resolves player and AI intents into executed actions.
package battle

import (
	"fmt"
	"sort"

	"github.com/bytearena/ecs"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"

	"tacticalcore/actions"
	"tacticalcore/engineconfig"
	"tacticalcore/enginelog"
	"tacticalcore/events"
	"tacticalcore/grid"
	"tacticalcore/ids"
	"tacticalcore/queue"
	"tacticalcore/units"
)

// battleIDAlphabet avoids visually ambiguous characters. Save-blob ids are
// separate: persistence generates them as UUIDs.
const battleIDAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZabcdefghjkmnpqrstvwxyz"

// NewID generates a short random identifier for a battle instance, used by
// callers that need to correlate a Context with external logs or save data.
func NewID() string {
	id, err := gonanoid.Generate(battleIDAlphabet, 12)
	if err != nil {
		// Generate only fails on a bad alphabet/length, which is a
		// programming error, not a runtime condition to recover from.
		panic(fmt.Sprintf("battle: generating id: %v", err))
	}
	return id
}

// Context is the single owner of all mutable battle state: nothing here is
// a package-level global, and every facade operation takes a *Context.
type Context struct {
	id       string
	grid     *grid.Grid
	unitTbl  map[ids.UnitID]*units.Instance
	registry *actions.Registry
	queue    *queue.Queue
	bus      *events.Bus
	log      *logrus.Logger

	order       []ids.UnitID
	activeIndex int
	round       int
	turnCap     int

	state  State
	mode   Mode
	winner ids.FactionID

	// roster records each unit's faction as an ECS component; faction queries
	// scan its entities rather than unitTbl; unitTbl remains the source of truth for
	// everything keyed by a single unit id.
	roster          *ecs.Manager
	factionComp     *ecs.Component
	rosterEntityFor map[ids.UnitID]*ecs.Entity
}

// factionMember is the component payload attached to each roster entity.
type factionMember struct {
	unitID  ids.UnitID
	faction ids.FactionID
}

// NewContext constructs an empty battle bound to g, registry, and bus.
func NewContext(g *grid.Grid, registry *actions.Registry, bus *events.Bus, log *logrus.Logger) *Context {
	if log == nil {
		log = enginelog.Default()
	}
	roster := ecs.NewManager()
	return &Context{
		id: NewID(), grid: g, unitTbl: map[ids.UnitID]*units.Instance{}, registry: registry,
		queue: queue.New(), bus: bus, log: log, turnCap: engineconfig.Default().TurnCap, state: Idle,
		roster: roster, factionComp: roster.NewComponent(), rosterEntityFor: map[ids.UnitID]*ecs.Entity{},
	}
}

// ID returns this battle's generated identifier.
func (c *Context) ID() string { return c.id }

// ApplyConfig overrides this battle's turn cap and enables the event bus's
// history ring buffer per cfg, in place of the defaults NewContext starts
// with. Call it once, before StartBattle.
func (c *Context) ApplyConfig(cfg engineconfig.EngineConfig) {
	c.turnCap = cfg.TurnCap
	c.bus.EnableHistory(cfg.EventRingBufferSize)
}

// AddUnit places a unit on the grid at pos and adds it to the unit table.
func (c *Context) AddUnit(u *units.Instance, pos grid.Position) error {
	if err := c.grid.Occupy(pos, u.ID); err != nil {
		return fmt.Errorf("battle: placing unit %s: %w", u.ID, err)
	}
	c.unitTbl[u.ID] = u
	entity := c.roster.NewEntity().AddComponent(c.factionComp, factionMember{unitID: u.ID, faction: u.Faction})
	c.rosterEntityFor[u.ID] = entity
	return nil
}

// RemoveUnit drops u from the roster index, used once a unit's death has
// been fully resolved and nothing will query its faction membership again.
// The grid occupancy and unitTbl entry are untouched; callers that want a
// unit gone entirely still free its grid cell themselves.
func (c *Context) RemoveUnit(id ids.UnitID) {
	entity, ok := c.rosterEntityFor[id]
	if !ok {
		return
	}
	c.roster.DisposeEntity(entity)
	delete(c.rosterEntityFor, id)
}

// UnitIDsInFaction returns every roster-indexed unit id belonging to
// faction, queried through the roster's ECS tag rather than scanning
// unitTbl. Order is unspecified.
func (c *Context) UnitIDsInFaction(faction ids.FactionID) []ids.UnitID {
	tag := ecs.BuildTag(c.factionComp)
	var out []ids.UnitID
	for _, result := range c.roster.Query(tag) {
		member := result.Components[c.factionComp].(factionMember)
		if member.faction == faction {
			out = append(out, member.unitID)
		}
	}
	return out
}

// --- actions.World implementation ---

func (c *Context) Grid() *grid.Grid { return c.grid }

func (c *Context) UnitByID(id ids.UnitID) (*units.Instance, bool) {
	u, ok := c.unitTbl[id]
	return u, ok
}

func (c *Context) PositionOf(id ids.UnitID) (grid.Position, bool) {
	return c.grid.FindUnit(id)
}

func (c *Context) AllUnitIDs() []ids.UnitID {
	out := make([]ids.UnitID, 0, len(c.unitTbl))
	for id := range c.unitTbl {
		out = append(out, id)
	}
	return out
}

// Registry returns the action registry this battle was constructed with.
func (c *Context) Registry() *actions.Registry { return c.registry }

// Queue returns the owned action queue.
func (c *Context) Queue() *queue.Queue { return c.queue }

// Bus returns the owned event bus.
func (c *Context) Bus() *events.Bus { return c.bus }

// State returns the controller's current turn/battle state.
func (c *Context) State() State { return c.state }

// Mode returns the current interaction sub-state.
func (c *Context) Mode() Mode { return c.mode }

// ActiveUnit returns the unit id whose turn slot is currently active.
func (c *Context) ActiveUnit() (ids.UnitID, bool) {
	if c.activeIndex < 0 || c.activeIndex >= len(c.order) {
		return "", false
	}
	return c.order[c.activeIndex], true
}

// Winner returns the surviving faction once the battle is over.
func (c *Context) Winner() ids.FactionID { return c.winner }

// Round returns the current round number (1-indexed).
func (c *Context) Round() int { return c.round }

// initiativeSnapshot returns every unit's current initiative (dead units
// included), used
// both for round ordering and timeline resolution.
func (c *Context) initiativeSnapshot() map[ids.UnitID]int {
	out := make(map[ids.UnitID]int, len(c.unitTbl))
	for id, u := range c.unitTbl {
		out[id] = u.Initiative()
	}
	return out
}

// buildRoundOrder sorts every living unit by initiative, descending (higher
// acts earlier), tie-broken by unit id for determinism.
func (c *Context) buildRoundOrder() {
	order := make([]ids.UnitID, 0, len(c.unitTbl))
	for id, u := range c.unitTbl {
		if u.Alive {
			order = append(order, id)
		}
	}
	sort.Slice(order, func(i, j int) bool {
		ii, ij := c.unitTbl[order[i]].Initiative(), c.unitTbl[order[j]].Initiative()
		if ii != ij {
			return ii > ij
		}
		return order[i] < order[j]
	})
	c.order = order
}
