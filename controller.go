package dragmerge

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Deps are the collaborators a Controller drives. All four are required.
type Deps struct {
	Query    SpatialQuery
	Previews PreviewRenderer
	Hand     Hand
	World    World
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger drag transitions are traced to at debug level.
// The default logger discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithPlacementOffset sets how far above the hit tile a dragged unit floats.
func WithPlacementOffset(offset float64) Option {
	return func(c *Controller) { c.placementOffset = offset }
}

// WithOutcomeSink forwards every DropEvent to sink.
func WithOutcomeSink(sink OutcomeSink) Option {
	return func(c *Controller) { c.sink = sink }
}

// WithMetrics replaces the default global-meter counters. nil disables them.
func WithMetrics(m *Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// CardDropResult is the result of EndCardDrag.
type CardDropResult struct {
	Outcome PlacementOutcome
	// Unit is the spawned unit (PlacementPlaced) or the upgraded one
	// (PlacementUpgrade).
	Unit *FieldUnit
	Err  error
}

// UnitDropStatus is the provisional result of EndUnitDrag.
type UnitDropStatus uint8

const (
	UnitDropFailed  UnitDropStatus = iota // rejected; the session was not touched
	UnitDropMerged                        // target leveled up, dragged unit destroyed
	UnitDropPending                       // no merge; revert waits for ResolvePendingDrag
)

func (s UnitDropStatus) String() string {
	switch s {
	case UnitDropFailed:
		return "failed"
	case UnitDropMerged:
		return "merged"
	case UnitDropPending:
		return "pending"
	default:
		return "unknown"
	}
}

// UnitDropResult is the result of EndUnitDrag.
type UnitDropResult struct {
	Status UnitDropStatus
	Target *FieldUnit
	Err    error
}

// Controller runs the drag session: one card or unit drag at a time, from
// begin through update to drop, merge, placement or revert.
//
// A Controller is not safe for concurrent use. Every call is expected on the
// game's update goroutine; the single-session rule is the only concurrency
// control.
type Controller struct {
	s      session
	revert RevertScheduler

	query    SpatialQuery
	previews PreviewRenderer
	hand     Hand
	world    World

	placementOffset float64
	log             zerolog.Logger
	metrics         *Metrics
	sink            OutcomeSink
}

// NewController creates a controller with an idle session.
func NewController(deps Deps, opts ...Option) *Controller {
	if deps.Query == nil || deps.Previews == nil || deps.Hand == nil || deps.World == nil {
		panic("dragmerge: NewController needs Query, Previews, Hand and World")
	}
	c := &Controller{
		query:           deps.Query,
		previews:        deps.Previews,
		hand:            deps.Hand,
		world:           deps.World,
		placementOffset: DefaultConfig().PlacementOffset,
		log:             zerolog.Nop(),
		metrics:         defaultMetrics(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mode returns the active drag mode. A unit drag waiting on its revert still
// reports DragUnit.
func (c *Controller) Mode() DragMode {
	return c.s.mode
}

// State returns a copy of the session.
func (c *Controller) State() SessionState {
	return c.s.state()
}

// LastDrop returns the last drop outcome and the unit it merged into, if any.
func (c *Controller) LastDrop() (DropOutcome, *FieldUnit) {
	return c.s.lastDrop, c.s.mergeTarget
}

// RevertPending reports whether a failed unit drop waits for ResolvePendingDrag.
func (c *Controller) RevertPending() bool {
	return c.s.reverting
}

// --- Begin ---

// BeginCardDrag starts dragging card and creates its preview.
func (c *Controller) BeginCardDrag(card CardToken) error {
	if c.s.mode != DragNone {
		return ErrRejectedConcurrentDrag
	}
	if !card.valid() {
		return fmt.Errorf("%w: card %d has no prefab or level", ErrInvalidSource, card.CardID)
	}
	h := c.previews.CreatePreview(card)
	if h == 0 {
		return fmt.Errorf("%w: no preview for card %d", ErrInvalidSource, card.CardID)
	}
	c.s.clearDrop()
	c.s.mode = DragCard
	c.s.card = card
	c.s.hasCard = true
	c.s.preview = h
	c.checkSession("BeginCardDrag")

	c.metrics.dragBegun(DragCard)
	c.log.Debug().Int("card_id", card.CardID).Int("level", card.Level).Msg("card drag begun")
	return nil
}

// TryBeginCardDrag is BeginCardDrag reporting only success.
func (c *Controller) TryBeginCardDrag(card CardToken) bool {
	return c.BeginCardDrag(card) == nil
}

// BeginUnitDrag picks up a placed unit. Its position is captured so a failed
// drop can put it back, and it is made kinematic for the drag.
func (c *Controller) BeginUnitDrag(u *FieldUnit) error {
	if c.s.mode != DragNone {
		return ErrRejectedConcurrentDrag
	}
	if u == nil {
		return fmt.Errorf("%w: nil unit", ErrInvalidSource)
	}
	if !u.usable() {
		return fmt.Errorf("%w: unit %d is not initialized", ErrInvalidSource, u.UnitID)
	}
	c.s.clearDrop()
	c.s.mode = DragUnit
	c.s.unit = u
	c.s.originalPosition = u.Position()
	u.Kinematic = true
	c.checkSession("BeginUnitDrag")

	c.metrics.dragBegun(DragUnit)
	c.log.Debug().Int("unit_id", u.UnitID).Int("level", u.Level).Msg("unit drag begun")
	return nil
}

// TryBeginUnitDrag is BeginUnitDrag reporting only success.
func (c *Controller) TryBeginUnitDrag(u *FieldUnit) bool {
	return c.BeginUnitDrag(u) == nil
}

// --- Update ---

// UpdateDrag follows the pointer. A card drag moves its preview onto the tile
// under the pointer and tints it by what a drop there would do; a
// unit drag moves the unit over the tile under the pointer and stays put
// when the pointer leaves the tiles. Nothing persistent changes here.
func (c *Controller) UpdateDrag(pointer Vec2) {
	switch c.s.mode {
	case DragCard:
		hits := c.query.Raycast(pointer, LayerAll)
		if len(hits) == 0 {
			c.previews.Reposition(c.s.preview, HiddenPreviewPosition)
			return
		}
		p := hits[0].Point
		if hit, ok := FirstTile(hits); ok {
			p = hit.Point
		}
		c.previews.Reposition(c.s.preview, p)
		// Tinted by what is on top, which is what the drop acts on.
		c.previews.SetValidityTint(c.s.preview, cardDropValid(c.s.card, hits[0]))
	case DragUnit:
		if c.s.reverting {
			return
		}
		hit, ok := FirstTile(c.query.Raycast(pointer, LayerTiles))
		if !ok {
			return
		}
		p := hit.Point
		p.Z += c.placementOffset
		c.s.unit.SetPosition(p)
	}
}

// cardDropValid reports whether dropping card on the first hit would succeed.
// It follows the same rules as dropCard.
func cardDropValid(card CardToken, first Hit) bool {
	switch e := first.Entity.(type) {
	case *FieldUnit:
		return e.usable() && CanMerge(e.Key(), card.Key())
	case *Tile:
		return IsValidPlacement(e)
	}
	return false
}

// --- End ---

// EndCardDrag drops the dragged card. A unit under the pointer is a merge
// candidate; a tile is a placement candidate. The preview is destroyed and
// the session reset whatever the outcome. The hand is charged exactly once
// on success.
func (c *Controller) EndCardDrag(pointer Vec2) CardDropResult {
	if c.s.mode != DragCard {
		return CardDropResult{Outcome: PlacementInvalidZone, Err: fmt.Errorf("%w: no card drag active", ErrInvalidSource)}
	}
	card := c.s.card
	res := c.dropCard(card, pointer)

	c.previews.Destroy(c.s.preview)
	c.s.reset()
	if res.Outcome.Succeeded() {
		c.s.lastDrop = DropSuccess
		if res.Outcome == PlacementUpgrade {
			c.s.mergeTarget = res.Unit
		}
	} else {
		c.s.lastDrop = DropFailed
	}
	c.checkSession("EndCardDrag")

	c.metrics.dropFinished(DragCard, res.Outcome.String())
	c.log.Debug().Int("card_id", card.CardID).Stringer("outcome", res.Outcome).AnErr("reason", res.Err).Msg("card dropped")
	c.emit(DropEvent{
		Phase:     PhaseCardDrop,
		Mode:      DragCard,
		Outcome:   c.s.lastDrop,
		Placement: res.Outcome,
		Card:      card,
		Unit:      res.Unit,
		Target:    c.s.mergeTarget,
		Pointer:   pointer,
		Err:       res.Err,
	})
	return res
}

func (c *Controller) dropCard(card CardToken, pointer Vec2) CardDropResult {
	hits := c.query.Raycast(pointer, LayerAll)
	if len(hits) == 0 {
		return CardDropResult{Outcome: PlacementInvalidZone, Err: ErrNoValidTarget}
	}
	switch e := hits[0].Entity.(type) {
	case *FieldUnit:
		if !e.usable() {
			return CardDropResult{Outcome: PlacementInvalidZone, Err: fmt.Errorf("%w: unit %d is not initialized", ErrNoValidTarget, e.UnitID)}
		}
		if err := CheckMerge(e.Key(), card.Key()); err != nil {
			return CardDropResult{Outcome: PlacementInvalidZone, Err: err}
		}
		e.LevelUp()
		c.hand.ConsumeCard(card.CardID)
		return CardDropResult{Outcome: PlacementUpgrade, Unit: e}
	case *Tile:
		if err := CheckPlacement(e); err != nil {
			return CardDropResult{Outcome: PlacementInvalidZone, Err: err}
		}
		u := c.world.SpawnUnit(card, e)
		if u == nil {
			return CardDropResult{Outcome: PlacementInvalidZone, Err: fmt.Errorf("%w: spawn failed at (%d,%d)", ErrInvalidZone, e.Col, e.Row)}
		}
		c.hand.ConsumeCard(card.CardID)
		return CardDropResult{Outcome: PlacementPlaced, Unit: u}
	default:
		return CardDropResult{Outcome: PlacementInvalidZone, Err: ErrNoValidTarget}
	}
}

// TryEndCardDrag is EndCardDrag reporting only the outcome.
func (c *Controller) TryEndCardDrag(pointer Vec2) PlacementOutcome {
	return c.EndCardDrag(pointer).Outcome
}

// EndUnitDrag drops the dragged unit. Every unit along the pointer ray is
// considered in ray order and the first usable one other than the dragged
// unit is the merge target, nearest or not.
//
// A merge completes immediately. Anything else leaves the session in
// DragUnit with a revert scheduled: the unit keeps its kinematic flag and
// its drop position until ResolvePendingDrag, so other systems get one full
// update cycle to ClaimDrop it first.
func (c *Controller) EndUnitDrag(pointer Vec2) UnitDropResult {
	if c.s.mode != DragUnit {
		return UnitDropResult{Status: UnitDropFailed, Err: fmt.Errorf("%w: no unit drag active", ErrInvalidSource)}
	}
	if c.s.reverting {
		return UnitDropResult{Status: UnitDropFailed, Err: ErrRevertPending}
	}
	dragged := c.s.unit
	if !dragged.usable() {
		// Removed from play mid-drag; nothing left to put back.
		c.s.reset()
		c.s.lastDrop = DropFailed
		return UnitDropResult{Status: UnitDropFailed, Err: fmt.Errorf("%w: dragged unit was destroyed", ErrInvalidSource)}
	}

	target := c.mergeTargetAt(pointer, dragged)
	var err error
	if target == nil {
		err = ErrNoValidTarget
	} else {
		err = CheckMerge(target.Key(), dragged.Key())
	}

	if err != nil {
		c.s.reverting = true
		c.s.dropPointer = pointer
		c.revert.ScheduleRevert(c.finishPendingUnitDrop)
		c.checkSession("EndUnitDrag")

		c.log.Debug().Int("unit_id", dragged.UnitID).AnErr("reason", err).Msg("unit drop pending revert")
		c.emit(DropEvent{
			Phase:   PhaseUnitDrop,
			Mode:    DragUnit,
			Outcome: DropFailed,
			Pending: true,
			Unit:    dragged,
			Pointer: pointer,
			Err:     err,
		})
		return UnitDropResult{Status: UnitDropPending, Err: err}
	}

	target.LevelUp()
	c.world.DestroyUnit(dragged)
	c.s.lastDrop = DropSuccess
	c.s.mergeTarget = target
	dragged.Kinematic = false
	c.s.reset()
	c.checkSession("EndUnitDrag")

	c.metrics.dropFinished(DragUnit, UnitDropMerged.String())
	c.log.Debug().Int("unit_id", target.UnitID).Int("level", target.Level).Msg("unit merged")
	c.emit(DropEvent{
		Phase:   PhaseUnitDrop,
		Mode:    DragUnit,
		Outcome: DropSuccess,
		Unit:    dragged,
		Target:  target,
		Pointer: pointer,
	})
	return UnitDropResult{Status: UnitDropMerged, Target: target}
}

func (c *Controller) mergeTargetAt(pointer Vec2, dragged *FieldUnit) *FieldUnit {
	for _, h := range c.query.Raycast(pointer, LayerUnits) {
		u := h.Unit()
		if u == nil || u == dragged || !u.usable() {
			continue
		}
		return u
	}
	return nil
}

// TryEndUnitDrag is EndUnitDrag reporting whether the unit merged.
func (c *Controller) TryEndUnitDrag(pointer Vec2) bool {
	return c.EndUnitDrag(pointer).Status == UnitDropMerged
}

// --- Deferred resolution ---

// ClaimDrop lets another handler take a pending unit drop. Instead of
// snapping back, the unit then settles on the tile under the drop pointer
// through World.MoveUnit, or returns to its own tile when that one cannot
// take it. Reports false when no unit drop is pending.
func (c *Controller) ClaimDrop(target *FieldUnit) bool {
	if c.s.mode != DragUnit || !c.s.reverting {
		return false
	}
	c.s.lastDrop = DropSuccess
	c.s.mergeTarget = target
	c.log.Debug().Msg("pending unit drop claimed")
	return true
}

// ResolvePendingDrag finishes a pending unit drop. Call it once per update
// cycle after every system that may ClaimDrop has run. It returns DropNone
// when nothing was pending, DropFailed when the unit snapped back, and
// DropSuccess when the drop had been claimed.
func (c *Controller) ResolvePendingDrag() DropOutcome {
	if !c.revert.RunPending() {
		return DropNone
	}
	return c.s.lastDrop
}

func (c *Controller) finishPendingUnitDrop() {
	if c.s.mode != DragUnit || !c.s.reverting {
		return
	}
	u := c.s.unit
	if c.s.lastDrop != DropSuccess {
		if !u.destroyed {
			u.SetPosition(c.s.originalPosition)
		}
		c.s.lastDrop = DropFailed
		c.metrics.unitReverted()
	} else if !u.destroyed && !c.settleClaimed(u) {
		// The drop cell cannot take the unit; it keeps its own tile.
		u.SetPosition(c.s.originalPosition)
	}
	if !u.destroyed {
		u.Kinematic = false
	}
	c.s.reset()
	c.checkSession("ResolvePendingDrag")

	c.metrics.dropFinished(DragUnit, c.s.lastDrop.String())
	c.log.Debug().Int("unit_id", u.UnitID).Stringer("outcome", c.s.lastDrop).Msg("unit drop resolved")
	c.emit(DropEvent{
		Phase:   PhaseUnitRevert,
		Mode:    DragUnit,
		Outcome: c.s.lastDrop,
		Unit:    u,
		Target:  c.s.mergeTarget,
	})
}

// settleClaimed moves a claimed unit onto the tile under the drop pointer.
func (c *Controller) settleClaimed(u *FieldUnit) bool {
	hit, ok := FirstTile(c.query.Raycast(c.s.dropPointer, LayerTiles))
	if !ok {
		return false
	}
	return c.world.MoveUnit(u, hit.Tile())
}

// --- Cancel ---

// CancelAllDrags ends any drag immediately. A card drag loses its preview; a
// unit drag snaps back to where it started, skipping the deferred revert.
// The last drop outcome is always cleared. Safe to call repeatedly.
func (c *Controller) CancelAllDrags() {
	mode := c.s.mode
	card, unit := c.s.card, c.s.unit

	switch mode {
	case DragCard:
		c.previews.Destroy(c.s.preview)
	case DragUnit:
		c.revert.CancelPending()
		if !unit.destroyed {
			unit.SetPosition(c.s.originalPosition)
			unit.Kinematic = false
		}
	}
	c.s.reset()
	c.s.clearDrop()
	c.checkSession("CancelAllDrags")

	if mode == DragNone {
		return
	}
	c.metrics.dropFinished(mode, "cancelled")
	c.log.Debug().Stringer("mode", mode).Msg("drag cancelled")
	c.emit(DropEvent{
		Phase: PhaseCancel,
		Mode:  mode,
		Card:  card,
		Unit:  unit,
	})
}

func (c *Controller) emit(e DropEvent) {
	if c.sink != nil {
		c.sink.EmitDrop(e)
	}
}

// checkSession panics on a broken session in debug mode. Otherwise the
// session is reset to idle and any scheduled revert dropped, so one bad
// transition cannot lock out every later drag.
func (c *Controller) checkSession(op string) {
	if globalDebug {
		debugCheckSession(&c.s, op)
		return
	}
	v := c.s.violation()
	if v == "" {
		return
	}
	c.log.Warn().Str("op", op).Str("violation", v).Stringer("mode", c.s.mode).Msg("drag session repaired")
	if u := c.s.unit; u != nil && !u.destroyed {
		u.Kinematic = false
	}
	c.revert.CancelPending()
	c.s.reset()
}
