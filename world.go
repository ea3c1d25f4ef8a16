package dragmerge

// PreviewHandle identifies a card drag preview. Zero is never a valid handle.
type PreviewHandle uint32

// HiddenPreviewPosition parks a preview off the board while the pointer is
// over nothing placeable.
var HiddenPreviewPosition = Vec3{Z: -1000}

// PreviewRenderer draws the ghost of a card while it is dragged.
type PreviewRenderer interface {
	// CreatePreview returns 0 if the card has no usable visual.
	CreatePreview(card CardToken) PreviewHandle
	Reposition(h PreviewHandle, p Vec3)
	SetValidityTint(h PreviewHandle, valid bool)
	Destroy(h PreviewHandle)
}

// Hand is the card inventory a successful card drop consumes from.
type Hand interface {
	ConsumeCard(cardID int)
}

// World creates and removes field units.
type World interface {
	// SpawnUnit places a new unit for card on tile and returns it, or nil
	// if the unit could not be created.
	SpawnUnit(card CardToken, tile *Tile) *FieldUnit
	// DestroyUnit removes a unit consumed by a merge.
	DestroyUnit(u *FieldUnit)
	// MoveUnit settles u on tile to, moving its occupancy there. It reports
	// false, leaving u untouched, if to cannot take it.
	MoveUnit(u *FieldUnit, to *Tile) bool
}

// DropPhase says which step of a drag produced a DropEvent.
type DropPhase uint8

const (
	PhaseCardDrop   DropPhase = iota // EndCardDrag finished
	PhaseUnitDrop                    // EndUnitDrag finished (merged or pending)
	PhaseUnitRevert                  // ResolvePendingDrag finished a pending unit drop
	PhaseCancel                      // CancelAllDrags ended an active drag
)

func (p DropPhase) String() string {
	switch p {
	case PhaseCardDrop:
		return "card_drop"
	case PhaseUnitDrop:
		return "unit_drop"
	case PhaseUnitRevert:
		return "unit_revert"
	case PhaseCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// DropEvent reports the end of a drag step to an OutcomeSink.
type DropEvent struct {
	Phase   DropPhase
	Mode    DragMode
	Outcome DropOutcome
	// Pending is true for a unit drop that failed provisionally and waits
	// for ResolvePendingDrag. Handlers may claim it with Controller.ClaimDrop.
	Pending   bool
	Placement PlacementOutcome
	Card      CardToken
	// Unit is the spawned unit for card placements and the dragged unit
	// for unit drags.
	Unit *FieldUnit
	// Target is the unit that was leveled up, if any.
	Target *FieldUnit
	// Pointer is the screen position of the drop.
	Pointer Vec2
	Err     error
}

// OutcomeSink receives every DropEvent a Controller produces.
type OutcomeSink interface {
	EmitDrop(e DropEvent)
}
