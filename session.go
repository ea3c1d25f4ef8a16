package dragmerge

// session is the single drag record a Controller owns for its whole life.
// It is reset, never replaced.
type session struct {
	mode DragMode

	// Card drag payload.
	card    CardToken
	hasCard bool
	preview PreviewHandle

	// Unit drag payload. unit is a non-owning reference.
	unit             *FieldUnit
	originalPosition Vec3
	// reverting is set between a failed EndUnitDrag and ResolvePendingDrag.
	reverting bool
	// dropPointer is where the pending unit drop happened. A claimed drop
	// settles the unit on the tile under it.
	dropPointer Vec2

	lastDrop    DropOutcome
	mergeTarget *FieldUnit
}

// reset returns the session to DragNone. The last drop outcome survives; it
// is cleared explicitly by clearDrop.
func (s *session) reset() {
	s.mode = DragNone
	s.card = CardToken{}
	s.hasCard = false
	s.preview = 0
	s.unit = nil
	s.originalPosition = Vec3{}
	s.reverting = false
	s.dropPointer = Vec2{}
}

func (s *session) clearDrop() {
	s.lastDrop = DropNone
	s.mergeTarget = nil
}

// SessionState is a copy of the drag session for inspection.
type SessionState struct {
	Mode DragMode
	// Card is set only while Mode is DragCard.
	Card    CardToken
	HasCard bool
	// Unit and OriginalPosition are set only while Mode is DragUnit.
	Unit             *FieldUnit
	OriginalPosition Vec3
	// Reverting is true while a failed unit drop waits for ResolvePendingDrag.
	// Mode still reports DragUnit during that window.
	Reverting bool

	LastDrop    DropOutcome
	MergeTarget *FieldUnit
}

func (s *session) state() SessionState {
	return SessionState{
		Mode:             s.mode,
		Card:             s.card,
		HasCard:          s.hasCard,
		Unit:             s.unit,
		OriginalPosition: s.originalPosition,
		Reverting:        s.reverting,
		LastDrop:         s.lastDrop,
		MergeTarget:      s.mergeTarget,
	}
}

// violation describes the first broken session invariant, or "" if none.
func (s *session) violation() string {
	switch {
	case s.hasCard && s.unit != nil:
		return "card token and dragged unit both set"
	case s.mode == DragNone && (s.hasCard || s.unit != nil || s.reverting):
		return "idle session still holds a payload"
	case s.mode == DragCard && (!s.hasCard || s.preview == 0):
		return "card drag without token or preview"
	case s.mode == DragUnit && s.unit == nil:
		return "unit drag without a unit"
	case s.reverting && s.mode != DragUnit:
		return "revert pending outside a unit drag"
	}
	return ""
}
