package dragmerge

import "errors"

// Drop and drag failures. Operations never panic on these; they come back
// wrapped in a result so callers can test them with errors.Is.
var (
	// ErrRejectedConcurrentDrag is returned when a drag begins while another
	// one is still active (including a unit drag waiting on its revert).
	ErrRejectedConcurrentDrag = errors.New("dragmerge: a drag is already active")

	// ErrInvalidSource is returned for a nil or uninitialized unit, a card
	// without a prefab, or an end call that does not match the active drag.
	ErrInvalidSource = errors.New("dragmerge: invalid drag source")

	// ErrNoValidTarget is returned when the drop ray hit nothing usable.
	ErrNoValidTarget = errors.New("dragmerge: no valid drop target")

	// ErrMergeMismatch is returned when id or level differ.
	ErrMergeMismatch = errors.New("dragmerge: merge mismatch")

	// ErrInvalidZone is returned for route tiles and occupied tiles.
	ErrInvalidZone = errors.New("dragmerge: invalid placement zone")

	// ErrRevertPending is returned by EndUnitDrag while the previous drop
	// is still waiting for ResolvePendingDrag.
	ErrRevertPending = errors.New("dragmerge: unit drop already pending")
)
