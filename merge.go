package dragmerge

import "fmt"

// MergeKey is the identity a merge compares: template id and level.
type MergeKey struct {
	ID    int
	Level int
}

// CanMerge reports whether two pieces may merge. Both id and level must match
// exactly; there is no partial credit across levels or ids.
func CanMerge(a, b MergeKey) bool {
	return a.ID == b.ID && a.Level == b.Level
}

// CheckMerge is CanMerge with the reason attached. The returned error wraps
// ErrMergeMismatch.
func CheckMerge(target, source MergeKey) error {
	switch {
	case target.ID != source.ID:
		return fmt.Errorf("%w: id %d != %d", ErrMergeMismatch, target.ID, source.ID)
	case target.Level != source.Level:
		return fmt.Errorf("%w: level %d != %d", ErrMergeMismatch, target.Level, source.Level)
	}
	return nil
}

// ComputeLevelUp returns the level a merge target reaches.
func ComputeLevelUp(level int) int {
	return level + 1
}
