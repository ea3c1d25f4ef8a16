package dragmerge

import "fmt"

// IsValidPlacement reports whether a new unit may be placed on tile: it must
// be an empty spawn tile. The drag preview and the drop both call this, so
// the tint shown while dragging always matches what the drop will do.
func IsValidPlacement(tile *Tile) bool {
	return CheckPlacement(tile) == nil
}

// CheckPlacement is IsValidPlacement with the reason attached.
func CheckPlacement(tile *Tile) error {
	if tile == nil {
		return ErrNoValidTarget
	}
	if tile.Kind != TileSpawn {
		return fmt.Errorf("%w: %s tile at (%d,%d)", ErrInvalidZone, tile.Kind, tile.Col, tile.Row)
	}
	if tile.Occupied {
		return fmt.Errorf("%w: tile (%d,%d) is occupied", ErrInvalidZone, tile.Col, tile.Row)
	}
	return nil
}
