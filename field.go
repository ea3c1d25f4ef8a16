package dragmerge

// CardToken is a card lifted out of the hand for dragging.
type CardToken struct {
	CardID int
	Level  int
	// Prefab names the unit template the card spawns and the preview it
	// shows. A token without one cannot be dragged.
	Prefab string
}

// Key returns the card's merge identity.
func (c CardToken) Key() MergeKey {
	return MergeKey{ID: c.CardID, Level: c.Level}
}

func (c CardToken) valid() bool {
	return c.Prefab != "" && c.Level >= 1
}

// Tile is a placement cell on the board.
type Tile struct {
	Kind     TileKind
	Occupied bool
	Col, Row int

	node     *Node
	occupant *FieldUnit
}

// Node returns the tile's scene node, nil for tiles not on a Board.
func (t *Tile) Node() *Node {
	return t.node
}

// Occupant returns the unit standing on the tile, if any.
func (t *Tile) Occupant() *FieldUnit {
	return t.occupant
}

// Center returns the board-space center of the tile on the board plane.
func (t *Tile) Center() Vec3 {
	if t.node == nil {
		return Vec3{}
	}
	x, y := t.node.LocalToWorld(t.node.Width/2, t.node.Height/2)
	return Vec3{X: x, Y: y}
}

// FieldUnit is a placed battlefield unit. The scene owns it; drag sessions
// only hold a reference.
type FieldUnit struct {
	UnitID int
	Level  int
	// Initialized is false until the unit has finished spawning. An
	// uninitialized unit is never a drag source or merge target.
	Initialized bool
	// Kinematic is set while the unit is being dragged so nothing else moves it.
	Kinematic bool

	// OnLevelUp, if set, runs after a merge raised the level. Stat scaling
	// lives here.
	OnLevelUp func(u *FieldUnit, from, to int)

	position  Vec3
	node      *Node
	tile      *Tile
	destroyed bool
}

// NewFieldUnit creates a detached, initialized unit at pos. Units on a Board
// are created through Board.SpawnUnit instead.
func NewFieldUnit(unitID, level int, pos Vec3) *FieldUnit {
	return &FieldUnit{UnitID: unitID, Level: level, Initialized: true, position: pos}
}

// Key returns the unit's merge identity.
func (u *FieldUnit) Key() MergeKey {
	return MergeKey{ID: u.UnitID, Level: u.Level}
}

// Position returns the unit's board-space position.
func (u *FieldUnit) Position() Vec3 {
	return u.position
}

// SetPosition moves the unit and its scene node.
func (u *FieldUnit) SetPosition(p Vec3) {
	u.position = p
	if u.node != nil {
		u.node.SetPosition(p.X, p.Y)
		u.node.Elevation = p.Z
	}
}

// LevelUp raises the unit one level and returns the new level.
func (u *FieldUnit) LevelUp() int {
	from := u.Level
	u.Level = ComputeLevelUp(from)
	if u.OnLevelUp != nil {
		u.OnLevelUp(u, from, u.Level)
	}
	return u.Level
}

// Node returns the unit's scene node, nil for detached units.
func (u *FieldUnit) Node() *Node {
	return u.node
}

// Tile returns the tile the unit was placed on.
func (u *FieldUnit) Tile() *Tile {
	return u.tile
}

// Destroyed reports whether the unit was removed from play.
func (u *FieldUnit) Destroyed() bool {
	return u.destroyed
}

// usable reports whether the unit can take part in a drag or merge.
func (u *FieldUnit) usable() bool {
	return u != nil && u.Initialized && !u.destroyed
}
