package dragmerge

import (
	"fmt"

	"github.com/tanema/gween/ease"
)

// unitScale is a unit sprite's size relative to its tile.
const unitScale = 0.6

var (
	colorSpawnTile    = Color{0.30, 0.52, 0.32, 1}
	colorSpawnTileAlt = Color{0.27, 0.47, 0.29, 1}
	colorRouteTile    = Color{0.55, 0.45, 0.30, 1}

	unitPalette = []Color{
		{0.35, 0.55, 0.95, 1},
		{0.90, 0.35, 0.35, 1},
		{0.95, 0.80, 0.30, 1},
		{0.65, 0.40, 0.90, 1},
		{0.30, 0.85, 0.80, 1},
	}
)

// UnitColor returns the palette color units and cards with id are drawn in.
func UnitColor(id int) Color {
	if id < 0 {
		id = -id
	}
	return unitPalette[id%len(unitPalette)]
}

// Board is the battlefield: a grid of tiles with units on top, plus the
// layer card previews are drawn on. It answers the controller's spatial
// queries, spawns and destroys units, and renders card previews, so one
// Board fills the Query, World and Previews slots of Deps.
type Board struct {
	cfg    Config
	root   *Node
	tiles  *Node
	units  *Node
	ghosts *Node
	camera *Camera

	grid []*Tile
	live []*FieldUnit

	previews    map[PreviewHandle]*preview
	nextPreview PreviewHandle
	tweens      []*TweenGroup

	hitBuf []*Node
}

// NewBoard lays out cfg.BoardCols x cfg.BoardRows spawn tiles. Panics on an
// invalid config; LoadConfig has already validated anything it returns.
func NewBoard(cfg Config) *Board {
	if err := cfg.validate(); err != nil {
		panic("dragmerge: " + err.Error())
	}
	b := &Board{cfg: cfg, previews: make(map[PreviewHandle]*preview)}

	b.root = NewContainer("board")
	b.root.Interactable = true
	b.tiles = b.addLayer("tiles", LayerTiles, 0)
	b.units = b.addLayer("units", LayerUnits, 1)
	b.ghosts = b.addLayer("previews", LayerPreview, 2)

	ts := cfg.TileSize
	w, h := b.size()
	b.camera = newCamera(Rect{Width: w, Height: h})

	b.grid = make([]*Tile, 0, cfg.BoardCols*cfg.BoardRows)
	for row := 0; row < cfg.BoardRows; row++ {
		for col := 0; col < cfg.BoardCols; col++ {
			t := &Tile{Kind: TileSpawn, Col: col, Row: row}
			n := NewSprite(fmt.Sprintf("tile_%d_%d", col, row), ts, ts)
			n.SetPosition(float64(col)*ts, float64(row)*ts)
			n.Interactable = true
			n.Layer = LayerTiles
			n.UserData = t
			t.node = n
			b.tiles.AddChild(n)
			b.grid = append(b.grid, t)
			b.paintTile(t)
		}
	}
	updateWorldTransform(b.root, identityTransform, 1, false)
	return b
}

func (b *Board) addLayer(name string, layer LayerMask, z int) *Node {
	n := NewContainer(name)
	n.Interactable = layer != LayerPreview
	n.Layer = layer
	n.ZIndex = z
	b.root.AddChild(n)
	return n
}

func (b *Board) paintTile(t *Tile) {
	switch {
	case t.Kind == TileRoute:
		t.node.Color = colorRouteTile
	case (t.Col+t.Row)%2 == 0:
		t.node.Color = colorSpawnTile
	default:
		t.node.Color = colorSpawnTileAlt
	}
}

// Root returns the board's root node.
func (b *Board) Root() *Node {
	return b.root
}

// Camera returns the camera that maps pointer positions onto the board.
func (b *Board) Camera() *Camera {
	return b.camera
}

// Config returns the config the board was built with.
func (b *Board) Config() Config {
	return b.cfg
}

// Tile returns the tile at (col, row), or nil when out of range.
func (b *Board) Tile(col, row int) *Tile {
	if col < 0 || row < 0 || col >= b.cfg.BoardCols || row >= b.cfg.BoardRows {
		return nil
	}
	return b.grid[row*b.cfg.BoardCols+col]
}

// Tiles returns every tile in row-major order. MUST NOT be mutated.
func (b *Board) Tiles() []*Tile {
	return b.grid
}

// Units returns the units in play in spawn order. MUST NOT be mutated.
func (b *Board) Units() []*FieldUnit {
	return b.live
}

// SetTileKind changes a tile's kind. Reports false when out of range.
func (b *Board) SetTileKind(col, row int, kind TileKind) bool {
	t := b.Tile(col, row)
	if t == nil {
		return false
	}
	t.Kind = kind
	b.paintTile(t)
	return true
}

// PlaceUnit puts a new unit on (col, row) outside of any drag, for level
// setup and saves being restored. It follows the same rules as a card drop:
// the tile must be a free spawn tile.
func (b *Board) PlaceUnit(unitID, level, col, row int) (*FieldUnit, error) {
	t := b.Tile(col, row)
	if t == nil {
		return nil, fmt.Errorf("place unit: %w: no tile at (%d,%d)", ErrInvalidZone, col, row)
	}
	if err := CheckPlacement(t); err != nil {
		return nil, fmt.Errorf("place unit: %w", err)
	}
	u := b.SpawnUnit(CardToken{CardID: unitID, Level: level, Prefab: "unit"}, t)
	if u == nil {
		return nil, fmt.Errorf("place unit: %w: (%d,%d)", ErrInvalidZone, col, row)
	}
	return u, nil
}

// SpawnUnit creates a unit for card centred on tile and marks the tile
// occupied. Returns nil if tile does not belong to this board or is taken.
func (b *Board) SpawnUnit(card CardToken, tile *Tile) *FieldUnit {
	if tile == nil || tile.node == nil || tile.node.Parent != b.tiles || tile.occupant != nil {
		return nil
	}
	size := b.cfg.TileSize * unitScale
	n := NewSprite(fmt.Sprintf("unit_%d", card.CardID), size, size)
	n.SetPivot(size/2, size/2)
	n.HitShape = HitCircle{CenterX: size / 2, CenterY: size / 2, Radius: size / 2}
	n.Interactable = true
	n.Layer = LayerUnits
	n.Color = UnitColor(card.CardID)

	u := &FieldUnit{UnitID: card.CardID, Level: card.Level, node: n, tile: tile}
	n.UserData = u
	b.units.AddChild(n)
	u.SetPosition(tile.Center())

	tile.Occupied = true
	tile.occupant = u
	u.Initialized = true
	b.live = append(b.live, u)
	return u
}

// DestroyUnit removes u from play and frees its tile.
func (b *Board) DestroyUnit(u *FieldUnit) {
	if u == nil || u.destroyed {
		return
	}
	if t := u.tile; t != nil && t.occupant == u {
		t.occupant = nil
		t.Occupied = false
	}
	if u.node != nil {
		u.node.Dispose()
		u.node = nil
	}
	u.destroyed = true
	u.Kinematic = false
	for i, lu := range b.live {
		if lu == u {
			copy(b.live[i:], b.live[i+1:])
			b.live[len(b.live)-1] = nil
			b.live = b.live[:len(b.live)-1]
			break
		}
	}
}

// MoveUnit settles u on tile to, centred on it and back on the board plane,
// and moves its occupancy there. to must be a tile of this board that is
// either u's own or a free spawn tile.
func (b *Board) MoveUnit(u *FieldUnit, to *Tile) bool {
	if !u.usable() || u.node == nil || to == nil || to.node == nil || to.node.Parent != b.tiles {
		return false
	}
	if to != u.tile && !IsValidPlacement(to) {
		return false
	}
	if from := u.tile; from != nil && from.occupant == u {
		from.occupant = nil
		from.Occupied = false
	}
	to.occupant = u
	to.Occupied = true
	u.tile = to
	u.SetPosition(to.Center())
	return true
}

// SetViewport shows the board in the screen rectangle vp. A board larger
// than vp can be scrolled; the camera is kept inside the board. A board that
// fits is centred in vp.
func (b *Board) SetViewport(vp Rect) {
	cam := b.camera
	cam.Viewport = vp
	w, h := b.size()
	if w*cam.Zoom <= vp.Width && h*cam.Zoom <= vp.Height {
		cam.ClearBounds()
		cam.scrollTween = nil
		cam.X, cam.Y = w/2, h/2
	} else {
		cam.SetBounds(Rect{Width: w, Height: h})
		cam.clampToBounds()
	}
	cam.MarkDirty()
}

// SetZoom zooms the camera by z and re-applies the viewport rules, so
// zooming in on a board that fitted makes it scrollable. Non-positive values
// are ignored.
func (b *Board) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	b.camera.SetZoom(z)
	b.SetViewport(b.camera.Viewport)
}

// ScrollToTile eases the camera onto the centre of tile (col, row) over
// duration seconds. Reports false when out of range.
func (b *Board) ScrollToTile(col, row int, duration float32) bool {
	t := b.Tile(col, row)
	if t == nil {
		return false
	}
	c := t.Center()
	b.camera.ScrollTo(c.X, c.Y, duration, ease.OutQuad)
	return true
}

// ScreenPosition returns where board point p is drawn on screen, lifted by
// its height like the renderer lifts sprites.
func (b *Board) ScreenPosition(p Vec3) Vec2 {
	x, y := b.camera.WorldToScreen(p.X, p.Y)
	return Vec2{X: x, Y: y - p.Z*b.camera.Zoom}
}

func (b *Board) size() (w, h float64) {
	return float64(b.cfg.BoardCols) * b.cfg.TileSize, float64(b.cfg.BoardRows) * b.cfg.TileSize
}

// Raycast projects pointer through the camera and returns everything on a
// layer in mask under it, topmost first. Previews are never hit, and nothing
// is hit outside the viewport.
func (b *Board) Raycast(pointer Vec2, mask LayerMask) []Hit {
	if vp := b.camera.Viewport; vp.Width > 0 && vp.Height > 0 && !vp.Contains(pointer.X, pointer.Y) {
		return nil
	}
	updateWorldTransform(b.root, identityTransform, 1, false)
	wx, wy := b.camera.ScreenToWorld(pointer.X, pointer.Y)
	var hits []Hit
	b.hitBuf, hits = hitTestAll(b.root, wx, wy, mask&^LayerPreview, b.hitBuf, nil)
	return hits
}

// Update advances the camera and running tweens by dt seconds.
func (b *Board) Update(dt float32) {
	b.camera.update(dt)
	live := b.tweens[:0]
	for _, tw := range b.tweens {
		tw.Update(dt)
		if !tw.Done {
			live = append(live, tw)
		}
	}
	for i := len(live); i < len(b.tweens); i++ {
		b.tweens[i] = nil
	}
	b.tweens = live
}

func (b *Board) startTween(tw *TweenGroup) {
	b.tweens = append(b.tweens, tw)
}
