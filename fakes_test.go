package dragmerge

// Test doubles for the controller's collaborators. Each records what the
// controller asked of it.

type fakeQuery struct {
	hits  map[Vec2][]Hit // all layers, topmost first
	masks []LayerMask
}

func newFakeQuery() *fakeQuery {
	return &fakeQuery{hits: make(map[Vec2][]Hit)}
}

// at places hits under pointer p, topmost first.
func (q *fakeQuery) at(p Vec2, hits ...Hit) {
	q.hits[p] = hits
}

func (q *fakeQuery) Raycast(p Vec2, mask LayerMask) []Hit {
	q.masks = append(q.masks, mask)
	var out []Hit
	for _, h := range q.hits[p] {
		if layerOf(h)&mask != 0 {
			out = append(out, h)
		}
	}
	return out
}

func layerOf(h Hit) LayerMask {
	switch h.Entity.(type) {
	case *Tile:
		return LayerTiles
	case *FieldUnit:
		return LayerUnits
	}
	return 0
}

func tileHit(t *Tile, p Vec2) Hit {
	return Hit{Entity: t, Point: Vec3{X: p.X, Y: p.Y}}
}

func unitHit(u *FieldUnit, p Vec2) Hit {
	return Hit{Entity: u, Point: Vec3{X: p.X, Y: p.Y, Z: u.Position().Z}}
}

type fakePreviews struct {
	next       PreviewHandle
	live       map[PreviewHandle]bool
	created    int
	destroyed  int
	positions  []Vec3
	tints      []bool
	failCreate bool
}

func newFakePreviews() *fakePreviews {
	return &fakePreviews{live: make(map[PreviewHandle]bool)}
}

func (p *fakePreviews) CreatePreview(card CardToken) PreviewHandle {
	if p.failCreate {
		return 0
	}
	p.next++
	p.live[p.next] = true
	p.created++
	return p.next
}

func (p *fakePreviews) Reposition(h PreviewHandle, pos Vec3) {
	if p.live[h] {
		p.positions = append(p.positions, pos)
	}
}

func (p *fakePreviews) SetValidityTint(h PreviewHandle, valid bool) {
	if p.live[h] {
		p.tints = append(p.tints, valid)
	}
}

func (p *fakePreviews) Destroy(h PreviewHandle) {
	if p.live[h] {
		delete(p.live, h)
		p.destroyed++
	}
}

func (p *fakePreviews) lastPosition() Vec3 {
	if len(p.positions) == 0 {
		return Vec3{}
	}
	return p.positions[len(p.positions)-1]
}

func (p *fakePreviews) lastTint() bool {
	return len(p.tints) > 0 && p.tints[len(p.tints)-1]
}

type fakeWorld struct {
	spawned   []*FieldUnit
	destroyed []*FieldUnit
	moved     map[*FieldUnit]*Tile
	failSpawn bool
	failMove  bool
}

func (w *fakeWorld) SpawnUnit(card CardToken, tile *Tile) *FieldUnit {
	if w.failSpawn {
		return nil
	}
	u := NewFieldUnit(card.CardID, card.Level, tile.Center())
	u.tile = tile
	tile.Occupied = true
	w.spawned = append(w.spawned, u)
	return u
}

func (w *fakeWorld) DestroyUnit(u *FieldUnit) {
	u.destroyed = true
	w.destroyed = append(w.destroyed, u)
}

func (w *fakeWorld) MoveUnit(u *FieldUnit, to *Tile) bool {
	if w.failMove {
		return false
	}
	if w.moved == nil {
		w.moved = make(map[*FieldUnit]*Tile)
	}
	if u.tile != nil {
		u.tile.Occupied = false
	}
	u.tile = to
	to.Occupied = true
	u.SetPosition(Vec3{X: float64(to.Col), Y: float64(to.Row)})
	w.moved[u] = to
	return true
}

type recordingSink struct {
	events []DropEvent
}

func (s *recordingSink) EmitDrop(e DropEvent) {
	s.events = append(s.events, e)
}

func (s *recordingSink) phases() []DropPhase {
	out := make([]DropPhase, len(s.events))
	for i, e := range s.events {
		out[i] = e.Phase
	}
	return out
}
