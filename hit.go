package dragmerge

// HitShape is a custom hit region in a node's local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// Hit is one intersection of a pointer ray with the board.
type Hit struct {
	// Entity is the *Tile or *FieldUnit owning the node.
	Entity any
	Node   *Node
	// Point is where the ray met the node: the board-space pointer position
	// at the node's elevation.
	Point Vec3
}

// Unit returns the hit field unit, or nil if the hit was something else.
func (h Hit) Unit() *FieldUnit {
	u, _ := h.Entity.(*FieldUnit)
	return u
}

// Tile returns the hit tile, or nil if the hit was something else.
func (h Hit) Tile() *Tile {
	t, _ := h.Entity.(*Tile)
	return t
}

// SpatialQuery resolves what a pointer is over. Hits come back ordered by
// ray distance, nearest first, and only include nodes on layers in mask.
type SpatialQuery interface {
	Raycast(pointer Vec2, mask LayerMask) []Hit
}

// FirstTile returns the first tile hit in ray order.
func FirstTile(hits []Hit) (Hit, bool) {
	for _, h := range hits {
		if h.Tile() != nil {
			return h, true
		}
	}
	return Hit{}, false
}

// nodeContainsLocal tests (lx, ly) against the node's HitShape, falling back
// to its sprite rectangle. Containers without a HitShape are never hit.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Type != NodeTypeSprite || (n.Width == 0 && n.Height == 0) {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending interactable nodes on a layer in mask. Invisible or
// non-interactable subtrees are skipped whole.
func collectInteractable(n *Node, mask LayerMask, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.Layer&mask != 0 && (n.HitShape != nil || n.Type != NodeTypeContainer) {
		buf = append(buf, n)
	}
	for _, child := range n.orderedChildren() {
		buf = collectInteractable(child, mask, buf)
	}
	return buf
}

// hitTestAll appends every node under (wx, wy) to out, topmost first.
// World transforms must be current.
func hitTestAll(root *Node, wx, wy float64, mask LayerMask, scratch []*Node, out []Hit) ([]*Node, []Hit) {
	scratch = collectInteractable(root, mask, scratch[:0])
	for i := len(scratch) - 1; i >= 0; i-- {
		n := scratch[i]
		lx, ly := n.WorldToLocal(wx, wy)
		if nodeContainsLocal(n, lx, ly) {
			out = append(out, Hit{
				Entity: n.UserData,
				Node:   n,
				Point:  Vec3{X: wx, Y: wy, Z: n.Elevation},
			})
		}
	}
	return scratch, out
}
