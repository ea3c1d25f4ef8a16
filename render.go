package dragmerge

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// tileInset leaves a grid line between neighbouring tiles.
const tileInset = 1

// Draw renders tiles, units and previews as tinted rectangles through the
// board camera, clipped to its viewport. Rotation is ignored; sprites are drawn axis-aligned and
// lifted by their elevation.
func (b *Board) Draw(screen *ebiten.Image) {
	updateWorldTransform(b.root, identityTransform, 1, false)
	dst := screen
	if vp := b.camera.Viewport; vp.Width > 0 && vp.Height > 0 {
		r := image.Rect(int(vp.X), int(vp.Y), int(math.Ceil(vp.X+vp.Width)), int(math.Ceil(vp.Y+vp.Height)))
		dst = screen.SubImage(r).(*ebiten.Image)
	}
	b.drawNode(dst, b.root, b.camera.computeViewMatrix())
}

func (b *Board) drawNode(dst *ebiten.Image, n *Node, view [6]float64) {
	if !n.Visible {
		return
	}
	if n.Type == NodeTypeSprite && n.worldAlpha > 0 {
		m := multiplyAffine(view, n.worldTransform)
		x, y := transformPoint(m, 0, 0)
		w := n.Width * math.Hypot(m[0], m[1])
		h := n.Height * math.Hypot(m[2], m[3])
		y -= n.Elevation * b.camera.Zoom
		inset := 0.0
		if n.Layer == LayerTiles {
			inset = tileInset
		}
		vector.DrawFilledRect(dst,
			float32(x+inset), float32(y+inset), float32(w-2*inset), float32(h-2*inset),
			n.Color.toRGBA(n.worldAlpha), false)
	}
	for _, child := range n.orderedChildren() {
		b.drawNode(dst, child, view)
	}
}
