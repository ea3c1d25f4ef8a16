package dragmerge

import "github.com/tanema/gween/ease"

const (
	previewAlpha                = 0.6
	previewFadeDuration float32 = 0.1
	previewTintDuration float32 = 0.12
)

var (
	previewValidColor   = Color{0.35, 0.95, 0.45, 1}
	previewInvalidColor = Color{0.95, 0.30, 0.30, 1}
)

type preview struct {
	node   *Node
	tint   *TweenGroup
	valid  bool
	tinted bool
}

// CreatePreview adds a translucent ghost of card to the preview layer. It
// starts hidden until the first Reposition and fades in.
func (b *Board) CreatePreview(card CardToken) PreviewHandle {
	if !card.valid() {
		return 0
	}
	size := b.cfg.TileSize * unitScale
	n := NewSprite("preview_"+card.Prefab, size, size)
	n.SetPivot(size/2, size/2)
	n.Layer = LayerPreview
	n.Visible = false
	n.Alpha = 0
	n.Color = UnitColor(card.CardID)
	b.ghosts.AddChild(n)

	b.nextPreview++
	h := b.nextPreview
	b.previews[h] = &preview{node: n}
	b.startTween(TweenAlpha(n, previewAlpha, previewFadeDuration, ease.OutQuad))
	return h
}

// Reposition moves a preview. HiddenPreviewPosition hides it.
func (b *Board) Reposition(h PreviewHandle, p Vec3) {
	pv := b.previews[h]
	if pv == nil {
		return
	}
	if p == HiddenPreviewPosition {
		pv.node.Visible = false
		return
	}
	pv.node.Visible = true
	pv.node.SetPosition(p.X, p.Y)
	pv.node.Elevation = p.Z
}

// SetValidityTint fades a preview to green when the drop would place and red
// when it would not. Repeating the current tint is a no-op.
func (b *Board) SetValidityTint(h PreviewHandle, valid bool) {
	pv := b.previews[h]
	if pv == nil || (pv.tinted && pv.valid == valid) {
		return
	}
	pv.valid, pv.tinted = valid, true
	if pv.tint != nil {
		pv.tint.Done = true
	}
	to := previewInvalidColor
	if valid {
		to = previewValidColor
	}
	pv.tint = TweenColor(pv.node, to, previewTintDuration, ease.OutQuad)
	b.startTween(pv.tint)
}

// Destroy removes a preview. Unknown handles are ignored.
func (b *Board) Destroy(h PreviewHandle) {
	pv := b.previews[h]
	if pv == nil {
		return
	}
	delete(b.previews, h)
	pv.node.Dispose()
}

// PreviewNode returns the node behind h, or nil.
func (b *Board) PreviewNode(h PreviewHandle) *Node {
	if pv := b.previews[h]; pv != nil {
		return pv.node
	}
	return nil
}

// PreviewValid reports the last tint requested for h. ok is false until a
// tint was set or when h is unknown.
func (b *Board) PreviewValid(h PreviewHandle) (valid, ok bool) {
	pv := b.previews[h]
	if pv == nil || !pv.tinted {
		return false, false
	}
	return pv.valid, true
}

// NumPreviews returns how many previews are alive.
func (b *Board) NumPreviews() int {
	return len(b.previews)
}
