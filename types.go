package dragmerge

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA premultiplies and converts to an 8-bit color for ebiten draw calls.
// alpha is an extra multiplier (the node's world alpha).
func (c Color) toRGBA(alpha float64) color.RGBA {
	a := clamp01(c.A * alpha)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// ToRGBA converts to a premultiplied 8-bit color.
func (c Color) ToRGBA() color.RGBA {
	return c.toRGBA(1)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector. Pointer positions are screen-space Vec2 values.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a board-space point. X and Y lie on the board plane, Z is the
// height above it.
type Vec3 struct {
	X, Y, Z float64
}

// XY drops the height component.
func (v Vec3) XY() Vec2 {
	return Vec2{v.X, v.Y}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// NodeType distinguishes container nodes from drawable ones.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeSprite                    // solid tinted rectangle of Width x Height
)

// LayerMask selects which board layers a spatial query may hit.
type LayerMask uint8

const (
	LayerTiles   LayerMask = 1 << iota // placement cells
	LayerUnits                         // placed field units
	LayerPreview                       // card drag previews (never hit by LayerAll)

	// LayerAll is every hittable layer. Previews are excluded.
	LayerAll = LayerTiles | LayerUnits
)

// TileKind classifies a placement cell.
type TileKind uint8

const (
	TileRoute TileKind = iota // enemy path, never accepts placement
	TileSpawn                 // accepts a new unit when empty
)

func (k TileKind) String() string {
	switch k {
	case TileRoute:
		return "route"
	case TileSpawn:
		return "spawn"
	default:
		return "unknown"
	}
}

// DragMode is the kind of drag the session is running.
type DragMode uint8

const (
	DragNone DragMode = iota // no drag in progress
	DragCard                 // a hand card is being dragged over the board
	DragUnit                 // a placed field unit is being dragged
)

func (m DragMode) String() string {
	switch m {
	case DragNone:
		return "none"
	case DragCard:
		return "card"
	case DragUnit:
		return "unit"
	default:
		return "unknown"
	}
}

// DropOutcome records how the last drop ended. It is cleared explicitly
// when a new drag begins or all drags are cancelled.
type DropOutcome uint8

const (
	DropNone    DropOutcome = iota // no drop recorded
	DropSuccess                    // placed, merged, or claimed by another handler
	DropFailed                     // the drop did not land anywhere useful
)

func (o DropOutcome) String() string {
	switch o {
	case DropNone:
		return "none"
	case DropSuccess:
		return "success"
	case DropFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PlacementOutcome is the result of ending a card drag.
type PlacementOutcome uint8

const (
	PlacementInvalidZone PlacementOutcome = iota // nothing placed, card stays in hand
	PlacementPlaced                              // new unit spawned on an empty spawn tile
	PlacementUpgrade                             // an existing unit leveled up
)

func (o PlacementOutcome) String() string {
	switch o {
	case PlacementInvalidZone:
		return "Failed_InvalidZone"
	case PlacementPlaced:
		return "Success_Placed"
	case PlacementUpgrade:
		return "Success_Upgrade"
	default:
		return "unknown"
	}
}

// Succeeded reports whether the card left the hand.
func (o PlacementOutcome) Succeeded() bool {
	return o == PlacementPlaced || o == PlacementUpgrade
}
