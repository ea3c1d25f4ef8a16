package dragmerge

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
)

// InputSource reads raw pointer and key state once per frame.
type InputSource interface {
	// Pointer returns the pointer's screen position and whether it is down.
	Pointer() (Vec2, bool)
	// CancelPressed reports whether the cancel gesture started this frame.
	CancelPressed() bool
}

// ebitenInput reads the left mouse button, falling back to the first touch
// while one is active. Escape or the right mouse button cancel.
type ebitenInput struct {
	touches  []ebiten.TouchID
	touching bool
	lastTap  Vec2
}

func (e *ebitenInput) Pointer() (Vec2, bool) {
	e.touches = ebiten.AppendTouchIDs(e.touches[:0])
	if len(e.touches) > 0 {
		x, y := ebiten.TouchPosition(e.touches[0])
		e.touching = true
		e.lastTap = Vec2{X: float64(x), Y: float64(y)}
		return e.lastTap, true
	}
	if e.touching {
		// Release where the finger lifted, not where the mouse last was.
		e.touching = false
		return e.lastTap, false
	}
	x, y := ebiten.CursorPosition()
	return Vec2{X: float64(x), Y: float64(y)}, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (e *ebitenInput) CancelPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
}

// syntheticPointerEvent is one queued pointer sample in screen coordinates.
type syntheticPointerEvent struct {
	pos     Vec2
	pressed bool
}

type pointerState struct {
	down     bool
	dragging bool
	start    Vec2
	last     Vec2
	// unit is the unit under the press, picked up once the pointer leaves
	// the dead zone.
	unit *FieldUnit
}

// DriverOption configures a PointerDriver.
type DriverOption func(*PointerDriver)

// WithInputSource replaces the ebiten mouse and touch reader.
func WithInputSource(src InputSource) DriverOption {
	return func(d *PointerDriver) { d.input = src }
}

// WithDeadZone sets how far, in pixels, the pointer must travel from a press
// on a unit before the unit is picked up.
func WithDeadZone(pixels float64) DriverOption {
	return func(d *PointerDriver) { d.deadZone = pixels }
}

// WithAutoResolve makes Update call ResolvePendingDrag at the start of every
// frame, so a failed unit drop reverts one frame after it was dropped.
func WithAutoResolve(enabled bool) DriverOption {
	return func(d *PointerDriver) { d.autoResolve = enabled }
}

// OnCardDrop registers a callback for every finished card drop.
func OnCardDrop(fn func(CardDropResult)) DriverOption {
	return func(d *PointerDriver) { d.onCardDrop = fn }
}

// OnUnitDrop registers a callback for every finished unit drop.
func OnUnitDrop(fn func(UnitDropResult)) DriverOption {
	return func(d *PointerDriver) { d.onUnitDrop = fn }
}

// WithDriverLogger sets the logger rejected gestures are reported to.
func WithDriverLogger(l zerolog.Logger) DriverOption {
	return func(d *PointerDriver) { d.log = l }
}

// PointerDriver turns one pointer's press, move and release into controller
// calls: pressing a unit and moving past the dead zone picks it up, moving
// updates the drag and releasing drops it. Card drags start from the hand
// through BeginCard and then follow the same pointer.
type PointerDriver struct {
	ctrl  *Controller
	query SpatialQuery
	input InputSource

	deadZone    float64
	autoResolve bool
	onCardDrop  func(CardDropResult)
	onUnitDrop  func(UnitDropResult)
	log         zerolog.Logger

	ptr         pointerState
	injectQueue []syntheticPointerEvent
}

// NewPointerDriver creates a driver feeding ctrl. query finds the unit under
// a press and is normally the same Board the controller queries.
func NewPointerDriver(ctrl *Controller, query SpatialQuery, opts ...DriverOption) *PointerDriver {
	d := &PointerDriver{
		ctrl:     ctrl,
		query:    query,
		input:    &ebitenInput{},
		deadZone: DefaultConfig().DragDeadZone,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Update processes one frame of input. Queued synthetic events take the
// place of real pointer input, one per frame.
func (d *PointerDriver) Update() {
	if d.autoResolve {
		d.ctrl.ResolvePendingDrag()
	}
	if d.input.CancelPressed() {
		d.Cancel()
	}
	if len(d.injectQueue) > 0 {
		evt := d.injectQueue[0]
		copy(d.injectQueue, d.injectQueue[1:])
		d.injectQueue = d.injectQueue[:len(d.injectQueue)-1]
		d.processPointer(evt.pos, evt.pressed)
		return
	}
	p, pressed := d.input.Pointer()
	d.processPointer(p, pressed)
}

// BeginCard starts dragging card from screen position p. The pointer is
// treated as held, so the card drops on the next release.
func (d *PointerDriver) BeginCard(card CardToken, p Vec2) error {
	if err := d.ctrl.BeginCardDrag(card); err != nil {
		d.log.Debug().Err(err).Int("card_id", card.CardID).Msg("card drag refused")
		return err
	}
	d.ptr = pointerState{down: true, dragging: true, start: p, last: p}
	d.ctrl.UpdateDrag(p)
	return nil
}

// Cancel aborts the current gesture and every drag. The pointer must be
// released before the next gesture starts.
func (d *PointerDriver) Cancel() {
	d.ctrl.CancelAllDrags()
	d.ptr = pointerState{down: d.ptr.down, start: d.ptr.last, last: d.ptr.last}
}

// Dragging reports whether the pointer is currently carrying something.
func (d *PointerDriver) Dragging() bool {
	return d.ptr.dragging
}

func (d *PointerDriver) processPointer(p Vec2, pressed bool) {
	ps := &d.ptr
	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.dragging = false
		ps.start, ps.last = p, p
		ps.unit = nil
		if d.ctrl.Mode() == DragNone {
			ps.unit = d.unitAt(p)
		}

	case !pressed && ps.down:
		if ps.dragging {
			d.drop(p)
		}
		*ps = pointerState{start: p, last: p}

	case pressed && ps.down:
		if p == ps.last {
			return
		}
		if !ps.dragging && ps.unit != nil {
			dx, dy := p.X-ps.start.X, p.Y-ps.start.Y
			if math.Sqrt(dx*dx+dy*dy) > d.deadZone {
				if err := d.ctrl.BeginUnitDrag(ps.unit); err != nil {
					d.log.Debug().Err(err).Int("unit_id", ps.unit.UnitID).Msg("unit drag refused")
					ps.unit = nil
				} else {
					ps.dragging = true
				}
			}
		}
		if ps.dragging {
			d.ctrl.UpdateDrag(p)
		}
		ps.last = p

	default:
		ps.last = p
	}
}

func (d *PointerDriver) drop(p Vec2) {
	switch d.ctrl.Mode() {
	case DragCard:
		res := d.ctrl.EndCardDrag(p)
		if d.onCardDrop != nil {
			d.onCardDrop(res)
		}
	case DragUnit:
		res := d.ctrl.EndUnitDrag(p)
		if d.onUnitDrop != nil {
			d.onUnitDrop(res)
		}
	}
}

func (d *PointerDriver) unitAt(p Vec2) *FieldUnit {
	for _, h := range d.query.Raycast(p, LayerUnits) {
		if u := h.Unit(); u != nil && u.usable() && !u.Kinematic {
			return u
		}
	}
	return nil
}

// --- Synthetic input ---

// InjectPress queues a pointer press at screen position (x, y). Queued
// events are consumed one per Update in place of real input.
func (d *PointerDriver) InjectPress(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticPointerEvent{pos: Vec2{X: x, Y: y}, pressed: true})
}

// InjectMove queues a move with the pointer held down.
func (d *PointerDriver) InjectMove(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticPointerEvent{pos: Vec2{X: x, Y: y}, pressed: true})
}

// InjectRelease queues a pointer release at (x, y).
func (d *PointerDriver) InjectRelease(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticPointerEvent{pos: Vec2{X: x, Y: y}})
}

// InjectDrag queues a press at (fromX, fromY), frames-2 evenly spaced moves
// and a release at (toX, toY). It consumes frames Updates, at least 2.
func (d *PointerDriver) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	d.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		d.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	d.InjectRelease(toX, toY)
}

// PendingInjections returns how many synthetic events are still queued.
func (d *PointerDriver) PendingInjections() int {
	return len(d.injectQueue)
}
