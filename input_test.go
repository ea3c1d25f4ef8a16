package dragmerge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInput is an InputSource the test moves by hand.
type fakeInput struct {
	p       Vec2
	pressed bool
	cancel  bool
}

func (f *fakeInput) Pointer() (Vec2, bool) { return f.p, f.pressed }

func (f *fakeInput) CancelPressed() bool {
	c := f.cancel
	f.cancel = false
	return c
}

type driverFixture struct {
	board  *Board
	hand   *CardHand
	ctrl   *Controller
	in     *fakeInput
	driver *PointerDriver

	cardDrops []CardDropResult
	unitDrops []UnitDropResult
}

func newDriverFixture(t *testing.T, opts ...DriverOption) *driverFixture {
	t.Helper()
	f := &driverFixture{
		board: NewBoard(DefaultConfig()),
		hand:  NewCardHand(5, 5),
		in:    &fakeInput{},
	}
	f.ctrl = NewController(Deps{Query: f.board, Previews: f.board, Hand: f.hand, World: f.board}, WithMetrics(nil))
	opts = append([]DriverOption{
		WithInputSource(f.in),
		OnCardDrop(func(r CardDropResult) { f.cardDrops = append(f.cardDrops, r) }),
		OnUnitDrop(func(r UnitDropResult) { f.unitDrops = append(f.unitDrops, r) }),
	}, opts...)
	f.driver = NewPointerDriver(f.ctrl, f.board, opts...)
	return f
}

// frame sets the fake pointer and runs one Update.
func (f *driverFixture) frame(p Vec2, pressed bool) {
	f.in.p, f.in.pressed = p, pressed
	f.driver.Update()
}

func (f *driverFixture) drainInjections() {
	for f.driver.PendingInjections() > 0 {
		f.driver.Update()
	}
}

func (f *driverFixture) place(t *testing.T, unitID, level, col, row int) *FieldUnit {
	t.Helper()
	u, err := f.board.PlaceUnit(unitID, level, col, row)
	require.NoError(t, err)
	return u
}

func offset(p Vec2, dx, dy float64) Vec2 {
	return Vec2{X: p.X + dx, Y: p.Y + dy}
}

func TestDriverDeadZone(t *testing.T) {
	f := newDriverFixture(t)
	u := f.place(t, 5, 1, 1, 1)
	start := tileCenter(f.board, 1, 1)

	f.frame(start, true)
	assert.Equal(t, DragNone, f.ctrl.Mode())

	f.frame(offset(start, 3, 0), true)
	assert.False(t, f.driver.Dragging(), "moved within the dead zone")
	assert.Equal(t, DragNone, f.ctrl.Mode())

	f.frame(offset(start, 10, 0), true)
	assert.True(t, f.driver.Dragging())
	assert.Equal(t, DragUnit, f.ctrl.Mode())
	assert.True(t, u.Kinematic)
	assert.Equal(t, DefaultConfig().PlacementOffset, u.Position().Z)
}

func TestDriverCustomDeadZone(t *testing.T) {
	f := newDriverFixture(t, WithDeadZone(20))
	f.place(t, 5, 1, 1, 1)
	start := tileCenter(f.board, 1, 1)

	f.frame(start, true)
	f.frame(offset(start, 10, 0), true)
	assert.False(t, f.driver.Dragging())

	f.frame(offset(start, 25, 0), true)
	assert.True(t, f.driver.Dragging())
}

func TestDriverClickWithoutDragDoesNothing(t *testing.T) {
	f := newDriverFixture(t)
	u := f.place(t, 5, 1, 1, 1)
	start := tileCenter(f.board, 1, 1)

	f.frame(start, true)
	f.frame(start, false)

	assert.Equal(t, DragNone, f.ctrl.Mode())
	assert.Empty(t, f.unitDrops)
	assert.Equal(t, Vec3{X: start.X, Y: start.Y}, u.Position())
}

func TestDriverPressOnEmptyTile(t *testing.T) {
	f := newDriverFixture(t)
	start := tileCenter(f.board, 2, 2)

	f.frame(start, true)
	f.frame(offset(start, 40, 0), true)
	f.frame(offset(start, 40, 0), false)

	assert.Equal(t, DragNone, f.ctrl.Mode())
	assert.Empty(t, f.unitDrops)
	assert.Empty(t, f.cardDrops)
}

func TestDriverInjectedDragMerges(t *testing.T) {
	f := newDriverFixture(t)
	dragged := f.place(t, 5, 1, 1, 1)
	target := f.place(t, 5, 1, 3, 1)
	from, to := tileCenter(f.board, 1, 1), tileCenter(f.board, 3, 1)

	f.driver.InjectDrag(from.X, from.Y, to.X, to.Y, 6)
	assert.Equal(t, 6, f.driver.PendingInjections())
	f.drainInjections()

	require.Len(t, f.unitDrops, 1)
	assert.Equal(t, UnitDropMerged, f.unitDrops[0].Status)
	assert.Same(t, target, f.unitDrops[0].Target)
	assert.Equal(t, 2, target.Level)
	assert.True(t, dragged.Destroyed())
	assert.False(t, f.board.Tile(1, 1).Occupied)
	assert.Equal(t, DragNone, f.ctrl.Mode())
	assert.False(t, f.driver.Dragging())
}

func TestDriverAutoResolveRevertsNextFrame(t *testing.T) {
	f := newDriverFixture(t, WithAutoResolve(true))
	dragged := f.place(t, 5, 1, 1, 1)
	stranger := f.place(t, 6, 1, 3, 1)
	from, to := tileCenter(f.board, 1, 1), tileCenter(f.board, 3, 1)
	home := dragged.Position()

	f.driver.InjectDrag(from.X, from.Y, to.X, to.Y, 4)
	f.drainInjections()

	require.Len(t, f.unitDrops, 1)
	assert.Equal(t, UnitDropPending, f.unitDrops[0].Status)
	assert.ErrorIs(t, f.unitDrops[0].Err, ErrMergeMismatch)
	assert.True(t, f.ctrl.RevertPending())
	assert.NotEqual(t, home, dragged.Position())

	f.frame(to, false)

	assert.False(t, f.ctrl.RevertPending())
	assert.Equal(t, DragNone, f.ctrl.Mode())
	assert.Equal(t, home, dragged.Position())
	assert.False(t, dragged.Kinematic)
	assert.Equal(t, 1, stranger.Level)
	outcome, _ := f.ctrl.LastDrop()
	assert.Equal(t, DropFailed, outcome)
}

func TestDriverPendingDropWithoutAutoResolve(t *testing.T) {
	f := newDriverFixture(t)
	f.place(t, 5, 1, 1, 1)
	from := tileCenter(f.board, 1, 1)
	to := tileCenter(f.board, 4, 3)

	f.driver.InjectDrag(from.X, from.Y, to.X, to.Y, 3)
	f.drainInjections()
	f.frame(to, false)

	assert.True(t, f.ctrl.RevertPending(), "nothing resolves the drop")

	// A new press cannot pick anything up while the session is held.
	f.frame(from, true)
	f.frame(offset(from, 30, 0), true)
	assert.False(t, f.driver.Dragging())

	assert.Equal(t, DropFailed, f.ctrl.ResolvePendingDrag())
}

func TestDriverBeginCardPlaces(t *testing.T) {
	f := newDriverFixture(t)
	card := CardToken{CardID: 5, Level: 1, Prefab: "archer"}
	hand := Vec2{X: 10, Y: 400}

	f.in.p, f.in.pressed = hand, true
	require.NoError(t, f.driver.BeginCard(card, hand))
	assert.Equal(t, DragCard, f.ctrl.Mode())
	assert.True(t, f.driver.Dragging())
	assert.Equal(t, 1, f.board.NumPreviews())

	dest := tileCenter(f.board, 2, 2)
	f.frame(dest, true)
	f.frame(dest, false)

	require.Len(t, f.cardDrops, 1)
	assert.Equal(t, PlacementPlaced, f.cardDrops[0].Outcome)
	assert.Same(t, f.cardDrops[0].Unit, f.board.Tile(2, 2).Occupant())
	assert.Equal(t, 1, f.hand.Len())
	assert.Zero(t, f.board.NumPreviews())
	assert.Equal(t, DragNone, f.ctrl.Mode())
}

func TestDriverBeginCardRefused(t *testing.T) {
	f := newDriverFixture(t)
	err := f.driver.BeginCard(CardToken{CardID: 5}, Vec2{})
	assert.ErrorIs(t, err, ErrInvalidSource)
	assert.False(t, f.driver.Dragging())

	require.NoError(t, f.ctrl.BeginUnitDrag(f.place(t, 5, 1, 0, 0)))
	err = f.driver.BeginCard(CardToken{CardID: 5, Level: 1, Prefab: "archer"}, Vec2{})
	assert.ErrorIs(t, err, ErrRejectedConcurrentDrag)
}

func TestDriverCancel(t *testing.T) {
	f := newDriverFixture(t)
	u := f.place(t, 5, 1, 1, 1)
	start := tileCenter(f.board, 1, 1)
	home := u.Position()

	f.frame(start, true)
	f.frame(tileCenter(f.board, 3, 3), true)
	require.Equal(t, DragUnit, f.ctrl.Mode())

	f.in.cancel = true
	f.frame(tileCenter(f.board, 3, 3), true)
	assert.Equal(t, DragNone, f.ctrl.Mode())
	assert.False(t, f.driver.Dragging())
	assert.Equal(t, home, u.Position())

	// Still held: moving does not restart the drag and releasing drops nothing.
	f.frame(tileCenter(f.board, 4, 3), true)
	assert.False(t, f.driver.Dragging())
	f.frame(tileCenter(f.board, 4, 3), false)
	assert.Empty(t, f.unitDrops)
}

func TestDriverInjectionsTakePrecedence(t *testing.T) {
	f := newDriverFixture(t)
	f.in.p, f.in.pressed = Vec2{X: 1, Y: 1}, true

	f.driver.InjectPress(5, 5)
	f.driver.InjectMove(6, 6)
	f.driver.InjectRelease(6, 6)
	assert.Equal(t, 3, f.driver.PendingInjections())

	f.driver.Update()
	assert.Equal(t, 2, f.driver.PendingInjections())
	f.drainInjections()
	assert.Zero(t, f.driver.PendingInjections())
}

func TestInjectDragMinimumFrames(t *testing.T) {
	f := newDriverFixture(t)
	f.driver.InjectDrag(0, 0, 10, 10, 0)
	assert.Equal(t, 2, f.driver.PendingInjections())
}
