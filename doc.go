// Package dragmerge is the drag-and-merge controller for a tile-based
// auto-battler built on [Ebitengine].
//
// A player drags cards from a hand onto a board of tiles, or drags units
// already on the board onto each other. Two units (or a card and a unit)
// with the same id and level merge: the target levels up and the dropped one
// is consumed. A card dropped on an empty spawn tile places a new unit there.
// A unit dropped anywhere else snaps back to where it was picked up.
//
// # Quick start
//
// [Board] is the scene, the spatial query, the preview renderer and the
// unit world in one. Wire it into a [Controller] and feed the controller
// from a [PointerDriver]:
//
//	board := dragmerge.NewBoard(dragmerge.DefaultConfig())
//	hand := dragmerge.NewCardHand(1, 1, 2)
//	ctrl := dragmerge.NewController(dragmerge.Deps{
//		Query: board, Previews: board, Hand: hand, World: board,
//	})
//	driver := dragmerge.NewPointerDriver(ctrl, board, dragmerge.WithAutoResolve(true))
//
//	func (g *Game) Update() error {
//		g.driver.Update()
//		g.board.Update(1.0 / 60)
//		return nil
//	}
//	func (g *Game) Draw(s *ebiten.Image) { g.board.Draw(s) }
//
// # Drag session
//
// A [Controller] owns exactly one drag session. [Controller.BeginCardDrag]
// and [Controller.BeginUnitDrag] start it and are refused with
// [ErrRejectedConcurrentDrag] while another drag is live.
// [Controller.UpdateDrag] follows the pointer. [Controller.EndCardDrag]
// resolves a card drop immediately.
//
// A unit drop that does not merge is not reverted right away.
// [Controller.EndUnitDrag] reports [UnitDropPending] and the unit stays
// where it was dropped until [Controller.ResolvePendingDrag] runs, normally
// once per frame after every other system has had a chance to
// [Controller.ClaimDrop] it. [Controller.CancelAllDrags] ends any drag at
// once.
//
// # Scene graph
//
// The board is a small retained tree of [Node] values with affine
// transforms, ZIndex ordering and hit shapes. Tiles, units and previews live
// in separate layers; raycasts never hit the preview layer. The [Camera]
// maps screen to world and can scroll with easing (via [gween]).
//
// # Observability
//
// Controllers log through [zerolog] (silent unless [WithLogger] is given),
// count drags through OpenTelemetry metrics and report every drop to an
// optional [OutcomeSink]. The ecs subpackage publishes those events to a
// [Donburi] world. [LoadConfig] reads the board tunables through [viper].
//
// # Debug mode
//
// [SetDebugMode] turns on session invariant checks and disposed-node
// assertions. Violations panic. Outside debug mode a broken session is
// logged, reset and any pending revert is dropped.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [zerolog]: https://github.com/rs/zerolog
// [viper]: https://github.com/spf13/viper
// [Donburi]: https://github.com/yohamta/donburi
package dragmerge
