package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func click(t *testing.T, g *Game, x, y int) Outcome {
	t.Helper()
	out, err := g.Click(C(x, y))
	require.NoError(t, err)
	return out
}

func TestClickMoveThenPush(t *testing.T) {
	g := newTestGame(t, Options{})

	assert.Equal(t, OutcomeIgnored, click(t, g, 0, -4), "host tile on guest turn")
	assert.Equal(t, OutcomeIgnored, click(t, g, 0, 0), "empty cell")

	require.Equal(t, OutcomeSelected, click(t, g, -1, 7))
	in := g.Interaction()
	assert.Equal(t, PhaseMove, in.Phase)
	assert.Contains(t, in.Moves, C(-1, 5))

	assert.Equal(t, OutcomeIgnored, click(t, g, 3, 5), "other tile while one is selected")

	require.Equal(t, OutcomeMoved, click(t, g, -1, 5))
	in = g.Interaction()
	assert.Equal(t, PhaseAbility, in.Phase)
	assert.ElementsMatch(t, []Coord{C(-2, 6), C(0, 4)}, in.Targets)
	assert.Equal(t, 1, g.Turn(), "turn waits for the ability")

	require.Equal(t, OutcomeAbilityUsed, click(t, g, 0, 4))
	assert.Equal(t, 2, g.Turn())
	assert.Equal(t, PhaseSelect, g.Interaction().Phase)
	assert.NotNil(t, g.board.Piece(C(1, 3)))
}

func TestClickForfeitAbilityEndsTurn(t *testing.T) {
	g := newTestGame(t, Options{})
	click(t, g, -1, 7)
	require.Equal(t, OutcomeMoved, click(t, g, -1, 5))
	require.Equal(t, PhaseAbility, g.Interaction().Phase)

	require.Equal(t, OutcomeDeselected, click(t, g, -1, 5))
	assert.Equal(t, 2, g.Turn())
	assert.Equal(t, PhaseSelect, g.Interaction().Phase)
	assert.NotNil(t, g.board.Piece(C(0, 4)))
}

func TestClickDeselectKeepsTurn(t *testing.T) {
	g := newTestGame(t, Options{})
	require.Equal(t, OutcomeSelected, click(t, g, 2, 6))
	require.Equal(t, OutcomeDeselected, click(t, g, 2, 6))
	assert.Equal(t, 1, g.Turn())
	assert.Nil(t, g.Interaction().Selected)
}

func TestQuietMoveAdvancesTurn(t *testing.T) {
	g := newTestGame(t, Options{})
	click(t, g, 2, 6)
	require.Equal(t, OutcomeMoved, click(t, g, 2, 5))
	assert.Equal(t, 2, g.Turn())
	assert.Equal(t, PhaseSelect, g.Interaction().Phase)

	require.Equal(t, OutcomeIgnored, click(t, g, 2, 5), "guest tile on host turn")
	require.Equal(t, OutcomeSelected, click(t, g, 2, -6))
}

func TestExplicitOperations(t *testing.T) {
	g := newTestGame(t, Options{})

	require.ErrorIs(t, g.MoveSelected(C(0, 0)), ErrNoSelection)
	require.ErrorIs(t, g.Deselect(), ErrNoSelection)
	require.ErrorIs(t, g.Select(at(t, g, 0, -4)), ErrNotYourTurn)

	require.NoError(t, g.Select(at(t, g, 2, 6)))
	require.NoError(t, g.Select(at(t, g, -1, 7)), "reselect before moving")
	require.ErrorIs(t, g.MoveSelected(C(-1, 0)), ErrInvalidMove)
	require.NoError(t, g.MoveSelected(C(-1, 5)))
	require.ErrorIs(t, g.Select(at(t, g, 2, 6)), ErrPending)
	require.ErrorIs(t, g.UseSelectedAbility(C(-1, 4)), ErrNoAbilityTarget)
	require.NoError(t, g.UseSelectedAbility(C(-2, 6)))
	assert.Equal(t, 2, g.Turn())
	assert.NotNil(t, g.board.Piece(C(-3, 7)))
}

// swapGame has a guest Koi one step from the east shrine and a captured
// guest Wheel waiting in the pool.
func swapGame(t *testing.T) (*Game, *Piece, *Piece) {
	t.Helper()
	g := newBareGame(t, Options{})
	koi := put(t, g, KindKoi, Guest, C(5, 0))
	wheel := put(t, g, KindWheel, Guest, C(-5, -2))
	require.NoError(t, g.capture(wheel))
	put(t, g, KindDragon, Host, C(-5, -3))
	return g, koi, wheel
}

func TestSwapOnShrine(t *testing.T) {
	g, koi, wheel := swapGame(t)

	click(t, g, 5, 0)
	require.Equal(t, OutcomeMoved, click(t, g, 7, 0))
	in := g.Interaction()
	require.Equal(t, PhaseSwap, in.Phase)
	assert.Equal(t, []*Piece{wheel}, in.SwapChoices)
	assert.Equal(t, 1, g.Turn())

	slot := SwapSlot(Guest, 0)
	assert.Equal(t, C(-8, 8), slot)
	assert.Equal(t, OutcomeIgnored, click(t, g, 0, 0), "board input is frozen")
	require.Equal(t, OutcomeSwapped, click(t, g, slot.X, slot.Y))

	assert.Same(t, wheel, g.board.Piece(C(7, 0)))
	assert.False(t, wheel.Captured)
	assert.True(t, koi.Captured)
	assert.Equal(t, []*Piece{koi}, g.Captured(Guest))
	assert.Equal(t, 2, g.Turn())
	assert.Equal(t, PhaseSelect, g.Interaction().Phase)
}

func TestSwapCancelled(t *testing.T) {
	g, koi, wheel := swapGame(t)
	click(t, g, 5, 0)
	click(t, g, 7, 0)

	require.Equal(t, OutcomeSwapCancelled, click(t, g, 7, 0))
	assert.Same(t, koi, g.board.Piece(C(7, 0)))
	assert.True(t, wheel.Captured)
	assert.Equal(t, 2, g.Turn())
}

func TestSwapWithRejectsForeignTiles(t *testing.T) {
	g, _, _ := swapGame(t)
	require.ErrorIs(t, g.SwapWith(1), ErrNotInSwap)
	require.ErrorIs(t, g.CancelSwap(), ErrNotInSwap)

	click(t, g, 5, 0)
	click(t, g, 7, 0)
	host := at(t, g, -5, -3)
	require.ErrorIs(t, g.SwapWith(host.ID), ErrNoSwapChoice)
	require.ErrorIs(t, g.SwapWith(999), ErrNoSwapChoice)
	require.ErrorIs(t, g.Deselect(), ErrPending)
	assert.Equal(t, PhaseSwap, g.Interaction().Phase)
}

func TestSwapSlotLayout(t *testing.T) {
	assert.Equal(t, C(-8, 8), SwapSlot(Guest, 0))
	assert.Equal(t, C(8, -8), SwapSlot(Host, 0))
	assert.Equal(t, C(-8, 6), SwapSlot(Guest, 5))
	assert.Equal(t, C(8, 8), SwapSlot(Guest, 6))
	assert.Equal(t, C(-7, -7), SwapSlot(Host, 10))

	seen := map[Coord]bool{}
	for _, side := range []Side{Guest, Host} {
		for i := range 12 {
			c := SwapSlot(side, i)
			assert.False(t, c.Valid(), "slot %d of %s is on the board", i, side)
			assert.False(t, seen[c], "slot %s reused", c)
			seen[c] = true
			idx, ok := SwapIndex(side, c, 12)
			require.True(t, ok)
			assert.Equal(t, i, idx)
		}
	}
}

func TestLotusOnSideShrineSkipsSwap(t *testing.T) {
	g := newBareGame(t, Options{})
	lotus := g.Lotus(Guest)
	require.NoError(t, g.board.Relocate(lotus, C(4, 4)))
	put(t, g, KindWheel, Host, C(5, 3))
	put(t, g, KindWheel, Host, C(7, 1))

	click(t, g, 4, 4)
	require.Contains(t, g.Interaction().Moves, C(8, 0))
	require.Equal(t, OutcomeMoved, click(t, g, 8, 0))
	assert.True(t, g.IsInShrine(lotus))
	assert.Equal(t, PhaseSelect, g.Interaction().Phase)
	assert.Equal(t, 2, g.Turn())
}

func TestPlayRejectedKeepsSelection(t *testing.T) {
	g := newTestGame(t, Options{})

	require.ErrorIs(t, g.Play(C(2, 6), C(2, 0)), ErrInvalidMove)
	assert.Equal(t, PhaseSelect, g.Interaction().Phase)
	assert.Nil(t, g.Interaction().Selected)

	dragon := at(t, g, -1, 7)
	require.NoError(t, g.Select(dragon))
	require.ErrorIs(t, g.Play(C(2, 6), C(2, 0)), ErrInvalidMove)
	in := g.Interaction()
	assert.Equal(t, PhaseMove, in.Phase)
	assert.Same(t, dragon, in.Selected)
	assert.Equal(t, 1, g.Turn())

	require.NoError(t, g.Play(C(2, 6), C(2, 5)))
	assert.Equal(t, 2, g.Turn())
	assert.Equal(t, PhaseSelect, g.Interaction().Phase)
}
