package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openCenter clears a lane for the guest lotus to race south.
func openCenter(t *testing.T, g *Game) {
	t.Helper()
	play(t, g, 2, 6, 2, 5)
	play(t, g, 2, -6, 2, -5)
	play(t, g, 4, 4, 3, 3)
	play(t, g, 4, -4, 3, -3)
	play(t, g, 0, 4, 1, 1)
	play(t, g, 0, -4, 1, -1)
	play(t, g, -3, 5, -3, -1)
	play(t, g, -3, -5, -3, -4)
	play(t, g, -3, -1, -1, -1)
	play(t, g, 0, 8, 2, 2)
}

func TestGuestLotusCrossingWins(t *testing.T) {
	g := newTestGame(t, Options{})
	require.Equal(t, StatusRunning, g.Status())
	require.True(t, g.IsGuestTurn())

	openCenter(t, g)
	require.Equal(t, StatusRunning, g.Status())
	assert.False(t, g.CapturingAllowed(), "host lotus still sits on its shrine")

	play(t, g, 2, 2, -2, -2)
	assert.Equal(t, StatusGuestWin, g.Status())
	assert.False(t, g.IsGuestTurn())
	assert.False(t, g.IsHostTurn())

	turn := g.Turn()
	g.NextTurn()
	assert.Equal(t, turn, g.Turn())

	wheel := at(t, g, -3, -4)
	require.ErrorIs(t, g.Move(wheel, C(-3, -3)), ErrGameOver)
	assert.Empty(t, g.MoveList(wheel))
	_, err := g.Click(C(-3, -4))
	require.ErrorIs(t, err, ErrGameOver)
	assert.False(t, g.CheckForDraw())
	assert.Equal(t, StatusGuestWin, g.Status())
}

func TestHostLotusCrossingWins(t *testing.T) {
	g := newBareGame(t, Options{})
	lotus := g.Lotus(Host)
	put(t, g, KindWheel, Guest, C(2, -2))

	require.True(t, g.IsValidMove(lotus, C(1, -1)))
	require.NoError(t, g.Move(lotus, C(1, -1)))
	assert.Equal(t, StatusRunning, g.Status())

	put(t, g, KindWheel, Host, C(0, 0))
	require.NoError(t, g.Move(lotus, C(-1, 1)))
	assert.Equal(t, StatusHostWin, g.Status())
}

func TestNextTurnParity(t *testing.T) {
	g := newTestGame(t, Options{})
	assert.Equal(t, 1, g.Turn())
	assert.True(t, g.IsGuestTurn())
	assert.Equal(t, Guest, g.SideToMove())

	g.NextTurn()
	assert.Equal(t, 2, g.Turn())
	assert.True(t, g.IsHostTurn())
	assert.Equal(t, Host, g.SideToMove())
}

func TestDrawWhenSideToMoveIsStuck(t *testing.T) {
	g := newBareGame(t, Options{})
	require.NoError(t, g.board.Relocate(g.Lotus(Guest), C(-6, 0)))
	koi := put(t, g, KindKoi, Host, C(-4, 1))
	g.NextTurn()
	require.True(t, g.IsHostTurn())

	out, err := g.Click(koi.Pos)
	require.NoError(t, err)
	require.Equal(t, OutcomeSelected, out)
	out, err = g.Click(C(-5, 1))
	require.NoError(t, err)
	require.Equal(t, OutcomeMoved, out)

	assert.Equal(t, StatusDraw, g.Status())
	assert.Equal(t, 3, g.Turn())
	assert.False(t, g.CheckForDraw(), "draw is only declared once")
	assert.Equal(t, StatusDraw, g.Status())
	g.NextTurn()
	assert.Equal(t, 3, g.Turn())
}

func TestCheckForDrawOnRestoredPosition(t *testing.T) {
	src := newBareGame(t, Options{})
	require.NoError(t, src.board.Relocate(src.Lotus(Guest), C(-6, 0)))
	put(t, src, KindKoi, Host, C(-5, 1))
	put(t, src, KindWheel, Host, C(4, 4))

	g, err := Restore(fixtureTiles{}, src.Snapshot(), nil)
	require.NoError(t, err)
	require.True(t, g.IsGuestTurn())

	assert.True(t, g.CheckForDraw())
	assert.Equal(t, StatusDraw, g.Status())
	assert.False(t, g.CheckForDraw())
	assert.Equal(t, StatusDraw, g.Status())
}

func TestNoDrawWhileAnyTileCanMove(t *testing.T) {
	g := newTestGame(t, Options{})
	assert.False(t, g.CheckForDraw())
	assert.Equal(t, StatusRunning, g.Status())
}
