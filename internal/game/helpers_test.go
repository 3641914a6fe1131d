package game

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/require"
)

type fixtureTiles struct{}

var fixtureCodes = map[Kind]string{
	KindWhiteLotus: "wl",
	KindDragon:     "drg",
	KindBadgermole: "bm",
	KindSkyBison:   "sb",
	KindKoi:        "koi",
	KindWheel:      "wh",
	KindGinseng:    "gs",
	KindOrchid:     "oc",
	KindLionTurtle: "lt",
}

var fixtureFactories = map[Kind]func(Side, Coord) *Piece{
	KindWhiteLotus: NewWhiteLotus,
	KindDragon:     NewDragon,
	KindBadgermole: NewBadgermole,
	KindSkyBison:   NewSkyBison,
	KindKoi:        NewKoi,
	KindWheel:      NewWheel,
	KindGinseng:    NewGinseng,
	KindOrchid:     NewOrchid,
	KindLionTurtle: NewLionTurtle,
}

func (fixtureTiles) Descriptors() iter.Seq[Descriptor] {
	return func(yield func(Descriptor) bool) {
		for _, k := range Kinds {
			if !yield(Descriptor{Code: fixtureCodes[k], Kind: k, New: fixtureFactories[k]}) {
				return
			}
		}
	}
}

func (fixtureTiles) Code(k Kind) (string, bool) {
	code, ok := fixtureCodes[k]
	return code, ok
}

func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()
	g, err := New(fixtureTiles{}, opts)
	require.NoError(t, err)
	return g
}

// newBareGame returns a running game with only the two lotuses, parked
// away from the shrines so captures are allowed.
func newBareGame(t *testing.T, opts Options) *Game {
	t.Helper()
	g, err := newGame(fixtureTiles{}, opts)
	require.NoError(t, err)
	put(t, g, KindWhiteLotus, Guest, C(-3, 3))
	put(t, g, KindWhiteLotus, Host, C(3, -3))
	return g
}

func put(t *testing.T, g *Game, kind Kind, side Side, pos Coord) *Piece {
	t.Helper()
	p, err := g.spawn(kind, side, pos)
	require.NoError(t, err)
	return p
}

func at(t *testing.T, g *Game, x, y int) *Piece {
	t.Helper()
	p := g.board.Piece(C(x, y))
	require.NotNil(t, p, "no tile at (%d,%d)", x, y)
	return p
}

func play(t *testing.T, g *Game, fx, fy, tx, ty int) {
	t.Helper()
	p := at(t, g, fx, fy)
	require.True(t, g.IsValidMove(p, C(tx, ty)), "%s cannot reach (%d,%d)", p, tx, ty)
	require.NoError(t, g.Move(p, C(tx, ty)))
}

func C(x, y int) Coord { return Coord{X: x, Y: y} }
