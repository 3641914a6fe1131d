// path: internal/game/engine.go
// Package game implements the Ginseng Pai Sho rule engine: board topology,
// move generation, tile abilities, captures and the turn state machine.
package game

import (
	"errors"
	"fmt"
	"iter"

	"github.com/rs/zerolog"
)

// Options carries the per-game rule variants.
type Options struct {
	// BisonFlight lets a boosted Sky Bison jump instead of walk.
	BisonFlight bool
	// Flight decides how BisonFlight is applied.
	Flight FlightPolicy
	// LineOfSightProtection switches Ginseng protection from the proximity
	// scan to the line-of-sight scan.
	LineOfSightProtection bool
	// PushIgnoresTurtle keeps the Dragon active next to an enemy Lion Turtle.
	PushIgnoresTurtle bool

	Logger *zerolog.Logger
}

// Descriptor describes one registered tile type.
type Descriptor struct {
	Code string
	Kind Kind
	New  func(Side, Coord) *Piece
}

// TileSource is the tile registry as seen by the engine.
type TileSource interface {
	Descriptors() iter.Seq[Descriptor]
	Code(Kind) (string, bool)
}

// Game is a single match. It is not safe for concurrent use; embedders must
// serialise every call.
type Game struct {
	board  *Board
	pieces []*Piece
	pools  [2][]*Piece
	lotus  [2]*Piece
	turn   int
	status Status
	opts   Options
	log    zerolog.Logger

	src       TileSource
	factories [kindCount]func(Side, Coord) *Piece

	sel selection
}

type layoutEntry struct {
	kind Kind
	pos  Coord
}

// guestLayout lists the guest's starting tiles other than the lotus. The
// host receives the same set reflected through the origin.
var guestLayout = [...]layoutEntry{
	{KindDragon, Coord{X: -1, Y: 7}},
	{KindBadgermole, Coord{X: 1, Y: 7}},
	{KindSkyBison, Coord{X: -2, Y: 6}},
	{KindKoi, Coord{X: 2, Y: 6}},
	{KindWheel, Coord{X: -3, Y: 5}},
	{KindWheel, Coord{X: 3, Y: 5}},
	{KindGinseng, Coord{X: -4, Y: 4}},
	{KindGinseng, Coord{X: 4, Y: 4}},
	{KindOrchid, Coord{X: -5, Y: 4}},
	{KindOrchid, Coord{X: 5, Y: 4}},
	{KindLionTurtle, Coord{X: 0, Y: 4}},
}

// New builds a game in the starting position.
func New(src TileSource, opts Options) (*Game, error) {
	g, err := newGame(src, opts)
	if err != nil {
		return nil, err
	}
	for _, e := range guestLayout {
		if _, err := g.spawn(e.kind, Guest, e.pos); err != nil {
			return nil, err
		}
		if _, err := g.spawn(e.kind, Host, e.pos.Mirror()); err != nil {
			return nil, err
		}
	}
	for _, side := range [...]Side{Guest, Host} {
		if _, err := g.spawn(KindWhiteLotus, side, lotusHome(side)); err != nil {
			return nil, err
		}
	}
	g.log.Debug().Int("pieces", len(g.pieces)).Msg("game created")
	return g, nil
}

func newGame(src TileSource, opts Options) (*Game, error) {
	if src == nil {
		return nil, fmt.Errorf("new game: %w: nil tile source", ErrMissingTile)
	}
	g := &Game{
		board:  NewBoard(),
		turn:   1,
		status: StatusRunning,
		opts:   opts,
		log:    zerolog.Nop(),
		src:    src,
	}
	if opts.Logger != nil {
		g.log = opts.Logger.With().Str("component", "game").Logger()
	}
	for d := range src.Descriptors() {
		if !d.Kind.Valid() || d.New == nil {
			continue
		}
		g.factories[d.Kind] = d.New
	}
	var missing []error
	for _, k := range Kinds {
		if g.factories[k] == nil {
			missing = append(missing, fmt.Errorf("%w: %s", ErrMissingTile, k))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("new game: %w", errors.Join(missing...))
	}
	g.board.afterMove = g.afterMove
	return g, nil
}

// spawn creates a piece through the registered factory and places it.
func (g *Game) spawn(kind Kind, side Side, pos Coord) (*Piece, error) {
	p := g.factories[kind](side, pos)
	if p == nil || p.Kind != kind {
		return nil, fmt.Errorf("spawn %s: %w: factory returned wrong tile", kind, ErrMissingTile)
	}
	p.Side = side
	p.Pos = pos
	if err := g.adopt(p); err != nil {
		return nil, err
	}
	return p, nil
}

// adopt numbers p and gives it to the board or to its pool.
func (g *Game) adopt(p *Piece) error {
	if p.Kind == KindWhiteLotus {
		if g.lotus[p.Side.Index()] != nil {
			return fmt.Errorf("adopt %s: %w: second lotus", p, ErrInvalidSnapshot)
		}
		if p.Captured {
			return fmt.Errorf("adopt %s: %w: lotus cannot be pooled", p, ErrInvalidSnapshot)
		}
	}
	if p.ID == 0 {
		p.ID = len(g.pieces) + 1
	}
	if p.Captured {
		g.pools[p.Side.Index()] = insertPooled(g.pools[p.Side.Index()], p)
	} else if err := g.board.Place(p); err != nil {
		return err
	}
	if p.Kind == KindWhiteLotus {
		g.lotus[p.Side.Index()] = p
	}
	g.pieces = append(g.pieces, p)
	return nil
}

func (g *Game) Board() *Board { return g.board }

func (g *Game) Options() Options { return g.opts }

func (g *Game) Turn() int { return g.turn }

func (g *Game) Status() Status { return g.status }

// IsHostTurn is false once the game is over.
func (g *Game) IsHostTurn() bool { return g.status == StatusRunning && g.turn%2 == 0 }

// IsGuestTurn is false once the game is over.
func (g *Game) IsGuestTurn() bool { return g.status == StatusRunning && g.turn%2 == 1 }

// SideToMove follows turn parity and ignores the status.
func (g *Game) SideToMove() Side {
	if g.turn%2 == 0 {
		return Host
	}
	return Guest
}

// NextTurn advances the turn counter. It is a no-op once the game is over.
func (g *Game) NextTurn() {
	if g.status.Terminal() {
		return
	}
	g.turn++
	g.log.Debug().Int("turn", g.turn).Stringer("side", g.SideToMove()).Msg("turn advanced")
}

// Pieces yields every piece of the game, captured ones included, in ID order.
func (g *Game) Pieces() iter.Seq[*Piece] {
	return func(yield func(*Piece) bool) {
		for _, p := range g.pieces {
			if !yield(p) {
				return
			}
		}
	}
}

func (g *Game) PieceByID(id int) (*Piece, bool) {
	for _, p := range g.pieces {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// PieceAt is the tolerant form of Board.Piece: invalid cells hold nothing.
func (g *Game) PieceAt(c Coord) *Piece {
	if !c.Valid() {
		return nil
	}
	return g.board.Piece(c)
}

// Lotus returns the White Lotus of side.
func (g *Game) Lotus(side Side) *Piece { return g.lotus[side.Index()] }

// Code is the registry code of kind.
func (g *Game) Code(kind Kind) string {
	code, _ := g.src.Code(kind)
	return code
}
