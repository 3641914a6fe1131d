// path: internal/game/piece_ops.go
package game

import "fmt"

// Piece is a single tile. It is either on the board at Pos or sits in its
// owner's captured pool.
type Piece struct {
	ID       int
	Kind     Kind
	Side     Side
	Pos      Coord
	Captured bool
}

// NewPiece builds an unnumbered piece. The owning Game assigns the ID.
func NewPiece(kind Kind, side Side, pos Coord) *Piece {
	return &Piece{Kind: kind, Side: side, Pos: pos}
}

func NewWhiteLotus(side Side, pos Coord) *Piece { return NewPiece(KindWhiteLotus, side, pos) }
func NewDragon(side Side, pos Coord) *Piece { return NewPiece(KindDragon, side, pos) }
func NewBadgermole(side Side, pos Coord) *Piece { return NewPiece(KindBadgermole, side, pos) }
func NewSkyBison(side Side, pos Coord) *Piece { return NewPiece(KindSkyBison, side, pos) }
func NewKoi(side Side, pos Coord) *Piece { return NewPiece(KindKoi, side, pos) }
func NewWheel(side Side, pos Coord) *Piece { return NewPiece(KindWheel, side, pos) }
func NewGinseng(side Side, pos Coord) *Piece { return NewPiece(KindGinseng, side, pos) }
func NewOrchid(side Side, pos Coord) *Piece { return NewPiece(KindOrchid, side, pos) }
func NewLionTurtle(side Side, pos Coord) *Piece { return NewPiece(KindLionTurtle, side, pos) }

// Name is the display name shared by every tile of the kind.
func (p *Piece) Name() string { return p.Kind.String() }

func (p *Piece) String() string {
	if p == nil {
		return "<nil>"
	}
	if p.Captured {
		return fmt.Sprintf("%s %s#%d (captured)", p.Side, p.Kind, p.ID)
	}
	return fmt.Sprintf("%s %s#%d@%s", p.Side, p.Kind, p.ID, p.Pos)
}

var kindGlyphs = [kindCount]byte{'L', 'D', 'B', 'S', 'K', 'W', 'G', 'O', 'T'}

func (p *Piece) glyph() byte {
	g := kindGlyphs[p.Kind]
	if p.Side == Host {
		g += 'a' - 'A'
	}
	return g
}

// poolLess orders captured pools by kind, then by ID.
func poolLess(a, b *Piece) int {
	if a.Kind != b.Kind {
		return int(a.Kind) - int(b.Kind)
	}
	return a.ID - b.ID
}
