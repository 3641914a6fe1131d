package game

import (
	"fmt"
	"iter"
	"strings"

	"ginseng_paisho/internal/shared"
)

// Board owns the grid of tiles and the fixed zone classification.
type Board struct {
	cells [shared.GridSize][shared.GridSize]*Piece
	zones [shared.GridSize][shared.GridSize]Zone

	// afterMove runs once a relocation has been applied.
	afterMove func(*Piece)
}

// NewBoard returns an empty board with zones computed.
func NewBoard() *Board {
	b := &Board{}
	for x := -shared.BoardRadius; x <= shared.BoardRadius; x++ {
		for y := -shared.BoardRadius; y <= shared.BoardRadius; y++ {
			row, col := shared.ToStorageIndex(x, y)
			b.zones[row][col] = gardenZone(x, y)
		}
	}
	for flag, cells := range shrineCells {
		for _, c := range cells {
			row, col := c.Storage()
			b.zones[row][col] |= flag
		}
	}
	return b
}

func mustStorage(c Coord) (int, int) {
	if !c.Valid() {
		panic(fmt.Errorf("%w: %s", ErrOutOfBounds, c))
	}
	return c.Storage()
}

// Piece returns the occupant of c, or nil. Panics if c is not playable.
func (b *Board) Piece(c Coord) *Piece {
	row, col := mustStorage(c)
	return b.cells[row][col]
}

// Zone returns the zone flags of c. Panics if c is not playable.
func (b *Board) Zone(c Coord) Zone {
	row, col := mustStorage(c)
	return b.zones[row][col]
}

func (b *Board) IsEmpty(c Coord) bool { return b.Piece(c) == nil }

// Place puts p on the cell matching its stored position.
func (b *Board) Place(p *Piece) error {
	if !p.Pos.Valid() {
		return fmt.Errorf("place %s: %w: %s", p, ErrOutOfBounds, p.Pos)
	}
	row, col := p.Pos.Storage()
	if occ := b.cells[row][col]; occ != nil {
		return fmt.Errorf("place %s: %w by %s", p, ErrOccupied, occ)
	}
	b.cells[row][col] = p
	return nil
}

// Remove clears the cell of p. The cell must hold this exact piece.
func (b *Board) Remove(p *Piece) error {
	if !b.holds(p) {
		return fmt.Errorf("remove %s: %w", p, ErrNotOnBoard)
	}
	row, col := p.Pos.Storage()
	b.cells[row][col] = nil
	return nil
}

// Relocate moves p to dst. Captures must be resolved by the caller first.
func (b *Board) Relocate(p *Piece, dst Coord) error {
	if !b.holds(p) {
		return fmt.Errorf("relocate %s: %w", p, ErrNotOnBoard)
	}
	if !dst.Valid() {
		return fmt.Errorf("relocate %s: %w: %s", p, ErrOutOfBounds, dst)
	}
	row, col := dst.Storage()
	if occ := b.cells[row][col]; occ != nil {
		return fmt.Errorf("relocate %s: %w by %s", p, ErrOccupied, occ)
	}
	fromRow, fromCol := p.Pos.Storage()
	b.cells[fromRow][fromCol] = nil
	b.cells[row][col] = p
	p.Pos = dst
	if b.afterMove != nil {
		b.afterMove(p)
	}
	return nil
}

func (b *Board) holds(p *Piece) bool {
	if p == nil || p.Captured || !p.Pos.Valid() {
		return false
	}
	row, col := p.Pos.Storage()
	return b.cells[row][col] == p
}

// Neighbors yields the occupied cells around c.
func (b *Board) Neighbors(c Coord) iter.Seq[*Piece] {
	return func(yield func(*Piece) bool) {
		for _, off := range shared.Surroundings {
			n := c.Add(off)
			if !n.Valid() {
				continue
			}
			if p := b.Piece(n); p != nil {
				if !yield(p) {
					return
				}
			}
		}
	}
}

// Pieces yields every tile on the board in storage order.
func (b *Board) Pieces() iter.Seq[*Piece] {
	return func(yield func(*Piece) bool) {
		for row := range b.cells {
			for _, p := range b.cells[row] {
				if p == nil {
					continue
				}
				if !yield(p) {
					return
				}
			}
		}
	}
}

// String draws the board with north at the top. Guest tiles are upper
// case, host tiles lower case.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(shared.GridSize * (2*shared.GridSize + 4))
	for y := shared.BoardRadius; y >= -shared.BoardRadius; y-- {
		fmt.Fprintf(&sb, "%3d ", y)
		for x := -shared.BoardRadius; x <= shared.BoardRadius; x++ {
			c := Coord{X: x, Y: y}
			switch {
			case !c.Valid():
				sb.WriteString("  ")
			case b.Piece(c) != nil:
				sb.WriteByte(b.Piece(c).glyph())
				sb.WriteByte(' ')
			case b.Zone(c).IsShrine():
				sb.WriteString("* ")
			default:
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
