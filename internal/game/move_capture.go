// path: internal/game/move_capture.go
package game

import (
	"fmt"
	"slices"

	"ginseng_paisho/internal/shared"
)

// Move plays p to dst. An enemy on dst is captured in the same step. The
// turn is not advanced; that belongs to the interaction layer.
func (g *Game) Move(p *Piece, dst Coord) error {
	if g.status.Terminal() {
		return ErrGameOver
	}
	if p == nil || !g.IsValidMove(p, dst) {
		return fmt.Errorf("move %s to %s: %w", p, dst, ErrInvalidMove)
	}
	before := g.poolSizes()
	from := p.Pos
	if victim := g.board.Piece(dst); victim != nil {
		if err := g.capture(victim); err != nil {
			return err
		}
	}
	if err := g.board.Relocate(p, dst); err != nil {
		return err
	}
	g.log.Debug().Stringer("piece", p).Stringer("from", from).Stringer("to", dst).Msg("moved")
	return g.resolveAfterMove(p, before)
}

func (g *Game) poolSizes() [2]int {
	return [2]int{len(g.pools[0]), len(g.pools[1])}
}

// capture takes p off the board. Tiles go to their owner's pool; a White
// Lotus is sent back to its starting cell instead.
func (g *Game) capture(p *Piece) error {
	if p.Kind == KindWhiteLotus {
		if err := g.board.Relocate(p, lotusHome(p.Side)); err != nil {
			return fmt.Errorf("capture %s: %w", p, err)
		}
		g.log.Debug().Stringer("piece", p).Msg("lotus sent home")
		return nil
	}
	if err := g.board.Remove(p); err != nil {
		return fmt.Errorf("capture %s: %w", p, err)
	}
	p.Captured = true
	g.pools[p.Side.Index()] = insertPooled(g.pools[p.Side.Index()], p)
	g.log.Debug().Stringer("piece", p).Msg("captured")
	return nil
}

// uncapture returns a pooled piece to the board at pos.
func (g *Game) uncapture(p *Piece, pos Coord) error {
	pool := g.pools[p.Side.Index()]
	idx := slices.Index(pool, p)
	if !p.Captured || idx < 0 {
		return fmt.Errorf("uncapture %s: %w", p, ErrNoSwapChoice)
	}
	prev := p.Pos
	p.Pos = pos
	p.Captured = false
	if err := g.board.Place(p); err != nil {
		p.Pos = prev
		p.Captured = true
		return fmt.Errorf("uncapture %s: %w", p, err)
	}
	g.pools[p.Side.Index()] = slices.Delete(pool, idx, idx+1)
	g.log.Debug().Stringer("piece", p).Msg("returned to play")
	return nil
}

func insertPooled(pool []*Piece, p *Piece) []*Piece {
	idx, _ := slices.BinarySearchFunc(pool, p, poolLess)
	return slices.Insert(pool, idx, p)
}

// Captured returns a copy of side's pool in presentation order.
func (g *Game) Captured(side Side) []*Piece {
	return slices.Clone(g.pools[side.Index()])
}

var (
	swapSlotX = [...]int{8, 7, 6, 8, 7, 8}
	swapSlotY = [...]int{8, 8, 8, 7, 7, 6}
)

// SwapSlot is the board cell on which the i-th captured piece of side is
// offered during a swap. Slots fill the outer corners of the grid, outside
// the playable diamond.
func SwapSlot(side Side, i int) Coord {
	n := len(swapSlotX)
	x, y := swapSlotX[i%n], swapSlotY[i%n]
	if side == Guest {
		x = -x
	}
	if i >= n {
		x = -x
	}
	if side == Host {
		y = -y
	}
	return Coord{X: x, Y: y}
}

// SwapIndex is the inverse of SwapSlot for a pool of the given size.
func SwapIndex(side Side, c Coord, size int) (int, bool) {
	if !shared.InGrid(c) {
		return 0, false
	}
	for i := range size {
		if SwapSlot(side, i) == c {
			return i, true
		}
	}
	return 0, false
}
