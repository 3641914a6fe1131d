// path: internal/game/moves.go
package game

import (
	"iter"
	"slices"

	"ginseng_paisho/internal/shared"
)

const (
	baseRadius    = 5
	boostedRadius = 6
)

// ValidMoves yields the legal destinations of p. The sequence is computed
// fresh on every iteration.
func (g *Game) ValidMoves(p *Piece) iter.Seq[Coord] {
	return g.ValidMovesWith(p, MoveOptions{})
}

// ValidMovesWith is ValidMoves with a per-query flight override.
func (g *Game) ValidMovesWith(p *Piece, mo MoveOptions) iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		if p == nil || p.Captured || g.status.Terminal() {
			return
		}
		for _, c := range g.destinations(p, mo) {
			if !yield(c) {
				return
			}
		}
	}
}

func (g *Game) destinations(p *Piece, mo MoveOptions) []Coord {
	switch p.Kind {
	case KindWhiteLotus:
		return g.lotusJumps(p)
	case KindWheel:
		return g.wheelRays(p)
	}
	boosted := g.IsBoosted(p)
	if boosted && g.flightEnabled(mo) {
		return g.rhombusMoves(p, boostedRadius)
	}
	if boosted {
		return g.bfsMoves(p, boostedRadius)
	}
	return g.bfsMoves(p, baseRadius)
}

// flightEnabled resolves the per-move override against the game policy.
func (g *Game) flightEnabled(mo MoveOptions) bool {
	switch mo.Flight {
	case FlightForceOn:
		return true
	case FlightForceOff:
		return false
	}
	switch g.opts.Flight {
	case FlightAlways:
		return true
	case FlightOff:
		return false
	default:
		return g.opts.BisonFlight
	}
}

// IsValidMove is a membership test against ValidMoves.
func (g *Game) IsValidMove(p *Piece, dst Coord) bool {
	for c := range g.ValidMoves(p) {
		if c == dst {
			return true
		}
	}
	return false
}

// bfsMoves floods orthogonally from p up to radius steps. Empty cells
// extend the search, capturable cells are recorded but stop it.
func (g *Game) bfsMoves(p *Piece, radius int) []Coord {
	var dist [shared.GridSize][shared.GridSize]int
	for i := range dist {
		for j := range dist[i] {
			dist[i][j] = -1
		}
	}
	row, col := p.Pos.Storage()
	dist[row][col] = 0

	var moves []Coord
	queue := []Coord{p.Pos}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		cr, cc := cur.Storage()
		d := dist[cr][cc]
		if d >= radius {
			continue
		}
		for _, dir := range shared.Cardinals {
			next := cur.Add(dir.Delta())
			if !next.Valid() {
				continue
			}
			nr, nc := next.Storage()
			if dist[nr][nc] >= 0 {
				continue
			}
			if !g.canMoveThere(p, next, true) {
				continue
			}
			dist[nr][nc] = d + 1
			moves = append(moves, next)
			if g.board.IsEmpty(next) {
				queue = append(queue, next)
			}
		}
	}
	return moves
}

// rhombusMoves ignores blockers: every cell within Manhattan distance
// radius passing canMoveThere is a destination.
func (g *Game) rhombusMoves(p *Piece, radius int) []Coord {
	var moves []Coord
	for dx := -radius; dx <= radius; dx++ {
		span := radius - abs(dx)
		for dy := -span; dy <= span; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			next := p.Pos.Add(Coord{X: dx, Y: dy})
			if g.canMoveThere(p, next, true) {
				moves = append(moves, next)
			}
		}
	}
	return moves
}

// lotusJumps explores diagonal two-cell jumps over an occupied anchor. A
// jump needs an empty landing cell and every landing extends the search.
func (g *Game) lotusJumps(p *Piece) []Coord {
	var visited [shared.GridSize][shared.GridSize]bool
	row, col := p.Pos.Storage()
	visited[row][col] = true

	var moves []Coord
	queue := []Coord{p.Pos}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, diag := range shared.Diagonals {
			anchor := cur.Add(diag)
			next := cur.Add(diag.Scale(2))
			if !next.Valid() {
				continue
			}
			nr, nc := next.Storage()
			if visited[nr][nc] {
				continue
			}
			if !g.canMoveThere(p, next, false) || g.board.IsEmpty(anchor) {
				continue
			}
			visited[nr][nc] = true
			moves = append(moves, next)
			queue = append(queue, next)
		}
	}
	return moves
}

// wheelRays slides along each cardinal direction until blocked. A capture
// ends the ray.
func (g *Game) wheelRays(p *Piece) []Coord {
	var moves []Coord
	for _, dir := range shared.Cardinals {
		step := dir.Delta()
		for cur := p.Pos.Add(step); cur.Valid(); cur = cur.Add(step) {
			if !g.canMoveThere(p, cur, true) {
				break
			}
			moves = append(moves, cur)
			if !g.board.IsEmpty(cur) {
				break
			}
		}
	}
	return moves
}

// hasAnyMove reports whether side has at least one legal destination.
func (g *Game) hasAnyMove(side Side) bool {
	for _, p := range g.pieces {
		if p.Side != side || p.Captured {
			continue
		}
		for range g.ValidMoves(p) {
			return true
		}
	}
	return false
}

// MoveList collects ValidMoves in a stable order for callers that need a
// slice, such as JSON views.
func (g *Game) MoveList(p *Piece) []Coord {
	moves := slices.Collect(g.ValidMoves(p))
	slices.SortFunc(moves, compareCoord)
	return moves
}

func compareCoord(a, b Coord) int {
	if a.X != b.X {
		return a.X - b.X
	}
	return a.Y - b.Y
}
