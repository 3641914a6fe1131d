// path: internal/game/ability_handlers.go
package game

// pushHandler is the Dragon's gust: a neighbour is blown one cell further
// away, landing at 2*target - self.
type pushHandler struct{}

func (pushHandler) Active(g *Game, p *Piece) bool {
	if !g.board.Zone(p.Pos).IsRedGarden() {
		return false
	}
	return g.opts.PushIgnoresTurtle || !g.IsTurtleBlocked(p)
}

func (pushHandler) Landing(self, target Coord) Coord {
	return target.Scale(2).Sub(self)
}

// tunnelHandler is the Badgermole's flip: a neighbour is moved through the
// Badgermole to the opposite side, landing at 2*self - target.
type tunnelHandler struct{}

func (tunnelHandler) Active(g *Game, p *Piece) bool {
	return g.board.Zone(p.Pos).IsWhiteGarden()
}

func (tunnelHandler) Landing(self, target Coord) Coord {
	return self.Scale(2).Sub(target)
}
