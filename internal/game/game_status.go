// path: internal/game/game_status.go
package game

// setStatus moves a running game into s. Terminal states never change.
func (g *Game) setStatus(s Status) bool {
	if g.status.Terminal() || s == g.status {
		return false
	}
	g.status = s
	g.sel = selection{}
	g.log.Info().Int("turn", g.turn).Stringer("status", s).Msg("game finished")
	return true
}

// afterMove is the board's relocation hook. A White Lotus crossing into
// the opponent's half wins the game for its side.
func (g *Game) afterMove(p *Piece) {
	if p.Kind != KindWhiteLotus {
		return
	}
	switch {
	case p.Side == Guest && p.Pos.Y < 0:
		g.setStatus(winFor(Guest))
	case p.Side == Host && p.Pos.Y > 0:
		g.setStatus(winFor(Host))
	}
}

// CheckForDraw declares a draw when no tile of the side to move has a legal
// destination. It reports true only on the call that ends the game.
func (g *Game) CheckForDraw() bool {
	if g.status.Terminal() {
		return false
	}
	if g.hasAnyMove(g.SideToMove()) {
		return false
	}
	return g.setStatus(StatusDraw)
}
