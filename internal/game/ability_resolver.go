package game

// resolveAfterMove applies the passive effects of a completed move. An
// Orchid that captured sacrifices itself unless a Lion Turtle holds it.
func (g *Game) resolveAfterMove(p *Piece, poolsBefore [2]int) error {
	if p.Kind != KindOrchid || p.Captured {
		return nil
	}
	if g.poolSizes() == poolsBefore || g.IsTurtleBlocked(p) {
		return nil
	}
	g.log.Debug().Stringer("piece", p).Msg("orchid sacrificed")
	return g.capture(p)
}
