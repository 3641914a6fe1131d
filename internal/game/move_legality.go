// path: internal/game/move_legality.go
package game

import "ginseng_paisho/internal/shared"

// canMoveThere is the destination predicate shared by every movement
// pattern. The shrine gate is checked first, the trap check last.
func (g *Game) canMoveThere(p *Piece, dst Coord, allowCapture bool) bool {
	if !dst.Valid() {
		return false
	}
	zone := g.board.Zone(dst)
	occupant := g.board.Piece(dst)
	var ok bool
	if zone.Has(ZoneNorthShrine | ZoneSouthShrine) {
		ok = p.Kind == KindWhiteLotus && zone.Has(farShrine(p.Side)) && occupant == nil
	} else {
		ok = occupant == nil ||
			(allowCapture &&
				occupant.Side != p.Side &&
				g.CapturingAllowed() &&
				g.capturable(occupant))
	}
	return ok && !g.IsTrapped(p)
}

// capturable reports whether occupant may be taken. A lotus is sent home
// when taken, so its home cell must be free.
func (g *Game) capturable(occupant *Piece) bool {
	if g.IsProtected(occupant) {
		return false
	}
	return occupant.Kind != KindWhiteLotus || g.board.IsEmpty(lotusHome(occupant.Side))
}

// farShrine is the shrine a side's lotus races toward.
func farShrine(side Side) Zone {
	return homeShrine(side.Opposite())
}

// CapturingAllowed is false while either lotus stands on a shrine cell.
func (g *Game) CapturingAllowed() bool {
	for _, l := range g.lotus {
		if l != nil && !l.Captured && g.board.Zone(l.Pos).IsShrine() {
			return false
		}
	}
	return true
}

// adjacentEnemy reports whether an enemy of the given kind touches p.
func (g *Game) adjacentEnemy(p *Piece, kind Kind) bool {
	if p.Captured {
		return false
	}
	for n := range g.board.Neighbors(p.Pos) {
		if n.Kind == kind && n.Side != p.Side {
			return true
		}
	}
	return false
}

// IsTrapped reports whether an enemy Koi pins p in place.
func (g *Game) IsTrapped(p *Piece) bool { return g.adjacentEnemy(p, KindKoi) }

// IsTurtleBlocked reports whether an enemy Lion Turtle suppresses p.
func (g *Game) IsTurtleBlocked(p *Piece) bool { return g.adjacentEnemy(p, KindLionTurtle) }

// IsBoosted reports whether p is boost-eligible and touches its own lotus.
func (g *Game) IsBoosted(p *Piece) bool {
	if !p.Kind.BoostEligible() || p.Captured {
		return false
	}
	l := g.lotus[p.Side.Index()]
	return l != nil && !l.Captured && shared.Adjacent(p.Pos, l.Pos)
}

// IsInShrine reports whether p stands on any shrine cell.
func (g *Game) IsInShrine(p *Piece) bool {
	return !p.Captured && g.board.Zone(p.Pos).IsShrine()
}
