package game

import "ginseng_paisho/internal/shared"

// ProtectionMode selects how Ginseng shields its allies.
type ProtectionMode uint8

const (
	// ProtectionProximity looks for a Ginseng at orthogonal distance 1..5,
	// ignoring what lies between.
	ProtectionProximity ProtectionMode = iota
	// ProtectionLineOfSight needs a Ginseng in an unobstructed cardinal line.
	ProtectionLineOfSight
)

const proximityReach = 5

func (m ProtectionMode) String() string {
	if m == ProtectionLineOfSight {
		return "line-of-sight"
	}
	return "proximity"
}

// ProtectionMode reports the mode the game was configured with.
func (g *Game) ProtectionMode() ProtectionMode {
	if g.opts.LineOfSightProtection {
		return ProtectionLineOfSight
	}
	return ProtectionProximity
}

// IsProtected reports whether p is immune to capture right now.
func (g *Game) IsProtected(p *Piece) bool {
	if p == nil || p.Captured {
		return false
	}
	if g.ProtectionMode() == ProtectionLineOfSight {
		return g.protectedInSight(p)
	}
	return g.protectedByProximity(p)
}

func (g *Game) isProtector(c Coord, side Side) bool {
	if !c.Valid() {
		return false
	}
	q := g.board.Piece(c)
	return q != nil && q.Side == side && q.Kind == KindGinseng
}

func (g *Game) protectedByProximity(p *Piece) bool {
	for i := 1; i <= proximityReach; i++ {
		for _, dir := range shared.Cardinals {
			if g.isProtector(p.Pos.Add(dir.Delta().Scale(i)), p.Side) {
				return true
			}
		}
	}
	return false
}

// protectedInSight walks each cardinal ray from p. The first occupied cell
// either is a friendly Ginseng or blocks that ray.
func (g *Game) protectedInSight(p *Piece) bool {
	for _, dir := range shared.Cardinals {
		step := dir.Delta()
		for cur := p.Pos.Add(step); cur.Valid(); cur = cur.Add(step) {
			if g.board.IsEmpty(cur) {
				continue
			}
			if g.isProtector(cur, p.Side) {
				return true
			}
			break
		}
	}
	return false
}
