// path: internal/game/ability_dispatch.go
package game

import (
	"fmt"

	"ginseng_paisho/internal/shared"
)

// CanUseAbility reports whether p's ability is active where it stands.
// Kinds without an ability always report false.
func (g *Game) CanUseAbility(p *Piece) bool {
	if p == nil || p.Captured || !p.Kind.HasAbility() {
		return false
	}
	h, err := resolveAbilityHandler(p.Kind)
	if err != nil {
		return false
	}
	return h.Active(g, p)
}

// AbilityTargets lists the neighbours p may currently affect. It fails with
// ErrUnsupportedAbility for kinds without an ability.
func (g *Game) AbilityTargets(p *Piece) ([]Coord, error) {
	if p == nil || !p.Kind.HasAbility() {
		return nil, fmt.Errorf("ability targets of %s: %w", p, ErrUnsupportedAbility)
	}
	h, err := resolveAbilityHandler(p.Kind)
	if err != nil {
		return nil, err
	}
	if p.Captured || !h.Active(g, p) {
		return nil, nil
	}
	var targets []Coord
	for _, off := range shared.Surroundings {
		target := p.Pos.Add(off)
		if g.abilityReaches(h, p, target) {
			targets = append(targets, target)
		}
	}
	return targets, nil
}

func (g *Game) abilityReaches(h AbilityHandler, p *Piece, target Coord) bool {
	if !shared.Adjacent(p.Pos, target) || !target.Valid() || g.board.IsEmpty(target) {
		return false
	}
	landing := h.Landing(p.Pos, target)
	return landing.Valid() && g.board.IsEmpty(landing)
}

// UseAbility applies p's ability to the tile at target. Inactive abilities
// and cells that are not targets fail with ErrNoAbilityTarget and leave the
// board untouched.
func (g *Game) UseAbility(p *Piece, target Coord) error {
	if g.status.Terminal() {
		return ErrGameOver
	}
	if p == nil || !p.Kind.HasAbility() {
		return fmt.Errorf("use ability of %s: %w", p, ErrUnsupportedAbility)
	}
	h, err := resolveAbilityHandler(p.Kind)
	if err != nil {
		return err
	}
	if p.Captured || !h.Active(g, p) || !g.abilityReaches(h, p, target) {
		return fmt.Errorf("use ability of %s on %s: %w", p, target, ErrNoAbilityTarget)
	}
	victim := g.board.Piece(target)
	landing := h.Landing(p.Pos, target)
	if err := g.board.Relocate(victim, landing); err != nil {
		return err
	}
	g.log.Debug().
		Stringer("piece", p).
		Stringer("target", victim).
		Stringer("landing", landing).
		Msg("ability used")
	return nil
}
