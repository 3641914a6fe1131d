// path: internal/game/ability_registry.go
package game

import (
	"errors"
	"fmt"
	"sync"
)

// AbilityHandler implements a targeted tile ability. Targets are limited to
// occupied cells in the tile's 8-neighbourhood.
type AbilityHandler interface {
	// Active reports whether p may use its ability where it stands.
	Active(g *Game, p *Piece) bool
	// Landing is where a tile at target ends up when the ability is
	// applied from self.
	Landing(self, target Coord) Coord
}

var (
	abilityRegistryMu sync.RWMutex
	abilityRegistry   [kindCount]AbilityHandler

	ErrDuplicateRegistration = errors.New("game: ability handler already registered")
	ErrNilHandler            = errors.New("game: nil ability handler")
	ErrInvalidKind           = errors.New("game: invalid tile kind")
)

// RegisterAbilityHandler attaches an ability to a tile kind.
func RegisterAbilityHandler(kind Kind, h AbilityHandler) error {
	if !kind.Valid() {
		return ErrInvalidKind
	}
	if h == nil {
		return ErrNilHandler
	}
	abilityRegistryMu.Lock()
	defer abilityRegistryMu.Unlock()
	if abilityRegistry[kind] != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateRegistration, kind)
	}
	abilityRegistry[kind] = h
	return nil
}

func resolveAbilityHandler(kind Kind) (AbilityHandler, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	abilityRegistryMu.RLock()
	h := abilityRegistry[kind]
	abilityRegistryMu.RUnlock()
	if h == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAbility, kind)
	}
	return h, nil
}
