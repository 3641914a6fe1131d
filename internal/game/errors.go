// path: internal/game/errors.go
package game

import "errors"

var (
	ErrInvalidMove        = errors.New("invalid move")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrGameOver           = errors.New("game over")
	ErrOutOfBounds        = errors.New("coordinates out of bounds")
	ErrOccupied           = errors.New("cell occupied")
	ErrNotOnBoard         = errors.New("piece not on board")
	ErrUnsupportedAbility = errors.New("piece has no ability")
	ErrNoAbilityTarget    = errors.New("not an ability target")
	ErrNoSelection        = errors.New("no piece selected")
	ErrPending            = errors.New("another interaction is pending")
	ErrNotInSwap          = errors.New("no swap pending")
	ErrNoSwapChoice       = errors.New("not a swap choice")
	ErrMissingTile        = errors.New("tile type not registered")
	ErrInvalidSnapshot    = errors.New("invalid snapshot")
)
