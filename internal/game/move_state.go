// path: internal/game/move_state.go
package game

import (
	"fmt"
	"slices"
)

// Phase is the sub-state of the interaction state machine.
type Phase uint8

const (
	// PhaseSelect waits for a tile of the side to move to be picked.
	PhaseSelect Phase = iota
	// PhaseMove has a tile selected and waits for its destination.
	PhaseMove
	// PhaseAbility has moved the selected tile and waits for an ability
	// target. The turn has not advanced yet.
	PhaseAbility
	// PhaseSwap waits for a pooled tile to trade for the shrine mover.
	PhaseSwap
)

func (p Phase) String() string {
	switch p {
	case PhaseSelect:
		return "select"
	case PhaseMove:
		return "move"
	case PhaseAbility:
		return "ability"
	case PhaseSwap:
		return "swap"
	default:
		return "?"
	}
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Outcome tells the caller what a click did.
type Outcome uint8

const (
	OutcomeIgnored Outcome = iota
	OutcomeSelected
	OutcomeDeselected
	OutcomeMoved
	OutcomeAbilityUsed
	OutcomeSwapped
	OutcomeSwapCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSelected:
		return "selected"
	case OutcomeDeselected:
		return "deselected"
	case OutcomeMoved:
		return "moved"
	case OutcomeAbilityUsed:
		return "ability-used"
	case OutcomeSwapped:
		return "swapped"
	case OutcomeSwapCancelled:
		return "swap-cancelled"
	default:
		return "ignored"
	}
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

type selection struct {
	piece   *Piece
	phase   Phase
	moves   []Coord
	targets []Coord
}

// Interaction is a read-only view of the selection slot.
type Interaction struct {
	Phase       Phase
	Selected    *Piece
	Moves       []Coord
	Targets     []Coord
	SwapChoices []*Piece
}

func (g *Game) Interaction() Interaction {
	in := Interaction{
		Phase:    g.sel.phase,
		Selected: g.sel.piece,
		Moves:    slices.Clone(g.sel.moves),
		Targets:  slices.Clone(g.sel.targets),
	}
	if g.sel.phase == PhaseSwap {
		in.SwapChoices = g.Captured(g.sel.piece.Side)
	}
	return in
}

// Click feeds one board cell into the state machine, the way a pointer
// press on the board would. Cells outside the diamond are only meaningful
// as swap slots.
func (g *Game) Click(c Coord) (Outcome, error) {
	if g.status.Terminal() {
		return OutcomeIgnored, ErrGameOver
	}
	switch g.sel.phase {
	case PhaseSwap:
		if c == g.sel.piece.Pos {
			return OutcomeSwapCancelled, g.CancelSwap()
		}
		pool := g.pools[g.sel.piece.Side.Index()]
		if i, ok := SwapIndex(g.sel.piece.Side, c, len(pool)); ok {
			return OutcomeSwapped, g.SwapWith(pool[i].ID)
		}
	case PhaseSelect:
		p := g.PieceAt(c)
		if p != nil && p.Side == g.SideToMove() {
			return OutcomeSelected, g.Select(p)
		}
	case PhaseMove:
		if c == g.sel.piece.Pos {
			return OutcomeDeselected, g.Deselect()
		}
		if slices.Contains(g.sel.moves, c) {
			return OutcomeMoved, g.MoveSelected(c)
		}
	case PhaseAbility:
		if c == g.sel.piece.Pos {
			return OutcomeDeselected, g.Deselect()
		}
		if slices.Contains(g.sel.targets, c) {
			return OutcomeAbilityUsed, g.UseSelectedAbility(c)
		}
	}
	return OutcomeIgnored, nil
}

// Select picks p for the side to move. A different tile may replace the
// current selection as long as it has not moved yet.
func (g *Game) Select(p *Piece) error {
	if g.status.Terminal() {
		return ErrGameOver
	}
	if g.sel.phase != PhaseSelect && g.sel.phase != PhaseMove {
		return fmt.Errorf("select: %w: %s", ErrPending, g.sel.phase)
	}
	if p == nil || p.Captured {
		return fmt.Errorf("select %s: %w", p, ErrNotOnBoard)
	}
	if p.Side != g.SideToMove() {
		return fmt.Errorf("select %s: %w", p, ErrNotYourTurn)
	}
	g.sel = selection{piece: p, phase: PhaseMove, moves: g.MoveList(p)}
	return nil
}

// Deselect drops the selection. Forfeiting a pending ability ends the turn.
func (g *Game) Deselect() error {
	switch g.sel.phase {
	case PhaseMove:
		g.sel = selection{}
		g.CheckForDraw()
		return nil
	case PhaseAbility:
		g.log.Debug().Stringer("piece", g.sel.piece).Msg("ability forfeited")
		g.endTurn()
		return nil
	case PhaseSwap:
		return fmt.Errorf("deselect: %w: %s", ErrPending, g.sel.phase)
	default:
		return ErrNoSelection
	}
}

// MoveSelected moves the selected tile and advances the state machine.
func (g *Game) MoveSelected(dst Coord) error {
	if g.sel.phase != PhaseMove {
		return ErrNoSelection
	}
	p := g.sel.piece
	if err := g.Move(p, dst); err != nil {
		return err
	}
	if g.status.Terminal() {
		return nil
	}
	if g.CanUseAbility(p) {
		targets, err := g.AbilityTargets(p)
		if err != nil {
			return err
		}
		if len(targets) > 0 {
			g.sel = selection{piece: p, phase: PhaseAbility, targets: targets}
			return nil
		}
	}
	g.afterAction(p)
	return nil
}

// Play selects the tile on from and moves it to to in one step. A rejected
// move leaves the selection as it was.
func (g *Game) Play(from, to Coord) error {
	prev := g.sel
	if err := g.Select(g.PieceAt(from)); err != nil {
		return err
	}
	if err := g.MoveSelected(to); err != nil {
		g.sel = prev
		return err
	}
	return nil
}

// UseSelectedAbility spends the pending ability on target.
func (g *Game) UseSelectedAbility(target Coord) error {
	if g.sel.phase != PhaseAbility {
		return fmt.Errorf("use ability: %w", ErrNoSelection)
	}
	p := g.sel.piece
	if err := g.UseAbility(p, target); err != nil {
		return err
	}
	if g.status.Terminal() {
		return nil
	}
	g.afterAction(p)
	return nil
}

// SwapWith trades the shrine mover for the pooled tile with the given ID.
// The chosen tile enters on the mover's cell.
func (g *Game) SwapWith(id int) error {
	if g.status.Terminal() {
		return ErrGameOver
	}
	if g.sel.phase != PhaseSwap {
		return ErrNotInSwap
	}
	mover := g.sel.piece
	chosen, ok := g.PieceByID(id)
	if !ok || !chosen.Captured || chosen.Side != mover.Side {
		return fmt.Errorf("swap with #%d: %w", id, ErrNoSwapChoice)
	}
	cell := mover.Pos
	if err := g.capture(mover); err != nil {
		return err
	}
	if err := g.uncapture(chosen, cell); err != nil {
		return err
	}
	g.log.Debug().Stringer("out", mover).Stringer("in", chosen).Msg("swapped")
	g.endTurn()
	return nil
}

// CancelSwap keeps the mover on the shrine and ends the turn.
func (g *Game) CancelSwap() error {
	if g.status.Terminal() {
		return ErrGameOver
	}
	if g.sel.phase != PhaseSwap {
		return ErrNotInSwap
	}
	g.endTurn()
	return nil
}

// afterAction enters the swap when p ended on a shrine, otherwise ends the
// turn. A White Lotus is never offered a swap since it cannot be pooled.
func (g *Game) afterAction(p *Piece) {
	if p.Kind != KindWhiteLotus && g.IsInShrine(p) {
		g.sel = selection{piece: p, phase: PhaseSwap}
		return
	}
	g.endTurn()
}

func (g *Game) endTurn() {
	g.sel = selection{}
	g.NextTurn()
	g.CheckForDraw()
}
