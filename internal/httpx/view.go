// path: internal/httpx/view.go
package httpx

import (
	"time"

	"ginseng_paisho/internal/game"
	"ginseng_paisho/internal/store"
)

type pieceView struct {
	ID        int        `json:"id"`
	Code      string     `json:"code"`
	Kind      game.Kind  `json:"kind"`
	Side      game.Side  `json:"side"`
	Pos       game.Coord `json:"pos"`
	Protected bool       `json:"protected,omitempty"`
	Trapped   bool       `json:"trapped,omitempty"`
	Boosted   bool       `json:"boosted,omitempty"`
}

type slotView struct {
	Slot game.Coord `json:"slot"`
	pieceView
}

type stateView struct {
	Turn        int          `json:"turn"`
	Status      game.Status  `json:"status"`
	SideToMove  game.Side    `json:"sideToMove"`
	Phase       game.Phase   `json:"phase"`
	Protection  string       `json:"protection"`
	Capturing   bool         `json:"capturingAllowed"`
	Selected    *pieceView   `json:"selected,omitempty"`
	Moves       []game.Coord `json:"moves,omitempty"`
	Targets     []game.Coord `json:"targets,omitempty"`
	SwapChoices []slotView   `json:"swapChoices,omitempty"`
	Board       []pieceView  `json:"board"`
	HostPool    []slotView   `json:"hostPool"`
	GuestPool   []slotView   `json:"guestPool"`
}

func pieceViewOf(g *game.Game, p *game.Piece) pieceView {
	v := pieceView{ID: p.ID, Code: g.Code(p.Kind), Kind: p.Kind, Side: p.Side, Pos: p.Pos}
	if !p.Captured {
		v.Protected = g.IsProtected(p)
		v.Trapped = g.IsTrapped(p)
		v.Boosted = g.IsBoosted(p)
	}
	return v
}

func poolView(g *game.Game, side game.Side, pool []*game.Piece) []slotView {
	out := make([]slotView, 0, len(pool))
	for i, p := range pool {
		out = append(out, slotView{Slot: game.SwapSlot(side, i), pieceView: pieceViewOf(g, p)})
	}
	return out
}

// viewOf renders the game for clients. Callers hold the engine lock.
func viewOf(g *game.Game) stateView {
	in := g.Interaction()
	v := stateView{
		Turn:       g.Turn(),
		Status:     g.Status(),
		SideToMove: g.SideToMove(),
		Phase:      in.Phase,
		Protection: g.ProtectionMode().String(),
		Capturing:  g.CapturingAllowed(),
		Moves:      in.Moves,
		Targets:    in.Targets,
		Board:      []pieceView{},
		HostPool:   poolView(g, game.Host, g.Captured(game.Host)),
		GuestPool:  poolView(g, game.Guest, g.Captured(game.Guest)),
	}
	if in.Selected != nil {
		sel := pieceViewOf(g, in.Selected)
		v.Selected = &sel
		if in.Phase == game.PhaseSwap {
			v.SwapChoices = poolView(g, in.Selected.Side, in.SwapChoices)
		}
	}
	for p := range g.Board().Pieces() {
		v.Board = append(v.Board, pieceViewOf(g, p))
	}
	return v
}

type saveView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Turn      int       `json:"turn"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func saveViewOf(rec store.SavedGame) saveView {
	return saveView{
		ID:        rec.ID,
		Name:      rec.Name,
		Turn:      rec.Turn,
		Status:    rec.Status,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
