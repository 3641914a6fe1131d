// path: internal/game/state.go
package game

import (
	"cmp"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
)

// SnapshotVersion is bumped whenever the snapshot layout changes.
const SnapshotVersion = 1

// PieceState is a serializable representation of a Piece.
type PieceState struct {
	ID       int    `json:"id"`
	Code     string `json:"code"`
	Kind     Kind   `json:"kind"`
	Side     Side   `json:"side"`
	Pos      Coord  `json:"pos"`
	Captured bool   `json:"captured,omitempty"`
}

// Snapshot is the complete, serializable state of a game between turns.
type Snapshot struct {
	Version               int          `json:"version"`
	Turn                  int          `json:"turn"`
	Status                Status       `json:"status"`
	BisonFlight           bool         `json:"bisonFlight"`
	Flight                FlightPolicy `json:"flightPolicy"`
	LineOfSightProtection bool         `json:"lineOfSightProtection"`
	PushIgnoresTurtle     bool         `json:"pushIgnoresTurtle"`
	Board                 []PieceState `json:"board"`
	HostPool              []PieceState `json:"hostPool"`
	GuestPool             []PieceState `json:"guestPool"`
}

func (g *Game) pieceState(p *Piece) PieceState {
	return PieceState{
		ID:       p.ID,
		Code:     g.Code(p.Kind),
		Kind:     p.Kind,
		Side:     p.Side,
		Pos:      p.Pos,
		Captured: p.Captured,
	}
}

// Snapshot captures the game. A pending selection is not part of it.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Version:               SnapshotVersion,
		Turn:                  g.turn,
		Status:                g.status,
		BisonFlight:           g.opts.BisonFlight,
		Flight:                g.opts.Flight,
		LineOfSightProtection: g.opts.LineOfSightProtection,
		PushIgnoresTurtle:     g.opts.PushIgnoresTurtle,
		Board:                 []PieceState{},
	}
	for _, p := range g.pieces {
		if !p.Captured {
			s.Board = append(s.Board, g.pieceState(p))
		}
	}
	s.HostPool = make([]PieceState, 0, len(g.pools[Host.Index()]))
	for _, p := range g.pools[Host.Index()] {
		s.HostPool = append(s.HostPool, g.pieceState(p))
	}
	s.GuestPool = make([]PieceState, 0, len(g.pools[Guest.Index()]))
	for _, p := range g.pools[Guest.Index()] {
		s.GuestPool = append(s.GuestPool, g.pieceState(p))
	}
	return s
}

// Options returns the rule variants recorded in s.
func (s Snapshot) Options() Options {
	return Options{
		BisonFlight:           s.BisonFlight,
		Flight:                s.Flight,
		LineOfSightProtection: s.LineOfSightProtection,
		PushIgnoresTurtle:     s.PushIgnoresTurtle,
	}
}

// Restore rebuilds a game from s. Rule variants come from the snapshot;
// logger may be nil.
func Restore(src TileSource, s Snapshot, logger *zerolog.Logger) (*Game, error) {
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("restore: %w: version %d", ErrInvalidSnapshot, s.Version)
	}
	if s.Turn < 1 {
		return nil, fmt.Errorf("restore: %w: turn %d", ErrInvalidSnapshot, s.Turn)
	}
	if s.Status > StatusDraw {
		return nil, fmt.Errorf("restore: %w: status %d", ErrInvalidSnapshot, s.Status)
	}
	opts := s.Options()
	opts.Logger = logger
	g, err := newGame(src, opts)
	if err != nil {
		return nil, err
	}

	type entry struct {
		state    PieceState
		captured bool
		side     Side
		pooled   bool
	}
	entries := make([]entry, 0, len(s.Board)+len(s.HostPool)+len(s.GuestPool))
	for _, ps := range s.Board {
		entries = append(entries, entry{state: ps})
	}
	for _, ps := range s.HostPool {
		entries = append(entries, entry{state: ps, captured: true, side: Host, pooled: true})
	}
	for _, ps := range s.GuestPool {
		entries = append(entries, entry{state: ps, captured: true, side: Guest, pooled: true})
	}
	slices.SortFunc(entries, func(a, b entry) int { return cmp.Compare(a.state.ID, b.state.ID) })

	seen := make(map[int]bool, len(entries))
	var errs []error
	for _, e := range entries {
		ps := e.state
		switch {
		case ps.ID <= 0 || seen[ps.ID]:
			errs = append(errs, fmt.Errorf("piece id %d: %w", ps.ID, ErrInvalidSnapshot))
			continue
		case !ps.Kind.Valid():
			errs = append(errs, fmt.Errorf("piece #%d: %w: kind %d", ps.ID, ErrInvalidSnapshot, ps.Kind))
			continue
		case e.pooled && ps.Side != e.side:
			errs = append(errs, fmt.Errorf("piece #%d: %w: in the %s pool", ps.ID, ErrInvalidSnapshot, e.side))
			continue
		}
		if want, ok := src.Code(ps.Kind); ps.Code != "" && (!ok || want != ps.Code) {
			errs = append(errs, fmt.Errorf("piece #%d: %w: code %q for %s", ps.ID, ErrInvalidSnapshot, ps.Code, ps.Kind))
			continue
		}
		seen[ps.ID] = true
		p := g.factories[ps.Kind](ps.Side, ps.Pos)
		if p == nil || p.Kind != ps.Kind {
			errs = append(errs, fmt.Errorf("piece #%d: %w: factory returned wrong tile", ps.ID, ErrMissingTile))
			continue
		}
		p.ID = ps.ID
		p.Side = ps.Side
		p.Pos = ps.Pos
		p.Captured = e.captured
		if err := g.adopt(p); err != nil {
			errs = append(errs, err)
		}
	}
	for _, side := range [...]Side{Guest, Host} {
		if g.lotus[side.Index()] == nil {
			errs = append(errs, fmt.Errorf("%w: no %s lotus", ErrInvalidSnapshot, side))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("restore: %w", errors.Join(errs...))
	}
	g.turn = s.Turn
	g.status = s.Status
	g.log.Debug().Int("turn", g.turn).Stringer("status", g.status).Msg("game restored")
	return g, nil
}

// Scan implements sql.Scanner so a snapshot can be stored in a text or
// JSON column.
func (s *Snapshot) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return json.Unmarshal([]byte(v), s)
	case []byte:
		return json.Unmarshal(v, s)
	default:
		return fmt.Errorf("unsupported conversion from %T to %T", src, s)
	}
}

func (s *Snapshot) Value() (driver.Value, error) {
	buf, err := json.Marshal(s)
	return string(buf), err
}
