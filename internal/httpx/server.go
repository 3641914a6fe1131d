// path: internal/httpx/server.go
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"ginseng_paisho/internal/game"
	"ginseng_paisho/internal/shared"
	"ginseng_paisho/internal/store"
)

// SaveStore is the part of the saved-game store the server needs.
type SaveStore interface {
	Save(ctx context.Context, name string, snap game.Snapshot) (store.SavedGame, error)
	Load(ctx context.Context, id string) (store.SavedGame, error)
	Update(ctx context.Context, id string, snap game.Snapshot) error
	List(ctx context.Context) ([]store.SavedGame, error)
	Delete(ctx context.Context, id string) error
}

// Server exposes one local game session over HTTP. Every engine call runs
// under engineMu.
type Server struct {
	engineMu sync.Mutex
	game     *game.Game
	tiles    game.TileSource
	opts     game.Options
	saves    SaveStore
	log      zerolog.Logger

	srvMu sync.Mutex
	srv   *http.Server
}

const (
	maxJSONBodyBytes int64 = 1 << 20
	apiCSP                 = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'"
)

// NewServer starts a fresh game with opts. saves may be nil, in which case
// the save endpoints answer 503.
func NewServer(tiles game.TileSource, opts game.Options, saves SaveStore, log zerolog.Logger) (*Server, error) {
	opts.Logger = &log
	g, err := game.New(tiles, opts)
	if err != nil {
		return nil, err
	}
	return &Server{
		game:  g,
		tiles: tiles,
		opts:  opts,
		saves: saves,
		log:   log.With().Str("component", "http").Logger(),
	}, nil
}

// Listen starts the HTTP server.
func (s *Server) Listen(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	s.srvMu.Lock()
	s.srv = srv
	s.srvMu.Unlock()
	defer func() {
		s.srvMu.Lock()
		s.srv = nil
		s.srvMu.Unlock()
	}()

	s.log.Info().Str("addr", addr).Msg("HTTP listening")
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close attempts a graceful shutdown of the HTTP server.
func (s *Server) Close(ctx context.Context) error {
	s.srvMu.Lock()
	srv := s.srv
	s.srvMu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.withJSON(s.handleState))
		r.Get("/board", s.handleBoard)
		r.Get("/moves/{at}", s.withJSON(s.handleMoves))
		r.Post("/click", s.withJSON(s.handleClick))
		r.Post("/move", s.withJSON(s.handleMove))
		r.Post("/ability", s.withJSON(s.handleAbility))
		r.Post("/swap", s.withJSON(s.handleSwap))
		r.Post("/reset", s.withJSON(s.handleReset))
		r.Post("/save", s.withJSON(s.handleSave))
		r.Get("/saves", s.withJSON(s.handleSaves))
		r.Put("/saves/{id}", s.withJSON(s.handleOverwrite))
		r.Delete("/saves/{id}", s.withJSON(s.handleDelete))
		r.Post("/load/{id}", s.withJSON(s.handleLoad))
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// ---- JSON helpers ----

func (s *Server) withJSON(h func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", apiCSP)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	writeJSON(w, map[string]string{"error": msg})
}

// writeEngineError maps engine and store errors onto HTTP status codes.
func writeEngineError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrPending),
		errors.Is(err, game.ErrNoSelection),
		errors.Is(err, game.ErrNotInSwap):
		status = http.StatusConflict
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrInvalidSnapshot):
		status = http.StatusUnprocessableEntity
	}
	writeError(w, status, err.Error())
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func parseCell(w http.ResponseWriter, raw, field string) (game.Coord, bool) {
	c, ok := shared.ParseCoord(strings.TrimSpace(raw))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid "+field+" cell")
	}
	return c, ok
}

// ---- API: state ----

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.engineMu.Lock()
	state := viewOf(s.game)
	s.engineMu.Unlock()
	writeJSON(w, map[string]any{"state": state})
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	s.engineMu.Lock()
	text := s.game.Board().String()
	s.engineMu.Unlock()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(text))
}

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	at, ok := parseCell(w, chi.URLParam(r, "at"), "tile")
	if !ok {
		return
	}
	var mo game.MoveOptions
	switch strings.ToLower(r.URL.Query().Get("flight")) {
	case "", "default":
	case "on":
		mo.Flight = game.FlightForceOn
	case "off":
		mo.Flight = game.FlightForceOff
	default:
		writeError(w, http.StatusBadRequest, "invalid flight override")
		return
	}

	s.engineMu.Lock()
	defer s.engineMu.Unlock()
	p := s.game.PieceAt(at)
	if p == nil {
		writeError(w, http.StatusNotFound, "no tile at "+at.String())
		return
	}
	moves := []game.Coord{}
	for c := range s.game.ValidMovesWith(p, mo) {
		moves = append(moves, c)
	}
	writeJSON(w, map[string]any{"tile": pieceViewOf(s.game, p), "moves": moves})
}

// ---- API: interaction ----

type cellBody struct {
	At string `json:"at"`
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	var body cellBody
	if !decodeBody(w, r, &body) {
		return
	}
	at, ok := parseCell(w, body.At, "click")
	if !ok {
		return
	}

	s.engineMu.Lock()
	out, err := s.game.Click(at)
	state := viewOf(s.game)
	s.engineMu.Unlock()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, map[string]any{"outcome": out, "state": state})
}

type moveBody struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var body moveBody
	if !decodeBody(w, r, &body) {
		return
	}
	from, ok := parseCell(w, body.From, "from")
	if !ok {
		return
	}
	to, ok := parseCell(w, body.To, "to")
	if !ok {
		return
	}

	s.engineMu.Lock()
	err := s.game.Play(from, to)
	state := viewOf(s.game)
	s.engineMu.Unlock()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, map[string]any{"state": state})
}

type abilityBody struct {
	Target string `json:"target"`
	Skip   bool   `json:"skip"`
}

func (s *Server) handleAbility(w http.ResponseWriter, r *http.Request) {
	var body abilityBody
	if !decodeBody(w, r, &body) {
		return
	}
	var target game.Coord
	if !body.Skip {
		var ok bool
		if target, ok = parseCell(w, body.Target, "target"); !ok {
			return
		}
	}

	s.engineMu.Lock()
	var err error
	switch {
	case s.game.Interaction().Phase != game.PhaseAbility:
		err = game.ErrNoSelection
	case body.Skip:
		err = s.game.Deselect()
	default:
		err = s.game.UseSelectedAbility(target)
	}
	state := viewOf(s.game)
	s.engineMu.Unlock()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, map[string]any{"state": state})
}

type swapBody struct {
	ID     int  `json:"id"`
	Cancel bool `json:"cancel"`
}

func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	var body swapBody
	if !decodeBody(w, r, &body) {
		return
	}

	s.engineMu.Lock()
	var err error
	if body.Cancel {
		err = s.game.CancelSwap()
	} else {
		err = s.game.SwapWith(body.ID)
	}
	state := viewOf(s.game)
	s.engineMu.Unlock()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, map[string]any{"state": state})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		r.Body.Close()
	}
	s.engineMu.Lock()
	g, err := game.New(s.tiles, s.opts)
	if err == nil {
		s.game = g
	}
	state := viewOf(s.game)
	s.engineMu.Unlock()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	s.log.Info().Msg("game reset")
	writeJSON(w, map[string]any{"state": state})
}

// ---- API: saved games ----

type saveBody struct {
	Name string `json:"name"`
}

// settledSnapshot captures the game between turns. It writes the error
// response itself and reports false when a turn is half played.
func (s *Server) settledSnapshot(w http.ResponseWriter) (game.Snapshot, bool) {
	s.engineMu.Lock()
	pending := s.game.Interaction().Phase != game.PhaseSelect
	snap := s.game.Snapshot()
	s.engineMu.Unlock()
	if pending {
		writeError(w, http.StatusConflict, "finish the current turn before saving")
		return game.Snapshot{}, false
	}
	return snap, true
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if s.saves == nil {
		writeError(w, http.StatusServiceUnavailable, "no store configured")
		return
	}
	var body saveBody
	if r.Body != nil && r.Body != http.NoBody && !decodeBody(w, r, &body) {
		return
	}
	snap, ok := s.settledSnapshot(w)
	if !ok {
		return
	}

	rec, err := s.saves.Save(r.Context(), strings.TrimSpace(body.Name), snap)
	if err != nil {
		s.log.Error().Err(err).Msg("save failed")
		writeError(w, http.StatusInternalServerError, "save failed")
		return
	}
	writeJSON(w, map[string]any{"save": saveViewOf(rec)})
}

func (s *Server) handleSaves(w http.ResponseWriter, r *http.Request) {
	if s.saves == nil {
		writeError(w, http.StatusServiceUnavailable, "no store configured")
		return
	}
	recs, err := s.saves.List(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("list saves failed")
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}
	out := make([]saveView, 0, len(recs))
	for _, rec := range recs {
		out = append(out, saveViewOf(rec))
	}
	writeJSON(w, map[string]any{"saves": out})
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	if s.saves == nil {
		writeError(w, http.StatusServiceUnavailable, "no store configured")
		return
	}
	rec, err := s.saves.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	snap, err := rec.Snapshot()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	g, err := game.Restore(s.tiles, snap, s.opts.Logger)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	s.engineMu.Lock()
	s.game = g
	state := viewOf(g)
	s.engineMu.Unlock()
	s.log.Info().Str("id", rec.ID).Int("turn", snap.Turn).Msg("game loaded")
	writeJSON(w, map[string]any{"state": state})
}

// handleOverwrite replaces a saved game with the current position.
func (s *Server) handleOverwrite(w http.ResponseWriter, r *http.Request) {
	if s.saves == nil {
		writeError(w, http.StatusServiceUnavailable, "no store configured")
		return
	}
	snap, ok := s.settledSnapshot(w)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.saves.Update(r.Context(), id, snap); err != nil {
		s.writeStoreError(w, err, "update failed")
		return
	}
	rec, err := s.saves.Load(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err, "update failed")
		return
	}
	writeJSON(w, map[string]any{"save": saveViewOf(rec)})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if s.saves == nil {
		writeError(w, http.StatusServiceUnavailable, "no store configured")
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.saves.Delete(r.Context(), id); err != nil {
		s.writeStoreError(w, err, "delete failed")
		return
	}
	s.log.Info().Str("id", id).Msg("save deleted")
	writeJSON(w, map[string]any{"deleted": id})
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.log.Error().Err(err).Msg(msg)
	writeError(w, http.StatusInternalServerError, msg)
}
