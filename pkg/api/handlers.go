package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourusername/bggame/internal/broker"
	"github.com/yourusername/bggame/pkg/ai"
	"github.com/yourusername/bggame/pkg/engine"
	"github.com/yourusername/bggame/pkg/game"
	"github.com/yourusername/bggame/pkg/match"
	"github.com/yourusername/bggame/pkg/store"
)

// EventPublisher pushes game events to an external broker. broker.Publisher
// satisfies it; tests use a recording fake.
type EventPublisher interface {
	PublishEvent(gameID string, ev game.Event)
}

var _ EventPublisher = (*broker.Publisher)(nil)

// GameDefaults are the controller options new sessions start from when
// the create request leaves them unset.
type GameDefaults struct {
	MatchLength  int
	OpeningMode  game.OpeningMode
	UndoLimit    int
	AIDifficulty string
}

// Handlers owns the sessions and the HTTP handler methods over them.
type Handlers struct {
	sessions  *sessionManager
	store     store.GameStore
	pool      *WorkerPool
	publisher EventPublisher
	logger    *zap.SugaredLogger
	version   string
	defaults  GameDefaults
}

// NewHandlers wires the handler set. st and pub may be nil (saving
// disabled, no broker).
func NewHandlers(st store.GameStore, pool *WorkerPool, pub EventPublisher, logger *zap.SugaredLogger, version string, defaults GameDefaults) *Handlers {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if pool == nil {
		pool = NewWorkerPool(DefaultPoolConfig())
	}
	if defaults.MatchLength == 0 {
		defaults.MatchLength = 7
	}
	if defaults.UndoLimit == 0 {
		defaults.UndoLimit = 20
	}
	if defaults.AIDifficulty == "" {
		defaults.AIDifficulty = "normal"
	}
	return &Handlers{
		sessions:  newSessionManager(),
		store:     st,
		pool:      pool,
		publisher: pub,
		logger:    logger,
		version:   version,
		defaults:  defaults,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, msg string, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: msg,
		Code:  code,
	})
}

// writeRuleError reports a rejected game command. The state is
// untouched, so the client can re-query and retry.
func writeRuleError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusConflict, err.Error(), codeRuleViolation)
}

func colorFromString(s string) engine.Color {
	if s == "white" {
		return engine.White
	}
	return engine.Black
}

// getSession resolves the {id} route parameter, replying 404 itself on
// a miss.
func (h *Handlers) getSession(w http.ResponseWriter, r *http.Request) (*session, bool) {
	id := chi.URLParam(r, "id")
	s, ok := h.sessions.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "no game with id "+id, codeNotFound)
		return nil, false
	}
	return s, true
}

// gameResponse builds the client view of a session. Callers hold s.mu.
func (h *Handlers) gameResponse(s *session, events []game.Event) GameResponse {
	board := s.ctl.BoardSnapshot()
	return GameResponse{
		ID:          s.id,
		Snapshot:    s.ctl.Snapshot(),
		PositionID:  board.ID(),
		LegalMoves:  s.ctl.LegalMoves(),
		MustEndTurn: s.ctl.MustEndTurn(),
		Pips: [2]int{
			s.ctl.PipCount(engine.White),
			s.ctl.PipCount(engine.Black),
		},
		Events: eventDTOs(events),
	}
}

// publishFor returns the broker listener for a session id, or nil when
// no broker is configured.
func (h *Handlers) publishFor(id string) game.Listener {
	if h.publisher == nil {
		return nil
	}
	return func(ev game.Event) { h.publisher.PublishEvent(id, ev) }
}

// Health handles GET /api/health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Version: h.version, Games: h.sessions.count()}
	if h.pool != nil {
		stats := h.pool.Stats()
		resp.Pool = &stats
	}
	writeJSON(w, http.StatusOK, resp)
}

// Version handles GET /api/version.
func (h *Handlers) Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: h.version})
}

// CreateGame handles POST /api/v1/games. An empty body uses the server
// defaults.
func (h *Handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error(), codeBadRequest)
			return
		}
	}

	opts := game.Options{
		MatchLength: h.defaults.MatchLength,
		OpeningMode: h.defaults.OpeningMode,
		UndoLimit:   h.defaults.UndoLimit,
		Seed:        req.Seed,
	}
	if req.MatchLength != nil {
		opts.MatchLength = *req.MatchLength
	}
	switch req.OpeningMode {
	case "":
	case "auction":
		opts.OpeningMode = game.OpeningAuction
	case "simple":
		opts.OpeningMode = game.OpeningSimple
	default:
		writeError(w, http.StatusBadRequest, "unknown opening mode "+req.OpeningMode, codeBadRequest)
		return
	}

	p1, p2 := req.Player1, req.Player2
	if p1 == "" {
		p1 = "White"
	}
	if p2 == "" {
		p2 = "Black"
	}

	id := uuid.NewString()
	ctl := game.New(opts)
	rec := match.NewRecorder(p1, p2, opts.MatchLength)
	s := newSession(id, ctl, rec, h.publishFor(id))
	s.withAI(req.AI)

	// The recorder missed the construction-time deal, so restart the
	// first game through the event surface.
	s.mu.Lock()
	events, _ := ctl.NewGame()
	resp := h.gameResponse(s, events)
	s.mu.Unlock()

	h.sessions.add(s)
	h.logger.Infow("game created", "id", s.id, "match_length", opts.MatchLength)
	writeJSON(w, http.StatusCreated, resp)
}

// ListGames handles GET /api/v1/games.
func (h *Handlers) ListGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, GameListResponse{Games: h.sessions.ids()})
}

// GetGame handles GET /api/v1/games/{id}.
func (h *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	s, ok := h.getSession(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	resp := h.gameResponse(s, nil)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

// DeleteGame handles DELETE /api/v1/games/{id}.
func (h *Handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.sessions.remove(id) {
		writeError(w, http.StatusNotFound, "no game with id "+id, codeNotFound)
		return
	}
	h.logger.Infow("game deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// command runs one controller command under the session lock and writes
// the uniform game response.
func (h *Handlers) command(w http.ResponseWriter, s *session, fn func() ([]game.Event, error)) {
	s.mu.Lock()
	events, err := fn()
	if err != nil {
		s.mu.Unlock()
		writeRuleError(w, err)
		return
	}
	resp := h.gameResponse(s, events)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

// Roll handles POST /api/v1/games/{id}/roll. A body with fixed dice is
// accepted for deterministic play.
func (h *Handlers) Roll(w http.ResponseWriter, r *http.Request) {
	s, ok := h.getSession(w, r)
	if !ok {
		return
	}
	var req RollRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error(), codeBadRequest)
			return
		}
	}
	h.command(w, s, func() ([]game.Event, error) { return s.ctl.RollDice(req.Dice...) })
}

// Move handles POST /api/v1/games/{id}/move.
func (h *Handlers) Move(w http.ResponseWriter, r *http.Request) {
	s, ok := h.getSession(w, r)
	if !ok {
		return
	}
	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error(), codeBadRequest)
		return
	}
	h.command(w, s, func() ([]game.Event, error) { return s.ctl.RequestMove(req.From, req.To) })
}

// Undo handles POST /api/v1/games/{id}/undo.
func (h *Handlers) Undo(w http.ResponseWriter, r *http.Request) {
	s, ok := h.getSession(w, r)
	if !ok {
		return
	}
	h.command(w, s, s.ctl.UndoMove)
}

// EndTurn handles POST /api/v1/games/{id}/end-turn.
func (h *Handlers) EndTurn(w http.ResponseWriter, r *http.Request) {
	s, ok := h.getSession(w, r)
	if !ok {
		return
	}
	h.command(w, s, s.ctl.EndTurn)
}

// NewGame handles POST /api/v1/games/{id}/new-game: deal the next game
// of the match.
func (h *Handlers) NewGame(w http.ResponseWriter, r *http.Request) {
	s, ok := h.getSession(w, r)
	if !ok {
		return
	}
	h.command(w, s, s.ctl.NewGame)
}

// Double handles POST /api/v1/games/{id}/double.
func (h *Handlers) Double(w http.ResponseWriter, r *http.Request) {
	s, ok := h.getSession(w, r)
	if !ok {
		return
	}
	h.command(w, s, s.ctl.OfferDouble)
}

// AcceptDouble handles POST /api/v1/games/{id}/double/accept.
func (h *Handlers) AcceptDouble(w http.ResponseWriter, r *http.Request) {
	s, ok := h.getSession(w, r)
	if !ok {
		return
	}
	h.command(w, s, s.ctl.AcceptDouble)
}

// DeclineDouble handles POST /api/v1/games/{id}/double/decline.
func (h *Handlers) DeclineDouble(w http.ResponseWriter, r *http.Request) {
	s, ok := h.getSession(w, r)
	if !ok {
		return
	}
	h.command(w, s, s.ctl.DeclineDouble)
}

// LegalMoves handles GET /api/v1/games/{id}/moves.
func (h *Handlers) LegalMoves(w http.ResponseWriter, r *http.Request) {
	s, ok := h.getSession(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	moves := s.ctl.LegalMoves()
	s.mu.Unlock()
	if moves == nil {
		moves = []engine.Move{}
	}
	writeJSON(w, http.StatusOK, moves)
}

// Pips handles GET /api/v1/games/{id}/pips.
func (h *Handlers) Pips(w http.ResponseWriter, r *http.Request) {
	s, ok := h.getSession(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	white := s.ctl.PipCount(engine.White)
	black := s.ctl.PipCount(engine.Black)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]int{
		"white": white,
		"black": black,
	})
}

// Hint handles GET /api/v1/games/{id}/hint: the AI's ranked view of the
// current legal moves.
func (h *Handlers) Hint(w http.ResponseWriter, r *http.Request) {
	s, ok := h.getSession(w, r)
	if !ok {
		return
	}
	if err := h.pool.Acquire(r.Context(), LaneAI); err != nil {
		writeError(w, http.StatusServiceUnavailable, "server busy", codeInternal)
		return
	}
	defer h.pool.Release(LaneAI)

	difficulty := r.URL.Query().Get("difficulty")
	if difficulty == "" {
		difficulty = h.defaults.AIDifficulty
	}
	player := ai.NewPlayer(ai.ParseDifficulty(difficulty))

	s.mu.Lock()
	board := s.ctl.BoardSnapshot()
	s.mu.Unlock()

	ranked := player.RankMoves(board)
	writeJSON(w, http.StatusOK, HintResponse{
		Moves:    rankedDTOs(ranked),
		Phase:    ai.ClassifyPhase(board, board.Player).String(),
		Pattern:  ai.ClassifyPattern(board, board.Player).String(),
		NumLegal: len(ranked),
	})
}

// RateMove handles POST /api/v1/games/{id}/rate: the tutor's verdict on
// a candidate move in the current position.
func (h *Handlers) RateMove(w http.ResponseWriter, r *http.Request) {
	s, ok := h.getSession(w, r)
	if !ok {
		return
	}
	var req RateMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error(), codeBadRequest)
		return
	}
	if err := h.pool.Acquire(r.Context(), LaneAI); err != nil {
		writeError(w, http.StatusServiceUnavailable, "server busy", codeInternal)
		return
	}
	defer h.pool.Release(LaneAI)

	s.mu.Lock()
	board := s.ctl.BoardSnapshot()
	s.mu.Unlock()

	die, err := engine.LegalMove(board, req.From, req.To)
	if err != nil {
		writeRuleError(w, err)
		return
	}
	report := ai.NewPlayer(ai.Hard).RateMove(board, engine.Move{From: req.From, To: req.To, Die: die})
	writeJSON(w, http.StatusOK, RateMoveResponse{
		Skill:     report.Skill.String(),
		SkillAbbr: report.Skill.Abbr(),
		ScoreLoss: report.Loss,
		Best:      report.Best,
		IsForced:  report.Forced,
	})
}

// AITurn handles POST /api/v1/games/{id}/ai-turn: play the configured
// computer side's whole turn.
func (h *Handlers) AITurn(w http.ResponseWriter, r *http.Request) {
	s, ok := h.getSession(w, r)
	if !ok {
		return
	}
	if err := h.pool.Acquire(r.Context(), LaneAI); err != nil {
		writeError(w, http.StatusServiceUnavailable, "server busy", codeInternal)
		return
	}
	defer h.pool.Release(LaneAI)
	h.command(w, s, s.ctl.PlayAITurn)
}

// SaveGame handles POST /api/v1/games/{id}/save.
func (h *Handlers) SaveGame(w http.ResponseWriter, r *http.Request) {
	s, ok := h.getSession(w, r)
	if !ok {
		return
	}
	if h.store == nil {
		writeError(w, http.StatusNotImplemented, "no game store configured", codeInternal)
		return
	}
	s.mu.Lock()
	sg := s.ctl.Save()
	s.mu.Unlock()
	if err := h.store.Save(r.Context(), s.id, &sg); err != nil {
		h.logger.Errorw("saving game", "id", s.id, "error", err)
		writeError(w, http.StatusInternalServerError, "saving game: "+err.Error(), codeInternal)
		return
	}
	writeJSON(w, http.StatusOK, IDResponse{ID: s.id})
}

// LoadGame handles POST /api/v1/games/{id}/load: restore the session
// from its stored save.
func (h *Handlers) LoadGame(w http.ResponseWriter, r *http.Request) {
	s, ok := h.getSession(w, r)
	if !ok {
		return
	}
	if h.store == nil {
		writeError(w, http.StatusNotImplemented, "no game store configured", codeInternal)
		return
	}
	sg, err := h.store.Load(r.Context(), s.id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no save for game "+s.id, codeNotFound)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "loading game: "+err.Error(), codeInternal)
		return
	}
	h.command(w, s, func() ([]game.Event, error) {
		if err := s.ctl.Restore(*sg); err != nil {
			return nil, err
		}
		if sg.AI.Enabled {
			s.ctl.SetAI(sg.AI, ai.NewPlayer(ai.ParseDifficulty(sg.AI.Difficulty)))
		}
		return nil, nil
	})
}

// ListSaves handles GET /api/v1/saves.
func (h *Handlers) ListSaves(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusNotImplemented, "no game store configured", codeInternal)
		return
	}
	ids, err := h.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "listing saves: "+err.Error(), codeInternal)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, GameListResponse{Games: ids})
}

// ExportGame handles GET /api/v1/games/{id}/export: the raw saved-game
// record, suitable for feeding to ImportGame on any server.
func (h *Handlers) ExportGame(w http.ResponseWriter, r *http.Request) {
	s, ok := h.getSession(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	sg := s.ctl.Save()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, sg)
}

// ImportGame handles POST /api/v1/games/import: create a session from
// an exported saved-game record.
func (h *Handlers) ImportGame(w http.ResponseWriter, r *http.Request) {
	var sg game.SavedGame
	if err := json.NewDecoder(r.Body).Decode(&sg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid saved game: "+err.Error(), codeBadRequest)
		return
	}

	ctl := game.New(game.Options{
		MatchLength: sg.MatchLength,
		OpeningMode: h.defaults.OpeningMode,
		UndoLimit:   h.defaults.UndoLimit,
	})
	if err := ctl.Restore(sg); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), codeBadRequest)
		return
	}
	if sg.AI.Enabled {
		ctl.SetAI(sg.AI, ai.NewPlayer(ai.ParseDifficulty(sg.AI.Difficulty)))
	}

	id := uuid.NewString()
	rec := match.NewRecorder("White", "Black", sg.MatchLength)
	s := newSession(id, ctl, rec, h.publishFor(id))
	h.sessions.add(s)
	h.logger.Infow("game imported", "id", s.id)

	s.mu.Lock()
	resp := h.gameResponse(s, nil)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, resp)
}

// Record handles GET /api/v1/games/{id}/record: the match transcript so
// far, as MAT text by default or JSON with ?format=json. The transcript
// is rendered under the session lock: commands keep appending to the
// live record through the recorder.
func (h *Handlers) Record(w http.ResponseWriter, r *http.Request) {
	s, ok := h.getSession(w, r)
	if !ok {
		return
	}
	asJSON := r.URL.Query().Get("format") == "json"

	var buf bytes.Buffer
	s.mu.Lock()
	var err error
	if asJSON {
		err = json.NewEncoder(&buf).Encode(s.rec.Match())
	} else {
		err = match.ExportMAT(&buf, s.rec.Match())
	}
	s.mu.Unlock()
	if err != nil {
		h.logger.Errorw("exporting transcript", "id", s.id, "error", err)
		writeError(w, http.StatusInternalServerError, "exporting transcript: "+err.Error(), codeInternal)
		return
	}

	if asJSON {
		w.Header().Set("Content-Type", "application/json")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.Write(buf.Bytes())
}

// ParseRecord handles POST /api/v1/records/parse: MAT text in, the
// parsed transcript out.
func (h *Handlers) ParseRecord(w http.ResponseWriter, r *http.Request) {
	m, err := match.ParseMAT(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "parsing MAT transcript: "+err.Error(), codeBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Simulate handles POST /api/v1/simulate: a batch of AI self-play games
// through the slow worker lane.
func (h *Handlers) Simulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error(), codeBadRequest)
			return
		}
	}
	if err := h.pool.Acquire(r.Context(), LaneSim); err != nil {
		writeError(w, http.StatusServiceUnavailable, "server busy", codeInternal)
		return
	}
	defer h.pool.Release(LaneSim)

	resp, err := runSimulation(r.Context(), req, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "simulation failed: "+err.Error(), codeInternal)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// PoolStatsHandler handles GET /api/v1/pool.
func (h *Handlers) PoolStatsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.pool.Stats())
}
