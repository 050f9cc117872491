// Package api serves live backgammon games over HTTP: a JSON REST
// surface for game commands, a WebSocket for interactive play, and SSE
// streams for events and simulation progress. Each game is a session
// holding one game.Controller; a per-session mutex keeps the controller
// single-threaded, as the core requires.
package api

import (
	"github.com/yourusername/bggame/pkg/ai"
	"github.com/yourusername/bggame/pkg/engine"
	"github.com/yourusername/bggame/pkg/game"
)

// ============================================================================
// Request types
// ============================================================================

// CreateGameRequest starts a new game session. Zero values fall back to
// the server's configured defaults.
type CreateGameRequest struct {
	MatchLength *int       `json:"match_length,omitempty"` // nil = server default, 0 = open-ended
	OpeningMode string     `json:"opening_mode,omitempty"` // "auction" or "simple"
	Seed        int64      `json:"seed,omitempty"`         // dice seed, 0 = random
	AI          *AIOptions `json:"ai,omitempty"`
	Player1     string     `json:"player1,omitempty"` // display names for the transcript
	Player2     string     `json:"player2,omitempty"`
}

// AIOptions configures the computer opponent for a session.
type AIOptions struct {
	Enabled    bool   `json:"enabled"`
	Player     string `json:"player,omitempty"`     // "white" or "black" (default black)
	Difficulty string `json:"difficulty,omitempty"` // easy, normal, hard
}

// RollRequest optionally pins the dice (tests, replays). Empty = random.
type RollRequest struct {
	Dice []int8 `json:"dice,omitempty"`
}

// MoveRequest plays one checker move. From may be 24 (the bar), To may
// be -1 (bearing off).
type MoveRequest struct {
	From int8 `json:"from"`
	To   int8 `json:"to"`
}

// RateMoveRequest asks the tutor how a candidate move compares to the
// AI's best.
type RateMoveRequest struct {
	From int8 `json:"from"`
	To   int8 `json:"to"`
}

// SimulateRequest runs AI-vs-AI games and reports aggregate results.
type SimulateRequest struct {
	Games       int    `json:"games,omitempty"`        // default 100
	MatchLength int    `json:"match_length,omitempty"` // 0 = single games
	White       string `json:"white,omitempty"`        // difficulty, default "normal"
	Black       string `json:"black,omitempty"`
	Seed        int64  `json:"seed,omitempty"` // 0 = random
}

// ============================================================================
// Response types
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error codes.
const (
	codeBadRequest    = "bad_request"
	codeNotFound      = "not_found"
	codeRuleViolation = "rule_violation"
	codeInternal      = "internal"
)

// EventDTO wraps a game event with its kind for consumers that switch
// on type.
type EventDTO struct {
	Kind game.EventKind `json:"kind"`
	Data interface{}    `json:"data"`
}

func eventDTOs(events []game.Event) []EventDTO {
	out := make([]EventDTO, len(events))
	for i, ev := range events {
		out[i] = EventDTO{Kind: ev.Kind(), Data: ev}
	}
	return out
}

// GameResponse is the full client view of a session after a command.
type GameResponse struct {
	ID          string        `json:"id"`
	Snapshot    game.Snapshot `json:"snapshot"`
	PositionID  string        `json:"position_id"`
	LegalMoves  []engine.Move `json:"legal_moves"`
	MustEndTurn bool          `json:"must_end_turn"`
	Pips        [2]int        `json:"pips"` // [white, black]
	Events      []EventDTO    `json:"events,omitempty"`
}

// HintResponse ranks the legal moves best first.
type HintResponse struct {
	Moves    []RankedMoveDTO `json:"moves"`
	Phase    string          `json:"phase"`
	Pattern  string          `json:"pattern"`
	NumLegal int             `json:"num_legal"`
}

// RankedMoveDTO is one scored candidate move.
type RankedMoveDTO struct {
	Move     engine.Move `json:"move"`
	Notation string      `json:"notation"`
	Score    float64     `json:"score"`
}

// RateMoveResponse is the tutor's verdict on a played move.
type RateMoveResponse struct {
	Skill     string      `json:"skill"`
	SkillAbbr string      `json:"skill_abbr"`
	ScoreLoss float64     `json:"score_loss"`
	Best      engine.Move `json:"best"`
	IsForced  bool        `json:"is_forced"`
}

// SimulateResponse aggregates a batch of AI self-play games.
type SimulateResponse struct {
	Games        int     `json:"games"`
	WhiteWins    int     `json:"white_wins"`
	BlackWins    int     `json:"black_wins"`
	Singles      int     `json:"singles"`
	Gammons      int     `json:"gammons"`
	Backgammons  int     `json:"backgammons"`
	MeanMoves    float64 `json:"mean_moves"`
	StdDevMoves  float64 `json:"stddev_moves"`
	MeanPoints   float64 `json:"mean_points"`
	StdDevPoints float64 `json:"stddev_points"`
	Seed         int64   `json:"seed"`
}

// SimProgress is one SSE progress tick during a streamed simulation.
type SimProgress struct {
	GamesDone  int     `json:"games_done"`
	GamesTotal int     `json:"games_total"`
	Percent    float64 `json:"percent"`
	WhiteWins  int     `json:"white_wins"`
	BlackWins  int     `json:"black_wins"`
}

// HealthResponse is the health check body.
type HealthResponse struct {
	Status  string     `json:"status"`
	Version string     `json:"version"`
	Games   int        `json:"games"`
	Pool    *PoolStats `json:"pool,omitempty"`
}

// VersionResponse reports the server build.
type VersionResponse struct {
	Version string `json:"version"`
}

// GameListResponse lists live session ids.
type GameListResponse struct {
	Games []string `json:"games"`
}

// IDResponse returns the id a command produced.
type IDResponse struct {
	ID string `json:"id"`
}

func rankedDTOs(ranked []ai.RankedMove) []RankedMoveDTO {
	out := make([]RankedMoveDTO, len(ranked))
	for i, r := range ranked {
		out[i] = RankedMoveDTO{Move: r.Move, Notation: r.Move.String(), Score: r.Score}
	}
	return out
}
