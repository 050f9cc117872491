package game

import (
	"github.com/yourusername/bggame/pkg/engine"
)

// EventKind names a turn-lifecycle event on the wire.
type EventKind string

const (
	EventGameStarted  EventKind = "game_started"
	EventGameReset    EventKind = "game_reset"
	EventDiceRolled   EventKind = "dice_rolled"
	EventMoveApplied  EventKind = "move_applied"
	EventCheckerHit   EventKind = "checker_hit"
	EventTurnEnded    EventKind = "turn_ended"
	EventGameWon      EventKind = "game_won"
	EventCubeOffered  EventKind = "cube_offered"
	EventCubeAccepted EventKind = "cube_accepted"
	EventCubeDeclined EventKind = "cube_declined"
	EventMatchWon     EventKind = "match_won"
)

// Event is one turn-lifecycle notification. The structs below are the
// complete set; consumers switch on Kind or type-assert.
type Event interface {
	Kind() EventKind
	event()
}

// Listener receives every event a controller emits, in order, on the
// goroutine running the command that produced it.
type Listener func(Event)

// GameStarted announces a fresh game with its starting position.
type GameStarted struct {
	Game     int          `json:"game"` // 1-based index within the match
	Board    engine.Board `json:"board"`
	Crawford bool         `json:"crawford"`
}

// GameReset marks the previous game's state as discarded.
type GameReset struct{}

// DiceRolled carries the values of a roll. For an opening auction roll
// Opening is true, Values holds White's and Black's die in that order,
// and Player is the auction winner, or None on a tie that must re-roll.
type DiceRolled struct {
	Player  engine.Color `json:"player"`
	Values  []int8       `json:"values"`
	Opening bool         `json:"opening,omitempty"`
}

// MoveApplied reports one accepted checker move.
type MoveApplied struct {
	Player engine.Color `json:"player"`
	Move   engine.Move  `json:"move"`
	Hit    int8         `json:"hit"` // point of the displaced blot, or NoHit
}

// CheckerHit reports a blot sent to the bar, alongside MoveApplied.
type CheckerHit struct {
	Point int8         `json:"point"`
	Color engine.Color `json:"color"` // owner of the hit checker
}

// TurnEnded reports the turn passing to Next.
type TurnEnded struct {
	Next engine.Color `json:"next"`
}

// GameWon reports a finished game and the points it scored.
type GameWon struct {
	Winner engine.Color `json:"winner"`
	Result engine.Kind  `json:"result"`
	Points int          `json:"points"`
}

// CubeOffered reports a pending double and the value a take would set.
type CubeOffered struct {
	By       engine.Color `json:"by"`
	NewValue int          `json:"new_value"`
}

// CubeAccepted reports a taken double at its new value.
type CubeAccepted struct {
	By    engine.Color `json:"by"`
	Value int          `json:"value"`
}

// CubeDeclined reports a dropped double and the points forfeited to the
// offerer.
type CubeDeclined struct {
	By     engine.Color `json:"by"`
	Points int          `json:"points"`
}

// MatchWon reports the match ending with the final score.
type MatchWon struct {
	Winner engine.Color `json:"winner"`
	Score  [2]int       `json:"score"`
}

func (GameStarted) Kind() EventKind  { return EventGameStarted }
func (GameReset) Kind() EventKind    { return EventGameReset }
func (DiceRolled) Kind() EventKind   { return EventDiceRolled }
func (MoveApplied) Kind() EventKind  { return EventMoveApplied }
func (CheckerHit) Kind() EventKind   { return EventCheckerHit }
func (TurnEnded) Kind() EventKind    { return EventTurnEnded }
func (GameWon) Kind() EventKind      { return EventGameWon }
func (CubeOffered) Kind() EventKind  { return EventCubeOffered }
func (CubeAccepted) Kind() EventKind { return EventCubeAccepted }
func (CubeDeclined) Kind() EventKind { return EventCubeDeclined }
func (MatchWon) Kind() EventKind     { return EventMatchWon }

func (GameStarted) event()  {}
func (GameReset) event()    {}
func (DiceRolled) event()   {}
func (MoveApplied) event()  {}
func (CheckerHit) event()   {}
func (TurnEnded) event()    {}
func (GameWon) event()      {}
func (CubeOffered) event()  {}
func (CubeAccepted) event() {}
func (CubeDeclined) event() {}
func (MatchWon) event()     {}
