package game

import "errors"

// Command rejections. All of them leave the controller untouched; the
// caller re-queries and retries. Rule violations from the engine pass
// through unwrapped.
var (
	ErrGameOver        = errors.New("the game is over")
	ErrWrongState      = errors.New("command not valid in the current turn state")
	ErrDoublePending   = errors.New("a pending double must be answered first")
	ErrBadRoll         = errors.New("a roll needs two die values in 1..6")
	ErrMovesRemaining  = errors.New("legal moves remain for this turn")
	ErrNothingToUndo   = errors.New("no move to undo this turn")
	ErrOpeningPending  = errors.New("the opening roll has not been resolved")
	ErrCrawfordGame    = errors.New("no doubling in the Crawford game")
	ErrAINotConfigured = errors.New("no AI player is configured")
	ErrNotAITurn       = errors.New("it is not the AI player's turn")
)
