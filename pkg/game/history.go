package game

import (
	"github.com/yourusername/bggame/pkg/engine"
)

// MoveRecord is one applied checker move as kept in the per-game history
// and the saved-game record.
type MoveRecord struct {
	From   int8         `json:"from"`
	To     int8         `json:"to"`
	Player engine.Color `json:"player"`
	Die    int8         `json:"die"`
}

// undoStack holds board snapshots for the turn in progress. Pushing past
// the limit drops the oldest snapshot; the stack is cleared when the turn
// ends.
type undoStack struct {
	limit int
	snaps []engine.Board
}

func (s *undoStack) push(b engine.Board) {
	if s.limit > 0 && len(s.snaps) >= s.limit {
		copy(s.snaps, s.snaps[1:])
		s.snaps = s.snaps[:len(s.snaps)-1]
	}
	s.snaps = append(s.snaps, b)
}

func (s *undoStack) pop() (engine.Board, bool) {
	if len(s.snaps) == 0 {
		return engine.Board{}, false
	}
	b := s.snaps[len(s.snaps)-1]
	s.snaps = s.snaps[:len(s.snaps)-1]
	return b, true
}

func (s *undoStack) clear() {
	s.snaps = s.snaps[:0]
}

func (s *undoStack) depth() int {
	return len(s.snaps)
}
