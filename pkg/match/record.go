package match

import (
	"github.com/yourusername/bggame/pkg/engine"
	"github.com/yourusername/bggame/pkg/game"
)

// Recorder turns a controller's event stream into a Match record.
// Register Handle as a listener before play starts:
//
//	rec := match.NewRecorder("Human", "Computer", 7)
//	ctrl.Subscribe(rec.Handle)
//
// The recorder tracks scores itself from GameWon events, so it stays a
// plain listener with no back-reference into the controller.
type Recorder struct {
	match   *Match
	game    *Game
	score   [2]int // indexed by engine.Color.Index()
	dropped bool
}

// NewRecorder returns a recorder for a fresh match.
func NewRecorder(player1, player2 string, length int) *Recorder {
	return &Recorder{match: New(player1, player2, length)}
}

// Match returns the record built so far. The last game may still be
// in progress.
func (r *Recorder) Match() *Match {
	return r.match
}

// Handle consumes one controller event. It is a game.Listener.
func (r *Recorder) Handle(ev game.Event) {
	switch e := ev.(type) {
	case game.GameStarted:
		r.game = r.match.StartGame(r.score[engine.White.Index()], r.score[engine.Black.Index()], e.Crawford)
		r.dropped = false

	case game.DiceRolled:
		if r.game == nil || len(e.Values) != 2 {
			return
		}
		// A tied opening auction produces no playable roll.
		if e.Player == engine.None {
			return
		}
		r.game.AddRoll(e.Player, e.Values[0], e.Values[1])

	case game.MoveApplied:
		if r.game != nil {
			r.game.AddMove(e.Player, e.Move)
		}

	case game.CubeOffered:
		if r.game != nil {
			r.game.AddDouble(e.By, e.NewValue)
		}

	case game.CubeAccepted:
		if r.game != nil {
			r.game.AddTake(e.By)
		}

	case game.CubeDeclined:
		if r.game != nil {
			r.game.AddDrop(e.By)
			r.dropped = true
		}

	case game.GameWon:
		if r.game == nil {
			return
		}
		r.game.Winner = e.Winner
		r.game.Points = e.Points
		if r.dropped {
			r.game.Result = ResultDrop
		} else {
			r.game.Result = resultForKind(e.Result)
		}
		r.score[e.Winner.Index()] += e.Points
		r.game = nil
	}
}

func resultForKind(k engine.Kind) Result {
	switch k {
	case engine.Gammon:
		return ResultGammon
	case engine.Backgammon:
		return ResultBackgammon
	default:
		return ResultSingle
	}
}
