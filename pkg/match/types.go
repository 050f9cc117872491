// Package match transcribes played games into match records and reads
// and writes the MAT (Jellyfish) interchange format. A Recorder builds
// the records live from controller events; the records themselves carry
// no game logic.
package match

import (
	"github.com/yourusername/bggame/pkg/engine"
)

// Match is a complete transcribed match.
type Match struct {
	Player1   string // White
	Player2   string // Black
	Length    int    // points to win, 0 = open-ended session
	Date      string // YYYY-MM-DD
	Event     string
	Place     string
	Annotator string
	Games     []*Game
}

// Game is one transcribed game: the score it started from and the
// action sequence that played out.
type Game struct {
	Number    int // 1-based
	Score1    int // White's score at the start of the game
	Score2    int
	Crawford  bool
	CubeValue int // cube value as the actions play out
	Actions   []Action
	Winner    engine.Color // None while in progress
	Points    int
	Result    Result
}

// ActionType discriminates the Action union.
type ActionType int

const (
	ActionRoll ActionType = iota
	ActionMove
	ActionDouble
	ActionTake
	ActionDrop
)

// Action is one recorded game action. Dice is set for ActionRoll, Move
// for ActionMove, Value for ActionDouble (the proposed new cube value).
type Action struct {
	Type   ActionType
	Player engine.Color
	Dice   [2]int8
	Move   engine.Move
	Value  int
}

// Result says how a game ended.
type Result int

const (
	ResultInProgress Result = iota
	ResultSingle
	ResultGammon
	ResultBackgammon
	ResultDrop // the loser passed a double
)

func (r Result) String() string {
	switch r {
	case ResultSingle:
		return "single"
	case ResultGammon:
		return "gammon"
	case ResultBackgammon:
		return "backgammon"
	case ResultDrop:
		return "drop"
	default:
		return "in progress"
	}
}

// New returns an empty match record.
func New(player1, player2 string, length int) *Match {
	return &Match{
		Player1: player1,
		Player2: player2,
		Length:  length,
		Games:   make([]*Game, 0),
	}
}

// StartGame appends a new in-progress game at the given score.
func (m *Match) StartGame(score1, score2 int, crawford bool) *Game {
	g := &Game{
		Number:    len(m.Games) + 1,
		Score1:    score1,
		Score2:    score2,
		Crawford:  crawford,
		CubeValue: 1,
		Actions:   make([]Action, 0),
		Winner:    engine.None,
		Result:    ResultInProgress,
	}
	m.Games = append(m.Games, g)
	return g
}

// AddRoll records a dice roll.
func (g *Game) AddRoll(player engine.Color, d1, d2 int8) {
	g.Actions = append(g.Actions, Action{
		Type:   ActionRoll,
		Player: player,
		Dice:   [2]int8{d1, d2},
	})
}

// AddMove records one checker move.
func (g *Game) AddMove(player engine.Color, move engine.Move) {
	g.Actions = append(g.Actions, Action{
		Type:   ActionMove,
		Player: player,
		Move:   move,
	})
}

// AddDouble records an offered double at its proposed value.
func (g *Game) AddDouble(player engine.Color, value int) {
	g.Actions = append(g.Actions, Action{
		Type:   ActionDouble,
		Player: player,
		Value:  value,
	})
}

// AddTake records an accepted double.
func (g *Game) AddTake(player engine.Color) {
	g.Actions = append(g.Actions, Action{Type: ActionTake, Player: player})
	g.CubeValue *= 2
}

// AddDrop records a passed double; the game is over for the offerer.
func (g *Game) AddDrop(player engine.Color) {
	g.Actions = append(g.Actions, Action{Type: ActionDrop, Player: player})
	g.Winner = player.Opponent()
	g.Result = ResultDrop
}
