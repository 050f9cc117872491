// Package game drives live play on top of the rules engine: the per-turn
// state machine, the opening roll, match scoring with the Crawford rule,
// bounded undo, typed events, and the AI hookup. A Controller owns one
// board and serializes every mutation through its command methods; it is
// not safe for concurrent use and callers at a concurrent boundary wrap
// it in their own lock.
package game

import (
	"fmt"
	"math/rand"

	"github.com/yourusername/bggame/pkg/engine"
)

// TurnState is the controller's position in the per-turn cycle.
type TurnState int

const (
	WaitingForRoll TurnState = iota
	RolledDice
	SelectingMove
	GameOver
)

func (s TurnState) String() string {
	switch s {
	case RolledDice:
		return "rolled_dice"
	case SelectingMove:
		return "selecting_move"
	case GameOver:
		return "game_over"
	default:
		return "waiting_for_roll"
	}
}

func parseTurnState(s string) (TurnState, bool) {
	switch s {
	case "waiting_for_roll":
		return WaitingForRoll, true
	case "rolled_dice":
		return RolledDice, true
	case "selecting_move":
		return SelectingMove, true
	case "game_over":
		return GameOver, true
	}
	return WaitingForRoll, false
}

// OpeningMode selects how a game's first roll works.
type OpeningMode int

const (
	// OpeningAuction rolls one die per player; the higher die starts and
	// plays exactly that pair, ties re-roll.
	OpeningAuction OpeningMode = iota
	// OpeningSimple starts White with an ordinary roll.
	OpeningSimple
)

func (m OpeningMode) String() string {
	if m == OpeningSimple {
		return "simple"
	}
	return "auction"
}

func parseOpeningMode(s string) (OpeningMode, bool) {
	switch s {
	case "auction":
		return OpeningAuction, true
	case "simple":
		return OpeningSimple, true
	}
	return OpeningAuction, false
}

// MovePicker chooses moves for an automated player. ai.Player satisfies
// it.
type MovePicker interface {
	ChooseMove(engine.Board) (engine.Move, bool)
}

// CubeAdvisor extends a MovePicker with doubling decisions. A picker
// without it never offers and always takes.
type CubeAdvisor interface {
	ShouldOfferDouble(engine.Board, engine.Cube) bool
	ShouldAcceptDouble(engine.Board, engine.Cube) bool
}

// AIConfig names the automated side. Difficulty is kept as the config
// string so saved games stay independent of the AI package.
type AIConfig struct {
	Enabled    bool         `json:"enabled"`
	Player     engine.Color `json:"player"`
	Difficulty string       `json:"difficulty"`
}

// Options configure a new Controller.
type Options struct {
	MatchLength int         // points to win the match, 0 = open-ended session
	OpeningMode OpeningMode
	Seed        int64 // dice seed, 0 seeds randomly
	UndoLimit   int   // snapshots kept per turn, 0 = default 20
}

// DefaultOptions returns the standard setup: a 7-point match with an
// opening auction.
func DefaultOptions() Options {
	return Options{MatchLength: 7, OpeningMode: OpeningAuction, UndoLimit: 20}
}

// Controller runs a match. Zero or more listeners receive every event;
// each command also returns the events it produced.
type Controller struct {
	board engine.Board
	cube  engine.Cube
	state TurnState

	matchLength  int
	score        [2]int // indexed by Color.Index()
	gamesPlayed  int
	gameNumber   int // 1-based index of the live game
	crawford     bool
	crawfordDue  bool
	crawfordDone bool

	openingMode    OpeningMode
	openingPending bool

	undo    undoStack
	history []MoveRecord

	rng       *rand.Rand
	listeners []Listener

	ai     AIConfig
	picker MovePicker
}

// New builds a controller and deals the first game, ready for its
// opening roll.
func New(opts Options) *Controller {
	if opts.UndoLimit <= 0 {
		opts.UndoLimit = 20
	}
	if opts.Seed == 0 {
		opts.Seed = rand.Int63()
	}
	if opts.MatchLength < 0 {
		opts.MatchLength = 0
	}
	g := &Controller{
		matchLength: opts.MatchLength,
		openingMode: opts.OpeningMode,
		undo:        undoStack{limit: opts.UndoLimit},
		rng:         rand.New(rand.NewSource(opts.Seed)),
	}
	g.startGame()
	return g
}

// Subscribe registers a listener for all subsequent events.
func (g *Controller) Subscribe(fn Listener) {
	g.listeners = append(g.listeners, fn)
}

// SetAI configures the automated side and its move picker.
func (g *Controller) SetAI(cfg AIConfig, picker MovePicker) {
	g.ai = cfg
	g.picker = picker
}

func (g *Controller) emit(events []Event, ev Event) []Event {
	for _, fn := range g.listeners {
		fn(ev)
	}
	return append(events, ev)
}

// startGame deals a fresh game without touching match-level totals.
func (g *Controller) startGame() {
	g.board = engine.StartingBoard()
	g.cube = engine.NewCube()
	g.state = WaitingForRoll
	g.openingPending = g.openingMode == OpeningAuction
	g.undo.clear()
	g.history = g.history[:0]
	g.gameNumber = g.gamesPlayed + 1

	g.crawford = g.crawfordDue
	if g.crawfordDue {
		g.crawfordDue = false
		g.crawfordDone = true
	}
}

// NewMatch resets the score and starts a fresh match of the given length
// (0 for an open-ended session).
func (g *Controller) NewMatch(length int) ([]Event, error) {
	if length < 0 {
		length = 0
	}
	g.matchLength = length
	g.score = [2]int{}
	g.gamesPlayed = 0
	g.crawfordDue = false
	g.crawfordDone = false
	return g.NewGame()
}

// NewGame abandons any game in progress and deals the next one. Valid in
// every state.
func (g *Controller) NewGame() ([]Event, error) {
	events := g.emit(nil, GameReset{})
	g.startGame()
	events = g.emit(events, GameStarted{Game: g.gameNumber, Board: g.board, Crawford: g.crawford})
	return events, nil
}

// RollDice rolls for the current turn, or with exactly two explicit
// values installs those instead. The first roll of an auction-mode game
// takes one die per player: a tie re-rolls, otherwise the higher die's
// owner starts and plays that pair.
func (g *Controller) RollDice(values ...int8) ([]Event, error) {
	if g.state == GameOver {
		return nil, ErrGameOver
	}
	if g.state != WaitingForRoll {
		return nil, ErrWrongState
	}
	if g.cube.Offered {
		return nil, ErrDoublePending
	}

	var d1, d2 int8
	switch len(values) {
	case 0:
		d1, d2 = g.die(), g.die()
	case 2:
		d1, d2 = values[0], values[1]
		if d1 < 1 || d1 > 6 || d2 < 1 || d2 > 6 {
			return nil, ErrBadRoll
		}
	default:
		return nil, ErrBadRoll
	}

	if g.openingPending {
		winner := engine.None
		if d1 > d2 {
			winner = engine.White
		} else if d2 > d1 {
			winner = engine.Black
		}
		if winner != engine.None {
			g.openingPending = false
			g.board.Player = winner
			g.board.SetRoll(d1, d2)
			g.state = RolledDice
		}
		// A tie leaves the state untouched; the auction rolls again.
		return g.emit(nil, DiceRolled{Player: winner, Values: []int8{d1, d2}, Opening: true}), nil
	}

	g.board.SetRoll(d1, d2)
	g.state = RolledDice
	return g.emit(nil, DiceRolled{Player: g.board.Player, Values: []int8{d1, d2}}), nil
}

func (g *Controller) die() int8 {
	return int8(g.rng.Intn(6) + 1)
}

// RequestMove validates and applies one checker move. The turn ends by
// itself once the dice are exhausted or nothing remains playable; a
// fifteenth borne-off checker ends the game instead.
func (g *Controller) RequestMove(from, to int8) ([]Event, error) {
	if g.state == GameOver {
		return nil, ErrGameOver
	}
	if g.state != RolledDice && g.state != SelectingMove {
		return nil, ErrWrongState
	}

	die, err := engine.LegalMove(g.board, from, to)
	if err != nil {
		return nil, err
	}
	move := engine.Move{From: from, To: to, Die: die}
	next, hit, err := engine.ApplyMove(g.board, move)
	if err != nil {
		return nil, err
	}
	if !next.UseDie(die) {
		panic(fmt.Sprintf("game: accepted move consumed unavailable die %d", die))
	}
	mustValidate(next)

	g.undo.push(g.board)
	g.board = next
	mover := g.board.Player
	g.history = append(g.history, MoveRecord{From: from, To: to, Player: mover, Die: die})

	events := g.emit(nil, MoveApplied{Player: mover, Move: move, Hit: hit})
	if hit != engine.NoHit {
		events = g.emit(events, CheckerHit{Point: hit, Color: mover.Opponent()})
	}

	if g.board.Off[mover.Index()] == engine.CheckersPerSide {
		return g.resolveWin(events, mover)
	}
	if len(g.board.RemainingDice()) == 0 || !engine.HasLegalMove(g.board) {
		return g.endTurn(events), nil
	}
	g.state = SelectingMove
	return events, nil
}

// EndTurn passes play to the opponent. It is rejected while legal moves
// remain; a turn with nothing playable must still be ended explicitly so
// the presentation layer controls the pacing.
func (g *Controller) EndTurn() ([]Event, error) {
	if g.state == GameOver {
		return nil, ErrGameOver
	}
	if g.state != RolledDice && g.state != SelectingMove {
		return nil, ErrWrongState
	}
	if engine.HasLegalMove(g.board) {
		return nil, ErrMovesRemaining
	}
	return g.endTurn(nil), nil
}

func (g *Controller) endTurn(events []Event) []Event {
	g.board.ClearDice()
	g.board.Player = g.board.Player.Opponent()
	g.state = WaitingForRoll
	g.undo.clear()
	return g.emit(events, TurnEnded{Next: g.board.Player})
}

// UndoMove restores the board as it was before the latest move of this
// turn. Undo never crosses a turn boundary.
func (g *Controller) UndoMove() ([]Event, error) {
	if g.state == GameOver {
		return nil, ErrGameOver
	}
	snap, ok := g.undo.pop()
	if !ok {
		return nil, ErrNothingToUndo
	}
	g.board = snap
	if n := len(g.history); n > 0 {
		g.history = g.history[:n-1]
	}
	if g.board.MovesMade() == 0 {
		g.state = RolledDice
	} else {
		g.state = SelectingMove
	}
	return nil, nil
}

// OfferDouble turns the cube before the current player rolls. While the
// offer is pending all rolling is blocked.
func (g *Controller) OfferDouble() ([]Event, error) {
	if g.state == GameOver {
		return nil, ErrGameOver
	}
	if g.state != WaitingForRoll {
		return nil, ErrWrongState
	}
	if g.openingPending {
		return nil, ErrOpeningPending
	}
	if g.crawford {
		return nil, ErrCrawfordGame
	}
	player := g.board.Player
	if err := g.cube.Offer(player); err != nil {
		return nil, err
	}
	return g.emit(nil, CubeOffered{By: player, NewValue: g.cube.Value * 2}), nil
}

// AcceptDouble takes the pending double; the taker owns the cube at
// twice the value and the offerer rolls.
func (g *Controller) AcceptDouble() ([]Event, error) {
	if g.state == GameOver {
		return nil, ErrGameOver
	}
	taker := g.cube.OfferedBy.Opponent()
	if err := g.cube.Accept(taker); err != nil {
		return nil, err
	}
	return g.emit(nil, CubeAccepted{By: taker, Value: g.cube.Value}), nil
}

// DeclineDouble drops the pending double, forfeiting the game to the
// offerer at the pre-double value.
func (g *Controller) DeclineDouble() ([]Event, error) {
	if g.state == GameOver {
		return nil, ErrGameOver
	}
	decliner := g.cube.OfferedBy.Opponent()
	winner, points, err := g.cube.Decline()
	if err != nil {
		return nil, err
	}
	events := g.emit(nil, CubeDeclined{By: decliner, Points: points})
	return g.finishGame(events, winner, engine.Single, points)
}

func (g *Controller) resolveWin(events []Event, winner engine.Color) ([]Event, error) {
	kind := engine.WinKind(g.board, winner)
	return g.finishGame(events, winner, kind, kind.Multiplier()*g.cube.Value)
}

func (g *Controller) finishGame(events []Event, winner engine.Color, kind engine.Kind, points int) ([]Event, error) {
	g.state = GameOver
	g.board.ClearDice()
	g.gamesPlayed++
	g.score[winner.Index()] += points
	g.undo.clear()

	events = g.emit(events, GameWon{Winner: winner, Result: kind, Points: points})

	if g.matchLength > 0 {
		switch {
		case g.score[winner.Index()] >= g.matchLength:
			events = g.emit(events, MatchWon{Winner: winner, Score: g.score})
		case !g.crawfordDone && g.score[winner.Index()] == g.matchLength-1:
			g.crawfordDue = true
		}
	}
	return events, nil
}

func mustValidate(b engine.Board) {
	if err := b.Validate(); err != nil {
		panic(fmt.Sprintf("game: board corrupted by move application: %v", err))
	}
}

// State returns the controller's turn state.
func (g *Controller) State() TurnState { return g.state }

// BoardSnapshot returns a copy of the live board.
func (g *Controller) BoardSnapshot() engine.Board { return g.board }

// Cube returns a copy of the doubling-cube state.
func (g *Controller) Cube() engine.Cube { return g.cube }

// LegalMoves enumerates the distinct single moves playable right now.
func (g *Controller) LegalMoves() []engine.Move {
	if g.state != RolledDice && g.state != SelectingMove {
		return nil
	}
	return engine.LegalMoves(g.board)
}

// MustEndTurn reports a rolled turn with nothing playable, which only
// EndTurn can resolve.
func (g *Controller) MustEndTurn() bool {
	return (g.state == RolledDice || g.state == SelectingMove) &&
		!engine.HasLegalMove(g.board)
}

// PipCount returns c's pip count on the live board.
func (g *Controller) PipCount(c engine.Color) int {
	return engine.PipCount(g.board, c)
}

// Score returns the match score, indexed by Color.Index().
func (g *Controller) Score() [2]int { return g.score }

// MatchLength returns the points needed to win the match, 0 for an
// open-ended session.
func (g *Controller) MatchLength() int { return g.matchLength }

// GamesPlayed returns the number of finished games this match.
func (g *Controller) GamesPlayed() int { return g.gamesPlayed }

// History returns the moves applied in the current game, oldest first.
func (g *Controller) History() []MoveRecord {
	out := make([]MoveRecord, len(g.history))
	copy(out, g.history)
	return out
}

// Snapshot is a read-only copy of everything a presentation layer needs.
type Snapshot struct {
	Board          engine.Board `json:"board"`
	State          TurnState    `json:"state"`
	Cube           engine.Cube  `json:"cube"`
	Score          [2]int       `json:"score"`
	MatchLength    int          `json:"match_length"`
	GamesPlayed    int          `json:"games_played"`
	Game           int          `json:"game"`
	Crawford       bool         `json:"crawford"`
	OpeningPending bool         `json:"opening_pending"`
	AI             AIConfig     `json:"ai"`
}

// Snapshot captures the full controller state.
func (g *Controller) Snapshot() Snapshot {
	return Snapshot{
		Board:          g.board,
		State:          g.state,
		Cube:           g.cube,
		Score:          g.score,
		MatchLength:    g.matchLength,
		GamesPlayed:    g.gamesPlayed,
		Game:           g.gameNumber,
		Crawford:       g.crawford,
		OpeningPending: g.openingPending,
		AI:             g.ai,
	}
}

// PlayAITurn advances the game through the configured automated player:
// answer or offer a double when advised, roll, then play picker moves
// until the turn resolves. Everything goes through the public command
// surface, so listeners see the same events a human would produce.
func (g *Controller) PlayAITurn() ([]Event, error) {
	if !g.ai.Enabled || g.picker == nil {
		return nil, ErrAINotConfigured
	}
	if g.state == GameOver {
		return nil, ErrGameOver
	}

	var events []Event
	if g.state == WaitingForRoll {
		if g.cube.Offered {
			if g.cube.OfferedBy == g.ai.Player {
				return nil, ErrNotAITurn // opponent must answer the double
			}
			return g.answerDouble()
		}
		if !g.openingPending {
			if g.board.Player != g.ai.Player {
				return nil, ErrNotAITurn
			}
			if g.shouldDouble() {
				return g.OfferDouble()
			}
		}
		rolled, err := g.RollDice()
		if err != nil {
			return events, err
		}
		events = append(events, rolled...)
		if g.state != RolledDice || g.board.Player != g.ai.Player {
			return events, nil // tied auction, or the auction fell to the opponent
		}
	}
	if g.board.Player != g.ai.Player {
		return events, ErrNotAITurn
	}

	for g.state == RolledDice || g.state == SelectingMove {
		m, ok := g.picker.ChooseMove(g.board)
		if !ok {
			ended, err := g.EndTurn()
			events = append(events, ended...)
			return events, err
		}
		moved, err := g.RequestMove(m.From, m.To)
		events = append(events, moved...)
		if err != nil {
			return events, err
		}
	}
	return events, nil
}

func (g *Controller) answerDouble() ([]Event, error) {
	if adv, ok := g.picker.(CubeAdvisor); ok && !adv.ShouldAcceptDouble(g.board, g.cube) {
		return g.DeclineDouble()
	}
	return g.AcceptDouble()
}

func (g *Controller) shouldDouble() bool {
	if !g.cube.CanOffer(g.ai.Player) {
		return false
	}
	adv, ok := g.picker.(CubeAdvisor)
	return ok && adv.ShouldOfferDouble(g.board, g.cube)
}
