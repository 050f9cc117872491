package game

import (
	"errors"
	"testing"

	"github.com/yourusername/bggame/pkg/engine"
)

// testBoard builds a board with the given checkers per point (BarIndex
// places on the bar), crediting unplaced checkers as borne off.
func testBoard(player engine.Color, white, black map[int8]uint8) engine.Board {
	var b engine.Board
	b.Player = player
	var placed [2]uint8
	for pt, n := range white {
		if pt == engine.BarIndex {
			b.Bar[engine.White.Index()] = n
		} else {
			b.Points[pt] = engine.PointState{Count: n, Owner: engine.White}
		}
		placed[engine.White.Index()] += n
	}
	for pt, n := range black {
		if pt == engine.BarIndex {
			b.Bar[engine.Black.Index()] = n
		} else {
			b.Points[pt] = engine.PointState{Count: n, Owner: engine.Black}
		}
		placed[engine.Black.Index()] += n
	}
	b.Off[engine.White.Index()] = engine.CheckersPerSide - placed[engine.White.Index()]
	b.Off[engine.Black.Index()] = engine.CheckersPerSide - placed[engine.Black.Index()]
	return b
}

func simpleGame(t *testing.T) *Controller {
	t.Helper()
	return New(Options{MatchLength: 7, OpeningMode: OpeningSimple, Seed: 1})
}

func assertKinds(t *testing.T, events []Event, want ...EventKind) {
	t.Helper()
	got := make([]EventKind, len(events))
	for i, ev := range events {
		got[i] = ev.Kind()
	}
	if len(got) != len(want) {
		t.Fatalf("event kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event kinds = %v, want %v", got, want)
		}
	}
}

func mustCommand(t *testing.T) func(events []Event, err error) []Event {
	return func(events []Event, err error) []Event {
		t.Helper()
		if err != nil {
			t.Fatalf("command failed: %v", err)
		}
		return events
	}
}

func TestOpeningAuction(t *testing.T) {
	g := New(Options{MatchLength: 7, OpeningMode: OpeningAuction, Seed: 1})

	// A tied auction re-rolls without starting the turn.
	events := mustCommand(t)(g.RollDice(4, 4))
	assertKinds(t, events, EventDiceRolled)
	roll := events[0].(DiceRolled)
	if !roll.Opening || roll.Player != engine.None {
		t.Errorf("tie roll = %+v, want opening roll with no winner", roll)
	}
	if g.State() != WaitingForRoll {
		t.Fatalf("State after tie = %v, want WaitingForRoll", g.State())
	}

	// Black's higher die wins the auction and plays the pair.
	events = mustCommand(t)(g.RollDice(2, 5))
	roll = events[0].(DiceRolled)
	if roll.Player != engine.Black {
		t.Errorf("auction winner = %v, want black", roll.Player)
	}
	if g.State() != RolledDice {
		t.Errorf("State = %v, want RolledDice", g.State())
	}
	b := g.BoardSnapshot()
	if b.Player != engine.Black {
		t.Errorf("Player = %v, want black", b.Player)
	}
	dice := b.RemainingDice()
	if len(dice) != 2 || dice[0] != 2 || dice[1] != 5 {
		t.Errorf("RemainingDice = %v, want [2 5]", dice)
	}
}

func TestOpeningSimple(t *testing.T) {
	g := simpleGame(t)
	events := mustCommand(t)(g.RollDice(6, 5))
	assertKinds(t, events, EventDiceRolled)
	if p := events[0].(DiceRolled).Player; p != engine.White {
		t.Errorf("roller = %v, want white", p)
	}
	if g.BoardSnapshot().Player != engine.White {
		t.Errorf("Player = %v, want white", g.BoardSnapshot().Player)
	}
}

func TestRollDiceGuards(t *testing.T) {
	g := simpleGame(t)
	if _, err := g.RollDice(7, 1); !errors.Is(err, ErrBadRoll) {
		t.Errorf("RollDice(7,1) = %v, want ErrBadRoll", err)
	}
	if _, err := g.RollDice(3); !errors.Is(err, ErrBadRoll) {
		t.Errorf("RollDice(3) = %v, want ErrBadRoll", err)
	}
	mustCommand(t)(g.RollDice(6, 5))
	if _, err := g.RollDice(); !errors.Is(err, ErrWrongState) {
		t.Errorf("second RollDice = %v, want ErrWrongState", err)
	}
}

func TestRequestMoveFlow(t *testing.T) {
	g := simpleGame(t)
	mustCommand(t)(g.RollDice(6, 5))

	events := mustCommand(t)(g.RequestMove(23, 17))
	assertKinds(t, events, EventMoveApplied)
	applied := events[0].(MoveApplied)
	want := engine.Move{From: 23, To: 17, Die: 6}
	if applied.Move != want || applied.Player != engine.White || applied.Hit != engine.NoHit {
		t.Errorf("MoveApplied = %+v, want move %v by white, no hit", applied, want)
	}
	if g.State() != SelectingMove {
		t.Errorf("State = %v, want SelectingMove", g.State())
	}

	// The second die finishes the turn.
	events = mustCommand(t)(g.RequestMove(17, 12))
	assertKinds(t, events, EventMoveApplied, EventTurnEnded)
	if next := events[1].(TurnEnded).Next; next != engine.Black {
		t.Errorf("TurnEnded.Next = %v, want black", next)
	}
	b := g.BoardSnapshot()
	if g.State() != WaitingForRoll || b.Player != engine.Black || b.DiceRolled() {
		t.Errorf("after turn: state %v player %v dice %v, want waiting/black/cleared",
			g.State(), b.Player, b.RemainingDice())
	}
	if h := g.History(); len(h) != 2 || h[0].Die != 6 || h[1].Die != 5 {
		t.Errorf("History = %+v, want the two applied moves", h)
	}
}

func TestRequestMoveRejected(t *testing.T) {
	g := simpleGame(t)
	if _, err := g.RequestMove(23, 17); !errors.Is(err, ErrWrongState) {
		t.Fatalf("RequestMove before roll = %v, want ErrWrongState", err)
	}
	mustCommand(t)(g.RollDice(6, 5))
	before := g.BoardSnapshot()

	if _, err := g.RequestMove(12, 11); !errors.Is(err, engine.ErrNoMatchingDie) {
		t.Errorf("RequestMove(12,11) = %v, want ErrNoMatchingDie", err)
	}
	if _, err := g.RequestMove(23, 18); !errors.Is(err, engine.ErrPointBlocked) {
		t.Errorf("RequestMove(23,18) = %v, want ErrPointBlocked", err)
	}
	if g.BoardSnapshot() != before || g.State() != RolledDice {
		t.Error("rejected move changed the controller state")
	}
}

func TestRequestMoveHit(t *testing.T) {
	g := simpleGame(t)
	g.board = testBoard(engine.White,
		map[int8]uint8{23: 2, 12: 5, 7: 3, 5: 5},
		map[int8]uint8{0: 2, 11: 5, 16: 3, 18: 1, 20: 4},
	)
	mustCommand(t)(g.RollDice(5, 3))

	events := mustCommand(t)(g.RequestMove(23, 18))
	assertKinds(t, events, EventMoveApplied, EventCheckerHit)
	hit := events[1].(CheckerHit)
	if hit.Point != 18 || hit.Color != engine.Black {
		t.Errorf("CheckerHit = %+v, want black blot on 18", hit)
	}
	b := g.BoardSnapshot()
	if b.Bar[engine.Black.Index()] != 1 {
		t.Errorf("black bar = %d, want 1", b.Bar[engine.Black.Index()])
	}
	if p := b.Points[18]; p.Owner != engine.White || p.Count != 1 {
		t.Errorf("point 18 = %+v, want white blot", p)
	}
}

func TestTurnAutoEndsWhenNothingPlayable(t *testing.T) {
	// White enters from the bar with the 2; the 6 has no legal use, so
	// the turn ends with the die unspent.
	g := simpleGame(t)
	g.board = testBoard(engine.White,
		map[int8]uint8{engine.BarIndex: 1, 0: 5, 1: 5, 2: 3},
		map[int8]uint8{18: 2, 16: 2, 13: 2, 10: 2, 23: 2, 19: 5},
	)
	mustCommand(t)(g.RollDice(6, 2))

	events := mustCommand(t)(g.RequestMove(engine.BarIndex, 22))
	assertKinds(t, events, EventMoveApplied, EventTurnEnded)
	if g.State() != WaitingForRoll || g.BoardSnapshot().Player != engine.Black {
		t.Errorf("state %v player %v, want waiting/black", g.State(), g.BoardSnapshot().Player)
	}
	if h := g.History(); len(h) != 1 {
		t.Errorf("History = %+v, want the single entry move", h)
	}
}

func TestDanceMustEndTurn(t *testing.T) {
	g := simpleGame(t)
	g.board = testBoard(engine.White,
		map[int8]uint8{engine.BarIndex: 1, 0: 5, 1: 5, 2: 4},
		map[int8]uint8{18: 2, 19: 2, 20: 2, 21: 2, 22: 2, 23: 2, 10: 3},
	)
	mustCommand(t)(g.RollDice(6, 5))

	if !g.MustEndTurn() {
		t.Fatal("MustEndTurn = false, want true on a dance")
	}
	if moves := g.LegalMoves(); len(moves) != 0 {
		t.Errorf("LegalMoves = %v, want none", moves)
	}
	events := mustCommand(t)(g.EndTurn())
	assertKinds(t, events, EventTurnEnded)
	if g.BoardSnapshot().Player != engine.Black {
		t.Errorf("Player = %v, want black", g.BoardSnapshot().Player)
	}
}

func TestEndTurnWithMovesRemaining(t *testing.T) {
	g := simpleGame(t)
	mustCommand(t)(g.RollDice(6, 5))
	if _, err := g.EndTurn(); !errors.Is(err, ErrMovesRemaining) {
		t.Errorf("EndTurn = %v, want ErrMovesRemaining", err)
	}
	if g.MustEndTurn() {
		t.Error("MustEndTurn = true with the roll unplayed")
	}
}

func TestUndoMove(t *testing.T) {
	g := simpleGame(t)
	mustCommand(t)(g.RollDice(6, 5))
	before := g.BoardSnapshot()

	mustCommand(t)(g.RequestMove(23, 17))
	if _, err := g.UndoMove(); err != nil {
		t.Fatalf("UndoMove() = %v", err)
	}
	if g.BoardSnapshot() != before {
		t.Error("undo did not restore the pre-move board")
	}
	if g.State() != RolledDice {
		t.Errorf("State = %v, want RolledDice", g.State())
	}
	if len(g.History()) != 0 {
		t.Errorf("History = %+v, want empty", g.History())
	}
	if _, err := g.UndoMove(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("empty UndoMove = %v, want ErrNothingToUndo", err)
	}
}

func TestUndoStepsBackThroughDoubles(t *testing.T) {
	g := simpleGame(t)
	mustCommand(t)(g.RollDice(3, 3))
	mustCommand(t)(g.RequestMove(12, 9))
	mustCommand(t)(g.RequestMove(12, 9))
	mustCommand(t)(g.RequestMove(12, 9))

	if _, err := g.UndoMove(); err != nil {
		t.Fatalf("UndoMove() = %v", err)
	}
	if g.State() != SelectingMove {
		t.Errorf("State = %v, want SelectingMove with moves made", g.State())
	}
	if n := g.BoardSnapshot().MovesMade(); n != 2 {
		t.Errorf("MovesMade = %d, want 2", n)
	}
	if p := g.BoardSnapshot().Points[9]; p.Count != 2 {
		t.Errorf("point 9 = %+v, want two checkers after undo", p)
	}
}

func TestUndoDoesNotCrossTurnEnd(t *testing.T) {
	g := simpleGame(t)
	mustCommand(t)(g.RollDice(6, 5))
	mustCommand(t)(g.RequestMove(23, 17))
	mustCommand(t)(g.RequestMove(17, 12)) // turn ends here

	if _, err := g.UndoMove(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("UndoMove after turn end = %v, want ErrNothingToUndo", err)
	}
}

func TestBearOffWin(t *testing.T) {
	g := simpleGame(t)
	g.board = testBoard(engine.White,
		map[int8]uint8{2: 1},
		map[int8]uint8{23: 10, 20: 3},
	)
	mustCommand(t)(g.RollDice(3, 1))

	events := mustCommand(t)(g.RequestMove(2, engine.OffIndex))
	assertKinds(t, events, EventMoveApplied, EventGameWon)
	won := events[1].(GameWon)
	if won.Winner != engine.White || won.Result != engine.Single || won.Points != 1 {
		t.Errorf("GameWon = %+v, want single for white worth 1", won)
	}
	if g.State() != GameOver {
		t.Errorf("State = %v, want GameOver", g.State())
	}
	if score := g.Score(); score[engine.White.Index()] != 1 {
		t.Errorf("Score = %v, want white 1", score)
	}
	if g.GamesPlayed() != 1 {
		t.Errorf("GamesPlayed = %d, want 1", g.GamesPlayed())
	}
	if _, err := g.RollDice(); !errors.Is(err, ErrGameOver) {
		t.Errorf("RollDice after win = %v, want ErrGameOver", err)
	}
	if _, err := g.RequestMove(0, 1); !errors.Is(err, ErrGameOver) {
		t.Errorf("RequestMove after win = %v, want ErrGameOver", err)
	}
}

func TestGammonScoresDouble(t *testing.T) {
	g := simpleGame(t)
	g.board = testBoard(engine.White,
		map[int8]uint8{0: 1},
		map[int8]uint8{18: 5, 19: 5, 20: 5},
	)
	mustCommand(t)(g.RollDice(1, 2))

	events := mustCommand(t)(g.RequestMove(0, engine.OffIndex))
	won := events[len(events)-1].(GameWon)
	if won.Result != engine.Gammon || won.Points != 2 {
		t.Errorf("GameWon = %+v, want gammon worth 2", won)
	}
}

func TestCubeFlow(t *testing.T) {
	g := simpleGame(t)

	events := mustCommand(t)(g.OfferDouble())
	assertKinds(t, events, EventCubeOffered)
	offered := events[0].(CubeOffered)
	if offered.By != engine.White || offered.NewValue != 2 {
		t.Errorf("CubeOffered = %+v, want white offering 2", offered)
	}
	if _, err := g.RollDice(6, 5); !errors.Is(err, ErrDoublePending) {
		t.Errorf("RollDice during offer = %v, want ErrDoublePending", err)
	}
	if _, err := g.OfferDouble(); !errors.Is(err, engine.ErrCubeAlreadyOffered) {
		t.Errorf("second OfferDouble = %v, want ErrCubeAlreadyOffered", err)
	}

	events = mustCommand(t)(g.AcceptDouble())
	assertKinds(t, events, EventCubeAccepted)
	accepted := events[0].(CubeAccepted)
	if accepted.By != engine.Black || accepted.Value != 2 {
		t.Errorf("CubeAccepted = %+v, want black taking at 2", accepted)
	}
	cube := g.Cube()
	if cube.Value != 2 || cube.Owner != engine.Black || cube.Offered {
		t.Errorf("Cube = %+v, want value 2 owned by black", cube)
	}

	// The offerer rolls on after the take.
	mustCommand(t)(g.RollDice(6, 5))
	if g.State() != RolledDice {
		t.Errorf("State = %v, want RolledDice", g.State())
	}
}

func TestDeclineForfeitsAtPreDoubleValue(t *testing.T) {
	g := simpleGame(t)

	// White doubles to 2, Black takes, and White plays out the roll.
	mustCommand(t)(g.OfferDouble())
	mustCommand(t)(g.AcceptDouble())
	mustCommand(t)(g.RollDice(6, 5))
	mustCommand(t)(g.RequestMove(23, 17))
	mustCommand(t)(g.RequestMove(17, 12))

	// Black redoubles to 4; White drops and forfeits the cube's current 2.
	events := mustCommand(t)(g.OfferDouble())
	if offered := events[0].(CubeOffered); offered.By != engine.Black || offered.NewValue != 4 {
		t.Fatalf("CubeOffered = %+v, want black offering 4", offered)
	}
	events = mustCommand(t)(g.DeclineDouble())
	assertKinds(t, events, EventCubeDeclined, EventGameWon)
	declined := events[0].(CubeDeclined)
	if declined.By != engine.White || declined.Points != 2 {
		t.Errorf("CubeDeclined = %+v, want white dropping 2 points", declined)
	}
	won := events[1].(GameWon)
	if won.Winner != engine.Black || won.Points != 2 {
		t.Errorf("GameWon = %+v, want black scoring 2", won)
	}
	if score := g.Score(); score[engine.Black.Index()] != 2 || score[engine.White.Index()] != 0 {
		t.Errorf("Score = %v, want black 2, white 0", score)
	}
	if g.State() != GameOver {
		t.Errorf("State = %v, want GameOver", g.State())
	}
}

func TestWinScalesByCubeValue(t *testing.T) {
	g := simpleGame(t)
	mustCommand(t)(g.OfferDouble())
	mustCommand(t)(g.AcceptDouble())

	g.board = testBoard(engine.White,
		map[int8]uint8{0: 1},
		map[int8]uint8{18: 5, 19: 5, 20: 5},
	)
	mustCommand(t)(g.RollDice(1, 2))
	events := mustCommand(t)(g.RequestMove(0, engine.OffIndex))
	won := events[len(events)-1].(GameWon)
	if won.Points != 4 { // gammon x cube 2
		t.Errorf("GameWon.Points = %d, want 4", won.Points)
	}
}

func TestNewGameResetsMidGame(t *testing.T) {
	g := simpleGame(t)
	mustCommand(t)(g.RollDice(6, 5))
	mustCommand(t)(g.RequestMove(23, 17))

	events := mustCommand(t)(g.NewGame())
	assertKinds(t, events, EventGameReset, EventGameStarted)
	started := events[1].(GameStarted)
	if started.Game != 1 {
		t.Errorf("GameStarted.Game = %d, want 1 (abandoned game does not count)", started.Game)
	}
	if g.BoardSnapshot() != engine.StartingBoard() {
		t.Error("NewGame did not restore the standard layout")
	}
	if g.State() != WaitingForRoll || len(g.History()) != 0 {
		t.Errorf("state %v history %v, want fresh game", g.State(), g.History())
	}
	if cube := g.Cube(); cube.Value != 1 || cube.Owner != engine.None {
		t.Errorf("Cube = %+v, want centered at 1", cube)
	}
}

func TestMatchWonAtLength(t *testing.T) {
	g := New(Options{MatchLength: 1, OpeningMode: OpeningSimple, Seed: 1})
	g.board = testBoard(engine.White,
		map[int8]uint8{2: 1},
		map[int8]uint8{23: 10, 20: 3},
	)
	mustCommand(t)(g.RollDice(3, 1))

	events := mustCommand(t)(g.RequestMove(2, engine.OffIndex))
	assertKinds(t, events, EventMoveApplied, EventGameWon, EventMatchWon)
	match := events[2].(MatchWon)
	if match.Winner != engine.White || match.Score != [2]int{1, 0} {
		t.Errorf("MatchWon = %+v, want white 1-0", match)
	}
}

func TestCrawfordGameBlocksDoubling(t *testing.T) {
	g := New(Options{MatchLength: 3, OpeningMode: OpeningSimple, Seed: 1})

	// White wins a gammon to reach 2, one point from the match.
	g.board = testBoard(engine.White,
		map[int8]uint8{0: 1},
		map[int8]uint8{18: 5, 19: 5, 20: 5},
	)
	mustCommand(t)(g.RollDice(1, 2))
	mustCommand(t)(g.RequestMove(0, engine.OffIndex))
	if score := g.Score(); score[engine.White.Index()] != 2 {
		t.Fatalf("Score = %v, want white at 2", score)
	}

	events := mustCommand(t)(g.NewGame())
	if started := events[1].(GameStarted); !started.Crawford {
		t.Fatal("GameStarted.Crawford = false, want the Crawford game")
	}
	if _, err := g.OfferDouble(); !errors.Is(err, ErrCrawfordGame) {
		t.Errorf("OfferDouble = %v, want ErrCrawfordGame", err)
	}

	// Black wins the Crawford game; doubling resumes afterwards.
	g.board = testBoard(engine.Black,
		map[int8]uint8{23: 10, 20: 3},
		map[int8]uint8{21: 1},
	)
	mustCommand(t)(g.RollDice(3, 1))
	mustCommand(t)(g.RequestMove(21, engine.OffIndex))

	events = mustCommand(t)(g.NewGame())
	if started := events[1].(GameStarted); started.Crawford {
		t.Error("GameStarted.Crawford = true after the Crawford game")
	}
	if _, err := g.OfferDouble(); err != nil {
		t.Errorf("post-Crawford OfferDouble = %v, want success", err)
	}
}

func TestListenersSeeCommandEvents(t *testing.T) {
	g := simpleGame(t)
	var seen []EventKind
	g.Subscribe(func(ev Event) { seen = append(seen, ev.Kind()) })

	mustCommand(t)(g.RollDice(6, 5))
	mustCommand(t)(g.RequestMove(23, 17))
	mustCommand(t)(g.RequestMove(17, 12))

	want := []EventKind{EventDiceRolled, EventMoveApplied, EventMoveApplied, EventTurnEnded}
	if len(seen) != len(want) {
		t.Fatalf("listener saw %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("listener saw %v, want %v", seen, want)
		}
	}
}
