package ai

import (
	"github.com/yourusername/bggame/pkg/engine"
)

// Phase is the coarse stage of the game. It selects the base weight
// table.
type Phase int

const (
	PhaseOpening    Phase = iota // first rolls, development plays
	PhaseBlocking                // middle game
	PhaseBearingOff              // all checkers home
)

func (p Phase) String() string {
	switch p {
	case PhaseOpening:
		return "opening"
	case PhaseBearingOff:
		return "bearing_off"
	default:
		return "blocking"
	}
}

// Pattern is the tactical shape of the position for the player to move.
// It adjusts the phase weights.
type Pattern int

const (
	PatternBlocking Pattern = iota // default contact game
	PatternRace                    // no contact left
	PatternBlitz                   // attacking with the opponent on the bar or pinned
	PatternBackGame                // two or more anchors in the opponent's home
	PatternPriming                 // four or more consecutive made points
	PatternHolding                 // one anchor, the rest of the army advanced
)

func (p Pattern) String() string {
	switch p {
	case PatternRace:
		return "race"
	case PatternBlitz:
		return "blitz"
	case PatternBackGame:
		return "back_game"
	case PatternPriming:
		return "priming"
	case PatternHolding:
		return "holding"
	default:
		return "blocking"
	}
}

// openingRolls is how many rolls the opening phase is assumed to last.
const openingRolls = 8

// RollsElapsed estimates how many rolls the game has seen by counting
// checkers displaced from the starting layout, two checkers per roll.
// Hits and doubles make it an estimate, which is all phase selection
// needs.
func RollsElapsed(b engine.Board) int {
	start := engine.StartingBoard()
	displaced := 0
	for _, c := range []engine.Color{engine.White, engine.Black} {
		inPlace := 0
		for i := int8(0); i < engine.NumPoints; i++ {
			if start.Points[i].Owner != c {
				continue
			}
			n := int(start.Points[i].Count)
			if b.Points[i].Owner == c && int(b.Points[i].Count) < n {
				n = int(b.Points[i].Count)
			} else if b.Points[i].Owner != c {
				n = 0
			}
			inPlace += n
		}
		displaced += engine.CheckersPerSide - inPlace
	}
	return (displaced + 1) / 2
}

// ClassifyPhase picks the weight-table stage for the player to move.
func ClassifyPhase(b engine.Board, c engine.Color) Phase {
	if b.AllInHome(c) {
		return PhaseBearingOff
	}
	if RollsElapsed(b) <= openingRolls {
		return PhaseOpening
	}
	return PhaseBlocking
}

// ClassifyPattern picks the tactical shape for the player to move. The
// checks run in a fixed order so overlapping shapes resolve the same way
// every time: race, blitz, back game, priming, holding, then the default
// blocking game.
func ClassifyPattern(b engine.Board, c engine.Color) Pattern {
	opp := c.Opponent()

	if !hasContact(b) && b.Bar[c.Index()] == 0 && b.Bar[opp.Index()] == 0 {
		return PatternRace
	}

	if strongHome(b, c) && (b.Bar[opp.Index()] > 0 || checkersInHome(b, opp, c) > 0) {
		return PatternBlitz
	}

	anchors := anchorCount(b, c)
	if anchors >= 2 {
		return PatternBackGame
	}

	if maxPrime(b, c) >= 4 {
		return PatternPriming
	}

	if anchors == 1 && checkersBack(b, c) <= 4 {
		return PatternHolding
	}

	return PatternBlocking
}

// hasContact reports whether the two armies can still interact: the
// rearmost checkers have not passed each other.
func hasContact(b engine.Board) bool {
	whiteRear := int8(-1) // highest index with a White checker
	for i := engine.NumPoints - 1; i >= 0; i-- {
		if b.Points[i].Owner == engine.White {
			whiteRear = int8(i)
			break
		}
	}
	blackRear := int8(engine.NumPoints) // lowest index with a Black checker
	for i := 0; i < engine.NumPoints; i++ {
		if b.Points[i].Owner == engine.Black {
			blackRear = int8(i)
			break
		}
	}
	if whiteRear < 0 || blackRear == engine.NumPoints {
		return false
	}
	return whiteRear > blackRear
}

// strongHome reports whether the player has made three or more points in
// its own home board.
func strongHome(b engine.Board, c engine.Color) bool {
	made := 0
	for i := int8(0); i < engine.NumPoints; i++ {
		if engine.InHomeBoard(i, c) && b.Points[i].Owner == c && b.Points[i].Count >= 2 {
			made++
		}
	}
	return made >= 3
}

// checkersInHome counts c's checkers sitting inside home's home board.
func checkersInHome(b engine.Board, c, home engine.Color) int {
	n := 0
	for i := int8(0); i < engine.NumPoints; i++ {
		if engine.InHomeBoard(i, home) && b.Points[i].Owner == c {
			n += int(b.Points[i].Count)
		}
	}
	return n
}

// anchorCount counts made points of c inside the opponent's home board.
func anchorCount(b engine.Board, c engine.Color) int {
	n := 0
	for i := int8(0); i < engine.NumPoints; i++ {
		if engine.InHomeBoard(i, c.Opponent()) && b.Points[i].Owner == c && b.Points[i].Count >= 2 {
			n++
		}
	}
	return n
}

// checkersBack counts c's checkers still in the far half of its track,
// the timing reserve of a holding or back game.
func checkersBack(b engine.Board, c engine.Color) int {
	n := int(b.Bar[c.Index()])
	for i := int8(0); i < engine.NumPoints; i++ {
		p := b.Points[i]
		if p.Owner != c {
			continue
		}
		if engine.MoveDistance(i, engine.OffIndex, c) > 12 {
			n += int(p.Count)
		}
	}
	return n
}

// maxPrime returns the longest run of consecutive made points c holds.
func maxPrime(b engine.Board, c engine.Color) int {
	best, run := 0, 0
	for i := int8(0); i < engine.NumPoints; i++ {
		if b.Points[i].Owner == c && b.Points[i].Count >= 2 {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}
