// Package ai implements the computer player: a heuristic move chooser
// with an opening book, phase- and pattern-aware weight tables, and cube
// advice. Everything here is pure with respect to the board it is given.
package ai

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/yourusername/bggame/pkg/engine"
)

// Difficulty selects how much of the chooser is switched on.
type Difficulty int

const (
	Easy   Difficulty = iota // greedy, no opening book
	Normal                   // opening book and phase weights
	Hard                     // adds tactical pattern scaling
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	default:
		return "normal"
	}
}

// ParseDifficulty maps a config string to a Difficulty. Unknown values
// fall back to Normal.
func ParseDifficulty(s string) Difficulty {
	switch s {
	case "easy":
		return Easy
	case "hard":
		return Hard
	default:
		return Normal
	}
}

// Player is a stateless move chooser at a fixed difficulty. It is safe
// for concurrent use.
type Player struct {
	difficulty Difficulty
}

// NewPlayer returns a chooser at the given difficulty.
func NewPlayer(d Difficulty) *Player {
	return &Player{difficulty: d}
}

// Difficulty returns the level the player was built with.
func (p *Player) Difficulty() Difficulty {
	return p.difficulty
}

// RankedMove pairs a legal move with its heuristic score.
type RankedMove struct {
	Move  engine.Move `json:"move"`
	Score float64     `json:"score"`
}

// ChooseMove picks the move the player would make on the given board,
// using the dice already rolled on it. The second return is false when
// no legal move exists and the turn must end.
func (p *Player) ChooseMove(b engine.Board) (engine.Move, bool) {
	if !engine.HasLegalMove(b) {
		return engine.Move{}, false
	}
	if p.difficulty != Easy {
		if m, ok := bookMove(b); ok {
			return m, true
		}
	}
	ranked := p.RankMoves(b)
	if len(ranked) == 0 {
		return engine.Move{}, false
	}
	return ranked[0].Move, true
}

// RankMoves scores every legal move and returns them best first. Equal
// scores keep the rules engine's enumeration order (ascending from, to,
// die), which pins tie-breaking for reproducible play.
func (p *Player) RankMoves(b engine.Board) []RankedMove {
	phase := ClassifyPhase(b, b.Player)
	pattern := PatternBlocking
	if p.difficulty == Hard {
		pattern = ClassifyPattern(b, b.Player)
	}
	return RankMovesWith(b, WeightsFor(phase, pattern, p.difficulty))
}

// RankMovesWith ranks with an explicit weight table, letting callers and
// tests isolate factors.
func RankMovesWith(b engine.Board, weights WeightTable) []RankedMove {
	moves := engine.LegalMoves(b)
	if len(moves) == 0 {
		return nil
	}
	ranked := make([]RankedMove, len(moves))
	for i, m := range moves {
		f := Features(b, m)
		ranked[i] = RankedMove{Move: m, Score: floats.Dot(weights[:], f[:])}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
