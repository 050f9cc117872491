package ai

import (
	"github.com/yourusername/bggame/pkg/engine"
)

// The opening book holds the accepted best plays for early rolls, keyed
// by the roll. Entries are stored in White's orientation as ordered
// single-checker steps; mirrorMove flips them for Black. A step is only
// ever played if the rules engine accepts it in the current position, so
// a drifted position simply falls through to heuristic scoring.

// BookEntry is one prepared play: a name in standard notation and the
// checker steps that realize it, in play order.
type BookEntry struct {
	Name  string
	Steps []engine.Move
}

// openingBook maps non-doubles rolls (higher die * 10 + lower die) to the
// preferred play from the starting position.
var openingBook = map[int]BookEntry{
	65: {"24/13", []engine.Move{{From: 23, To: 17, Die: 6}, {From: 17, To: 12, Die: 5}}},
	64: {"24/14", []engine.Move{{From: 23, To: 17, Die: 6}, {From: 17, To: 13, Die: 4}}},
	63: {"24/15", []engine.Move{{From: 23, To: 17, Die: 6}, {From: 17, To: 14, Die: 3}}},
	62: {"24/18 13/11", []engine.Move{{From: 23, To: 17, Die: 6}, {From: 12, To: 10, Die: 2}}},
	61: {"13/7 8/7", []engine.Move{{From: 12, To: 6, Die: 6}, {From: 7, To: 6, Die: 1}}},
	54: {"13/8 13/9", []engine.Move{{From: 12, To: 7, Die: 5}, {From: 12, To: 8, Die: 4}}},
	53: {"8/3 6/3", []engine.Move{{From: 7, To: 2, Die: 5}, {From: 5, To: 2, Die: 3}}},
	52: {"13/8 13/11", []engine.Move{{From: 12, To: 7, Die: 5}, {From: 12, To: 10, Die: 2}}},
	51: {"13/8 24/23", []engine.Move{{From: 12, To: 7, Die: 5}, {From: 23, To: 22, Die: 1}}},
	43: {"13/9 13/10", []engine.Move{{From: 12, To: 8, Die: 4}, {From: 12, To: 9, Die: 3}}},
	42: {"8/4 6/4", []engine.Move{{From: 7, To: 3, Die: 4}, {From: 5, To: 3, Die: 2}}},
	41: {"13/9 24/23", []engine.Move{{From: 12, To: 8, Die: 4}, {From: 23, To: 22, Die: 1}}},
	32: {"13/10 13/11", []engine.Move{{From: 12, To: 9, Die: 3}, {From: 12, To: 10, Die: 2}}},
	31: {"8/5 6/5", []engine.Move{{From: 7, To: 4, Die: 3}, {From: 5, To: 4, Die: 1}}},
	21: {"13/11 24/23", []engine.Move{{From: 12, To: 10, Die: 2}, {From: 23, To: 22, Die: 1}}},
}

// doublesBook maps a doubles die to the best-known reply. The opening
// roll itself is never doubles, but the second player's first roll can
// be.
var doublesBook = map[int8]BookEntry{
	6: {"24/18(2) 13/7(2)", []engine.Move{
		{From: 23, To: 17, Die: 6}, {From: 23, To: 17, Die: 6},
		{From: 12, To: 6, Die: 6}, {From: 12, To: 6, Die: 6},
	}},
	5: {"13/8(2) 13/3(2)", []engine.Move{
		{From: 12, To: 7, Die: 5}, {From: 12, To: 7, Die: 5},
		{From: 7, To: 2, Die: 5}, {From: 7, To: 2, Die: 5},
	}},
	4: {"24/20(2) 13/9(2)", []engine.Move{
		{From: 23, To: 19, Die: 4}, {From: 23, To: 19, Die: 4},
		{From: 12, To: 8, Die: 4}, {From: 12, To: 8, Die: 4},
	}},
	3: {"8/5(2) 6/3(2)", []engine.Move{
		{From: 7, To: 4, Die: 3}, {From: 7, To: 4, Die: 3},
		{From: 5, To: 2, Die: 3}, {From: 5, To: 2, Die: 3},
	}},
	2: {"13/11(2) 6/4(2)", []engine.Move{
		{From: 12, To: 10, Die: 2}, {From: 12, To: 10, Die: 2},
		{From: 5, To: 3, Die: 2}, {From: 5, To: 3, Die: 2},
	}},
	1: {"8/7(2) 6/5(2)", []engine.Move{
		{From: 7, To: 6, Die: 1}, {From: 7, To: 6, Die: 1},
		{From: 5, To: 4, Die: 1}, {From: 5, To: 4, Die: 1},
	}},
}

// mirrorMove flips a White-orientation book step for Black. Bar and off
// sentinels are unaffected.
func mirrorMove(m engine.Move, c engine.Color) engine.Move {
	if c != engine.Black {
		return m
	}
	out := m
	if m.From != engine.BarIndex {
		out.From = engine.NumPoints - 1 - m.From
	}
	if m.To != engine.OffIndex {
		out.To = engine.NumPoints - 1 - m.To
	}
	return out
}

// bookMove looks up the prepared play for the current roll and returns
// its next unplayed step. Steps are indexed by the dice consumed so far
// this turn, so a play spanning several moves is followed step by step;
// any drift from the book line makes the step illegal and the chooser
// falls through to heuristic scoring.
func bookMove(b engine.Board) (engine.Move, bool) {
	c := b.Player
	if !b.DiceRolled() || ClassifyPhase(b, c) != PhaseOpening {
		return engine.Move{}, false
	}

	var entry BookEntry
	var ok bool
	if b.Dice[2] != 0 {
		entry, ok = doublesBook[b.Dice[0]]
	} else {
		hi, lo := b.Dice[0], b.Dice[1]
		if lo > hi {
			hi, lo = lo, hi
		}
		entry, ok = openingBook[int(hi)*10+int(lo)]
	}
	if !ok {
		return engine.Move{}, false
	}

	i := b.MovesMade()
	if i >= len(entry.Steps) {
		return engine.Move{}, false
	}
	m := mirrorMove(entry.Steps[i], c)
	if !b.HasDie(m.Die) {
		return engine.Move{}, false
	}
	if die, err := engine.LegalMove(b, m.From, m.To); err != nil || die != m.Die {
		return engine.Move{}, false
	}
	return m, true
}
