package engine

import "sort"

// LegalMove validates a single (from, to) request for the player to move
// and returns the die it would consume. The checks run in a fixed order:
// bar priority, source ownership, direction, distance (exact die first,
// then the higher-die bear-off rule), blocking, and the bear-off
// precondition. The board is never modified.
func LegalMove(b Board, from, to int8) (int8, error) {
	c := b.Player
	if from != BarIndex && (from < 0 || from >= NumPoints) {
		return 0, ErrOutOfRange
	}
	if to != OffIndex && (to < 0 || to >= NumPoints) {
		return 0, ErrOutOfRange
	}

	// (a) Checkers on the bar must enter before anything else moves.
	if b.Bar[c.Index()] > 0 && from != BarIndex {
		return 0, ErrMustEnterFromBar
	}

	// (b) The source must hold one of the mover's checkers.
	if from == BarIndex {
		if b.Bar[c.Index()] == 0 {
			return 0, ErrNoChecker
		}
		if to == OffIndex {
			return 0, ErrWrongDirection
		}
	} else {
		p := b.Points[from]
		if p.Owner != c || p.Count == 0 {
			return 0, ErrNoChecker
		}
	}

	// (c) Movement must follow the player's fixed direction. Bear-off and
	// bar entry distances are direction-checked implicitly below.
	if from != BarIndex && to != OffIndex {
		if (to-from)*int8(Direction(c)) <= 0 {
			return 0, ErrWrongDirection
		}
	}
	if from == BarIndex && !InHomeBoard(to, c.Opponent()) {
		return 0, ErrWrongDirection
	}

	// (d) The distance must be payable from the remaining dice. An exact
	// die must be used when present; only bearing off may overshoot, and
	// then only with no checker behind the source.
	dist := MoveDistance(from, to, c)
	die := int8(0)
	if b.HasDie(dist) {
		die = dist
	} else if to == OffIndex {
		for _, d := range b.RemainingDice() {
			if d > dist && (die == 0 || d < die) {
				die = d
			}
		}
		if die == 0 {
			return 0, ErrNoMatchingDie
		}
		if b.checkerBehind(from, c) {
			return 0, ErrCheckerBehind
		}
	} else {
		return 0, ErrNoMatchingDie
	}

	// (e) The destination must not be a made point of the opponent.
	if to != OffIndex && b.Blocked(to, c) {
		return 0, ErrPointBlocked
	}

	// (f) Bearing off requires every checker home.
	if to == OffIndex && !b.AllInHome(c) {
		return 0, ErrCannotBearOff
	}

	return die, nil
}

// LegalMoves enumerates every move LegalMove would accept for the player
// to move, against the remaining dice. With a checker on the bar only bar
// entries are produced. The result is sorted ascending by (From, To, Die),
// the order move selection ties are broken in.
func LegalMoves(b Board) []Move {
	c := b.Player
	if !c.Valid() || !b.DiceRolled() {
		return nil
	}

	dice := distinctDice(b.RemainingDice())
	var moves []Move

	if b.Bar[c.Index()] > 0 {
		for _, die := range dice {
			to := EntryPoint(c, die)
			if !b.Blocked(to, c) {
				moves = append(moves, Move{From: BarIndex, To: to, Die: die})
			}
		}
		sortMoves(moves)
		return moves
	}

	canBearOff := b.AllInHome(c)
	for from := int8(0); from < NumPoints; from++ {
		p := b.Points[from]
		if p.Owner != c || p.Count == 0 {
			continue
		}
		for _, die := range dice {
			to := from + die*int8(Direction(c))
			if to >= 0 && to < NumPoints && !b.Blocked(to, c) {
				moves = append(moves, Move{From: from, To: to, Die: die})
			}
		}
		if !canBearOff {
			continue
		}
		// At most one bear-off per source: the exact die when present,
		// else the smallest higher die with nothing behind.
		if die, err := LegalMove(b, from, OffIndex); err == nil {
			moves = append(moves, Move{From: from, To: OffIndex, Die: die})
		}
	}
	sortMoves(moves)
	return moves
}

// HasLegalMove reports whether the player to move can use any die. False
// forces an automatic end of turn.
func HasLegalMove(b Board) bool {
	return len(LegalMoves(b)) > 0
}

// ApplyMove returns a new board with the move applied: the checker leaves
// its source, a lone opposing checker on the destination is sent to the
// bar, and the destination (or the borne-off count) gains the checker.
// The displaced blot's point is returned, or NoHit. Player and dice state
// are left for the turn controller.
func ApplyMove(b Board, m Move) (Board, int8, error) {
	orig := b
	c := b.Player
	hit := NoHit

	// Remove from the source.
	if m.From == BarIndex {
		if b.Bar[c.Index()] == 0 {
			return orig, NoHit, ErrNoChecker
		}
		b.Bar[c.Index()]--
	} else {
		if m.From < 0 || m.From >= NumPoints {
			return orig, NoHit, ErrOutOfRange
		}
		p := b.Points[m.From]
		if p.Owner != c || p.Count == 0 {
			return orig, NoHit, ErrNoChecker
		}
		p.Count--
		if p.Count == 0 {
			p.Owner = None
		}
		b.Points[m.From] = p
	}

	// Land on the destination.
	if m.To == OffIndex {
		b.Off[c.Index()]++
		return b, NoHit, nil
	}
	if m.To < 0 || m.To >= NumPoints {
		return orig, NoHit, ErrOutOfRange
	}
	dest := b.Points[m.To]
	if dest.Owner == c.Opponent() {
		if dest.Count > 1 {
			return orig, NoHit, ErrPointBlocked
		}
		// A lone blot is hit.
		b.Bar[c.Opponent().Index()]++
		dest = PointState{}
		hit = m.To
	}
	dest.Count++
	dest.Owner = c
	b.Points[m.To] = dest
	return b, hit, nil
}

// distinctDice returns the unique die values, ascending.
func distinctDice(dice []int8) []int8 {
	var out []int8
	seen := [7]bool{}
	for _, d := range dice {
		if d >= 1 && d <= 6 && !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortMoves(moves []Move) {
	sort.Slice(moves, func(i, j int) bool {
		if moves[i].From != moves[j].From {
			return moves[i].From < moves[j].From
		}
		if moves[i].To != moves[j].To {
			return moves[i].To < moves[j].To
		}
		return moves[i].Die < moves[j].Die
	})
}
