package engine

// Direction conventions are fixed for the whole game: White runs from
// point 23 down to 0 and bears off past 0; Black runs from 0 up to 23.
// Home boards never change: White 0-5, Black 18-23.

// Direction returns the per-pip index delta for the player: -1 for White,
// +1 for Black.
func Direction(c Color) int {
	if c == Black {
		return 1
	}
	return -1
}

// EntryPoint returns the point a checker entering from the bar with the
// given die lands on, before any blocking check. White enters in Black's
// home (die 1 -> point 23), Black in White's (die 1 -> point 0).
func EntryPoint(c Color, die int8) int8 {
	if c == Black {
		return die - 1
	}
	return NumPoints - die
}

// InHomeBoard reports whether point lies in the player's fixed home range.
func InHomeBoard(point int8, c Color) bool {
	if c == Black {
		return point >= 18 && point <= 23
	}
	return point >= 0 && point <= 5
}

// GoldenPoint is the player's 5-point, the most valuable point to make.
func GoldenPoint(c Color) int8 {
	if c == Black {
		return 19
	}
	return 4
}

// BarPoint is the player's bar point (the 7-point), the second golden
// point.
func BarPoint(c Color) int8 {
	if c == Black {
		return 17
	}
	return 6
}

// BestAnchors returns the two statistically strongest anchor points inside
// the opponent's home board, best first.
func BestAnchors(c Color) [2]int8 {
	if c == Black {
		// White's 5-point and 4-point.
		return [2]int8{4, 3}
	}
	// Black's 5-point and 4-point.
	return [2]int8{19, 20}
}

// Blocked reports whether the point holds two or more of the opponent's
// checkers. A blocked point stops both regular moves and bar entry.
func (b Board) Blocked(point int8, c Color) bool {
	p := b.Points[point]
	return p.Owner == c.Opponent() && p.Count >= 2
}

// AllInHome reports whether every on-board checker of c sits in its home
// board and the bar is empty: the precondition for bearing off.
func (b Board) AllInHome(c Color) bool {
	if b.Bar[c.Index()] > 0 {
		return false
	}
	for i := int8(0); i < NumPoints; i++ {
		if b.Points[i].Owner == c && !InHomeBoard(i, c) {
			return false
		}
	}
	return true
}

// MoveDistance returns the pip distance a move requires, covering bar
// re-entry, bearing off, and regular moves. Direction correctness is the
// caller's concern.
func MoveDistance(from, to int8, c Color) int8 {
	switch {
	case from == BarIndex:
		if c == Black {
			return to + 1
		}
		return NumPoints - to
	case to == OffIndex:
		if c == Black {
			return NumPoints - from
		}
		return from + 1
	default:
		d := to - from
		if d < 0 {
			d = -d
		}
		return d
	}
}

// checkerBehind reports whether the player has an on-board checker farther
// from home than the given point. It gates the higher-die bear-off rule.
func (b Board) checkerBehind(point int8, c Color) bool {
	if c == Black {
		for i := int8(0); i < point; i++ {
			if b.Points[i].Owner == c {
				return true
			}
		}
		return false
	}
	for i := point + 1; i < NumPoints; i++ {
		if b.Points[i].Owner == c {
			return true
		}
	}
	return false
}

// PipCount is the total remaining travel distance for the player's
// checkers, counting 25 per checker on the bar.
func PipCount(b Board, c Color) int {
	pips := int(b.Bar[c.Index()]) * 25
	for i := int8(0); i < NumPoints; i++ {
		p := b.Points[i]
		if p.Owner != c {
			continue
		}
		if c == Black {
			pips += int(p.Count) * int(NumPoints-i)
		} else {
			pips += int(p.Count) * int(i+1)
		}
	}
	return pips
}
