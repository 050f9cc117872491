// Package engine implements the backgammon rules core: the board model,
// move legality and application, pip counting, win multipliers, and the
// doubling cube. Everything in this package is pure; functions take a
// Board by value and return new values, so callers never share mutable
// state with the engine.
package engine

import (
	"fmt"
	"strings"
)

// Color identifies a checker owner. None marks an empty point and the
// centered cube.
type Color uint8

const (
	None Color = iota
	White
	Black
)

// String returns the display name of the color.
func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// Opponent returns the other player. Opponent of None is None.
func (c Color) Opponent() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return None
	}
}

// Index maps a player color to a 0/1 array index (White=0, Black=1).
func (c Color) Index() int {
	if c == Black {
		return 1
	}
	return 0
}

// Valid reports whether c is an actual player.
func (c Color) Valid() bool {
	return c == White || c == Black
}

// Board geometry and move sentinels.
const (
	NumPoints       = 24
	CheckersPerSide = 15

	// BarIndex is the Move.From sentinel for re-entering from the bar.
	BarIndex int8 = 24
	// OffIndex is the Move.To sentinel for bearing a checker off.
	OffIndex int8 = -1
	// NoHit is reported by ApplyMove when no blot was displaced.
	NoHit int8 = -1
)

// PointState is a single track position: how many checkers sit on it and
// whose they are. Count==0 always pairs with Owner==None.
type PointState struct {
	Count uint8 `json:"count"`
	Owner Color `json:"owner"`
}

// Move is one checker relocation: From is a point index or BarIndex, To is
// a point index or OffIndex, Die is the pip value consumed.
type Move struct {
	From int8 `json:"from"`
	To   int8 `json:"to"`
	Die  int8 `json:"die"`
}

// String renders the move in bar/off notation with 1-based point numbers.
func (m Move) String() string {
	from := fmt.Sprintf("%d", m.From+1)
	if m.From == BarIndex {
		from = "bar"
	}
	to := fmt.Sprintf("%d", m.To+1)
	if m.To == OffIndex {
		to = "off"
	}
	return fmt.Sprintf("%s/%s", from, to)
}

// Board is the complete per-game position: 24 points, bars, borne-off
// counts, the player to move, and the dice state for the current turn.
// Board is a value type; plain assignment takes a full snapshot, which is
// what the turn controller's undo stack and the AI rely on.
type Board struct {
	Points    [24]PointState `json:"points"`
	Bar       [2]uint8       `json:"bar"`       // indexed by Color.Index()
	Off       [2]uint8       `json:"off"`       // borne-off checkers
	Player    Color          `json:"player"`    // player to move
	Dice      [4]int8        `json:"dice"`      // rolled values, zero-padded
	Remaining [4]int8        `json:"remaining"` // unconsumed subset of Dice
}

// StartingBoard returns the standard backgammon starting layout with White
// to move. The turn controller overrides Player once the opening roll
// resolves.
func StartingBoard() Board {
	var b Board
	b.Player = White

	// White runs 23 -> 0 and bears off from points 0-5.
	b.Points[23] = PointState{Count: 2, Owner: White}
	b.Points[12] = PointState{Count: 5, Owner: White}
	b.Points[7] = PointState{Count: 3, Owner: White}
	b.Points[5] = PointState{Count: 5, Owner: White}

	// Black mirrors White, running 0 -> 23.
	b.Points[0] = PointState{Count: 2, Owner: Black}
	b.Points[11] = PointState{Count: 5, Owner: Black}
	b.Points[16] = PointState{Count: 3, Owner: Black}
	b.Points[18] = PointState{Count: 5, Owner: Black}

	return b
}

// SetRoll installs a dice roll for the current turn. Doubles expand to
// four usable copies. Remaining starts equal to Dice.
func (b *Board) SetRoll(d1, d2 int8) {
	if d1 == d2 {
		b.Dice = [4]int8{d1, d1, d1, d1}
	} else {
		b.Dice = [4]int8{d1, d2, 0, 0}
	}
	b.Remaining = b.Dice
}

// ClearDice removes all dice state, marking the turn's roll as spent.
func (b *Board) ClearDice() {
	b.Dice = [4]int8{}
	b.Remaining = [4]int8{}
}

// DiceRolled reports whether the current turn has an active roll.
func (b Board) DiceRolled() bool {
	return b.Dice[0] != 0
}

// RemainingDice returns the unconsumed die values, in roll order.
func (b Board) RemainingDice() []int8 {
	out := make([]int8, 0, 4)
	for _, d := range b.Remaining {
		if d != 0 {
			out = append(out, d)
		}
	}
	return out
}

// MovesMade counts dice consumed so far this turn.
func (b Board) MovesMade() int {
	return len(b.diceValues(b.Dice)) - len(b.diceValues(b.Remaining))
}

func (Board) diceValues(a [4]int8) []int8 {
	out := make([]int8, 0, 4)
	for _, d := range a {
		if d != 0 {
			out = append(out, d)
		}
	}
	return out
}

// UseDie removes one instance of die from Remaining, keeping the slice
// compacted. Returns false if the value is not present.
func (b *Board) UseDie(die int8) bool {
	for i, d := range b.Remaining {
		if d == die {
			copy(b.Remaining[i:], b.Remaining[i+1:])
			b.Remaining[3] = 0
			return true
		}
	}
	return false
}

// HasDie reports whether die is still available this turn.
func (b Board) HasDie(die int8) bool {
	for _, d := range b.Remaining {
		if d == die {
			return true
		}
	}
	return false
}

// CheckerCount returns the total checkers of c across points, bar, and
// borne off.
func (b Board) CheckerCount(c Color) int {
	n := int(b.Bar[c.Index()]) + int(b.Off[c.Index()])
	for _, p := range b.Points {
		if p.Owner == c {
			n += int(p.Count)
		}
	}
	return n
}

// Validate checks the structural invariants: per-point coherence, checker
// conservation, and dice sanity. A non-nil result after a mutation means
// the engine itself is broken, not that the caller made an illegal request.
func (b Board) Validate() error {
	for i, p := range b.Points {
		if p.Count == 0 && p.Owner != None {
			return fmt.Errorf("point %d: zero count with owner %s", i, p.Owner)
		}
		if p.Count > 0 && !p.Owner.Valid() {
			return fmt.Errorf("point %d: %d checkers with no owner", i, p.Count)
		}
		if p.Count > CheckersPerSide {
			return fmt.Errorf("point %d: impossible count %d", i, p.Count)
		}
	}
	for _, c := range []Color{White, Black} {
		if n := b.CheckerCount(c); n != CheckersPerSide {
			return fmt.Errorf("%s has %d checkers, want %d", c, n, CheckersPerSide)
		}
	}
	for _, d := range b.Dice {
		if d < 0 || d > 6 {
			return fmt.Errorf("die value %d out of range", d)
		}
	}
	remaining := make(map[int8]int)
	for _, d := range b.RemainingDice() {
		remaining[d]++
	}
	rolled := make(map[int8]int)
	for _, d := range b.diceValues(b.Dice) {
		rolled[d]++
	}
	for v, n := range remaining {
		if n > rolled[v] {
			return fmt.Errorf("remaining dice exceed the roll for value %d", v)
		}
	}
	return nil
}

// String renders the board as a two-row ASCII diagram with 1-based point
// numbers, White as O and Black as X.
func (b Board) String() string {
	cell := func(i int) string {
		p := b.Points[i]
		if p.Count == 0 {
			return " ."
		}
		glyph := "O"
		if p.Owner == Black {
			glyph = "X"
		}
		if p.Count > 9 {
			return fmt.Sprintf("%s+", glyph)
		}
		return fmt.Sprintf("%s%d", glyph, p.Count)
	}

	var sb strings.Builder
	sb.WriteString(" 13 14 15 16 17 18 | 19 20 21 22 23 24\n")
	for i := 12; i < 24; i++ {
		sb.WriteString(" " + cell(i))
		if i == 17 {
			sb.WriteString(" |")
		}
	}
	sb.WriteString("\n")
	for i := 11; i >= 0; i-- {
		sb.WriteString(" " + cell(i))
		if i == 6 {
			sb.WriteString(" |")
		}
	}
	sb.WriteString("\n 12 11 10  9  8  7 |  6  5  4  3  2  1\n")
	fmt.Fprintf(&sb, "bar W:%d B:%d  off W:%d B:%d  to move: %s",
		b.Bar[White.Index()], b.Bar[Black.Index()],
		b.Off[White.Index()], b.Off[Black.Index()], b.Player)
	if b.DiceRolled() {
		fmt.Fprintf(&sb, "  dice %v", b.RemainingDice())
	}
	return sb.String()
}
