package engine

import (
	"testing"
)

// testBoard builds a board with the given checkers per point (BarIndex
// places on the bar), crediting unplaced checkers as borne off so that
// conservation holds.
func testBoard(player Color, white, black map[int8]uint8) Board {
	var b Board
	b.Player = player
	var placed [2]uint8
	for pt, n := range white {
		if pt == BarIndex {
			b.Bar[White.Index()] = n
		} else {
			b.Points[pt] = PointState{Count: n, Owner: White}
		}
		placed[White.Index()] += n
	}
	for pt, n := range black {
		if pt == BarIndex {
			b.Bar[Black.Index()] = n
		} else {
			b.Points[pt] = PointState{Count: n, Owner: Black}
		}
		placed[Black.Index()] += n
	}
	b.Off[White.Index()] = CheckersPerSide - placed[White.Index()]
	b.Off[Black.Index()] = CheckersPerSide - placed[Black.Index()]
	return b
}

func TestStartingBoard(t *testing.T) {
	b := StartingBoard()

	layout := []struct {
		point int8
		count uint8
		owner Color
	}{
		{23, 2, White},
		{12, 5, White},
		{7, 3, White},
		{5, 5, White},
		{0, 2, Black},
		{11, 5, Black},
		{16, 3, Black},
		{18, 5, Black},
	}
	occupied := make(map[int8]bool)
	for _, l := range layout {
		occupied[l.point] = true
		p := b.Points[l.point]
		if p.Count != l.count || p.Owner != l.owner {
			t.Errorf("point %d = %d %s checkers, want %d %s", l.point, p.Count, p.Owner, l.count, l.owner)
		}
	}
	for i := int8(0); i < NumPoints; i++ {
		if !occupied[i] && b.Points[i].Count != 0 {
			t.Errorf("point %d occupied, want empty", i)
		}
	}

	if b.Bar[White.Index()] != 0 || b.Bar[Black.Index()] != 0 {
		t.Errorf("bar = %v, want empty", b.Bar)
	}
	if b.Off[White.Index()] != 0 || b.Off[Black.Index()] != 0 {
		t.Errorf("off = %v, want empty", b.Off)
	}
	if err := b.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	for _, c := range []Color{White, Black} {
		if n := b.CheckerCount(c); n != CheckersPerSide {
			t.Errorf("CheckerCount(%s) = %d, want %d", c, n, CheckersPerSide)
		}
	}
	if b.DiceRolled() {
		t.Error("DiceRolled() = true before any roll")
	}
}

func TestSetRoll(t *testing.T) {
	var b Board

	b.SetRoll(6, 5)
	if got := b.RemainingDice(); len(got) != 2 || got[0] != 6 || got[1] != 5 {
		t.Errorf("RemainingDice() after 6-5 = %v, want [6 5]", got)
	}

	// Doubles expand to four usable copies.
	b.SetRoll(4, 4)
	got := b.RemainingDice()
	if len(got) != 4 {
		t.Fatalf("RemainingDice() after 4-4 = %v, want four dice", got)
	}
	for _, d := range got {
		if d != 4 {
			t.Errorf("doubles die = %d, want 4", d)
		}
	}

	b.ClearDice()
	if b.DiceRolled() {
		t.Error("DiceRolled() = true after ClearDice")
	}
}

func TestUseDie(t *testing.T) {
	var b Board
	b.SetRoll(6, 5)

	if !b.UseDie(5) {
		t.Fatal("UseDie(5) = false, want true")
	}
	if got := b.RemainingDice(); len(got) != 1 || got[0] != 6 {
		t.Errorf("RemainingDice() = %v, want [6]", got)
	}
	if b.MovesMade() != 1 {
		t.Errorf("MovesMade() = %d, want 1", b.MovesMade())
	}
	if b.UseDie(5) {
		t.Error("UseDie(5) = true for a spent die")
	}
	if !b.HasDie(6) || b.HasDie(5) {
		t.Errorf("HasDie: 6=%v 5=%v, want true false", b.HasDie(6), b.HasDie(5))
	}

	b.SetRoll(3, 3)
	for i := 0; i < 4; i++ {
		if !b.UseDie(3) {
			t.Fatalf("UseDie(3) #%d = false, want true", i+1)
		}
	}
	if len(b.RemainingDice()) != 0 {
		t.Errorf("RemainingDice() = %v after four uses, want empty", b.RemainingDice())
	}
	if b.MovesMade() != 4 {
		t.Errorf("MovesMade() = %d, want 4", b.MovesMade())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Board)
		legal bool
	}{
		{"starting position", func(*Board) {}, true},
		{"owner without checkers", func(b *Board) {
			b.Points[3] = PointState{Count: 0, Owner: White}
		}, false},
		{"checkers without owner", func(b *Board) {
			b.Points[3] = PointState{Count: 2, Owner: None}
		}, false},
		{"checker vanished", func(b *Board) {
			b.Points[5].Count--
		}, false},
		{"checker duplicated", func(b *Board) {
			b.Points[5].Count++
		}, false},
		{"die out of range", func(b *Board) {
			b.Dice[0] = 7
		}, false},
		{"remaining exceeds roll", func(b *Board) {
			b.SetRoll(6, 5)
			b.Remaining = [4]int8{6, 6, 0, 0}
		}, false},
		{"hit checker on bar", func(b *Board) {
			b.Points[23].Count--
			b.Bar[White.Index()]++
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := StartingBoard()
			tt.mod(&b)
			err := b.Validate()
			if tt.legal && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.legal && err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestMoveString(t *testing.T) {
	tests := []struct {
		move Move
		want string
	}{
		{Move{From: 23, To: 17, Die: 6}, "24/18"},
		{Move{From: BarIndex, To: 20, Die: 4}, "bar/21"},
		{Move{From: 2, To: OffIndex, Die: 3}, "3/off"},
	}
	for _, tt := range tests {
		if got := tt.move.String(); got != tt.want {
			t.Errorf("%+v String() = %q, want %q", tt.move, got, tt.want)
		}
	}
}

func TestTestBoardConservation(t *testing.T) {
	b := testBoard(White,
		map[int8]uint8{2: 1, 4: 1, BarIndex: 1},
		map[int8]uint8{20: 2},
	)
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
	if b.Off[White.Index()] != 12 {
		t.Errorf("white off = %d, want 12", b.Off[White.Index()])
	}
	if b.Off[Black.Index()] != 13 {
		t.Errorf("black off = %d, want 13", b.Off[Black.Index()])
	}
}
