package engine

import (
	"strings"
	"testing"
)

func TestKeyRoundTrip(t *testing.T) {
	boards := []struct {
		name  string
		board Board
	}{
		{"starting position", StartingBoard()},
		{"mid bear-off", testBoard(White,
			map[int8]uint8{0: 2, 2: 3, 5: 1},
			map[int8]uint8{19: 4, 23: 2, BarIndex: 1},
		)},
		{"everything off", testBoard(White, nil, nil)},
	}

	for _, tt := range boards {
		t.Run(tt.name, func(t *testing.T) {
			id := tt.board.ID()
			if len(id) != IDLength {
				t.Fatalf("ID() = %q, want %d characters", id, IDLength)
			}

			got, err := ParseID(id)
			if err != nil {
				t.Fatalf("ParseID(%q) err = %v", id, err)
			}
			if got.Points != tt.board.Points {
				t.Errorf("points differ after round trip:\n got %v\nwant %v", got.Points, tt.board.Points)
			}
			if got.Bar != tt.board.Bar {
				t.Errorf("bar = %v, want %v", got.Bar, tt.board.Bar)
			}
			if got.Off != tt.board.Off {
				t.Errorf("off = %v, want %v", got.Off, tt.board.Off)
			}
		})
	}
}

func TestKeyDistinguishesBoards(t *testing.T) {
	a := StartingBoard()
	b, _, err := ApplyMove(a, Move{From: 23, To: 17, Die: 6})
	if err != nil {
		t.Fatalf("ApplyMove() err = %v", err)
	}
	if a.Key() == b.Key() {
		t.Error("distinct positions share a key")
	}
	if a.ID() == b.ID() {
		t.Error("distinct positions share an ID")
	}
}

func TestKeyIgnoresDiceAndTurn(t *testing.T) {
	a := StartingBoard()
	b := a
	b.Player = Black
	b.SetRoll(6, 5)
	if a.Key() != b.Key() {
		t.Error("dice and turn state leaked into the key")
	}
}

func TestParseIDRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"too short", "AAAA"},
		{"too long", strings.Repeat("A", IDLength+1)},
		{"bad alphabet", strings.Repeat("~", IDLength)},
		{"too many checkers", strings.Repeat("/", IDLength)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseID(tt.id); err == nil {
				t.Errorf("ParseID(%q) = nil error, want failure", tt.id)
			}
		})
	}
}
