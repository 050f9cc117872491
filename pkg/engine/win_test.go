package engine

import (
	"testing"
)

func TestWinKind(t *testing.T) {
	tests := []struct {
		name   string
		board  Board
		winner Color
		want   Kind
	}{
		{
			"loser has borne off",
			testBoard(White, nil, map[int8]uint8{20: 14}),
			White,
			Single,
		},
		{
			"loser borne off nothing",
			testBoard(White, nil, map[int8]uint8{10: 15}),
			White,
			Gammon,
		},
		{
			"loser still on the bar",
			testBoard(White, nil, map[int8]uint8{10: 14, BarIndex: 1}),
			White,
			Backgammon,
		},
		{
			"loser in the winner's home",
			testBoard(White, nil, map[int8]uint8{3: 1, 10: 14}),
			White,
			Backgammon,
		},
		{
			"black wins a gammon",
			testBoard(Black, map[int8]uint8{10: 15}, nil),
			Black,
			Gammon,
		},
		{
			"black wins a backgammon",
			testBoard(Black, map[int8]uint8{20: 1, 10: 14}, nil),
			Black,
			Backgammon,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WinKind(tt.board, tt.winner)
			if got != tt.want {
				t.Errorf("WinKind() = %v, want %v", got, tt.want)
			}
			if got.Multiplier() != int(tt.want) {
				t.Errorf("Multiplier() = %d, want %d", got.Multiplier(), int(tt.want))
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if Single.String() != "single" || Gammon.String() != "gammon" || Backgammon.String() != "backgammon" {
		t.Errorf("Kind strings = %q %q %q", Single, Gammon, Backgammon)
	}
}
