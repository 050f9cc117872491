package ai

import (
	"testing"

	"github.com/yourusername/bggame/pkg/engine"
)

// raceBoard puts both sides past each other so pattern classification
// sees a pure race. White holds 45 pips; Black's pips vary by test.
func raceBoard(black map[int8]uint8) engine.Board {
	return testBoard(engine.White,
		map[int8]uint8{0: 3, 1: 3, 2: 3, 3: 3, 4: 3},
		black,
	)
}

func TestShouldOfferDouble(t *testing.T) {
	bigLead := raceBoard(map[int8]uint8{14: 5, 15: 5, 16: 5})
	even := raceBoard(map[int8]uint8{19: 3, 20: 3, 21: 3, 22: 3, 23: 3})

	tests := []struct {
		name       string
		difficulty Difficulty
		board      engine.Board
		want       bool
	}{
		{"normal with big lead", Normal, bigLead, true},
		{"hard with big lead", Hard, bigLead, true},
		{"normal in even race", Normal, even, false},
		{"easy never doubles", Easy, bigLead, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer(tt.difficulty)
			if got := p.ShouldOfferDouble(tt.board, engine.NewCube()); got != tt.want {
				t.Errorf("ShouldOfferDouble = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldOfferDoubleNotEntitled(t *testing.T) {
	b := raceBoard(map[int8]uint8{14: 5, 15: 5, 16: 5})
	cube := engine.Cube{Value: 2, Owner: engine.Black}

	p := NewPlayer(Normal)
	if p.ShouldOfferDouble(b, cube) {
		t.Error("ShouldOfferDouble = true for a cube the player does not own")
	}
}

func TestShouldOfferDoubleBlitz(t *testing.T) {
	// White has three home points made and Black on the bar. The race
	// lead alone is short of a normal double, but a hard player doubles
	// on the attack.
	b := testBoard(engine.White,
		map[int8]uint8{3: 2, 4: 2, 5: 2, 7: 3, 12: 4, 23: 2},
		map[int8]uint8{engine.BarIndex: 1, 0: 1, 11: 5, 16: 3, 18: 5},
	)

	if got := NewPlayer(Hard).ShouldOfferDouble(b, engine.NewCube()); !got {
		t.Error("hard ShouldOfferDouble = false, want true in a blitz")
	}
	if got := NewPlayer(Normal).ShouldOfferDouble(b, engine.NewCube()); got {
		t.Error("normal ShouldOfferDouble = true, want false on this race lead")
	}
}

func TestShouldAcceptDouble(t *testing.T) {
	smallDeficit := raceBoard(map[int8]uint8{18: 1, 19: 3, 20: 3, 21: 3, 22: 2, 23: 3})
	hugeDeficit := raceBoard(map[int8]uint8{14: 5, 15: 5, 16: 5})

	offered := engine.NewCube()
	if err := offered.Offer(engine.White); err != nil {
		t.Fatalf("Offer() = %v", err)
	}

	tests := []struct {
		name       string
		difficulty Difficulty
		board      engine.Board
		want       bool
	}{
		{"normal takes a close race", Normal, smallDeficit, true},
		{"normal drops a lost race", Normal, hugeDeficit, false},
		{"easy always takes", Easy, hugeDeficit, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer(tt.difficulty)
			if got := p.ShouldAcceptDouble(tt.board, offered); got != tt.want {
				t.Errorf("ShouldAcceptDouble = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldAcceptDoubleNoOffer(t *testing.T) {
	b := raceBoard(map[int8]uint8{19: 3, 20: 3, 21: 3, 22: 3, 23: 3})
	p := NewPlayer(Easy)
	if p.ShouldAcceptDouble(b, engine.NewCube()) {
		t.Error("ShouldAcceptDouble = true with no pending offer")
	}
}
