package engine

// Kind classifies a finished game by how badly the loser was beaten.
type Kind int

const (
	Single     Kind = 1 // loser has borne off at least one checker
	Gammon     Kind = 2 // loser has borne off nothing
	Backgammon Kind = 3 // gammon with a loser checker on the bar or in the winner's home
)

// String returns the display name of the win kind.
func (k Kind) String() string {
	switch k {
	case Gammon:
		return "gammon"
	case Backgammon:
		return "backgammon"
	default:
		return "single"
	}
}

// Multiplier is the stake factor the win kind carries, before the cube.
func (k Kind) Multiplier() int {
	return int(k)
}

// WinKind returns the multiplier classification for winner against the
// current position. It does not check that the game is actually over.
func WinKind(b Board, winner Color) Kind {
	loser := winner.Opponent()
	if b.Off[loser.Index()] > 0 {
		return Single
	}
	if b.Bar[loser.Index()] > 0 {
		return Backgammon
	}
	for i := int8(0); i < NumPoints; i++ {
		if b.Points[i].Owner == loser && InHomeBoard(i, winner) {
			return Backgammon
		}
	}
	return Gammon
}
