package ai

import (
	"github.com/yourusername/bggame/pkg/engine"
)

// Cube advice uses the race rule of thumb on pip counts: double with a
// lead of about ten percent, drop against a deficit past about twelve.
// Contact positions are handled conservatively.

// ShouldOfferDouble reports whether the player to move on b should turn
// the cube, assuming it is entitled to. An easy opponent never doubles.
func (p *Player) ShouldOfferDouble(b engine.Board, cube engine.Cube) bool {
	c := b.Player
	if p.difficulty == Easy || !cube.CanOffer(c) {
		return false
	}

	my := engine.PipCount(b, c)
	opp := engine.PipCount(b, c.Opponent())
	if my == 0 {
		return false
	}
	lead := opp - my

	// Blitzes double on the threat, not the race.
	if p.difficulty == Hard && ClassifyPattern(b, c) == PatternBlitz {
		return lead >= 0
	}
	return lead >= my/10+2
}

// ShouldAcceptDouble reports whether the player facing the pending offer
// should take it. Easy players always take.
func (p *Player) ShouldAcceptDouble(b engine.Board, cube engine.Cube) bool {
	if !cube.Offered {
		return false
	}
	if p.difficulty == Easy {
		return true
	}

	taker := cube.OfferedBy.Opponent()
	my := engine.PipCount(b, taker)
	opp := engine.PipCount(b, taker.Opponent())
	if opp == 0 {
		return false
	}
	deficit := my - opp

	// A gammon threat on top of a lost race is a pass.
	if b.Off[taker.Index()] == 0 && deficit > opp/8 {
		return false
	}
	return deficit <= opp/8+2
}
