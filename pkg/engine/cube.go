package engine

// MaxCubeValue is the ceiling after which the cube is dead: no further
// doubles may be offered.
const MaxCubeValue = 64

// Cube is the doubling cube. A fresh cube is worth 1 point, sits in the
// center (Owner == None), and has no pending offer. It is mutated only
// through Offer, Accept, Decline, and Reset; the turn controller layers
// turn-order timing on top.
type Cube struct {
	Value     int   `json:"value"`
	Owner     Color `json:"owner"` // None while centered
	Offered   bool  `json:"offered"`
	OfferedBy Color `json:"offered_by"`
}

// NewCube returns a centered cube at value 1.
func NewCube() Cube {
	return Cube{Value: 1, Owner: None, OfferedBy: None}
}

// CanOffer reports whether player may double right now: no offer pending,
// the cube still live, and the cube centered or owned by player.
func (c Cube) CanOffer(player Color) bool {
	if c.Offered || c.Value >= MaxCubeValue {
		return false
	}
	return c.Owner == None || c.Owner == player
}

// Offer proposes a double. The value is unchanged until the opponent
// accepts.
func (c *Cube) Offer(player Color) error {
	if c.Offered {
		return ErrCubeAlreadyOffered
	}
	if c.Value >= MaxCubeValue {
		return ErrCubeDead
	}
	if c.Owner != None && c.Owner != player {
		return ErrCubeNotOwned
	}
	c.Offered = true
	c.OfferedBy = player
	return nil
}

// Accept takes a pending double: the value doubles and the accepting
// player becomes the owner, gaining the exclusive right to redouble.
func (c *Cube) Accept(player Color) error {
	if !c.Offered {
		return ErrNoCubeOffer
	}
	c.Value *= 2
	c.Owner = player
	c.Offered = false
	c.OfferedBy = None
	return nil
}

// Decline refuses a pending double. The offering player wins immediately
// at the pre-double value; the caller scores the game, Decline only
// reports the forfeit and clears the offer.
func (c *Cube) Decline() (winner Color, points int, err error) {
	if !c.Offered {
		return None, 0, ErrNoCubeOffer
	}
	winner = c.OfferedBy
	points = c.Value
	c.Offered = false
	c.OfferedBy = None
	return winner, points, nil
}

// Reset recenters the cube at 1 for a new game.
func (c *Cube) Reset() {
	*c = NewCube()
}
