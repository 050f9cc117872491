package ai

import (
	"github.com/yourusername/bggame/pkg/engine"
)

// Scoring factors. Every candidate move is reduced to a fixed-length
// feature vector; a phase- and pattern-specific weight table turns the
// vector into a score. Penalty factors carry positive feature values and
// negative weights.
const (
	FactorBearOff        = iota // checker borne off
	FactorHighClear             // bear-off distance, clears the rear first
	FactorBarEntry              // re-entry from the bar
	FactorMakePoint             // converts an own blot into a made point
	FactorGoldenPoint           // the made point is the 5-point or bar point
	FactorPrimeExtension        // squared length of the prime through the new point
	FactorHit                   // sends an opposing blot to the bar
	FactorAnchor                // the made point is inside the opponent's home
	FactorPipGain               // pips advanced, normalized to a die
	FactorBlotRisk              // expected shots at blots the move creates
	FactorBreakPoint            // breaks a made point
	FactorOverstack             // piles a fifth or later checker on one point
	NumFactors
)

var factorNames = [NumFactors]string{
	"bear_off", "high_clear", "bar_entry", "make_point", "golden_point",
	"prime_extension", "hit", "anchor", "pip_gain", "blot_risk",
	"break_point", "overstack",
}

// FactorName returns the snake_case name of a scoring factor.
func FactorName(f int) string {
	if f < 0 || f >= NumFactors {
		return "unknown"
	}
	return factorNames[f]
}

// hitRolls[d] counts the rolls out of 36 that move a checker exactly d
// pips, intermediate blocking ignored. Direct shots for 1-6, combination
// and doubles shots beyond.
var hitRolls = [25]int{
	0, 11, 12, 14, 15, 15, 17, 6, 6, 5, 3, 2, 3,
	0, 0, 1, 1, 0, 1, 0, 1, 0, 0, 0, 1,
}

// Features reduces one legal move to its scoring vector. The move is
// applied to a scratch copy; the input board is never modified.
func Features(b engine.Board, m engine.Move) [NumFactors]float64 {
	var f [NumFactors]float64
	c := b.Player

	after, hit, err := engine.ApplyMove(b, m)
	if err != nil {
		return f
	}

	if m.To == engine.OffIndex {
		f[FactorBearOff] = 1
		f[FactorHighClear] = float64(engine.MoveDistance(m.From, m.To, c)) / 6
	}
	if m.From == engine.BarIndex {
		f[FactorBarEntry] = 1
	}
	if hit != engine.NoHit {
		f[FactorHit] = 1
	}

	// Point-making credit only when the destination graduates from a
	// blot to a made point.
	if m.To >= 0 && after.Points[m.To].Count == 2 && b.Points[m.To].Owner == c && b.Points[m.To].Count == 1 {
		f[FactorMakePoint] = 1
		if m.To == engine.GoldenPoint(c) || m.To == engine.BarPoint(c) {
			f[FactorGoldenPoint] = 1
		}
		if engine.InHomeBoard(m.To, c.Opponent()) {
			f[FactorAnchor] = 1
			for _, best := range engine.BestAnchors(c) {
				if m.To == best {
					f[FactorAnchor] = 1.5
				}
			}
		}
		l := primeLengthThrough(after, m.To, c)
		f[FactorPrimeExtension] = float64(l * l)
	}

	f[FactorPipGain] = float64(engine.MoveDistance(m.From, m.To, c)) / 6

	f[FactorBlotRisk] = blotRisk(b, after, m, c)

	if m.From != engine.BarIndex && b.Points[m.From].Count == 2 {
		f[FactorBreakPoint] = 1
		if m.From == engine.GoldenPoint(c) || m.From == engine.BarPoint(c) ||
			primeLengthThrough(b, m.From, c) >= 4 {
			f[FactorBreakPoint] = 2
		}
	}

	if m.To >= 0 && after.Points[m.To].Count > 4 {
		f[FactorOverstack] = float64(after.Points[m.To].Count - 4)
	}

	return f
}

// primeLengthThrough returns the length of the run of made points that
// contains point, or 0 if the point is not made.
func primeLengthThrough(b engine.Board, point int8, c engine.Color) int {
	made := func(i int8) bool {
		return i >= 0 && i < engine.NumPoints && b.Points[i].Owner == c && b.Points[i].Count >= 2
	}
	if !made(point) {
		return 0
	}
	n := 1
	for i := point - 1; made(i); i-- {
		n++
	}
	for i := point + 1; made(i); i++ {
		n++
	}
	return n
}

// blotRisk sums the expected shots against every blot the move creates:
// the vacated source if it drops to a single checker and the destination
// if the mover lands alone.
func blotRisk(before, after engine.Board, m engine.Move, c engine.Color) float64 {
	risk := 0.0
	if m.From != engine.BarIndex && after.Points[m.From].Count == 1 && after.Points[m.From].Owner == c {
		risk += shotsAt(after, m.From, c)
	}
	if m.To >= 0 && after.Points[m.To].Count == 1 {
		risk += shotsAt(after, m.To, c)
	}
	return risk
}

// shotsAt estimates the fraction of opponent rolls that hit a blot of c
// on point, counting every opposing checker (and bar checker) in range.
func shotsAt(b engine.Board, point int8, c engine.Color) float64 {
	opp := c.Opponent()
	rolls := 0
	for i := int8(0); i < engine.NumPoints; i++ {
		p := b.Points[i]
		if p.Owner != opp {
			continue
		}
		d := int(point-i) * engine.Direction(opp)
		if d > 0 && d < len(hitRolls) {
			rolls += hitRolls[d] * int(p.Count)
		}
	}
	if n := b.Bar[opp.Index()]; n > 0 {
		d := int(engine.MoveDistance(engine.BarIndex, point, opp))
		if d > 0 && d < len(hitRolls) {
			rolls += hitRolls[d] * int(n)
		}
	}
	return float64(rolls) / 36
}
