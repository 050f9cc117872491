package ai

// WeightTable assigns a weight to every scoring factor. Tables are plain
// arrays so tests can inject a table that isolates a single factor.
type WeightTable [NumFactors]float64

// Base tables per phase. The columns follow the factor constants:
// bear_off, high_clear, bar_entry, make_point, golden_point,
// prime_extension, hit, anchor, pip_gain, blot_risk, break_point,
// overstack.
var phaseWeights = [3]WeightTable{
	PhaseOpening: {
		FactorBearOff:        8.0,
		FactorHighClear:      0.5,
		FactorBarEntry:       9.0,
		FactorMakePoint:      2.5,
		FactorGoldenPoint:    5.0,
		FactorPrimeExtension: 0.30,
		FactorHit:            3.0,
		FactorAnchor:         2.0,
		FactorPipGain:        1.0,
		FactorBlotRisk:       -3.0,
		FactorBreakPoint:     -2.5,
		FactorOverstack:      -1.0,
	},
	PhaseBlocking: {
		FactorBearOff:        8.0,
		FactorHighClear:      1.0,
		FactorBarEntry:       9.0,
		FactorMakePoint:      2.5,
		FactorGoldenPoint:    3.0,
		FactorPrimeExtension: 0.40,
		FactorHit:            3.5,
		FactorAnchor:         1.5,
		FactorPipGain:        1.2,
		FactorBlotRisk:       -3.5,
		FactorBreakPoint:     -2.0,
		FactorOverstack:      -1.0,
	},
	PhaseBearingOff: {
		FactorBearOff:        10.0,
		FactorHighClear:      2.0,
		FactorBarEntry:       9.0,
		FactorMakePoint:      0.5,
		FactorGoldenPoint:    0,
		FactorPrimeExtension: 0,
		FactorHit:            1.0,
		FactorAnchor:         0,
		FactorPipGain:        2.0,
		FactorBlotRisk:       -2.0,
		FactorBreakPoint:     -0.5,
		FactorOverstack:      -0.5,
	},
}

// patternScale multiplies selected factors of the phase table. A nil-ish
// (all-ones) row leaves the table untouched.
var patternScale = map[Pattern]WeightTable{
	PatternRace: {
		FactorBearOff: 1, FactorHighClear: 1, FactorBarEntry: 1,
		FactorMakePoint: 0.5, FactorGoldenPoint: 0.5, FactorPrimeExtension: 0.25,
		FactorHit: 0.2, FactorAnchor: 0, FactorPipGain: 1.5,
		FactorBlotRisk: 0.5, FactorBreakPoint: 0.5, FactorOverstack: 1,
	},
	PatternBlitz: {
		FactorBearOff: 1, FactorHighClear: 1, FactorBarEntry: 1,
		FactorMakePoint: 1.3, FactorGoldenPoint: 1.2, FactorPrimeExtension: 1,
		FactorHit: 1.8, FactorAnchor: 0.8, FactorPipGain: 1,
		FactorBlotRisk: 0.8, FactorBreakPoint: 1, FactorOverstack: 1,
	},
	PatternBackGame: {
		FactorBearOff: 1, FactorHighClear: 1, FactorBarEntry: 1,
		FactorMakePoint: 1, FactorGoldenPoint: 1, FactorPrimeExtension: 1,
		FactorHit: 1.2, FactorAnchor: 2.0, FactorPipGain: 0.3,
		FactorBlotRisk: 0.7, FactorBreakPoint: 1.2, FactorOverstack: 1,
	},
	PatternPriming: {
		FactorBearOff: 1, FactorHighClear: 1, FactorBarEntry: 1,
		FactorMakePoint: 1.4, FactorGoldenPoint: 1.2, FactorPrimeExtension: 2.0,
		FactorHit: 1, FactorAnchor: 1, FactorPipGain: 0.8,
		FactorBlotRisk: 1, FactorBreakPoint: 1.5, FactorOverstack: 1,
	},
	PatternHolding: {
		FactorBearOff: 1, FactorHighClear: 1, FactorBarEntry: 1,
		FactorMakePoint: 1, FactorGoldenPoint: 1, FactorPrimeExtension: 1,
		FactorHit: 1.2, FactorAnchor: 1.5, FactorPipGain: 0.8,
		FactorBlotRisk: 1.2, FactorBreakPoint: 1, FactorOverstack: 1,
	},
}

// WeightsFor builds the effective weight table for a phase, pattern, and
// difficulty. Easy play drops the defensive penalties entirely and greeds
// for pips; the pattern scaling is the positional awareness that
// separates hard from normal play.
func WeightsFor(phase Phase, pattern Pattern, d Difficulty) WeightTable {
	w := phaseWeights[phase]

	if scale, ok := patternScale[pattern]; ok {
		for i := range w {
			w[i] *= scale[i]
		}
	}

	if d == Easy {
		w[FactorBlotRisk] = 0
		w[FactorBreakPoint] = 0
		w[FactorOverstack] = 0
		w[FactorPipGain] *= 1.5
	}
	return w
}
