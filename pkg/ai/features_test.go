package ai

import (
	"math"
	"testing"

	"github.com/yourusername/bggame/pkg/engine"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFeaturesMakeGoldenPoint(t *testing.T) {
	// White has slotted the 5-point; covering it makes the golden point
	// and a two-prime with the 6-point.
	b := engine.StartingBoard()
	b.Player = engine.White
	b, _, _ = engine.ApplyMove(b, engine.Move{From: 7, To: 4, Die: 3})

	f := Features(b, engine.Move{From: 5, To: 4, Die: 1})
	if f[FactorMakePoint] != 1 {
		t.Errorf("make_point = %v, want 1", f[FactorMakePoint])
	}
	if f[FactorGoldenPoint] != 1 {
		t.Errorf("golden_point = %v, want 1", f[FactorGoldenPoint])
	}
	if f[FactorAnchor] != 0 {
		t.Errorf("anchor = %v for a home-board point, want 0", f[FactorAnchor])
	}
	if f[FactorPrimeExtension] != 4 {
		t.Errorf("prime_extension = %v, want 4 (two-prime squared)", f[FactorPrimeExtension])
	}
	if f[FactorBearOff] != 0 || f[FactorBarEntry] != 0 || f[FactorHit] != 0 {
		t.Errorf("unexpected flags in %v", f)
	}
}

func TestFeaturesHitAndEntry(t *testing.T) {
	b := testBoard(engine.White,
		map[int8]uint8{engine.BarIndex: 1, 5: 3},
		map[int8]uint8{20: 1, 0: 2},
	)
	b.SetRoll(4, 2)

	f := Features(b, engine.Move{From: engine.BarIndex, To: 20, Die: 4})
	if f[FactorBarEntry] != 1 {
		t.Errorf("bar_entry = %v, want 1", f[FactorBarEntry])
	}
	if f[FactorHit] != 1 {
		t.Errorf("hit = %v, want 1", f[FactorHit])
	}
}

func TestFeaturesBearOff(t *testing.T) {
	b := testBoard(engine.White, map[int8]uint8{2: 2, 3: 2}, map[int8]uint8{23: 2})
	b.SetRoll(5, 3)

	f := Features(b, engine.Move{From: 3, To: engine.OffIndex, Die: 5})
	if f[FactorBearOff] != 1 {
		t.Errorf("bear_off = %v, want 1", f[FactorBearOff])
	}
	if !almostEqual(f[FactorHighClear], 4.0/6) {
		t.Errorf("high_clear = %v, want %v", f[FactorHighClear], 4.0/6)
	}
	if !almostEqual(f[FactorPipGain], 4.0/6) {
		t.Errorf("pip_gain = %v, want %v", f[FactorPipGain], 4.0/6)
	}
	// Taking the first checker off a made point breaks it.
	if f[FactorBreakPoint] != 1 {
		t.Errorf("break_point = %v, want 1", f[FactorBreakPoint])
	}
}

func TestFeaturesBlotRisk(t *testing.T) {
	// Vacating one checker from White's made point 10 leaves a blot
	// three pips in front of the Black checkers on 7.
	b := testBoard(engine.White,
		map[int8]uint8{10: 2, 0: 5},
		map[int8]uint8{7: 2, 20: 5},
	)
	b.Player = engine.White

	f := Features(b, engine.Move{From: 10, To: 4, Die: 6})
	want := float64(hitRolls[3]*2) / 36
	if !almostEqual(f[FactorBlotRisk], want) {
		t.Errorf("blot_risk = %v, want %v", f[FactorBlotRisk], want)
	}
	if f[FactorBreakPoint] != 1 {
		t.Errorf("break_point = %v, want 1", f[FactorBreakPoint])
	}
}

func TestFeaturesBreakGoldenPointWeighsDouble(t *testing.T) {
	b := testBoard(engine.White,
		map[int8]uint8{4: 2, 12: 5},
		map[int8]uint8{20: 5},
	)
	f := Features(b, engine.Move{From: 4, To: 1, Die: 3})
	if f[FactorBreakPoint] != 2 {
		t.Errorf("break_point = %v for the golden point, want 2", f[FactorBreakPoint])
	}
}

func TestFeaturesOverstack(t *testing.T) {
	b := testBoard(engine.White,
		map[int8]uint8{5: 5, 8: 3},
		map[int8]uint8{20: 5},
	)
	f := Features(b, engine.Move{From: 8, To: 5, Die: 3})
	if f[FactorOverstack] != 2 {
		t.Errorf("overstack = %v for a sixth checker, want 2", f[FactorOverstack])
	}
}

func TestShotsAtCountsAllThreats(t *testing.T) {
	// Two Black checkers three pips away and one six pips away.
	b := testBoard(engine.White,
		map[int8]uint8{10: 1, 0: 5},
		map[int8]uint8{7: 2, 4: 1, 20: 5},
	)
	got := shotsAt(b, 10, engine.White)
	want := float64(hitRolls[3]*2+hitRolls[6]) / 36
	if !almostEqual(got, want) {
		t.Errorf("shotsAt = %v, want %v", got, want)
	}

	// A checker on the bar threatens blots near the entry points.
	bar := testBoard(engine.White,
		map[int8]uint8{3: 1, 0: 5},
		map[int8]uint8{engine.BarIndex: 1, 10: 5},
	)
	got = shotsAt(bar, 3, engine.White)
	want = float64(hitRolls[4]) / 36
	if !almostEqual(got, want) {
		t.Errorf("shotsAt from bar = %v, want %v", got, want)
	}
}
