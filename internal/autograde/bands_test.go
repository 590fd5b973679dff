package autograde

import "testing"

var ladder = []GradeBand{
	{Threshold: 0, Percent: 0},
	{Threshold: 50, Percent: 50},
	{Threshold: 100, Percent: 100},
}

func TestEvaluateBandsInterpolation(t *testing.T) {
	r := EvaluateBands(ladder, 75, true)
	if r.CompleteCount != 50 || r.CompletePercent != 50 {
		t.Fatalf("complete = %d/%d%%, want 50/50%%", r.CompleteCount, r.CompletePercent)
	}
	if r.PartialCount != 25 || r.PartialPercent != 25 {
		t.Fatalf("partial = %d/%d%%, want 25/25%%", r.PartialCount, r.PartialPercent)
	}
}

func TestEvaluateBandsNoPartialCredit(t *testing.T) {
	r := EvaluateBands(ladder, 75, false)
	if r.CompletePercent != 50 || r.PartialPercent != 0 {
		t.Fatalf("got %+v, want complete 50%% and no partial", r)
	}
}

func TestEvaluateBandsAtTop(t *testing.T) {
	for _, count := range []int{100, 150} {
		r := EvaluateBands(ladder, count, true)
		if r.CompletePercent != 100 || r.PartialPercent != 0 {
			t.Fatalf("count %d: got %+v, want top band and no partial", count, r)
		}
	}
}

func TestEvaluateBandsBelowLowest(t *testing.T) {
	bands := []GradeBand{{Threshold: 10, Percent: 40}, {Threshold: 20, Percent: 80}}
	r := EvaluateBands(bands, 5, true)
	if r.CompleteCount != 0 || r.CompletePercent != 0 {
		t.Fatalf("below lowest band must report 0/0, got %+v", r)
	}
	// half way into the first band: round(5/10*40) = 20
	if r.PartialCount != 5 || r.PartialPercent != 20 {
		t.Fatalf("partial = %d/%d%%, want 5/20%%", r.PartialCount, r.PartialPercent)
	}
}

func TestEvaluateBandsUnsortedInput(t *testing.T) {
	shuffled := []GradeBand{ladder[2], ladder[0], ladder[1]}
	if r := EvaluateBands(shuffled, 75, true); r.CompletePercent != 50 || r.PartialPercent != 25 {
		t.Fatalf("evaluator must sort bands itself, got %+v", r)
	}
}

func TestEvaluateBandsNone(t *testing.T) {
	if r := EvaluateBands(nil, 42, true); r != (BandResult{}) {
		t.Fatalf("no bands should yield the zero result, got %+v", r)
	}
}
