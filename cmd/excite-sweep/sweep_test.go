package main

import (
	"errors"
	"slices"
	"testing"
)

func TestParseInts(t *testing.T) {
	got, err := parseInts(" 5, 10,,20 ")
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{5, 10, 20}) {
		t.Fatalf("parseInts = %v", got)
	}
	for _, bad := range []string{"", ",", "5,x"} {
		if _, err := parseInts(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestDeriveSeedsIsDeterministic(t *testing.T) {
	a, b := deriveSeeds(7, 4), deriveSeeds(7, 4)
	if len(a) != 4 || !slices.Equal(a, b) {
		t.Fatalf("deriveSeeds(7, 4) = %v then %v", a, b)
	}
	if slices.Equal(a, deriveSeeds(8, 4)) {
		t.Fatal("different bases produced the same seeds")
	}
	for i := range a {
		if a[i] < 0 || slices.Contains(a[i+1:], a[i]) {
			t.Fatalf("bad seed list %v", a)
		}
	}
	if got := deriveSeeds(1, 0); len(got) != 0 {
		t.Fatalf("zero seeds requested, got %v", got)
	}
}

func TestSummarizeOrdersBySustainedThenSurvival(t *testing.T) {
	a := paramSet{noiseScale: 10, noisePercent: 40}
	b := paramSet{noiseScale: 20, noisePercent: 60}
	c := paramSet{noiseScale: 5, noisePercent: 0}
	rows := summarize([]runResult{
		{params: a, survived: 100},
		{params: a, survived: 300, sustained: true, peak: 50},
		{params: b, survived: 250},
		{params: b, survived: 350},
		{params: c, survived: 10},
		{params: c, err: errTest},
	})
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].params != a || rows[0].sustained != 1 || rows[0].runs != 2 || rows[0].meanSurvival != 200 || rows[0].peak != 50 {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[1].params != b || rows[1].meanSurvival != 300 {
		t.Fatalf("unexpected second row %+v", rows[1])
	}
	if rows[2].params != c || rows[2].runs != 1 {
		t.Fatalf("failed run should be skipped: %+v", rows[2])
	}
}

func TestRunCandidateSilencesPacing(t *testing.T) {
	res := runCandidate(sweepOptions{scenario: "pace", warmup: 50, steps: 400}, job{seed: 3})
	if res.err != nil {
		t.Fatal(res.err)
	}
	if res.sustained {
		t.Fatal("homogeneous sheet kept firing with its pacemaker removed")
	}
	if res.survived >= 400 {
		t.Fatalf("survived %d ticks", res.survived)
	}
}

func TestRunCandidateReportsUnknownScenario(t *testing.T) {
	if res := runCandidate(sweepOptions{scenario: "nope", steps: 1}, job{}); res.err == nil {
		t.Fatal("expected error")
	}
}

var errTest = errors.New("boom")
