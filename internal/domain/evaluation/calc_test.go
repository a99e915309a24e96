package evaluation

import (
	"testing"

	"hrms/internal/domain/structure"
)

func weights() []structure.SubGroupWeight {
	return []structure.SubGroupWeight{
		{SubGroupID: 1, GroupID: 10, Name: "Mastery", Weight: 60},
		{SubGroupID: 2, GroupID: 20, Name: "Conduct", Weight: 40},
	}
}

func TestComputeFinalScoreWeightedAverage(t *testing.T) {
	scores := []SubGroupScore{
		{SubGroupID: 1, ScoreValue: 5},
		{SubGroupID: 2, ScoreValue: 3},
	}

	got, skipped := ComputeFinalScore(scores, weights())
	if got != 4.20 {
		t.Fatalf("expected 4.20, got %v", got)
	}
	if skipped != 0 {
		t.Fatalf("expected no skipped scores, got %d", skipped)
	}
}

func TestComputeFinalScoreSkipsUnknownSubGroups(t *testing.T) {
	scores := []SubGroupScore{
		{SubGroupID: 1, ScoreValue: 4},
		{SubGroupID: 99, ScoreValue: 1},
	}

	got, skipped := ComputeFinalScore(scores, weights())
	if got != 4.00 {
		t.Fatalf("expected 4.00, got %v", got)
	}
	if skipped != 1 {
		t.Fatalf("expected 1 skipped score, got %d", skipped)
	}
}

func TestComputeFinalScoreNoResolvableScores(t *testing.T) {
	scores := []SubGroupScore{{SubGroupID: 99, ScoreValue: 5}}

	got, skipped := ComputeFinalScore(scores, weights())
	if got != 0 {
		t.Fatalf("expected 0.00, got %v", got)
	}
	if skipped != 1 {
		t.Fatalf("expected 1 skipped score, got %d", skipped)
	}
}

func TestComputeFinalScoreEmptyInput(t *testing.T) {
	got, skipped := ComputeFinalScore(nil, weights())
	if got != 0 || skipped != 0 {
		t.Fatalf("expected 0.00 and 0 skipped, got %v %d", got, skipped)
	}
}

func TestComputeFinalScoreRounding(t *testing.T) {
	scores := []SubGroupScore{
		{SubGroupID: 1, ScoreValue: 5},
		{SubGroupID: 2, ScoreValue: 4},
	}
	// (5*60 + 4*40) / 100 = 4.6
	got, _ := ComputeFinalScore(scores, weights())
	if got != 4.60 {
		t.Fatalf("expected 4.60, got %v", got)
	}

	uneven := []structure.SubGroupWeight{
		{SubGroupID: 1, Weight: 1},
		{SubGroupID: 2, Weight: 2},
	}
	// (5*1 + 4*2) / 3 = 4.333... -> 4.33
	got, _ = ComputeFinalScore(scores, uneven)
	if got != 4.33 {
		t.Fatalf("expected 4.33, got %v", got)
	}
}

func TestScoreLabel(t *testing.T) {
	if ScoreLabel(1) != "Poor" || ScoreLabel(5) != "Excellent" {
		t.Fatal("unexpected labels for scale bounds")
	}
	if ScoreLabel(0) != "Unknown" || ScoreLabel(6) != "Unknown" {
		t.Fatal("out-of-scale values must label as Unknown")
	}
}
