package evaluation

import (
	"testing"
	"time"
)

func TestValidateCreateRejectsBadInput(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	valid := CreateInput{
		EmployeeID:     1,
		EvaluatorID:    2,
		EvaluationDate: "2026-08-20",
		Scores:         []SubGroupScore{{SubGroupID: 1, ScoreValue: 4}},
	}

	cases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"missing employee", func(in *CreateInput) { in.EmployeeID = 0 }},
		{"missing evaluator", func(in *CreateInput) { in.EvaluatorID = 0 }},
		{"no scores", func(in *CreateInput) { in.Scores = nil }},
		{"garbage date", func(in *CreateInput) { in.EvaluationDate = "not-a-date" }},
		{"future date", func(in *CreateInput) { in.EvaluationDate = "2026-09-01" }},
		{"ancient date", func(in *CreateInput) { in.EvaluationDate = "1999-12-31" }},
		{"score too low", func(in *CreateInput) { in.Scores = []SubGroupScore{{SubGroupID: 1, ScoreValue: 0}} }},
		{"score too high", func(in *CreateInput) { in.Scores = []SubGroupScore{{SubGroupID: 1, ScoreValue: 6}} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			if _, err := validateCreate(in, now); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}

	date, err := validateCreate(valid, now)
	if err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
	if got := date.Format("2006-01-02"); got != "2026-08-20" {
		t.Fatalf("unexpected normalized date %s", got)
	}
}

func TestValidateCreateAcceptsTodayAndTimestamps(t *testing.T) {
	now := time.Date(2026, 8, 27, 23, 30, 0, 0, time.UTC)
	in := CreateInput{
		EmployeeID:     1,
		EvaluatorID:    2,
		EvaluationDate: "2026-08-27T09:15:00",
		Scores:         []SubGroupScore{{SubGroupID: 1, ScoreValue: 3}},
	}
	date, err := validateCreate(in, now)
	if err != nil {
		t.Fatalf("same-day timestamp rejected: %v", err)
	}
	if got := date.Format("2006-01-02"); got != "2026-08-27" {
		t.Fatalf("timestamp not truncated to day, got %s", got)
	}
}

func TestDecodeArchivedScores(t *testing.T) {
	blob := []byte(`[{"subGroupId":4,"subGroupName":"Conduct","scoreValue":5}]`)
	scores := decodeArchivedScores(1, blob)
	if len(scores) != 1 {
		t.Fatalf("expected 1 score, got %d", len(scores))
	}
	if scores[0].SubGroupName != "Conduct" || scores[0].ScoreLabel != "Excellent" {
		t.Fatalf("unexpected decoded score %+v", scores[0])
	}
}

func TestDecodeArchivedScoresMalformedBlob(t *testing.T) {
	for _, blob := range [][]byte{nil, []byte(""), []byte("{broken"), []byte(`{"not":"a list"}`)} {
		scores := decodeArchivedScores(7, blob)
		if scores == nil || len(scores) != 0 {
			t.Fatalf("malformed blob must decode to an empty list, got %v", scores)
		}
	}
}
