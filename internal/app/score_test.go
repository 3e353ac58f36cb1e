package app_test

import (
	"errors"
	"math"
	"testing"

	"osdi-survey/internal/app"
	"osdi-survey/internal/domain"
)

func TestComputeScore(t *testing.T) {
	zeros := app.NewAnswerSet(12)
	if got := app.ComputeScore(zeros, 12); got != 0 {
		t.Fatalf("expected 0 for all zeros, got %v", got)
	}

	fours := app.NewAnswerSet(12)
	for i := range fours {
		fours[i] = 4
	}
	if got := app.ComputeScore(fours, 12); got != 100 {
		t.Fatalf("expected 100 for all fours, got %v", got)
	}

	mixed := app.AnswerSet{1, 2, 3, 4, 0, 1, 2, 3, 4, 0, 1, 2}
	want := float64(mixed.Sum()) * 25 / 12
	if got := app.ComputeScore(mixed, 12); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestComputeScoreGuardsZeroQuestions(t *testing.T) {
	if got := app.ComputeScore(nil, 0); got != 0 {
		t.Fatalf("expected 0 with no questions, got %v", got)
	}
}

func TestComputeScoreStaysInRange(t *testing.T) {
	answers := app.NewAnswerSet(12)
	for v := 0; v <= domain.MaxAnswerValue; v++ {
		for i := range answers {
			answers[i] = (i + v) % (domain.MaxAnswerValue + 1)
			score := app.ComputeScore(answers, 12)
			if score < 0 || score > 100 {
				t.Fatalf("score %v out of range for %v", score, answers)
			}
		}
	}
}

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  domain.Category
	}{
		{0, domain.CategoryNormal},
		{12.0, domain.CategoryNormal},
		{12.01, domain.CategoryMild},
		{22.0, domain.CategoryMild},
		{22.01, domain.CategoryModerate},
		{32.0, domain.CategoryModerate},
		{32.01, domain.CategorySevere},
		{100, domain.CategorySevere},
	}
	for _, tc := range cases {
		if got := app.Classify(tc.score); got != tc.want {
			t.Fatalf("classify(%v): expected %s, got %s", tc.score, tc.want, got)
		}
	}
}

func TestRecordAnswerValidates(t *testing.T) {
	answers := app.NewAnswerSet(12)
	if err := answers.RecordAnswer(3, 2); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := answers.RecordAnswer(3, 4); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if answers[3] != 4 {
		t.Fatalf("expected overwrite to 4, got %d", answers[3])
	}
	if err := answers.RecordAnswer(12, 1); !errors.Is(err, domain.ErrQuestionOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
	if err := answers.RecordAnswer(-1, 1); !errors.Is(err, domain.ErrQuestionOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
	if err := answers.RecordAnswer(0, 5); !errors.Is(err, domain.ErrInvalidAnswer) {
		t.Fatalf("expected invalid answer, got %v", err)
	}
	if answers.Sum() != 4 {
		t.Fatalf("rejected answers must not change the set, sum=%d", answers.Sum())
	}
}
