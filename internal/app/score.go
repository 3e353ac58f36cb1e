package app

import (
	"fmt"

	"osdi-survey/internal/domain"
)

// AnswerSet holds one value per question, all starting at zero.
type AnswerSet []int

func NewAnswerSet(questionCount int) AnswerSet {
	return make(AnswerSet, questionCount)
}

// RecordAnswer overwrites the value at index.
func (a AnswerSet) RecordAnswer(index, value int) error {
	if index < 0 || index >= len(a) {
		return fmt.Errorf("%w: %d", domain.ErrQuestionOutOfRange, index)
	}
	if value < 0 || value > domain.MaxAnswerValue {
		return fmt.Errorf("%w: %d", domain.ErrInvalidAnswer, value)
	}
	a[index] = value
	return nil
}

func (a AnswerSet) Sum() int {
	total := 0
	for _, v := range a {
		total += v
	}
	return total
}

// ComputeScore returns sum*25/questionCount, a value in [0,100]. Zero questions score 0.
func ComputeScore(answers AnswerSet, questionCount int) float64 {
	if questionCount == 0 {
		return 0
	}
	return float64(answers.Sum()) * 25.0 / float64(questionCount)
}

// Classify maps a score onto its severity band. Upper bounds are inclusive.
func Classify(score float64) domain.Category {
	switch {
	case score <= 12:
		return domain.CategoryNormal
	case score <= 22:
		return domain.CategoryMild
	case score <= 32:
		return domain.CategoryModerate
	default:
		return domain.CategorySevere
	}
}
