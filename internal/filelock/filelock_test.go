package filelock

import (
	"errors"
	"path/filepath"
	"testing"

	"osdi-survey/internal/domain"
)

func TestSecondHolderIsRejected(t *testing.T) {
	target := filepath.Join(t.TempDir(), "scores.db")

	first := ForFile(target)
	if err := first.Acquire(); err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	second := ForFile(target)
	if err := second.Acquire(); !errors.Is(err, domain.ErrSurveyLocked) {
		t.Fatalf("expected survey locked, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := second.Acquire(); err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	_ = second.Release()
}
