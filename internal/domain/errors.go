package domain

import "errors"

var (
	// ErrStorageUnavailable is returned when the history store cannot be written or read.
	ErrStorageUnavailable = errors.New("history storage unavailable")
	// ErrQuestionOutOfRange indicates an answer was recorded for a question that does not exist.
	ErrQuestionOutOfRange = errors.New("question index out of range")
	// ErrInvalidAnswer indicates an answer value outside the permitted option values.
	ErrInvalidAnswer = errors.New("invalid answer value")
	// ErrInvalidCatalog indicates the question catalog failed validation.
	ErrInvalidCatalog = errors.New("invalid question catalog")
	// ErrSurveyLocked is returned when another process already owns the history store.
	ErrSurveyLocked = errors.New("survey already running against this history store")
)
