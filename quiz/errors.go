package quiz

import "errors"

// Every engine error is a caller sequencing bug, not a runtime condition to
// retry. The presentation layer is expected to gate its controls so these
// never fire in practice.
var (
	ErrCategoryNotFound = errors.New("category not found in catalog")
	ErrNoQuestions      = errors.New("category has no questions")
	ErrInvalidOption    = errors.New("option index out of range")
	ErrNoSelection      = errors.New("no option selected")
	ErrAlreadySubmitted = errors.New("answer already submitted")
	ErrNotSubmitted     = errors.New("current answer not submitted")
	ErrSessionClosed    = errors.New("session is closed")
)
