package engine

import "errors"

// ErrDuplicateRule is returned by AddRule when a rule with the same id is
// already registered. The registry is left untouched.
var ErrDuplicateRule = errors.New("duplicate rule")

// Failure reasons recorded on model.Evaluation.Error.
const (
	ReasonEmptyURL  = "URL cannot be null or empty"
	ReasonCancelled = "Check was cancelled"
)
