package evaluation

import "errors"

var (
	ErrValidation          = errors.New("invalid evaluation data")
	ErrInvalidScoreRange   = errors.New("score value must be between 1 and 5")
	ErrEvaluatorNotFound   = errors.New("evaluator has no user account")
	ErrDuplicateEvaluation = errors.New("employee already evaluated by this evaluator for this date")
	ErrNotFound            = errors.New("evaluation not found")
)
