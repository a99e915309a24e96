package pending

import "errors"

var (
	ErrNoChangesDetected = errors.New("no changes detected")
	ErrNotFound          = errors.New("pending update not found")
	ErrAlreadyReviewed   = errors.New("pending update already reviewed")
	ErrUnknownField      = errors.New("unknown employee field")
	ErrEmployeeNotFound  = errors.New("employee not found")
)
