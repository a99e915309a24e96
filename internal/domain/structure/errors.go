package structure

import "errors"

var (
	ErrGroupNotFound     = errors.New("group not found")
	ErrSubGroupNotFound  = errors.New("subgroup not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrGroupHasSubGroups = errors.New("group has dependent subgroups")
	ErrItemHasScores     = errors.New("item has dependent evaluation scores")
)
