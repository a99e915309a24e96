package pending

import (
	"time"

	"hrms/internal/domain/employee"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Update is one queued employee-profile change request. UpdateData holds
// only the fields that actually differ from the record at submission time;
// OriginalData holds their values at that moment for side-by-side review.
type Update struct {
	PendingUpdateID int64           `json:"pendingUpdateId"`
	EmployeeID      int64           `json:"employeeId"`
	Employee        *employee.Basic `json:"employee,omitempty"`
	UpdateData      map[string]any  `json:"updateData"`
	OriginalData    map[string]any  `json:"originalData"`
	Status          string          `json:"status"`
	SubmittedAt     time.Time       `json:"submittedAt"`
	ReviewedAt      *time.Time      `json:"reviewedAt,omitempty"`
	ReviewedBy      *int64          `json:"reviewedBy,omitempty"`
	ReviewerName    string          `json:"reviewerName,omitempty"`
	Comments        string          `json:"comments,omitempty"`
}

// ApproveResult reports which requested fields were written and which
// were skipped because their values could not be coerced.
type ApproveResult struct {
	Update        *Update  `json:"update"`
	AppliedFields []string `json:"appliedFields"`
	SkippedFields []string `json:"skippedFields,omitempty"`
}

type Stats struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Total    int64 `json:"total"`
	// Last30Days counts requests submitted in the trailing 30 days,
	// whatever their current status.
	Last30Days int64 `json:"last30Days"`
}
