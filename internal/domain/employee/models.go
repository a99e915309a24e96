package employee

import "time"

type Employee struct {
	EmployeeID    int64      `json:"employeeId"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone,omitempty"`
	Address       string     `json:"address,omitempty"`
	DateOfBirth   *time.Time `json:"dateOfBirth,omitempty"`
	HireDate      *time.Time `json:"hireDate,omitempty"`
	YearGraduated *int64     `json:"yearGraduated,omitempty"`
	DepartmentID  *int64     `json:"departmentId,omitempty"`
	PositionID    *int64     `json:"positionId,omitempty"`
	Status        string     `json:"status"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Basic is the slice of employee data attached to pending-update reads.
type Basic struct {
	EmployeeID   int64  `json:"employeeId"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	DepartmentID *int64 `json:"departmentId,omitempty"`
	PositionID   *int64 `json:"positionId,omitempty"`
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
