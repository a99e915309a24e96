package employee

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("employee not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
  employee_id, first_name, last_name, email,
  COALESCE(phone, ''), COALESCE(address, ''),
  date_of_birth, hire_date, year_graduated,
  department_id, position_id, status, updated_at`

func (s *Store) GetByID(ctx context.Context, employeeID int64) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE employee_id = $1
  `, employeeID)
	return scanEmployee(row)
}

func scanEmployee(row pgx.Row) (*Employee, error) {
	var e Employee
	err := row.Scan(
		&e.EmployeeID, &e.FirstName, &e.LastName, &e.Email,
		&e.Phone, &e.Address,
		&e.DateOfBirth, &e.HireDate, &e.YearGraduated,
		&e.DepartmentID, &e.PositionID, &e.Status, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateTx writes the full record inside the caller's transaction so the
// approval flow can commit the employee change and the review status as
// one unit.
func (s *Store) UpdateTx(ctx context.Context, tx pgx.Tx, e *Employee) error {
	tag, err := tx.Exec(ctx, `
    UPDATE employees
    SET first_name = $1,
        last_name = $2,
        email = $3,
        phone = NULLIF($4, ''),
        address = NULLIF($5, ''),
        date_of_birth = $6,
        hire_date = $7,
        year_graduated = $8,
        department_id = $9,
        position_id = $10,
        status = $11,
        updated_at = now()
    WHERE employee_id = $12
  `, e.FirstName, e.LastName, e.Email, e.Phone, e.Address,
		e.DateOfBirth, e.HireDate, e.YearGraduated,
		e.DepartmentID, e.PositionID, e.Status, e.EmployeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
