package pending

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrms/internal/domain/employee"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const updateColumns = `
  p.pending_update_id, p.employee_id, p.update_data, p.original_data,
  p.status, p.submitted_at, p.reviewed_at, p.reviewed_by,
  COALESCE(p.reviewer_name, ''), COALESCE(p.comments, ''),
  e.employee_id, e.first_name, e.last_name, e.email, e.department_id, e.position_id`

const updateFrom = `
  FROM pending_employee_updates p
  JOIN employees e ON e.employee_id = p.employee_id`

func (s *Store) Insert(ctx context.Context, employeeID int64, changes, original map[string]any, comments string) (*Update, error) {
	changesJSON, err := json.Marshal(changes)
	if err != nil {
		return nil, err
	}
	originalJSON, err := json.Marshal(original)
	if err != nil {
		return nil, err
	}

	var id int64
	var submittedAt time.Time
	err = s.db.QueryRow(ctx, `
    INSERT INTO pending_employee_updates (employee_id, update_data, original_data, status, comments)
    VALUES ($1, $2, $3, 'pending', $4)
    RETURNING pending_update_id, submitted_at
  `, employeeID, changesJSON, originalJSON, comments).Scan(&id, &submittedAt)
	if err != nil {
		return nil, err
	}

	return &Update{
		PendingUpdateID: id,
		EmployeeID:      employeeID,
		UpdateData:      changes,
		OriginalData:    original,
		Status:          StatusPending,
		SubmittedAt:     submittedAt,
		Comments:        comments,
	}, nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (*Update, error) {
	row := s.db.QueryRow(ctx, `SELECT `+updateColumns+updateFrom+`
    WHERE p.pending_update_id = $1`, id)
	u, err := scanUpdate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

func (s *Store) List(ctx context.Context, status string) ([]Update, error) {
	query := `SELECT ` + updateColumns + updateFrom
	args := []any{}
	if status != "" {
		query += ` WHERE p.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY p.submitted_at DESC, p.pending_update_id DESC`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUpdates(rows)
}

func (s *Store) ListForEmployee(ctx context.Context, employeeID int64) ([]Update, error) {
	rows, err := s.db.Query(ctx, `SELECT `+updateColumns+updateFrom+`
    WHERE p.employee_id = $1
    ORDER BY p.submitted_at DESC, p.pending_update_id DESC`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUpdates(rows)
}

// MarkReviewedTx flips a pending request to its final status inside the
// caller's transaction. Rows that are no longer pending are not touched,
// which is what makes concurrent double reviews fail cleanly.
func (s *Store) MarkReviewedTx(ctx context.Context, tx pgx.Tx, id int64, status string, reviewerID int64, reviewerName, comments string) error {
	tag, err := tx.Exec(ctx, `
    UPDATE pending_employee_updates
    SET status = $2, reviewed_at = now(), reviewed_by = $3, reviewer_name = $4,
        comments = CASE WHEN $5 <> '' THEN $5 ELSE comments END
    WHERE pending_update_id = $1 AND status = 'pending'
  `, id, status, reviewerID, reviewerName, comments)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyReviewed
	}
	return nil
}

// DeleteReviewedBefore removes approved and rejected requests whose review
// happened before the cutoff. Pending rows are never deleted.
func (s *Store) DeleteReviewedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, `
    DELETE FROM pending_employee_updates
    WHERE status <> 'pending' AND reviewed_at IS NOT NULL AND reviewed_at < $1
  `, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	err := s.db.QueryRow(ctx, `
    SELECT
      COUNT(1) FILTER (WHERE status = 'pending'),
      COUNT(1) FILTER (WHERE status = 'approved'),
      COUNT(1) FILTER (WHERE status = 'rejected'),
      COUNT(1),
      COUNT(1) FILTER (WHERE submitted_at >= now() - INTERVAL '30 days')
    FROM pending_employee_updates
  `).Scan(&st.Pending, &st.Approved, &st.Rejected, &st.Total, &st.Last30Days)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func scanUpdate(row pgx.Row) (*Update, error) {
	var u Update
	var basic employee.Basic
	var updateJSON, originalJSON []byte
	err := row.Scan(&u.PendingUpdateID, &u.EmployeeID, &updateJSON, &originalJSON,
		&u.Status, &u.SubmittedAt, &u.ReviewedAt, &u.ReviewedBy,
		&u.ReviewerName, &u.Comments,
		&basic.EmployeeID, &basic.FirstName, &basic.LastName, &basic.Email,
		&basic.DepartmentID, &basic.PositionID)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(updateJSON, &u.UpdateData); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(originalJSON, &u.OriginalData); err != nil {
		return nil, err
	}
	u.Employee = &basic
	return &u, nil
}

func scanUpdates(rows pgx.Rows) ([]Update, error) {
	list := []Update{}
	for rows.Next() {
		u, err := scanUpdate(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *u)
	}
	return list, rows.Err()
}
