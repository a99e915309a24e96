package pending

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/txlog"
)

type Service struct {
	DB        *pgxpool.Pool
	Store     *Store
	Employees *employee.Store
	Events    *txlog.Service

	// Retention is how long reviewed requests are kept before Cleanup
	// removes them.
	Retention time.Duration
}

func NewService(db *pgxpool.Pool, employees *employee.Store, events *txlog.Service, retention time.Duration) *Service {
	return &Service{DB: db, Store: NewStore(db), Employees: employees, Events: events, Retention: retention}
}

// Submit diffs a requested profile change against the live record and
// queues only the genuine differences for review.
func (s *Service) Submit(ctx context.Context, actor auth.UserContext, employeeID int64, requested map[string]any, comments string) (*Update, error) {
	current, err := s.Employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	changes, original, err := Diff(current, requested)
	if err != nil {
		return nil, err
	}

	update, err := s.Store.Insert(ctx, employeeID, changes, original, comments)
	if err != nil {
		return nil, err
	}

	if s.Events != nil {
		description := fmt.Sprintf("Submitted update request %d for employee %d (%d field(s))",
			update.PendingUpdateID, employeeID, len(changes))
		if err := s.Events.Record(ctx, "SUBMIT_PENDING_UPDATE", actor, update.PendingUpdateID, description, original, changes); err != nil {
			slog.Warn("failed to record pending-update event", "err", err)
		}
	}
	return update, nil
}

// Approve applies a pending request to the employee record and marks it
// approved, both inside one transaction. Fields whose stored values cannot
// be coerced to the employee's types are skipped, not fatal.
func (s *Service) Approve(ctx context.Context, actor auth.UserContext, id int64, comments string) (*ApproveResult, error) {
	update, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Status != StatusPending {
		return nil, ErrAlreadyReviewed
	}

	current, err := s.Employees.GetByID(ctx, update.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	before := employee.Snapshot(current)

	applied, skipped := apply(current, update.UpdateData)

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if len(applied) > 0 {
		if err := s.Employees.UpdateTx(ctx, tx, current); err != nil {
			return nil, err
		}
	}
	if err := s.Store.MarkReviewedTx(ctx, tx, id, StatusApproved, actor.UserID, actor.FullName, comments); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if s.Events != nil {
		description := fmt.Sprintf("Approved update request %d for employee %d (applied: %s)",
			id, update.EmployeeID, strings.Join(applied, ", "))
		if err := s.Events.Record(ctx, "APPROVE_PENDING_UPDATE", actor, id, description, before, employee.Snapshot(current)); err != nil {
			slog.Warn("failed to record pending-update event", "err", err)
		}
	}

	reviewed, err := s.Store.GetByID(ctx, id)
	if err != nil {
		reviewed = update
	}
	return &ApproveResult{Update: reviewed, AppliedFields: applied, SkippedFields: skipped}, nil
}

// Reject marks a pending request rejected without touching the employee.
func (s *Service) Reject(ctx context.Context, actor auth.UserContext, id int64, comments string) (*Update, error) {
	update, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Status != StatusPending {
		return nil, ErrAlreadyReviewed
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := s.Store.MarkReviewedTx(ctx, tx, id, StatusRejected, actor.UserID, actor.FullName, comments); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if s.Events != nil {
		description := fmt.Sprintf("Rejected update request %d for employee %d", id, update.EmployeeID)
		if err := s.Events.Record(ctx, "REJECT_PENDING_UPDATE", actor, id, description, nil, nil); err != nil {
			slog.Warn("failed to record pending-update event", "err", err)
		}
	}

	return s.Store.GetByID(ctx, id)
}

// Cleanup deletes reviewed requests older than the retention window and
// returns how many rows went away.
func (s *Service) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	deleted, err := s.Store.DeleteReviewedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		slog.Info("purged reviewed update requests", "deleted", deleted, "cutoff", cutoff)
	}
	return deleted, nil
}
