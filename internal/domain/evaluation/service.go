package evaluation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/structure"
	"hrms/internal/domain/txlog"
)

type Service struct {
	DB     *pgxpool.Pool
	Events *txlog.Service
}

func NewService(db *pgxpool.Pool, events *txlog.Service) *Service {
	return &Service{DB: db, Events: events}
}

var inputDateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

// validateCreate runs every check that needs no database access. The date
// is returned truncated to the day, which is also the granularity of the
// duplicate check.
func validateCreate(in CreateInput, now time.Time) (time.Time, error) {
	if in.EmployeeID == 0 || in.EvaluatorID == 0 {
		return time.Time{}, fmt.Errorf("%w: missing required evaluation information", ErrValidation)
	}
	if len(in.Scores) == 0 {
		return time.Time{}, fmt.Errorf("%w: at least one score is required", ErrValidation)
	}

	raw := strings.TrimSpace(in.EvaluationDate)
	var date time.Time
	var parsed bool
	for _, layout := range inputDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			date = t
			parsed = true
			break
		}
	}
	if !parsed {
		return time.Time{}, fmt.Errorf("%w: invalid evaluation date format", ErrValidation)
	}

	date = date.Truncate(24 * time.Hour)
	if date.After(now.Truncate(24 * time.Hour)) {
		return time.Time{}, fmt.Errorf("%w: evaluation date cannot be in the future", ErrValidation)
	}
	if date.Year() < 2000 {
		return time.Time{}, fmt.Errorf("%w: invalid evaluation date", ErrValidation)
	}

	for _, score := range in.Scores {
		if score.ScoreValue < 1 || score.ScoreValue > 5 {
			return time.Time{}, fmt.Errorf("%w: got %d for subgroup %d", ErrInvalidScoreRange, score.ScoreValue, score.SubGroupID)
		}
	}

	return date, nil
}

// Create validates and persists an evaluation. Evaluator resolution, the
// same-day duplicate check, the weighted score computation, and all inserts
// happen inside one transaction; the unique constraint on
// (employee_id, evaluator_id, evaluation_date) backs the duplicate check
// against concurrent submissions.
func (s *Service) Create(ctx context.Context, actor auth.UserContext, in CreateInput) (*CreateResult, error) {
	date, err := validateCreate(in, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var evaluatorUserID int64
	err = tx.QueryRow(ctx, `
    SELECT user_id FROM users WHERE employee_id = $1
  `, in.EvaluatorID).Scan(&evaluatorUserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEvaluatorNotFound
	}
	if err != nil {
		return nil, err
	}

	var existing int
	if err := tx.QueryRow(ctx, `
    SELECT COUNT(1) FROM evaluations
    WHERE employee_id = $1 AND evaluator_id = $2 AND evaluation_date = $3
  `, in.EmployeeID, evaluatorUserID, date).Scan(&existing); err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrDuplicateEvaluation
	}

	weights, err := structure.SubGroupWeights(ctx, tx)
	if err != nil {
		return nil, err
	}
	finalScore, skipped := ComputeFinalScore(in.Scores, weights)
	if skipped > 0 {
		slog.Warn("evaluation scores referenced unknown subgroups",
			"employeeId", in.EmployeeID, "skipped", skipped)
	}

	var evaluationID int64
	var createdAt time.Time
	err = tx.QueryRow(ctx, `
    INSERT INTO evaluations (employee_id, evaluator_id, evaluation_date, comments, final_score)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING evaluation_id, created_at
  `, in.EmployeeID, evaluatorUserID, date, in.Comments, finalScore).Scan(&evaluationID, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEvaluation
		}
		return nil, err
	}

	for _, score := range in.Scores {
		if _, err := tx.Exec(ctx, `
      INSERT INTO subgroup_scores (evaluation_id, subgroup_id, score_value)
      VALUES ($1,$2,$3)
    `, evaluationID, score.SubGroupID, score.ScoreValue); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEvaluation
		}
		return nil, err
	}

	if s.Events != nil {
		description := fmt.Sprintf("Created evaluation %d for employee %d (final score %.2f)", evaluationID, in.EmployeeID, finalScore)
		if err := s.Events.Record(ctx, "INSERT_EVALUATION", actor, evaluationID, description, nil, nil); err != nil {
			slog.Warn("failed to record evaluation event", "err", err)
		}
	}

	return &CreateResult{
		Evaluation: Evaluation{
			EvaluationID:   evaluationID,
			EmployeeID:     in.EmployeeID,
			EvaluatorID:    evaluatorUserID,
			EvaluationDate: date,
			Comments:       in.Comments,
			FinalScore:     finalScore,
			CreatedAt:      createdAt,
			Scores:         in.Scores,
		},
		SkippedScores: skipped,
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
