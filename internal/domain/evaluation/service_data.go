package evaluation

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// List returns all evaluations newest first, with employee and evaluator
// names resolved for display.
func (s *Service) List(ctx context.Context) ([]WithNames, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT ev.evaluation_id, ev.employee_id,
           e.first_name || ' ' || e.last_name,
           ev.evaluator_id,
           COALESCE(ee.first_name || ' ' || ee.last_name, u.username),
           ev.evaluation_date, COALESCE(ev.comments, ''), ev.final_score, ev.created_at
    FROM evaluations ev
    JOIN employees e ON e.employee_id = ev.employee_id
    JOIN users u ON u.user_id = ev.evaluator_id
    LEFT JOIN employees ee ON ee.employee_id = u.employee_id
    ORDER BY ev.evaluation_date DESC, ev.evaluation_id DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []WithNames{}
	for rows.Next() {
		var ev WithNames
		if err := rows.Scan(&ev.EvaluationID, &ev.EmployeeID, &ev.EmployeeName,
			&ev.EvaluatorID, &ev.EvaluatorName, &ev.EvaluationDate,
			&ev.Comments, &ev.FinalScore, &ev.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, ev)
	}
	return list, rows.Err()
}

// ListForEmployee returns an employee's evaluations newest first.
func (s *Service) ListForEmployee(ctx context.Context, employeeID int64) ([]WithNames, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT ev.evaluation_id, ev.employee_id,
           e.first_name || ' ' || e.last_name,
           ev.evaluator_id,
           COALESCE(ee.first_name || ' ' || ee.last_name, u.username),
           ev.evaluation_date, COALESCE(ev.comments, ''), ev.final_score, ev.created_at
    FROM evaluations ev
    JOIN employees e ON e.employee_id = ev.employee_id
    JOIN users u ON u.user_id = ev.evaluator_id
    LEFT JOIN employees ee ON ee.employee_id = u.employee_id
    WHERE ev.employee_id = $1
    ORDER BY ev.evaluation_date DESC, ev.evaluation_id DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []WithNames{}
	for rows.Next() {
		var ev WithNames
		if err := rows.Scan(&ev.EvaluationID, &ev.EmployeeID, &ev.EmployeeName,
			&ev.EvaluatorID, &ev.EvaluatorName, &ev.EvaluationDate,
			&ev.Comments, &ev.FinalScore, &ev.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, ev)
	}
	return list, rows.Err()
}

// GetByID returns one evaluation plus its per-subgroup scores.
func (s *Service) GetByID(ctx context.Context, evaluationID int64) (*Detail, error) {
	var ev WithNames
	err := s.DB.QueryRow(ctx, `
    SELECT ev.evaluation_id, ev.employee_id,
           e.first_name || ' ' || e.last_name,
           ev.evaluator_id,
           COALESCE(ee.first_name || ' ' || ee.last_name, u.username),
           ev.evaluation_date, COALESCE(ev.comments, ''), ev.final_score, ev.created_at
    FROM evaluations ev
    JOIN employees e ON e.employee_id = ev.employee_id
    JOIN users u ON u.user_id = ev.evaluator_id
    LEFT JOIN employees ee ON ee.employee_id = u.employee_id
    WHERE ev.evaluation_id = $1
  `, evaluationID).Scan(&ev.EvaluationID, &ev.EmployeeID, &ev.EmployeeName,
		&ev.EvaluatorID, &ev.EvaluatorName, &ev.EvaluationDate,
		&ev.Comments, &ev.FinalScore, &ev.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	scores, err := s.scoresFor(ctx, evaluationID)
	if err != nil {
		return nil, err
	}
	return &Detail{Evaluation: ev, Scores: scores}, nil
}

// AnswersByID returns the answer sheet for an evaluation: who evaluated
// and the labelled score per subgroup.
func (s *Service) AnswersByID(ctx context.Context, evaluationID int64) (*Answers, error) {
	var evaluatorName string
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(ee.first_name || ' ' || ee.last_name, u.username)
    FROM evaluations ev
    JOIN users u ON u.user_id = ev.evaluator_id
    LEFT JOIN employees ee ON ee.employee_id = u.employee_id
    WHERE ev.evaluation_id = $1
  `, evaluationID).Scan(&evaluatorName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	scores, err := s.scoresFor(ctx, evaluationID)
	if err != nil {
		return nil, err
	}
	return &Answers{EvaluatorName: evaluatorName, Answers: scores}, nil
}

func (s *Service) scoresFor(ctx context.Context, evaluationID int64) ([]SubGroupAnswer, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT ss.subgroup_id, COALESCE(sg.name, ''), ss.score_value
    FROM subgroup_scores ss
    LEFT JOIN subgroups sg ON sg.subgroup_id = ss.subgroup_id
    WHERE ss.evaluation_id = $1
    ORDER BY ss.subgroup_id
  `, evaluationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := []SubGroupAnswer{}
	for rows.Next() {
		var a SubGroupAnswer
		if err := rows.Scan(&a.SubGroupID, &a.SubGroupName, &a.ScoreValue); err != nil {
			return nil, err
		}
		a.ScoreLabel = ScoreLabel(a.ScoreValue)
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
