package evaluation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"hrms/internal/domain/auth"
)

// archivedScore is the shape each score takes inside the JSON blob stored
// with an archived evaluation.
type archivedScore struct {
	SubGroupID   int64  `json:"subGroupId"`
	SubGroupName string `json:"subGroupName"`
	ScoreValue   int    `json:"scoreValue"`
}

// Reset archives every evaluation into evaluation_history (scores folded
// into a JSON blob per record) and then purges the live tables. Archiving
// and purging happen in one transaction; a failure leaves the live data
// untouched. Running against empty tables archives nothing and succeeds.
func (s *Service) Reset(ctx context.Context, actor auth.UserContext) (*ResetResult, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
    INSERT INTO evaluation_history
      (original_evaluation_id, employee_id, evaluator_id, evaluation_date,
       comments, final_score, created_at, scores_json)
    SELECT ev.evaluation_id, ev.employee_id, ev.evaluator_id, ev.evaluation_date,
           COALESCE(ev.comments, ''), ev.final_score, ev.created_at,
           COALESCE((
             SELECT json_agg(json_build_object(
               'subGroupId', ss.subgroup_id,
               'subGroupName', COALESCE(sg.name, ''),
               'scoreValue', ss.score_value))
             FROM subgroup_scores ss
             LEFT JOIN subgroups sg ON sg.subgroup_id = ss.subgroup_id
             WHERE ss.evaluation_id = ev.evaluation_id
           ), '[]'::json)
    FROM evaluations ev
  `)
	if err != nil {
		return nil, err
	}
	archived := tag.RowsAffected()

	if _, err := tx.Exec(ctx, `DELETE FROM subgroup_scores`); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM evaluations`); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if s.Events != nil {
		description := fmt.Sprintf("Archived and purged %d evaluation(s)", archived)
		if err := s.Events.Record(ctx, "RESET_EVALUATIONS", actor, 0, description, nil, nil); err != nil {
			slog.Warn("failed to record reset event", "err", err)
		}
	}

	return &ResetResult{
		Message:       fmt.Sprintf("%d evaluation(s) archived", archived),
		ArchivedCount: archived,
	}, nil
}

// History returns every archived evaluation, newest archive first.
func (s *Service) History(ctx context.Context) ([]HistoryRecord, error) {
	rows, err := s.DB.Query(ctx, historyQuery+` ORDER BY h.archived_at DESC, h.history_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHistory(rows)
}

// HistoryForEmployee returns an employee's archived evaluations.
func (s *Service) HistoryForEmployee(ctx context.Context, employeeID int64) ([]HistoryRecord, error) {
	rows, err := s.DB.Query(ctx, historyQuery+` WHERE h.employee_id = $1
    ORDER BY h.archived_at DESC, h.history_id DESC`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHistory(rows)
}

// HistoryByID returns a single archived record.
func (s *Service) HistoryByID(ctx context.Context, historyID int64) (*HistoryRecord, error) {
	rows, err := s.DB.Query(ctx, historyQuery+` WHERE h.history_id = $1`, historyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records, err := scanHistory(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return &records[0], nil
}

const historyQuery = `
    SELECT h.history_id, h.original_evaluation_id, h.employee_id,
           COALESCE(e.first_name || ' ' || e.last_name, ''),
           h.evaluator_id,
           COALESCE(ee.first_name || ' ' || ee.last_name, u.username, ''),
           h.evaluation_date, h.comments, h.final_score, h.created_at,
           h.archived_at, h.scores_json
    FROM evaluation_history h
    LEFT JOIN employees e ON e.employee_id = h.employee_id
    LEFT JOIN users u ON u.user_id = h.evaluator_id
    LEFT JOIN employees ee ON ee.employee_id = u.employee_id`

func scanHistory(rows pgx.Rows) ([]HistoryRecord, error) {
	records := []HistoryRecord{}
	for rows.Next() {
		var rec HistoryRecord
		var blob []byte
		if err := rows.Scan(&rec.HistoryID, &rec.OriginalEvaluationID, &rec.EmployeeID,
			&rec.EmployeeName, &rec.EvaluatorID, &rec.EvaluatorName,
			&rec.EvaluationDate, &rec.Comments, &rec.FinalScore, &rec.CreatedAt,
			&rec.ArchivedAt, &blob); err != nil {
			return nil, err
		}
		rec.Scores = decodeArchivedScores(rec.HistoryID, blob)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// decodeArchivedScores tolerates malformed blobs: a record whose archived
// scores cannot be decoded is still returned, just with an empty score
// list, so one bad row cannot break a history listing.
func decodeArchivedScores(historyID int64, blob []byte) []SubGroupAnswer {
	if len(blob) == 0 {
		return []SubGroupAnswer{}
	}
	var stored []archivedScore
	if err := json.Unmarshal(blob, &stored); err != nil {
		slog.Warn("undecodable archived scores", "historyId", historyID, "err", err)
		return []SubGroupAnswer{}
	}
	answers := make([]SubGroupAnswer, 0, len(stored))
	for _, sc := range stored {
		answers = append(answers, SubGroupAnswer{
			SubGroupID:   sc.SubGroupID,
			SubGroupName: sc.SubGroupName,
			ScoreValue:   sc.ScoreValue,
			ScoreLabel:   ScoreLabel(sc.ScoreValue),
		})
	}
	return answers
}
