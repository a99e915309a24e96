package txlog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrms/internal/domain/auth"
)

// Event is an append-only, human-readable audit record. Failures recording
// events must never fail the operation being recorded; call sites log and
// move on.
type Event struct {
	EventID     int64  `json:"eventId"`
	Action      string `json:"action"`
	Description string `json:"description"`
	UserID      int64  `json:"userId"`
	UserName    string `json:"userName"`
	FullName    string `json:"fullName"`
	CreatedAt   any    `json:"createdAt"`
}

type Service struct {
	DB *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

// secretFields never appear in rendered change descriptions.
var secretFields = map[string]bool{
	"password":     true,
	"passwordHash": true,
	"passwordhash": true,
}

func (s *Service) Record(ctx context.Context, action string, actor auth.UserContext, subjectID int64, description string, before, after map[string]any) error {
	full := fmt.Sprintf("%s %s: %s", actor.Username, action, description)
	if diff := DescribeChanges(before, after); diff != "" {
		full += " | " + diff
	}

	_, err := s.DB.Exec(ctx, `
    INSERT INTO transaction_events (action, description, user_id, user_name, full_name)
    VALUES ($1,$2,$3,$4,$5)
  `, action, full, actor.UserID, actor.Username, actor.FullName)
	return err
}

// DescribeChanges renders a field-by-field comparison of two snapshots.
// Fields present in either map are compared as strings; secret fields are
// skipped. Returns "" when either snapshot is missing or nothing differs.
func DescribeChanges(before, after map[string]any) string {
	if before == nil || after == nil {
		return ""
	}

	keys := make(map[string]bool, len(before)+len(after))
	for k := range before {
		keys[k] = true
	}
	for k := range after {
		keys[k] = true
	}

	var names []string
	for k := range keys {
		names = append(names, k)
	}
	sort.Strings(names)

	var parts []string
	for _, name := range names {
		if secretFields[name] || secretFields[strings.ToLower(name)] {
			continue
		}
		oldVal := stringify(before[name])
		newVal := stringify(after[name])
		if oldVal == newVal {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %q -> %q", name, oldVal, newVal))
	}
	return strings.Join(parts, ", ")
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

func (s *Service) List(ctx context.Context) ([]Event, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT event_id, action, description, COALESCE(user_id, 0), user_name, full_name, created_at
    FROM transaction_events
    ORDER BY created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var evt Event
		if err := rows.Scan(&evt.EventID, &evt.Action, &evt.Description, &evt.UserID, &evt.UserName, &evt.FullName, &evt.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, evt)
	}
	return out, rows.Err()
}
