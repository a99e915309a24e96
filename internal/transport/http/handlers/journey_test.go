package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"hrms/internal/app/server"
	"hrms/internal/domain/auth"
	"hrms/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   any             `json:"error"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		Addr:                   ":0",
		DatabaseURL:            dbURL,
		JWTSecret:              "test-secret",
		Environment:            "test",
		SeedAdminUsername:      "admin",
		SeedAdminPassword:      "ChangeMe123!",
		EmailFrom:              "no-reply@test.local",
		RunMigrations:          true,
		MigrationsDir:          "../../../../migrations",
		RunSeed:                true,
		PendingUpdateRetention: 30 * 24 * time.Hour,
		ContractNoticeWindow:   30 * 24 * time.Hour,
		ReportDir:              os.TempDir(),
	}
}

func TestEvaluationAndPendingUpdateJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	token := login(t, client, ts.URL, cfg.SeedAdminUsername, cfg.SeedAdminPassword)

	suffix := time.Now().UnixNano()
	subjectID := insertEmployee(t, app, fmt.Sprintf("subject-%d@example.com", suffix))
	evaluatorID := insertEmployee(t, app, fmt.Sprintf("evaluator-%d@example.com", suffix))
	insertUserForEmployee(t, app, evaluatorID, fmt.Sprintf("evaluator-%d", suffix))

	subGroupIDs := listSubGroupIDs(t, client, ts.URL, token)
	if len(subGroupIDs) < 2 {
		t.Fatalf("expected seeded subgroups, got %d", len(subGroupIDs))
	}

	// Create an evaluation and read it back.
	scores := []map[string]any{
		{"subGroupId": subGroupIDs[0], "scoreValue": 5},
		{"subGroupId": subGroupIDs[1], "scoreValue": 3},
	}
	body := map[string]any{
		"employeeId":     subjectID,
		"evaluatorId":    evaluatorID,
		"evaluationDate": time.Now().UTC().Format("2006-01-02"),
		"comments":       "solid quarter",
		"scores":         scores,
	}
	var created struct {
		Evaluation struct {
			EvaluationID int64   `json:"evaluationId"`
			FinalScore   float64 `json:"finalScore"`
		} `json:"evaluation"`
	}
	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/evaluations", token, body, http.StatusCreated, &created)
	if created.Evaluation.EvaluationID == 0 {
		t.Fatal("expected an evaluation id")
	}
	if created.Evaluation.FinalScore <= 0 {
		t.Fatalf("expected a positive final score, got %v", created.Evaluation.FinalScore)
	}

	// The same evaluator on the same day must be rejected.
	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/evaluations", token, body, http.StatusConflict, nil)

	var detail struct {
		Scores []struct {
			ScoreLabel string `json:"scoreLabel"`
		} `json:"scores"`
	}
	doJSON(t, client, http.MethodGet,
		fmt.Sprintf("%s/api/v1/evaluations/%d", ts.URL, created.Evaluation.EvaluationID),
		token, nil, http.StatusOK, &detail)
	if len(detail.Scores) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(detail.Scores))
	}

	// Reset archives the evaluation; history must still expose it.
	var reset struct {
		ArchivedCount int64 `json:"archivedCount"`
	}
	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/evaluations/reset", token, nil, http.StatusOK, &reset)
	if reset.ArchivedCount < 1 {
		t.Fatalf("expected at least one archived evaluation, got %d", reset.ArchivedCount)
	}

	var history []struct {
		OriginalEvaluationID int64 `json:"originalEvaluationId"`
		Scores               []any `json:"scores"`
	}
	doJSON(t, client, http.MethodGet,
		fmt.Sprintf("%s/api/v1/employees/%d/evaluations/history", ts.URL, subjectID),
		token, nil, http.StatusOK, &history)
	found := false
	for _, rec := range history {
		if rec.OriginalEvaluationID == created.Evaluation.EvaluationID {
			found = true
			if len(rec.Scores) != 2 {
				t.Fatalf("archived record lost its scores: %d", len(rec.Scores))
			}
		}
	}
	if !found {
		t.Fatal("archived evaluation missing from history")
	}

	// A second reset finds nothing left to archive.
	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/evaluations/reset", token, nil, http.StatusOK, &reset)
	if reset.ArchivedCount != 0 {
		t.Fatalf("reset of empty tables archived %d evaluations", reset.ArchivedCount)
	}
	var remaining []any
	doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/evaluations", token, nil, http.StatusOK, &remaining)
	if len(remaining) != 0 {
		t.Fatalf("expected no live evaluations after reset, got %d", len(remaining))
	}

	// Queue a profile change and approve it.
	var update struct {
		PendingUpdateID int64          `json:"pendingUpdateId"`
		UpdateData      map[string]any `json:"updateData"`
	}
	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/pending-employee-updates",
		token, map[string]any{
			"employeeId": subjectID,
			"updateData": map[string]any{"phone": "555-0142", "firstName": "Journey"},
		}, http.StatusCreated, &update)
	// firstName matches the record already, so only the phone change queues.
	if len(update.UpdateData) != 1 {
		t.Fatalf("expected 1 queued field, got %v", update.UpdateData)
	}

	var approved struct {
		AppliedFields []string `json:"appliedFields"`
	}
	doJSON(t, client, http.MethodPost,
		fmt.Sprintf("%s/api/v1/pending-employee-updates/%d/approve", ts.URL, update.PendingUpdateID),
		token, map[string]any{"comments": "looks right"}, http.StatusOK, &approved)
	if len(approved.AppliedFields) == 0 {
		t.Fatal("expected applied fields after approval")
	}

	// Second review of the same request must conflict.
	doJSON(t, client, http.MethodPost,
		fmt.Sprintf("%s/api/v1/pending-employee-updates/%d/approve", ts.URL, update.PendingUpdateID),
		token, map[string]any{}, http.StatusConflict, nil)

	var emp struct {
		Phone    string `json:"phone"`
		LastName string `json:"lastName"`
	}
	doJSON(t, client, http.MethodGet,
		fmt.Sprintf("%s/api/v1/employees/%d", ts.URL, subjectID),
		token, nil, http.StatusOK, &emp)
	if emp.Phone != "555-0142" {
		t.Fatalf("approval did not reach the employee record: %q", emp.Phone)
	}

	// Queue another change and reject it: the record must stay as approved
	// left it.
	var second struct {
		PendingUpdateID int64 `json:"pendingUpdateId"`
	}
	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/pending-employee-updates",
		token, map[string]any{
			"employeeId": subjectID,
			"updateData": map[string]any{"lastName": "Rewritten"},
		}, http.StatusCreated, &second)

	var rejected struct {
		Status string `json:"status"`
	}
	doJSON(t, client, http.MethodPost,
		fmt.Sprintf("%s/api/v1/pending-employee-updates/%d/reject", ts.URL, second.PendingUpdateID),
		token, map[string]any{"comments": "not this one"}, http.StatusOK, &rejected)
	if rejected.Status != "rejected" {
		t.Fatalf("expected rejected status, got %q", rejected.Status)
	}

	doJSON(t, client, http.MethodGet,
		fmt.Sprintf("%s/api/v1/employees/%d", ts.URL, subjectID),
		token, nil, http.StatusOK, &emp)
	if emp.LastName != "Tester" || emp.Phone != "555-0142" {
		t.Fatalf("rejection must not touch the employee record: %q %q", emp.LastName, emp.Phone)
	}

	// The journey must have left an audit trail.
	var events []struct {
		Action string `json:"action"`
	}
	doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/events", token, nil, http.StatusOK, &events)
	actions := map[string]bool{}
	for _, evt := range events {
		actions[evt.Action] = true
	}
	for _, want := range []string{"INSERT_EVALUATION", "RESET_EVALUATIONS", "APPROVE_PENDING_UPDATE", "REJECT_PENDING_UPDATE"} {
		if !actions[want] {
			t.Fatalf("missing %s event", want)
		}
	}
}

func login(t *testing.T, client *http.Client, baseURL, username, password string) string {
	t.Helper()
	var out struct {
		Token string `json:"token"`
	}
	doJSON(t, client, http.MethodPost, baseURL+"/api/v1/auth/login", "",
		map[string]any{"username": username, "password": password}, http.StatusOK, &out)
	if out.Token == "" {
		t.Fatal("expected a token from login")
	}
	return out.Token
}

func listSubGroupIDs(t *testing.T, client *http.Client, baseURL, token string) []int64 {
	t.Helper()
	var subgroups []struct {
		SubGroupID int64 `json:"subGroupId"`
	}
	doJSON(t, client, http.MethodGet, baseURL+"/api/v1/subgroups", token, nil, http.StatusOK, &subgroups)
	ids := make([]int64, len(subgroups))
	for i, sg := range subgroups {
		ids[i] = sg.SubGroupID
	}
	return ids
}

func insertEmployee(t *testing.T, app *server.App, email string) int64 {
	t.Helper()
	var id int64
	err := app.DB.QueryRow(context.Background(), `
    INSERT INTO employees (first_name, last_name, email, phone)
    VALUES ('Journey', 'Tester', $1, '555-0100')
    RETURNING employee_id
  `, email).Scan(&id)
	if err != nil {
		t.Fatalf("insert employee: %v", err)
	}
	return id
}

func insertUserForEmployee(t *testing.T, app *server.App, employeeID int64, username string) {
	t.Helper()
	hash, err := auth.HashPassword("Secret123!")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	_, err = app.DB.Exec(context.Background(), `
    INSERT INTO users (employee_id, username, password_hash, role_name)
    VALUES ($1, $2, $3, 'Evaluator')
  `, employeeID, username, hash)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, body any, wantStatus int, out any) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode envelope: %v", method, url, err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: status %d, want %d (error: %v)", method, url, resp.StatusCode, wantStatus, env.Error)
	}
	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("%s %s: decode data: %v", method, url, err)
		}
	}
}
