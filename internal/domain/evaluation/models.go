package evaluation

import "time"

type Evaluation struct {
	EvaluationID   int64           `json:"evaluationId"`
	EmployeeID     int64           `json:"employeeId"`
	EvaluatorID    int64           `json:"evaluatorId"`
	EvaluationDate time.Time       `json:"evaluationDate"`
	Comments       string          `json:"comments"`
	FinalScore     float64         `json:"finalScore"`
	CreatedAt      time.Time       `json:"createdAt"`
	Scores         []SubGroupScore `json:"scores,omitempty"`
}

type SubGroupScore struct {
	SubGroupID int64 `json:"subGroupId"`
	ScoreValue int   `json:"scoreValue"`
}

// CreateInput is the submission payload. EvaluatorID is the evaluator's
// EMPLOYEE id as supplied by the client; the service resolves it to the
// backing user account before anything is persisted.
type CreateInput struct {
	EmployeeID     int64           `json:"employeeId"`
	EvaluatorID    int64           `json:"evaluatorId"`
	EvaluationDate string          `json:"evaluationDate"`
	Comments       string          `json:"comments"`
	Scores         []SubGroupScore `json:"scores"`
}

type ScoreChoice struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// StandardChoices is the static 1-5 rating scale.
var StandardChoices = []ScoreChoice{
	{Value: 1, Label: "Poor"},
	{Value: 2, Label: "Fair"},
	{Value: 3, Label: "Satisfactory"},
	{Value: 4, Label: "Very Satisfactory"},
	{Value: 5, Label: "Excellent"},
}

func ScoreLabel(value int) string {
	for _, choice := range StandardChoices {
		if choice.Value == value {
			return choice.Label
		}
	}
	return "Unknown"
}

type WithNames struct {
	EvaluationID   int64     `json:"evaluationId"`
	EmployeeID     int64     `json:"employeeId"`
	EmployeeName   string    `json:"employeeName"`
	EvaluatorID    int64     `json:"evaluatorId"`
	EvaluatorName  string    `json:"evaluatorName"`
	EvaluationDate time.Time `json:"evaluationDate"`
	Comments       string    `json:"comments"`
	FinalScore     float64   `json:"finalScore"`
	CreatedAt      time.Time `json:"createdAt"`
}

type SubGroupAnswer struct {
	SubGroupID   int64  `json:"subGroupId"`
	SubGroupName string `json:"subGroupName"`
	ScoreValue   int    `json:"scoreValue"`
	ScoreLabel   string `json:"scoreLabel"`
}

type Answers struct {
	EvaluatorName string           `json:"evaluatorName"`
	Answers       []SubGroupAnswer `json:"answers"`
}

type Detail struct {
	Evaluation WithNames        `json:"evaluation"`
	Scores     []SubGroupAnswer `json:"scores"`
}

type HistoryRecord struct {
	HistoryID            int64            `json:"historyId"`
	OriginalEvaluationID int64            `json:"originalEvaluationId"`
	EmployeeID           int64            `json:"employeeId"`
	EmployeeName         string           `json:"employeeName"`
	EvaluatorID          int64            `json:"evaluatorId"`
	EvaluatorName        string           `json:"evaluatorName"`
	EvaluationDate       time.Time        `json:"evaluationDate"`
	Comments             string           `json:"comments"`
	FinalScore           float64          `json:"finalScore"`
	CreatedAt            *time.Time       `json:"createdAt,omitempty"`
	ArchivedAt           time.Time        `json:"archivedAt"`
	Scores               []SubGroupAnswer `json:"scores"`
}

// CreateResult carries the persisted evaluation plus the number of score
// entries that referenced unknown subgroups and therefore did not
// contribute to the final score.
type CreateResult struct {
	Evaluation    Evaluation `json:"evaluation"`
	SkippedScores int        `json:"skippedScores,omitempty"`
}

type ResetResult struct {
	Message       string `json:"message"`
	ArchivedCount int64  `json:"archivedCount"`
}
