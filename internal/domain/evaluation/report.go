package evaluation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// GenerateReportPDF renders a one-page summary of an evaluation into
// reportDir and returns the file path.
func (s *Service) GenerateReportPDF(ctx context.Context, evaluationID int64, reportDir string) (string, error) {
	detail, err := s.GetByID(ctx, evaluationID)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(reportDir, fmt.Sprintf("evaluation-%d.pdf", evaluationID))

	ev := detail.Evaluation
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Performance Evaluation")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", ev.EmployeeName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Evaluator: %s", ev.EvaluatorName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s", ev.EvaluationDate.Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Final Score: %.2f", ev.FinalScore))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Scores")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, score := range detail.Scores {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %d (%s)", score.SubGroupName, score.ScoreValue, score.ScoreLabel))
		pdf.Ln(6)
	}

	if ev.Comments != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Comments")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, ev.Comments, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
