package pdfexport

import (
	"bytes"
	"fmt"

	interviewapimodels "interview-sim-backend/models/api/interview"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

const (
	fontFamily = "Helvetica"
	lineHt     = 6.0
)

// GenerateScoreReport отчёт по оценке интервью в pdf
func GenerateScoreReport(report interviewapimodels.ScoreReport) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateScoreReport panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Interview Score Report", true)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 18)
	pdf.CellFormat(0, 10, "Interview Score Report", "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 11)
	if report.CandidateName != "" {
		pdf.CellFormat(0, lineHt, tr("Candidate: "+report.CandidateName), "", 1, "L", false, 0, "")
	}
	if report.CandidateEmail != "" {
		pdf.CellFormat(0, lineHt, tr("Email: "+report.CandidateEmail), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	score := report.Score
	pdf.SetFont(fontFamily, "B", 14)
	setSeverityColor(pdf, interviewapimodels.SeverityForScore(score.OverallScore))
	pdf.CellFormat(0, 8, fmt.Sprintf("Overall Score: %d/100", score.OverallScore), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(fontFamily, "", 11)
	pdf.CellFormat(0, lineHt, fmt.Sprintf("Average response time: %.1f seconds", score.AverageResponseTime/1000), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.MultiCell(0, lineHt, tr(score.Summary), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont(fontFamily, "B", 12)
	pdf.CellFormat(0, 8, "Evaluation Categories", "", 1, "L", false, 0, "")
	for _, category := range score.Categories {
		pdf.SetFont(fontFamily, "B", 11)
		pdf.CellFormat(140, lineHt, tr(category.Name), "", 0, "L", false, 0, "")
		setSeverityColor(pdf, category.Severity)
		pdf.CellFormat(0, lineHt, fmt.Sprintf("%d/100", category.Score), "", 1, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont(fontFamily, "", 10)
		pdf.MultiCell(0, 5, tr(category.Description), "", "L", false)
		pdf.Ln(2)
	}

	writeList(pdf, tr, "Strengths", score.Strengths)
	writeList(pdf, tr, "Areas for Improvement", score.Improvements)

	if score.Note != "" {
		pdf.Ln(4)
		pdf.SetFont(fontFamily, "I", 9)
		pdf.SetTextColor(120, 120, 120)
		pdf.MultiCell(0, 5, tr(score.Note), "", "L", false)
	}
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeList(pdf *fpdf.Fpdf, tr func(string) string, title string, items []string) {
	pdf.Ln(2)
	pdf.SetFont(fontFamily, "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	for _, item := range items {
		pdf.MultiCell(0, 5, tr("- "+item), "", "L", false)
	}
}

func setSeverityColor(pdf *fpdf.Fpdf, severity interviewapimodels.Severity) {
	switch severity {
	case interviewapimodels.SeverityGood:
		pdf.SetTextColor(22, 163, 74)
	case interviewapimodels.SeverityWarning:
		pdf.SetTextColor(202, 138, 4)
	default:
		pdf.SetTextColor(220, 38, 38)
	}
}
