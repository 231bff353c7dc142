package xlsexport

import (
	"bytes"

	interviewapimodels "interview-sim-backend/models/api/interview"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportScore(report interviewapimodels.ScoreReport) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var categoryHeaders = []string{"Category", "Score", "Severity", "Description"}

func (i impl) ExportScore(report interviewapimodels.ScoreReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	if err := f.SetColWidth(sheet, "A", "A", 32); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "B", "C", 12); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "D", "D", 80); err != nil {
		return nil, err
	}
	row, err := writeSummary(f, sheet, report)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования итогов в xlsx")
	}
	row, err = writeCategories(f, sheet, row+1, report.Score.Categories)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования таблицы категорий в xlsx")
	}
	row, err = writeList(f, sheet, row+1, "Strengths", report.Score.Strengths)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования сильных сторон в xlsx")
	}
	if _, err = writeList(f, sheet, row+1, "Areas for Improvement", report.Score.Improvements); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования зон роста в xlsx")
	}
	f.SetSheetName(sheet, "Interview Score")
	return f.WriteToBuffer()
}

func writeSummary(f *excelize.File, sheet string, report interviewapimodels.ScoreReport) (int, error) {
	rows := [][]interface{}{
		{"Candidate", report.CandidateName},
		{"Email", report.CandidateEmail},
		{"Overall Score", report.Score.OverallScore},
		{"Average Response Time (s)", report.Score.AverageResponseTime / 1000},
		{"Summary", report.Score.Summary},
	}
	if report.Score.Note != "" {
		rows = append(rows, []interface{}{"Note", report.Score.Note})
	}
	row := 0
	for _, values := range rows {
		row++
		if err := writeRow(f, sheet, row, values...); err != nil {
			return row, err
		}
		if err := setRowStyle(f, sheet, row, 2, dataStyle()); err != nil {
			return row, err
		}
	}
	return row, nil
}

func writeCategories(f *excelize.File, sheet string, row int, categories []interviewapimodels.ScoreCategory) (int, error) {
	row++
	if err := writeRow(f, sheet, row, "Category", "Score", "Severity", "Description"); err != nil {
		return row, err
	}
	if err := setRowStyle(f, sheet, row, len(categoryHeaders), headerStyle()); err != nil {
		return row, err
	}
	for _, category := range categories {
		row++
		if err := writeRow(f, sheet, row, category.Name, category.Score, string(category.Severity), category.Description); err != nil {
			return row, err
		}
		if err := setRowStyle(f, sheet, row, len(categoryHeaders), dataStyle()); err != nil {
			return row, err
		}
		cell, err := excelize.CoordinatesToCellName(3, row)
		if err != nil {
			return row, err
		}
		styleID, err := f.NewStyle(severityStyle(string(category.Severity)))
		if err != nil {
			return row, err
		}
		if err = f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
			return row, err
		}
	}
	return row, nil
}

func writeList(f *excelize.File, sheet string, row int, title string, items []string) (int, error) {
	row++
	if err := writeRow(f, sheet, row, title); err != nil {
		return row, err
	}
	if err := setRowStyle(f, sheet, row, 1, headerStyle()); err != nil {
		return row, err
	}
	for idx, item := range items {
		row++
		if err := writeRow(f, sheet, row, idx+1, item); err != nil {
			return row, err
		}
	}
	return row, nil
}
