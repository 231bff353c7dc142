package interviewapimodels

import (
	"strings"

	"github.com/pkg/errors"
)

type Severity string

const (
	SeverityGood    Severity = "good"
	SeverityWarning Severity = "warning"
	SeverityPoor    Severity = "poor"
)

func (s Severity) IsValid() bool {
	switch s {
	case SeverityGood, SeverityWarning, SeverityPoor:
		return true
	}
	return false
}

// SeverityForScore >=80 good, >=60 warning, иначе poor
func SeverityForScore(score int) Severity {
	switch {
	case score >= 80:
		return SeverityGood
	case score >= 60:
		return SeverityWarning
	default:
		return SeverityPoor
	}
}

type ScoreCategory struct {
	Name        string   `json:"name"`
	Score       int      `json:"score"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

type InterviewScore struct {
	OverallScore        int             `json:"overallScore"`
	Categories          []ScoreCategory `json:"categories"`
	Summary             string          `json:"summary"`
	Strengths           []string        `json:"strengths"`
	Improvements        []string        `json:"improvements"`
	AverageResponseTime float64         `json:"averageResponseTime"` // мс
	Note                string          `json:"note,omitempty"`
}

// ScoreRequest запрос score-interview
type ScoreRequest struct {
	Interview             string          `json:"interview"`
	JobDescription        string          `json:"jobDescription"`
	CVContent             string          `json:"cvContent"`
	ResponseTimeData      map[int]float64 `json:"responseTimeData"`
	AverageResponseTimeMs float64         `json:"averageResponseTimeMs"`
}

// Validate возвращает список незаполненных полей, запрос при этом не отклоняется
func (r ScoreRequest) Validate() error {
	missed := []string{}
	if strings.TrimSpace(r.Interview) == "" {
		missed = append(missed, "interview")
	}
	if strings.TrimSpace(r.JobDescription) == "" {
		missed = append(missed, "jobDescription")
	}
	if len(r.ResponseTimeData) == 0 || r.AverageResponseTimeMs == 0 {
		missed = append(missed, "responseTimeData")
	}
	if len(missed) > 0 {
		return errors.Errorf("не заполнены поля: %s", strings.Join(missed, ", "))
	}
	return nil
}

// ScoreReport данные для выгрузки оценки в xlsx/pdf
type ScoreReport struct {
	SessionID      string
	CandidateName  string
	CandidateEmail string
	JobDescription string
	Score          InterviewScore
}
