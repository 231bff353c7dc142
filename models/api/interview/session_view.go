package interviewapimodels

import (
	"time"

	dbmodels "interview-sim-backend/models/db"
)

type SessionView struct {
	ID             string    `json:"id"`
	CandidateName  string    `json:"candidate_name"`
	CandidateEmail string    `json:"candidate_email"`
	ResumeFileName string    `json:"resume_file_name"`
	ResumeFallback bool      `json:"resume_fallback"`
	Status         string    `json:"status"`
	QuestionsCount int       `json:"questions_count"`
	OverallScore   *int      `json:"overall_score,omitempty"`
	Note           string    `json:"note,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func ConvertSession(rec dbmodels.InterviewSession) SessionView {
	return SessionView{
		ID:             rec.ID,
		CandidateName:  rec.CandidateName,
		CandidateEmail: rec.CandidateEmail,
		ResumeFileName: rec.ResumeFileName,
		ResumeFallback: rec.ResumeFallback,
		Status:         string(rec.Status),
		QuestionsCount: rec.QuestionsCount,
		OverallScore:   rec.OverallScore,
		Note:           rec.Note,
		CreatedAt:      rec.CreatedAt,
	}
}

// ConvertScoreRecord оценка для сохранения в бд
func ConvertScoreRecord(sessionID string, score InterviewScore) dbmodels.InterviewScore {
	categories := make(dbmodels.ScoreCategories, 0, len(score.Categories))
	for _, category := range score.Categories {
		categories = append(categories, dbmodels.ScoreCategory{
			Name:        category.Name,
			Score:       category.Score,
			Description: category.Description,
			Severity:    string(category.Severity),
		})
	}
	return dbmodels.InterviewScore{
		SessionID:           sessionID,
		OverallScore:        score.OverallScore,
		Categories:          categories,
		Summary:             score.Summary,
		Strengths:           score.Strengths,
		Improvements:        score.Improvements,
		AverageResponseTime: score.AverageResponseTime,
		Note:                score.Note,
	}
}

func ConvertScore(rec dbmodels.InterviewScore) InterviewScore {
	categories := make([]ScoreCategory, 0, len(rec.Categories))
	for _, category := range rec.Categories {
		categories = append(categories, ScoreCategory{
			Name:        category.Name,
			Score:       category.Score,
			Description: category.Description,
			Severity:    Severity(category.Severity),
		})
	}
	return InterviewScore{
		OverallScore:        rec.OverallScore,
		Categories:          categories,
		Summary:             rec.Summary,
		Strengths:           rec.Strengths,
		Improvements:        rec.Improvements,
		AverageResponseTime: rec.AverageResponseTime,
		Note:                rec.Note,
	}
}
