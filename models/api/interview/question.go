package interviewapimodels

import (
	"strings"
	"unicode/utf8"

	"interview-sim-backend/lib/utils/helpers"

	"github.com/pkg/errors"
)

type QuestionCategory string

const (
	CategoryTechnical   QuestionCategory = "technical"
	CategoryBehavioral  QuestionCategory = "behavioral"
	CategorySituational QuestionCategory = "situational"
)

type Question struct {
	ID        int              `json:"id"`        // уникален в пределах сессии
	Question  string           `json:"question"`  // текст вопроса
	Category  QuestionCategory `json:"category"`  // technical|behavioral|situational
	Relevance string           `json:"relevance"` // почему вопрос задается кандидату
}

type GenerateQuestionsResponse struct {
	SessionID string     `json:"session_id"`
	Token     string     `json:"token"` // токен сессии интервью
	Questions []Question `json:"questions"`
	CVContent string     `json:"cvContent"`
	Note      string     `json:"note,omitempty"`
}

type ExtractResponse struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"` // текст подставлен из шаблона
	Reason   string `json:"reason,omitempty"`
}

// GenerateQuestionsRequest данные шага загрузки
type GenerateQuestionsRequest struct {
	JobDescription string
	CandidateName  string
	CandidateEmail string
	FileName       string
	FileContent    []byte
}

var ErrUnsupportedFile = errors.New("File must be PDF, DOCX, or TXT")

var allowedResumeExtensions = map[string]bool{
	"pdf":  true,
	"docx": true,
	"txt":  true,
}

// Validate ошибки проверки показываются пользователю, запрос к ИИ не выполняется
func (r GenerateQuestionsRequest) Validate(minJobDescriptionLength int) error {
	jd := strings.TrimSpace(r.JobDescription)
	if jd == "" {
		return errors.New("Job description is required")
	}
	if utf8.RuneCountInString(jd) < minJobDescriptionLength {
		return errors.Errorf("Job description must be at least %d characters", minJobDescriptionLength)
	}
	if r.FileName == "" || len(r.FileContent) == 0 {
		return errors.New("Please upload a CV file")
	}
	if !allowedResumeExtensions[helpers.FileExtension(r.FileName)] {
		return ErrUnsupportedFile
	}
	return nil
}
