package questions

import (
	"encoding/json"
	"strings"

	interviewapimodels "interview-sim-backend/models/api/interview"

	"github.com/pkg/errors"
)

const (
	MinQuestions = 5
	MaxQuestions = 7
)

var ErrTooFewQuestions = errors.New("ИИ вернул слишком мало корректных вопросов")

// RawQuestion вопрос в том виде, как его вернул ИИ. id может прийти числом или строкой.
type RawQuestion struct {
	ID        json.RawMessage `json:"id"`
	Question  string          `json:"question"`
	Category  string          `json:"category"`
	Relevance string          `json:"relevance"`
}

// Reconcile проверяет и исправляет предварительный список вопросов, возвращая новый список.
// Пустые вопросы отбрасываются, категория приводится к известной, id перенумеровываются по порядку показа.
func Reconcile(raw []RawQuestion) ([]interviewapimodels.Question, error) {
	result := make([]interviewapimodels.Question, 0, MaxQuestions)
	for _, item := range raw {
		text := strings.TrimSpace(item.Question)
		if text == "" {
			continue
		}
		result = append(result, interviewapimodels.Question{
			ID:        len(result) + 1,
			Question:  text,
			Category:  normalizeCategory(item.Category),
			Relevance: strings.TrimSpace(item.Relevance),
		})
		if len(result) == MaxQuestions {
			break
		}
	}
	if len(result) < MinQuestions {
		return nil, errors.Wrapf(ErrTooFewQuestions, "получено %d", len(result))
	}
	return result, nil
}

func normalizeCategory(category string) interviewapimodels.QuestionCategory {
	c := strings.ToLower(strings.TrimSpace(category))
	switch {
	case strings.Contains(c, "tech"):
		return interviewapimodels.CategoryTechnical
	case strings.Contains(c, "situation"):
		return interviewapimodels.CategorySituational
	default:
		return interviewapimodels.CategoryBehavioral
	}
}
