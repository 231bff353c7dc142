package scorer

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	interviewapimodels "interview-sim-backend/models/api/interview"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// CanonicalCategories пять категорий оценки в порядке показа
var CanonicalCategories = []string{
	"Technical Acumen",
	"Communication Skills",
	"Problem-Solving & Adaptability",
	"Cultural Fit & Soft Skills",
	"Response Timing",
}

var categoryKeywords = [][]string{
	{"technical", "acumen"},
	{"communication"},
	{"problem", "adapt"},
	{"cultur", "soft", "fit"},
	{"timing", "response time", "speed"},
}

const (
	listSize               = 3
	missingDescription     = "No separate evaluation was provided for this dimension."
	defaultDescriptionText = "No description provided."
)

var ErrEmptyScore = errors.New("ИИ не вернул ни общего балла, ни категорий")

// Number число из ответа ИИ: допускает как 85, так и "85"
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	text := strings.Trim(string(data), `"`)
	text = strings.TrimSuffix(strings.TrimSpace(text), "%")
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return errors.Wrapf(err, "некорректное число %s", string(data))
	}
	*n = Number(value)
	return nil
}

// RawCategory категория в том виде, как её вернул ИИ
type RawCategory struct {
	Name        string  `json:"name"`
	Score       *Number `json:"score"`
	Description string  `json:"description"`
	Severity    string  `json:"severity"`
	Color       string  `json:"color"`
}

// RawScore предварительная оценка от ИИ до исправления
type RawScore struct {
	OverallScore        *Number       `json:"overallScore"`
	Categories          []RawCategory `json:"categories"`
	Summary             string        `json:"summary"`
	Strengths           []string      `json:"strengths"`
	Improvements        []string      `json:"improvements"`
	AverageResponseTime *Number       `json:"averageResponseTime"`
}

// Reconcile проверяет и исправляет предварительную оценку, возвращая новое значение.
// Категории приводятся к пяти каноническим, уровень вычисляется по баллу,
// списки дополняются до трёх пунктов, среднее время берётся из запроса.
func Reconcile(raw RawScore, averageMs float64) (interviewapimodels.InterviewScore, error) {
	if raw.OverallScore == nil && len(raw.Categories) == 0 {
		return interviewapimodels.InterviewScore{}, ErrEmptyScore
	}
	if raw.AverageResponseTime != nil && math.Abs(float64(*raw.AverageResponseTime)-averageMs) > 1 {
		log.WithField("ai_value", float64(*raw.AverageResponseTime)).
			WithField("request_value", averageMs).
			Debug("ИИ вернул иное среднее время ответа, используется значение из запроса")
	}

	slots := assignCategories(raw.Categories)

	overall := 0
	if raw.OverallScore != nil {
		overall = clampScore(float64(*raw.OverallScore))
	} else {
		overall = meanScore(slots)
	}

	categories := make([]interviewapimodels.ScoreCategory, 0, len(CanonicalCategories))
	for k, name := range CanonicalCategories {
		category := interviewapimodels.ScoreCategory{
			Name:        name,
			Score:       overall,
			Description: missingDescription,
		}
		if item := slots[k]; item != nil {
			if item.Score != nil {
				category.Score = clampScore(float64(*item.Score))
			}
			category.Description = strings.TrimSpace(item.Description)
			if category.Description == "" {
				category.Description = defaultDescriptionText
			}
		}
		category.Severity = interviewapimodels.SeverityForScore(category.Score)
		if item := slots[k]; item != nil {
			if declared := declaredSeverity(*item); declared != "" && declared != category.Severity {
				log.WithField("category", name).
					WithField("declared", declared).
					WithField("score", category.Score).
					Debug("уровень категории не совпадает с баллом, используется вычисленный")
			}
		}
		categories = append(categories, category)
	}

	summary := strings.TrimSpace(raw.Summary)
	if summary == "" {
		summary = mockSummary
	}

	return interviewapimodels.InterviewScore{
		OverallScore:        overall,
		Categories:          categories,
		Summary:             summary,
		Strengths:           fitList(raw.Strengths, mockStrengths),
		Improvements:        fitList(raw.Improvements, mockImprovements),
		AverageResponseTime: averageMs,
	}, nil
}

// assignCategories раскладывает категории ИИ по каноническим слотам:
// сначала по ключевым словам в названии, оставшиеся по позиции
func assignCategories(items []RawCategory) []*RawCategory {
	slots := make([]*RawCategory, len(CanonicalCategories))
	unmatched := []*RawCategory{}
	for k := range items {
		item := &items[k]
		idx := matchCategory(item.Name, slots)
		if idx < 0 {
			unmatched = append(unmatched, item)
			continue
		}
		slots[idx] = item
	}
	for k := range slots {
		if slots[k] != nil || len(unmatched) == 0 {
			continue
		}
		slots[k] = unmatched[0]
		unmatched = unmatched[1:]
	}
	return slots
}

func matchCategory(name string, slots []*RawCategory) int {
	lower := strings.ToLower(name)
	for idx, keywords := range categoryKeywords {
		if slots[idx] != nil {
			continue
		}
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				return idx
			}
		}
	}
	return -1
}

func meanScore(slots []*RawCategory) int {
	sum, count := 0.0, 0
	for _, item := range slots {
		if item == nil || item.Score == nil {
			continue
		}
		sum += float64(*item.Score)
		count++
	}
	if count == 0 {
		return 0
	}
	return clampScore(sum / float64(count))
}

func clampScore(value float64) int {
	if math.IsNaN(value) {
		return 0
	}
	score := int(math.Round(value))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// declaredSeverity уровень, заявленный ИИ. Понимает и старый формат цвета bg-*-500.
func declaredSeverity(item RawCategory) interviewapimodels.Severity {
	severity := interviewapimodels.Severity(strings.ToLower(strings.TrimSpace(item.Severity)))
	if severity.IsValid() {
		return severity
	}
	switch {
	case strings.Contains(item.Color, "green"):
		return interviewapimodels.SeverityGood
	case strings.Contains(item.Color, "yellow"), strings.Contains(item.Color, "amber"):
		return interviewapimodels.SeverityWarning
	case strings.Contains(item.Color, "red"):
		return interviewapimodels.SeverityPoor
	}
	return ""
}

// fitList ровно три непустых пункта, недостающие берутся из шаблона
func fitList(items []string, defaults []string) []string {
	result := make([]string, 0, listSize)
	seen := map[string]bool{}
	add := func(item string) {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] || len(result) == listSize {
			return
		}
		seen[item] = true
		result = append(result, item)
	}
	for _, item := range items {
		add(item)
	}
	for _, item := range defaults {
		add(item)
	}
	return result
}

var _ json.Unmarshaler = (*Number)(nil)
