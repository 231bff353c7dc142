package scorer

import (
	"fmt"
	"math"

	interviewapimodels "interview-sim-backend/models/api/interview"
)

const (
	NoteMockMode      = "Using mock scoring data - AI provider not configured"
	NoteProviderError = "Using mock scoring data due to AI provider error: "
	NoteParseError    = "Using mock scoring data - AI response could not be parsed"
	NoteRequestError  = "Error processing request: "
)

const mockSummary = "This candidate shows strong potential for the role with excellent technical skills and communication. They would likely be a strong addition to the team."

var mockStrengths = []string{
	"Strong technical knowledge in required technologies",
	"Clear and effective communication style",
	"Good cultural fit with company values",
}

var mockImprovements = []string{
	"Could provide more detailed examples in some responses",
	"Response time could be improved for technical questions",
	"Should demonstrate more initiative in problem-solving scenarios",
}

func averageSeconds(averageMs float64) int {
	return int(math.Round(averageMs / 1000))
}

// MockScore шаблонная оценка (общий балл 84), используется при любом сбое ИИ
func MockScore(averageMs float64, note string) interviewapimodels.InterviewScore {
	scores := []int{88, 85, 82, 90, 75}
	descriptions := []string{
		"Strong technical knowledge demonstrated in responses",
		"Clear and effective communication throughout",
		"Good problem-solving approach with some creative solutions",
		"Excellent interpersonal qualities and alignment with company values",
		fmt.Sprintf("Average response time of %d seconds. Quick responses to most questions.", averageSeconds(averageMs)),
	}
	categories := make([]interviewapimodels.ScoreCategory, 0, len(CanonicalCategories))
	for k, name := range CanonicalCategories {
		categories = append(categories, interviewapimodels.ScoreCategory{
			Name:        name,
			Score:       scores[k],
			Description: descriptions[k],
			Severity:    interviewapimodels.SeverityForScore(scores[k]),
		})
	}
	return interviewapimodels.InterviewScore{
		OverallScore:        84,
		Categories:          categories,
		Summary:             mockSummary,
		Strengths:           append([]string{}, mockStrengths...),
		Improvements:        append([]string{}, mockImprovements...),
		AverageResponseTime: averageMs,
		Note:                note,
	}
}
