package scorer

import (
	"context"
	"strings"
	"testing"
	"time"

	interviewapimodels "interview-sim-backend/models/api/interview"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeAI struct {
	answer string
	err    error
	block  bool
	prompt string
}

func (f *fakeAI) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.answer, f.err
}

func (f *fakeAI) Name() string {
	return "fake"
}

func request() interviewapimodels.ScoreRequest {
	return interviewapimodels.ScoreRequest{
		Interview:             "assistant: Tell me about Go\n\nuser: I like channels",
		JobDescription:        "Senior Go developer",
		CVContent:             "Jane Doe",
		ResponseTimeData:      map[int]float64{0: 4000, 1: 6000},
		AverageResponseTimeMs: 5000,
	}
}

func requireShape(t *testing.T, score interviewapimodels.InterviewScore) {
	require.Len(t, score.Categories, 5)
	for k, category := range score.Categories {
		require.Equal(t, CanonicalCategories[k], category.Name)
		require.Equal(t, interviewapimodels.SeverityForScore(category.Score), category.Severity)
	}
	require.Len(t, score.Strengths, 3)
	require.Len(t, score.Improvements, 3)
}

const fullAnswer = `<think>considering</think>
Sure! {"overallScore": 72,
 "categories": [
  {"name": "Technical Acumen", "score": 85, "description": "solid", "severity": "warning"},
  {"name": "Communication", "score": "70", "description": "ok", "severity": "warning"},
  {"name": "Problem-Solving & Adaptability", "score": 55, "description": "weak"},
  {"name": "Cultural Fit & Soft Skills", "score": 90, "description": "great"},
  {"name": "Response Timing", "score": 61, "description": "fine"}
 ],
 "summary": "Decent candidate",
 "strengths": ["Go", "SQL", "Testing", "Docker"],
 "improvements": ["Speed"],
 "averageResponseTime": 12345}`

func TestScore(t *testing.T) {
	t.Run(`mock mode returns canned score check`, func(t *testing.T) {
		score := Score(context.TODO(), nil, time.Second, request())
		requireShape(t, score)
		require.Equal(t, 84, score.OverallScore)
		require.Equal(t, NoteMockMode, score.Note)
		require.Equal(t, float64(5000), score.AverageResponseTime)
		require.Equal(t, "Average response time of 5 seconds. Quick responses to most questions.", score.Categories[4].Description)
	})

	t.Run(`ai score is reconciled check`, func(t *testing.T) {
		ai := &fakeAI{answer: fullAnswer}
		score := Score(context.TODO(), ai, time.Second, request())
		requireShape(t, score)
		require.Equal(t, "", score.Note)
		require.Equal(t, 72, score.OverallScore)
		require.Equal(t, 85, score.Categories[0].Score)
		require.Equal(t, interviewapimodels.SeverityGood, score.Categories[0].Severity)
		require.Equal(t, 70, score.Categories[1].Score)
		require.Equal(t, interviewapimodels.SeverityPoor, score.Categories[2].Severity)
		require.Equal(t, []string{"Go", "SQL", "Testing"}, score.Strengths)
		require.Equal(t, "Speed", score.Improvements[0])
		require.Equal(t, mockImprovements[0], score.Improvements[1])
		require.Equal(t, float64(5000), score.AverageResponseTime)
		require.Contains(t, ai.prompt, "Average response time: 5 seconds")
		require.Contains(t, ai.prompt, "Question 1: 4 seconds")
		require.Contains(t, ai.prompt, "Question 2: 6 seconds")
	})

	t.Run(`provider error check`, func(t *testing.T) {
		score := Score(context.TODO(), &fakeAI{err: errors.New("quota exceeded")}, time.Second, request())
		requireShape(t, score)
		require.Equal(t, 84, score.OverallScore)
		require.Equal(t, NoteProviderError+"quota exceeded", score.Note)
	})

	t.Run(`timeout check`, func(t *testing.T) {
		score := Score(context.TODO(), &fakeAI{block: true}, 20*time.Millisecond, request())
		require.Equal(t, 84, score.OverallScore)
		require.True(t, strings.HasPrefix(score.Note, NoteProviderError))
	})

	t.Run(`non json answer check`, func(t *testing.T) {
		score := Score(context.TODO(), &fakeAI{answer: "I cannot evaluate this"}, time.Second, request())
		require.Equal(t, NoteParseError, score.Note)
		require.Equal(t, float64(5000), score.AverageResponseTime)
	})

	t.Run(`empty object check`, func(t *testing.T) {
		score := Score(context.TODO(), &fakeAI{answer: "{}"}, time.Second, request())
		require.Equal(t, NoteParseError, score.Note)
	})

	t.Run(`request error score check`, func(t *testing.T) {
		score := RequestErrorScore(errors.New("bad json"))
		requireShape(t, score)
		require.Equal(t, NoteRequestError+"bad json", score.Note)
	})
}

func num(v float64) *Number {
	n := Number(v)
	return &n
}

func TestReconcile(t *testing.T) {
	t.Run(`missing categories are filled with overall score check`, func(t *testing.T) {
		score, err := Reconcile(RawScore{
			OverallScore: num(65),
			Categories: []RawCategory{
				{Name: "Response Timing", Score: num(95), Description: "fast"},
			},
		}, 1000)
		require.NoError(t, err)
		requireShape(t, score)
		require.Equal(t, 95, score.Categories[4].Score)
		require.Equal(t, 65, score.Categories[0].Score)
		require.Equal(t, missingDescription, score.Categories[0].Description)
		require.Equal(t, mockSummary, score.Summary)
	})

	t.Run(`unknown names are placed by position check`, func(t *testing.T) {
		score, err := Reconcile(RawScore{
			Categories: []RawCategory{
				{Name: "Alpha", Score: num(80)},
				{Name: "Communication", Score: num(60)},
				{Name: "Beta", Score: num(40)},
			},
		}, 0)
		require.NoError(t, err)
		require.Equal(t, 80, score.Categories[0].Score)
		require.Equal(t, 60, score.Categories[1].Score)
		require.Equal(t, 40, score.Categories[2].Score)
		require.Equal(t, 60, score.OverallScore)
		require.Equal(t, 60, score.Categories[3].Score)
	})

	t.Run(`scores are clamped check`, func(t *testing.T) {
		score, err := Reconcile(RawScore{
			OverallScore: num(140),
			Categories:   []RawCategory{{Name: "Technical", Score: num(-5)}},
		}, 0)
		require.NoError(t, err)
		require.Equal(t, 100, score.OverallScore)
		require.Equal(t, 0, score.Categories[0].Score)
		require.Equal(t, interviewapimodels.SeverityPoor, score.Categories[0].Severity)
	})

	t.Run(`empty score is rejected check`, func(t *testing.T) {
		_, err := Reconcile(RawScore{Summary: "nothing"}, 0)
		require.ErrorIs(t, err, ErrEmptyScore)
	})

	t.Run(`severity boundaries check`, func(t *testing.T) {
		require.Equal(t, interviewapimodels.SeverityGood, interviewapimodels.SeverityForScore(80))
		require.Equal(t, interviewapimodels.SeverityWarning, interviewapimodels.SeverityForScore(79))
		require.Equal(t, interviewapimodels.SeverityWarning, interviewapimodels.SeverityForScore(60))
		require.Equal(t, interviewapimodels.SeverityPoor, interviewapimodels.SeverityForScore(59))
	})

	t.Run(`legacy color tier check`, func(t *testing.T) {
		require.Equal(t, interviewapimodels.SeverityWarning, declaredSeverity(RawCategory{Color: "bg-yellow-500"}))
		require.Equal(t, interviewapimodels.SeverityGood, declaredSeverity(RawCategory{Severity: "GOOD"}))
		require.Equal(t, interviewapimodels.Severity(""), declaredSeverity(RawCategory{}))
	})
}
