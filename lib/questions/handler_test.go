package questions

import (
	"context"
	"fmt"
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

func aiQuestions(n int) string {
	items := []string{}
	for k := 0; k < n; k++ {
		items = append(items, fmt.Sprintf(`{"id":"q%d","question":"Question %d?","category":"Technical","relevance":"r"}`, k, k+1))
	}
	return "Here you go:\n```json\n[" + strings.Join(items, ",") + "]\n```"
}

func TestGenerate(t *testing.T) {
	jd := "Senior Go developer"
	cv := "Jane Doe\nGo developer"

	t.Run(`mock mode returns canned set check`, func(t *testing.T) {
		res := Generate(context.TODO(), nil, time.Second, jd, cv)
		require.Equal(t, NoteMockMode, res.Note)
		require.Equal(t, cv, res.CVContent)
		require.Len(t, res.Questions, 5)
		categories := map[interviewapimodels.QuestionCategory]bool{}
		for k, q := range res.Questions {
			require.Equal(t, k+1, q.ID)
			categories[q.Category] = true
		}
		require.Len(t, categories, 3)
	})

	t.Run(`ai questions are reconciled check`, func(t *testing.T) {
		ai := &fakeAI{answer: aiQuestions(6)}
		res := Generate(context.TODO(), ai, time.Second, jd, cv)
		require.Equal(t, "", res.Note)
		require.Len(t, res.Questions, 6)
		require.Equal(t, 1, res.Questions[0].ID)
		require.Equal(t, 6, res.Questions[5].ID)
		require.Equal(t, interviewapimodels.CategoryTechnical, res.Questions[0].Category)
		require.Contains(t, ai.prompt, jd)
		require.Contains(t, ai.prompt, cv)
	})

	t.Run(`more than seven questions are truncated check`, func(t *testing.T) {
		res := Generate(context.TODO(), &fakeAI{answer: aiQuestions(10)}, time.Second, jd, cv)
		require.Len(t, res.Questions, MaxQuestions)
	})

	t.Run(`too few questions fall back check`, func(t *testing.T) {
		res := Generate(context.TODO(), &fakeAI{answer: aiQuestions(3)}, time.Second, jd, cv)
		require.Equal(t, NoteParseError, res.Note)
		require.Equal(t, MockQuestions(), res.Questions)
	})

	t.Run(`provider error falls back with note check`, func(t *testing.T) {
		res := Generate(context.TODO(), &fakeAI{err: errors.New("quota exceeded")}, time.Second, jd, cv)
		require.Equal(t, NoteProviderError+"quota exceeded", res.Note)
		require.Len(t, res.Questions, 5)
	})

	t.Run(`timeout falls back with note check`, func(t *testing.T) {
		res := Generate(context.TODO(), &fakeAI{block: true}, 20*time.Millisecond, jd, cv)
		require.Equal(t, NoteTimeout, res.Note)
		require.Equal(t, MockQuestions(), res.Questions)
	})

	t.Run(`non json answer falls back check`, func(t *testing.T) {
		res := Generate(context.TODO(), &fakeAI{answer: "Sorry, I can't."}, time.Second, jd, cv)
		require.Equal(t, NoteParseError, res.Note)
		require.Len(t, res.Questions, 5)
	})
}

func TestReconcile(t *testing.T) {
	t.Run(`empty questions dropped and categories normalized check`, func(t *testing.T) {
		raw := []RawQuestion{
			{Question: "  "},
			{Question: "A?", Category: "SITUATIONAL"},
			{Question: "B?", Category: "technical skills"},
			{Question: "C?", Category: "culture"},
			{Question: "D?", Category: "behavioral"},
			{Question: "E?"},
		}
		got, err := Reconcile(raw)
		require.Nil(t, err)
		require.Len(t, got, 5)
		require.Equal(t, 1, got[0].ID)
		require.Equal(t, "A?", got[0].Question)
		require.Equal(t, interviewapimodels.CategorySituational, got[0].Category)
		require.Equal(t, interviewapimodels.CategoryTechnical, got[1].Category)
		require.Equal(t, interviewapimodels.CategoryBehavioral, got[2].Category)
	})

	t.Run(`too few check`, func(t *testing.T) {
		_, err := Reconcile([]RawQuestion{{Question: "A?"}})
		require.True(t, errors.Is(err, ErrTooFewQuestions))
	})
}
