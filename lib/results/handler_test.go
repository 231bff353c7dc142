package results

import (
	"context"
	"testing"
	"time"

	"interview-sim-backend/lib/events"
	"interview-sim-backend/lib/scorer"
	sessionstate "interview-sim-backend/lib/session-state"
	sessionstatestore "interview-sim-backend/lib/session-state/store"
	interviewapimodels "interview-sim-backend/models/api/interview"
	dbmodels "interview-sim-backend/models/db"

	"github.com/stretchr/testify/require"
)

type fakeScorer struct {
	req interviewapimodels.ScoreRequest
}

func (f *fakeScorer) Score(ctx context.Context, sessionID string, req interviewapimodels.ScoreRequest) interviewapimodels.InterviewScore {
	f.req = req
	return scorer.Score(ctx, nil, time.Second, req)
}

type fakePublisher struct {
	events []events.Event
}

func (f *fakePublisher) Publish(ctx context.Context, event events.Event) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) Close() error {
	return nil
}

type fakeNotifier struct {
	count int
}

func (f *fakeNotifier) NotifyScored(session dbmodels.InterviewSession, score interviewapimodels.InterviewScore) error {
	f.count++
	return nil
}

func TestScoreSession(t *testing.T) {
	ctx := context.TODO()
	state := sessionstate.NewProvider(sessionstatestore.NewMemory(), time.Hour)
	fs := &fakeScorer{}
	publisher := &fakePublisher{}
	notifier := &fakeNotifier{}
	p := NewProvider(state, nil, fs, publisher, notifier)

	t.Run(`missing interview data check`, func(t *testing.T) {
		_, err := p.ScoreSession(ctx, "none")
		require.ErrorIs(t, err, sessionstate.ErrNoInterviewData)
	})

	t.Run(`scores stored results check`, func(t *testing.T) {
		results := interviewapimodels.InterviewResults{
			Messages: []interviewapimodels.ChatMessage{
				{ID: "intro", Role: interviewapimodels.RoleAssistant, Content: "Hello"},
				{ID: "q-1", Role: interviewapimodels.RoleAssistant, Content: "Why Go?"},
				{ID: "user-1-1", Role: interviewapimodels.RoleUser, Content: "Simplicity"},
				{ID: "finish", Role: interviewapimodels.RoleAssistant, Content: "Thanks"},
			},
			ResponseTimeData: map[int]int64{0: 3000, 1: 5000},
			JobDescription:   "Go developer",
			CVContent:        "CV",
		}
		require.NoError(t, state.SaveResults("s1", results))

		score, err := p.ScoreSession(ctx, "s1")
		require.NoError(t, err)
		require.Equal(t, 84, score.OverallScore)
		require.Equal(t, float64(4000), score.AverageResponseTime)
		require.Equal(t, "assistant: Hello\n\nassistant: Why Go?\n\nuser: Simplicity\n\nassistant: Thanks", fs.req.Interview)
		require.Equal(t, float64(3000), fs.req.ResponseTimeData[0])

		require.Len(t, publisher.events, 1)
		require.Equal(t, events.TypeScored, publisher.events[0].Type)
		require.Equal(t, 1, notifier.count)

		stored, err := p.GetScore("s1")
		require.NoError(t, err)
		require.NotNil(t, stored)
		require.Equal(t, score.OverallScore, stored.OverallScore)
	})

	t.Run(`score absent check`, func(t *testing.T) {
		stored, err := p.GetScore("nobody")
		require.NoError(t, err)
		require.Nil(t, stored)
	})
}
