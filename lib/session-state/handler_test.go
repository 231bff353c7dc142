package sessionstate

import (
	"testing"
	"time"

	sessionstatestore "interview-sim-backend/lib/session-state/store"
	interviewapimodels "interview-sim-backend/models/api/interview"
	dbmodels "interview-sim-backend/models/db"

	"github.com/stretchr/testify/require"
)

func TestSessionState(t *testing.T) {
	store := sessionstatestore.NewMemory()
	p := NewProvider(store, time.Hour)

	t.Run(`interview data round trip check`, func(t *testing.T) {
		data := interviewapimodels.InterviewData{
			JobDescription: "Go developer",
			CandidateName:  "Jane",
			Questions:      []interviewapimodels.Question{{ID: 1, Question: "Why Go?"}},
		}
		require.NoError(t, p.SaveInterviewData("s1", data))
		loaded, err := p.LoadInterviewData("s1")
		require.NoError(t, err)
		require.NotNil(t, loaded)
		require.Equal(t, data.JobDescription, loaded.JobDescription)
		require.Len(t, loaded.Questions, 1)
	})

	t.Run(`absent interview data check`, func(t *testing.T) {
		loaded, err := p.LoadInterviewData("unknown")
		require.NoError(t, err)
		require.Nil(t, loaded)
	})

	t.Run(`put overwrites wholesale check`, func(t *testing.T) {
		require.NoError(t, p.Put("s2", "k", map[string]int{"a": 1, "b": 2}))
		require.NoError(t, p.Put("s2", "k", map[string]int{"c": 3}))
		out := map[string]int{}
		found, err := p.Get("s2", "k", &out)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, map[string]int{"c": 3}, out)
	})

	t.Run(`missing results check`, func(t *testing.T) {
		_, err := p.LoadResults("nobody")
		require.ErrorIs(t, err, ErrNoInterviewData)
		require.Equal(t, "No interview data found. Please complete an interview first.", err.Error())
	})

	t.Run(`malformed results check`, func(t *testing.T) {
		require.NoError(t, store.Put(dbmodels.SessionState{
			SessionID: "s3",
			Key:       KeyInterviewResults,
			Value:     "{not json",
			ExpiresAt: time.Now().Add(time.Hour),
		}))
		_, err := p.LoadResults("s3")
		require.ErrorIs(t, err, ErrInvalidInterviewData)

		found, err := p.Get("s3", KeyInterviewResults, &interviewapimodels.InterviewResults{})
		require.NoError(t, err)
		require.False(t, found)
	})

	t.Run(`results without messages are invalid check`, func(t *testing.T) {
		require.NoError(t, p.SaveResults("s4", interviewapimodels.InterviewResults{}))
		_, err := p.LoadResults("s4")
		require.ErrorIs(t, err, ErrInvalidInterviewData)
	})

	t.Run(`results round trip check`, func(t *testing.T) {
		results := interviewapimodels.InterviewResults{
			Messages: []interviewapimodels.ChatMessage{
				{ID: "intro", Role: interviewapimodels.RoleAssistant, Content: "Hello", Timestamp: 1},
			},
			ResponseTimeData: map[int]int64{0: 1500},
			JobDescription:   "Go developer",
		}
		require.NoError(t, p.SaveResults("s5", results))
		loaded, err := p.LoadResults("s5")
		require.NoError(t, err)
		require.Equal(t, results, loaded)
	})

	t.Run(`score round trip and clear check`, func(t *testing.T) {
		require.NoError(t, p.SaveScore("s6", interviewapimodels.InterviewScore{OverallScore: 70}))
		score, err := p.LoadScore("s6")
		require.NoError(t, err)
		require.Equal(t, 70, score.OverallScore)

		require.NoError(t, p.Clear("s6"))
		score, err = p.LoadScore("s6")
		require.NoError(t, err)
		require.Nil(t, score)
	})
}

func TestExpiredState(t *testing.T) {
	store := sessionstatestore.NewMemory()
	p := NewProvider(store, -time.Second)
	require.NoError(t, p.Put("s1", "k", 1))

	var out int
	found, err := p.Get("s1", "k", &out)
	require.NoError(t, err)
	require.False(t, found)

	count, err := store.DeleteExpired(time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}
