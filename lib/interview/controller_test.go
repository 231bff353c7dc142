package interview

import (
	"testing"
	"time"

	interviewapimodels "interview-sim-backend/models/api/interview"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	at time.Time
}

func (c *fakeClock) now() time.Time {
	return c.at
}

func (c *fakeClock) advance(d time.Duration) {
	c.at = c.at.Add(d)
}

func testData(n int) interviewapimodels.InterviewData {
	questions := make([]interviewapimodels.Question, 0, n)
	for k := 0; k < n; k++ {
		questions = append(questions, interviewapimodels.Question{
			ID:       k + 1,
			Question: "Question?",
			Category: interviewapimodels.CategoryTechnical,
		})
	}
	return interviewapimodels.InterviewData{
		JobDescription: "Go developer",
		CandidateName:  "Jane Doe",
		Questions:      questions,
		CVContent:      "Jane Doe CV",
	}
}

func TestController(t *testing.T) {
	t.Run(`full run check`, func(t *testing.T) {
		clock := &fakeClock{at: time.UnixMilli(0)}
		ctl := NewController(testData(5), clock.now)
		require.Equal(t, StateNotStarted, ctl.State())

		intro, err := ctl.Start()
		require.NoError(t, err)
		require.Equal(t, "intro", intro.ID)
		require.Contains(t, intro.Content, "Hello Jane Doe!")

		for k := 0; k < 5; k++ {
			clock.advance(time.Second)
			msg, err := ctl.PresentQuestion()
			require.NoError(t, err)
			require.Equal(t, interviewapimodels.RoleAssistant, msg.Role)
			clock.advance(time.Duration(k+2) * time.Second)
			_, hasNext, err := ctl.Answer("my answer")
			require.NoError(t, err)
			require.Equal(t, k < 4, hasNext)
		}
		closing, err := ctl.Finish()
		require.NoError(t, err)
		require.Equal(t, "finish", closing.ID)
		require.Equal(t, StateFinished, ctl.State())

		results, err := ctl.Results()
		require.NoError(t, err)
		require.Len(t, results.Messages, 2+2*5)
		require.Len(t, results.ResponseTimeData, 5)
		require.Equal(t, int64(2000), results.ResponseTimeData[0])
		require.Equal(t, int64(6000), results.ResponseTimeData[4])
		require.Equal(t, "Go developer", results.JobDescription)
		require.Equal(t, "Jane Doe CV", results.CVContent)
		require.Equal(t, "q-1", results.Messages[1].ID)
		require.Equal(t, interviewapimodels.RoleUser, results.Messages[2].Role)
	})

	t.Run(`early finish check`, func(t *testing.T) {
		clock := &fakeClock{at: time.UnixMilli(1000)}
		ctl := NewController(testData(5), clock.now)
		_, err := ctl.Start()
		require.NoError(t, err)
		_, err = ctl.PresentQuestion()
		require.NoError(t, err)
		_, _, err = ctl.Answer("first")
		require.NoError(t, err)
		_, err = ctl.PresentQuestion()
		require.NoError(t, err)
		_, err = ctl.Finish()
		require.NoError(t, err)

		results, err := ctl.Results()
		require.NoError(t, err)
		require.Len(t, results.ResponseTimeData, 1)
		require.Len(t, results.Messages, 5)
	})

	t.Run(`invalid transitions check`, func(t *testing.T) {
		ctl := NewController(testData(2), nil)
		_, _, err := ctl.Answer("too early")
		require.ErrorIs(t, err, ErrNotStarted)
		_, err = ctl.Finish()
		require.ErrorIs(t, err, ErrNotStarted)
		_, err = ctl.Results()
		require.Error(t, err)

		_, err = ctl.Start()
		require.NoError(t, err)
		_, err = ctl.Start()
		require.ErrorIs(t, err, ErrAlreadyStarted)

		_, _, err = ctl.Answer("no question yet")
		require.ErrorIs(t, err, ErrNoPendingQuestion)

		_, err = ctl.PresentQuestion()
		require.NoError(t, err)
		_, err = ctl.PresentQuestion()
		require.Error(t, err)

		_, _, err = ctl.Answer("   ")
		require.ErrorIs(t, err, ErrEmptyAnswer)

		_, err = ctl.Finish()
		require.NoError(t, err)
		_, _, err = ctl.Answer("after finish")
		require.ErrorIs(t, err, ErrFinished)
		_, err = ctl.Start()
		require.ErrorIs(t, err, ErrFinished)
		_, err = ctl.Finish()
		require.ErrorIs(t, err, ErrFinished)
	})

	t.Run(`no questions check`, func(t *testing.T) {
		ctl := NewController(interviewapimodels.InterviewData{}, nil)
		_, err := ctl.Start()
		require.ErrorIs(t, err, ErrNoQuestions)
	})

	t.Run(`snapshot restore check`, func(t *testing.T) {
		clock := &fakeClock{at: time.UnixMilli(5000)}
		ctl := NewController(testData(3), clock.now)
		_, err := ctl.Start()
		require.NoError(t, err)
		_, err = ctl.PresentQuestion()
		require.NoError(t, err)

		restored := Restore(ctl.Snapshot(), clock.now)
		clock.advance(1500 * time.Millisecond)
		_, hasNext, err := restored.Answer("answer")
		require.NoError(t, err)
		require.True(t, hasNext)
		require.Equal(t, 1, restored.CurrentQuestion())
		require.Equal(t, int64(1500), restored.Snapshot().Timings[0])
		require.Len(t, ctl.Snapshot().Timings, 0)
	})

	t.Run(`stalled detection check`, func(t *testing.T) {
		ctl := NewController(testData(2), nil)
		require.False(t, ctl.Stalled())

		_, err := ctl.Start()
		require.NoError(t, err)
		require.True(t, ctl.Stalled())
		require.False(t, ctl.CurrentAnswered())

		_, err = ctl.PresentQuestion()
		require.NoError(t, err)
		require.False(t, ctl.Stalled())

		_, _, err = ctl.Answer("first")
		require.NoError(t, err)
		require.True(t, ctl.Stalled())
		require.False(t, ctl.CurrentAnswered())

		_, err = ctl.PresentQuestion()
		require.NoError(t, err)
		_, hasNext, err := ctl.Answer("second")
		require.NoError(t, err)
		require.False(t, hasNext)
		require.True(t, ctl.Stalled())
		require.True(t, ctl.CurrentAnswered())

		_, err = ctl.Finish()
		require.NoError(t, err)
		require.False(t, ctl.Stalled())
	})

	t.Run(`default name check`, func(t *testing.T) {
		data := testData(1)
		data.CandidateName = ""
		intro, err := NewController(data, nil).Start()
		require.NoError(t, err)
		require.Contains(t, intro.Content, "Hello there!")
	})
}
