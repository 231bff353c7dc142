package interviewsession

import (
	"context"
	"testing"
	"time"

	"interview-sim-backend/lib/events"
	"interview-sim-backend/lib/extractor"
	filestorage "interview-sim-backend/lib/file-storage"
	"interview-sim-backend/lib/questions"
	sessionstate "interview-sim-backend/lib/session-state"
	sessionstatestore "interview-sim-backend/lib/session-state/store"
	apimodels "interview-sim-backend/models/api"
	interviewapimodels "interview-sim-backend/models/api/interview"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct{}

func (fakeExtractor) Extract(fileName string, content []byte) extractor.Result {
	return extractor.Result{Text: string(content)}
}

type mockGenerator struct{}

func (mockGenerator) Generate(ctx context.Context, sessionID, jobDescription, resumeText string) questions.Result {
	return questions.Generate(ctx, nil, time.Second, jobDescription, resumeText)
}

func TestCreate(t *testing.T) {
	state := sessionstate.NewProvider(sessionstatestore.NewMemory(), time.Hour)
	filestorage.NewInstance(nil, "")
	p := NewProvider(nil, fakeExtractor{}, mockGenerator{}, state, filestorage.Instance, events.Instance, Settings{
		JWTSecret:          "secret",
		SessionExpireInSec: 60,
	})

	resp, err := p.Create(context.TODO(), interviewapimodels.GenerateQuestionsRequest{
		JobDescription: "Senior Go developer",
		CandidateName:  "Jane Doe",
		FileName:       "cv.txt",
		FileContent:    []byte("Jane Doe, Go developer"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.SessionID)
	require.Len(t, resp.Questions, 5)
	require.Equal(t, questions.NoteMockMode, resp.Note)
	require.Equal(t, "Jane Doe, Go developer", resp.CVContent)

	token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	sub, err := token.Claims.GetSubject()
	require.NoError(t, err)
	require.Equal(t, resp.SessionID, sub)

	data, err := state.LoadInterviewData(resp.SessionID)
	require.NoError(t, err)
	require.NotNil(t, data)
	require.Equal(t, "Jane Doe", data.CandidateName)
	require.Len(t, data.Questions, 5)

	score := interviewapimodels.InterviewScore{OverallScore: 84}
	report, err := p.Report(resp.SessionID, &score)
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", report.CandidateName)
	require.Equal(t, "Senior Go developer", report.JobDescription)

	report, err = p.Report(resp.SessionID, nil)
	require.NoError(t, err)
	require.Nil(t, report)
}

func TestGenerateQuestionsRequestValidate(t *testing.T) {
	valid := interviewapimodels.GenerateQuestionsRequest{
		JobDescription: "Go developer",
		FileName:       "cv.pdf",
		FileContent:    []byte("%PDF"),
	}
	require.NoError(t, valid.Validate(1))

	noJD := valid
	noJD.JobDescription = "  "
	require.EqualError(t, noJD.Validate(1), "Job description is required")

	short := valid
	require.Error(t, short.Validate(50))

	noFile := valid
	noFile.FileContent = nil
	require.EqualError(t, noFile.Validate(1), "Please upload a CV file")

	wrongExt := valid
	wrongExt.FileName = "cv.exe"
	require.EqualError(t, wrongExt.Validate(1), "File must be PDF, DOCX, or TXT")
}

func TestWithoutRegistry(t *testing.T) {
	state := sessionstate.NewProvider(sessionstatestore.NewMemory(), time.Hour)
	p := NewProvider(nil, fakeExtractor{}, mockGenerator{}, state, filestorage.Instance, events.Instance, Settings{})

	t.Run(`empty session list check`, func(t *testing.T) {
		list, count, err := p.List(apimodels.Pagination{Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Empty(t, list)
		require.Zero(t, count)
	})
	t.Run(`invalid page check`, func(t *testing.T) {
		_, _, err := p.List(apimodels.Pagination{Page: -1})
		require.Error(t, err)
	})
	t.Run(`resume not stored check`, func(t *testing.T) {
		_, _, err := p.Resume(context.TODO(), "s1")
		require.ErrorIs(t, err, ErrResumeNotFound)
	})
}
