package scorer

import (
	"context"
	"time"

	"interview-sim-backend/lib/ai/structured"
	gpthandler "interview-sim-backend/lib/gpt"
	interviewapimodels "interview-sim-backend/models/api/interview"
	dbmodels "interview-sim-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Score(ctx context.Context, sessionID string, req interviewapimodels.ScoreRequest) interviewapimodels.InterviewScore
}

var Instance Provider

func NewHandler(ai gpthandler.Provider, timeout time.Duration) {
	Instance = impl{
		ai:      ai,
		timeout: timeout,
	}
}

type impl struct {
	ai      gpthandler.Provider
	timeout time.Duration
}

func (i impl) Score(ctx context.Context, sessionID string, req interviewapimodels.ScoreRequest) interviewapimodels.InterviewScore {
	ctx = gpthandler.WithRequestInfo(ctx, sessionID, dbmodels.AiScoreInterviewType)
	return Score(ctx, i.ai, i.timeout, req)
}

// Score всегда возвращает полную оценку из пяти категорий.
// При любом сбое ИИ возвращается шаблонная оценка с пояснением, среднее время берётся из запроса.
func Score(ctx context.Context, ai gpthandler.Provider, timeout time.Duration, req interviewapimodels.ScoreRequest) interviewapimodels.InterviewScore {
	logger := log.WithField("session_id", gpthandler.GetRequestInfo(ctx).SessionID)
	if err := req.Validate(); err != nil {
		logger.WithError(err).Warn("неполный запрос на оценку интервью")
	}
	score, err := score(ctx, ai, timeout, req)
	if err != nil {
		logger.WithError(err).Warn("используется шаблонная оценка")
		return MockScore(req.AverageResponseTimeMs, fallbackNote(err))
	}
	logger.WithField("overall_score", score.OverallScore).Info("интервью оценено ИИ")
	return score
}

// RequestErrorScore шаблонная оценка для некорректного тела запроса
func RequestErrorScore(err error) interviewapimodels.InterviewScore {
	return MockScore(0, NoteRequestError+err.Error())
}

var errMockMode = errors.New("ИИ не настроен")

type providerError struct {
	cause error
}

func (e providerError) Error() string {
	return e.cause.Error()
}

func score(ctx context.Context, ai gpthandler.Provider, timeout time.Duration, req interviewapimodels.ScoreRequest) (interviewapimodels.InterviewScore, error) {
	if ai == nil {
		return interviewapimodels.InterviewScore{}, errMockMode
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	answer, err := ai.Complete(ctx, buildPrompt(req))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return interviewapimodels.InterviewScore{}, context.DeadlineExceeded
		}
		return interviewapimodels.InterviewScore{}, providerError{cause: err}
	}
	raw, err := structured.Extract[RawScore](answer, structured.ShapeObject)
	if err != nil {
		return interviewapimodels.InterviewScore{}, err
	}
	return Reconcile(raw, req.AverageResponseTimeMs)
}

func fallbackNote(err error) string {
	var pErr providerError
	switch {
	case errors.Is(err, errMockMode):
		return NoteMockMode
	case errors.Is(err, context.DeadlineExceeded):
		return NoteProviderError + "request timed out"
	case errors.As(err, &pErr):
		return NoteProviderError + pErr.Error()
	default:
		return NoteParseError
	}
}
