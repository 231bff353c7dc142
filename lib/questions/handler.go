package questions

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

type Result struct {
	Questions []interviewapimodels.Question
	CVContent string
	Note      string
}

type Provider interface {
	Generate(ctx context.Context, sessionID, jobDescription, resumeText string) Result
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

func (i impl) Generate(ctx context.Context, sessionID, jobDescription, resumeText string) Result {
	ctx = gpthandler.WithRequestInfo(ctx, sessionID, dbmodels.AiGenerateQuestionsType)
	return Generate(ctx, i.ai, i.timeout, jobDescription, resumeText)
}

// Generate всегда возвращает пригодный набор из 5-7 вопросов.
// Любой сбой ИИ (нет настроек, ошибка, таймаут, мусор в ответе) приводит к шаблонному набору с пояснением.
func Generate(ctx context.Context, ai gpthandler.Provider, timeout time.Duration, jobDescription, resumeText string) Result {
	logger := log.WithField("session_id", gpthandler.GetRequestInfo(ctx).SessionID)
	questions, err := generate(ctx, ai, timeout, jobDescription, resumeText)
	if err != nil {
		note := fallbackNote(err)
		logger.WithError(err).Warn("используются шаблонные вопросы")
		return Result{
			Questions: MockQuestions(),
			CVContent: resumeText,
			Note:      note,
		}
	}
	logger.WithField("questions_count", len(questions)).Info("вопросы сгенерированы ИИ")
	return Result{
		Questions: questions,
		CVContent: resumeText,
	}
}

var errMockMode = errors.New("ИИ не настроен")

type providerError struct {
	cause error
}

func (e providerError) Error() string {
	return e.cause.Error()
}

func generate(ctx context.Context, ai gpthandler.Provider, timeout time.Duration, jobDescription, resumeText string) ([]interviewapimodels.Question, error) {
	if ai == nil {
		return nil, errMockMode
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	answer, err := ai.Complete(ctx, buildPrompt(jobDescription, resumeText))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, context.DeadlineExceeded
		}
		return nil, providerError{cause: err}
	}
	raw, err := structured.Extract[[]RawQuestion](answer, structured.ShapeArray)
	if err != nil {
		return nil, err
	}
	return Reconcile(raw)
}

func fallbackNote(err error) string {
	var pErr providerError
	switch {
	case errors.Is(err, errMockMode):
		return NoteMockMode
	case errors.Is(err, context.DeadlineExceeded):
		return NoteTimeout
	case errors.As(err, &pErr):
		return NoteProviderError + pErr.Error()
	default:
		return NoteParseError
	}
}
