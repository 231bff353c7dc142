package gpthandler

import (
	"context"
	"time"

	geminiclient "interview-sim-backend/lib/gpt/gemini-client"
	ailogstore "interview-sim-backend/lib/gpt/store"
	ollamaclient "interview-sim-backend/lib/gpt/ollama-client"
	yagptclient "interview-sim-backend/lib/gpt/yagpt-client"
	dbmodels "interview-sim-backend/models/db"

	log "github.com/sirupsen/logrus"
)

// Provider текстовый ИИ: отправили промпт, получили свободный текст
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

type Settings struct {
	Provider       string
	YandexIAMToken string
	YandexCatalog  string
	GeminiAPIKey   string
	GeminiModel    string
	OllamaURL      string
	OllamaModel    string
}

// Resolve определяет доступный ИИ один раз при старте.
// nil означает работу на моковых данных.
func Resolve(ctx context.Context, s Settings) Provider {
	logger := log.WithField("ai", s.Provider)
	switch s.Provider {
	case "":
		logger.Warn("ИИ не настроен, используются моковые данные")
		return nil
	case string(dbmodels.AiYaGptType):
		if s.YandexIAMToken == "" || s.YandexCatalog == "" {
			logger.Warn("не заполнены параметры YandexGPT, используются моковые данные")
			return nil
		}
		return yagptclient.NewClient(s.YandexIAMToken, s.YandexCatalog)
	case string(dbmodels.AiGeminiType):
		client, err := geminiclient.NewClient(ctx, s.GeminiAPIKey, s.GeminiModel)
		if err != nil {
			logger.WithError(err).Warn("gemini недоступен, используются моковые данные")
			return nil
		}
		return client
	case string(dbmodels.AiOllamaType):
		client, err := ollamaclient.NewClient(s.OllamaURL, s.OllamaModel)
		if err != nil {
			logger.WithError(err).Warn("ollama недоступна, используются моковые данные")
			return nil
		}
		return client
	default:
		logger.Warn("неизвестный ИИ, используются моковые данные")
		return nil
	}
}

type requestInfoKey struct{}

type RequestInfo struct {
	SessionID   string
	RequestType dbmodels.AiReqestType
}

func WithRequestInfo(ctx context.Context, sessionID string, rType dbmodels.AiReqestType) context.Context {
	return context.WithValue(ctx, requestInfoKey{}, RequestInfo{SessionID: sessionID, RequestType: rType})
}

func GetRequestInfo(ctx context.Context) RequestInfo {
	info, ok := ctx.Value(requestInfoKey{}).(RequestInfo)
	if !ok {
		return RequestInfo{}
	}
	return info
}

// WithLog пишет каждый запрос к ИИ в лог и в таблицу ai_logs
func WithLog(p Provider, store ailogstore.Provider) Provider {
	if p == nil {
		return nil
	}
	return &loggedProvider{next: p, store: store}
}

type loggedProvider struct {
	next  Provider
	store ailogstore.Provider
}

func (l *loggedProvider) Name() string {
	return l.next.Name()
}

func (l *loggedProvider) Complete(ctx context.Context, prompt string) (string, error) {
	info := GetRequestInfo(ctx)
	logger := log.
		WithField("ai", l.next.Name()).
		WithField("session_id", info.SessionID).
		WithField("request_type", info.RequestType)

	now := time.Now()
	answer, err := l.next.Complete(ctx, prompt)
	duration := time.Since(now)

	rec := dbmodels.AiLog{
		SessionID:  info.SessionID,
		Prompt:     prompt,
		Answer:     answer,
		DurationMs: duration.Milliseconds(),
		ReqestType: info.RequestType,
		AiName:     dbmodels.AiName(l.next.Name()),
	}
	if err != nil {
		rec.Error = err.Error()
		logger.
			WithError(err).
			WithField("answer_duration_sec", duration.Seconds()).
			Error("ошибка выполнения запроса к ИИ")
	} else {
		logger.
			WithField("prompt", prompt).
			WithField("answer", answer).
			WithField("answer_duration_sec", duration.Seconds()).
			Info("Ответ AI на запрос")
	}
	if l.store != nil {
		if _, saveErr := l.store.Save(rec); saveErr != nil {
			logger.WithError(saveErr).Error("ошибка сохранения лога запроса к ИИ")
		}
	}
	return answer, err
}
