package results

import (
	"context"
	"fmt"
	"strings"

	"interview-sim-backend/lib/events"
	interviewsessionstore "interview-sim-backend/lib/interview-session/store"
	"interview-sim-backend/lib/scorer"
	sessionstate "interview-sim-backend/lib/session-state"
	botnotify "interview-sim-backend/lib/utils/bot-notify"
	interviewapimodels "interview-sim-backend/models/api/interview"
	dbmodels "interview-sim-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// ScoreSession шаг результатов: оценка сохранённого интервью
	ScoreSession(ctx context.Context, sessionID string) (interviewapimodels.InterviewScore, error)
	// GetScore сохранённая оценка, nil если интервью ещё не оценено
	GetScore(sessionID string) (*interviewapimodels.InterviewScore, error)
}

var Instance Provider

func NewHandler(state sessionstate.Provider, sessions interviewsessionstore.Provider, scorerProvider scorer.Provider) {
	Instance = NewProvider(state, sessions, scorerProvider, events.Instance, botnotify.Instance)
}

func NewProvider(state sessionstate.Provider, sessions interviewsessionstore.Provider, scorerProvider scorer.Provider,
	publisher events.Provider, notifier botnotify.Provider) Provider {
	return impl{
		state:     state,
		sessions:  sessions,
		scorer:    scorerProvider,
		publisher: publisher,
		notifier:  notifier,
	}
}

type impl struct {
	state     sessionstate.Provider
	sessions  interviewsessionstore.Provider
	scorer    scorer.Provider
	publisher events.Provider
	notifier  botnotify.Provider
}

func (i impl) ScoreSession(ctx context.Context, sessionID string) (interviewapimodels.InterviewScore, error) {
	logger := log.WithField("session_id", sessionID)
	results, err := i.state.LoadResults(sessionID)
	if err != nil {
		return interviewapimodels.InterviewScore{}, err
	}
	req := BuildScoreRequest(results)
	score := i.scorer.Score(ctx, sessionID, req)

	if err = i.state.SaveScore(sessionID, score); err != nil {
		logger.WithError(err).Error("ошибка сохранения оценки в хранилище сессии")
	}
	session := i.saveToRegistry(sessionID, score, logger)

	overall := score.OverallScore
	err = i.publisher.Publish(ctx, events.Event{
		Type:         events.TypeScored,
		SessionID:    sessionID,
		OverallScore: &overall,
		Note:         score.Note,
	})
	if err != nil {
		logger.WithError(err).Warn("ошибка публикации события оценки")
	}
	if err = i.notifier.NotifyScored(session, score); err != nil {
		logger.WithError(err).Warn("ошибка отправки уведомления об оценке")
	}
	return score, nil
}

func (i impl) GetScore(sessionID string) (*interviewapimodels.InterviewScore, error) {
	score, err := i.state.LoadScore(sessionID)
	if err != nil || score != nil {
		return score, err
	}
	if i.sessions == nil {
		return nil, nil
	}
	rec, err := i.sessions.GetScore(sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения оценки")
	}
	if rec == nil {
		return nil, nil
	}
	result := interviewapimodels.ConvertScore(*rec)
	return &result, nil
}

func (i impl) saveToRegistry(sessionID string, score interviewapimodels.InterviewScore, logger *log.Entry) dbmodels.InterviewSession {
	session := dbmodels.InterviewSession{BaseModel: dbmodels.BaseModel{ID: sessionID}}
	if i.sessions == nil {
		return session
	}
	if err := i.sessions.SaveScore(interviewapimodels.ConvertScoreRecord(sessionID, score)); err != nil {
		logger.WithError(err).Error("ошибка сохранения оценки")
	}
	overall := score.OverallScore
	err := i.sessions.Update(sessionID, map[string]interface{}{
		"status":        dbmodels.InterviewStatusScored,
		"overall_score": overall,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка обновления статуса сессии")
	}
	rec, err := i.sessions.GetByID(sessionID)
	if err != nil {
		logger.WithError(err).Warn("ошибка получения сессии")
	}
	if rec != nil {
		session = *rec
	}
	return session
}

// BuildScoreRequest запрос на оценку по сохранённым результатам интервью
func BuildScoreRequest(results interviewapimodels.InterviewResults) interviewapimodels.ScoreRequest {
	timings := make(map[int]float64, len(results.ResponseTimeData))
	for idx, ms := range results.ResponseTimeData {
		timings[idx] = float64(ms)
	}
	return interviewapimodels.ScoreRequest{
		Interview:             FormatTranscript(results.Messages),
		JobDescription:        results.JobDescription,
		CVContent:             results.CVContent,
		ResponseTimeData:      timings,
		AverageResponseTimeMs: results.AverageResponseTimeMs(),
	}
}

// FormatTranscript строки "role: content" через пустую строку
func FormatTranscript(messages []interviewapimodels.ChatMessage) string {
	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}
	return strings.Join(lines, "\n\n")
}
