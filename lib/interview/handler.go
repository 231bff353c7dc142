package interview

import (
	"context"
	"time"

	"interview-sim-backend/lib/events"
	sessionstate "interview-sim-backend/lib/session-state"
	"interview-sim-backend/lib/utils/lock"
	interviewapimodels "interview-sim-backend/models/api/interview"
	dbmodels "interview-sim-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Emitter получает каждое новое сообщение чата в момент его появления
type Emitter func(msg interviewapimodels.ChatMessage)

// StatusUpdater обновление статуса в реестре сессий
type StatusUpdater interface {
	UpdateStatus(id string, status dbmodels.InterviewStatus) error
}

type Settings struct {
	QuestionDelay       time.Duration
	AnswerDelay         time.Duration
	FinishRedirectDelay time.Duration
	// LockWait сколько ждать завершения предыдущего действия в той же сессии
	LockWait time.Duration
}

type Provider interface {
	Start(ctx context.Context, sessionID string, emit Emitter) error
	Answer(ctx context.Context, sessionID, text string, emit Emitter) error
	Finish(ctx context.Context, sessionID string, emit Emitter) error
	State(sessionID string) (*interviewapimodels.SessionStateResponse, error)
}

var ErrBusy = errors.New("сессия занята обработкой предыдущего действия")

var Instance Provider

func NewHandler(state sessionstate.Provider, sessions StatusUpdater, settings Settings) {
	Instance = NewProvider(state, sessions, settings)
}

func NewProvider(state sessionstate.Provider, sessions StatusUpdater, settings Settings) Provider {
	if settings.LockWait <= 0 {
		settings.LockWait = 30 * time.Second
	}
	return &impl{
		state:     state,
		sessions:  sessions,
		settings:  settings,
		publisher: events.Instance,
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

type impl struct {
	state     sessionstate.Provider
	sessions  StatusUpdater
	settings  Settings
	publisher events.Provider
	now       func() time.Time
	sleep     func(time.Duration)
}

func (i *impl) Start(ctx context.Context, sessionID string, emit Emitter) error {
	return i.withSession(ctx, sessionID, func(ctl *Controller) error {
		if ctl.Stalled() {
			return i.resume(ctx, sessionID, ctl, emit)
		}
		msg, err := ctl.Start()
		if err != nil {
			return err
		}
		if err = i.emitAndSave(sessionID, ctl, msg, emit); err != nil {
			return err
		}
		i.updateStatus(sessionID, dbmodels.InterviewStatusInProgress)
		// пауза перед первым вопросом не прерывается
		i.sleep(i.settings.QuestionDelay)
		msg, err = ctl.PresentQuestion()
		if err != nil {
			return err
		}
		return i.emitAndSave(sessionID, ctl, msg, emit)
	})
}

func (i *impl) Answer(ctx context.Context, sessionID, text string, emit Emitter) error {
	return i.withSession(ctx, sessionID, func(ctl *Controller) error {
		msg, hasNext, err := ctl.Answer(text)
		if err != nil {
			return err
		}
		if err = i.emitAndSave(sessionID, ctl, msg, emit); err != nil {
			return err
		}
		i.sleep(i.settings.AnswerDelay)
		if hasNext {
			msg, err = ctl.PresentQuestion()
			if err != nil {
				return err
			}
			return i.emitAndSave(sessionID, ctl, msg, emit)
		}
		return i.finish(ctx, sessionID, ctl, emit)
	})
}

// resume продолжает интервью, прерванное между сохранением ответа и показом следующего вопроса
func (i *impl) resume(ctx context.Context, sessionID string, ctl *Controller, emit Emitter) error {
	log.
		WithField("session_id", sessionID).
		WithField("current", ctl.CurrentQuestion()).
		Warn("возобновление прерванного интервью")
	if ctl.CurrentAnswered() {
		return i.finish(ctx, sessionID, ctl, emit)
	}
	msg, err := ctl.PresentQuestion()
	if err != nil {
		return err
	}
	return i.emitAndSave(sessionID, ctl, msg, emit)
}

// Finish досрочное завершение интервью
func (i *impl) Finish(ctx context.Context, sessionID string, emit Emitter) error {
	return i.withSession(ctx, sessionID, func(ctl *Controller) error {
		return i.finish(ctx, sessionID, ctl, emit)
	})
}

func (i *impl) State(sessionID string) (*interviewapimodels.SessionStateResponse, error) {
	ctl, err := i.load(sessionID)
	if err != nil {
		return nil, err
	}
	snap := ctl.Snapshot()
	result := &interviewapimodels.SessionStateResponse{
		State:           string(snap.State),
		CurrentQuestion: snap.Current,
		TotalQuestions:  ctl.TotalQuestions(),
		Messages:        snap.Messages,
		ResponseTimes:   snap.Timings,
	}
	if snap.State == StateFinished {
		result.RedirectAfterMs = int(i.settings.FinishRedirectDelay.Milliseconds())
	}
	return result, nil
}

func (i *impl) finish(ctx context.Context, sessionID string, ctl *Controller, emit Emitter) error {
	msg, err := ctl.Finish()
	if err != nil {
		return err
	}
	results, err := ctl.Results()
	if err != nil {
		return err
	}
	if err = i.state.SaveResults(sessionID, results); err != nil {
		return errors.Wrap(err, "ошибка сохранения результатов интервью")
	}
	if err = i.emitAndSave(sessionID, ctl, msg, emit); err != nil {
		return err
	}
	i.updateStatus(sessionID, dbmodels.InterviewStatusFinished)
	err = i.publisher.Publish(ctx, events.Event{
		Type:      events.TypeFinished,
		SessionID: sessionID,
	})
	if err != nil {
		log.WithField("session_id", sessionID).WithError(err).Warn("ошибка публикации события завершения интервью")
	}
	log.
		WithField("session_id", sessionID).
		WithField("answered", len(results.ResponseTimeData)).
		WithField("total", ctl.TotalQuestions()).
		Info("интервью завершено")
	return nil
}

// withSession выполняет действие под блокировкой сессии, действия одной сессии идут строго по очереди
func (i *impl) withSession(ctx context.Context, sessionID string, action func(ctl *Controller) error) error {
	var actionErr error
	ok, err := lock.WithDelay(ctx, "interview:"+sessionID, i.settings.LockWait, func() error {
		ctl, err := i.load(sessionID)
		if err != nil {
			return err
		}
		actionErr = action(ctl)
		return nil
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrBusy
	}
	return actionErr
}

func (i *impl) load(sessionID string) (*Controller, error) {
	snap := Snapshot{}
	found, err := i.state.Get(sessionID, sessionstate.KeyInterviewProgress, &snap)
	if err != nil {
		return nil, err
	}
	if found {
		return Restore(snap, i.now), nil
	}
	data, err := i.state.LoadInterviewData(sessionID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, sessionstate.ErrNoInterviewData
	}
	return NewController(*data, i.now), nil
}

func (i *impl) emitAndSave(sessionID string, ctl *Controller, msg interviewapimodels.ChatMessage, emit Emitter) error {
	if err := i.state.Put(sessionID, sessionstate.KeyInterviewProgress, ctl.Snapshot()); err != nil {
		return errors.Wrap(err, "ошибка сохранения состояния интервью")
	}
	if emit != nil {
		emit(msg)
	}
	return nil
}

func (i *impl) updateStatus(sessionID string, status dbmodels.InterviewStatus) {
	if i.sessions == nil {
		return
	}
	if err := i.sessions.UpdateStatus(sessionID, status); err != nil {
		log.
			WithField("session_id", sessionID).
			WithError(err).
			Warnf("ошибка обновления статуса сессии на %v", status)
	}
}
