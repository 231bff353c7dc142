package sessionstate

import (
	"encoding/json"
	"time"

	sessionstatestore "interview-sim-backend/lib/session-state/store"
	interviewapimodels "interview-sim-backend/models/api/interview"
	dbmodels "interview-sim-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	KeyInterviewData     = "interviewData"
	KeyInterviewProgress = "interviewProgress"
	KeyInterviewResults  = "interviewResults"
	KeyInterviewScore    = "interviewScore"
)

var (
	ErrNoInterviewData      = errors.New("No interview data found. Please complete an interview first.")
	ErrInvalidInterviewData = errors.New("Invalid interview data. Please try again.")
)

// Provider хранилище данных, передаваемых между шагами интервью.
// Каждый шаг перезаписывает своё значение целиком, читатели переживают отсутствие и порчу данных.
type Provider interface {
	Put(sessionID, key string, value any) error
	Get(sessionID, key string, out any) (found bool, err error)
	Clear(sessionID string) error
	SaveInterviewData(sessionID string, data interviewapimodels.InterviewData) error
	LoadInterviewData(sessionID string) (*interviewapimodels.InterviewData, error)
	SaveResults(sessionID string, results interviewapimodels.InterviewResults) error
	LoadResults(sessionID string) (interviewapimodels.InterviewResults, error)
	SaveScore(sessionID string, score interviewapimodels.InterviewScore) error
	LoadScore(sessionID string) (*interviewapimodels.InterviewScore, error)
}

var Instance Provider

func NewHandler(store sessionstatestore.Provider, ttl time.Duration) {
	Instance = NewProvider(store, ttl)
}

func NewProvider(store sessionstatestore.Provider, ttl time.Duration) Provider {
	return impl{
		store: store,
		ttl:   ttl,
	}
}

type impl struct {
	store sessionstatestore.Provider
	ttl   time.Duration
}

func (i impl) Put(sessionID, key string, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "ошибка сериализации значения %v", key)
	}
	rec := dbmodels.SessionState{
		SessionID: sessionID,
		Key:       key,
		Value:     string(body),
		ExpiresAt: time.Now().Add(i.ttl),
	}
	if err = i.store.Put(rec); err != nil {
		return errors.Wrapf(err, "ошибка сохранения значения %v", key)
	}
	return nil
}

func (i impl) Get(sessionID, key string, out any) (bool, error) {
	_, found, err := i.get(sessionID, key, out)
	return found, err
}

// get возвращает признак порчи отдельно: испорченное значение считается отсутствующим
func (i impl) get(sessionID, key string, out any) (malformed, found bool, err error) {
	rec, err := i.store.Get(sessionID, key)
	if err != nil {
		return false, false, errors.Wrapf(err, "ошибка чтения значения %v", key)
	}
	if rec == nil {
		return false, false, nil
	}
	if err = json.Unmarshal([]byte(rec.Value), out); err != nil {
		log.
			WithField("session_id", sessionID).
			WithField("key", key).
			WithError(err).
			Warn("испорченное значение в хранилище сессии, считается отсутствующим")
		return true, false, nil
	}
	return false, true, nil
}

func (i impl) Clear(sessionID string) error {
	return i.store.DeleteSession(sessionID)
}

func (i impl) SaveInterviewData(sessionID string, data interviewapimodels.InterviewData) error {
	return i.Put(sessionID, KeyInterviewData, data)
}

func (i impl) LoadInterviewData(sessionID string) (*interviewapimodels.InterviewData, error) {
	data := interviewapimodels.InterviewData{}
	found, err := i.Get(sessionID, KeyInterviewData, &data)
	if err != nil || !found {
		return nil, err
	}
	if len(data.Questions) == 0 {
		return nil, nil
	}
	return &data, nil
}

func (i impl) SaveResults(sessionID string, results interviewapimodels.InterviewResults) error {
	return i.Put(sessionID, KeyInterviewResults, results)
}

// LoadResults ошибки ErrNoInterviewData и ErrInvalidInterviewData блокируют шаг результатов
func (i impl) LoadResults(sessionID string) (interviewapimodels.InterviewResults, error) {
	results := interviewapimodels.InterviewResults{}
	malformed, found, err := i.get(sessionID, KeyInterviewResults, &results)
	if err != nil {
		return results, err
	}
	if malformed {
		return results, ErrInvalidInterviewData
	}
	if !found {
		return results, ErrNoInterviewData
	}
	if len(results.Messages) == 0 {
		return results, ErrInvalidInterviewData
	}
	return results, nil
}

func (i impl) SaveScore(sessionID string, score interviewapimodels.InterviewScore) error {
	return i.Put(sessionID, KeyInterviewScore, score)
}

func (i impl) LoadScore(sessionID string) (*interviewapimodels.InterviewScore, error) {
	score := interviewapimodels.InterviewScore{}
	found, err := i.Get(sessionID, KeyInterviewScore, &score)
	if err != nil || !found {
		return nil, err
	}
	return &score, nil
}
