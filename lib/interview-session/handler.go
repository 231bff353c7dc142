package interviewsession

import (
	"context"
	"time"

	"interview-sim-backend/lib/events"
	"interview-sim-backend/lib/extractor"
	filestorage "interview-sim-backend/lib/file-storage"
	interviewsessionstore "interview-sim-backend/lib/interview-session/store"
	"interview-sim-backend/lib/questions"
	sessionstate "interview-sim-backend/lib/session-state"
	authutils "interview-sim-backend/lib/utils/auth-utils"
	apimodels "interview-sim-backend/models/api"
	interviewapimodels "interview-sim-backend/models/api/interview"
	dbmodels "interview-sim-backend/models/db"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// Create шаг загрузки: резюме, вопросы, сессия и токен доступа к ней
	Create(ctx context.Context, req interviewapimodels.GenerateQuestionsRequest) (interviewapimodels.GenerateQuestionsResponse, error)
	Get(sessionID string) (*interviewapimodels.SessionView, error)
	List(pagination apimodels.Pagination) ([]interviewapimodels.SessionView, int64, error)
	// Report данные для выгрузки оценки, nil если интервью ещё не оценено
	Report(sessionID string, score *interviewapimodels.InterviewScore) (*interviewapimodels.ScoreReport, error)
	// Resume исходный файл резюме из хранилища
	Resume(ctx context.Context, sessionID string) (fileName string, data []byte, err error)
}

var ErrResumeNotFound = errors.New("файл резюме не сохранён")

type Settings struct {
	JWTSecret          string
	SessionExpireInSec int
}

var Instance Provider

func NewHandler(store interviewsessionstore.Provider, settings Settings) {
	Instance = NewProvider(store, extractor.Instance, questions.Instance, sessionstate.Instance, filestorage.Instance, events.Instance, settings)
}

func NewProvider(store interviewsessionstore.Provider, extractorProvider extractor.Provider, generator questions.Provider,
	state sessionstate.Provider, files filestorage.Provider, publisher events.Provider, settings Settings) Provider {
	return impl{
		store:     store,
		extractor: extractorProvider,
		generator: generator,
		state:     state,
		files:     files,
		publisher: publisher,
		settings:  settings,
	}
}

type impl struct {
	store     interviewsessionstore.Provider
	extractor extractor.Provider
	generator questions.Provider
	state     sessionstate.Provider
	files     filestorage.Provider
	publisher events.Provider
	settings  Settings
}

func (i impl) Create(ctx context.Context, req interviewapimodels.GenerateQuestionsRequest) (interviewapimodels.GenerateQuestionsResponse, error) {
	sessionID := uuid.New().String()
	logger := log.
		WithField("session_id", sessionID).
		WithField("file_name", req.FileName)

	extracted := i.extractor.Extract(req.FileName, req.FileContent)
	if extracted.Fallback {
		logger.WithField("reason", extracted.Reason).Warn("текст резюме заменён шаблоном")
	}
	objectName := i.uploadResume(ctx, sessionID, req, logger)

	generated := i.generator.Generate(ctx, sessionID, req.JobDescription, extracted.Text)

	rec := dbmodels.InterviewSession{
		BaseModel:      dbmodels.BaseModel{ID: sessionID},
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		JobDescription: req.JobDescription,
		ResumeFileName: req.FileName,
		ResumeObject:   objectName,
		ResumeFallback: extracted.Fallback,
		Status:         dbmodels.InterviewStatusNotStarted,
		QuestionsCount: len(generated.Questions),
		Note:           generated.Note,
	}
	if i.store != nil {
		if _, err := i.store.Create(rec); err != nil {
			logger.WithError(err).Error("ошибка создания сессии интервью")
			return interviewapimodels.GenerateQuestionsResponse{}, errors.New("ошибка создания сессии интервью")
		}
	}
	data := interviewapimodels.InterviewData{
		JobDescription: req.JobDescription,
		CandidateName:  req.CandidateName,
		Questions:      generated.Questions,
		CVContent:      generated.CVContent,
	}
	if err := i.state.SaveInterviewData(sessionID, data); err != nil {
		logger.WithError(err).Error("ошибка сохранения данных интервью")
		return interviewapimodels.GenerateQuestionsResponse{}, errors.New("ошибка сохранения данных интервью")
	}
	token, err := authutils.GetSessionToken(sessionID, i.settings.JWTSecret, i.settings.SessionExpireInSec)
	if err != nil {
		logger.WithError(err).Error("ошибка формирования токена сессии")
		return interviewapimodels.GenerateQuestionsResponse{}, errors.New("ошибка формирования токена сессии")
	}
	err = i.publisher.Publish(ctx, events.Event{
		Type:      events.TypeSessionCreated,
		SessionID: sessionID,
		Note:      generated.Note,
	})
	if err != nil {
		logger.WithError(err).Warn("ошибка публикации события создания сессии")
	}
	logger.WithField("questions_count", len(generated.Questions)).Info("сессия интервью создана")
	return interviewapimodels.GenerateQuestionsResponse{
		SessionID: sessionID,
		Token:     token,
		Questions: generated.Questions,
		CVContent: generated.CVContent,
		Note:      generated.Note,
	}, nil
}

// uploadResume ошибка хранилища не блокирует генерацию вопросов
func (i impl) uploadResume(ctx context.Context, sessionID string, req interviewapimodels.GenerateQuestionsRequest, logger *log.Entry) string {
	if i.files == nil || !i.files.Enabled() {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	objectName, err := i.files.UploadResume(ctx, sessionID, req.FileName, req.FileContent)
	if err != nil {
		logger.WithError(err).Warn("ошибка сохранения файла резюме")
		return ""
	}
	return objectName
}

func (i impl) Get(sessionID string) (*interviewapimodels.SessionView, error) {
	if i.store == nil {
		return nil, nil
	}
	rec, err := i.store.GetByID(sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения сессии интервью")
	}
	if rec == nil {
		return nil, nil
	}
	view := interviewapimodels.ConvertSession(*rec)
	return &view, nil
}

func (i impl) List(pagination apimodels.Pagination) ([]interviewapimodels.SessionView, int64, error) {
	if err := pagination.Validate(); err != nil {
		return nil, 0, err
	}
	if i.store == nil {
		return []interviewapimodels.SessionView{}, 0, nil
	}
	rowCount, err := i.store.Count()
	if err != nil {
		log.WithError(err).Error("ошибка получения количества сессий")
		return nil, 0, errors.New("ошибка получения списка сессий")
	}
	page, limit := pagination.GetPage()
	if int64(pagination.Offset()) > rowCount {
		return []interviewapimodels.SessionView{}, rowCount, nil
	}
	list, err := i.store.List(page, limit)
	if err != nil {
		log.WithError(err).Error("ошибка получения списка сессий")
		return nil, 0, errors.New("ошибка получения списка сессий")
	}
	result := make([]interviewapimodels.SessionView, 0, len(list))
	for _, rec := range list {
		result = append(result, interviewapimodels.ConvertSession(rec))
	}
	return result, rowCount, nil
}

func (i impl) Report(sessionID string, score *interviewapimodels.InterviewScore) (*interviewapimodels.ScoreReport, error) {
	if score == nil {
		return nil, nil
	}
	report := &interviewapimodels.ScoreReport{
		SessionID: sessionID,
		Score:     *score,
	}
	data, err := i.state.LoadInterviewData(sessionID)
	if err != nil {
		return nil, err
	}
	if data != nil {
		report.CandidateName = data.CandidateName
		report.JobDescription = data.JobDescription
	}
	if i.store != nil {
		rec, err := i.store.GetByID(sessionID)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка получения сессии интервью")
		}
		if rec != nil {
			report.CandidateName = rec.CandidateName
			report.CandidateEmail = rec.CandidateEmail
		}
	}
	return report, nil
}

func (i impl) Resume(ctx context.Context, sessionID string) (string, []byte, error) {
	if i.store == nil || i.files == nil || !i.files.Enabled() {
		return "", nil, ErrResumeNotFound
	}
	rec, err := i.store.GetByID(sessionID)
	if err != nil {
		return "", nil, errors.Wrap(err, "ошибка получения сессии интервью")
	}
	if rec == nil || rec.ResumeObject == "" {
		return "", nil, ErrResumeNotFound
	}
	data, err := i.files.GetResume(ctx, rec.ResumeObject)
	if err != nil {
		return "", nil, errors.Wrap(err, "ошибка получения файла резюме")
	}
	return rec.ResumeFileName, data, nil
}
