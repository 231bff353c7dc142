package initializers

import (
	"context"
	"time"

	"interview-sim-backend/config"
	"interview-sim-backend/db"
	"interview-sim-backend/fiberlog"
	"interview-sim-backend/lib/events"
	xlsexport "interview-sim-backend/lib/export/xls"
	"interview-sim-backend/lib/extractor"
	gpthandler "interview-sim-backend/lib/gpt"
	"interview-sim-backend/lib/interview"
	interviewsession "interview-sim-backend/lib/interview-session"
	interviewsessionstore "interview-sim-backend/lib/interview-session/store"
	"interview-sim-backend/lib/questions"
	"interview-sim-backend/lib/results"
	"interview-sim-backend/lib/scorer"
	sessionstate "interview-sim-backend/lib/session-state"
	cleanupworker "interview-sim-backend/lib/session-state/cleanup-worker"
	sessionstatestore "interview-sim-backend/lib/session-state/store"
	botnotify "interview-sim-backend/lib/utils/bot-notify"
	initchecker "interview-sim-backend/lib/utils/init-checker"
	"interview-sim-backend/lib/utils/lock"
	connectionhub "interview-sim-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	connectionhub.Init()
	lock.InitResourceLock(ctx)
	events.NewHandler(config.Conf.Rabbit.URL, config.Conf.Rabbit.Queue)
	botnotify.NewHandler(config.Conf.Telegram.Token, config.Conf.Telegram.ChatID)
	xlsexport.NewHandler()

	stateStore := sessionstatestore.NewInstance(db.DB)
	sessionStore := interviewsessionstore.NewInstance(db.DB)
	InitInterviewServices(InitAI(ctx), stateStore, sessionStore)

	go initWorkers(ctx, stateStore)
}

// InitInterviewServices сервисы интервью, sessionStore может быть nil (работа без БД)
func InitInterviewServices(ai gpthandler.Provider, stateStore sessionstatestore.Provider, sessionStore interviewsessionstore.Provider) {
	extractor.NewHandler(config.Conf.Extractor.UnidocLicenseKey)
	questions.NewHandler(ai, aiTimeout())
	scorer.NewHandler(ai, aiTimeout())
	sessionstate.NewHandler(stateStore, time.Duration(config.Conf.Interview.SessionTTLHours)*time.Hour)
	interview.NewHandler(sessionstate.Instance, statusUpdater(sessionStore), interview.Settings{
		QuestionDelay:       msDuration(config.Conf.Interview.QuestionDelayMs),
		AnswerDelay:         msDuration(config.Conf.Interview.AnswerDelayMs),
		FinishRedirectDelay: msDuration(config.Conf.Interview.FinishRedirectDelayMs),
	})
	interviewsession.NewHandler(sessionStore, interviewsession.Settings{
		JWTSecret:          config.Conf.Auth.JWTSecret,
		SessionExpireInSec: config.Conf.Auth.SessionExpireInSec,
	})
	results.NewHandler(sessionstate.Instance, sessionStore, scorer.Instance)

	initchecker.MustInit(
		"extractor", extractor.Instance,
		"questions", questions.Instance,
		"scorer", scorer.Instance,
		"sessionstate", sessionstate.Instance,
		"interview", interview.Instance,
		"interviewsession", interviewsession.Instance,
		"results", results.Instance,
	)
}

// statusUpdater без хранилища сессий статус не обновляется
func statusUpdater(store interviewsessionstore.Provider) interview.StatusUpdater {
	if store == nil {
		return nil
	}
	return store
}

func initWorkers(ctx context.Context, stateStore sessionstatestore.Provider) {
	// Задача удаления устаревших данных сессий интервью
	cleanupworker.StartWorker(ctx, stateStore)
}
