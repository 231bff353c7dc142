package cleanupworker

import (
	"context"
	"time"

	sessionstatestore "interview-sim-backend/lib/session-state/store"
	baseworker "interview-sim-backend/lib/utils/base-worker"
)

func StartWorker(ctx context.Context, store sessionstatestore.Provider) {
	i := &impl{
		BaseImpl: *baseworker.NewInstance("SessionStateCleanupWorker", 30*time.Second, 60*time.Minute),
		store:    store,
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	store sessionstatestore.Provider
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	count, err := i.store.DeleteExpired(time.Now())
	if err != nil {
		logger.WithError(err).Error("ошибка удаления устаревших данных сессий")
		return
	}
	if count > 0 {
		logger.WithField("deleted_count", count).Info("удалены устаревшие данные сессий")
	}
}
