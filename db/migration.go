package db

import (
	dbmodels "interview-sim-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.InterviewSession{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры InterviewSession")
	}
	if err := DB.AutoMigrate(&dbmodels.InterviewScore{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры InterviewScore")
	}
	if err := DB.AutoMigrate(&dbmodels.SessionState{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры SessionState")
	}
	if err := DB.AutoMigrate(&dbmodels.AiLog{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AiLog")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
