package ailogstore

import (
	dbmodels "interview-sim-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	Save(rec dbmodels.AiLog) (string, error)
	// ListBySession обращения к ИИ в рамках сессии интервью в порядке выполнения
	ListBySession(sessionID string) ([]dbmodels.AiLog, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Save(rec dbmodels.AiLog) (string, error) {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListBySession(sessionID string) ([]dbmodels.AiLog, error) {
	var list []dbmodels.AiLog
	err := i.db.
		Model(dbmodels.AiLog{}).
		Where("session_id = ?", sessionID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
