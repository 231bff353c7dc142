package sessionstatestore

import (
	"time"

	dbmodels "interview-sim-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Put(rec dbmodels.SessionState) error
	Get(sessionID, key string) (*dbmodels.SessionState, error)
	DeleteSession(sessionID string) error
	DeleteExpired(now time.Time) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Put(rec dbmodels.SessionState) error {
	return i.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
		}).
		Create(&rec).
		Error
}

func (i impl) Get(sessionID, key string) (*dbmodels.SessionState, error) {
	rec := dbmodels.SessionState{}
	err := i.db.
		Where("session_id = ?", sessionID).
		Where("key = ?", key).
		Where("expires_at > ?", time.Now()).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) DeleteSession(sessionID string) error {
	return i.db.
		Where("session_id = ?", sessionID).
		Delete(&dbmodels.SessionState{}).
		Error
}

func (i impl) DeleteExpired(now time.Time) (int64, error) {
	tx := i.db.
		Where("expires_at <= ?", now).
		Delete(&dbmodels.SessionState{})
	return tx.RowsAffected, tx.Error
}
