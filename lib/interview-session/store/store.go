package interviewsessionstore

import (
	dbmodels "interview-sim-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.InterviewSession) (string, error)
	GetByID(id string) (*dbmodels.InterviewSession, error)
	Update(id string, updMap map[string]interface{}) error
	UpdateStatus(id string, status dbmodels.InterviewStatus) error
	List(page, limit int) ([]dbmodels.InterviewSession, error)
	Count() (int64, error)
	SaveScore(rec dbmodels.InterviewScore) error
	GetScore(sessionID string) (*dbmodels.InterviewScore, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.InterviewSession) (string, error) {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.InterviewSession, error) {
	rec := dbmodels.InterviewSession{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.InterviewSession{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) UpdateStatus(id string, status dbmodels.InterviewStatus) error {
	return i.Update(id, map[string]interface{}{
		"status": status,
	})
}

func (i impl) List(page, limit int) ([]dbmodels.InterviewSession, error) {
	list := []dbmodels.InterviewSession{}
	tx := i.db.Model(&dbmodels.InterviewSession{})
	i.setPage(tx, page, limit)
	err := tx.
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Count() (int64, error) {
	var rowCount int64
	err := i.db.
		Model(&dbmodels.InterviewSession{}).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

func (i impl) SaveScore(rec dbmodels.InterviewScore) error {
	return i.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			UpdateAll: true,
		}).
		Create(&rec).
		Error
}

func (i impl) GetScore(sessionID string) (*dbmodels.InterviewScore, error) {
	rec := dbmodels.InterviewScore{}
	err := i.db.
		Where("session_id = ?", sessionID).
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

func (i impl) setPage(tx *gorm.DB, page, limit int) {
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset)
}
