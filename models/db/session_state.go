package dbmodels

import "time"

// SessionState значение хранилища состояния сессии, перезаписывается целиком
type SessionState struct {
	SessionID string    `gorm:"primaryKey;type:varchar(36)" comment:"Идентификатор сессии интервью"`
	Key       string    `gorm:"primaryKey;type:varchar(64)" comment:"Ключ"`
	Value     string    `gorm:"type:text" comment:"Значение в json"`
	ExpiresAt time.Time `gorm:"index" comment:"Срок хранения"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
