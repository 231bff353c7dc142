package db

import (
	"fmt"

	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

type Settings struct {
	Host      string
	Port      string
	Database  string
	User      string
	Password  string
	DebugMode bool
	Migrate   bool
}

func (s Settings) dsn() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s", s.Host, s.Port, s.User, s.Database, s.Password)
}

func Connect(settings Settings) error {
	if DB != nil {
		return nil
	}
	db, err := gorm.Open(postgres.Open(settings.dsn()), &gorm.Config{
		Logger: gorm_logrus.New(),
	})
	if err != nil {
		return errors.Wrap(err, "Ошибка подключения к БД")
	}
	if settings.DebugMode {
		db.Logger = logger.Default.LogMode(logger.Info)
		DB = db.Debug()
	} else {
		DB = db
	}
	log.Info("Сервис успешно подключен к БД")
	if settings.Migrate {
		return AutoMigrateDB()
	}
	return nil
}

func PingDB() error {
	if DB == nil {
		return errors.New("нет подключения к БД")
	}
	db, err := DB.DB()
	if err != nil {
		return err
	}
	return db.Ping()
}

func Close() {
	if DB == nil {
		return
	}
	if db, err := DB.DB(); err == nil {
		_ = db.Close()
	}
	DB = nil
}
