package initializers

import (
	"interview-sim-backend/config"
	"interview-sim-backend/db"
)

func InitDBConnection() {
	if err := db.Connect(DBSettings()); err != nil {
		panic(err.Error())
	}
}

func DBSettings() db.Settings {
	return db.Settings{
		Host:      config.Conf.Database.Host,
		Port:      config.Conf.Database.Port,
		Database:  config.Conf.Database.Name,
		User:      config.Conf.Database.User,
		Password:  config.Conf.Database.Password,
		DebugMode: *config.Conf.Database.DebugMode,
		Migrate:   *config.Conf.Database.MigrateOnStart,
	}
}
