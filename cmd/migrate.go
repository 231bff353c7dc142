package cmd

import (
	"interview-sim-backend/config"
	"interview-sim-backend/db"
	"interview-sim-backend/initializers"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	RunE: func(cmd *cobra.Command, _ []string) error {
		initializers.InitLogger()
		config.InitConfig()
		settings := initializers.DBSettings()
		settings.Migrate = false
		if err := db.Connect(settings); err != nil {
			return err
		}
		defer db.Close()
		if err := db.AutoMigrateDB(); err != nil {
			return err
		}
		log.Info("миграция завершена")
		return nil
	},
}
