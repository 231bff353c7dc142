package main

import (
	"os"

	"interview-sim-backend/cmd"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.WithError(err).Error("ошибка выполнения команды")
		os.Exit(1)
	}
}
