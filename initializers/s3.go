package initializers

import (
	"context"
	"time"

	"interview-sim-backend/config"
	filestorage "interview-sim-backend/lib/file-storage"
	s3client "interview-sim-backend/s3"

	log "github.com/sirupsen/logrus"
)

// InitS3 недоступное хранилище не мешает запуску, резюме просто не сохраняются
func InitS3(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := s3client.NewClient(ctx, s3client.Settings{
		Endpoint:        config.Conf.S3.Endpoint,
		AccessKeyID:     config.Conf.S3.AccessKeyID,
		SecretAccessKey: config.Conf.S3.SecretAccessKey,
		BucketName:      config.Conf.S3.BucketName,
		UseSSL:          *config.Conf.S3.UseSSL,
	})
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		client = nil
	} else if client != nil {
		log.Info("S3 клиент успешно инициализирован")
	}
	filestorage.NewInstance(client, config.Conf.S3.BucketName)
}
