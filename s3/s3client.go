package s3client

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const location = "us-east-1"

type Settings struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// NewClient клиент minio с созданным бакетом, nil если хранилище не настроено
func NewClient(ctx context.Context, settings Settings) (*minio.Client, error) {
	if settings.Endpoint == "" {
		return nil, nil
	}
	minioClient, err := minio.New(settings.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(settings.AccessKeyID, settings.SecretAccessKey, ""),
		Secure: settings.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	if err = makeBucket(ctx, minioClient, settings.BucketName); err != nil {
		return nil, err
	}
	return minioClient, nil
}

func makeBucket(ctx context.Context, minioClient *minio.Client, bucketName string) error {
	exists, err := minioClient.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return minioClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
}
