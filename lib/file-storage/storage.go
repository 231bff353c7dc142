package filestorage

import (
	"bytes"
	"context"
	"io"
	"mime"
	"path"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrDisabled = errors.New("хранилище файлов не настроено")

// NewInstance без клиента хранилище отключено
func NewInstance(s3client *minio.Client, bucketName string) {
	if s3client == nil {
		log.Info("хранилище файлов резюме отключено")
		Instance = disabled{}
		return
	}
	Instance = &impl{
		s3client:   s3client,
		bucketName: bucketName,
	}
}

type impl struct {
	s3client   *minio.Client
	bucketName string
}

func (i impl) UploadResume(ctx context.Context, sessionID, fileName string, file []byte) (string, error) {
	objectName := ObjectName(sessionID, fileName)
	contentType := mime.TypeByExtension(filepath.Ext(fileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := i.s3client.PutObject(ctx, i.bucketName, objectName, bytes.NewReader(file), int64(len(file)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "ошибка загрузки файла резюме")
	}
	return objectName, nil
}

func (i impl) GetResume(ctx context.Context, objectName string) ([]byte, error) {
	object, err := i.s3client.GetObject(ctx, i.bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения файла резюме")
	}
	defer object.Close()
	body, err := io.ReadAll(object)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения файла резюме")
	}
	return body, nil
}

func (i impl) Enabled() bool {
	return true
}

// ObjectName путь к файлу в бакете: <sessionID>/<имя файла>
func ObjectName(sessionID, fileName string) string {
	return path.Join(sessionID, filepath.Base(filepath.Clean("/"+fileName)))
}

type disabled struct{}

func (disabled) UploadResume(ctx context.Context, sessionID, fileName string, file []byte) (string, error) {
	return "", ErrDisabled
}

func (disabled) GetResume(ctx context.Context, objectName string) ([]byte, error) {
	return nil, ErrDisabled
}

func (disabled) Enabled() bool {
	return false
}
