package filestorage

import (
	"context"
)

// Provider хранилище исходных файлов резюме
type Provider interface {
	UploadResume(ctx context.Context, sessionID, fileName string, file []byte) (objectName string, err error)
	GetResume(ctx context.Context, objectName string) ([]byte, error)
	Enabled() bool
}

var Instance Provider = disabled{}
