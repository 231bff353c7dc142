package helpers

import (
	"context"
	"path/filepath"
	"strings"
)

// HeaderLogIgnore заголовок ответа, отключающий запись тела запроса и ответа в лог
const HeaderLogIgnore = "X-Log-Ignore"

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

// FileExtension расширение файла в нижнем регистре без точки
func FileExtension(fileName string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
}

// Truncate обрезает строку до limit символов
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
