// Package extractor превращает загруженное резюме (txt, pdf, docx) в нормализованный текст.
// Ошибка извлечения никогда не возвращается наружу: вместо нее подставляется шаблонное резюме.
package extractor

import (
	"strings"
	"sync"
	"unicode/utf8"

	"interview-sim-backend/lib/utils/helpers"

	log "github.com/sirupsen/logrus"
	"github.com/unidoc/unipdf/v3/common/license"
)

type Result struct {
	Text     string
	Fallback bool
	Reason   string // причина подстановки шаблона
}

type Provider interface {
	Extract(fileName string, content []byte) Result
}

var Instance Provider

var (
	licenseOnce sync.Once
	licenseOK   bool
)

func NewHandler(unidocLicenseKey string) {
	Instance = impl{
		unipdfEnabled: initUnidoc(unidocLicenseKey),
	}
}

// без ключа unipdf не работает, поэтому резервное извлечение включается только с лицензией
func initUnidoc(key string) bool {
	if key == "" {
		return false
	}
	licenseOnce.Do(func() {
		if err := license.SetMeteredKey(key); err != nil {
			log.WithError(err).Error("ошибка установки лицензии unidoc, резервное извлечение pdf отключено")
			return
		}
		licenseOK = true
	})
	return licenseOK
}

type impl struct {
	unipdfEnabled bool
}

var allowedExtensions = map[string]bool{
	"txt":  true,
	"pdf":  true,
	"docx": true,
}

func Extension(fileName string) string {
	return helpers.FileExtension(fileName)
}

// AllowedExtension проверка расширения на границе загрузки
func AllowedExtension(fileName string) bool {
	return allowedExtensions[Extension(fileName)]
}

func (i impl) Extract(fileName string, content []byte) Result {
	logger := log.
		WithField("file_name", fileName).
		WithField("file_size", len(content))

	var (
		text string
		err  error
	)
	switch Extension(fileName) {
	case "txt":
		text = string(content)
	case "pdf":
		text, err = i.extractPDF(content)
	case "docx":
		text, err = extractDocx(content)
	default:
		logger.Warn("неподдерживаемый формат резюме, используется шаблон")
		return fallbackResult(fileName, "неподдерживаемый формат файла")
	}
	if err != nil {
		logger.WithError(err).Warn("ошибка извлечения текста резюме, используется шаблон")
		return fallbackResult(fileName, err.Error())
	}
	text = Normalize(text)
	if text == "" {
		logger.Warn("из резюме не извлечен текст, используется шаблон")
		return fallbackResult(fileName, "пустой текст")
	}
	if looksBinary(text) {
		logger.Warn("извлеченный текст похож на бинарные данные, используется шаблон")
		return fallbackResult(fileName, "бинарное содержимое")
	}
	return Result{Text: text}
}

func (i impl) extractPDF(content []byte) (string, error) {
	text, err := extractPDFPlain(content)
	if err == nil && Normalize(text) != "" && !looksBinary(text) {
		return text, nil
	}
	if !i.unipdfEnabled {
		return text, err
	}
	log.WithError(err).Info("повторное извлечение pdf через unipdf")
	return extractPDFUnidoc(content)
}

func looksBinary(text string) bool {
	return strings.Contains(text, "%PDF") ||
		strings.ContainsRune(text, '\x00') ||
		!utf8.ValidString(text)
}

func fallbackResult(fileName, reason string) Result {
	return Result{
		Text:     FallbackResume(fileName),
		Fallback: true,
		Reason:   reason,
	}
}
