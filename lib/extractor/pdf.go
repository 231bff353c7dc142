package extractor

import (
	"bytes"
	"io"
	"strings"

	pdf "github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
	unipdfextractor "github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
)

func extractPDFPlain(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.Wrap(err, "ошибка чтения pdf")
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", errors.Wrap(err, "ошибка извлечения текста pdf")
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, rs); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractPDFUnidoc(data []byte) (string, error) {
	pdfReader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(err, "ошибка чтения pdf (unipdf)")
	}
	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения числа страниц pdf")
	}
	var builder strings.Builder
	for i := 1; i <= numPages; i++ {
		page, err := pdfReader.GetPage(i)
		if err != nil {
			continue
		}
		ex, err := unipdfextractor.New(page)
		if err != nil {
			continue
		}
		pageText, err := ex.ExtractText()
		if err != nil {
			continue
		}
		builder.WriteString(pageText)
		builder.WriteString("\n")
	}
	if strings.TrimSpace(builder.String()) == "" {
		return "", errors.New("из pdf не извлечен текст")
	}
	return builder.String(), nil
}
