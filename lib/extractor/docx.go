package extractor

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
	"github.com/pkg/errors"
)

var xmlTagRe = regexp.MustCompile(`<[^>]+>`)

func extractDocx(data []byte) (string, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.Wrap(err, "ошибка чтения docx")
	}
	defer r.Close()
	return docxXMLToText(r.Editable().GetContent()), nil
}

// docxXMLToText границы абзацев -> перевод строки, теги удаляются
func docxXMLToText(xml string) string {
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	xml = strings.ReplaceAll(xml, "<w:br/>", "\n")
	text := xmlTagRe.ReplaceAllString(xml, "")
	return html.UnescapeString(text)
}
