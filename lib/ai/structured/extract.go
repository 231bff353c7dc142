// Package structured извлекает json из свободного текстового ответа ИИ.
package structured

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

type Shape int

const (
	ShapeArray Shape = iota
	ShapeObject
)

func (s Shape) String() string {
	if s == ShapeObject {
		return "object"
	}
	return "array"
}

func (s Shape) brackets() (open, close byte) {
	if s == ShapeObject {
		return '{', '}'
	}
	return '[', ']'
}

// ограничение на число попыток декодирования, чтобы не уйти в квадрат на мусорном ответе
const maxDecodeAttempts = 64

var ErrNoJSON = errors.New("в ответе ИИ не найдена json структура")

type ParseError struct {
	Shape Shape
	Cause error
}

func (e *ParseError) Error() string {
	return "ошибка разбора json (" + e.Shape.String() + ") из ответа ИИ: " + e.Cause.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

var fenceRe = regexp.MustCompile("```[a-zA-Z]*")

// Clean убирает рассуждения reasoning-моделей и markdown-обертку
func Clean(raw string) string {
	text := raw
	if idx := strings.LastIndex(text, "</think>"); idx >= 0 {
		text = text[idx+len("</think>"):]
	}
	text = fenceRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// Locate возвращает первую корректную json подстроку нужной формы.
// Если корректной нет - срез от первой открывающей до последней закрывающей скобки.
func Locate(raw string, shape Shape) (string, error) {
	text := Clean(raw)
	open, close := shape.brackets()
	first := strings.IndexByte(text, open)
	if first < 0 {
		return "", ErrNoJSON
	}
	pos := first
	for attempt := 0; attempt < maxDecodeAttempts; attempt++ {
		var value json.RawMessage
		if err := json.NewDecoder(strings.NewReader(text[pos:])).Decode(&value); err == nil {
			return string(value), nil
		}
		next := strings.IndexByte(text[pos+1:], open)
		if next < 0 {
			break
		}
		pos += next + 1
	}
	last := strings.LastIndexByte(text, close)
	if last <= first {
		return "", &ParseError{Shape: shape, Cause: errors.New("json структура не закрыта")}
	}
	return text[first : last+1], nil
}

// Extract находит json нужной формы в ответе ИИ и разбирает его в T
func Extract[T any](raw string, shape Shape) (T, error) {
	var result T
	candidate, err := Locate(raw, shape)
	if err != nil {
		return result, err
	}
	if err = json.Unmarshal([]byte(candidate), &result); err != nil {
		return result, &ParseError{Shape: shape, Cause: err}
	}
	return result, nil
}
