package ollamaclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"interview-sim-backend/lib/utils/lock"
	ollamamodels "interview-sim-backend/models/api/ollama"

	"github.com/pkg/errors"
)

type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

type impl struct {
	ollamaURL   string
	ollamaModel string
	httpClient  *http.Client
}

func NewClient(url, model string) (Provider, error) {
	if url == "" {
		return nil, errors.New("не указан url для ollama")
	}
	if model == "" {
		return nil, errors.New("не указана модель для ollama")
	}
	return &impl{
		ollamaURL:   url,
		ollamaModel: model,
		httpClient:  &http.Client{},
	}, nil
}

func (i *impl) Name() string {
	return "ollama"
}

// Complete локальная модель одна на сервис, поэтому запросы выполняются по очереди
func (i *impl) Complete(ctx context.Context, prompt string) (string, error) {
	if !lock.Resource.Acquire(ctx, "ollama") {
		return "", errors.New("ошибка доступа к ресурсам - контекст завершен")
	}
	defer lock.Resource.Release("ollama")

	request := ollamamodels.OllamaRequest{
		Model:   i.ollamaModel,
		Prompt:  prompt,
		Stream:  false,
		Options: ollamamodels.GetInterviewConfig(),
	}
	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.ollamaURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := i.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "ошибка запроса к Ollama")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ошибка Ollama API: %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	var ollamaResponse ollamamodels.OllamaResponse
	if err = json.Unmarshal(body, &ollamaResponse); err != nil {
		return "", errors.Wrap(err, "ошибка разбора ответа Ollama")
	}
	return ollamaResponse.Response, nil
}
