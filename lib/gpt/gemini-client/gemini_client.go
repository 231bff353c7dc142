package geminiclient

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

type impl struct {
	client    *genai.Client
	modelName string
}

func NewClient(ctx context.Context, apiKey, model string) (Provider, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("не указан api key для gemini")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания клиента gemini")
	}
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return &impl{client: client, modelName: model}, nil
}

func (i *impl) Name() string {
	return "gemini"
}

func (i *impl) Complete(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("промпт не должен быть пустым")
	}
	temperature := float32(0.7)
	resp, err := i.client.Models.GenerateContent(ctx, i.modelName, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: &temperature,
	})
	if err != nil {
		return "", errors.Wrap(err, "ошибка генерации ответа gemini")
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}
	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini вернул пустой ответ")
	}
	return output, nil
}
