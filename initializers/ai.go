package initializers

import (
	"context"
	"time"

	"interview-sim-backend/config"
	"interview-sim-backend/db"
	gpthandler "interview-sim-backend/lib/gpt"
	ailogstore "interview-sim-backend/lib/gpt/store"
)

// InitAI провайдер ИИ определяется один раз при старте, nil - моковые данные
func InitAI(ctx context.Context) gpthandler.Provider {
	ai := gpthandler.Resolve(ctx, gpthandler.Settings{
		Provider:       config.Conf.AI.Provider,
		YandexIAMToken: config.Conf.AI.YandexGPT.IAMToken,
		YandexCatalog:  config.Conf.AI.YandexGPT.CatalogID,
		GeminiAPIKey:   config.Conf.AI.Gemini.APIKey,
		GeminiModel:    config.Conf.AI.Gemini.Model,
		OllamaURL:      config.Conf.AI.Ollama.OllamaURL,
		OllamaModel:    config.Conf.AI.Ollama.OllamaModel,
	})
	if ai != nil && db.DB != nil {
		ai = gpthandler.WithLog(ai, ailogstore.NewInstance(db.DB))
	}
	return ai
}

func aiTimeout() time.Duration {
	return time.Duration(config.Conf.AI.TimeoutSec) * time.Second
}

func msDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
