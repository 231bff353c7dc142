package ollamamodels

// Структуры для работы с Ollama API
type OllamaRequest struct {
	Model   string  `json:"model"`
	Prompt  string  `json:"prompt"`
	Stream  bool    `json:"stream"`
	Options Options `json:"options"`
}

type Options struct {
	Temperature   float64 `json:"temperature,omitempty"`
	TopP          float64 `json:"top_p,omitempty"`
	TopK          int     `json:"top_k,omitempty"`
	NumPredict    int     `json:"num_predict,omitempty"` // Аналог MaxTokens
	RepeatPenalty float64 `json:"repeat_penalty,omitempty"`
}

type OllamaResponse struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
}

func GetInterviewConfig() Options {
	return Options{
		Temperature:   0.7,
		TopP:          0.9,
		TopK:          40,
		NumPredict:    2000, // хватает на 7 вопросов или полную оценку
		RepeatPenalty: 1.1,
	}
}
