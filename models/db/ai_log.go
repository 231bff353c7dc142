package dbmodels

type AiLog struct {
	BaseModel
	SessionID  string       `gorm:"type:varchar(36);index" comment:"Идентификатор сессии интервью"`
	Prompt     string       `comment:"Промт"`
	Answer     string       `comment:"Ответ ИИ"`
	Error      string       `comment:"Ошибка вызова ИИ"`
	DurationMs int64        `comment:"Длительность запроса, мс"`
	ReqestType AiReqestType `gorm:"type:varchar(255)" comment:"Тип запроса к ИИ"`
	AiName     AiName       `gorm:"type:varchar(255)" comment:"Название ИИ"`
}

type AiName string

const (
	AiYaGptType  AiName = "yandexgpt"
	AiGeminiType AiName = "gemini"
	AiOllamaType AiName = "ollama"
)

type AiReqestType string

const (
	AiGenerateQuestionsType AiReqestType = "GenerateQuestions"
	AiScoreInterviewType    AiReqestType = "ScoreInterview"
)
