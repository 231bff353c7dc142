package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

type InterviewStatus string

const (
	InterviewStatusNotStarted InterviewStatus = "not_started"
	InterviewStatusInProgress InterviewStatus = "in_progress"
	InterviewStatusFinished   InterviewStatus = "finished"
	InterviewStatusScored     InterviewStatus = "scored"
)

// InterviewSession сессия интервью кандидата
type InterviewSession struct {
	BaseModel
	CandidateName  string          `gorm:"type:varchar(255)" comment:"Имя кандидата"`
	CandidateEmail string          `gorm:"type:varchar(255)" comment:"Email кандидата"`
	JobDescription string          `comment:"Описание вакансии"`
	ResumeFileName string          `gorm:"type:varchar(255)" comment:"Имя файла резюме"`
	ResumeObject   string          `gorm:"type:varchar(512)" comment:"Путь к файлу резюме в хранилище"`
	ResumeFallback bool            `comment:"Текст резюме заменён шаблоном"`
	Status         InterviewStatus `gorm:"type:varchar(32);index" comment:"Статус интервью"`
	QuestionsCount int             `comment:"Количество вопросов"`
	OverallScore   *int            `comment:"Общая оценка"`
	Note           string          `comment:"Пояснение о работе на моковых данных"`
}

// InterviewScore оценка интервью
type InterviewScore struct {
	BaseModel
	SessionID           string          `gorm:"type:varchar(36);uniqueIndex" comment:"Идентификатор сессии интервью"`
	OverallScore        int             `comment:"Общая оценка"`
	Categories          ScoreCategories `gorm:"type:jsonb" comment:"Оценки по категориям"`
	Summary             string          `comment:"Итог"`
	Strengths           pq.StringArray  `gorm:"type:text[]" comment:"Сильные стороны"`
	Improvements        pq.StringArray  `gorm:"type:text[]" comment:"Зоны роста"`
	AverageResponseTime float64         `comment:"Среднее время ответа, мс"`
	Note                string          `comment:"Пояснение о работе на моковых данных"`
}

type ScoreCategories []ScoreCategory

type ScoreCategory struct {
	Name        string `json:"name"`
	Score       int    `json:"score"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

func (j ScoreCategories) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *ScoreCategories) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("неподдерживаемый тип %T", value)
	}
	return json.Unmarshal(data, j)
}
