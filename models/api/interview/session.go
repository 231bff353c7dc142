package interviewapimodels

// InterviewData результат шага загрузки, ключ interviewData
type InterviewData struct {
	JobDescription string     `json:"jobDescription"`
	CandidateName  string     `json:"candidateName"`
	Questions      []Question `json:"questions"`
	CVContent      string     `json:"cvContent"`
}

// InterviewResults результат интервью, ключ interviewResults
type InterviewResults struct {
	Messages         []ChatMessage `json:"messages"`
	ResponseTimeData map[int]int64 `json:"responseTimeData"` // индекс вопроса -> мс
	JobDescription   string        `json:"jobDescription"`
	CVContent        string        `json:"cvContent"`
}

func (r InterviewResults) AverageResponseTimeMs() float64 {
	if len(r.ResponseTimeData) == 0 {
		return 0
	}
	var sum int64
	for _, ms := range r.ResponseTimeData {
		sum += ms
	}
	return float64(sum) / float64(len(r.ResponseTimeData))
}

type EmailReportRequest struct {
	Email string `json:"email"` // если указан, должен совпадать с email кандидата из сессии
}
