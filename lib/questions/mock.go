package questions

import interviewapimodels "interview-sim-backend/models/api/interview"

// MockQuestions шаблонный набор вопросов на случай недоступности ИИ
func MockQuestions() []interviewapimodels.Question {
	return []interviewapimodels.Question{
		{
			ID:        1,
			Question:  "Tell me about your experience with web development frameworks and technologies.",
			Category:  interviewapimodels.CategoryTechnical,
			Relevance: "Understanding the candidate's technical background",
		},
		{
			ID:        2,
			Question:  "How have you integrated APIs or external services in your previous projects?",
			Category:  interviewapimodels.CategoryTechnical,
			Relevance: "Assessing experience with system integration",
		},
		{
			ID:        3,
			Question:  "Describe a challenging project and how you overcame obstacles during development.",
			Category:  interviewapimodels.CategoryBehavioral,
			Relevance: "Evaluating problem-solving abilities and perseverance",
		},
		{
			ID:        4,
			Question:  "How do you prioritize tasks when working under tight deadlines?",
			Category:  interviewapimodels.CategorySituational,
			Relevance: "Assessing time management and work prioritization skills",
		},
		{
			ID:        5,
			Question:  "How do you stay updated with the latest trends and technologies in your field?",
			Category:  interviewapimodels.CategoryBehavioral,
			Relevance: "Gauging commitment to continuous learning and improvement",
		},
	}
}

const (
	NoteMockMode      = "Using mock data - AI provider not configured"
	NoteProviderError = "Using mock data due to AI provider error: "
	NoteTimeout       = "Request timed out. Using mock data to continue."
	NoteParseError    = "Using mock data - AI response could not be parsed"
)
