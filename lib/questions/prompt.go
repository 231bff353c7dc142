package questions

import (
	"fmt"

	"interview-sim-backend/lib/utils/helpers"
)

// резюме длиннее обрезается, чтобы промпт укладывался в контекст модели
const maxResumeChars = 8000

const questionsPattern = `
I need to generate personalized interview questions based on a job description and a candidate's CV.

Job Description:
%s

Candidate CV:
%s

Create %d-%d specific interview questions that:
1. Evaluate the candidate's qualifications for this specific job
2. Address potential gaps between the job requirements and candidate's experience
3. Include a mix of technical, behavioral, and situational questions
4. Are personalized to the candidate's background

Format the questions as a JSON array of objects with the following properties:
- id: A unique identifier (number)
- question: The interview question text
- category: The category of question (technical, behavioral, situational)
- relevance: A brief note explaining why this question is relevant

Only return the JSON array, nothing else.
`

func buildPrompt(jobDescription, resumeText string) string {
	return fmt.Sprintf(questionsPattern, jobDescription, truncate(resumeText, maxResumeChars), MinQuestions, MaxQuestions)
}

func truncate(text string, limit int) string {
	short := helpers.Truncate(text, limit)
	if short == text {
		return text
	}
	return short + "... (truncated)"
}
