package scorer

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"interview-sim-backend/lib/utils/helpers"
	interviewapimodels "interview-sim-backend/models/api/interview"
)

const maxResumeChars = 1500

const notProvided = "Not provided"

const scorePattern = `
You are an expert interviewer and recruiter. Evaluate the following interview based on the job description, candidate's CV, and the interview transcript.

Job Description:
%s

Candidate CV Summary:
%s

Interview Transcript:
%s

Response Time Data:
Average response time: %d seconds
%s

Please provide a comprehensive evaluation of the candidate's performance based on:
1. Technical Acumen: How well they demonstrated technical skills required for the role
2. Communication Skills: Clarity and effectiveness in conveying information
3. Problem-Solving & Adaptability: How they approached questions and provided solutions
4. Cultural Fit & Soft Skills: Interpersonal qualities relevant to the role
5. Response Timing: Considering their average response time of %d seconds (faster, high-quality responses should be scored higher)

Return your evaluation as a JSON object with the following structure:
{
  "overallScore": number (0-100),
  "categories": [
    {
      "name": "Technical Acumen",
      "score": number (0-100),
      "description": "Brief evaluation of this aspect",
      "severity": "good" (score >= 80) or "warning" (score >= 60) or "poor"
    }
  ],
  "summary": "A concise paragraph summarizing overall performance",
  "strengths": ["Strength 1", "Strength 2", "Strength 3"],
  "improvements": ["Area for improvement 1", "Area for improvement 2", "Area for improvement 3"],
  "averageResponseTime": number (in milliseconds, use the provided value)
}
Include all five categories in the order listed above.

Only return the JSON object, nothing else.
`

func buildPrompt(req interviewapimodels.ScoreRequest) string {
	avgSeconds := averageSeconds(req.AverageResponseTimeMs)
	return fmt.Sprintf(scorePattern,
		orNotProvided(req.JobDescription),
		orNotProvided(truncateResume(req.CVContent)),
		orNotProvided(req.Interview),
		avgSeconds,
		formatResponseTimes(req.ResponseTimeData),
		avgSeconds,
	)
}

func orNotProvided(text string) string {
	if strings.TrimSpace(text) == "" {
		return notProvided
	}
	return text
}

func truncateResume(text string) string {
	short := helpers.Truncate(text, maxResumeChars)
	if short == text {
		return text
	}
	return short + "... (truncated)"
}

// formatResponseTimes "Question N: S seconds" по порядку вопросов
func formatResponseTimes(data map[int]float64) string {
	if len(data) == 0 {
		return "No detailed response time data available"
	}
	indexes := make([]int, 0, len(data))
	for idx := range data {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)
	lines := make([]string, 0, len(indexes))
	for _, idx := range indexes {
		lines = append(lines, fmt.Sprintf("Question %d: %d seconds", idx+1, int(math.Round(data[idx]/1000))))
	}
	return strings.Join(lines, "\n")
}
