package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	dbmodels "interview-sim-backend/models/db"

	"github.com/stretchr/testify/require"
)

func TestPrintAiLogs(t *testing.T) {
	t.Run(`empty list check`, func(t *testing.T) {
		out := new(bytes.Buffer)
		require.NoError(t, printAiLogs(out, nil))
		require.Equal(t, "no AI requests for this session\n", out.String())
	})

	t.Run(`answers and errors check`, func(t *testing.T) {
		at := time.Date(2026, 10, 18, 12, 30, 0, 0, time.UTC)
		out := new(bytes.Buffer)
		err := printAiLogs(out, []dbmodels.AiLog{
			{
				BaseModel:  dbmodels.BaseModel{CreatedAt: at},
				Answer:     "[\n  {\"id\": 1}\n]",
				DurationMs: 2500,
				ReqestType: dbmodels.AiGenerateQuestionsType,
				AiName:     dbmodels.AiGeminiType,
			},
			{
				BaseModel:  dbmodels.BaseModel{CreatedAt: at.Add(time.Minute)},
				Error:      "quota exceeded",
				DurationMs: 120,
				ReqestType: dbmodels.AiScoreInterviewType,
				AiName:     dbmodels.AiGeminiType,
			},
		})
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 3)
		require.True(t, strings.HasPrefix(lines[0], "TIME"))
		require.Contains(t, lines[1], "2026-10-18 12:30:00")
		require.Contains(t, lines[1], "GenerateQuestions")
		require.Contains(t, lines[1], "2.5s")
		require.Contains(t, lines[1], `[ {"id": 1} ]`)
		require.Contains(t, lines[2], "error: quota exceeded")
		require.Contains(t, lines[2], "0.1s")
	})
}
