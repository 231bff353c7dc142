package xlsexport

import (
	"testing"

	"interview-sim-backend/lib/scorer"
	interviewapimodels "interview-sim-backend/models/api/interview"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportScore(t *testing.T) {
	report := interviewapimodels.ScoreReport{
		CandidateName:  "Jane Doe",
		CandidateEmail: "jane@example.com",
		Score:          scorer.MockScore(4000, scorer.NoteMockMode),
	}
	buf, err := impl{}.ExportScore(report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	sheet := "Interview Score"
	value, err := f.GetCellValue(sheet, "B1")
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", value)

	value, err = f.GetCellValue(sheet, "B3")
	require.NoError(t, err)
	require.Equal(t, "84", value)

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	found := false
	for _, row := range rows {
		if len(row) > 0 && row[0] == "Response Timing" {
			found = true
			require.Equal(t, "75", row[1])
			require.Equal(t, "warning", row[2])
		}
	}
	require.True(t, found)
}
