package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"interview-sim-backend/config"
	"interview-sim-backend/db"
	"interview-sim-backend/initializers"
	ailogstore "interview-sim-backend/lib/gpt/store"
	"interview-sim-backend/lib/utils/helpers"
	dbmodels "interview-sim-backend/models/db"

	"github.com/spf13/cobra"
)

var aiLogCmd = &cobra.Command{
	Use:   "ai-log <session_id>",
	Short: "Show AI requests made for an interview session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		initializers.InitCliLogger()
		config.InitConfig()
		settings := initializers.DBSettings()
		settings.Migrate = false
		if err := db.Connect(settings); err != nil {
			return err
		}
		defer db.Close()

		list, err := ailogstore.NewInstance(db.DB).ListBySession(args[0])
		if err != nil {
			return err
		}
		return printAiLogs(os.Stdout, list)
	},
}

const aiLogAnswerWidth = 60

func printAiLogs(out io.Writer, list []dbmodels.AiLog) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(out, "no AI requests for this session")
		return err
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTYPE\tAI\tDURATION\tRESULT")
	for _, rec := range list {
		result := helpers.Truncate(oneLine(rec.Answer), aiLogAnswerWidth)
		if rec.Error != "" {
			result = "error: " + helpers.Truncate(oneLine(rec.Error), aiLogAnswerWidth)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fs\t%s\n",
			rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.ReqestType, rec.AiName, float64(rec.DurationMs)/1000, result)
	}
	return w.Flush()
}

func oneLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
