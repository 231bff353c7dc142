package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"interview-sim-backend/config"
	"interview-sim-backend/db"
	"interview-sim-backend/initializers"
	interviewsession "interview-sim-backend/lib/interview-session"
	interviewsessionstore "interview-sim-backend/lib/interview-session/store"
	apimodels "interview-sim-backend/models/api"

	"github.com/spf13/cobra"
)

var sessionsFlags apimodels.Pagination

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List interview sessions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		initializers.InitCliLogger()
		config.InitConfig()
		settings := initializers.DBSettings()
		settings.Migrate = false
		if err := db.Connect(settings); err != nil {
			return err
		}
		defer db.Close()
		interviewsession.NewHandler(interviewsessionstore.NewInstance(db.DB), interviewsession.Settings{})

		list, rowCount, err := interviewsession.Instance.List(sessionsFlags)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tCANDIDATE\tSTATUS\tSCORE")
		for _, rec := range list {
			score := "-"
			if rec.OverallScore != nil {
				score = fmt.Sprint(*rec.OverallScore)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", rec.ID, rec.CreatedAt.Format("2006-01-02 15:04"), rec.CandidateName, rec.Status, score)
		}
		if err = w.Flush(); err != nil {
			return err
		}
		page, limit := sessionsFlags.GetPage()
		fmt.Printf("\npage %d, %d per page, total %d\n", page, limit, rowCount)
		return nil
	},
}

func init() {
	sessionsCmd.Flags().IntVar(&sessionsFlags.Page, "page", 1, "page number")
	sessionsCmd.Flags().IntVar(&sessionsFlags.Limit, "limit", 20, "sessions per page")
}
