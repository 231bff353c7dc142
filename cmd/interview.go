package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"interview-sim-backend/config"
	"interview-sim-backend/initializers"
	pdfexport "interview-sim-backend/lib/export/pdf"
	xlsexport "interview-sim-backend/lib/export/xls"
	"interview-sim-backend/lib/interview"
	interviewsession "interview-sim-backend/lib/interview-session"
	"interview-sim-backend/lib/results"
	sessionstatestore "interview-sim-backend/lib/session-state/store"
	interviewapimodels "interview-sim-backend/models/api/interview"

	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const finishCommand = "/finish"

var interviewFlags struct {
	jobFile    string
	cvFile     string
	name       string
	email      string
	reportFile string
}

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run an interview in the terminal",
	Long:  "Generates questions for the job description and CV, runs the interview in the terminal and prints the score. Type " + finishCommand + " to end early.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runInterview(cmd.Context())
	},
}

func init() {
	interviewCmd.Flags().StringVar(&interviewFlags.jobFile, "job", "", "job description text file")
	interviewCmd.Flags().StringVar(&interviewFlags.cvFile, "cv", "", "CV file (pdf, docx, txt)")
	interviewCmd.Flags().StringVar(&interviewFlags.name, "name", "", "candidate name")
	interviewCmd.Flags().StringVar(&interviewFlags.email, "email", "", "candidate email")
	interviewCmd.Flags().StringVar(&interviewFlags.reportFile, "report", "", "save score report to file (.pdf or .xlsx)")
	_ = interviewCmd.MarkFlagRequired("job")
	_ = interviewCmd.MarkFlagRequired("cv")
}

func runInterview(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	initializers.InitCliLogger()
	config.InitConfig()

	jobDescription, err := os.ReadFile(interviewFlags.jobFile)
	if err != nil {
		return errors.Wrap(err, "ошибка чтения описания вакансии")
	}
	cvContent, err := os.ReadFile(interviewFlags.cvFile)
	if err != nil {
		return errors.Wrap(err, "ошибка чтения резюме")
	}
	req := interviewapimodels.GenerateQuestionsRequest{
		JobDescription: string(jobDescription),
		CandidateName:  interviewFlags.name,
		CandidateEmail: interviewFlags.email,
		FileName:       filepath.Base(interviewFlags.cvFile),
		FileContent:    cvContent,
	}
	if err = req.Validate(config.Conf.Interview.MinJobDescriptionLength); err != nil {
		return err
	}

	initializers.InitInterviewServices(initializers.InitAI(ctx), sessionstatestore.NewMemory(), nil)
	xlsexport.NewHandler()

	created, err := interviewsession.Instance.Create(ctx, req)
	if err != nil {
		return err
	}
	if created.Note != "" {
		fmt.Printf("(%s)\n", created.Note)
	}
	sessionID := created.SessionID

	if err = runDialogue(ctx, sessionID); err != nil {
		return err
	}

	fmt.Println("\nScoring the interview...")
	score, err := results.Instance.ScoreSession(ctx, sessionID)
	if err != nil {
		return err
	}
	printScore(score)

	if interviewFlags.reportFile != "" {
		return saveReport(sessionID, score, interviewFlags.reportFile)
	}
	return nil
}

func runDialogue(ctx context.Context, sessionID string) error {
	emit := func(msg interviewapimodels.ChatMessage) {
		if msg.Role == interviewapimodels.RoleAssistant {
			fmt.Printf("\nInterviewer: %s\n", msg.Content)
		}
	}
	if err := interview.Instance.Start(ctx, sessionID, emit); err != nil {
		return err
	}
	for {
		state, err := interview.Instance.State(sessionID)
		if err != nil {
			return err
		}
		if state.State == string(interview.StateFinished) {
			return nil
		}
		prompt := promptui.Prompt{
			Label: fmt.Sprintf("Answer %d/%d", state.CurrentQuestion+1, state.TotalQuestions),
			Validate: func(input string) error {
				if strings.TrimSpace(input) == "" {
					return interview.ErrEmptyAnswer
				}
				return nil
			},
		}
		answer, err := prompt.Run()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || strings.TrimSpace(answer) == finishCommand {
			if err = interview.Instance.Finish(ctx, sessionID, emit); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return errors.Wrap(err, "ошибка чтения ответа")
		}
		if err = interview.Instance.Answer(ctx, sessionID, answer, emit); err != nil {
			return err
		}
	}
}

func printScore(score interviewapimodels.InterviewScore) {
	fmt.Printf("\nOverall score: %d/100\n\n", score.OverallScore)
	for _, category := range score.Categories {
		fmt.Printf("  %-32s %3d  [%s]\n", category.Name, category.Score, category.Severity)
		fmt.Printf("    %s\n", category.Description)
	}
	fmt.Printf("\nSummary: %s\n", score.Summary)
	printList("Strengths", score.Strengths)
	printList("Areas for improvement", score.Improvements)
	fmt.Printf("\nAverage response time: %.1f s\n", score.AverageResponseTime/1000)
	if score.Note != "" {
		fmt.Printf("\n(%s)\n", score.Note)
	}
}

func printList(title string, items []string) {
	fmt.Printf("\n%s:\n", title)
	for _, item := range items {
		fmt.Printf("  - %s\n", item)
	}
}

func saveReport(sessionID string, score interviewapimodels.InterviewScore, fileName string) error {
	report, err := interviewsession.Instance.Report(sessionID, &score)
	if err != nil {
		return err
	}
	var data []byte
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		data, err = pdfexport.GenerateScoreReport(*report)
	case ".xlsx":
		buf, xlsErr := xlsexport.Instance.ExportScore(*report)
		if xlsErr == nil {
			data = buf.Bytes()
		}
		err = xlsErr
	default:
		return errors.Errorf("неподдерживаемый формат отчёта: %s", fileName)
	}
	if err != nil {
		return err
	}
	if err = os.WriteFile(fileName, data, 0o644); err != nil {
		return errors.Wrap(err, "ошибка сохранения отчёта")
	}
	fmt.Printf("Report saved to %s\n", fileName)
	return nil
}
