package apiv1

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"interview-sim-backend/controllers"
	pdfexport "interview-sim-backend/lib/export/pdf"
	xlsexport "interview-sim-backend/lib/export/xls"
	"interview-sim-backend/lib/interview"
	interviewsession "interview-sim-backend/lib/interview-session"
	"interview-sim-backend/lib/results"
	sessionstate "interview-sim-backend/lib/session-state"
	"interview-sim-backend/lib/smtp"
	"interview-sim-backend/lib/utils/helpers"
	"interview-sim-backend/middleware"
	apimodels "interview-sim-backend/models/api"
	interviewapimodels "interview-sim-backend/models/api/interview"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/pkg/errors"
)

type sessionController struct {
	controllers.BaseAPIController
}

func InitSessionRouters(app *fiber.App) {
	controller := sessionController{}
	app.Route("session", func(sessionRoute fiber.Router) {
		sessionRoute.Use(middleware.SessionRequired())

		sessionRoute.Get("", controller.Get)
		sessionRoute.Get("data", controller.GetData)
		sessionRoute.Get("resume", controller.GetResume)
		sessionRoute.Post("start", controller.Start)
		sessionRoute.Post("answer", controller.Answer)
		sessionRoute.Post("finish", controller.Finish)
		sessionRoute.Get("state", controller.GetState)
		sessionRoute.Post("score", controller.ScoreSession)
		sessionRoute.Get("score", controller.GetScore)

		sessionRoute.Route("report", func(reportRoute fiber.Router) {
			reportRoute.Get("xlsx", controller.ReportXlsx)
			reportRoute.Get("pdf", controller.ReportPdf)
			reportRoute.Post("email", reportEmailLimiter(), controller.ReportEmail)
		})
	})
}

// @Summary Сессия интервью
// @Tags Сессия интервью
// @Param   Authorization		header		string	true	"Session token"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.SessionView}
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/session [get]
func (c *sessionController) Get(ctx *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(ctx)
	view, err := interviewsession.Instance.Get(sessionID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения сессии интервью")
	}
	if view == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("сессия интервью не найдена"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Данные интервью (вакансия, вопросы, текст резюме)
// @Tags Сессия интервью
// @Param   Authorization		header		string	true	"Session token"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.InterviewData}
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/session/data [get]
func (c *sessionController) GetData(ctx *fiber.Ctx) error {
	data, err := sessionstate.Instance.LoadInterviewData(middleware.GetSessionID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения данных интервью")
	}
	if data == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(sessionstate.ErrNoInterviewData.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(data))
}

// @Summary Исходный файл резюме
// @Tags Сессия интервью
// @Param   Authorization		header		string	true	"Session token"
// @Success 200 {file} file
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/session/resume [get]
func (c *sessionController) GetResume(ctx *fiber.Ctx) error {
	fileName, data, err := interviewsession.Instance.Resume(ctx.UserContext(), middleware.GetSessionID(ctx))
	if err != nil {
		if errors.Is(err, interviewsession.ErrResumeNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения файла резюме")
	}
	ctx.Set(helpers.HeaderLogIgnore, "true")
	ctx.Attachment(fileName)
	return ctx.Send(data)
}

// @Summary Начать интервью
// @Tags Сессия интервью
// @Description Возвращает приветствие и первый вопрос
// @Param   Authorization		header		string	true	"Session token"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.SessionActionResponse}
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/session/start [post]
func (c *sessionController) Start(ctx *fiber.Ctx) error {
	return c.runAction(ctx, func(sessionID string, emit interview.Emitter) error {
		return interview.Instance.Start(ctx.UserContext(), sessionID, emit)
	})
}

// @Summary Ответ на текущий вопрос
// @Tags Сессия интервью
// @Description Возвращает ответ кандидата и следующий вопрос, либо завершение интервью
// @Param   Authorization		header		string	true	"Session token"
// @Param   body body	interviewapimodels.AnswerRequest	true	"Ответ"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.SessionActionResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/session/answer [post]
func (c *sessionController) Answer(ctx *fiber.Ctx) error {
	var payload interviewapimodels.AnswerRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return c.runAction(ctx, func(sessionID string, emit interview.Emitter) error {
		return interview.Instance.Answer(ctx.UserContext(), sessionID, payload.Content, emit)
	})
}

// @Summary Досрочное завершение интервью
// @Tags Сессия интервью
// @Param   Authorization		header		string	true	"Session token"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.SessionActionResponse}
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/session/finish [post]
func (c *sessionController) Finish(ctx *fiber.Ctx) error {
	return c.runAction(ctx, func(sessionID string, emit interview.Emitter) error {
		return interview.Instance.Finish(ctx.UserContext(), sessionID, emit)
	})
}

// @Summary Состояние интервью
// @Tags Сессия интервью
// @Param   Authorization		header		string	true	"Session token"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.SessionStateResponse}
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/session/state [get]
func (c *sessionController) GetState(ctx *fiber.Ctx) error {
	state, err := interview.Instance.State(middleware.GetSessionID(ctx))
	if err != nil {
		return c.sendSessionError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(state))
}

// @Summary Оценка завершённого интервью
// @Tags Сессия интервью
// @Description При ошибке ИИ возвращается шаблонная оценка с пояснением в note
// @Param   Authorization		header		string	true	"Session token"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.InterviewScore}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/session/score [post]
func (c *sessionController) ScoreSession(ctx *fiber.Ctx) error {
	score, err := results.Instance.ScoreSession(ctx.UserContext(), middleware.GetSessionID(ctx))
	if err != nil {
		return c.sendSessionError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(score))
}

// @Summary Сохранённая оценка интервью
// @Tags Сессия интервью
// @Param   Authorization		header		string	true	"Session token"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.InterviewScore}
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/session/score [get]
func (c *sessionController) GetScore(ctx *fiber.Ctx) error {
	score, err := results.Instance.GetScore(middleware.GetSessionID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения оценки интервью")
	}
	if score == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(errScoreNotFound.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(score))
}

// @Summary Выгрузка оценки в Excel
// @Tags Сессия интервью
// @Param   Authorization		header		string	true	"Session token"
// @Success 200 {file} file
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/session/report/xlsx [get]
func (c *sessionController) ReportXlsx(ctx *fiber.Ctx) error {
	report, err := c.getReport(ctx)
	if err != nil {
		return c.sendSessionError(ctx, err)
	}
	data, err := xlsexport.Instance.ExportScore(*report)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки оценки в Excel")
	}
	ctx.Set(helpers.HeaderLogIgnore, "true")
	ctx.Set("Content-Type", "application/vnd.ms-excel")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+reportFileName(report.SessionID, "xlsx")+`"`)
	return ctx.SendStream(data)
}

// @Summary Выгрузка оценки в PDF
// @Tags Сессия интервью
// @Param   Authorization		header		string	true	"Session token"
// @Success 200 {file} file
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/session/report/pdf [get]
func (c *sessionController) ReportPdf(ctx *fiber.Ctx) error {
	report, err := c.getReport(ctx)
	if err != nil {
		return c.sendSessionError(ctx, err)
	}
	data, err := pdfexport.GenerateScoreReport(*report)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки оценки в PDF")
	}
	ctx.Set(helpers.HeaderLogIgnore, "true")
	ctx.Set("Content-Type", "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+reportFileName(report.SessionID, "pdf")+`"`)
	return ctx.SendStream(bytes.NewReader(data))
}

// @Summary Отправка отчёта об оценке на почту
// @Tags Сессия интервью
// @Description Отчёт отправляется только на email кандидата из сессии, не чаще 3 раз в час
// @Param   Authorization		header		string	true	"Session token"
// @Param   body body	interviewapimodels.EmailReportRequest	false	"Адрес получателя"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 429
// @Failure 500 {object} apimodels.Response
// @router /api/v1/session/report/email [post]
func (c *sessionController) ReportEmail(ctx *fiber.Ctx) error {
	var payload interviewapimodels.EmailReportRequest
	if len(ctx.Body()) != 0 {
		if err := c.BodyParser(ctx, &payload); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}
	report, err := c.getReport(ctx)
	if err != nil {
		return c.sendSessionError(ctx, err)
	}
	to, err := reportRecipient(payload.Email, report.CandidateEmail)
	if err != nil {
		c.GetLogger(ctx).WithError(err).Warn("отклонена отправка отчёта")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	xlsData, err := xlsexport.Instance.ExportScore(*report)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования отчёта")
	}
	pdfData, err := pdfexport.GenerateScoreReport(*report)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования отчёта")
	}
	body := fmt.Sprintf("Interview score: %d/100\n\n%s", report.Score.OverallScore, report.Score.Summary)
	err = smtp.Instance.SendReport(to, "Interview score report", body,
		smtp.Attachment{FileName: reportFileName(report.SessionID, "xlsx"), Body: xlsData.Bytes()},
		smtp.Attachment{FileName: reportFileName(report.SessionID, "pdf"), Body: pdfData},
	)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отправки отчёта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

var errScoreNotFound = errors.New("интервью ещё не оценено")

const reportEmailLimit = 3

var (
	errNoRecipient         = errors.New("не указан email получателя")
	errRecipientNotAllowed = errors.New("отчёт можно отправить только на email кандидата")
)

// reportRecipient отчёт уходит только на адрес кандидата, сохранённый при создании сессии
func reportRecipient(requested, candidateEmail string) (string, error) {
	candidateEmail = strings.TrimSpace(candidateEmail)
	if candidateEmail == "" {
		return "", errNoRecipient
	}
	requested = strings.TrimSpace(requested)
	if requested != "" && !strings.EqualFold(requested, candidateEmail) {
		return "", errRecipientNotAllowed
	}
	return candidateEmail, nil
}

// reportEmailLimiter ограничение отправки писем в рамках одной сессии
func reportEmailLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        reportEmailLimit,
		Expiration: time.Hour,
		KeyGenerator: func(ctx *fiber.Ctx) string {
			return "report-email:" + middleware.GetSessionID(ctx)
		},
		LimitReached: func(ctx *fiber.Ctx) error {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(apimodels.NewError("превышен лимит отправки отчётов, попробуйте позже"))
		},
	})
}

// runAction собирает сообщения действия и отвечает вместе с новым состоянием интервью
func (c *sessionController) runAction(ctx *fiber.Ctx, action func(sessionID string, emit interview.Emitter) error) error {
	sessionID := middleware.GetSessionID(ctx)
	messages := []interviewapimodels.ChatMessage{}
	emit := func(msg interviewapimodels.ChatMessage) {
		messages = append(messages, msg)
	}
	if err := action(sessionID, emit); err != nil {
		return c.sendSessionError(ctx, err)
	}
	state, err := interview.Instance.State(sessionID)
	if err != nil {
		return c.sendSessionError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(interviewapimodels.SessionActionResponse{
		Messages: messages,
		State:    state,
	}))
}

func (c *sessionController) getReport(ctx *fiber.Ctx) (*interviewapimodels.ScoreReport, error) {
	sessionID := middleware.GetSessionID(ctx)
	score, err := results.Instance.GetScore(sessionID)
	if err != nil {
		return nil, err
	}
	if score == nil {
		return nil, errScoreNotFound
	}
	report, err := interviewsession.Instance.Report(sessionID, score)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, errScoreNotFound
	}
	return report, nil
}

// sendSessionError ошибки хода интервью: нет данных 404, неверный порядок действий 409
func (c *sessionController) sendSessionError(ctx *fiber.Ctx, err error) error {
	status := sessionErrorStatus(err)
	if status == fiber.StatusInternalServerError {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обработки сессии интервью")
	}
	c.GetLogger(ctx).WithError(err).Warn("ошибка хода интервью")
	return ctx.Status(status).JSON(apimodels.NewError(err.Error()))
}

func sessionErrorStatus(err error) int {
	switch {
	case errors.Is(err, sessionstate.ErrNoInterviewData), errors.Is(err, errScoreNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, sessionstate.ErrInvalidInterviewData), errors.Is(err, interview.ErrEmptyAnswer):
		return fiber.StatusBadRequest
	case errors.Is(err, interview.ErrNotStarted),
		errors.Is(err, interview.ErrAlreadyStarted),
		errors.Is(err, interview.ErrFinished),
		errors.Is(err, interview.ErrNoPendingQuestion),
		errors.Is(err, interview.ErrNoQuestions),
		errors.Is(err, interview.ErrBusy):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func reportFileName(sessionID, ext string) string {
	return fmt.Sprintf("interview-score-%s.%s", sessionID, ext)
}
