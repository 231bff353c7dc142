package apiv1

import (
	"io"

	"interview-sim-backend/config"
	"interview-sim-backend/controllers"
	"interview-sim-backend/lib/extractor"
	interviewsession "interview-sim-backend/lib/interview-session"
	"interview-sim-backend/lib/scorer"
	apimodels "interview-sim-backend/models/api"
	interviewapimodels "interview-sim-backend/models/api/interview"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type interviewController struct {
	controllers.BaseAPIController
}

func InitInterviewRouters(app *fiber.App) {
	controller := interviewController{}
	app.Route("interview", func(interviewRoute fiber.Router) {
		interviewRoute.Post("generate_questions", controller.GenerateQuestions)
		interviewRoute.Post("score", controller.Score)
	})
	app.Post("extract", controller.Extract)
}

// @Summary Загрузка вакансии и резюме, генерация вопросов
// @Tags Интервью
// @Description Создает сессию интервью. В ответе токен сессии для остальных запросов
// @Param   jobDescription		formData	string 	true 	"Описание вакансии"
// @Param   candidateName		formData	string 	false 	"Имя кандидата"
// @Param   candidateEmail		formData	string 	false 	"Email кандидата"
// @Param   cvFile				formData	file 	true 	"Резюме (pdf, docx, txt)"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.GenerateQuestionsResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/generate_questions [post]
func (c *interviewController) GenerateQuestions(ctx *fiber.Ctx) error {
	req := interviewapimodels.GenerateQuestionsRequest{
		JobDescription: ctx.FormValue("jobDescription"),
		CandidateName:  ctx.FormValue("candidateName"),
		CandidateEmail: ctx.FormValue("candidateEmail"),
	}
	fileName, content, err := c.readFormFile(ctx, "cvFile")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	req.FileName = fileName
	req.FileContent = content
	if err = req.Validate(config.Conf.Interview.MinJobDescriptionLength); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := interviewsession.Instance.Create(ctx.UserContext(), req)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания сессии интервью")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Оценка интервью
// @Tags Интервью
// @Description Всегда отвечает 200. При ошибке ИИ или некорректном запросе возвращается шаблонная оценка с пояснением в note
// @Param   body body	interviewapimodels.ScoreRequest	true	"Транскрипт и время ответов"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.InterviewScore}
// @router /api/v1/interview/score [post]
func (c *interviewController) Score(ctx *fiber.Ctx) error {
	var req interviewapimodels.ScoreRequest
	if err := ctx.BodyParser(&req); err != nil {
		c.GetLogger(ctx).WithError(err).Warn("некорректный запрос на оценку интервью")
		return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(scorer.RequestErrorScore(err)))
	}
	score := scorer.Instance.Score(ctx.UserContext(), "", req)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(score))
}

// @Summary Извлечение текста из резюме
// @Tags Интервью
// @Param   file		formData	file 	true 	"Резюме (pdf, docx, txt)"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.ExtractResponse}
// @Failure 400 {object} apimodels.Response
// @router /api/v1/extract [post]
func (c *interviewController) Extract(ctx *fiber.Ctx) error {
	fileName, content, err := c.readFormFile(ctx, "file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if fileName == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не передан файл"))
	}
	if !extractor.AllowedExtension(fileName) {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(interviewapimodels.ErrUnsupportedFile.Error()))
	}
	result := extractor.Instance.Extract(fileName, content)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(interviewapimodels.ExtractResponse{
		Text:     result.Text,
		Fallback: result.Fallback,
		Reason:   result.Reason,
	}))
}

// readFormFile отсутствие файла не ошибка, пустое имя проверяется валидацией запроса
func (c *interviewController) readFormFile(ctx *fiber.Ctx, field string) (string, []byte, error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		return "", nil, nil
	}
	file, err := header.Open()
	if err != nil {
		c.GetLogger(ctx).WithError(err).Error("ошибка чтения загруженного файла")
		return "", nil, errors.New("не удалось прочитать файл")
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		c.GetLogger(ctx).WithError(err).Error("ошибка чтения загруженного файла")
		return "", nil, errors.New("не удалось прочитать файл")
	}
	return header.Filename, content, nil
}
