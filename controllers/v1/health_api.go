package apiv1

import (
	"interview-sim-backend/controllers"
	"interview-sim-backend/db"
	"interview-sim-backend/lib/utils/helpers"
	apimodels "interview-sim-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type healthController struct {
	controllers.BaseAPIController
}

func InitHealthRouters(app *fiber.App) {
	controller := healthController{}
	app.Get("health", controller.Health)
}

// @Summary Проверка работоспособности
// @Tags Сервис
// @Success 200 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/health [get]
func (c *healthController) Health(ctx *fiber.Ctx) error {
	ctx.Set(helpers.HeaderLogIgnore, "true")
	if err := db.PingDB(); err != nil {
		c.GetLogger(ctx).WithError(err).Error("БД недоступна")
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError("БД недоступна"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse("ok"))
}
