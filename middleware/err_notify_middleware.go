package middleware

import (
	"encoding/json"
	"net/http"

	botnotify "interview-sim-backend/lib/utils/bot-notify"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// ErrNotify отправляет в telegram сведения об ответах 5xx
func ErrNotify() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		statusCode := c.Response().StatusCode()
		if statusCode < http.StatusInternalServerError {
			return err
		}
		var data struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		}
		if unmErr := json.Unmarshal(c.Response().Body(), &data); unmErr != nil {
			log.WithError(unmErr).Debug("ответ не в формате api")
		}
		path := c.OriginalURL()
		if r := c.Route(); r != nil {
			path = r.Path
		}
		msg := data.Message
		if msg == "" {
			msg = string(c.Response().Body())
		}
		method := c.Method()
		go func() {
			if notifyErr := botnotify.Instance.NotifyError(statusCode, method, path, msg); notifyErr != nil {
				log.WithError(notifyErr).Warn("ошибка отправки уведомления об ошибке")
			}
		}()
		return err
	}
}
