package ws

import (
	"context"

	"interview-sim-backend/lib/interview"
	wsclient "interview-sim-backend/lib/ws/client"
	connectionhub "interview-sim-backend/lib/ws/hub/connection-hub"
	"interview-sim-backend/middleware"
	interviewapimodels "interview-sim-backend/models/api/interview"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const sessionLocalsKey = "sessionID"

func InitWs(app *fiber.App) {
	app.Use("interview", middleware.SessionRequired(), func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		ctx.Locals(sessionLocalsKey, middleware.GetSessionID(ctx))
		return ctx.Next()
	})
	app.Get("interview", websocket.New(interviewHandler))
}

// @Summary Чат интервью
// @Tags Websocket
// @Description Клиент отправляет {type: start|answer|finish, content}, сервер отвечает {type: message|finished|error}
// @Param   token		query		string		true		"Токен сессии интервью"
// @Success 200 {object} interviewapimodels.WsServerMessage
// @Failure 401
// @Failure 426
// @router /ws/interview [get]
func interviewHandler(c *websocket.Conn) {
	sessionID, _ := c.Locals(sessionLocalsKey).(string)
	if connectionhub.Instance.IsConnected(sessionID) {
		log.WithField("session_id", sessionID).Info("переподключение к интервью, предыдущее соединение закрывается")
	}
	connectionhub.Instance.AddClient(sessionID, c)
	defer connectionhub.Instance.DeleteClient(sessionID, c)

	send := func(msg interviewapimodels.WsServerMessage) {
		connectionhub.Instance.SendMessage(sessionID, msg)
	}
	client := wsclient.NewClient(sessionID, c, interview.Instance, send)
	client.Replay()
	client.Dispatch(context.Background())
}
