package wsclient

import (
	"context"
	"encoding/json"

	"interview-sim-backend/lib/interview"
	interviewapimodels "interview-sim-backend/models/api/interview"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

// Sender доставка сообщений клиенту
type Sender func(msg interviewapimodels.WsServerMessage)

func NewClient(sessionID string, c *websocket.Conn, interviewProvider interview.Provider, send Sender) *WsClient {
	return &WsClient{
		conn:      c,
		sessionID: sessionID,
		interview: interviewProvider,
		send:      send,
	}
}

type WsClient struct {
	conn      *websocket.Conn
	sessionID string
	interview interview.Provider
	send      Sender
}

var closeCodes []int

func init() {
	for i := websocket.CloseNormalClosure; i <= websocket.CloseTLSHandshake; i++ {
		closeCodes = append(closeCodes, i)
	}
}

// Replay отправляет уже накопленный транскрипт после переподключения
func (c *WsClient) Replay() {
	state, err := c.interview.State(c.sessionID)
	if err != nil {
		c.sendError(err)
		return
	}
	for k := range state.Messages {
		c.send(interviewapimodels.WsServerMessage{Type: interviewapimodels.WsTypeMessage, Message: &state.Messages[k]})
	}
	if state.State == string(interview.StateFinished) {
		c.send(interviewapimodels.WsServerMessage{Type: interviewapimodels.WsTypeFinished, RedirectAfterMs: state.RedirectAfterMs})
	}
}

func (c *WsClient) Dispatch(ctx context.Context) {
	for {
		if c.conn == nil {
			return
		}
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, closeCodes...) {
				log.WithError(err).Error("ошибка получения сообщения")
			}
			break
		}
		c.Handle(ctx, data)
	}
}

// Handle обрабатывает одно сообщение клиента
func (c *WsClient) Handle(ctx context.Context, data []byte) {
	msg := interviewapimodels.WsClientMessage{}
	if err := json.Unmarshal(data, &msg); err != nil {
		log.WithError(err).WithField("session_id", c.sessionID).Warn("некорректное сообщение ws")
		c.send(interviewapimodels.WsServerMessage{Type: interviewapimodels.WsTypeError, Error: "некорректное сообщение"})
		return
	}
	emit := func(chatMsg interviewapimodels.ChatMessage) {
		c.send(interviewapimodels.WsServerMessage{Type: interviewapimodels.WsTypeMessage, Message: &chatMsg})
	}
	var err error
	switch msg.Type {
	case interviewapimodels.WsTypeStart:
		err = c.interview.Start(ctx, c.sessionID, emit)
	case interviewapimodels.WsTypeAnswer:
		err = c.interview.Answer(ctx, c.sessionID, msg.Content, emit)
	case interviewapimodels.WsTypeFinish:
		err = c.interview.Finish(ctx, c.sessionID, emit)
	default:
		c.send(interviewapimodels.WsServerMessage{Type: interviewapimodels.WsTypeError, Error: "неизвестный тип сообщения " + msg.Type})
		return
	}
	if err != nil {
		c.sendError(err)
		return
	}
	state, err := c.interview.State(c.sessionID)
	if err != nil {
		c.sendError(err)
		return
	}
	if state.State == string(interview.StateFinished) {
		c.send(interviewapimodels.WsServerMessage{Type: interviewapimodels.WsTypeFinished, RedirectAfterMs: state.RedirectAfterMs})
	}
}

func (c *WsClient) sendError(err error) {
	c.send(interviewapimodels.WsServerMessage{Type: interviewapimodels.WsTypeError, Error: err.Error()})
}
