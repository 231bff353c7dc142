package connectionhub

import (
	"sync"

	interviewapimodels "interview-sim-backend/models/api/interview"

	"github.com/gofiber/contrib/websocket"
)

// Provider активные websocket подключения к сессиям интервью, одно на сессию
type Provider interface {
	AddClient(sessionID string, conn *websocket.Conn)
	DeleteClient(sessionID string, conn *websocket.Conn)
	SendMessage(sessionID string, msg interviewapimodels.WsServerMessage) bool
	IsConnected(sessionID string) bool
}

var Instance Provider

func Init() {
	Instance = &impl{
		clients: map[string]clientSession{},
	}
}

type impl struct {
	mu      sync.RWMutex
	clients map[string]clientSession // map[sessionID]
}

func (i *impl) DeleteClient(sessionID string, conn *websocket.Conn) {
	i.mu.Lock()
	defer i.mu.Unlock()
	sess, ok := i.clients[sessionID]
	// подключение могло быть уже заменено новым
	if !ok || sess.conn != conn {
		return
	}
	delete(i.clients, sessionID)
	sess.stop()
}

// AddClient новое подключение к сессии закрывает предыдущее
func (i *impl) AddClient(sessionID string, conn *websocket.Conn) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if oldSess, ok := i.clients[sessionID]; ok {
		oldSess.stop()
	}
	i.clients[sessionID] = newSession(conn)
}

func (i *impl) SendMessage(sessionID string, msg interviewapimodels.WsServerMessage) bool {
	i.mu.RLock()
	sess, ok := i.clients[sessionID]
	i.mu.RUnlock()
	if !ok {
		return false
	}
	return sess.enqueue(msg)
}

func (i *impl) IsConnected(sessionID string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	sess, ok := i.clients[sessionID]
	if !ok || sess.conn == nil || sess.conn.Conn == nil {
		return false
	}
	return true
}
