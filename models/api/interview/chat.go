package interviewapimodels

import "time"

type MessageRole string

const (
	RoleAssistant MessageRole = "assistant"
	RoleUser      MessageRole = "user"
)

type ChatMessage struct {
	ID        string      `json:"id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp int64       `json:"timestamp"` // unix ms
}

func NewChatMessage(id string, role MessageRole, content string, at time.Time) ChatMessage {
	return ChatMessage{
		ID:        id,
		Role:      role,
		Content:   content,
		Timestamp: at.UnixMilli(),
	}
}

type AnswerRequest struct {
	Content string `json:"content"` // ответ кандидата
}

// SessionStateResponse текущее состояние интервью
type SessionStateResponse struct {
	State           string        `json:"state"`
	CurrentQuestion int           `json:"current_question"`
	TotalQuestions  int           `json:"total_questions"`
	Messages        []ChatMessage `json:"messages"`
	ResponseTimes   map[int]int64 `json:"responseTimeData"`
	RedirectAfterMs int           `json:"redirect_after_ms,omitempty"`
}

type WsClientMessage struct {
	Type    string `json:"type"` // start | answer | finish
	Content string `json:"content,omitempty"`
}

type WsServerMessage struct {
	Type            string       `json:"type"` // message | finished | error
	Message         *ChatMessage `json:"message,omitempty"`
	Error           string       `json:"error,omitempty"`
	RedirectAfterMs int          `json:"redirect_after_ms,omitempty"`
}

const (
	WsTypeStart    = "start"
	WsTypeAnswer   = "answer"
	WsTypeFinish   = "finish"
	WsTypeMessage  = "message"
	WsTypeFinished = "finished"
	WsTypeError    = "error"
)

// SessionActionResponse сообщения, появившиеся в результате действия, и состояние после него
type SessionActionResponse struct {
	Messages []ChatMessage         `json:"messages"`
	State    *SessionStateResponse `json:"state"`
}
