package interview

import (
	"fmt"
	"strings"
	"time"

	interviewapimodels "interview-sim-backend/models/api/interview"

	"github.com/pkg/errors"
)

type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateFinished   State = "finished"
)

const (
	introPattern   = "Hello %s! I'll be conducting your interview today. I'll ask you several questions to understand your qualifications better. Let's begin with the first question."
	closingMessage = "Thank you for participating in this interview. I'll now analyze your responses to provide feedback. Please wait a moment..."
	defaultName    = "there"
)

var (
	ErrNotStarted        = errors.New("интервью ещё не начато")
	ErrAlreadyStarted    = errors.New("интервью уже начато")
	ErrFinished          = errors.New("интервью завершено")
	ErrEmptyAnswer       = errors.New("пустой ответ")
	ErrNoPendingQuestion = errors.New("нет вопроса, ожидающего ответа")
	ErrNoQuestions       = errors.New("нет вопросов для интервью")
)

// Snapshot сохраняемое состояние интервью
type Snapshot struct {
	State    State                            `json:"state"`
	Data     interviewapimodels.InterviewData `json:"data"`
	Messages []interviewapimodels.ChatMessage `json:"messages"`
	Timings  map[int]int64                    `json:"timings"`
	// Current индекс текущего вопроса
	Current int `json:"current"`
	// Pending текущий вопрос показан и ждёт ответа
	Pending           bool  `json:"pending"`
	QuestionStartedAt int64 `json:"question_started_at"` // мс
}

// Controller конечный автомат интервью: not_started -> in_progress -> finished.
// Транскрипт только дополняется, на каждый отвеченный вопрос пишется ровно одно время ответа.
type Controller struct {
	snap Snapshot
	now  func() time.Time
}

func NewController(data interviewapimodels.InterviewData, now func() time.Time) *Controller {
	return Restore(Snapshot{
		State: StateNotStarted,
		Data:  data,
	}, now)
}

func Restore(snap Snapshot, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	if snap.State == "" {
		snap.State = StateNotStarted
	}
	if snap.Timings == nil {
		snap.Timings = map[int]int64{}
	}
	if snap.Messages == nil {
		snap.Messages = []interviewapimodels.ChatMessage{}
	}
	return &Controller{
		snap: snap,
		now:  now,
	}
}

func (c *Controller) Snapshot() Snapshot {
	snap := c.snap
	snap.Messages = append([]interviewapimodels.ChatMessage{}, c.snap.Messages...)
	snap.Timings = make(map[int]int64, len(c.snap.Timings))
	for k, v := range c.snap.Timings {
		snap.Timings[k] = v
	}
	return snap
}

func (c *Controller) State() State {
	return c.snap.State
}

func (c *Controller) TotalQuestions() int {
	return len(c.snap.Data.Questions)
}

func (c *Controller) CurrentQuestion() int {
	return c.snap.Current
}

// QuestionPending показан вопрос, на который ещё нет ответа
func (c *Controller) QuestionPending() bool {
	return c.snap.State == StateInProgress && c.snap.Pending
}

// Stalled интервью идёт, но следующий шаг не сохранился: вопрос не показан или последний ответ не завершил интервью
func (c *Controller) Stalled() bool {
	return c.snap.State == StateInProgress && !c.QuestionPending()
}

// CurrentAnswered на текущий вопрос уже есть ответ
func (c *Controller) CurrentAnswered() bool {
	_, ok := c.snap.Timings[c.snap.Current]
	return ok
}

func (c *Controller) Start() (interviewapimodels.ChatMessage, error) {
	switch c.snap.State {
	case StateInProgress:
		return interviewapimodels.ChatMessage{}, ErrAlreadyStarted
	case StateFinished:
		return interviewapimodels.ChatMessage{}, ErrFinished
	}
	if len(c.snap.Data.Questions) == 0 {
		return interviewapimodels.ChatMessage{}, ErrNoQuestions
	}
	name := strings.TrimSpace(c.snap.Data.CandidateName)
	if name == "" {
		name = defaultName
	}
	c.snap.State = StateInProgress
	c.snap.Current = 0
	c.snap.Pending = false
	return c.append("intro", interviewapimodels.RoleAssistant, fmt.Sprintf(introPattern, name)), nil
}

// PresentQuestion показывает текущий вопрос и запускает таймер ответа
func (c *Controller) PresentQuestion() (interviewapimodels.ChatMessage, error) {
	if err := c.requireInProgress(); err != nil {
		return interviewapimodels.ChatMessage{}, err
	}
	if c.snap.Pending {
		return interviewapimodels.ChatMessage{}, errors.New("вопрос уже показан")
	}
	if c.snap.Current >= len(c.snap.Data.Questions) {
		return interviewapimodels.ChatMessage{}, ErrNoQuestions
	}
	question := c.snap.Data.Questions[c.snap.Current]
	msg := c.append(fmt.Sprintf("q-%d", question.ID), interviewapimodels.RoleAssistant, question.Question)
	c.snap.Pending = true
	c.snap.QuestionStartedAt = msg.Timestamp
	return msg, nil
}

// Answer принимает ответ на текущий вопрос и фиксирует время ответа.
// hasNext=false означает, что отвечен последний вопрос и интервью нужно завершить.
func (c *Controller) Answer(text string) (msg interviewapimodels.ChatMessage, hasNext bool, err error) {
	if err = c.requireInProgress(); err != nil {
		return msg, false, err
	}
	if strings.TrimSpace(text) == "" {
		return msg, false, ErrEmptyAnswer
	}
	if !c.snap.Pending {
		return msg, false, ErrNoPendingQuestion
	}
	at := c.now()
	question := c.snap.Data.Questions[c.snap.Current]
	elapsed := at.UnixMilli() - c.snap.QuestionStartedAt
	if elapsed < 0 {
		elapsed = 0
	}
	c.snap.Timings[c.snap.Current] = elapsed
	msg = interviewapimodels.NewChatMessage(fmt.Sprintf("user-%d-%d", question.ID, at.UnixMilli()), interviewapimodels.RoleUser, text, at)
	c.snap.Messages = append(c.snap.Messages, msg)
	c.snap.Pending = false
	if c.snap.Current+1 < len(c.snap.Data.Questions) {
		c.snap.Current++
		return msg, true, nil
	}
	return msg, false, nil
}

// Finish завершает интервью, допускается досрочно
func (c *Controller) Finish() (interviewapimodels.ChatMessage, error) {
	if err := c.requireInProgress(); err != nil {
		return interviewapimodels.ChatMessage{}, err
	}
	c.snap.State = StateFinished
	c.snap.Pending = false
	return c.append("finish", interviewapimodels.RoleAssistant, closingMessage), nil
}

func (c *Controller) Results() (interviewapimodels.InterviewResults, error) {
	if c.snap.State != StateFinished {
		return interviewapimodels.InterviewResults{}, errors.New("интервью ещё не завершено")
	}
	snap := c.Snapshot()
	return interviewapimodels.InterviewResults{
		Messages:         snap.Messages,
		ResponseTimeData: snap.Timings,
		JobDescription:   snap.Data.JobDescription,
		CVContent:        snap.Data.CVContent,
	}, nil
}

func (c *Controller) requireInProgress() error {
	switch c.snap.State {
	case StateNotStarted:
		return ErrNotStarted
	case StateFinished:
		return ErrFinished
	}
	return nil
}

func (c *Controller) append(id string, role interviewapimodels.MessageRole, content string) interviewapimodels.ChatMessage {
	msg := interviewapimodels.NewChatMessage(id, role, content, c.now())
	c.snap.Messages = append(c.snap.Messages, msg)
	return msg
}
