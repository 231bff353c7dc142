package botnotify

import (
	"fmt"
	"html"

	interviewapimodels "interview-sim-backend/models/api/interview"
	dbmodels "interview-sim-backend/models/db"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Provider уведомления рекрутера в telegram
type Provider interface {
	NotifyScored(session dbmodels.InterviewSession, score interviewapimodels.InterviewScore) error
	NotifyError(code int, method, path, errMsg string) error
}

var Instance Provider = noop{}

// NewHandler без токена уведомления отключены
func NewHandler(token string, chatID int64) {
	if token == "" || chatID == 0 {
		log.Info("telegram уведомления отключены")
		Instance = noop{}
		return
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.WithError(err).Error("ошибка инициализации telegram бота, уведомления отключены")
		Instance = noop{}
		return
	}
	Instance = impl{
		bot:    bot,
		chatID: chatID,
	}
}

type impl struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func (i impl) NotifyScored(session dbmodels.InterviewSession, score interviewapimodels.InterviewScore) error {
	msg := tgbotapi.NewMessage(i.chatID, FormatScored(session, score))
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := i.bot.Send(msg); err != nil {
		return errors.Wrap(err, "ошибка отправки уведомления в telegram")
	}
	return nil
}

func (i impl) NotifyError(code int, method, path, errMsg string) error {
	text := fmt.Sprintf("<b>Ошибка api %d</b>\n%s %s\n%s", code, method, html.EscapeString(path), html.EscapeString(errMsg))
	msg := tgbotapi.NewMessage(i.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := i.bot.Send(msg); err != nil {
		return errors.Wrap(err, "ошибка отправки уведомления в telegram")
	}
	return nil
}

func FormatScored(session dbmodels.InterviewSession, score interviewapimodels.InterviewScore) string {
	name := session.CandidateName
	if name == "" {
		name = session.ID
	}
	text := fmt.Sprintf("<b>Интервью оценено</b>\nКандидат: %s\nОбщая оценка: %d/100\n",
		html.EscapeString(name), score.OverallScore)
	for _, category := range score.Categories {
		text += fmt.Sprintf("%s: %d (%s)\n", html.EscapeString(category.Name), category.Score, category.Severity)
	}
	if score.Note != "" {
		text += fmt.Sprintf("<i>%s</i>\n", html.EscapeString(score.Note))
	}
	return text
}

type noop struct{}

func (noop) NotifyScored(session dbmodels.InterviewSession, score interviewapimodels.InterviewScore) error {
	return nil
}

func (noop) NotifyError(code int, method, path, errMsg string) error {
	return nil
}
