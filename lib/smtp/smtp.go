package smtp

import (
	"bytes"
	"io"
	"net/mail"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

var Instance Provider

type Attachment struct {
	FileName string
	Body     []byte
}

type Provider interface {
	SendReport(to, subject, body string, attachments ...Attachment) error
}

func Connect(user, password, host, port, from string, tlsEnabled bool) {
	if from == "" {
		from = user
	}
	Instance = &impl{
		user:       user,
		password:   password,
		host:       host,
		port:       port,
		from:       from,
		tlsEnabled: tlsEnabled,
		send:       sendMail,
	}
}

type sendFunc func(addr string, auth sasl.Client, from string, to []string, body io.Reader, tlsEnabled bool) error

type impl struct {
	user       string
	password   string
	host       string
	port       string
	from       string
	tlsEnabled bool
	send       sendFunc
}

func (i impl) SendReport(to, subject, body string, attachments ...Attachment) error {
	logger := log.WithField("recipient", to)
	if i.user == "" || i.host == "" || i.port == "" {
		logger.Warn("письмо с отчётом не отправлено, тк не настроен smtp клиент")
		return nil
	}
	if to == "" {
		return errors.New("не указан адрес получателя")
	}
	message, err := BuildMessage(i.from, to, subject, body, attachments...)
	if err != nil {
		return err
	}
	auth := sasl.NewPlainClient("", i.user, i.password)
	err = i.send(i.host+":"+i.port, auth, envelopeFrom(i.from), []string{to}, bytes.NewReader(message), i.tlsEnabled)
	if err != nil {
		logger.WithError(err).Error("ошибка отправки письма с отчётом")
		return errors.Wrap(err, "ошибка отправки письма")
	}
	logger.Info("письмо с отчётом отправлено")
	return nil
}

// BuildMessage письмо в формате MIME с вложениями
func BuildMessage(from, to, subject, body string, attachments ...Attachment) ([]byte, error) {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	for _, attachment := range attachments {
		data := attachment.Body
		m.Attach(attachment.FileName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	}
	buf := new(bytes.Buffer)
	if _, err := m.WriteTo(buf); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования письма")
	}
	return buf.Bytes(), nil
}

// envelopeFrom адрес для MAIL FROM, совпадает с заголовком From
func envelopeFrom(from string) string {
	addr, err := mail.ParseAddress(from)
	if err != nil {
		return from
	}
	return addr.Address
}

func sendMail(addr string, auth sasl.Client, from string, to []string, body io.Reader, tlsEnabled bool) error {
	if tlsEnabled {
		return smtp.SendMailTLS(addr, auth, from, to, body)
	}
	return smtp.SendMail(addr, auth, from, to, body)
}
