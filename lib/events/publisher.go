package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
)

const (
	TypeSessionCreated = "interview.created"
	TypeFinished       = "interview.finished"
	TypeScored         = "interview.scored"
)

type Event struct {
	Type         string    `json:"type"`
	SessionID    string    `json:"session_id"`
	OverallScore *int      `json:"overall_score,omitempty"`
	Note         string    `json:"note,omitempty"`
	At           time.Time `json:"at"`
}

type Provider interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

var Instance Provider = noop{}

// NewHandler без адреса брокера события не публикуются
func NewHandler(url, queue string) {
	if url == "" {
		log.Info("публикация событий отключена")
		Instance = noop{}
		return
	}
	p, err := Connect(url, queue)
	if err != nil {
		log.WithError(err).Error("ошибка подключения к rabbitmq, публикация событий отключена")
		Instance = noop{}
		return
	}
	Instance = p
}

func Connect(url, queue string) (Provider, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка подключения к rabbitmq")
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "ошибка открытия канала")
	}
	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "ошибка объявления очереди")
	}
	return &impl{
		conn:    conn,
		channel: ch,
		queue:   q.Name,
	}, nil
}

type impl struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

func (i *impl) Publish(ctx context.Context, event Event) error {
	if event.At.IsZero() {
		event.At = time.Now()
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err = i.channel.PublishWithContext(
		ctx,
		"",
		i.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.At,
			Type:         event.Type,
			Body:         body,
		},
	)
	if err != nil {
		return errors.Wrapf(err, "ошибка публикации события %v", event.Type)
	}
	return nil
}

func (i *impl) Close() error {
	if err := i.channel.Close(); err != nil {
		log.WithError(err).Warn("ошибка закрытия канала rabbitmq")
	}
	return i.conn.Close()
}

type noop struct{}

func (noop) Publish(ctx context.Context, event Event) error {
	return nil
}

func (noop) Close() error {
	return nil
}
