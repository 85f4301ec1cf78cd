package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/cybercentry/waitlist-service/internal/models"
)

// PublishMessage публикует сообщение в RabbitMQ.
func PublishMessage(ch *amqp.Channel, exchange string, routingkey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SignupPublisher публикует события о новых заявках в обменник списка ожидания.
// Реализует интерфейс EventPublisher сервиса заявок.
type SignupPublisher struct {
	ch *amqp.Channel
}

// NewSignupPublisher создает издателя поверх уже настроенного канала.
func NewSignupPublisher(ch *amqp.Channel) *SignupPublisher {
	return &SignupPublisher{ch: ch}
}

// PublishSignup отправляет событие о созданной записи.
func (p *SignupPublisher) PublishSignup(event models.SignupEvent) error {
	return PublishMessage(p.ch, SignupExchange, SignupRoutingKey, event)
}
