package rabbitmq

// SignupExchange — durable direct exchange для событий списка ожидания.
const SignupExchange = "waitlist.events"

// Очередь подтверждающих писем и её ключ маршрутизации.
const (
	ConfirmationQueue = "waitlist.confirmation"
	SignupRoutingKey  = "signup.created"
)

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetSignupQueues возвращает очереди, которые слушает отправитель уведомлений.
func GetSignupQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: ConfirmationQueue, RoutingKey: SignupRoutingKey},
	}
}
