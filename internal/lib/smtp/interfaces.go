package smtp

import "io"

// Client описывает минимальный набор операций SMTP-клиента,
// нужный для отправки одного письма. Выделен в интерфейс,
// чтобы сервис отправки можно было тестировать без сети.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}
