// Package sender содержит бизнес-логику отправки подтверждающих писем
// участникам списка ожидания.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cybercentry/waitlist-service/internal/lib/sl"
	"github.com/cybercentry/waitlist-service/internal/lib/smtp"
	"github.com/cybercentry/waitlist-service/internal/models"
)

// Transport описывает SMTP-транспорт, используемый для отправки писем.
type Transport interface {
	Connect() (smtp.Client, error)
	GetSMTPUser() string
}

// Service отправляет подтверждающие письма по событиям из очереди.
type Service struct {
	transport Transport
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(transport Transport, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// SendSignupConfirmation обрабатывает событие о новой заявке
// и отправляет письмо с подтверждением записи в список ожидания.
func (s *Service) SendSignupConfirmation(body []byte) error {
	var event models.SignupEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal signup event", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	name := "there"
	if event.DisplayName != nil && *event.DisplayName != "" {
		name = *event.DisplayName
	}

	var planLine string
	if event.Plan != nil && *event.Plan != "" {
		planLine = fmt.Sprintf("You signed up for the %s plan.\n\n", *event.Plan)
	}

	to := []string{event.Email}
	subject := "You're on the Cybercentry waitlist"
	bodyText := fmt.Sprintf("Hi %s!\n\nThanks for joining the Cybercentry waitlist.\n\n%sWe'll reach out as soon as your spot opens up.\n\nThe Cybercentry team",
		name, planLine)

	return s.sendEmail(to, subject, bodyText)
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	// Quit завершает сессию штатно, Close здесь страхует ранние выходы.
	defer func() { _ = client.Close() }()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", s.transport.GetSMTPUser()), sl.Err(err))
		return err
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("to", addr), sl.Err(err))
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		s.log.Error("failed to open DATA stream", sl.Err(err))
		return err
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write message body", sl.Err(err))
		return err
	}
	if err := w.Close(); err != nil {
		s.log.Error("failed to close DATA stream", sl.Err(err))
		return err
	}

	if err := client.Quit(); err != nil {
		s.log.Warn("failed to quit SMTP session", sl.Err(err))
	}

	s.log.Info("confirmation email sent", slog.String("to", strings.Join(to, ";")))
	return nil
}
