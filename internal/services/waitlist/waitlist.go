// Package waitlist содержит бизнес-логику приёма заявок в список ожидания.
package waitlist

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cybercentry/waitlist-service/internal/lib/sl"
	"github.com/cybercentry/waitlist-service/internal/models"
)

// Таймаут одного обращения к базе. Не даёт обработчику зависнуть
// при недоступности базы: просроченный вызов завершится ошибкой хранилища.
const insertTimeout = 5 * time.Second

// SignupRepository определяет методы для работы с записями в хранилище.
type SignupRepository interface {
	// InsertSignup добавляет новую запись и возвращает её ID.
	InsertSignup(ctx context.Context, signup models.Signup) (string, error)
}

// EventPublisher публикует событие о новой записи в очередь уведомлений.
type EventPublisher interface {
	PublishSignup(event models.SignupEvent) error
}

// Service реализует приём заявки: нормализует необязательные поля,
// отдаёт запись в хранилище и публикует событие о регистрации.
type Service struct {
	repo      SignupRepository
	publisher EventPublisher
	log       *slog.Logger
}

// New создает новый экземпляр Service. Publisher может быть nil,
// если очередь уведомлений не настроена.
func New(repo SignupRepository, publisher EventPublisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Join записывает заявку и возвращает ID созданной записи.
// Повторы не выполняются: конфликт email — терминальное состояние,
// а повтор незавершённой вставки рискует создать дубликат,
// если сбой случился уже после коммита.
func (s *Service) Join(ctx context.Context, req models.SignupRequest) (string, error) {
	signup := models.Signup{
		Email:       req.Email,
		Fid:         req.Fid.Value,
		DisplayName: req.DisplayName,
		Plan:        req.Plan,
	}

	insertCtx, cancel := context.WithTimeout(ctx, insertTimeout)
	defer cancel()

	id, err := s.repo.InsertSignup(insertCtx, signup)
	if err != nil {
		return "", fmt.Errorf("insert signup: %w", err)
	}

	s.log.Info("created new signup", slog.String("id", id))

	if s.publisher != nil {
		event := models.SignupEvent{
			ID:          id,
			Email:       signup.Email,
			DisplayName: signup.DisplayName,
			Plan:        signup.Plan,
		}
		// Сбой публикации не влияет на результат запроса: запись уже в базе.
		if err := s.publisher.PublishSignup(event); err != nil {
			s.log.Warn("failed to publish signup event", sl.Err(err))
		}
	}

	return id, nil
}
