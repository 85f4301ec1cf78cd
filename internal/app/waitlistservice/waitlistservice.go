package waitlistservice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/cybercentry/waitlist-service/internal/config"
	"github.com/cybercentry/waitlist-service/internal/lib/rabbitmq"
	"github.com/cybercentry/waitlist-service/internal/lib/sl"
	"github.com/cybercentry/waitlist-service/internal/migrations"
	waitlistsvc "github.com/cybercentry/waitlist-service/internal/services/waitlist"
	"github.com/cybercentry/waitlist-service/internal/storage"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	amqp   *amqp.Connection
	ch     *amqp.Channel
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db := storage.New(cfg.StorageConnectionString)

	// Без строки подключения сервис поднимается, но каждая заявка
	// будет отвечать 503: операторски это отличимо от сломанной базы.
	if cfg.StorageConnectionString != "" {
		conn, err := db.Conn()
		if err != nil {
			return nil, err
		}
		if err = migrations.Run(conn, "./migrations"); err != nil {
			return nil, err
		}
		if err = storage.CheckDatabaseReady(db); err != nil {
			return nil, err
		}
	} else {
		logger.Warn("storage connection string is not set, submissions will be rejected")
	}

	var publisher waitlistsvc.EventPublisher
	var amqpConn *amqp.Connection
	var ch *amqp.Channel
	if cfg.RabbitMQURL != "" {
		var err error
		amqpConn, err = rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			return nil, err
		}
		ch, err = rabbitmq.SetupChannel(amqpConn, rabbitmq.GetSignupQueues())
		if err != nil {
			if closeErr := amqpConn.Close(); closeErr != nil {
				logger.Error("failed to close amqp connection", sl.Err(closeErr))
			}
			return nil, err
		}
		publisher = rabbitmq.NewSignupPublisher(ch)
	} else {
		logger.Warn("rabbitmq url is not set, signup events will not be published")
	}

	service := waitlistsvc.New(db, publisher, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, service)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		amqp:   amqpConn,
		ch:     ch,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.ch != nil {
			if closeErr := a.ch.Close(); closeErr != nil {
				a.logger.Error("failed to close amqp channel", sl.Err(closeErr))
			}
		}
		if a.amqp != nil {
			if closeErr := a.amqp.Close(); closeErr != nil {
				a.logger.Error("failed to close amqp connection", sl.Err(closeErr))
			}
		}
		if closeErr := a.db.Close(); closeErr != nil {
			a.logger.Error("failed to close storage", sl.Err(closeErr))
		}
		return err
	}
}
