// Package join реализует HTTP-обработчик приёма заявок в список ожидания.
//
// Handler принимает JSON-запрос с email и необязательными полями, валидирует
// обязательность email, вызывает бизнес-логику записи через сервис и
// возвращает клиенту фиксированный JSON-ответ. Внутренние детали ошибок
// хранилища в ответ не попадают никогда, только в лог.
package join

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/cybercentry/waitlist-service/internal/http/response"
	"github.com/cybercentry/waitlist-service/internal/lib/sl"
	"github.com/cybercentry/waitlist-service/internal/models"
	"github.com/cybercentry/waitlist-service/internal/storage"
)

// Service описывает интерфейс бизнес-логики приёма заявки.
type Service interface {
	Join(ctx context.Context, req models.SignupRequest) (string, error)
}

// Handler управляет HTTP-запросами на вступление в список ожидания.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Записаться в список ожидания
// @Description Принимает email и необязательные fid, display_name, plan. Email уникален: повторная заявка возвращает 409.
// @Tags Waitlist
// @Accept  json
// @Produce  json
// @Param request body models.SignupRequest true "Данные заявки"
// @Success 200 {object} response.Success "Заявка записана"
// @Failure 400 {object} response.ErrorResponse "Отсутствует email"
// @Failure 409 {object} response.ErrorResponse "Email уже зарегистрирован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Failure 503 {object} response.ErrorResponse "База данных не настроена"
// @Router /waitlist [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.waitlist.join"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgServerError))
		return
	}
	log.Info("request body decoded", slog.String("email", req.Email))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.MsgEmailRequired))
		return
	}

	_, err := h.service.Join(r.Context(), req)
	switch {
	case errors.Is(err, storage.ErrEmailExists):
		log.Info("email already registered", slog.String("email", req.Email))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error(response.MsgEmailRegistered))
		return
	case errors.Is(err, storage.ErrNotConfigured):
		log.Error("database is not configured")
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error(response.MsgDBNotConfigured))
		return
	case err != nil:
		log.Error("failed to create signup", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgServerError))
		return
	}

	log.Info("signup created", slog.String("email", req.Email))
	render.JSON(w, r, response.OK())
}
