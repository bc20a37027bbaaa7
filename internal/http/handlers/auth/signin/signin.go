// Package signin реализует HTTP-обработчик входа по email и паролю.
package signin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/survey-insights/internal/http/response"
	"github.com/magabrotheeeer/survey-insights/internal/http/session"
	"github.com/magabrotheeeer/survey-insights/internal/lib/sl"
	services "github.com/magabrotheeeer/survey-insights/internal/services/auth"
)

const (
	msgRequired           = "Email and password are required"
	msgInvalidCredentials = "Invalid credentials"
)

// Request учетные данные пользователя.
type Request struct {
	Email    string `json:"email" validate:"required" example:"user@example.com"`
	Password string `json:"password" validate:"required" example:"secret123"`
}

// Service проверяет учетные данные и возвращает сессионный токен.
type Service interface {
	SignIn(ctx context.Context, email, password string) (string, error)
}

// Handler обрабатывает POST /auth/signin.
type Handler struct {
	log       *slog.Logger
	service   Service
	transport *session.Transport
	validate  *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service, transport *session.Transport) *Handler {
	return &Handler{
		log:       log,
		service:   service,
		transport: transport,
		validate:  validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет email и пароль, устанавливает cookie auth_token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Учетные данные"
// @Success 200 {object} response.Success
// @Failure 400 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/signin [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signin"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.MsgInvalidBody))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(msgRequired))
		return
	}

	token, err := h.service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Info("invalid credentials")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(msgInvalidCredentials))
			return
		}
		log.Error("failed to sign in", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.ErrorWithDetails(response.MsgInternal, err))
		return
	}

	h.transport.Attach(w, token)
	log.Info("user signed in")
	render.JSON(w, r, response.OK())
}
