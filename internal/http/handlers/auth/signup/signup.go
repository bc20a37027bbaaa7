// Package signup реализует HTTP-обработчик регистрации пользователя.
//
// При успешной регистрации в ответ добавляется сессионная cookie.
package signup

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
	msgRequired        = "Email and password are required"
	msgUserExists      = "User already exists"
	msgPasswordTooLong = "field Password is too long"
)

// Request учетные данные нового пользователя.
type Request struct {
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Password string `json:"password" validate:"required,max=72" example:"secret123"`
}

// Service регистрирует пользователя и возвращает сессионный токен.
type Service interface {
	SignUp(ctx context.Context, email, password string) (string, error)
}

// Handler обрабатывает POST /auth/signup.
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
// @Summary Регистрация пользователя
// @Description Создает пользователя и устанавливает cookie auth_token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Учетные данные"
// @Success 200 {object} response.Success
// @Failure 400 {object} response.ErrorResponse "Не заполнены поля, неверный email, слишком длинный пароль или пользователь существует"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

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
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(msgRequired))
			return
		}
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(verrs, msgRequired))
		return
	}

	token, err := h.service.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			log.Info("user already exists")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(msgUserExists))
			return
		}
		if errors.Is(err, services.ErrPasswordTooLong) {
			log.Info("password too long")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(msgPasswordTooLong))
			return
		}
		log.Error("failed to sign up", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.ErrorWithDetails(response.MsgInternal, err))
		return
	}

	h.transport.Attach(w, token)
	log.Info("user signed up")
	render.JSON(w, r, response.OK())
}
