// Package me реализует HTTP-обработчик проверки текущей сессии.
//
// Обработчик не требует авторизации: отсутствие или недействительность
// токена дают isLoggedIn=false с кодом 200.
package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/survey-insights/internal/http/session"
	"github.com/magabrotheeeer/survey-insights/internal/lib/jwt"
)

// Service проверяет сессионный токен.
type Service interface {
	CurrentUser(token string) (*jwt.Claims, bool)
}

// User данные пользователя текущей сессии.
type User struct {
	UserID string `json:"userId"`
}

// Response состояние сессии.
type Response struct {
	IsLoggedIn bool  `json:"isLoggedIn"`
	User       *User `json:"user,omitempty"`
}

// Handler обрабатывает GET /auth/me.
type Handler struct {
	log       *slog.Logger
	service   Service
	transport *session.Transport
}

// New создает Handler.
func New(log *slog.Logger, service Service, transport *session.Transport) *Handler {
	return &Handler{
		log:       log,
		service:   service,
		transport: transport,
	}
}

// ServeHTTP godoc
// @Summary Текущая сессия
// @Tags Auth
// @Produce json
// @Success 200 {object} Response
// @Router /auth/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token, ok := h.transport.Extract(r)
	if !ok {
		render.JSON(w, r, Response{IsLoggedIn: false})
		return
	}

	claims, ok := h.service.CurrentUser(token)
	if !ok {
		log.Info("invalid or expired session token")
		render.JSON(w, r, Response{IsLoggedIn: false})
		return
	}

	render.JSON(w, r, Response{
		IsLoggedIn: true,
		User:       &User{UserID: claims.UserID},
	})
}
