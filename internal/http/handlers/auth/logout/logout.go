// Package logout реализует HTTP-обработчик выхода: сессионная cookie удаляется всегда.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/survey-insights/internal/http/response"
	"github.com/magabrotheeeer/survey-insights/internal/http/session"
)

// Handler обрабатывает POST /auth/logout.
type Handler struct {
	log       *slog.Logger
	transport *session.Transport
}

// New создает Handler.
func New(log *slog.Logger, transport *session.Transport) *Handler {
	return &Handler{
		log:       log,
		transport: transport,
	}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Success
// @Router /auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	h.transport.Clear(w)
	h.log.Info("session cleared",
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	render.JSON(w, r, response.OK())
}
