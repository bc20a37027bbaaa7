package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/survey-insights/internal/http/response"
	"github.com/magabrotheeeer/survey-insights/internal/lib/sl"
)

const msgStorageUnavailable = "Storage unavailable"

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status состояние сервиса.
type Status struct {
	Status string `json:"status" example:"ok"`
}

// Handler обрабатывает GET /healthz.
type Handler struct {
	log     *slog.Logger
	storage Pinger
}

func New(log *slog.Logger, storage Pinger) *Handler {
	return &Handler{
		log:     log,
		storage: storage,
	}
}

// ServeHTTP godoc
// @Summary Проверка состояния
// @Tags Health
// @Produce json
// @Success 200 {object} Status
// @Failure 503 {object} response.ErrorResponse "База недоступна"
// @Router /healthz [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if err := h.storage.Ping(r.Context()); err != nil {
		h.log.Error("storage ping failed",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err),
		)
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.ErrorWithDetails(msgStorageUnavailable, err))
		return
	}
	render.JSON(w, r, Status{Status: "ok"})
}
