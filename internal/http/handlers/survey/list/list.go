// Package list реализует HTTP-обработчик списка опросов текущего пользователя
// вместе с ответами.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/survey-insights/internal/http/middlewarectx"
	"github.com/magabrotheeeer/survey-insights/internal/http/response"
	"github.com/magabrotheeeer/survey-insights/internal/lib/sl"
	"github.com/magabrotheeeer/survey-insights/internal/models"
)

// Service возвращает опросы пользователя.
type Service interface {
	ListForUser(ctx context.Context, userID string) ([]*models.Survey, error)
}

// Handler обрабатывает GET /getUserSurveys.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Опросы пользователя
// @Description Возвращает опросы текущего пользователя, новые первыми, с ответами.
// @Tags Surveys
// @Produce json
// @Success 200 {array} models.Survey
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /getUserSurveys [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.survey.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFrom(r.Context())
	if !ok {
		log.Error("user id missing in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.MsgUnauthorized))
		return
	}

	surveys, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		log.Error("failed to list surveys", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.ErrorWithDetails(response.MsgInternal, err))
		return
	}
	if surveys == nil {
		surveys = []*models.Survey{}
	}

	log.Info("surveys listed", slog.Int("count", len(surveys)))
	render.JSON(w, r, surveys)
}
