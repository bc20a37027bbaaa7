// Package get реализует публичный HTTP-обработчик получения вопросов опроса.
package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/survey-insights/internal/http/response"
	"github.com/magabrotheeeer/survey-insights/internal/lib/sl"
	"github.com/magabrotheeeer/survey-insights/internal/models"
	"github.com/magabrotheeeer/survey-insights/internal/storage"
)

const msgSurveyIDRequired = "Survey ID is required"

// Response вопросы опроса.
type Response struct {
	Questions []string `json:"questions"`
}

// Service возвращает опрос по идентификатору.
type Service interface {
	Get(ctx context.Context, surveyID string) (*models.Survey, error)
}

// Handler обрабатывает GET /getSurvey.
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
// @Summary Вопросы опроса
// @Tags Surveys
// @Produce json
// @Param surveyId query string true "ID опроса"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Не задан surveyId"
// @Failure 404 {object} response.ErrorResponse "Опрос не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /getSurvey [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.survey.get"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	surveyID := r.URL.Query().Get("surveyId")
	if surveyID == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(msgSurveyIDRequired))
		return
	}

	survey, err := h.service.Get(r.Context(), surveyID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("survey not found", slog.String("survey_id", surveyID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(response.MsgSurveyMissing))
			return
		}
		log.Error("failed to get survey", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.ErrorWithDetails(response.MsgInternal, err))
		return
	}

	render.JSON(w, r, Response{Questions: survey.Questions})
}
