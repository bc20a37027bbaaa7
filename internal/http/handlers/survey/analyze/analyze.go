// Package analyze реализует HTTP-обработчик сводки по ответам на опрос.
//
// Сводка строится сервисом генерации и возвращается в markdown. Доступна
// только владельцу опроса.
package analyze

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/survey-insights/internal/generation"
	"github.com/magabrotheeeer/survey-insights/internal/http/middlewarectx"
	"github.com/magabrotheeeer/survey-insights/internal/http/response"
	"github.com/magabrotheeeer/survey-insights/internal/lib/sl"
	services "github.com/magabrotheeeer/survey-insights/internal/services/survey"
	"github.com/magabrotheeeer/survey-insights/internal/storage"
)

const (
	msgSurveyIDRequired = "Survey ID required"
	msgNoResponses      = "No responses available for analysis"
	msgTimeout          = "Analysis timed out"
	msgQuota            = "OpenAI API quota exceeded. Please check your billing details."
	msgAnalysisFailed   = "Failed to analyze responses"
)

// Response сводка по ответам.
type Response struct {
	Insights string `json:"insights"`
}

// Service строит сводку по ответам на опрос пользователя.
type Service interface {
	Analyze(ctx context.Context, userID, surveyID string) (string, error)
}

// Handler обрабатывает GET /analyzeResponses.
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
// @Summary Сводка по ответам
// @Tags Surveys
// @Produce json
// @Param surveyId query string true "ID опроса"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Не задан surveyId или нет ответов"
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Failure 404 {object} response.ErrorResponse "Опрос не найден"
// @Failure 429 {object} response.ErrorResponse "Исчерпана квота сервиса генерации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Failure 504 {object} response.ErrorResponse "Сервис генерации не ответил вовремя"
// @Router /analyzeResponses [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.survey.analyze"

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

	surveyID := r.URL.Query().Get("surveyId")
	if surveyID == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(msgSurveyIDRequired))
		return
	}

	insights, err := h.service.Analyze(r.Context(), userID, surveyID)
	if err != nil {
		status, body := errorResponse(err)
		if status == http.StatusInternalServerError {
			log.Error("failed to analyze responses", sl.Err(err))
		} else {
			log.Info("analysis rejected", slog.Int("status", status), sl.Err(err))
		}
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("responses analyzed", slog.String("survey_id", surveyID))
	render.JSON(w, r, Response{Insights: insights})
}

func errorResponse(err error) (int, response.ErrorResponse) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, response.Error(response.MsgSurveyMissing)
	case errors.Is(err, services.ErrNoResponses):
		return http.StatusBadRequest, response.Error(msgNoResponses)
	case errors.Is(err, generation.ErrUpstreamTimeout):
		return http.StatusGatewayTimeout, response.Error(msgTimeout)
	case errors.Is(err, generation.ErrQuotaExceeded):
		return http.StatusTooManyRequests, response.Error(msgQuota)
	case errors.Is(err, generation.ErrUpstreamFailure):
		return http.StatusInternalServerError, response.ErrorWithDetails(msgAnalysisFailed, err)
	default:
		return http.StatusInternalServerError, response.ErrorWithDetails(response.MsgInternal, err)
	}
}
