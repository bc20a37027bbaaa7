// Package submit реализует публичный HTTP-обработчик отправки ответов на опрос.
package submit

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
	"github.com/magabrotheeeer/survey-insights/internal/lib/sl"
	"github.com/magabrotheeeer/survey-insights/internal/storage"
)

const (
	msgRequired    = "Survey ID and answers are required"
	msgAnswerCount = "Answers count does not match questions count"
)

// Request ответы на вопросы опроса в порядке вопросов.
type Request struct {
	SurveyID string   `json:"surveyId" validate:"required"`
	Answers  []string `json:"answers" validate:"required"`
}

// Response идентификатор сохраненного ответа.
type Response struct {
	Success    bool   `json:"success"`
	ResponseID string `json:"responseId"`
}

// Service сохраняет ответы на опрос.
type Service interface {
	Submit(ctx context.Context, surveyID string, answers []string) (string, error)
}

// Handler обрабатывает POST /submitSurvey.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Отправка ответов
// @Tags Surveys
// @Accept json
// @Produce json
// @Param request body Request true "Ответы"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Не заполнены поля или число ответов не совпадает с числом вопросов"
// @Failure 404 {object} response.ErrorResponse "Опрос не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /submitSurvey [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.survey.submit"

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

	responseID, err := h.service.Submit(r.Context(), req.SurveyID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			log.Info("survey not found", slog.String("survey_id", req.SurveyID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(response.MsgSurveyMissing))
		case errors.Is(err, storage.ErrAnswerCount):
			log.Info("answer count mismatch", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(msgAnswerCount))
		default:
			log.Error("failed to submit response", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ErrorWithDetails(response.MsgInternal, err))
		}
		return
	}

	log.Info("response submitted", slog.String("response_id", responseID))
	render.JSON(w, r, Response{Success: true, ResponseID: responseID})
}
