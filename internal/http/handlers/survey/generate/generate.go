// Package generate реализует HTTP-обработчик создания опроса с генерацией вопросов.
//
// Если сервис генерации недоступен, опрос создается с запасными вопросами
// и признаком isFallback.
package generate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/survey-insights/internal/http/middlewarectx"
	"github.com/magabrotheeeer/survey-insights/internal/http/response"
	"github.com/magabrotheeeer/survey-insights/internal/lib/sl"
	services "github.com/magabrotheeeer/survey-insights/internal/services/survey"
)

const msgTitleRequired = "Title is required"

// Request тема опроса.
type Request struct {
	Title string `json:"title" validate:"required" example:"Удовлетворенность сервисом доставки"`
}

// Response созданный опрос.
type Response struct {
	Questions  []string `json:"questions"`
	SurveyID   string   `json:"surveyId"`
	IsFallback bool     `json:"isFallback"`
}

// Service создает опрос пользователя.
type Service interface {
	Create(ctx context.Context, userID, title string) (*services.CreateResult, error)
}

// Handler обрабатывает POST /generateQuestions.
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
// @Summary Создание опроса
// @Description Генерирует вопросы по теме и сохраняет опрос текущего пользователя.
// @Tags Surveys
// @Accept json
// @Produce json
// @Param request body Request true "Тема опроса"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Не задана тема"
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /generateQuestions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.survey.generate"

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
		render.JSON(w, r, response.Error(msgTitleRequired))
		return
	}

	res, err := h.service.Create(r.Context(), userID, req.Title)
	if err != nil {
		if errors.Is(err, services.ErrEmptyTitle) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(msgTitleRequired))
			return
		}
		log.Error("failed to create survey", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.ErrorWithDetails(response.MsgInternal, err))
		return
	}

	log.Info("survey created",
		slog.String("survey_id", res.Survey.ID),
		slog.Bool("is_fallback", res.IsFallback),
	)
	render.JSON(w, r, Response{
		Questions:  res.Survey.Questions,
		SurveyID:   res.Survey.ID,
		IsFallback: res.IsFallback,
	})
}
