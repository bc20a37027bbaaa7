// Package services содержит логику работы с опросами: создание с генерацией
// вопросов, приём ответов и сводку по ответам.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/survey-insights/internal/cache"
	"github.com/magabrotheeeer/survey-insights/internal/generation"
	"github.com/magabrotheeeer/survey-insights/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/survey-insights/internal/lib/sl"
	"github.com/magabrotheeeer/survey-insights/internal/models"
	"github.com/magabrotheeeer/survey-insights/internal/storage"
)

const (
	surveyTTL             = time.Hour
	insightsTTL           = 24 * time.Hour
	defaultAnalyzeTimeout = 10 * time.Second
)

var (
	// ErrEmptyTitle не задана тема опроса.
	ErrEmptyTitle = errors.New("title is required")
	// ErrNoResponses у опроса нет ответов для анализа.
	ErrNoResponses = errors.New("no responses available for analysis")
)

// SurveyRepository описывает контракт хранилища опросов и ответов.
type SurveyRepository interface {
	CreateSurvey(ctx context.Context, survey *models.Survey) error
	GetSurvey(ctx context.Context, id string) (*models.Survey, error)
	GetSurveyWithResponses(ctx context.Context, id string) (*models.Survey, error)
	ListSurveysByUser(ctx context.Context, userID string) ([]*models.Survey, error)
	CreateResponse(ctx context.Context, response *models.Response) error
}

// Generator сервис генерации текста.
type Generator interface {
	GenerateQuestions(ctx context.Context, title string) generation.Questions
	Summarize(ctx context.Context, survey *models.Survey, responses []*models.Response) (string, error)
}

// Cache кеш опросов и сводок.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// EventPublisher публикует события опросов.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

// CreateResult созданный опрос и признак того, что вопросы запасные.
type CreateResult struct {
	Survey     *models.Survey
	IsFallback bool
}

// SurveyService бизнес-логика опросов.
type SurveyService struct {
	repo           SurveyRepository
	gen            Generator
	cache          Cache
	events         EventPublisher
	log            *slog.Logger
	analyzeTimeout time.Duration
}

// NewSurveyService создаёт SurveyService. analyzeTimeout ограничивает
// обращение за сводкой; ноль означает значение по умолчанию.
func NewSurveyService(repo SurveyRepository, gen Generator, cache Cache, events EventPublisher,
	log *slog.Logger, analyzeTimeout time.Duration) *SurveyService {
	if analyzeTimeout <= 0 {
		analyzeTimeout = defaultAnalyzeTimeout
	}
	return &SurveyService{
		repo:           repo,
		gen:            gen,
		cache:          cache,
		events:         events,
		log:            log,
		analyzeTimeout: analyzeTimeout,
	}
}

// Create генерирует вопросы по теме title и сохраняет опрос пользователя userID.
func (s *SurveyService) Create(ctx context.Context, userID, title string) (*CreateResult, error) {
	const op = "services.survey.Create"

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyTitle)
	}

	questions := s.gen.GenerateQuestions(ctx, title)
	survey := &models.Survey{
		ID:        uuid.NewString(),
		Title:     title,
		Questions: questions.Items,
		UserID:    userID,
		Responses: []*models.Response{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateSurvey(ctx, survey); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("survey created",
		slog.String("survey_id", survey.ID),
		slog.Int("questions", len(survey.Questions)),
		slog.Bool("is_fallback", questions.IsFallback),
	)

	s.cacheSurvey(ctx, survey)
	s.publish(ctx, rabbitmq.RoutingSurveyCreated, rabbitmq.SurveyCreated{
		SurveyID:   survey.ID,
		UserID:     userID,
		Questions:  len(survey.Questions),
		IsFallback: questions.IsFallback,
		CreatedAt:  survey.CreatedAt,
	})

	return &CreateResult{Survey: survey, IsFallback: questions.IsFallback}, nil
}

// Get возвращает опрос без ответов. Опросы неизменяемы, поэтому кешируются.
func (s *SurveyService) Get(ctx context.Context, surveyID string) (*models.Survey, error) {
	const op = "services.survey.Get"

	key := cache.SurveyKey(surveyID)
	var cached models.Survey
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("failed to read survey from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	survey, err := s.repo.GetSurvey(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.cacheSurvey(ctx, survey)
	return survey, nil
}

// Submit сохраняет ответы на опрос и возвращает идентификатор ответа.
// Число ответов должно совпадать с числом вопросов, иначе storage.ErrAnswerCount.
func (s *SurveyService) Submit(ctx context.Context, surveyID string, answers []string) (string, error) {
	const op = "services.survey.Submit"

	survey, err := s.Get(ctx, surveyID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if len(answers) != len(survey.Questions) {
		return "", fmt.Errorf("%s: %w: got %d, want %d", op, storage.ErrAnswerCount, len(answers), len(survey.Questions))
	}

	response := &models.Response{
		ID:        uuid.NewString(),
		SurveyID:  surveyID,
		Answers:   answers,
		CreatedAt: time.Now().UTC(),
	}
	if err = s.repo.CreateResponse(ctx, response); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, rabbitmq.RoutingResponseSubmitted, rabbitmq.ResponseSubmitted{
		SurveyID:    surveyID,
		ResponseID:  response.ID,
		SubmittedAt: response.CreatedAt,
	})
	return response.ID, nil
}

// ListForUser возвращает опросы пользователя с ответами.
func (s *SurveyService) ListForUser(ctx context.Context, userID string) ([]*models.Survey, error) {
	const op = "services.survey.ListForUser"
	surveys, err := s.repo.ListSurveysByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return surveys, nil
}

// Analyze возвращает markdown-сводку по ответам на опрос пользователя userID.
//
// Чужой опрос неотличим от отсутствующего. Обращение к сервису генерации
// ограничено analyzeTimeout; по истечении возвращается generation.ErrUpstreamTimeout.
func (s *SurveyService) Analyze(ctx context.Context, userID, surveyID string) (string, error) {
	const op = "services.survey.Analyze"

	survey, err := s.repo.GetSurveyWithResponses(ctx, surveyID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if survey.UserID != userID {
		return "", fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if len(survey.Responses) == 0 {
		return "", fmt.Errorf("%s: %w", op, ErrNoResponses)
	}

	key := cache.InsightsKey(surveyID, len(survey.Responses))
	var insights string
	found, err := s.cache.Get(ctx, key, &insights)
	if err != nil {
		s.log.Warn("failed to read insights from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return insights, nil
	}

	analyzeCtx, cancel := context.WithTimeout(ctx, s.analyzeTimeout)
	defer cancel()

	insights, err = s.gen.Summarize(analyzeCtx, survey, survey.Responses)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err = s.cache.Set(ctx, key, insights, insightsTTL); err != nil {
		s.log.Warn("failed to cache insights", slog.String("key", key), sl.Err(err))
	}
	return insights, nil
}

func (s *SurveyService) cacheSurvey(ctx context.Context, survey *models.Survey) {
	key := cache.SurveyKey(survey.ID)
	cached := *survey
	cached.Responses = nil
	if err := s.cache.Set(ctx, key, &cached, surveyTTL); err != nil {
		s.log.Warn("failed to cache survey", slog.String("key", key), sl.Err(err))
	}
}

func (s *SurveyService) publish(ctx context.Context, routingKey string, event any) {
	if err := s.events.Publish(ctx, routingKey, event); err != nil {
		s.log.Warn("failed to publish event", slog.String("routing_key", routingKey), sl.Err(err))
	}
}
