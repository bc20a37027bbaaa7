// Package surveyinsights собирает HTTP-приложение: зависимости, маршруты и жизненный цикл сервера.
package surveyinsights

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magabrotheeeer/survey-insights/internal/docs"
	"github.com/magabrotheeeer/survey-insights/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/survey-insights/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/survey-insights/internal/http/handlers/auth/signin"
	"github.com/magabrotheeeer/survey-insights/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/survey-insights/internal/http/handlers/health"
	"github.com/magabrotheeeer/survey-insights/internal/http/handlers/survey/analyze"
	"github.com/magabrotheeeer/survey-insights/internal/http/handlers/survey/generate"
	"github.com/magabrotheeeer/survey-insights/internal/http/handlers/survey/get"
	"github.com/magabrotheeeer/survey-insights/internal/http/handlers/survey/list"
	"github.com/magabrotheeeer/survey-insights/internal/http/handlers/survey/submit"
	"github.com/magabrotheeeer/survey-insights/internal/http/middlewarectx"
	"github.com/magabrotheeeer/survey-insights/internal/http/session"
	"github.com/magabrotheeeer/survey-insights/internal/lib/jwt"
	"github.com/magabrotheeeer/survey-insights/internal/metrics"
	"github.com/magabrotheeeer/survey-insights/internal/models"
	services "github.com/magabrotheeeer/survey-insights/internal/services/survey"
)

// AuthService бизнес-логика сессий, нужная маршрутам.
type AuthService interface {
	SignUp(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string) (string, error)
	CurrentUser(token string) (*jwt.Claims, bool)
}

// SurveyService бизнес-логика опросов, нужная маршрутам.
type SurveyService interface {
	Create(ctx context.Context, userID, title string) (*services.CreateResult, error)
	Get(ctx context.Context, surveyID string) (*models.Survey, error)
	Submit(ctx context.Context, surveyID string, answers []string) (string, error)
	ListForUser(ctx context.Context, userID string) ([]*models.Survey, error)
	Analyze(ctx context.Context, userID, surveyID string) (string, error)
}

// Deps зависимости маршрутов.
type Deps struct {
	Logger    *slog.Logger
	Auth      AuthService
	Surveys   SurveyService
	Storage   health.Pinger
	Transport *session.Transport
	Limiter   *middlewarectx.RateLimiter
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
}

// RegisterRoutes регистрирует все маршруты приложения.
// Маршруты API доступны от корня и продублированы под /api.
func RegisterRoutes(r chi.Router, d Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.MetricsMiddleware(d.Metrics),
	)

	api := func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/signup", signup.New(d.Logger, d.Auth, d.Transport).ServeHTTP)
		r.Post("/auth/signin", signin.New(d.Logger, d.Auth, d.Transport).ServeHTTP)
		r.Post("/auth/logout", logout.New(d.Logger, d.Transport).ServeHTTP)
		r.Get("/auth/me", me.New(d.Logger, d.Auth, d.Transport).ServeHTTP)
		r.Get("/getSurvey", get.New(d.Logger, d.Surveys).ServeHTTP)
		r.Post("/submitSurvey", submit.New(d.Logger, d.Surveys).ServeHTTP)

		// Группа с сессионной аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(d.Auth, d.Transport, d.Logger))
			r.Get("/getUserSurveys", list.New(d.Logger, d.Surveys).ServeHTTP)

			// Обращения к сервису генерации ограничены по частоте
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RateLimitMiddleware(d.Limiter, d.Logger))
				r.Post("/generateQuestions", generate.New(d.Logger, d.Surveys).ServeHTTP)
				r.Get("/analyzeResponses", analyze.New(d.Logger, d.Surveys).ServeHTTP)
			})
		})
	}
	r.Group(api)
	r.Route("/api", api)

	r.Get("/healthz", health.New(d.Logger, d.Storage).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
