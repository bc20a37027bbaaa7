package surveyinsights

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/survey-insights/internal/cache"
	"github.com/magabrotheeeer/survey-insights/internal/config"
	"github.com/magabrotheeeer/survey-insights/internal/generation"
	"github.com/magabrotheeeer/survey-insights/internal/http/middlewarectx"
	"github.com/magabrotheeeer/survey-insights/internal/http/response"
	"github.com/magabrotheeeer/survey-insights/internal/http/session"
	"github.com/magabrotheeeer/survey-insights/internal/lib/jwt"
	"github.com/magabrotheeeer/survey-insights/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/survey-insights/internal/lib/sl"
	"github.com/magabrotheeeer/survey-insights/internal/metrics"
	"github.com/magabrotheeeer/survey-insights/internal/migrations"
	authservice "github.com/magabrotheeeer/survey-insights/internal/services/auth"
	surveyservice "github.com/magabrotheeeer/survey-insights/internal/services/survey"
	"github.com/magabrotheeeer/survey-insights/internal/storage"
	"github.com/magabrotheeeer/survey-insights/internal/storage/repository"
)

const (
	shutdownTimeout = 15 * time.Second
	brokerRetries   = 5
	brokerDelay     = 2 * time.Second
)

type surveyCache interface {
	surveyservice.Cache
	Close() error
}

// App HTTP-сервер со всеми зависимостями.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	gateway *storage.Gateway
	cache   surveyCache
	broker  *amqp.Connection
}

// New собирает приложение по конфигурации. Если миграции включены,
// подключение к базе открывается сразу, иначе при первом запросе.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.surveyinsights.New"

	response.SetExposeDetails(!cfg.IsProduction())

	jwtMaker, err := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	gateway := storage.NewGateway(cfg.StorageConnectionString)
	if cfg.MigrationsEnabled {
		db, err := gateway.Connect(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err = migrations.Run(db); err != nil {
			_ = gateway.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		logger.Info("migrations applied")
	}
	repo := repository.New(gateway)

	app := &App{
		logger:  logger,
		gateway: gateway,
		cache:   cache.Noop{},
	}

	if cfg.AddressRedis != "" {
		redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.cache = redisCache
		logger.Info("redis cache enabled", slog.String("address", cfg.AddressRedis))
	}

	var events surveyservice.EventPublisher = rabbitmq.Noop{}
	if cfg.RabbitMQ.URL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, brokerRetries, brokerDelay)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.broker = conn
		ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, rabbitmq.EventQueues())
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		events = rabbitmq.NewPublisher(ch, cfg.Exchange)
		logger.Info("event publishing enabled", slog.String("exchange", cfg.Exchange))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	if cfg.Generation.APIKey == "" {
		logger.Warn("generation api key is not set, fallback questions will be used")
	}
	generator := generation.NewClient(cfg.Generation, logger, m)

	authService := authservice.NewAuthService(repo, jwtMaker, logger)
	surveyService := surveyservice.NewSurveyService(repo, generator, app.cache, events, logger, cfg.AnalyzeTimeout)

	router := chi.NewRouter()
	RegisterRoutes(router, Deps{
		Logger:    logger,
		Auth:      authService,
		Surveys:   surveyService,
		Storage:   gateway,
		Transport: session.NewTransport(cfg.IsProduction(), jwtMaker.TTL()),
		Limiter:   middlewarectx.NewRateLimiter(cfg.RPS, cfg.Burst),
		Metrics:   m,
		Gatherer:  registry,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP + cfg.Generation.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if err := a.cache.Close(); err != nil {
		a.logger.Warn("failed to close cache", sl.Err(err))
	}
	if a.broker != nil {
		if err := a.broker.Close(); err != nil {
			a.logger.Warn("failed to close broker connection", sl.Err(err))
		}
	}
	if err := a.gateway.Close(); err != nil {
		a.logger.Warn("failed to close storage", sl.Err(err))
	}
}
