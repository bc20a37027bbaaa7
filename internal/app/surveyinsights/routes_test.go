package surveyinsights

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/survey-insights/internal/http/middlewarectx"
	"github.com/magabrotheeeer/survey-insights/internal/http/session"
	"github.com/magabrotheeeer/survey-insights/internal/lib/jwt"
	"github.com/magabrotheeeer/survey-insights/internal/metrics"
	"github.com/magabrotheeeer/survey-insights/internal/models"
	services "github.com/magabrotheeeer/survey-insights/internal/services/survey"
	"github.com/magabrotheeeer/survey-insights/internal/storage"
)

type fakeAuth struct {
	maker jwt.Maker
}

func (f fakeAuth) SignUp(context.Context, string, string) (string, error) {
	return f.maker.GenerateToken("u-1")
}

func (f fakeAuth) SignIn(context.Context, string, string) (string, error) {
	return f.maker.GenerateToken("u-1")
}

func (f fakeAuth) CurrentUser(token string) (*jwt.Claims, bool) {
	claims, err := f.maker.ParseToken(token)
	return claims, err == nil
}

type fakeSurveys struct{}

func (fakeSurveys) Create(_ context.Context, userID, title string) (*services.CreateResult, error) {
	return &services.CreateResult{Survey: &models.Survey{ID: "s-1", Title: title, UserID: userID, Questions: []string{"Q?"}}}, nil
}

func (fakeSurveys) Get(_ context.Context, surveyID string) (*models.Survey, error) {
	if surveyID != "s-1" {
		return nil, storage.ErrNotFound
	}
	return &models.Survey{ID: "s-1", Questions: []string{"Q?"}}, nil
}

func (fakeSurveys) Submit(context.Context, string, []string) (string, error) { return "r-1", nil }

func (fakeSurveys) ListForUser(context.Context, string) ([]*models.Survey, error) {
	return []*models.Survey{}, nil
}

func (fakeSurveys) Analyze(context.Context, string, string) (string, error) { return "ok", nil }

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestRouter(t *testing.T, burst int) (http.Handler, string) {
	t.Helper()
	maker, err := jwt.NewJWTMaker("secret", time.Hour)
	require.NoError(t, err)
	token, err := maker.GenerateToken("u-1")
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	r := chi.NewRouter()
	RegisterRoutes(r, Deps{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Auth:      fakeAuth{maker: maker},
		Surveys:   fakeSurveys{},
		Storage:   okPinger{},
		Transport: session.NewTransport(false, time.Hour),
		Limiter:   middlewarectx.NewRateLimiter(0.001, burst),
		Metrics:   metrics.New(reg),
		Gatherer:  reg,
	})
	return r, token
}

func do(h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_MirroredUnderAPI(t *testing.T) {
	h, _ := newTestRouter(t, 10)

	for _, prefix := range []string{"", "/api"} {
		rec := do(h, http.MethodGet, prefix+"/getSurvey?surveyId=s-1", "", "")
		assert.Equal(t, http.StatusOK, rec.Code, prefix)
		assert.JSONEq(t, `{"questions":["Q?"]}`, rec.Body.String())

		rec = do(h, http.MethodPost, prefix+"/submitSurvey", `{"surveyId":"s-1","answers":["A"]}`, "")
		assert.Equal(t, http.StatusOK, rec.Code, prefix)

		rec = do(h, http.MethodGet, prefix+"/auth/me", "", "")
		assert.JSONEq(t, `{"isLoggedIn":false}`, rec.Body.String())
	}
}

func TestRoutes_ProtectedRequireSession(t *testing.T) {
	h, token := newTestRouter(t, 10)

	protected := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/getUserSurveys", ""},
		{http.MethodPost, "/generateQuestions", `{"title":"Coffee"}`},
		{http.MethodGet, "/analyzeResponses?surveyId=s-1", ""},
		{http.MethodGet, "/api/getUserSurveys", ""},
	}
	for _, p := range protected {
		rec := do(h, p.method, p.path, p.body, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, p.path)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())

		rec = do(h, p.method, p.path, p.body, "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, p.path)

		rec = do(h, p.method, p.path, p.body, token)
		assert.Equal(t, http.StatusOK, rec.Code, p.path)
	}
}

func TestRoutes_SignUpSetsSessionCookie(t *testing.T) {
	h, _ := newTestRouter(t, 10)

	rec := do(h, http.MethodPost, "/api/auth/signup", `{"email":"a@b.com","password":"secret"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	rec = do(h, http.MethodGet, "/api/auth/me", "", cookies[0].Value)
	assert.JSONEq(t, `{"isLoggedIn":true,"user":{"userId":"u-1"}}`, rec.Body.String())
}

func TestRoutes_GenerationRateLimited(t *testing.T) {
	h, token := newTestRouter(t, 1)

	rec := do(h, http.MethodPost, "/generateQuestions", `{"title":"Coffee"}`, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodPost, "/generateQuestions", `{"title":"Coffee"}`, token)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// лимит не распространяется на остальные маршруты
	rec = do(h, http.MethodGet, "/getUserSurveys", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutes_Operational(t *testing.T) {
	h, _ := newTestRouter(t, 10)

	rec := do(h, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(h, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `survey_insights_http_requests_total{method="GET",route="/healthz",status="200"} 1`)

	rec = do(h, http.MethodGet, "/docs/doc.json", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/generateQuestions")
}
