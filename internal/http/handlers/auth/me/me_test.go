package me

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/survey-insights/internal/http/session"
	"github.com/magabrotheeeer/survey-insights/internal/lib/jwt"
)

type makerService struct {
	maker jwt.Maker
}

func (s makerService) CurrentUser(token string) (*jwt.Claims, bool) {
	claims, err := s.maker.ParseToken(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func TestMeHandler_ServeHTTP(t *testing.T) {
	maker, err := jwt.NewJWTMaker("secret", time.Hour)
	require.NoError(t, err)
	valid, err := maker.GenerateToken("user-42")
	require.NoError(t, err)

	past := time.Now().Add(-2 * time.Hour)
	expiredMaker, err := jwt.NewJWTMaker("secret", time.Hour, jwt.WithClock(func() time.Time { return past }))
	require.NoError(t, err)
	expired, err := expiredMaker.GenerateToken("user-42")
	require.NoError(t, err)

	handler := New(slog.New(slog.NewTextHandler(io.Discard, nil)), makerService{maker: maker}, session.NewTransport(false, time.Hour))

	tests := []struct {
		name     string
		cookie   string
		wantBody string
	}{
		{name: "no cookie", wantBody: `{"isLoggedIn":false}`},
		{name: "garbage token", cookie: "garbage", wantBody: `{"isLoggedIn":false}`},
		{name: "expired token", cookie: expired, wantBody: `{"isLoggedIn":false}`},
		{name: "valid token", cookie: valid, wantBody: `{"isLoggedIn":true,"user":{"userId":"user-42"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: session.CookieName, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
