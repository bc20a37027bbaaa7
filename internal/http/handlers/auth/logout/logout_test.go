package logout

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
)

func TestLogoutHandler_ClearsCookie(t *testing.T) {
	handler := New(slog.New(slog.NewTextHandler(io.Discard, nil)), session.NewTransport(false, time.Hour))

	for _, withCookie := range []bool{true, false} {
		req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		if withCookie {
			req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "tok"})
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, session.CookieName, cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
		assert.Less(t, cookies[0].MaxAge, 0)
	}
}
