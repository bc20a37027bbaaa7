// Package middlewarectx содержит HTTP middleware сервиса.
//
// SessionMiddleware достаёт сессионный токен из cookie, проверяет его и кладёт
// идентификатор пользователя в контекст запроса. Любая ошибка проверки даёт
// 401 Unauthorized с одинаковым телом, причина не раскрывается.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/survey-insights/internal/http/response"
	"github.com/magabrotheeeer/survey-insights/internal/http/session"
	"github.com/magabrotheeeer/survey-insights/internal/lib/jwt"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserID ключ идентификатора пользователя в контексте.
const UserID Key = "user_id"

// Service проверяет сессионный токен.
type Service interface {
	CurrentUser(token string) (*jwt.Claims, bool)
}

// WithUserID возвращает контекст с идентификатором пользователя.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserID, userID)
}

// UserIDFrom достаёт идентификатор пользователя из контекста.
func UserIDFrom(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserID).(string)
	return userID, ok && userID != ""
}

// SessionMiddleware пропускает запрос дальше только с действительным сессионным токеном.
// Токен читается через transport, тем же способом, что и в обработчиках.
func SessionMiddleware(authService Service, transport *session.Transport, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token, ok := transport.Extract(r)
			if !ok {
				log.Info("session cookie missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(response.MsgUnauthorized))
				return
			}

			claims, ok := authService.CurrentUser(token)
			if !ok {
				log.Info("invalid or expired session token")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(response.MsgUnauthorized))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.UserID)))
		})
	}
}
