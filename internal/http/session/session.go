// Package session переносит сессионный токен между клиентом и сервером
// в HTTP cookie.
//
// Cookie всегда HttpOnly, SameSite=Strict, Path=/ и получает явный Max-Age,
// равный времени жизни токена, чтобы cookie не переживала сам токен.
// Secure выставляется в production-окружении.
package session

import (
	"net/http"
	"time"
)

// CookieName имя cookie с сессионным токеном.
const CookieName = "auth_token"

// Transport описывает параметры сессионной cookie.
type Transport struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// NewTransport создаёт Transport для cookie auth_token.
func NewTransport(secure bool, ttl time.Duration) *Transport {
	return &Transport{
		Name:   CookieName,
		Secure: secure,
		TTL:    ttl,
	}
}

// Attach добавляет в ответ Set-Cookie с токеном.
func (t *Transport) Attach(w http.ResponseWriter, token string) {
	http.SetCookie(w, t.cookie(token, int(t.TTL/time.Second)))
}

// Clear добавляет в ответ Set-Cookie с пустым значением и истёкшим сроком,
// чтобы клиент немедленно удалил cookie.
func (t *Transport) Clear(w http.ResponseWriter) {
	c := t.cookie("", -1)
	c.Expires = time.Unix(0, 0).UTC()
	http.SetCookie(w, c)
}

// Extract возвращает токен из cookie запроса. Второе значение false,
// если заголовка Cookie нет, cookie с нужным именем нет или она пустая.
func (t *Transport) Extract(r *http.Request) (string, bool) {
	c, err := r.Cookie(t.Name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (t *Transport) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     t.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   t.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ParseCookieHeader разбирает значение заголовка Cookie в соответствии
// с грамматикой RFC 6265 и возвращает отображение имя → значение.
// Пары с недопустимым именем или значением пропускаются, знак '=' внутри
// значения сохраняется; при повторе имени побеждает первое.
func ParseCookieHeader(header string) map[string]string {
	result := make(map[string]string)
	if header == "" {
		return result
	}
	r := &http.Request{Header: http.Header{"Cookie": []string{header}}}
	for _, c := range r.Cookies() {
		if _, seen := result[c.Name]; !seen {
			result[c.Name] = c.Value
		}
	}
	return result
}
