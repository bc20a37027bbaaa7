// Package jwt реализует выпуск и проверку подписанных сессионных токенов.
//
// Maker подписывает токены секретом процесса (HS256) и ограничивает срок их
// жизни. Любая ошибка проверки сводится к ErrInvalidToken, чтобы вызывающий
// код не мог различить повреждённый, подделанный и просроченный токен.
package jwt

import (
	"errors"
	"time"
)

// DefaultTTL время жизни сессионного токена.
const DefaultTTL = time.Hour

var (
	// ErrEmptySecret возвращается при попытке создать Maker без секрета.
	ErrEmptySecret = errors.New("jwt signing secret is empty")
	// ErrInvalidToken возвращается для любого непригодного токена.
	ErrInvalidToken = errors.New("invalid token")
)

// Maker описывает выпуск и разбор сессионных токенов.
type Maker interface {
	// GenerateToken выпускает токен для пользователя.
	GenerateToken(userID string) (string, error)
	// ParseToken проверяет токен и возвращает его claims.
	ParseToken(tokenStr string) (*Claims, error)
}

// MakerImpl реализует Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// Option настраивает MakerImpl.
type Option func(*MakerImpl)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(m *MakerImpl) {
		m.now = now
	}
}

// NewJWTMaker создаёт MakerImpl. Пустой секрет считается ошибкой конфигурации,
// запасного секрета нет.
func NewJWTMaker(secretKey string, ttl time.Duration, opts ...Option) (*MakerImpl, error) {
	if secretKey == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &MakerImpl{
		secretKey: []byte(secretKey),
		tokenTTL:  ttl,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// TTL возвращает время жизни выпускаемых токенов.
func (j *MakerImpl) TTL() time.Duration {
	return j.tokenTTL
}
