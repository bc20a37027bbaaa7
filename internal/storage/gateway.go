// Package storage предоставляет ленивое подключение к PostgreSQL, общее для
// всех запросов процесса, и ошибки слоя хранения.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/singleflight"
)

const (
	defaultConnectTimeout = 10 * time.Second
	connectKey            = "connect"
)

// OpenFunc открывает и проверяет соединение с базой.
type OpenFunc func(ctx context.Context, dsn string) (*sql.DB, error)

// Gateway владеет единственным *sql.DB процесса.
//
// Первое обращение открывает соединение; одновременные вызовы Connect
// дожидаются одной и той же попытки. Успешное соединение кешируется
// навсегда, неудачная попытка не кешируется и следующий вызов пробует снова.
type Gateway struct {
	dsn            string
	open           OpenFunc
	connectTimeout time.Duration

	group singleflight.Group
	mu    sync.RWMutex
	db    *sql.DB
}

// Option настраивает Gateway.
type Option func(*Gateway)

// WithOpenFunc подменяет способ открытия соединения.
func WithOpenFunc(open OpenFunc) Option {
	return func(g *Gateway) {
		g.open = open
	}
}

// WithConnectTimeout ограничивает время одной попытки подключения.
func WithConnectTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.connectTimeout = d
		}
	}
}

// NewGateway создаёт Gateway. Подключение не выполняется до первого Connect.
func NewGateway(dsn string, opts ...Option) *Gateway {
	g := &Gateway{
		dsn:            dsn,
		open:           openPostgres,
		connectTimeout: defaultConnectTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Connect возвращает общее соединение, открывая его при необходимости.
func (g *Gateway) Connect(ctx context.Context) (*sql.DB, error) {
	const op = "storage.Connect"

	if db := g.cached(); db != nil {
		return db, nil
	}
	if g.dsn == "" {
		return nil, fmt.Errorf("%s: %w: empty connection string", op, ErrStorageUnavailable)
	}

	ch := g.group.DoChan(connectKey, func() (any, error) {
		if db := g.cached(); db != nil {
			return db, nil
		}
		// попытка общая для всех ожидающих, отмена одного вызывающего её не прерывает
		connectCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.connectTimeout)
		defer cancel()

		db, err := g.open(connectCtx, g.dsn)
		if err != nil {
			return nil, err
		}
		g.mu.Lock()
		g.db = db
		g.mu.Unlock()
		return db, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, res.Err)
		}
		return res.Val.(*sql.DB), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, ctx.Err())
	}
}

// Ping проверяет доступность базы.
func (g *Gateway) Ping(ctx context.Context) error {
	const op = "storage.Ping"
	db, err := g.Connect(ctx)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
	}
	return nil
}

// Close закрывает соединение, если оно было открыто.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.db == nil {
		return nil
	}
	err := g.db.Close()
	g.db = nil
	return err
}

func (g *Gateway) cached() *sql.DB {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.db
}

func openPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
