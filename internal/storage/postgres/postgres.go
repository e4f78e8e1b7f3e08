package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jane-devs/barter-platform/internal/storage"
)

// Querier – общий интерфейс для пула соединений и транзакции.
// Позволяет выполнять одни и те же запросы внутри и вне транзакции.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Storage – реализация хранилища поверх PostgreSQL
type Storage struct {
	pool *pgxpool.Pool
	q    Querier
}

// New создает хранилище поверх пула соединений
func New(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool, q: pool}
}

// WithinTx выполняет fn внутри одной транзакции. Любая ошибка из fn
// откатывает все изменения целиком.
func (s *Storage) WithinTx(ctx context.Context, fn func(storage.Store) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&Storage{pool: s.pool, q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	return nil
}
