package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// PostgresMedium persists keys in the kv_store table.
type PostgresMedium struct {
	pool *pgxpool.Pool
}

func NewPostgresMedium(pool *pgxpool.Pool) *PostgresMedium {
	return &PostgresMedium{pool: pool}
}

func (m *PostgresMedium) Read(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := m.pool.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		err := fmt.Errorf("could not read key %q: %w", key, err)
		log.Error(err)
		return "", false, err
	}
	return value, true, nil
}

func (m *PostgresMedium) Write(ctx context.Context, key string, value string) error {
	query := `INSERT INTO kv_store (key, value, updated_at)
              VALUES ($1, $2, now())
              ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	if _, err := m.pool.Exec(ctx, query, key, value); err != nil {
		err := fmt.Errorf("could not write key %q: %w", key, err)
		log.Error(err)
		return err
	}
	return nil
}
