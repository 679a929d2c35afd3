package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mpavlovs/authkeep/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, []byte, error) {
	var value, nonce []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT value, nonce FROM credentials WHERE key = ?`, key).Scan(&value, &nonce)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get credentials[%s]: %w", key, err)
	}
	return value, nonce, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value, nonce []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO credentials (key, value, nonce) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, nonce = excluded.nonce
	`, key, value, nonce)
	if err != nil {
		return fmt.Errorf("failed to set credentials[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete credentials[%s]: %w", key, err)
	}
	return nil
}
