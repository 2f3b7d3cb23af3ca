package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fmsdesk/internal/dbx"
)

// entry is one row of the credentials table.
type entry struct {
	Value     string
	ExpiresAt time.Time
}

// sqliteRepository is the row-level access used by Store, always inside a
// transaction.
type sqliteRepository struct {
	db dbx.DBTX
}

func newSQLiteRepository(db dbx.DBTX) *sqliteRepository {
	return &sqliteRepository{db: db}
}

// Get returns the entry for key, or ok=false when it is missing or expired
// at now.
func (r *sqliteRepository) Get(ctx context.Context, key string, now time.Time) (entry, bool, error) {
	var (
		value   string
		expires int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM credentials WHERE key = ? AND expires_at > ?`,
		key, now.Unix(),
	).Scan(&value, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return entry{}, false, nil
	}
	if err != nil {
		return entry{}, false, fmt.Errorf("failed to get credential[%s]: %w", key, err)
	}
	return entry{Value: value, ExpiresAt: time.Unix(expires, 0)}, true, nil
}

func (r *sqliteRepository) Set(ctx context.Context, key string, e entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO credentials (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`, key, e.Value, e.ExpiresAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to set credential[%s]: %w", key, err)
	}
	return nil
}

func (r *sqliteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete credential[%s]: %w", key, err)
	}
	return nil
}

func (r *sqliteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM credentials`); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
