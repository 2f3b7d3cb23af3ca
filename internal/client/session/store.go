package session

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/fmsdesk/internal/client/models"
	"github.com/dmitrijs2005/fmsdesk/internal/common"
	"github.com/dmitrijs2005/fmsdesk/internal/dbx"
)

// Credentials is the persisted session. Empty fields are absent or expired.
type Credentials struct {
	AccessToken  string
	RefreshToken string
	UserID       string
}

// HasAccess reports whether an access token is present.
func (c Credentials) HasAccess() bool {
	return c.AccessToken != ""
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Save replaces the whole session. An empty value removes its entry.
func (s *Store) Save(ctx context.Context, pair models.TokenPair, userID string) error {
	now := s.now()
	values := []struct {
		key   string
		value string
		ttl   time.Duration
	}{
		{common.AccessTokenKey, pair.Access, common.AccessTokenTTL},
		{common.RefreshTokenKey, pair.Refresh, common.RefreshTokenTTL},
		{common.UserIDKey, userID, common.UserIDTTL},
	}

	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := newSQLiteRepository(tx)
		for _, v := range values {
			if v.value == "" {
				if err := repo.Delete(ctx, v.key); err != nil {
					return err
				}
				continue
			}
			if err := repo.Set(ctx, v.key, entry{Value: v.value, ExpiresAt: now.Add(v.ttl)}); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load returns the unexpired entries.
func (s *Store) Load(ctx context.Context) (Credentials, error) {
	now := s.now()
	var c Credentials

	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := newSQLiteRepository(tx)
		targets := map[string]*string{
			common.AccessTokenKey:  &c.AccessToken,
			common.RefreshTokenKey: &c.RefreshToken,
			common.UserIDKey:       &c.UserID,
		}
		for key, dst := range targets {
			e, ok, err := repo.Get(ctx, key, now)
			if err != nil {
				return err
			}
			if ok {
				*dst = e.Value
			}
		}
		return nil
	})
	if err != nil {
		return Credentials{}, err
	}
	return c, nil
}

// Clear removes all three entries.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		return newSQLiteRepository(tx).Clear(ctx)
	})
}

// AccessToken implements client.TokenSource.
func (s *Store) AccessToken(ctx context.Context) (string, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	if !c.HasAccess() {
		return "", common.ErrNoCredentials
	}
	return c.AccessToken, nil
}
