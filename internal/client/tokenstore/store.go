package tokenstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mpavlovs/authkeep/internal/client/models"
	"github.com/mpavlovs/authkeep/internal/client/repositories/credentials"
	"github.com/mpavlovs/authkeep/internal/cryptox"
	"github.com/mpavlovs/authkeep/internal/dbx"
)

// Logical keys of the persisted session. The three session keys are always
// written and cleared together; InstallationID lives outside the session and
// survives ClearSession.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"

	keyInstallationID = "installation_id"
)

// Store is the durable, encrypted-at-rest home of the issued credentials:
// access token, refresh token, and the serialized user profile. Values are
// sealed with AES-GCM under the key handed over at construction time.
//
// An entry that is present but cannot be unsealed (corrupted, or written
// under a different key) is reported as absent rather than as an error: such
// an entry can never be recovered, and hydration must not fail because of it.
type Store struct {
	db  *sql.DB
	key []byte
}

// New builds a Store over the given database handle. key must be a valid
// AES key (the CLI derives one with cryptox.DeriveKey from a device secret;
// mobile shells pass a keychain-held key).
func New(db *sql.DB, key []byte) *Store {
	return &Store{db: db, key: key}
}

// AccessToken returns the stored access token, or "" when absent.
func (s *Store) AccessToken(ctx context.Context) (string, error) {
	b, err := s.get(ctx, KeyAccessToken)
	return string(b), err
}

// RefreshToken returns the stored refresh token, or "" when absent.
func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	b, err := s.get(ctx, KeyRefreshToken)
	return string(b), err
}

// LoadUser returns the stored user profile, or nil when absent. A stored
// blob that does not decode as a User is treated as absent.
func (s *Store) LoadUser(ctx context.Context) (*models.User, error) {
	b, err := s.get(ctx, KeyUser)
	if err != nil || b == nil {
		return nil, err
	}

	var u models.User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, nil
	}
	return &u, nil
}

// SaveSession persists the full projection of an AuthResponse: access token,
// refresh token, and serialized user, atomically. Either all three entries
// land or none do, so a crash mid-write cannot leave a torn session behind.
func (s *Store) SaveSession(ctx context.Context, resp *models.AuthResponse) error {
	userBlob, err := json.Marshal(resp.User)
	if err != nil {
		return fmt.Errorf("failed to serialize user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := credentials.NewTx(tx)
		if err := s.set(ctx, repo, KeyAccessToken, []byte(resp.AccessToken)); err != nil {
			return err
		}
		if err := s.set(ctx, repo, KeyRefreshToken, []byte(resp.RefreshToken)); err != nil {
			return err
		}
		return s.set(ctx, repo, KeyUser, userBlob)
	})
}

// ClearSession removes all three session entries atomically. Clearing an
// already-empty store succeeds.
func (s *Store) ClearSession(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := credentials.NewTx(tx)
		for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyUser} {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}

// InstallationID returns the stable per-install identifier, generating and
// persisting a fresh UUID on first use. It is not part of the session and is
// untouched by ClearSession.
func (s *Store) InstallationID(ctx context.Context) (string, error) {
	b, err := s.get(ctx, keyInstallationID)
	if err != nil {
		return "", err
	}
	if b != nil {
		return string(b), nil
	}

	id := uuid.NewString()
	if err := s.set(ctx, credentials.NewTx(s.db), keyInstallationID, []byte(id)); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) get(ctx context.Context, key string) ([]byte, error) {
	value, nonce, err := credentials.NewTx(s.db).Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}

	plaintext, err := cryptox.DecryptValue(value, nonce, s.key)
	if err != nil {
		// unsealable entries are unrecoverable; report as absent
		return nil, nil
	}
	return plaintext, nil
}

func (s *Store) set(ctx context.Context, repo credentials.Repository, key string, plaintext []byte) error {
	ciphertext, nonce, err := cryptox.EncryptValue(plaintext, s.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt credentials[%s]: %w", key, err)
	}
	return repo.Set(ctx, key, ciphertext, nonce)
}
