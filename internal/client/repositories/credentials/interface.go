package credentials

import (
	"context"

	"github.com/mpavlovs/authkeep/internal/dbx"
)

// Repository is key-addressed persistence for encrypted credential entries.
// Values are opaque ciphertext with their AES-GCM nonce stored alongside.
//
// Get returns (nil, nil, nil) for a missing key; Delete of a missing key
// succeeds. Implementations accept either a plain DB handle or a transaction
// via dbx.DBTX, so a set of writes can be made atomic by the caller.
type Repository interface {
	Get(ctx context.Context, key string) (value, nonce []byte, err error)
	Set(ctx context.Context, key string, value, nonce []byte) error
	Delete(ctx context.Context, key string) error
}

// NewTx returns a Repository bound to the given handle (DB or transaction).
func NewTx(db dbx.DBTX) Repository {
	return &SQLiteRepository{db: db}
}
