// Package cryptox implements the at-rest encryption used by the credentials
// store: AES-GCM for values and argon2id for deriving the store key from a
// device secret.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"

	"golang.org/x/crypto/argon2"
)

// DeriveKey derives a 32-byte AES key from a device secret and salt using
// argon2id. The same (secret, salt) pair always yields the same key, so the
// store remains readable across process restarts.
func DeriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, 32)
}

// EncryptValue encrypts plaintext with AES-GCM under the given key.
//
// The key must be a valid AES key length (16, 24, or 32 bytes). A fresh
// random 12-byte nonce is generated per call and returned alongside the
// ciphertext; both must be stored to decrypt later.
func EncryptValue(plaintext []byte, key []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, 12)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}

	ciphertext = aesgcm.Seal(nil, nonce, plaintext, nil)
	return ciphertext, nonce, nil
}

// DecryptValue decrypts ciphertext produced by EncryptValue. The key and
// nonce must match the ones used at encryption time; any tampering with the
// ciphertext makes the GCM tag check fail and an error is returned.
func DecryptValue(ciphertext, nonce, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return aesgcm.Open(nil, nonce, ciphertext, nil)
}
