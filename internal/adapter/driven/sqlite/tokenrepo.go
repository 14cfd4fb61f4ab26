package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
	"github.com/ericfisherdev/trailtail/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.TokenStore = (*TokenRepo)(nil)

// TokenRepo is the SQLite implementation of the TokenStore port interface.
// When a key is configured, values are encrypted with AES-256-GCM before
// write and decrypted after read; otherwise they are stored as-is.
type TokenRepo struct {
	db  *DB
	key []byte // 32-byte AES-256 key; nil stores plaintext.
}

// NewTokenRepo creates a new TokenRepo. key must be 32 bytes for AES-256-GCM,
// or nil to store values without encryption.
func NewTokenRepo(db *DB, key []byte) *TokenRepo {
	return &TokenRepo{db: db, key: key}
}

// Set stores or replaces the value under key.
func (r *TokenRepo) Set(ctx context.Context, key, value string) error {
	stored, encrypted, err := r.seal(value)
	if err != nil {
		return err
	}

	const query = `INSERT INTO credentials (name, value, encrypted, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			value = excluded.value,
			encrypted = excluded.encrypted,
			updated_at = excluded.updated_at`
	_, err = r.db.Writer.ExecContext(ctx, query, key, stored, encrypted)
	if err != nil {
		return fmt.Errorf("set credential %q: %w", key, err)
	}
	return nil
}

// Get returns the value stored under key.
// Returns ("", nil) if nothing is stored.
func (r *TokenRepo) Get(ctx context.Context, key string) (string, error) {
	cred, err := r.lookup(ctx, key)
	if err != nil {
		return "", err
	}
	if cred == nil {
		return "", nil
	}
	return cred.Token, nil
}

// lookup returns the full credential row under key, or nil if absent.
func (r *TokenRepo) lookup(ctx context.Context, key string) (*model.Credential, error) {
	const query = `SELECT value, encrypted, updated_at FROM credentials WHERE name = ?`

	var (
		stored    string
		encrypted bool
		updatedAt string
	)
	err := r.db.Reader.QueryRowContext(ctx, query, key).Scan(&stored, &encrypted, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get credential %q: %w", key, err)
	}

	value := stored
	if encrypted {
		value, err = r.open(stored)
		if err != nil {
			return nil, fmt.Errorf("decrypt credential %q: %w", key, err)
		}
	}

	cred := &model.Credential{Key: key, Token: value}
	cred.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at for credential %q: %w", key, err)
	}
	return cred, nil
}

// Delete removes the value under key.
func (r *TokenRepo) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM credentials WHERE name = ?`
	_, err := r.db.Writer.ExecContext(ctx, query, key)
	if err != nil {
		return fmt.Errorf("delete credential %q: %w", key, err)
	}
	return nil
}

// seal returns the value to store and whether it was encrypted.
// The encrypted form is base64(nonce || ciphertext || tag).
func (r *TokenRepo) seal(plaintext string) (string, bool, error) {
	if r.key == nil {
		return plaintext, false, nil
	}

	gcm, err := r.gcm()
	if err != nil {
		return "", false, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", false, fmt.Errorf("rand nonce: %w", err)
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), true, nil
}

// open decrypts a value written by seal.
func (r *TokenRepo) open(encoded string) (string, error) {
	if r.key == nil {
		return "", driven.ErrTokenUndecryptable
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	gcm, err := r.gcm()
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", driven.ErrTokenUndecryptable, err)
	}

	return string(plaintext), nil
}

func (r *TokenRepo) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(r.key)
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher.NewGCM: %w", err)
	}
	return gcm, nil
}
