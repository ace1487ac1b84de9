package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/screener/pkg/domain"
	"github.com/aretw0/screener/pkg/ports"
)

// sealedPrefix marks a field value written by the encryption middleware.
const sealedPrefix = "enc:v1:"

// ErrDecrypt is returned when a sealed field cannot be opened with any key.
var ErrDecrypt = errors.New("decryption failed with all available keys")

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys are tried in order when the active key cannot open a
	// value, so keys can be rotated without rewriting the store.
	FallbackKeys [][]byte
}

// ParseKey decodes a base64 AES-256 key.
func ParseKey(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("key must be 32 bytes (AES-256), got %d", len(key))
	}
	return key, nil
}

type encryptionMiddleware struct {
	ports.RecordStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that seals the candidate's
// phone and compensation fields with AES-GCM before they reach the store.
// Values stored before encryption was enabled are read back as is.
func NewEncryptionMiddleware(config EncryptionConfig) (Middleware, error) {
	if len(config.ActiveKey) != 32 {
		return nil, errors.New("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.RecordStore) ports.RecordStore {
		return &encryptionMiddleware{RecordStore: next, config: config}
	}, nil
}

func piiFields(c *domain.Candidate) []*string {
	return []*string{&c.Phone, &c.CurrentCTC, &c.ExpectedCTC}
}

func (m *encryptionMiddleware) SaveCandidate(ctx context.Context, c domain.Candidate) error {
	for _, f := range piiFields(&c) {
		if *f == "" {
			continue
		}
		sealed, err := encrypt([]byte(*f), m.config.ActiveKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt candidate %s: %w", c.ID, err)
		}
		*f = sealedPrefix + base64.StdEncoding.EncodeToString(sealed)
	}
	return m.RecordStore.SaveCandidate(ctx, c)
}

func (m *encryptionMiddleware) GetCandidate(ctx context.Context, id string) (domain.Candidate, error) {
	c, err := m.RecordStore.GetCandidate(ctx, id)
	if err != nil {
		return domain.Candidate{}, err
	}
	if err := m.open(&c); err != nil {
		return domain.Candidate{}, err
	}
	return c, nil
}

func (m *encryptionMiddleware) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	list, err := m.RecordStore.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if err := m.open(&list[i]); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (m *encryptionMiddleware) open(c *domain.Candidate) error {
	for _, f := range piiFields(c) {
		encoded, ok := strings.CutPrefix(*f, sealedPrefix)
		if !ok {
			continue
		}
		ciphertext, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return fmt.Errorf("failed to decode candidate %s: %w", c.ID, err)
		}
		plain, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
		if err != nil {
			return fmt.Errorf("candidate %s: %w", c.ID, err)
		}
		*f = string(plain)
	}
	return nil
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}
	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}
	return nil, ErrDecrypt
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
