// Package secrets provides the symmetric encryption capability used for
// session persistence at rest.
package secrets

import (
	"crypto/rand"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"
)

// Crypto encrypts and decrypts opaque byte blobs. Implementations combine the
// nonce with the ciphertext so callers treat the output as a single blob.
type Crypto interface {
	Encrypt(plain []byte) ([]byte, error)
	Decrypt(encrypted []byte) ([]byte, error)
}

// AEADCrypto is an XChaCha20-Poly1305 Crypto. Degraded reports whether the key
// is an in-process ephemeral one rather than durable key material, which means
// persisted sessions will not survive a restart.
type AEADCrypto struct {
	key      []byte
	degraded bool
}

var _ Crypto = (*AEADCrypto)(nil)

// New creates an AEADCrypto from a 32-byte key.
func New(key []byte) (*AEADCrypto, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, errors.Errorf("[secrets.New] key must be %d bytes", chacha20poly1305.KeySize)
	}
	return &AEADCrypto{key: key}, nil
}

// Open loads the key from keyPath, creating it with owner-only permissions on
// first use. When the key file can neither be read nor created, Open falls
// back to a freshly generated in-process key and marks the result degraded
// instead of failing: losing encryption durability must not lose the ability
// to persist a session at all.
func Open(keyPath string) (*AEADCrypto, error) {
	key, err := loadOrCreateKey(keyPath)
	if err != nil {
		ephemeral := make([]byte, chacha20poly1305.KeySize)
		if _, randErr := rand.Read(ephemeral); randErr != nil {
			return nil, errors.Wrap(randErr, "[secrets.Open] generate fallback key")
		}
		return &AEADCrypto{key: ephemeral, degraded: true}, nil
	}
	return &AEADCrypto{key: key}, nil
}

// Degraded reports whether the key is ephemeral rather than durable.
func (c *AEADCrypto) Degraded() bool {
	return c.degraded
}

// Encrypt seals plain and returns [nonce][ciphertext] combined.
func (c *AEADCrypto) Encrypt(plain []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return nil, errors.Wrap(err, "[secrets.Encrypt] init cipher")
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, errors.Wrap(err, "[secrets.Encrypt] generate nonce")
	}
	return aead.Seal(nonce, nonce, plain, nil), nil
}

// Decrypt opens a combined [nonce][ciphertext] blob.
func (c *AEADCrypto) Decrypt(encrypted []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return nil, errors.Wrap(err, "[secrets.Decrypt] init cipher")
	}
	if len(encrypted) <= aead.NonceSize() {
		return nil, errors.New("[secrets.Decrypt] blob too short to contain nonce and ciphertext")
	}
	nonce, ciphertext := encrypted[:aead.NonceSize()], encrypted[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, errors.Wrap(err, "[secrets.Decrypt] open ciphertext")
	}
	return plain, nil
}

func loadOrCreateKey(keyPath string) ([]byte, error) {
	key, err := os.ReadFile(keyPath)
	if err == nil {
		if len(key) != chacha20poly1305.KeySize {
			return nil, errors.Errorf("key file %s has %d bytes, want %d", keyPath, len(key), chacha20poly1305.KeySize)
		}
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "read key file")
	}

	key = make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Wrap(err, "generate key")
	}
	if err := os.MkdirAll(filepath.Dir(keyPath), 0o700); err != nil {
		return nil, errors.Wrap(err, "create key directory")
	}
	if err := os.WriteFile(keyPath, key, 0o600); err != nil {
		return nil, errors.Wrap(err, "write key file")
	}
	return key, nil
}
