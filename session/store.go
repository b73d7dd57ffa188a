package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/devconsole/go-auth-sdk/internal/utils"
	"github.com/devconsole/go-auth-sdk/secrets"
)

// Store persists at most one session record. Every operation fails soft: a
// read or decrypt problem surfaces as an absent record, a write problem is
// logged and swallowed so the in-memory state transition still happens.
type Store interface {
	Get() *SessionData
	Save(data *SessionData)
	Clear()
	HasExpired() bool
}

// FileStore is a Store backed by a single encrypted file. When no Crypto
// capability is available the store downgrades to a plaintext codec rather
// than losing the ability to persist at all; the downgrade is logged.
type FileStore struct {
	path    string
	crypto  secrets.Crypto
	nowTime func() time.Time
	log     zerolog.Logger
}

var _ Store = (*FileStore)(nil)

// FileStoreOption configures a FileStore.
type FileStoreOption func(*FileStore)

// WithStoreLogger sets the store logger.
func WithStoreLogger(log zerolog.Logger) FileStoreOption {
	return func(s *FileStore) {
		s.log = log
	}
}

// WithStoreNowTime sets the now time function (primarily for testing).
func WithStoreNowTime(nowFunc func() time.Time) FileStoreOption {
	return func(s *FileStore) {
		s.nowTime = nowFunc
	}
}

// NewFileStore creates a FileStore at path. crypto may be nil, which selects
// the plaintext codec.
func NewFileStore(path string, crypto secrets.Crypto, options ...FileStoreOption) *FileStore {
	s := &FileStore{
		path:    path,
		crypto:  crypto,
		nowTime: time.Now,
		log:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.crypto == nil {
		s.log.Warn().Str("path", path).Msg("no crypto capability, persisting sessions unencrypted")
	}
	return s
}

// Get returns the persisted record, or nil when there is none or it cannot be
// read or decrypted.
func (s *FileStore) Get() *SessionData {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Msg("session read failed")
		}
		return nil
	}

	if s.crypto != nil {
		raw, err = s.crypto.Decrypt(raw)
		if err != nil {
			s.log.Warn().Err(err).Msg("session decrypt failed")
			return nil
		}
	}

	var data SessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		s.log.Warn().Err(err).Msg("session decode failed")
		return nil
	}
	return &data
}

// Save writes the record through the crypto capability. Failures are logged
// and otherwise ignored.
func (s *FileStore) Save(data *SessionData) {
	if data == nil {
		return
	}
	record := *data
	record.Version = SchemaVersion

	raw, err := json.Marshal(record)
	if err != nil {
		s.log.Error().Err(err).Msg("session encode failed")
		return
	}

	if s.crypto != nil {
		raw, err = s.crypto.Encrypt(raw)
		if err != nil {
			s.log.Error().Err(err).Msg("session encrypt failed")
			return
		}
	}

	if err := writeFileAtomic(s.path, raw); err != nil {
		s.log.Error().Err(err).Msg("session write failed")
	}
}

// Clear removes the persisted record.
func (s *FileStore) Clear() {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.log.Warn().Err(err).Msg("session clear failed")
	}
}

// HasExpired reports whether the persisted record is stale. A missing record,
// an empty authorization code, a missing encoded JWT or an unparseable expiry
// claim all count as expired: the check fails closed.
func (s *FileStore) HasExpired() bool {
	data := s.Get()
	if data == nil {
		return true
	}
	if data.AuthorizationCode == "" {
		return true
	}

	encodedJWT := utils.Value(data.TwoTokens.EncodedJWT)
	if encodedJWT == "" {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(encodedJWT, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return !exp.Time.After(s.nowTime())
}

func writeFileAtomic(path string, raw []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
