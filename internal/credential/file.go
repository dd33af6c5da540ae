package credential

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const (
	masterKeyFile = "master.key"
	saltFile      = "salt"
	fileSuffix    = ".cred"
	keyPurpose    = "paydash-credential-store"
)

// FileStore keeps each value AES-GCM encrypted in its own 0600 file under
// dir. The encryption key is derived from the configured secret, or from a
// random master key generated in dir on first use when no secret is set.
type FileStore struct {
	dir    string
	secret []byte

	once sync.Once
	key  []byte
	err  error
	mu   sync.Mutex
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir, secret string) *FileStore {
	s := &FileStore{dir: dir}
	if secret != "" {
		s.secret = []byte(secret)
	}
	return s
}

func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validKey(key); err != nil {
		return "", false, err
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read credential %s: %w", key, err)
	}

	k, err := s.encryptionKey()
	if err != nil {
		return "", false, err
	}
	plain, err := open(k, blob, []byte(key))
	if err != nil {
		return "", false, fmt.Errorf("decrypt credential %s: %w", key, err)
	}
	return string(plain), true, nil
}

func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k, err := s.encryptionKey()
	if err != nil {
		return err
	}
	blob, err := seal(k, []byte(value), []byte(key))
	if err != nil {
		return fmt.Errorf("encrypt credential %s: %w", key, err)
	}

	// Write then rename; readers never see a partial blob.
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o600); err != nil {
		return fmt.Errorf("write credential %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write credential %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+fileSuffix)
}

func (s *FileStore) encryptionKey() ([]byte, error) {
	s.once.Do(func() {
		if err := os.MkdirAll(s.dir, 0o700); err != nil {
			s.err = fmt.Errorf("create credential dir: %w", err)
			return
		}
		salt, err := s.loadOrCreate(saltFile, 16)
		if err != nil {
			s.err = err
			return
		}
		secret := s.secret
		if secret == nil {
			if secret, err = s.loadOrCreate(masterKeyFile, keySize); err != nil {
				s.err = err
				return
			}
		}
		s.key, s.err = deriveKey(secret, salt, keyPurpose)
	})
	return s.key, s.err
}

func (s *FileStore) loadOrCreate(name string, size int) ([]byte, error) {
	p := filepath.Join(s.dir, name)
	b, err := os.ReadFile(p)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if b, err = randomBytes(size); err != nil {
		return nil, err
	}
	if err := os.WriteFile(p, b, 0o600); err != nil {
		return nil, fmt.Errorf("write %s: %w", name, err)
	}
	return b, nil
}
