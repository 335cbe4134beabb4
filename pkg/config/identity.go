package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// FileIdentityStore keeps the surface message id in the messageID key of the config file.
// Other keys are preserved; comments and key order are not.
type FileIdentityStore struct {
	path string
	lock sync.Mutex
}

func NewFileIdentityStore(path string) *FileIdentityStore {
	return &FileIdentityStore{path: path}
}

func (s *FileIdentityStore) Load(_ context.Context) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	var c struct {
		MessageID string `toml:"messageID"`
	}
	if _, err := toml.DecodeFile(s.path, &c); err != nil {
		return "", err
	}
	return c.MessageID, nil
}

func (s *FileIdentityStore) Save(_ context.Context, messageID string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	raw := map[string]interface{}{}
	if _, err := toml.DecodeFile(s.path, &raw); err != nil {
		return err
	}
	raw["messageID"] = messageID

	info, err := os.Stat(s.path)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
