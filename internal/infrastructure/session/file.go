package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/example/holdbot/internal/domain/session"
)

const DefaultFile = "state.json"

// FileStore keeps the sealed blob in a single file.
type FileStore struct {
	Path  string
	Codec *Codec
}

func NewFileStore(path string, codec *Codec) *FileStore {
	if path == "" {
		path = DefaultFile
	}
	return &FileStore{Path: path, Codec: codec}
}

func (s *FileStore) Exists(ctx context.Context) (bool, error) {
	_, err := os.Stat(s.Path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

func (s *FileStore) Load(ctx context.Context) (session.Blob, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return session.Blob{}, session.ErrNotFound
	}
	if err != nil {
		return session.Blob{}, err
	}
	b, err := s.Codec.Decode(string(data))
	if err != nil {
		return session.Blob{}, fmt.Errorf("decode %s: %w", s.Path, err)
	}
	return b, nil
}

// Save replaces the file atomically. The file is readable by its owner only.
func (s *FileStore) Save(ctx context.Context, b session.Blob) error {
	enc, err := s.Codec.Encode(b)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(enc); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}
