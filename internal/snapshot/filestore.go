package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brandvault/brandvault-backend/internal/platform/logger"
)

// FileStore writes the snapshot as a single JSON document, with a tmp-file
// rename so a crash mid-write never leaves a truncated snapshot behind.
type FileStore struct {
	log  *logger.Logger
	path string
}

func NewFileStore(path string, log *logger.Logger) *FileStore {
	return &FileStore{
		log:  log.With("store", "SnapshotFileStore"),
		path: path,
	}
}

func (s *FileStore) Save(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	s.log.Debug("snapshot saved", "path", s.path, "bytes", len(data))
	return nil
}

func (s *FileStore) Load(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.log.Info("no snapshot on disk, starting empty", "path", s.path)
		return Normalize(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return Normalize(&doc), nil
}
