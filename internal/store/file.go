package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore keeps the document as a single JSON file, read and written whole.
// Writes go through a uniquely named temp file and a rename, so a writer that
// dies mid-write cannot leave a truncated document behind. Two processes
// sharing the same path can still lose updates to each other; the state here
// is advisory (quota counts, cached results), so last-writer-wins is fine.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Load(v any) (bool, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read state file '%s': %w", s.Path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		// Corrupt state counts as absent; the next Save repairs the file.
		return false, nil
	}
	return true, nil
}

func (s *FileStore) Save(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create state directory '%s': %w", dir, err)
		}
	}
	tmp := fmt.Sprintf("%s.%s.tmp", s.Path, uuid.NewString())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file '%s': %w", tmp, err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace state file '%s': %w", s.Path, err)
	}
	return nil
}
