package store

import (
	"fmt"
	"strings"

	"go.etcd.io/bbolt"

	"github.com/agenthands/veracity/internal/config"
)

// Stores bundles the two persisted state documents and whatever backing
// handle they share.
type Stores struct {
	Quota Store
	Cache Store

	db *bbolt.DB // set only for the bolt backend
}

func (s *Stores) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Open builds the configured storage backend. The file backend keeps two
// standalone JSON files (compatible with state written by earlier
// deployments), the bolt backend keeps both documents in one embedded
// database, and the memory backend holds state in-process for tests and
// ephemeral runs.
func Open(cfg config.StorageConfig) (*Stores, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "file":
		return &Stores{
			Quota: NewFileStore(cfg.QuotaPath),
			Cache: NewFileStore(cfg.CachePath),
		}, nil

	case "bolt":
		db, err := OpenBolt(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Quota: NewBoltStore(db, "quota"),
			Cache: NewBoltStore(db, "search_cache"),
			db:    db,
		}, nil

	case "memory":
		return &Stores{
			Quota: NewMemoryStore(),
			Cache: NewMemoryStore(),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Backend)
	}
}
