package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var stateBucket = []byte("state")

// BoltStore keeps state documents in a bbolt bucket, one key per document.
// It exists for deployments that want transactional writes instead of
// whole-file JSON; a single database file hosts both the quota and the cache
// documents.
type BoltStore struct {
	db  *bbolt.DB
	key []byte
}

// OpenBolt opens the shared state database, creating it and the state bucket
// if needed.
func OpenBolt(path string) (*bbolt.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create state directory '%s': %w", dir, err)
		}
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open state database '%s': %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(stateBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create state bucket: %w", err)
	}
	return db, nil
}

// NewBoltStore returns a Store reading and writing the named document inside
// an already opened database.
func NewBoltStore(db *bbolt.DB, name string) *BoltStore {
	return &BoltStore{db: db, key: []byte(name)}
}

func (s *BoltStore) Load(v any) (bool, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		if raw := tx.Bucket(stateBucket).Get(s.key); raw != nil {
			data = append([]byte(nil), raw...)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to read state '%s': %w", s.key, err)
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *BoltStore) Save(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(stateBucket).Put(s.key, data)
	})
}
