package storage

import (
	"context"
	"time"

	bolt "go.etcd.io/bbolt"
	"philcali.me/forkify/internal/data"
	"philcali.me/forkify/internal/exceptions"
)

const bucketKeyValue = "kv"

var _ data.KeyValueStore = (*BoltStore)(nil)

type BoltStore struct {
	db *bolt.DB
}

func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketKeyValue))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketKeyValue))
		v := b.Get([]byte(key))
		if v == nil {
			return exceptions.NotFound("key", key)
		}
		// v is only valid for the life of the transaction
		value = append([]byte(nil), v...)
		return nil
	})
	return value, err
}

func (s *BoltStore) Put(ctx context.Context, key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketKeyValue))
		return b.Put([]byte(key), value)
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
