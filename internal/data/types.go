package data

import "context"

type QueryResults[T interface{}] struct {
	Items []T `json:"items"`
}

// KeyValueStore is the durable key/value storage the BookmarkSet is written
// into. Get returns an *exceptions.NotFoundError when the key was never written.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

const BOOKMARKS_KEY = "bookmarks"
