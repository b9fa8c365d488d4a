// Package storage defines the object storage boundary used to persist journey
// plan snapshots, CSV exports and the rolling journal.
package storage

import (
	"context"
	"errors"
)

// ErrObjectNotFound indicates the requested key does not exist in the store.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore is the narrow object storage contract the pipeline depends on.
// Implementations must return ErrObjectNotFound (possibly wrapped) from Get
// when the key is absent.
type ObjectStore interface {
	// Get returns the full contents of the object at key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put writes body to key, replacing any existing object.
	Put(ctx context.Context, key string, body []byte) error

	// Copy duplicates the object at srcKey to dstKey.
	Copy(ctx context.Context, srcKey, dstKey string) error

	// Delete removes the object at key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
