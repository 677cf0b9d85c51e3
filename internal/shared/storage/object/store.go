package object

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrInvalidKey is returned when a storage key escapes the store root.
	ErrInvalidKey = errors.New("invalid storage key")
	// ErrNotFound is returned by Open when no object exists at the key.
	ErrNotFound = errors.New("object not found")
)

// ObjectStore defines the contract for saving and retrieving generated media.
type ObjectStore interface {
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
