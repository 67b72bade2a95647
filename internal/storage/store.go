package storage

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrNotStored indicates the referenced object does not belong to this store.
var ErrNotStored = errors.New("storage: url does not belong to this store")

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	Key          string
	URL          string
	Size         int64
	LastModified time.Time
}

// ObjectStore is the binary-object contract the collection store and the
// profile-photo screens depend on. Keys are owner-scoped paths like
// "<userID>/profile-<ts>.jpg"; Upload returns the public URL for the key.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Fetch(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}

// PublicURL joins a base URL and a storage key.
func PublicURL(baseURL, key string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(key, "/")
}

// KeyFromURL recovers the storage key from a public URL issued by PublicURL.
func KeyFromURL(baseURL, url string) (string, error) {
	base := strings.TrimRight(baseURL, "/") + "/"
	if !strings.HasPrefix(url, base) {
		return "", ErrNotStored
	}
	key := strings.TrimPrefix(url, base)
	if key == "" {
		return "", ErrNotStored
	}
	return key, nil
}
