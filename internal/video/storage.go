package video

import (
	"context"
	"errors"
	"io"
)

type objectStore interface {
	Upload(ctx context.Context, object, contentType string, body io.Reader) error
	DeleteObject(ctx context.Context, object string) (bool, error)
}

// GCSStorage adapts the bucket client to the file storage port. The object
// key doubles as the stored path recorded on media rows.
type GCSStorage struct {
	store objectStore
}

// NewGCSStorage wires the storage adapter.
func NewGCSStorage(store objectStore) (*GCSStorage, error) {
	if store == nil {
		return nil, errors.New("object store is required")
	}
	return &GCSStorage{store: store}, nil
}

func (s *GCSStorage) Store(ctx context.Context, key string, payload FilePayload) (string, error) {
	if err := s.store.Upload(ctx, key, payload.ContentType, payload.Reader); err != nil {
		return "", err
	}
	return key, nil
}

func (s *GCSStorage) Delete(ctx context.Context, key string) (bool, error) {
	return s.store.DeleteObject(ctx, key)
}
