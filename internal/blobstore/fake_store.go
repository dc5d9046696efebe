package blobstore

import (
	"context"
	"io"
	"sync"
)

// FakeFileStore keeps blobs in memory. Used by tests and local runs without
// S3 credentials.
type FakeFileStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewFakeFileStore() *FakeFileStore {
	return &FakeFileStore{blobs: make(map[string][]byte)}
}

func (f *FakeFileStore) Store(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[key] = data
	return "fake://" + key, nil
}

func (f *FakeFileStore) Get(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.blobs[key]
	return data, ok
}
