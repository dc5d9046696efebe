package blobstore

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Upload is one file handed to the store, decoupled from the transport
// (multipart form, test fixture, ...).
type Upload struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// FileStore stores a blob under a key and returns a stable public URL.
type FileStore interface {
	Store(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}

// AttachmentKey builds a collision-resistant key from a time prefix and the
// original file name.
func AttachmentKey(name string, now time.Time) string {
	return fmt.Sprintf("attachments/%d_%s", now.UnixMilli(), name)
}
