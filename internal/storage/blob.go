package storage

import (
	"context"
	"time"
)

// ObjectInfo describes a remote object returned by a listing.
type ObjectInfo struct {
	Name         string
	Size         int64
	LastModified time.Time
}

// BlobStore is the remote object storage contract the pipeline depends on.
// Every method is best-effort from the pipeline's point of view: listing
// errors degrade version lookup to the local strategy and upload errors never
// invalidate local artifacts.
type BlobStore interface {
	// List returns all objects under the prefix.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	// Upload stores a local file under the remote name and returns its URL
	// when the store can produce one.
	Upload(ctx context.Context, localPath, remoteName string) (string, error)
	// Download fetches a remote object into a local file.
	Download(ctx context.Context, remoteName, localPath string) error
}
