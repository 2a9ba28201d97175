// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider (MinIO, ArvanCloud, AWS S3).
package storage

import (
	"context"
	"io"
	"time"
)

// Custom metadata keys written at upload time and read back during listing.
const (
	MetaVisibility   = "visibility"
	MetaOriginalName = "original-name"
	MetaStudentID    = "student-id"
	MetaUploadTime   = "upload-time"

	VisibilityPublic = "public"
	VisibilitySigned = "signed"
)

// SignedURLTTL is the validity window for signed download URLs. Seven days is
// also the S3 presign maximum.
const SignedURLTTL = 7 * 24 * time.Hour

// ObjectInfo describes one stored object as returned by List.
type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
	// CreatedAt is the backend's creation time. The zero value means the
	// backend did not report one; callers treat it as the earliest possible
	// time, never as an error.
	CreatedAt time.Time
	// UserMetadata holds the custom metadata written at upload time, with
	// provider prefixes stripped and keys lowercased.
	UserMetadata map[string]string
}

// Store is the interface for uploading and enumerating objects.
type Store interface {
	// Put streams data to the store under the given key. size must be the
	// exact byte count (pass -1 only if genuinely unknown). On success it
	// returns the access URL: a stable public URL when makePublic is set,
	// otherwise a signed URL valid for SignedURLTTL.
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string, metadata map[string]string, makePublic bool) (string, error)
	// List enumerates objects under prefix. Order is unspecified; ordering is
	// the caller's responsibility.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	// SignedURL produces a fresh time-limited read URL for key. Safe to call
	// repeatedly; it never alters the underlying object.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	// PublicURL constructs the browser-accessible URL for a key without a
	// backend call.
	PublicURL(key string) string
}
