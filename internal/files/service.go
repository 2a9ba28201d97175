// Package files holds the upload and listing domain: deriving storage keys,
// shaping stored objects into display records, and the HTTP handlers on top.
package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/filedrop/service/internal/filekey"
	"github.com/filedrop/service/internal/storage"
)

// ErrNotConfigured is returned when no storage backend is available.
var ErrNotConfigured = errors.New("storage is not configured")

// Record is one uploaded file as presented by the listing API.
type Record struct {
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Size        int64     `json:"size"`
	TimeCreated time.Time `json:"timeCreated"`
	ContentType string    `json:"contentType"`
}

// UploadResult reports a successful upload.
type UploadResult struct {
	Key string
	URL string
}

// Service contains the upload and listing logic. It holds no state between
// calls beyond the storage handle; every listing re-derives records from the
// backend's live enumeration.
type Service struct {
	store storage.Store
	now   func() time.Time
}

// NewService creates a Service on top of a storage backend. store may be nil
// when credentials could not be resolved; every operation then returns
// ErrNotConfigured.
func NewService(store storage.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Upload stores one file under a freshly encoded key and returns the key and
// access URL. public selects a stable public URL over the default 7-day
// signed one.
func (s *Service) Upload(ctx context.Context, originalName string, r io.Reader, size int64, contentType, studentID string, public bool) (*UploadResult, error) {
	if s.store == nil {
		return nil, ErrNotConfigured
	}

	now := s.now()
	key := filekey.Encode(originalName, studentID, now.UnixMilli())

	visibility := storage.VisibilitySigned
	if public {
		visibility = storage.VisibilityPublic
	}
	metadata := map[string]string{
		storage.MetaOriginalName: originalName,
		storage.MetaUploadTime:   now.UTC().Format(time.RFC3339),
		storage.MetaVisibility:   visibility,
	}
	if studentID != "" {
		metadata[storage.MetaStudentID] = studentID
	}

	url, err := s.store.Put(ctx, key, r, size, contentType, metadata, public)
	if err != nil {
		return nil, fmt.Errorf("upload %q: %w", key, err)
	}
	return &UploadResult{Key: key, URL: url}, nil
}

// ListAll enumerates every object under the upload namespace and returns
// display records sorted newest-first. Entries whose creation time is unknown
// sort as if created at the earliest possible time; ties keep the backend's
// enumeration order. The operation is all-or-nothing: a failure on the list
// call or on any single entry fails the whole listing.
func (s *Service) ListAll(ctx context.Context) ([]Record, error) {
	if s.store == nil {
		return nil, ErrNotConfigured
	}

	infos, err := s.store.List(ctx, filekey.Prefix)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(infos))
	for _, info := range infos {
		url, err := s.accessURL(ctx, info)
		if err != nil {
			return nil, err
		}
		records = append(records, Record{
			Name:        filekey.DisplayName(info.Key),
			URL:         url,
			Size:        info.Size,
			TimeCreated: info.CreatedAt,
			ContentType: info.ContentType,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].TimeCreated.After(records[j].TimeCreated)
	})
	return records, nil
}

// ListForOwner returns the records believed to belong to ownerID, in the same
// order ListAll produces them.
func (s *Service) ListForOwner(ctx context.Context, ownerID string) ([]Record, error) {
	records, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByOwner(records, ownerID), nil
}

// accessURL reconstructs the public URL for objects uploaded with public
// visibility and presigns a fresh 7-day URL for everything else. The public
// form needs no backend call.
func (s *Service) accessURL(ctx context.Context, info storage.ObjectInfo) (string, error) {
	if info.UserMetadata[storage.MetaVisibility] == storage.VisibilityPublic {
		return s.store.PublicURL(info.Key), nil
	}
	return s.store.SignedURL(ctx, info.Key, storage.SignedURLTTL)
}
