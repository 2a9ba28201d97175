package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// MinioStore implements Store using a MinIO (or any S3-compatible) backend.
type MinioStore struct {
	client     *minio.Client
	bucket     string
	publicBase string
	log        logrus.FieldLogger
}

// NewMinioStore creates a MinIO client and returns a ready-to-use MinioStore.
// No network call is made here; use EnsureBucket to verify connectivity and
// prepare the bucket.
func NewMinioStore(endpoint, accessKey, secretKey, bucket, publicBase string, useSSL bool, log logrus.FieldLogger) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &MinioStore{
		client:     client,
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
		log:        log,
	}, nil
}

// EnsureBucket creates the bucket if missing and applies a public-read policy
// so that objects uploaded with public visibility are reachable at their
// public URL.
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %q: %w", s.bucket, err)
		}
		s.log.Infof("storage: created bucket %q", s.bucket)
	}

	if err := s.client.SetBucketPolicy(ctx, s.bucket, publicReadPolicy(s.bucket)); err != nil {
		return fmt.Errorf("set bucket policy: %w", err)
	}
	return nil
}

// Put streams reader to MinIO under key and returns the object's access URL.
func (s *MinioStore) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string, metadata map[string]string, makePublic bool) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: metadata,
	})
	if err != nil {
		return "", fmt.Errorf("put object %q: %w", key, err)
	}

	if makePublic {
		return s.PublicURL(key), nil
	}
	return s.SignedURL(ctx, key, SignedURLTTL)
}

// List enumerates the keys under prefix, then stats each one for its full
// metadata. A failure on any single entry fails the whole listing.
func (s *MinioStore) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	infos := []ObjectInfo{}
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects under %q: %w", prefix, obj.Err)
		}

		stat, err := s.client.StatObject(ctx, s.bucket, obj.Key, minio.StatObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("stat object %q: %w", obj.Key, err)
		}

		infos = append(infos, ObjectInfo{
			Key:          stat.Key,
			Size:         stat.Size,
			ContentType:  stat.ContentType,
			CreatedAt:    stat.LastModified,
			UserMetadata: normalizeMetadata(stat.UserMetadata),
		})
	}
	return infos, nil
}

// SignedURL presigns a GET on key for ttl.
func (s *MinioStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, nil)
	if err != nil {
		return "", fmt.Errorf("presign object %q: %w", key, err)
	}
	return u.String(), nil
}

// PublicURL returns the browser-accessible URL for the given key.
// For local MinIO: "http://localhost:9000/class-files/uploads/file.jpg"
// For a CDN front: "https://cdn.example.com/uploads/file.jpg"
func (s *MinioStore) PublicURL(key string) string {
	return s.publicBase + "/" + key
}

// normalizeMetadata strips the provider's x-amz-meta- prefix and lowercases
// keys, so callers see the metadata exactly as it was written.
func normalizeMetadata(md map[string]string) map[string]string {
	if len(md) == 0 {
		return nil
	}
	out := make(map[string]string, len(md))
	for k, v := range md {
		k = strings.ToLower(k)
		k = strings.TrimPrefix(k, "x-amz-meta-")
		out[k] = v
	}
	return out
}

// publicReadPolicy returns an S3 bucket policy JSON that allows anonymous GET on all objects.
func publicReadPolicy(bucket string) string {
	policy := map[string]interface{}{
		"Version": "2012-10-17",
		"Statement": []map[string]interface{}{
			{
				"Effect":    "Allow",
				"Principal": "*",
				"Action":    "s3:GetObject",
				"Resource":  fmt.Sprintf("arn:aws:s3:::%s/*", bucket),
			},
		},
	}
	b, _ := json.Marshal(policy)
	return string(b)
}
