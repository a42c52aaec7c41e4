// Package minio implements the BlobStore interface over an S3-compatible
// object store.
package minio

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"filmroom/internal/domain/repositories"
)

// Config holds connection settings for the object store.
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// BlobStore talks to one bucket of an S3-compatible store.
type BlobStore struct {
	client *minio.Client
	bucket string
}

var _ repositories.BlobStore = (*BlobStore)(nil)

// New creates a blob store client. It does not verify the bucket exists;
// a missing bucket surfaces as an ordinary failure on first use.
func New(cfg Config) (*BlobStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create object store client: %w", err)
	}

	return &BlobStore{client: client, bucket: cfg.Bucket}, nil
}

// Delete removes the object under key. Missing objects are not an error:
// the cascade delete retries must stay idempotent.
func (s *BlobStore) Delete(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// PresignPut returns a short-lived URL a client can PUT the binary to.
func (s *BlobStore) PresignPut(ctx context.Context, key string) (string, error) {
	u, err := s.client.PresignedPutObject(ctx, s.bucket, key, 15*time.Minute)
	if err != nil {
		return "", fmt.Errorf("presign put %s: %w", key, err)
	}
	return u.String(), nil
}

// ObjectURL returns the public URL for an object (for thumbnails served
// from a public-read bucket).
func (s *BlobStore) ObjectURL(key string) string {
	scheme := "http"
	if s.client.EndpointURL().Scheme == "https" {
		scheme = "https"
	}
	u := url.URL{Scheme: scheme, Host: s.client.EndpointURL().Host, Path: "/" + s.bucket + "/" + key}
	return u.String()
}
