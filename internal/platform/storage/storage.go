// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage uploads cover and page images to an S3-compatible bucket.

Object keys follow two layouts:

	comic-covers/<unix-millis>.<ext>
	comic-pages/<chapterID>/<unix-millis>-<index>.<ext>

The public URL of an object is what gets persisted on the comic or page row.
*/
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/taibuivan/komik/internal/platform/apperr"
)

// defaultExt is used when an uploaded file name carries no extension.
const defaultExt = "jpg"

// Uploader is the object storage contract consumed by the catalog services.
type Uploader interface {
	Upload(ctx context.Context, bucket, objectPath string, body io.Reader, size int64, contentType string) error
	PublicURL(bucket, objectPath string) string

	// Remove deletes an object; a missing object is not an error.
	Remove(ctx context.Context, bucket, objectPath string) error
}

// File is one object body together with the metadata the client sent.
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Options configures the S3 client.
type Options struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool

	// PublicURL overrides the endpoint when building public object URLs (CDN or proxy).
	PublicURL string
}

// MinioStore implements [Uploader] on top of minio-go.
type MinioStore struct {
	client    *minio.Client
	publicURL string
	logger    *slog.Logger
}

// NewMinioStore builds the client; no network call happens until the first request.
func NewMinioStore(options Options, logger *slog.Logger) (*MinioStore, error) {
	client, err := minio.New(options.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(options.AccessKey, options.SecretKey, ""),
		Secure: options.UseSSL,
		Region: options.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: invalid endpoint: %w", err)
	}

	publicURL := strings.TrimRight(options.PublicURL, "/")
	if publicURL == "" {
		publicURL = strings.TrimRight(client.EndpointURL().String(), "/")
	}

	return &MinioStore{client: client, publicURL: publicURL, logger: logger}, nil
}

/*
Upload streams one object into the bucket.

Returns:
  - error: apperr.Remote when the object store rejects or cannot be reached
*/
func (store *MinioStore) Upload(context context.Context, bucket, objectPath string, body io.Reader, size int64, contentType string) error {
	info, err := store.client.PutObject(context, bucket, objectPath, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return apperr.Remote("upload", fmt.Errorf("storage: put %s/%s: %w", bucket, objectPath, err))
	}

	store.logger.DebugContext(context, "object_uploaded",
		slog.String("bucket", bucket),
		slog.String("path", objectPath),
		slog.Int64("size", info.Size),
	)
	return nil
}

// Remove deletes one object. S3 treats deleting a missing key as success.
func (store *MinioStore) Remove(context context.Context, bucket, objectPath string) error {
	if err := store.client.RemoveObject(context, bucket, objectPath, minio.RemoveObjectOptions{}); err != nil {
		return apperr.Remote("remove", fmt.Errorf("storage: remove %s/%s: %w", bucket, objectPath, err))
	}

	store.logger.DebugContext(context, "object_removed", slog.String("bucket", bucket), slog.String("path", objectPath))
	return nil
}

// PublicURL returns the address clients use to fetch the object.
func (store *MinioStore) PublicURL(bucket, objectPath string) string {
	return store.publicURL + "/" + path.Join(url.PathEscape(bucket), escapePath(objectPath))
}

// Ping verifies the bucket exists and the credentials are accepted.
func (store *MinioStore) Ping(context context.Context, bucket string) error {
	exists, err := store.client.BucketExists(context, bucket)
	if err != nil {
		return fmt.Errorf("storage: ping failed: %w", err)
	}
	if !exists {
		return fmt.Errorf("storage: bucket %q does not exist", bucket)
	}
	return nil
}

// # Object Keys

// CoverPath builds the key for a comic cover.
func CoverPath(now time.Time, filename string) string {
	return fmt.Sprintf("%d.%s", now.UnixMilli(), Ext(filename))
}

// PagePath builds the key for the index-th page of an upload batch.
func PagePath(chapterID string, now time.Time, index int, filename string) string {
	return fmt.Sprintf("%s/%d-%d.%s", chapterID, now.UnixMilli(), index, Ext(filename))
}

// Ext returns the lowercase extension of filename without the dot.
func Ext(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return defaultExt
	}
	return ext
}

func escapePath(objectPath string) string {
	segments := strings.Split(objectPath, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
