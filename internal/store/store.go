// Package store provides the blob storage used to stage per-scene clips and
// the final stitched video. Activities never hand each other local file
// paths; every artifact that crosses an activity boundary goes through the
// store under a workflow-scoped key prefix, so retries and worker failover
// can pick up where a previous attempt left off.
//
// Google Cloud Storage is the default backend. An S3 backend is available
// for AWS deployments; both render the same key layout and differ only in
// the URI scheme of the final artifact.
package store

import (
	"context"
	"fmt"
)

// Drivers accepted by New.
const (
	DriverGCS = "gcs"
	DriverS3  = "s3"
)

// BlobStore is the persistence interface for workflow artifacts. Each method
// is safe for concurrent use and respects context cancellation.
type BlobStore interface {
	// Upload stores the file at path under key with the given content type.
	Upload(ctx context.Context, key, path, contentType string) error

	// Download fetches key into the file at path, creating or truncating it.
	Download(ctx context.Context, key, path string) error

	// URI renders the canonical URI for key, e.g. gs://bucket/key.
	URI(key string) string
}

// New builds the blob store for the configured driver.
func New(ctx context.Context, driver, bucket string) (BlobStore, error) {
	switch driver {
	case DriverGCS:
		return NewGCSStore(ctx, bucket)
	case DriverS3:
		return NewS3Store(ctx, bucket)
	default:
		return nil, fmt.Errorf("unknown storage driver %q (expected %q or %q)", driver, DriverGCS, DriverS3)
	}
}
