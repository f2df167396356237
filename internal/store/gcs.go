package store

import (
	"context"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"github.com/rs/zerolog/log"
)

// GCSStore stages artifacts in a Google Cloud Storage bucket. Credentials
// come from Application Default Credentials.
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewGCSStore opens a GCS client for the given bucket.
func NewGCSStore(ctx context.Context, bucket string) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create GCS client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

// Upload stores the file at path under key with the given content type.
func (s *GCSStore) Upload(ctx context.Context, key, path, contentType string) error {
	log.Debug().
		Str("bucket", s.bucket).
		Str("key", key).
		Str("path", path).
		Msg("Uploading to GCS")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return fmt.Errorf("write gs://%s/%s: %w", s.bucket, key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize gs://%s/%s: %w", s.bucket, key, err)
	}

	log.Info().Str("uri", s.URI(key)).Msg("Uploaded to GCS")
	return nil
}

// Download fetches key into the file at path.
func (s *GCSStore) Download(ctx context.Context, key, path string) error {
	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return fmt.Errorf("open gs://%s/%s: %w", s.bucket, key, err)
	}
	defer r.Close()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		return fmt.Errorf("read gs://%s/%s: %w", s.bucket, key, err)
	}

	log.Debug().Str("key", key).Int64("bytes", n).Msg("Downloaded from GCS")
	return nil
}

// URI renders the gs:// URI for key.
func (s *GCSStore) URI(key string) string {
	return fmt.Sprintf("gs://%s/%s", s.bucket, key)
}
