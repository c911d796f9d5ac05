package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	gcs "cloud.google.com/go/storage"
)

const opTimeout = time.Second * 50

// ClientUploader wraps a GCS bucket as the blob store for originals and
// thumbnails.
type ClientUploader struct {
	cl         *gcs.Client
	bucketName string
}

func NewClientUploader(ctx context.Context, bucketName string) (*ClientUploader, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &ClientUploader{
		cl:         client,
		bucketName: bucketName,
	}, nil
}

// Upload writes data under key and returns the public URL.
func (c *ClientUploader) Upload(key string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	wc := c.cl.Bucket(c.bucketName).Object(key).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := wc.Write(data); err != nil {
		return "", fmt.Errorf("Writer.Write: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("Writer.Close: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, key), nil
}

// Download reads back the object stored under key.
func (c *ClientUploader) Download(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rc, err := c.cl.Bucket(c.bucketName).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("Object.NewReader: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read object: %w", err)
	}

	return data, nil
}
