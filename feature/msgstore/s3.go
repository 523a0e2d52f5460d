package msgstore

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"raid-status-bot/core/storage"

	"github.com/minio/minio-go/v7"
)

// S3Backend keeps the state as an object in S3 compatible storage.
type S3Backend struct {
	client storage.Client
	bucket string
	object string
}

// NewS3Backend creates a backend for object inside bucket.
func NewS3Backend(client storage.Client, bucket, object string) *S3Backend {
	return &S3Backend{client: client, bucket: bucket, object: object}
}

// Location returns the object URL.
func (b *S3Backend) Location() string {
	return fmt.Sprintf("s3://%s/%s", b.bucket, b.object)
}

// Read downloads the object, returning nil when it does not exist.
func (b *S3Backend) Read(ctx context.Context) ([]byte, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, b.object, minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	defer obj.Close()

	// minio reports missing objects on the first read
	data, err := io.ReadAll(obj)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Write uploads data as the object.
func (b *S3Backend) Write(ctx context.Context, data []byte) error {
	_, err := b.client.PutObject(ctx, b.bucket, b.object, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	return err
}
