// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so the message store can keep its state in an S3
// compatible bucket instead of a local file (useful for containers without a
// persistent volume). AWS S3 and self-hosted MinIO are both supported.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: used by EnsureBucket at startup.
//   - PutObject: uploads the serialized state.
//   - GetObject: retrieves the serialized state as a stream.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	err = storage.EnsureBucket(ctx, client, config.Bucket, config.Region)
package storage
