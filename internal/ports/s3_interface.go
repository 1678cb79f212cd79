package ports

import (
	"context"
	"time"
)

// ObjectStorage : шлюз к объектному хранилищу, адресация {bucket}/{key}
type ObjectStorage interface {
	Download(ctx context.Context, bucket, key string) ([]byte, error)
	Upload(ctx context.Context, bucket, key string, data []byte, contentType string, overwrite bool) error
	Delete(ctx context.Context, bucket, key string) error
	PublicURL(bucket, key string) string
}

// S3Storage : для S3
type S3Storage interface {
	ObjectStorage
	DefaultBucket() string
	GeneratePresignedGetURL(ctx context.Context, bucket, key string, expire time.Duration) (string, error)
}
