// Package storage keeps uploaded recipe images, either on the local filesystem or in an
// S3 compatible bucket.
package storage

import (
	"context"
)

type ImageStore interface {
	Save(ctx context.Context, key string, contentType string, data []byte) error
	Delete(ctx context.Context, key string) error
	// URL 返回外部可以访问到的地址
	URL(key string) string
}
