package inits

import (
	"context"
	"fmt"

	"recipe-app-api/app/server/config"
	"recipe-app-api/app/server/storage"
)

func Storage(ctx context.Context, cfg *config.Config) (storage.ImageStore, error) {
	switch cfg.Media.Driver {
	case "s3":
		s3Store, err := storage.NewS3(ctx, storage.S3Options{
			Region:          cfg.Media.S3.Region,
			Endpoint:        cfg.Media.S3.Endpoint,
			Bucket:          cfg.Media.S3.Bucket,
			AccessKeyID:     cfg.Media.S3.AccessKeyID,
			SecretAccessKey: cfg.Media.S3.SecretAccessKey,
			PublicBaseURL:   cfg.Media.S3.PublicBaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to init s3 storage: %w", err)
		}
		return s3Store, nil
	default:
		return storage.NewLocal(cfg.Media.Root, cfg.Media.URLPrefix), nil
	}
}
