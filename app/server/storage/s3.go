package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var _ ImageStore = (*S3)(nil)

type S3Options struct {
	Region          string
	Endpoint        string // 例如 MinIO 的地址，为空则使用 AWS 默认
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string // 对外访问地址，为空时使用 Endpoint/Bucket
}

type S3 struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3(ctx context.Context, opts S3Options) (*S3, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := opts.PublicBaseURL
	if baseURL == "" {
		if opts.Endpoint != "" {
			baseURL, err = url.JoinPath(opts.Endpoint, opts.Bucket)
		} else {
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
		}
		if err != nil {
			return nil, fmt.Errorf("build public base url: %w", err)
		}
	}

	return &S3{
		client:  client,
		bucket:  opts.Bucket,
		baseURL: baseURL,
	}, nil
}

func (s *S3) Save(ctx context.Context, key string, contentType string, data []byte) error {
	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	}); err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}

	return nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}

	return nil
}

func (s *S3) URL(key string) string {
	u, err := url.JoinPath(s.baseURL, key)
	if err != nil {
		return s.baseURL + "/" + key
	}
	return u
}
