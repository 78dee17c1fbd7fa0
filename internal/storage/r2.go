package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"pawn-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// RemoteObject describes one stored backup
type RemoteObject struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// R2Store mirrors backup workbooks to a Cloudflare R2 bucket through the S3 API
type R2Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewR2Store builds the store, or returns nil when R2 mirroring is disabled
func NewR2Store(ctx context.Context, cfg *config.Config) (*R2Store, error) {
	b := cfg.Backup
	if !b.R2Enabled {
		return nil, nil
	}
	if b.R2Endpoint == "" || b.R2Bucket == "" || b.R2AccessKey == "" || b.R2SecretKey == "" {
		return nil, fmt.Errorf("r2 enabled but endpoint, bucket or credentials are missing")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			b.R2AccessKey,
			b.R2SecretKey,
			"",
		)),
		awsconfig.WithRegion(b.R2Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure S3 client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(b.R2Endpoint)
	})

	return &R2Store{client: client, bucket: b.R2Bucket, prefix: b.R2Prefix}, nil
}

// Upload stores data under the configured prefix and returns the object key
func (s *R2Store) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := path.Join(s.prefix, name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return key, nil
}

// List returns the backups stored under the prefix
func (s *R2Store) List(ctx context.Context) ([]RemoteObject, error) {
	result, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	objects := make([]RemoteObject, 0, len(result.Contents))
	for _, obj := range result.Contents {
		o := RemoteObject{Key: aws.ToString(obj.Key), Size: aws.ToInt64(obj.Size)}
		if obj.LastModified != nil {
			o.LastModified = *obj.LastModified
		}
		objects = append(objects, o)
	}
	return objects, nil
}
