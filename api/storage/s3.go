package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	aws2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3Store struct {
	client s3API
	bucket string
	region string
}

// NewS3Store loads the default AWS credential chain for region.
func NewS3Store(ctx context.Context, bucket, region string) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("storage: aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return &S3Store{client: client, bucket: bucket, region: region}, nil
}

func (s *S3Store) Save(ctx context.Context, img *Image) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws2.String(s.bucket),
		Key:           aws2.String(img.Key),
		Body:          bytes.NewReader(img.Data),
		ContentLength: aws2.Int64(int64(len(img.Data))),
		ContentType:   aws2.String(img.ContentType),
	})
	if err != nil {
		slog.Error("storage: s3 upload failed", "key", img.Key, "error", err)
		return fmt.Errorf("storage: put %s: %w", img.Key, err)
	}
	return nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws2.String(s.bucket),
		Key:    aws2.String(key),
	})
	if err != nil {
		return fmt.Errorf("storage: delete %s: %w", key, err)
	}
	return nil
}

// URL builds the public virtual-host style object URL.
func (s *S3Store) URL(key string) string {
	if key == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
