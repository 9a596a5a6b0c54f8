package utils

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// SnapshotUploader writes profile snapshots to an S3 bucket.
type SnapshotUploader struct {
	client *s3.Client
	bucket string
}

// NewSnapshotUploader initializes the S3 client from the default AWS chain.
func NewSnapshotUploader(ctx context.Context, region, bucket string) (*SnapshotUploader, error) {
	if bucket == "" {
		return nil, fmt.Errorf("AWS_BUCKET_NAME is not set")
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %w", err)
	}

	log.Info().Str("region", region).Str("bucket", bucket).Msg("S3 Client Initialized")
	return &SnapshotUploader{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

// Upload stores body under objectKey and returns the key.
func (u *SnapshotUploader) Upload(ctx context.Context, body io.Reader, objectKey, contentType string) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(objectKey),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return objectKey, nil
}
