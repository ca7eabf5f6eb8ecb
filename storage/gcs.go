package storage

import (
	"context"
	"fmt"
	"io"

	"campusshield/logger"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

type GCSProvider struct {
	client *storage.Client
	bucket string
}

func NewGCSProvider(ctx context.Context, bucket, credentialsFile string) (*GCSProvider, error) {
	if bucket == "" {
		return nil, fmt.Errorf("GCS_BUCKET not set")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to google cloud storage: %w", err)
	}

	if _, err := client.Bucket(bucket).Attrs(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("access bucket %s: %w", bucket, err)
	}
	logger.Log.Info("GCS bucket ready", zap.String("bucket", bucket))

	return &GCSProvider{client: client, bucket: bucket}, nil
}

func (p *GCSProvider) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	writer := p.client.Bucket(p.bucket).Object(objectName).NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := io.Copy(writer, r); err != nil {
		writer.Close()
		return "", fmt.Errorf("copy file to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close GCS writer: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", p.bucket, objectName), nil
}

func (p *GCSProvider) Close() error {
	return p.client.Close()
}
