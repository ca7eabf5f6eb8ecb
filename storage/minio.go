package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioProvider struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewMinioProvider(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioProvider, error) {
	if endpoint == "" || bucket == "" {
		return nil, fmt.Errorf("MINIO_ENDPOINT and MINIO_BUCKET must be set")
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}

	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return &MinioProvider{
		client:  client,
		bucket:  bucket,
		baseURL: fmt.Sprintf("%s://%s/%s", scheme, endpoint, bucket),
	}, nil
}

func (p *MinioProvider) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := p.client.PutObject(ctx, p.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload to minio: %w", err)
	}
	return p.baseURL + "/" + objectName, nil
}

func (p *MinioProvider) Close() error { return nil }
