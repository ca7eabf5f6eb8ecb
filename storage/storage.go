// Package storage uploads complaint evidence to an external object store
// and returns the public URL saved on the complaint.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"campusshield/config"

	"github.com/google/uuid"
)

type Provider interface {
	Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error)
	Close() error
}

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// Allowed reports whether the file extension is accepted as evidence.
func Allowed(filename string) bool {
	_, ok := contentTypes[strings.ToLower(path.Ext(filename))]
	return ok
}

// ContentType maps by extension; the client-sent header is not trusted.
func ContentType(filename string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// ObjectName builds a collision-free key that keeps only the extension
// of the uploaded file, never its original name.
func ObjectName(folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s/%s_%d%s", folder, uuid.NewString(), time.Now().UnixNano(), ext)
}

func New(ctx context.Context, cfg config.StorageConfig) (Provider, error) {
	switch cfg.Type {
	case "gcs":
		return NewGCSProvider(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile)
	case "s3":
		return NewS3Provider(ctx, cfg.S3Bucket, cfg.S3Region)
	case "minio":
		return NewMinioProvider(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	case "local":
		return NewLocalProvider(cfg.LocalPath, cfg.PublicURL)
	}
	return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
}
