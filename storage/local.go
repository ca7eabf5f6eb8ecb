package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalProvider writes to disk; routes serve Dir under PublicURL.
type LocalProvider struct {
	Dir       string
	PublicURL string
}

func NewLocalProvider(dir, publicURL string) (*LocalProvider, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalProvider{Dir: dir, PublicURL: strings.TrimSuffix(publicURL, "/")}, nil
}

func (p *LocalProvider) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(p.Dir, filepath.FromSlash(objectName))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		return "", err
	}
	return p.PublicURL + "/" + objectName, nil
}

func (p *LocalProvider) Close() error { return nil }
