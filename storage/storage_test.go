package storage

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"campusshield/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowed(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "scan.png", "report.pdf", "x.doc", "y.DOCX"} {
		assert.True(t, Allowed(name), name)
	}
	for _, name := range []string{"a.exe", "noext", "archive.zip", "photo.gif"} {
		assert.False(t, Allowed(name), name)
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentType("Evidence.PDF"))
	assert.Equal(t, "image/jpeg", ContentType("a.jpg"))
	assert.Equal(t, "application/octet-stream", ContentType("a.bin"))
}

func TestObjectNameDropsOriginalName(t *testing.T) {
	name := ObjectName("evidence", "John Smith statement.PDF")
	assert.Regexp(t, regexp.MustCompile(`^evidence/[0-9a-f-]{36}_\d+\.pdf$`), name)
	assert.NotContains(t, name, "Smith")
	assert.NotEqual(t, name, ObjectName("evidence", "x.pdf"))
}

func TestLocalProviderUpload(t *testing.T) {
	dir := t.TempDir()
	p, err := NewLocalProvider(dir, "/uploads/")
	require.NoError(t, err)

	url, err := p.Upload(context.Background(), "evidence/abc.png", strings.NewReader("png-bytes"), 9, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/evidence/abc.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "evidence", "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.NoError(t, p.Close())
}

func TestNewRejectsIncompleteConfig(t *testing.T) {
	ctx := context.Background()

	_, err := New(ctx, config.StorageConfig{Type: "dropbox"})
	assert.Error(t, err)

	_, err = New(ctx, config.StorageConfig{Type: "minio"})
	assert.Error(t, err)

	_, err = New(ctx, config.StorageConfig{Type: "gcs"})
	assert.EqualError(t, err, "GCS_BUCKET not set")

	p, err := New(ctx, config.StorageConfig{Type: "local", LocalPath: t.TempDir(), PublicURL: "/uploads"})
	require.NoError(t, err)
	assert.IsType(t, &LocalProvider{}, p)
}

func TestMinioProviderURL(t *testing.T) {
	p, err := NewMinioProvider("files.campus.edu:9000", "ak", "sk", "evidence", true)
	require.NoError(t, err)
	assert.Equal(t, "https://files.campus.edu:9000/evidence", p.baseURL)
}
