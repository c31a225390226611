// internal/storage/archive/s3_test.go
package archive

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestS3Storage_ImplementsStorage(t *testing.T) {
	var _ Storage = (*S3Storage)(nil)
}

func TestNewS3_RequiresBucket(t *testing.T) {
	_, err := NewS3(S3Config{Region: "us-east-1"})
	assert.Error(t, err)

	s, err := NewS3(S3Config{Bucket: "reports", Region: "us-east-1", Endpoint: "http://localhost:9000", Prefix: "optval/"})
	assert.NoError(t, err)
	assert.Equal(t, "optval", s.prefix)
}

func TestS3Config_Key(t *testing.T) {
	tests := []struct {
		prefix string
		path   string
		want   string
	}{
		{"", "file.json", "file.json"},
		{"archive", "file.json", "archive/file.json"},
		{"archive/", "file.json", "archive/file.json"},
	}

	for _, tt := range tests {
		s := &S3Storage{prefix: strings.TrimSuffix(tt.prefix, "/")}
		got := s.key(tt.path)
		if got != tt.want {
			t.Errorf("key(%q) with prefix %q = %q, want %q", tt.path, tt.prefix, got, tt.want)
		}
		if rel := s.relative(got); rel != tt.path {
			t.Errorf("relative(%q) = %q, want %q", got, rel, tt.path)
		}
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", contentType("valuations/2025/01/02/a.json"))
	assert.Equal(t, "application/octet-stream", contentType("blob"))
}
