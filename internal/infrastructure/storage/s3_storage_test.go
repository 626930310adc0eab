package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kioskcrm/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewS3ExportStorage_Validation(t *testing.T) {
	_, err := NewS3ExportStorage(context.Background(), config.StorageConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket is required")
}

func TestS3ExportStorage_ObjectKey(t *testing.T) {
	s, err := NewS3ExportStorage(context.Background(), config.StorageConfig{
		Bucket:          "exports",
		Prefix:          "/kiosk/",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
	})
	require.NoError(t, err)

	assert.Equal(t, "kiosk/tenant-1/kiosks.csv", s.ObjectKey("tenant-1", "kiosks.csv"))
	assert.Equal(t, 15*time.Minute, s.presignExpiration)
}

func TestS3ExportStorage_Store(t *testing.T) {
	var (
		mu       sync.Mutex
		gotPath  string
		gotBody  string
		gotCType string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		gotPath = r.URL.Path
		gotBody = string(body)
		gotCType = r.Header.Get("Content-Type")
		mu.Unlock()
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	s, err := NewS3ExportStorage(context.Background(), config.StorageConfig{
		Endpoint:          server.URL,
		Region:            "ap-northeast-1",
		Bucket:            "exports",
		AccessKeyID:       "test",
		SecretAccessKey:   "test",
		UsePathStyle:      true,
		PresignExpiration: 5 * time.Minute,
	}, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	obj, err := s.Store(context.Background(), "tenant-1/kiosks.csv", []byte("serial_number\nSN-1\n"), "text/csv")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "/exports/tenant-1/kiosks.csv", gotPath)
	assert.Contains(t, gotBody, "serial_number\nSN-1\n")
	assert.Equal(t, "text/csv", gotCType)

	assert.Equal(t, "exports", obj.Bucket)
	assert.Equal(t, "tenant-1/kiosks.csv", obj.Key)
	assert.True(t, strings.HasPrefix(obj.DownloadURL, server.URL+"/exports/tenant-1/kiosks.csv?"))
	assert.Contains(t, obj.DownloadURL, "X-Amz-Expires=300")
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), obj.ExpiresAt, 5*time.Second)
}

func TestS3ExportStorage_Store_UploadError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>denied</Message></Error>`))
	}))
	defer server.Close()

	s, err := NewS3ExportStorage(context.Background(), config.StorageConfig{
		Endpoint:        server.URL,
		Bucket:          "exports",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		UsePathStyle:    true,
	})
	require.NoError(t, err)

	_, err = s.Store(context.Background(), "k.csv", []byte("x"), "text/csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload object")
}
