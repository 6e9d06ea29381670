package media

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mediabox/mediabox_server/internal/storage"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func jpegBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height)), nil))
	return buf.Bytes()
}

func newLocalBackend(dir string) (storage.Backend, error) {
	return storage.NewLocalStorage(&storage.BackendConfig{LocalPath: dir})
}

type testService struct {
	service   *Service
	repo      *MemoryRepository
	uploadDir string
	thumbDir  string
}

func newTestService(t *testing.T, maxFileSize int64) *testService {
	t.Helper()

	uploadDir := t.TempDir()
	thumbDir := t.TempDir()

	blobs, err := storage.NewLocalStorage(&storage.BackendConfig{LocalPath: uploadDir})
	require.NoError(t, err)
	thumbs, err := storage.NewLocalStorage(&storage.BackendConfig{LocalPath: thumbDir})
	require.NoError(t, err)

	repo := NewMemoryRepository()
	service := NewService(repo, blobs, thumbs, NewValidator(maxFileSize), "http://localhost:8080")

	return &testService{
		service:   service,
		repo:      repo,
		uploadDir: uploadDir,
		thumbDir:  thumbDir,
	}
}

func uploadOf(name, contentType string, data []byte) UploadFile {
	return UploadFile{
		OriginalName: name,
		ContentType:  contentType,
		Size:         int64(len(data)),
		Data:         bytes.NewReader(data),
	}
}
