package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Get when no blob exists under the given name.
var ErrNotFound = errors.New("blob not found")

// Backend persists immutable blobs under flat, generated names.
type Backend interface {
	Store(ctx context.Context, name string, reader io.Reader) error
	Get(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
}

type Type string

const (
	TypeLocal Type = "local"
	TypeS3    Type = "s3"
)

type BackendConfig struct {
	Type        Type
	LocalPath   string
	S3Endpoint  string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Region    string
	S3UseSSL    bool
	S3Prefix    string
}

func NewBackend(config *BackendConfig) (Backend, error) {
	switch config.Type {
	case TypeS3:
		return NewS3Storage(config)
	default:
		return NewLocalStorage(config)
	}
}
